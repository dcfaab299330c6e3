package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/usecase"
)

func (h *Handler) IncrementalSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IncrementalSync")
	defer span.End()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req incrementalSyncRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.IncrementalSync(ctx, usecase.IncrementalSyncInput{
		UserID:            userID,
		DeviceID:          req.DeviceID,
		LastSyncTimestamp: req.LastSyncTimestamp,
		Favorites:         req.Favorites,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "incremental sync failed", "user_id", userID, "device_id", req.DeviceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ForceSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ForceSync")
	defer span.End()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req forceSyncRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.syncService.ForceSync(ctx, userID, req.DeviceID)
	if err != nil {
		h.logger.WarnContext(ctx, "force sync failed", "user_id", userID, "device_id", req.DeviceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshot)
}

func (h *Handler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveConflict")
	defer span.End()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req resolveConflictRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	resolution, err := favorite.ParseResolution(req.Resolution)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.syncService.ResolveConflict(ctx, usecase.ResolveConflictInput{
		UserID:       userID,
		DeviceID:     deviceIDFromContext(ctx),
		ConflictID:   strings.TrimSpace(req.ConflictID),
		Resolution:   resolution,
		FavoriteData: req.FavoriteData,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "resolve conflict failed",
			"user_id", userID,
			"conflict_id", req.ConflictID,
			"resolution", resolution,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}
