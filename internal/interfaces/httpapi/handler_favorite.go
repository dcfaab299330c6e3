package httpapi

import (
	"net/http"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/usecase"
)

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFavorites")
	defer span.End()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	entityType, err := queryEntityType(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.favoriteService.List(ctx, userID, entityType)
	if err != nil {
		h.logger.WarnContext(ctx, "list favorites failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListDetailedFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDetailedFavorites")
	defer span.End()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	entityType, err := queryEntityType(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.favoriteService.ListDetailed(ctx, userID, entityType)
	if err != nil {
		h.logger.WarnContext(ctx, "list detailed favorites failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateFavorite")
	defer span.End()

	var req createFavoriteRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.favoriteService.Create(ctx, usecase.CreateFavoriteInput{
		UserID:      req.UserID,
		EntityType:  favorite.EntityType(req.EntityType),
		EntityID:    req.EntityID,
		Preferences: req.Preferences,
		DeviceID:    deviceIDFromContext(ctx),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create favorite failed",
			"user_id", req.UserID,
			"entity_type", req.EntityType,
			"entity_id", req.EntityID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, item)
}

func (h *Handler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFavorite")
	defer span.End()

	key, err := pathFavoriteKey(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.favoriteService.Delete(ctx, key, deviceIDFromContext(ctx)); err != nil {
		h.logger.WarnContext(ctx, "delete favorite failed", "favorite", key.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deleteFavoriteDTO{Deleted: true})
}

func (h *Handler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckFavorite")
	defer span.End()

	key, err := pathFavoriteKey(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	exists, err := h.favoriteService.Exists(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "check favorite failed", "favorite", key.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, checkFavoriteDTO{IsFavorite: exists})
}

func (h *Handler) UpdateFavoritePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateFavoritePreferences")
	defer span.End()

	key, err := pathFavoriteKey(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updatePreferencesRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.favoriteService.UpdatePreferences(ctx, key, req.Preferences, deviceIDFromContext(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "update favorite preferences failed", "favorite", key.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) GetFavoriteStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFavoriteStats")
	defer span.End()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.favoriteService.Stats(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get favorite stats failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) GetFavoriteFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFavoriteFeed")
	defer span.End()

	userID, err := pathUserID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.favoriteService.Feed(ctx, userID, limit, offset)
	if err != nil {
		h.logger.WarnContext(ctx, "get favorite feed failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, page)
}
