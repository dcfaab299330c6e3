package favsync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"github.com/riskibarqy/matchday-favorites/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type SyncMode string

const (
	SyncModeIncremental SyncMode = "incremental"
	SyncModeForce       SyncMode = "force"
)

const (
	defaultForceSyncAfterFailures = 3
	defaultSyncTimeout            = time.Minute
)

type SyncOutcome struct {
	Mode          SyncMode
	Favorites     []favorite.Favorite
	ServerChanges []favorite.Favorite
	Conflicts     []favorite.Conflict
	Reloaded      bool
	SyncTimestamp time.Time
}

type EngineConfig struct {
	UserID   string
	DeviceID string
	// ForceSyncAfterFailures switches the next sync to a full reload after this
	// many consecutive failed syncs.
	ForceSyncAfterFailures int
	// SyncTimeout bounds one sync run. The run is shared by every caller that
	// joined it, so it does not stop when one of them cancels.
	SyncTimeout time.Duration
}

// Engine reconciles the local cache with the server. At most one sync runs per
// user; a request arriving while one runs joins it instead of queueing.
type Engine struct {
	cfg    EngineConfig
	remote Remote
	cache  *LocalCache
	logger *logging.Logger

	flight   resilience.SingleFlight
	failures atomic.Int32
}

func NewEngine(cfg EngineConfig, remote Remote, cache *LocalCache, logger *logging.Logger) *Engine {
	if cfg.ForceSyncAfterFailures <= 0 {
		cfg.ForceSyncAfterFailures = defaultForceSyncAfterFailures
	}
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = defaultSyncTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		cfg:    cfg,
		remote: remote,
		cache:  cache,
		logger: logger.With("component", "favsync.engine", "user_id", cfg.UserID),
	}
}

// Sync runs an incremental sync, or a full reload when the device never
// synced or the previous syncs kept failing. When the server reports
// conflicts the outcome is still returned together with a *ConflictError.
func (e *Engine) Sync(ctx context.Context) (SyncOutcome, error) {
	out, err, _ := e.do(ctx, false)
	return out, err
}

// ForceSync replaces the local snapshot with the server's live set and resets
// the cursor. A force request that joined a running incremental sync runs again.
func (e *Engine) ForceSync(ctx context.Context) (SyncOutcome, error) {
	out, err, shared := e.do(ctx, true)
	if shared && ctx.Err() == nil && (err != nil || out.Mode != SyncModeForce) {
		out, err, _ = e.do(ctx, true)
	}
	return out, err
}

// Running reports whether a sync for this user is in flight.
func (e *Engine) Running() bool {
	return e.flight.InFlight(e.flightKey())
}

// ConsecutiveFailures is the number of failed syncs since the last success.
func (e *Engine) ConsecutiveFailures() int {
	return int(e.failures.Load())
}

func (e *Engine) flightKey() string {
	return "sync:" + e.cfg.UserID
}

func (e *Engine) do(ctx context.Context, force bool) (SyncOutcome, error, bool) {
	value, err, shared := e.flight.DoContext(ctx, e.flightKey(), func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.SyncTimeout)
		defer cancel()

		if force {
			return e.forceSync(runCtx)
		}
		return e.sync(runCtx)
	})

	out, _ := value.(SyncOutcome)
	return out, err, shared
}

func (e *Engine) sync(ctx context.Context) (SyncOutcome, error) {
	since := e.cache.LastSyncTimestamp(ctx)
	if since == nil {
		e.logger.InfoContext(ctx, "no sync cursor on device, running full sync")
		return e.forceSync(ctx)
	}
	if failures := e.ConsecutiveFailures(); failures >= e.cfg.ForceSyncAfterFailures {
		e.logger.WarnContext(ctx, "too many failed syncs, running full sync", "failures", failures)
		return e.forceSync(ctx)
	}

	ctx, span := startSpan(ctx, "favsync.Engine.Sync",
		attribute.String("favsync.mode", string(SyncModeIncremental)),
	)
	defer span.End()

	local := e.cache.Get(ctx)
	result, err := e.remote.IncrementalSync(ctx, e.cfg.UserID, e.cfg.DeviceID, *since, local)
	if err != nil {
		e.recordFailure(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SyncOutcome{}, fmt.Errorf("incremental sync: %w", err)
	}

	out := SyncOutcome{
		Mode:          SyncModeIncremental,
		Favorites:     local,
		ServerChanges: result.ServerChanges,
		Conflicts:     result.Conflicts,
		SyncTimestamp: latest(*since, result.SyncTimestamp),
	}

	if len(result.ServerChanges) > 0 || len(result.Conflicts) > 0 {
		fresh, err := e.remote.ListDetailed(ctx, e.cfg.UserID, nil)
		if err != nil {
			e.recordFailure(ctx, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return SyncOutcome{}, fmt.Errorf("reload favorites after sync: %w", err)
		}
		out.Favorites = fresh
		out.Reloaded = true
		if err := e.cache.Commit(ctx, fresh, out.SyncTimestamp); err != nil {
			return SyncOutcome{}, err
		}
	} else if err := e.cache.SetLastSyncTimestamp(ctx, out.SyncTimestamp); err != nil {
		return SyncOutcome{}, err
	}

	e.failures.Store(0)
	span.SetAttributes(
		attribute.Int("favsync.server_changes", len(out.ServerChanges)),
		attribute.Int("favsync.conflicts", len(out.Conflicts)),
	)
	e.logger.InfoContext(ctx, "favorites sync completed",
		"mode", out.Mode,
		"server_changes", len(out.ServerChanges),
		"conflicts", len(out.Conflicts),
		"reloaded", out.Reloaded,
	)

	if len(out.Conflicts) > 0 {
		return out, &ConflictError{Conflicts: out.Conflicts}
	}
	return out, nil
}

func (e *Engine) forceSync(ctx context.Context) (SyncOutcome, error) {
	ctx, span := startSpan(ctx, "favsync.Engine.ForceSync",
		attribute.String("favsync.mode", string(SyncModeForce)),
	)
	defer span.End()

	snapshot, err := e.remote.ForceSync(ctx, e.cfg.UserID, e.cfg.DeviceID)
	if err != nil {
		e.recordFailure(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SyncOutcome{}, fmt.Errorf("force sync: %w", err)
	}

	if err := e.cache.Commit(ctx, snapshot.Favorites, snapshot.SyncTimestamp); err != nil {
		return SyncOutcome{}, err
	}
	e.failures.Store(0)

	e.logger.InfoContext(ctx, "favorites full sync completed", "favorites", len(snapshot.Favorites))
	return SyncOutcome{
		Mode:          SyncModeForce,
		Favorites:     liveOnly(snapshot.Favorites),
		Reloaded:      true,
		SyncTimestamp: favorite.Timestamp(snapshot.SyncTimestamp),
	}, nil
}

func (e *Engine) recordFailure(ctx context.Context, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrUnauthorized) {
		return
	}
	failures := e.failures.Add(1)
	e.logger.WarnContext(ctx, "favorites sync failed", "failures", failures, "error", err)
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// Resolve settles one conflict on the server and refreshes the cache. When the
// refresh fails only the resolved record is patched locally.
func (e *Engine) Resolve(ctx context.Context, conflictID string, resolution favorite.Resolution, favoriteData *favorite.Favorite) (favorite.Favorite, error) {
	if !resolution.Valid() {
		return favorite.Favorite{}, fmt.Errorf("%w: %q", favorite.ErrInvalidResolution, resolution)
	}

	ctx, span := startSpan(ctx, "favsync.Engine.Resolve",
		attribute.String("favsync.conflict_id", conflictID),
		attribute.String("favsync.resolution", string(resolution)),
	)
	defer span.End()

	resolved, err := e.remote.ResolveConflict(ctx, e.cfg.UserID, conflictID, resolution, favoriteData)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return favorite.Favorite{}, fmt.Errorf("resolve conflict id=%s: %w", conflictID, err)
	}

	fresh, err := e.remote.ListDetailed(ctx, e.cfg.UserID, nil)
	if err == nil {
		if err := e.cache.Set(ctx, fresh); err != nil {
			return favorite.Favorite{}, err
		}
		return resolved, nil
	}

	e.logger.WarnContext(ctx, "reload after conflict resolution failed, patching cache",
		"conflict_id", conflictID,
		"error", err,
	)
	if err := e.cache.update(ctx, func(items []favorite.Favorite) []favorite.Favorite {
		return upsert(items, resolved)
	}); err != nil {
		return favorite.Favorite{}, err
	}
	return resolved, nil
}

// upsert replaces the record with the same key or appends it.
func upsert(items []favorite.Favorite, item favorite.Favorite) []favorite.Favorite {
	out := make([]favorite.Favorite, 0, len(items)+1)
	replaced := false
	for _, existing := range items {
		if existing.Key() == item.Key() {
			out = append(out, item.Clone())
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, item.Clone())
	}
	return out
}

func without(items []favorite.Favorite, key favorite.Key) []favorite.Favorite {
	out := make([]favorite.Favorite, 0, len(items))
	for _, existing := range items {
		if existing.Key() == key {
			continue
		}
		out = append(out, existing)
	}
	return out
}
