package favsync

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/platform/id"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
)

const deviceIDKey = "device:id"

type SessionConfig struct {
	UserID                 string
	DeviceID               string
	ForceSyncAfterFailures int
	RefreshTimeout         time.Duration
	SyncTimeout            time.Duration
}

// Session bundles everything one signed-in user needs on this device.
type Session struct {
	cfg        SessionConfig
	cache      *LocalCache
	engine     *Engine
	controller *Controller
	toggles    *Toggles
	logger     *logging.Logger

	closed atomic.Bool
}

func NewSession(cfg SessionConfig, remote Remote, kv KVStore, logger *logging.Logger) (*Session, error) {
	cfg.UserID = strings.TrimSpace(cfg.UserID)
	if cfg.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(cfg.DeviceID) == "" {
		return nil, fmt.Errorf("device id is required")
	}
	if remote == nil || kv == nil {
		return nil, fmt.Errorf("remote and local store are required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	cache := NewLocalCache(kv, cfg.UserID, logger)
	engine := NewEngine(EngineConfig{
		UserID:                 cfg.UserID,
		DeviceID:               cfg.DeviceID,
		ForceSyncAfterFailures: cfg.ForceSyncAfterFailures,
		SyncTimeout:            cfg.SyncTimeout,
	}, remote, cache, logger)
	controller := NewController(ControllerConfig{
		UserID:         cfg.UserID,
		RefreshTimeout: cfg.RefreshTimeout,
	}, remote, cache, engine, logger)

	return &Session{
		cfg:        cfg,
		cache:      cache,
		engine:     engine,
		controller: controller,
		toggles:    NewToggles(cfg.UserID, remote, logger, controller.HandleToggle),
		logger:     logger,
	}, nil
}

func (s *Session) UserID() string          { return s.cfg.UserID }
func (s *Session) DeviceID() string        { return s.cfg.DeviceID }
func (s *Session) Cache() *LocalCache      { return s.cache }
func (s *Session) Engine() *Engine         { return s.engine }
func (s *Session) Controller() *Controller { return s.controller }

func (s *Session) Toggle(entityType favorite.EntityType, entityID string) (*Toggle, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}
	return s.toggles.For(entityType, entityID)
}

// Close waits for background work and keeps the cache for the next launch.
func (s *Session) Close() {
	s.closed.Store(true)
	s.controller.Close()
}

// Logout stops the session and removes the user's cached favorites.
func (s *Session) Logout(ctx context.Context) error {
	s.Close()
	if err := s.cache.Clear(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "favorites cache cleared on logout", "user_id", s.cfg.UserID)
	return nil
}

// LoadDeviceID returns the identifier of this installation, creating and
// storing one on first use.
func LoadDeviceID(ctx context.Context, kv KVStore, gen id.Generator) (string, error) {
	raw, ok, err := kv.Get(ctx, deviceIDKey)
	if err != nil {
		return "", fmt.Errorf("read device id: %w", err)
	}
	if ok {
		if deviceID := strings.TrimSpace(string(raw)); deviceID != "" {
			return deviceID, nil
		}
	}

	deviceID, err := gen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate device id: %w", err)
	}
	if err := kv.Set(ctx, deviceIDKey, []byte(deviceID)); err != nil {
		return "", fmt.Errorf("store device id: %w", err)
	}
	return deviceID, nil
}
