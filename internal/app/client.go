package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/matchday-favorites/external/favoritesapi"
	"github.com/riskibarqy/matchday-favorites/internal/config"
	"github.com/riskibarqy/matchday-favorites/internal/favsync"
	"github.com/riskibarqy/matchday-favorites/internal/infrastructure/localstore"
	idgen "github.com/riskibarqy/matchday-favorites/internal/platform/id"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"github.com/riskibarqy/matchday-favorites/internal/platform/resilience"
)

type deviceStore interface {
	favsync.KVStore
	Close() error
}

// ClientSession is a favorites session plus the device store backing it.
type ClientSession struct {
	*favsync.Session
	store deviceStore
}

// Shutdown stops background refreshes and closes the device store.
func (c *ClientSession) Shutdown() error {
	c.Session.Close()
	return c.store.Close()
}

// NewClientSession opens the device store, resolves this installation's
// device id and signs the configured user in.
func NewClientSession(ctx context.Context, cfg config.ClientConfig, logger *logging.Logger) (*ClientSession, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.UserID) == "" {
		return nil, fmt.Errorf("FAVSYNC_USER_ID is required")
	}

	store, err := openDeviceStore(ctx, cfg.CachePath)
	if err != nil {
		return nil, err
	}

	session, err := newClientSession(ctx, cfg, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &ClientSession{Session: session, store: store}, nil
}

func newClientSession(ctx context.Context, cfg config.ClientConfig, store deviceStore, logger *logging.Logger) (*favsync.Session, error) {
	deviceID, err := favsync.LoadDeviceID(ctx, store, idgen.NewUUIDGenerator())
	if err != nil {
		return nil, err
	}

	remote, err := favoritesapi.NewClient(favoritesapi.ClientConfig{
		BaseURL:    cfg.BaseURL,
		Token:      cfg.Token,
		DeviceID:   deviceID,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CircuitEnabled,
			FailureThreshold: cfg.CircuitFailureCount,
			OpenTimeout:      cfg.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "favorites client ready", "user_id", cfg.UserID, "device_id", deviceID, "base_url", cfg.BaseURL)

	return favsync.NewSession(favsync.SessionConfig{
		UserID:                 cfg.UserID,
		DeviceID:               deviceID,
		ForceSyncAfterFailures: cfg.ForceSyncAfterFailures,
		RefreshTimeout:         cfg.RefreshTimeout,
		SyncTimeout:            cfg.SyncTimeout,
	}, remote, store, logger)
}

func openDeviceStore(ctx context.Context, path string) (deviceStore, error) {
	if strings.TrimSpace(path) == "" {
		return localstore.NewMemoryStore(), nil
	}
	return localstore.OpenSQLite(ctx, path)
}
