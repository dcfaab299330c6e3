package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
)

// ClientConfig configures the headless favorites client.
type ClientConfig struct {
	BaseURL               string
	Token                 string
	UserID                string
	Timeout               time.Duration
	MaxRetries            int
	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int
	// CachePath is the SQLite file for the device store; empty keeps it in memory.
	CachePath              string
	RefreshTimeout         time.Duration
	SyncTimeout            time.Duration
	ForceSyncAfterFailures int
	LogFile                string
	LogLevel               logging.Level
}

func LoadClient() (ClientConfig, error) {
	baseURL := strings.TrimSpace(getEnv("FAVSYNC_BASE_URL", "http://localhost:8080"))
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ClientConfig{}, fmt.Errorf("FAVSYNC_BASE_URL must be an absolute http(s) url, got %q", baseURL)
	}

	timeout, err := getEnvAsPositiveDuration("FAVSYNC_TIMEOUT", "10s")
	if err != nil {
		return ClientConfig{}, err
	}
	maxRetries, err := getEnvAsInt("FAVSYNC_MAX_RETRIES", 1)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("parse FAVSYNC_MAX_RETRIES: %w", err)
	}
	if maxRetries < 0 {
		return ClientConfig{}, fmt.Errorf("FAVSYNC_MAX_RETRIES must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("FAVSYNC_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return ClientConfig{}, fmt.Errorf("parse FAVSYNC_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("FAVSYNC_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("parse FAVSYNC_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return ClientConfig{}, fmt.Errorf("FAVSYNC_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := getEnvAsPositiveDuration("FAVSYNC_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return ClientConfig{}, err
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("FAVSYNC_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("parse FAVSYNC_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return ClientConfig{}, fmt.Errorf("FAVSYNC_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	refreshTimeout, err := getEnvAsPositiveDuration("FAVSYNC_REFRESH_TIMEOUT", "15s")
	if err != nil {
		return ClientConfig{}, err
	}
	syncTimeout, err := getEnvAsPositiveDuration("FAVSYNC_SYNC_TIMEOUT", "60s")
	if err != nil {
		return ClientConfig{}, err
	}
	forceSyncAfterFailures, err := getEnvAsInt("FAVSYNC_FORCE_SYNC_AFTER_FAILURES", 3)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("parse FAVSYNC_FORCE_SYNC_AFTER_FAILURES: %w", err)
	}
	if forceSyncAfterFailures < 1 {
		return ClientConfig{}, fmt.Errorf("FAVSYNC_FORCE_SYNC_AFTER_FAILURES must be >= 1")
	}

	return ClientConfig{
		BaseURL:                strings.TrimRight(baseURL, "/"),
		Token:                  strings.TrimSpace(getEnv("FAVSYNC_TOKEN", "")),
		UserID:                 strings.TrimSpace(getEnv("FAVSYNC_USER_ID", "")),
		Timeout:                timeout,
		MaxRetries:             maxRetries,
		CircuitEnabled:         circuitEnabled,
		CircuitFailureCount:    circuitFailureCount,
		CircuitOpenTimeout:     circuitOpenTimeout,
		CircuitHalfOpenMaxReq:  circuitHalfOpenMaxReq,
		CachePath:              strings.TrimSpace(getEnv("FAVSYNC_CACHE_PATH", "")),
		RefreshTimeout:         refreshTimeout,
		SyncTimeout:            syncTimeout,
		ForceSyncAfterFailures: forceSyncAfterFailures,
		LogFile:                strings.TrimSpace(getEnv("FAVSYNC_LOG_FILE", "")),
		LogLevel:               logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}
