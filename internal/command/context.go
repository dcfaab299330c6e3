package command

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/matchday-favorites/internal/app"
	"github.com/riskibarqy/matchday-favorites/internal/config"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"github.com/spf13/cobra"
)

// CommandContext provides the signed-in session shared by every command.
type CommandContext struct {
	Session  *app.ClientSession
	Logger   *logging.Logger
	JSONMode bool
}

// Close stops the session and flushes the log file.
func (c *CommandContext) Close() {
	if err := c.Session.Shutdown(); err != nil {
		c.Logger.Warn("close device store failed", "error", err)
	}
	_ = c.Logger.Sync()
}

// GetContext loads client configuration and opens a session for the command.
func GetContext(cmd *cobra.Command) (*CommandContext, error) {
	jsonMode, _ := cmd.Flags().GetBool("json")
	userOverride, _ := cmd.Flags().GetString("user")
	cacheOverride, _ := cmd.Flags().GetString("cache")

	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(userOverride); v != "" {
		cfg.UserID = v
	}
	if v := strings.TrimSpace(cacheOverride); v != "" {
		cfg.CachePath = v
	}

	logger, err := newClientLogger(cfg)
	if err != nil {
		return nil, err
	}

	session, err := app.NewClientSession(cmd.Context(), cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &CommandContext{Session: session, Logger: logger, JSONMode: jsonMode}, nil
}

// newClientLogger keeps stdout for command output: logs go to the rotating
// file when configured and are discarded otherwise.
func newClientLogger(cfg config.ClientConfig) (*logging.Logger, error) {
	if cfg.LogFile == "" {
		return logging.NewNop(), nil
	}
	logger, err := logging.NewFile(logging.FileConfig{Path: cfg.LogFile}, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open client log file: %w", err)
	}
	return logger.With("app", AppName), nil
}
