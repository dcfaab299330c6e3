package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/matchday-favorites/internal/app"
	"github.com/riskibarqy/matchday-favorites/internal/config"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:           "migration",
		Short:         "Apply favorites schema migrations (reads DB_URL)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "migrations directory (default MIGRATIONS_DIR or ./db/migrations)")

	withMigrator := func(fn func(cmd *cobra.Command, m *app.Migrator, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := logging.NewJSON(cfg.LogLevel).With("service", "matchday-favorites-migration")
			defer func() { _ = logger.Sync() }()

			m, err := app.NewMigrator(cfg, dir, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := m.Close(); err != nil {
					logger.Warn("close migrator failed", "error", err)
				}
			}()
			return fn(cmd, m, args)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(_ *cobra.Command, m *app.Migrator, _ []string) error {
				return m.Up()
			}),
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: withMigrator(func(_ *cobra.Command, m *app.Migrator, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil {
						return fmt.Errorf("invalid steps %q: %w", args[0], err)
					}
					steps = n
				}
				return m.Down(steps)
			}),
		},
		&cobra.Command{
			Use:     "goto <version>",
			Aliases: []string{"migrate"},
			Short:   "Migrate up or down to a version",
			Args:    cobra.ExactArgs(1),
			RunE: withMigrator(func(_ *cobra.Command, m *app.Migrator, args []string) error {
				version, err := strconv.ParseUint(args[0], 10, 0)
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return m.Goto(uint(version))
			}),
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(_ *cobra.Command, m *app.Migrator, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return m.Force(version)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m *app.Migrator, _ []string) error {
				v, err := m.Version()
				if err != nil {
					return err
				}
				if !v.Applied {
					fmt.Fprintln(cmd.OutOrStdout(), "version: none")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version: %d\ndirty: %t\n", v.Version, v.Dirty)
				return nil
			}),
		},
	)
	return root
}
