package command

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

const AppName = "favsync"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "favsync - keep matchday favorites in sync across devices",
		Long:          "favsync is a headless favorites client. It caches favorites on this device and reconciles them with the favorites service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().Bool("json", false, "output in JSON format")
	cmd.PersistentFlags().String("user", "", "user id (overrides FAVSYNC_USER_ID)")
	cmd.PersistentFlags().String("cache", "", "device store file (overrides FAVSYNC_CACHE_PATH)")

	cmd.AddCommand(
		NewLoadCmd(),
		NewCheckCmd(),
		NewAddCmd(),
		NewRemoveCmd(),
		NewToggleCmd(),
		NewPrefsCmd(),
		NewSyncCmd(),
		NewForceSyncCmd(),
		NewResolveCmd(),
		NewStatsCmd(),
		NewFeedCmd(),
		NewLogoutCmd(),
	)

	return cmd
}

func Execute(ctx context.Context) error {
	return NewRootCmd(Version).ExecuteContext(ctx)
}
