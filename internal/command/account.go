package command

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show favorite counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			stats, err := ctx.Session.Controller().Stats(cmd.Context())
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), stats)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total: %d\n", stats.Total)
			types := make([]string, 0, len(stats.ByEntityType))
			for entityType := range stats.ByEntityType {
				types = append(types, string(entityType))
			}
			sort.Strings(types)
			for _, entityType := range types {
				fmt.Fprintf(out, "  %s: %d\n", entityType, stats.ByEntityType[favorite.EntityType(entityType)])
			}
			fmt.Fprintf(out, "Notifications enabled: %d\n", stats.NotificationsEnabled)
			if stats.LastAddedAt != nil {
				fmt.Fprintf(out, "Last added: %s\n", stats.LastAddedAt.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}
}

// NewFeedCmd creates the feed command.
func NewFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show upcoming activity for favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")
			if limit < 1 || offset < 0 {
				return writeCommandError(cmd, fmt.Errorf("--limit must be >= 1 and --offset >= 0"))
			}

			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			page, err := ctx.Session.Controller().Feed(cmd.Context(), limit, offset)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), page)
			}
			if len(page.Items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Feed is empty")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tKIND\tTITLE\tDETAIL")
			for _, item := range page.Items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.OccursAt.UTC().Format(time.RFC3339), item.Kind, item.Title, item.Subtitle)
			}
			_ = tw.Flush()
			if page.HasMore {
				fmt.Fprintf(cmd.OutOrStdout(), "More items: --offset %d\n", page.Offset+len(page.Items))
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum number of items")
	cmd.Flags().Int("offset", 0, "number of items to skip")
	return cmd
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the user's cached favorites from this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if err := ctx.Session.Logout(cmd.Context()); err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"loggedOut": true, "userId": ctx.Session.UserID()})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared cached favorites for %s\n", ctx.Session.UserID())
			return nil
		},
	}
}
