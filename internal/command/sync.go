package command

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/favsync"
	"github.com/spf13/cobra"
)

type syncOutput struct {
	Mode          favsync.SyncMode    `json:"mode"`
	Favorites     int                 `json:"favorites"`
	ServerChanges []favorite.Favorite `json:"serverChanges"`
	Conflicts     []favorite.Conflict `json:"conflicts"`
	Reloaded      bool                `json:"reloaded"`
	SyncTimestamp time.Time           `json:"syncTimestamp"`
}

func newSyncOutput(out favsync.SyncOutcome) syncOutput {
	changes := out.ServerChanges
	if changes == nil {
		changes = []favorite.Favorite{}
	}
	conflicts := out.Conflicts
	if conflicts == nil {
		conflicts = []favorite.Conflict{}
	}
	return syncOutput{
		Mode:          out.Mode,
		Favorites:     len(out.Favorites),
		ServerChanges: changes,
		Conflicts:     conflicts,
		Reloaded:      out.Reloaded,
		SyncTimestamp: out.SyncTimestamp,
	}
}

func writeSyncOutcome(w io.Writer, out favsync.SyncOutcome) {
	fmt.Fprintf(w, "Sync (%s) at %s: %d favorites, %d server changes", out.Mode, out.SyncTimestamp.UTC().Format(time.RFC3339), len(out.Favorites), len(out.ServerChanges))
	if out.Reloaded {
		fmt.Fprint(w, ", full reload")
	}
	fmt.Fprintln(w)
	if len(out.Conflicts) > 0 {
		fmt.Fprintf(w, "%d conflict(s) need resolving:\n", len(out.Conflicts))
		writeConflicts(w, out.Conflicts)
	}
}

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the device cache with the server",
		Long:  "Send the cached favorites changed since the last sync and apply the server's changes. Conflicting edits are listed for 'favsync resolve'.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			out, err := ctx.Session.Controller().Sync(cmd.Context())
			if err != nil && !errors.Is(err, favsync.ErrConflictDetected) {
				return writeCommandError(cmd, err)
			}
			if conflicts, ok := favsync.ConflictsFrom(err); ok && len(out.Conflicts) == 0 {
				out.Conflicts = conflicts
			}

			if ctx.JSONMode {
				if werr := writeJSON(cmd.OutOrStdout(), newSyncOutput(out)); werr != nil {
					return werr
				}
			} else {
				writeSyncOutcome(cmd.OutOrStdout(), out)
			}
			if err != nil {
				return writeCommandError(cmd, err)
			}
			return nil
		},
	}
}

// NewForceSyncCmd creates the force-sync command.
func NewForceSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force-sync",
		Short: "Replace the device cache with the server's favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			out, err := ctx.Session.Controller().ForceSync(cmd.Context())
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), newSyncOutput(out))
			}
			writeSyncOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <conflict-id> <keep_server|keep_client|merge>",
		Short: "Resolve a sync conflict",
		Long:  "Resolve a conflict reported by 'favsync sync'. keep_client uses this device's cached version unless --pref supplies the preferences to keep.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conflictID := strings.TrimSpace(args[0])
			if conflictID == "" {
				return writeCommandError(cmd, fmt.Errorf("conflict id is required"))
			}
			resolution, err := favorite.ParseResolution(args[1])
			if err != nil {
				return writeCommandError(cmd, err)
			}
			pairs, _ := cmd.Flags().GetStringArray("pref")
			prefs, err := parsePreferences(pairs)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			var favoriteData *favorite.Favorite
			if prefs != nil {
				favoriteData = &favorite.Favorite{Preferences: prefs}
			}

			resolved, err := ctx.Session.Controller().Resolve(cmd.Context(), conflictID, resolution, favoriteData)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), resolved)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resolved %s with %s: %s/%s %s\n", conflictID, resolution, resolved.EntityType, resolved.EntityID, formatPreferences(resolved.Preferences))
			return nil
		},
	}

	cmd.Flags().StringArray("pref", nil, "preferences to keep with keep_client (key=value, repeatable)")
	return cmd
}
