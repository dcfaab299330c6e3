package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLoadCmd creates the load command.
func NewLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Show favorites",
		Long:  "Show favorites from the device cache, refreshing from the server. With --no-cache the server is read first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			noCache, _ := cmd.Flags().GetBool("no-cache")
			items, err := ctx.Session.Controller().Load(cmd.Context(), !noCache)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			writeFavorites(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().Bool("no-cache", false, "read the server before the device cache")
	return cmd
}

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <type> <id>",
		Short: "Check whether an entity is a favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, entityID, err := parseEntityArgs(args)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			toggle, err := ctx.Session.Toggle(entityType, entityID)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			exists, err := toggle.Check(cmd.Context())
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"isFavorite": exists})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s favorite: %t\n", entityType, entityID, exists)
			return nil
		},
	}
}

// NewAddCmd creates the add command.
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <type> <id>",
		Short: "Add a favorite",
		Long:  "Add a team, player, league or match to favorites. Adding an existing favorite keeps the stored record.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, entityID, err := parseEntityArgs(args)
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

			item, err := ctx.Session.Controller().Add(cmd.Context(), entityType, entityID, prefs)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s/%s (%s)\n", item.EntityType, item.EntityID, displayName(item.EntityData))
			return nil
		},
	}

	cmd.Flags().StringArray("pref", nil, "preference as key=value (repeatable)")
	return cmd
}

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <type> <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a favorite",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, entityID, err := parseEntityArgs(args)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if err := ctx.Session.Controller().Remove(cmd.Context(), entityType, entityID); err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"deleted": true})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s/%s\n", entityType, entityID)
			return nil
		},
	}
}

// NewToggleCmd creates the toggle command.
func NewToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <type> <id>",
		Short: "Flip whether an entity is a favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, entityID, err := parseEntityArgs(args)
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

			toggle, err := ctx.Session.Toggle(entityType, entityID)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			isFavorite, err := toggle.Toggle(cmd.Context(), prefs)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"isFavorite": isFavorite})
			}
			if isFavorite {
				fmt.Fprintf(cmd.OutOrStdout(), "%s/%s is now a favorite\n", entityType, entityID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s/%s is no longer a favorite\n", entityType, entityID)
			}
			return nil
		},
	}

	cmd.Flags().StringArray("pref", nil, "preference used when the toggle adds (key=value, repeatable)")
	return cmd
}

// NewPrefsCmd creates the prefs command.
func NewPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs <type> <id>",
		Short: "Replace the preferences of a favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, entityID, err := parseEntityArgs(args)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			pairs, _ := cmd.Flags().GetStringArray("pref")
			if len(pairs) == 0 {
				return writeCommandError(cmd, fmt.Errorf("at least one --pref is required"))
			}
			prefs, err := parsePreferences(pairs)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			item, err := ctx.Session.Controller().UpdatePreferences(cmd.Context(), entityType, entityID, prefs)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s/%s: %s\n", item.EntityType, item.EntityID, formatPreferences(item.Preferences))
			return nil
		},
	}

	cmd.Flags().StringArray("pref", nil, "preference as key=value (repeatable)")
	return cmd
}
