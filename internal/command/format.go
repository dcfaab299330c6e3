package command

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/favsync"
	"github.com/spf13/cobra"
)

func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())

	switch {
	case errors.Is(err, favsync.ErrUnauthorized):
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: check FAVSYNC_TOKEN")
	case errors.Is(err, favsync.ErrNetworkFailure):
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: the favorites service is unreachable; cached favorites are still available with 'favsync load'")
	case errors.Is(err, favsync.ErrConflictDetected):
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: resolve each conflict with 'favsync resolve <conflict-id> <keep_server|keep_client|merge>'")
	}

	return err
}

func writeJSON(w io.Writer, value any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

func writeFavorites(w io.Writer, items []favorite.Favorite) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No favorites")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tID\tNAME\tPREFERENCES\tUPDATED")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			item.EntityType,
			item.EntityID,
			displayName(item.EntityData),
			formatPreferences(item.Preferences),
			item.UpdatedAt.UTC().Format(time.RFC3339),
		)
	}
	_ = tw.Flush()
}

func writeConflicts(w io.Writer, conflicts []favorite.Conflict) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONFLICT\tTYPE\tID\tSERVER\tTHIS DEVICE")
	for _, item := range conflicts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			item.ID,
			item.EntityType,
			item.EntityID,
			formatPreferences(item.ServerVersion.Preferences),
			formatPreferences(item.ClientVersion.Preferences),
		)
	}
	_ = tw.Flush()
}

func displayName(data favorite.EntityData) string {
	if v, ok := data["name"].(string); ok && v != "" {
		return v
	}
	return "-"
}

func formatPreferences(prefs favorite.Preferences) string {
	if len(prefs) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(prefs))
	for k := range prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, prefs[k]))
	}
	return strings.Join(parts, ",")
}

// parsePreferences reads repeated key=value flags. Booleans and numbers keep
// their JSON type; anything else is a string.
func parsePreferences(pairs []string) (favorite.Preferences, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	prefs := make(favorite.Preferences, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid preference %q, want key=value", pair)
		}
		prefs[key] = parsePreferenceValue(strings.TrimSpace(raw))
	}
	return prefs, nil
}

func parsePreferenceValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

func parseEntityArgs(args []string) (favorite.EntityType, string, error) {
	entityType, err := favorite.ParseEntityType(args[0])
	if err != nil {
		return "", "", err
	}
	entityID := strings.TrimSpace(args[1])
	if entityID == "" {
		return "", "", fmt.Errorf("entity id is required")
	}
	return entityType, entityID, nil
}
