package command

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/matchday-favorites/internal/app"
	"github.com/riskibarqy/matchday-favorites/internal/config"
	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"github.com/spf13/cobra"
)

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	output, err := executeCommand(NewRootCmd("test"), args...)
	if err != nil {
		t.Fatalf("favsync %s: %v\n%s", strings.Join(args, " "), err, output)
	}
	return output
}

// setupClientEnv points the client at a fresh in-memory API and a device
// store under a temp dir.
func setupClientEnv(t *testing.T) {
	t.Helper()

	srv, cleanup, err := app.NewHTTPServer(config.Config{
		HTTPAddr:      ":0",
		APIToken:      "cli-token",
		StorageDriver: config.StorageMemory,
		ReadTimeout:   5 * time.Second,
		WriteTimeout:  5 * time.Second,
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(func() {
		ts.Close()
		_ = cleanup()
	})

	t.Setenv("FAVSYNC_BASE_URL", ts.URL)
	t.Setenv("FAVSYNC_TOKEN", "cli-token")
	t.Setenv("FAVSYNC_USER_ID", "u-cli")
	t.Setenv("FAVSYNC_CACHE_PATH", filepath.Join(t.TempDir(), "device.db"))
	t.Setenv("FAVSYNC_LOG_FILE", "")
}

func TestRootCommandVersion(t *testing.T) {
	output, err := executeCommand(NewRootCmd("test"), "--version")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(output, "favsync version test") {
		t.Fatalf("expected version output, got %q", output)
	}
}

func TestAddLoadRemoveFlow(t *testing.T) {
	setupClientEnv(t)

	output := run(t, "add", "team", "eng-ars", "--pref", "notifications=true", "--pref", "tier=1")
	if !strings.Contains(output, "Added team/eng-ars (Arsenal)") {
		t.Fatalf("unexpected add output: %q", output)
	}

	output = run(t, "load", "--no-cache", "--json")
	var items []favorite.Favorite
	if err := sonic.Unmarshal([]byte(output), &items); err != nil {
		t.Fatalf("decode load output: %v\n%s", err, output)
	}
	if len(items) != 1 || items[0].EntityID != "eng-ars" {
		t.Fatalf("expected arsenal favorite, got %+v", items)
	}
	if items[0].Preferences["notifications"] != true || items[0].Preferences["tier"] != float64(1) {
		t.Fatalf("expected typed preferences, got %+v", items[0].Preferences)
	}

	output = run(t, "check", "team", "eng-ars")
	if !strings.Contains(output, "team/eng-ars favorite: true") {
		t.Fatalf("unexpected check output: %q", output)
	}

	run(t, "remove", "team", "eng-ars")
	output = run(t, "load", "--no-cache")
	if !strings.Contains(output, "No favorites") {
		t.Fatalf("expected empty list after remove, got %q", output)
	}
}

func TestToggleFlipsMembership(t *testing.T) {
	setupClientEnv(t)

	if output := run(t, "toggle", "player", "idn-fwd-01"); !strings.Contains(output, "is now a favorite") {
		t.Fatalf("unexpected first toggle output: %q", output)
	}
	if output := run(t, "toggle", "player", "idn-fwd-01"); !strings.Contains(output, "is no longer a favorite") {
		t.Fatalf("unexpected second toggle output: %q", output)
	}
}

func TestSyncStatsAndFeed(t *testing.T) {
	setupClientEnv(t)

	run(t, "add", "league", "eng-premier-league-2026", "--pref", "notifications=true")

	output := run(t, "sync", "--json")
	var synced syncOutput
	if err := sonic.Unmarshal([]byte(output), &synced); err != nil {
		t.Fatalf("decode sync output: %v\n%s", err, output)
	}
	if synced.Favorites != 1 || len(synced.Conflicts) != 0 {
		t.Fatalf("unexpected sync outcome: %+v", synced)
	}

	output = run(t, "stats", "--json")
	var stats favorite.Stats
	if err := sonic.Unmarshal([]byte(output), &stats); err != nil {
		t.Fatalf("decode stats output: %v\n%s", err, output)
	}
	if stats.Total != 1 || stats.NotificationsEnabled != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	output = run(t, "feed", "--limit", "1", "--json")
	var page favorite.FeedPage
	if err := sonic.Unmarshal([]byte(output), &page); err != nil {
		t.Fatalf("decode feed output: %v\n%s", err, output)
	}
	if page.Limit != 1 || len(page.Items) > 1 {
		t.Fatalf("unexpected feed page: %+v", page)
	}

	output = run(t, "force-sync")
	if !strings.Contains(output, "Sync (force)") {
		t.Fatalf("unexpected force-sync output: %q", output)
	}
}

func TestLogoutClearsCache(t *testing.T) {
	setupClientEnv(t)

	run(t, "add", "team", "eng-liv")
	run(t, "logout")

	// The server still has the favorite; only the device cache was cleared.
	output := run(t, "load", "--no-cache", "--json")
	if !strings.Contains(output, "eng-liv") {
		t.Fatalf("expected server favorite after logout, got %q", output)
	}
}

func TestCommandValidation(t *testing.T) {
	setupClientEnv(t)

	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown entity type", args: []string{"add", "stadium", "x"}, want: "invalid entity type"},
		{name: "bad preference", args: []string{"add", "team", "eng-ars", "--pref", "oops"}, want: "want key=value"},
		{name: "prefs without values", args: []string{"prefs", "team", "eng-ars"}, want: "at least one --pref"},
		{name: "bad resolution", args: []string{"resolve", "c-1", "coinflip"}, want: "resolution"},
		{name: "bad feed limit", args: []string{"feed", "--limit", "0"}, want: "--limit"},
		{name: "unknown conflict", args: []string{"resolve", "c-missing", "merge"}, want: "not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := executeCommand(NewRootCmd("test"), tc.args...)
			if err == nil {
				t.Fatalf("expected error, got output %q", output)
			}
			if !strings.Contains(strings.ToLower(output), strings.ToLower(tc.want)) {
				t.Fatalf("expected %q in output, got %q", tc.want, output)
			}
		})
	}
}

func TestMissingUserIsReported(t *testing.T) {
	setupClientEnv(t)
	t.Setenv("FAVSYNC_USER_ID", "")

	output, err := executeCommand(NewRootCmd("test"), "stats")
	if err == nil || !strings.Contains(output, "FAVSYNC_USER_ID is required") {
		t.Fatalf("expected missing user error, got err=%v output=%q", err, output)
	}
}

func TestParsePreferences(t *testing.T) {
	t.Parallel()

	prefs, err := parsePreferences([]string{"notifications=false", "goal=sound", "minutes=15"})
	if err != nil {
		t.Fatalf("parse preferences: %v", err)
	}
	if prefs["notifications"] != false || prefs["goal"] != "sound" || prefs["minutes"] != float64(15) {
		t.Fatalf("unexpected preferences: %+v", prefs)
	}
	if got := formatPreferences(prefs); got != "goal=sound,minutes=15,notifications=false" {
		t.Fatalf("unexpected formatted preferences: %q", got)
	}
}
