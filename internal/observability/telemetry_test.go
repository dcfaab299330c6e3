package observability

import (
	"context"
	"net/http"
	"testing"

	"github.com/riskibarqy/matchday-favorites/internal/config"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	t.Parallel()

	tel, err := Start(config.Config{UptraceEnabled: true}, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if tel.PprofAddr() != "" {
		t.Fatalf("expected no pprof listener, got %q", tel.PprofAddr())
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStart_PprofServesAndStops(t *testing.T) {
	t.Parallel()

	tel, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	url := "http://" + tel.PprofAddr() + "/debug/pprof/"
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get pprof index: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from pprof, got %d", resp.StatusCode)
	}

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if _, err := http.Get(url); err == nil {
		t.Fatalf("expected pprof listener to be closed")
	}
}

func TestStart_PprofPortInUse(t *testing.T) {
	t.Parallel()

	first, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start first: %v", err)
	}
	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	if _, err := Start(config.Config{PprofEnabled: true, PprofAddr: first.PprofAddr()}, logging.NewNop()); err == nil {
		t.Fatalf("expected bind error for %s", first.PprofAddr())
	}
}
