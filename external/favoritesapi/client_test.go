package favoritesapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/favsync"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"github.com/riskibarqy/matchday-favorites/internal/platform/resilience"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*ClientConfig)) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Token:      "secret-token",
		DeviceID:   "device-a",
		Logger:     logging.NewNop(),
	}
	for _, fn := range mutate {
		fn(&cfg)
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func writeEnvelope(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestClient_ListDetailed(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/favorites/users/u-1/detailed" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("entityType"); got != "team" {
			t.Errorf("expected entityType=team, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if got := r.Header.Get(deviceIDHeader); got != "device-a" {
			t.Errorf("unexpected device header %q", got)
		}
		writeEnvelope(w, http.StatusOK, `{"apiVersion":"2.0","data":[{"userId":"u-1","entityType":"team","entityId":"eng-ars","preferences":{"notifications":true},"entityData":{"name":"Arsenal"},"createdAt":"2026-03-01T10:00:00Z","updatedAt":"2026-03-01T10:00:00Z"}]}`)
	})

	teamType := favorite.EntityTypeTeam
	items, err := client.ListDetailed(context.Background(), "u-1", &teamType)
	if err != nil {
		t.Fatalf("list detailed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one favorite, got %d", len(items))
	}
	if items[0].EntityData["name"] != "Arsenal" {
		t.Fatalf("unexpected entity data: %+v", items[0].EntityData)
	}
	if !items[0].CreatedAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created at: %v", items[0].CreatedAt)
	}
}

func TestClient_StatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		want   error
	}{
		{name: "not found", status: http.StatusNotFound, want: favorite.ErrNotFound},
		{name: "duplicate", status: http.StatusConflict, want: favorite.ErrDuplicateFavorite},
		{name: "unauthorized", status: http.StatusUnauthorized, want: favsync.ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, want: favsync.ErrUnauthorized},
		{name: "bad request", status: http.StatusBadRequest, want: ErrRejected},
		{name: "unavailable", status: http.StatusServiceUnavailable, want: favsync.ErrNetworkFailure},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeEnvelope(w, tc.status, `{"apiVersion":"2.0","error":{"code":1,"message":"nope","status":"X"}}`)
			})

			_, err := client.Create(context.Background(), "u-1", favorite.EntityTypeTeam, "eng-ars", nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !strings.Contains(err.Error(), "nope") {
				t.Fatalf("expected server message in error, got %v", err)
			}
		})
	}
}

func TestClient_MalformedPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusOK, `{"apiVersion":"2.0","data":{"isFavorite":`)
	})

	if _, err := client.Exists(context.Background(), "u-1", favorite.EntityTypeTeam, "eng-ars"); !errors.Is(err, favsync.ErrMalformedPayload) {
		t.Fatalf("expected malformed payload, got %v", err)
	}
}

func TestClient_RetriesIdempotentRequests(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			writeEnvelope(w, http.StatusBadGateway, `{}`)
			return
		}
		writeEnvelope(w, http.StatusOK, `{"apiVersion":"2.0","data":{"isFavorite":true}}`)
	}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 1
	})

	exists, err := client.Exists(context.Background(), "u-1", favorite.EntityTypeTeam, "eng-ars")
	if err != nil || !exists {
		t.Fatalf("expected retry to succeed, got exists=%v err=%v", exists, err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestClient_SharedGetSurvivesFirstCallerCancel(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
		writeEnvelope(w, http.StatusOK, `{"apiVersion":"2.0","data":{"isFavorite":true}}`)
	})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := client.Exists(firstCtx, "u-1", favorite.EntityTypeTeam, "eng-ars")
		first <- err
	}()
	<-entered

	type result struct {
		exists bool
		err    error
	}
	second := make(chan result, 1)
	go func() {
		exists, err := client.Exists(context.Background(), "u-1", favorite.EntityTypeTeam, "eng-ars")
		second <- result{exists: exists, err: err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	if err := <-first; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled caller to get context.Canceled, got %v", err)
	}

	close(release)
	got := <-second
	if got.err != nil || !got.exists {
		t.Fatalf("expected live caller to get the shared result, got exists=%v err=%v", got.exists, got.err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one request, got %d", hits.Load())
	}
}

func TestClient_DoesNotRetrySync(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeEnvelope(w, http.StatusBadGateway, `{}`)
	}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 3
	})

	_, err := client.IncrementalSync(context.Background(), "u-1", "device-a", time.Now(), nil)
	if !errors.Is(err, favsync.ErrNetworkFailure) {
		t.Fatalf("expected network failure, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt for sync, got %d", calls.Load())
	}
}

func TestClient_IncrementalSyncWireFormat(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/favorites/users/u-1/sync" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		body := string(raw)
		for _, want := range []string{`"deviceId":"device-a"`, `"lastSyncTimestamp":"2026-03-01T10:00:00Z"`, `"favorites":[]`} {
			if !strings.Contains(body, want) {
				t.Errorf("expected %s in body %s", want, body)
			}
		}
		writeEnvelope(w, http.StatusOK, `{"apiVersion":"2.0","data":{"serverChanges":[{"userId":"u-1","entityType":"team","entityId":"eng-che","createdAt":"2026-03-01T09:00:00Z","updatedAt":"2026-03-01T09:00:00Z","deletedAt":"2026-03-01T11:00:00Z"}],"conflicts":[],"syncTimestamp":"2026-03-01T12:00:00Z"}}`)
	})

	since := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	result, err := client.IncrementalSync(context.Background(), "u-1", "device-a", since, nil)
	if err != nil {
		t.Fatalf("incremental sync: %v", err)
	}
	if len(result.ServerChanges) != 1 || !result.ServerChanges[0].IsDeleted() {
		t.Fatalf("expected one tombstone, got %+v", result.ServerChanges)
	}
	if !result.SyncTimestamp.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected sync timestamp: %v", result.SyncTimestamp)
	}
}

func TestClient_CircuitBreakerOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeEnvelope(w, http.StatusInternalServerError, `{}`)
	}, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	for i := 0; i < 3; i++ {
		if _, err := client.Stats(context.Background(), "u-1"); !errors.Is(err, favsync.ErrNetworkFailure) {
			t.Fatalf("attempt %d: expected network failure, got %v", i, err)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("expected breaker to short-circuit the third call, got %d calls", calls.Load())
	}
}

func TestClient_TransportFailureIsNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient(ClientConfig{BaseURL: baseURL, Logger: logging.NewNop(), Timeout: time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.List(context.Background(), "u-1", nil); !errors.Is(err, favsync.ErrNetworkFailure) {
		t.Fatalf("expected network failure, got %v", err)
	}
}

func TestNewClient_RejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://example.com", "http://"} {
		if _, err := NewClient(ClientConfig{BaseURL: raw}); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
