package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAPIToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{name: "open when unconfigured", token: "", header: "", want: http.StatusOK},
		{name: "missing header", token: "secret", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", token: "secret", header: "Basic secret", want: http.StatusUnauthorized},
		{name: "wrong token", token: "secret", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid token", token: "secret", header: "bearer secret", want: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/favorites/users/u-1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireAPIToken(tt.token, okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestDeviceIdentity_StoresHeader(t *testing.T) {
	t.Parallel()

	var got string
	handler := DeviceIdentity(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = deviceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/favorites", nil)
	req.Header.Set(deviceIDHeader, " device-a ")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "device-a" {
		t.Fatalf("expected device-a in context, got %q", got)
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	t.Parallel()

	handler := CORS([]string{"https://matchday.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/favorites/users/u-1", nil)
	req.Header.Set("Origin", "https://matchday.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://matchday.example.com" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Authorization,Content-Type,Accept,X-Device-ID" {
		t.Fatalf("unexpected Access-Control-Allow-Headers: %q", got)
	}
}

func TestCORS_PreflightAndUnknownOrigin(t *testing.T) {
	t.Parallel()

	preflight := httptest.NewRequest(http.MethodOptions, "/favorites", nil)
	preflight.Header.Set("Origin", "https://matchday.example.com")
	rec := httptest.NewRecorder()
	CORS([]string{"*"}, okHandler()).ServeHTTP(rec, preflight)
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("unexpected preflight response: %d %q", rec.Code, rec.Header().Get("Access-Control-Allow-Origin"))
	}

	req := httptest.NewRequest(http.MethodGet, "/favorites/users/u-1", nil)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	rec = httptest.NewRecorder()
	CORS([]string{"https://matchday.example.com"}, okHandler()).ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
	}
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/readyz", " /healthz "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/favorites", "/favorites/users/u-1/sync"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestRequestLogging_SeesDeviceID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.FromZap(zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)))

	handler := DeviceIdentity(RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/favorites/users/u-1", nil)
	req.Header.Set(deviceIDHeader, "device-a")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	for _, want := range []string{`"device_id":"device-a"`, `"status":503`, `"bytes":4`, `"level":"error"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in log line %s", want, line)
		}
	}
}
