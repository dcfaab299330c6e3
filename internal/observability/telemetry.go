// Package observability starts the process-wide tracing and profiling
// integrations of the favorites API.
package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"slices"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/matchday-favorites/internal/config"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

// Telemetry owns whatever Start enabled. Shutdown stops it in reverse order.
type Telemetry struct {
	logger    *logging.Logger
	closers   []closer
	pprofAddr string
}

// Start enables Uptrace tracing, Pyroscope profiling and the pprof listener
// according to cfg. On error everything started so far is stopped again.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	steps := []func(config.Config) error{t.startUptrace, t.startPyroscope, t.startPprof}
	for _, step := range steps {
		if err := step(cfg); err != nil {
			_ = t.Shutdown(context.Background())
			return nil, err
		}
	}
	return t, nil
}

// PprofAddr is the bound pprof address, empty when pprof is off.
func (t *Telemetry) PprofAddr() string {
	return t.pprofAddr
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for _, c := range slices.Backward(t.closers) {
		if err := c.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", c.name, err))
			continue
		}
		t.logger.Info("telemetry stopped", "component", c.name)
	}
	t.closers = nil
	return errors.Join(errs...)
}

func (t *Telemetry) add(name string, fn func(context.Context) error) {
	t.closers = append(t.closers, closer{name: name, fn: fn})
}

func (t *Telemetry) startUptrace(cfg config.Config) error {
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		t.logger.Info("uptrace disabled")
		return nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	t.add("uptrace", uptrace.Shutdown)
	t.logger.Info("uptrace enabled", "service_version", cfg.ServiceVersion, "logs", cfg.UptraceLogsEnabled)
	return nil
}

func (t *Telemetry) startPyroscope(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		t.logger.Info("pyroscope disabled")
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              map[string]string{"env": cfg.AppEnv, "service": cfg.ServiceName},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
		},
	})
	if err != nil {
		return fmt.Errorf("start pyroscope: %w", err)
	}
	t.add("pyroscope", func(context.Context) error { return profiler.Stop() })
	t.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return nil
}

// startPprof binds before returning so a taken port fails startup.
func (t *Telemetry) startPprof(cfg config.Config) error {
	if !cfg.PprofEnabled {
		return nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return fmt.Errorf("listen pprof %s: %w", cfg.PprofAddr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error("pprof server failed", "error", err)
		}
	}()

	t.pprofAddr = ln.Addr().String()
	t.add("pprof", srv.Shutdown)
	t.logger.Info("pprof listening", "addr", t.pprofAddr)
	return nil
}
