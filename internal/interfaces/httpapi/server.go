package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
)

type RouterConfig struct {
	APIToken           string
	CORSAllowedOrigins []string
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerFavoriteRoutes(mux, handler, cfg.APIToken)
	registerSyncRoutes(mux, handler, cfg.APIToken)

	// DeviceIdentity wraps RequestLogging so the access log sees the device id.
	return RequestTracing(DeviceIdentity(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeError(r.Context(), w, fmt.Errorf("%w: panic: %v", errInternal, rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
