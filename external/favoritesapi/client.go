package favoritesapi

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/favsync"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
	"github.com/riskibarqy/matchday-favorites/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	deviceIDHeader  = "X-Device-ID"
	maxResponseSize = 4 << 20
)

var errFavoritesTransient = crerr.New("favorites api transient failure")

// ErrRejected is returned for requests the server refused as invalid.
var ErrRejected = stderrors.New("favorites request rejected")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	DeviceID       string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the favorites service over its JSON envelope API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	deviceID   string
	maxRetries int
	// sharedTimeout bounds a GET shared by several callers; it covers every
	// attempt plus the backoff between them.
	sharedTimeout time.Duration
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
	flight        resilience.SingleFlight
}

var _ favsync.Remote = (*Client)(nil)

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid favorites base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	maxRetries := maxInt(cfg.MaxRetries, 0)
	return &Client{
		httpClient:    httpClient,
		sharedTimeout: requestBudget(httpClient.Timeout, maxRetries),
		baseURL:       baseURL,
		token:         strings.TrimSpace(cfg.Token),
		deviceID:      strings.TrimSpace(cfg.DeviceID),
		maxRetries:    maxRetries,
		logger:        logger,
		breaker:       resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}, nil
}

func (c *Client) List(ctx context.Context, userID string, entityType *favorite.EntityType) ([]favorite.Favorite, error) {
	raw, err := c.doJSON(ctx, http.MethodGet, userPath(userID), entityTypeQuery(entityType), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]favorite.Favorite](raw)
}

func (c *Client) ListDetailed(ctx context.Context, userID string, entityType *favorite.EntityType) ([]favorite.Favorite, error) {
	raw, err := c.doJSON(ctx, http.MethodGet, userPath(userID, "detailed"), entityTypeQuery(entityType), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]favorite.Favorite](raw)
}

func (c *Client) Create(ctx context.Context, userID string, entityType favorite.EntityType, entityID string, preferences favorite.Preferences) (favorite.Favorite, error) {
	raw, err := c.doJSON(ctx, http.MethodPost, "/favorites", nil, createRequest{
		UserID:      userID,
		EntityType:  string(entityType),
		EntityID:    entityID,
		Preferences: preferences,
	})
	if err != nil {
		return favorite.Favorite{}, err
	}
	return decodeData[favorite.Favorite](raw)
}

func (c *Client) Delete(ctx context.Context, userID string, entityType favorite.EntityType, entityID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, userPath(userID, string(entityType), entityID), nil, nil)
	return err
}

func (c *Client) Exists(ctx context.Context, userID string, entityType favorite.EntityType, entityID string) (bool, error) {
	raw, err := c.doJSON(ctx, http.MethodGet, userPath(userID, string(entityType), entityID, "check"), nil, nil)
	if err != nil {
		return false, err
	}
	out, err := decodeData[checkResponse](raw)
	return out.IsFavorite, err
}

func (c *Client) UpdatePreferences(ctx context.Context, userID string, entityType favorite.EntityType, entityID string, preferences favorite.Preferences) (favorite.Favorite, error) {
	raw, err := c.doJSON(ctx, http.MethodPut, userPath(userID, string(entityType), entityID, "preferences"), nil, preferencesRequest{
		Preferences: preferences,
	})
	if err != nil {
		return favorite.Favorite{}, err
	}
	return decodeData[favorite.Favorite](raw)
}

func (c *Client) IncrementalSync(ctx context.Context, userID, deviceID string, since time.Time, local []favorite.Favorite) (favorite.SyncResult, error) {
	if local == nil {
		local = []favorite.Favorite{}
	}
	raw, err := c.doJSON(ctx, http.MethodPost, userPath(userID, "sync"), nil, syncRequest{
		DeviceID:          deviceID,
		LastSyncTimestamp: since.UTC(),
		Favorites:         local,
	})
	if err != nil {
		return favorite.SyncResult{}, err
	}
	return decodeData[favorite.SyncResult](raw)
}

func (c *Client) ForceSync(ctx context.Context, userID, deviceID string) (favorite.FullSnapshot, error) {
	raw, err := c.doJSON(ctx, http.MethodPost, userPath(userID, "force-sync"), nil, forceSyncRequest{DeviceID: deviceID})
	if err != nil {
		return favorite.FullSnapshot{}, err
	}
	return decodeData[favorite.FullSnapshot](raw)
}

func (c *Client) ResolveConflict(ctx context.Context, userID, conflictID string, resolution favorite.Resolution, favoriteData *favorite.Favorite) (favorite.Favorite, error) {
	raw, err := c.doJSON(ctx, http.MethodPost, userPath(userID, "resolve-conflict"), nil, resolveRequest{
		ConflictID:   conflictID,
		Resolution:   string(resolution),
		FavoriteData: favoriteData,
	})
	if err != nil {
		return favorite.Favorite{}, err
	}
	return decodeData[favorite.Favorite](raw)
}

func (c *Client) Stats(ctx context.Context, userID string) (favorite.Stats, error) {
	raw, err := c.doJSON(ctx, http.MethodGet, userPath(userID, "stats"), nil, nil)
	if err != nil {
		return favorite.Stats{}, err
	}
	return decodeData[favorite.Stats](raw)
}

func (c *Client) Feed(ctx context.Context, userID string, limit, offset int) (favorite.FeedPage, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	raw, err := c.doJSON(ctx, http.MethodGet, userPath(userID, "feed"), query, nil)
	if err != nil {
		return favorite.FeedPage{}, err
	}
	return decodeData[favorite.FeedPage](raw)
}

// doJSON sends one API call and returns the raw envelope body.
// Concurrent identical GETs share one request.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "favorites api circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: favorites service is temporarily unavailable", favsync.ErrNetworkFailure)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("favorites_api.method", method),
			attribute.String("favorites_api.path", path),
		)
	}

	var (
		raw []byte
		err error
	)
	if method == http.MethodGet {
		var out any
		// The shared request outlives any single caller; each caller stops
		// waiting on its own ctx.
		out, err, _ = c.flight.DoContext(ctx, method+" "+fullURL, func() (any, error) {
			reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedTimeout)
			defer cancel()

			body, reqErr := c.executeRequest(reqCtx, method, fullURL, nil)
			if reqErr != nil && stderrors.Is(reqErr, context.DeadlineExceeded) {
				reqErr = fmt.Errorf("%w: %w: shared request timed out after %s", favsync.ErrNetworkFailure, errFavoritesTransient, c.sharedTimeout)
			}
			c.recordCircuitResult(reqErr)
			return body, reqErr
		})
		raw, _ = out.([]byte)
	} else {
		var body []byte
		body, err = encodePayload(payload)
		if err != nil {
			return nil, err
		}
		raw, err = c.executeRequest(ctx, method, fullURL, body)
		c.recordCircuitResult(err)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, method, fullURL string, body []byte) ([]byte, error) {
	retries := 0
	if isIdempotent(method) {
		retries = c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		c.setHeaders(req, body != nil)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %w: send request: %s", favsync.ErrNetworkFailure, errFavoritesTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: %w: read response body: %v", favsync.ErrNetworkFailure, errFavoritesTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				lastErr = statusError(resp.StatusCode, raw)
				if !isRetryableStatus(resp.StatusCode) {
					return nil, lastErr
				}
			}
		}

		if attempt == retries {
			break
		}
		timer := time.NewTimer(retryBackoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: favorites request failed", favsync.ErrNetworkFailure)
	}
	c.logger.WarnContext(ctx, "favorites api request failed", "method", method, "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func retryBackoff(attempt int) time.Duration {
	return time.Duration(attempt+1) * 200 * time.Millisecond
}

func requestBudget(perAttempt time.Duration, retries int) time.Duration {
	budget := perAttempt * time.Duration(retries+1)
	for attempt := 0; attempt < retries; attempt++ {
		budget += retryBackoff(attempt)
	}
	return budget
}

func (c *Client) setHeaders(req *http.Request, withBody bool) {
	req.Header.Set("Accept", "application/json")
	if withBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.deviceID != "" {
		req.Header.Set(deviceIDHeader, c.deviceID)
	}
}

func (c *Client) recordCircuitResult(err error) {
	c.breaker.Record(isFavoritesCircuitFailure(err))
}

func encodePayload(payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encode favorites request: %w", err)
	}
	return append([]byte(nil), buf.B...), nil
}

func decodeData[T any](raw []byte) (T, error) {
	var env responseEnvelope[T]
	if err := sonic.Unmarshal(raw, &env); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", favsync.ErrMalformedPayload, err)
	}
	if env.Error != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s", favsync.ErrMalformedPayload, env.Error.Message)
	}
	return env.Data, nil
}

func statusError(statusCode int, raw []byte) error {
	message := abbreviateBody(raw)
	var env responseEnvelope[any]
	if err := sonic.Unmarshal(raw, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		message = env.Error.Message
	}

	switch {
	case statusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", favorite.ErrNotFound, message)
	case statusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", favorite.ErrDuplicateFavorite, message)
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", favsync.ErrUnauthorized, message)
	case isRetryableStatus(statusCode):
		return fmt.Errorf("%w: %w: status=%d body=%s", favsync.ErrNetworkFailure, errFavoritesTransient, statusCode, message)
	default:
		return fmt.Errorf("%w: status=%d: %s", ErrRejected, statusCode, message)
	}
}

func userPath(userID string, parts ...string) string {
	var b strings.Builder
	b.WriteString("/favorites/users/")
	b.WriteString(url.PathEscape(userID))
	for _, part := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(part))
	}
	return b.String()
}

func entityTypeQuery(entityType *favorite.EntityType) url.Values {
	if entityType == nil {
		return nil
	}
	return url.Values{"entityType": []string{string(*entityType)}}
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

func isFavoritesCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFavoritesTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return value
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
