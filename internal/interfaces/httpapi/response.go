package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/usecase"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	envelopeVersion = "2.0"
	errorDomain     = "matchday-favorites"
)

var errInternal = errors.New("internal server error")

// envelope is the JSON shape of every response: data on success, error
// otherwise.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Status  string       `json:"status"`
	Errors  []errorCause `json:"errors,omitempty"`
}

type errorCause struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorClasses is checked in order; the first sentinel found in the chain wins.
var errorClasses = []struct {
	target error
	class  errorClass
}{
	{usecase.ErrInvalidInput, errorClass{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{favorite.ErrDuplicateFavorite, errorClass{http.StatusConflict, "duplicate", "ALREADY_EXISTS"}},
	{usecase.ErrNotFound, errorClass{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrUnauthorized, errorClass{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrDependencyUnavailable, errorClass{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

var internalClass = errorClass{http.StatusInternalServerError, "internalError", "INTERNAL"}

func classifyError(err error) errorClass {
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c.class
		}
	}
	return internalClass
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: envelopeVersion, Data: data})
}

// writeError maps err to its HTTP class. Unclassified errors are reported as
// a bare 500 so internals do not leak to clients.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classifyError(err)
	msg := err.Error()
	if class == internalClass {
		msg = errInternal.Error()
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, "internal error")
	}

	writeJSON(w, class.HTTPStatus, envelope{
		APIVersion: envelopeVersion,
		Error: &errorBody{
			Code:    class.HTTPStatus,
			Message: msg,
			Status:  class.Status,
			Errors:  []errorCause{{Domain: errorDomain, Reason: class.Reason, Message: msg}},
		},
	})
}
