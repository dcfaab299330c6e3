package favsync

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
)

var (
	ErrNetworkFailure   = errors.New("favorites service unreachable")
	ErrUnauthorized     = errors.New("favorites request unauthorized")
	ErrMalformedPayload = errors.New("malformed favorites payload")
	ErrConflictDetected = errors.New("favorites sync conflict detected")
	ErrToggleInProgress = errors.New("favorite toggle already in progress")
	ErrSessionClosed    = errors.New("favorites session closed")
)

// ConflictError is returned by a sync that persisted the server state but
// found tuples edited on two devices. Each conflict needs an explicit Resolve.
type ConflictError struct {
	Conflicts []favorite.Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %d unresolved", ErrConflictDetected.Error(), len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflictDetected
}

// ConflictsFrom extracts the pending conflicts carried by err, if any.
func ConflictsFrom(err error) ([]favorite.Conflict, bool) {
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		return nil, false
	}
	return conflictErr.Conflicts, true
}

// isPropagated reports read failures that must reach the caller instead of
// falling back to the cache.
func isPropagated(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrMalformedPayload)
}
