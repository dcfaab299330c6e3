package favsync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
)

type ToggleState string

const (
	ToggleStateUnknown     ToggleState = "unknown"
	ToggleStateChecking    ToggleState = "checking"
	ToggleStateFavorite    ToggleState = "favorite"
	ToggleStateNotFavorite ToggleState = "not_favorite"
	ToggleStateToggling    ToggleState = "toggling"
)

func (s ToggleState) busy() bool {
	return s == ToggleStateChecking || s == ToggleStateToggling
}

// ToggleChange is emitted after a toggle settles on the server. Favorite is
// nil on removal, and also on add when the server only reported a duplicate.
type ToggleChange struct {
	Key        favorite.Key
	IsFavorite bool
	Favorite   *favorite.Favorite
}

// Toggle drives the favorite button of a single entity.
type Toggle struct {
	key    favorite.Key
	remote Remote
	logger *logging.Logger

	onChange func(context.Context, ToggleChange)

	mu    sync.Mutex
	state ToggleState
}

func NewToggle(key favorite.Key, remote Remote, logger *logging.Logger, onChange func(context.Context, ToggleChange)) *Toggle {
	if logger == nil {
		logger = logging.Default()
	}
	return &Toggle{
		key:      key,
		remote:   remote,
		logger:   logger,
		onChange: onChange,
		state:    ToggleStateUnknown,
	}
}

func (t *Toggle) Key() favorite.Key {
	return t.key
}

func (t *Toggle) State() ToggleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Check asks the server whether the entity is a favorite. A failed check
// leaves the state unknown.
func (t *Toggle) Check(ctx context.Context) (bool, error) {
	if _, ok := t.begin(ToggleStateChecking); !ok {
		return false, ErrToggleInProgress
	}

	exists, err := t.remote.Exists(ctx, t.key.UserID, t.key.EntityType, t.key.EntityID)
	if err != nil {
		t.settle(ToggleStateUnknown)
		return false, fmt.Errorf("check favorite %s: %w", t.key, err)
	}

	t.settle(settledState(exists))
	return exists, nil
}

// Toggle flips the favorite on the server and returns the new membership.
// The current membership is re-read first so a stale button never issues the
// wrong write. A request made while another check or toggle runs is ignored
// with ErrToggleInProgress.
func (t *Toggle) Toggle(ctx context.Context, preferences favorite.Preferences) (bool, error) {
	prior, ok := t.begin(ToggleStateToggling)
	if !ok {
		return false, ErrToggleInProgress
	}

	exists, err := t.remote.Exists(ctx, t.key.UserID, t.key.EntityType, t.key.EntityID)
	if err != nil {
		t.settle(prior)
		return false, fmt.Errorf("toggle favorite %s: %w", t.key, err)
	}

	if exists {
		return t.remove(ctx, prior)
	}
	return t.add(ctx, prior, preferences)
}

func (t *Toggle) add(ctx context.Context, prior ToggleState, preferences favorite.Preferences) (bool, error) {
	created, err := t.remote.Create(ctx, t.key.UserID, t.key.EntityType, t.key.EntityID, preferences)
	switch {
	case err == nil:
		t.settle(ToggleStateFavorite)
		t.emit(ctx, ToggleChange{Key: t.key, IsFavorite: true, Favorite: &created})
		return true, nil
	case errors.Is(err, favorite.ErrDuplicateFavorite):
		t.logger.InfoContext(ctx, "favorite already exists on server", "key", t.key.String())
		t.settle(ToggleStateFavorite)
		t.emit(ctx, ToggleChange{Key: t.key, IsFavorite: true})
		return true, nil
	default:
		t.settle(prior)
		return false, fmt.Errorf("add favorite %s: %w", t.key, err)
	}
}

func (t *Toggle) remove(ctx context.Context, prior ToggleState) (bool, error) {
	err := t.remote.Delete(ctx, t.key.UserID, t.key.EntityType, t.key.EntityID)
	switch {
	case err == nil:
		t.settle(ToggleStateNotFavorite)
		t.emit(ctx, ToggleChange{Key: t.key, IsFavorite: false})
		return false, nil
	case errors.Is(err, favorite.ErrNotFound):
		// Removed elsewhere in between; settle on whatever the server says now.
		exists, checkErr := t.remote.Exists(ctx, t.key.UserID, t.key.EntityType, t.key.EntityID)
		if checkErr != nil {
			t.settle(ToggleStateUnknown)
			return false, fmt.Errorf("recheck favorite %s: %w", t.key, checkErr)
		}
		t.settle(settledState(exists))
		t.emit(ctx, ToggleChange{Key: t.key, IsFavorite: exists})
		return exists, nil
	default:
		t.settle(prior)
		return false, fmt.Errorf("remove favorite %s: %w", t.key, err)
	}
}

// begin moves to next unless a check or toggle is running and returns the
// state it replaced.
func (t *Toggle) begin(next ToggleState) (ToggleState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prior := t.state
	if prior.busy() {
		return prior, false
	}
	t.state = next
	return prior, true
}

func (t *Toggle) settle(state ToggleState) {
	t.mu.Lock()
	t.state = state
	t.mu.Unlock()
}

func (t *Toggle) emit(ctx context.Context, change ToggleChange) {
	if t.onChange != nil {
		t.onChange(ctx, change)
	}
}

func settledState(exists bool) ToggleState {
	if exists {
		return ToggleStateFavorite
	}
	return ToggleStateNotFavorite
}

// Toggles hands out one Toggle per key so every button for the same entity
// shares a single state machine.
type Toggles struct {
	userID   string
	remote   Remote
	logger   *logging.Logger
	onChange func(context.Context, ToggleChange)

	mu    sync.Mutex
	items map[favorite.Key]*Toggle
}

func NewToggles(userID string, remote Remote, logger *logging.Logger, onChange func(context.Context, ToggleChange)) *Toggles {
	return &Toggles{
		userID:   userID,
		remote:   remote,
		logger:   logger,
		onChange: onChange,
		items:    make(map[favorite.Key]*Toggle),
	}
}

func (t *Toggles) For(entityType favorite.EntityType, entityID string) (*Toggle, error) {
	key := favorite.Key{UserID: t.userID, EntityType: entityType, EntityID: entityID}
	if err := key.Validate(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if toggle, ok := t.items[key]; ok {
		return toggle, nil
	}
	toggle := NewToggle(key, t.remote, t.logger, t.onChange)
	t.items[key] = toggle
	return toggle, nil
}
