package favorite

import (
	"fmt"
	"strings"
	"time"
)

// EntityType is the closed set of things a user can mark as favorite.
type EntityType string

const (
	EntityTypeTeam   EntityType = "team"
	EntityTypePlayer EntityType = "player"
	EntityTypeLeague EntityType = "league"
	EntityTypeMatch  EntityType = "match"
)

func AllEntityTypes() []EntityType {
	return []EntityType{EntityTypeTeam, EntityTypePlayer, EntityTypeLeague, EntityTypeMatch}
}

func ParseEntityType(v string) (EntityType, error) {
	entityType := EntityType(strings.ToLower(strings.TrimSpace(v)))
	if !entityType.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntityType, v)
	}
	return entityType, nil
}

func (t EntityType) Valid() bool {
	switch t {
	case EntityTypeTeam, EntityTypePlayer, EntityTypeLeague, EntityTypeMatch:
		return true
	default:
		return false
	}
}

func (t EntityType) String() string {
	return string(t)
}

// Key identifies one favorite; at most one live record exists per key.
type Key struct {
	UserID     string
	EntityType EntityType
	EntityID   string
}

func (k Key) Validate() error {
	if strings.TrimSpace(k.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if !k.EntityType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEntityType, k.EntityType)
	}
	if strings.TrimSpace(k.EntityID) == "" {
		return fmt.Errorf("entity id is required")
	}
	return nil
}

func (k Key) String() string {
	return k.UserID + "/" + string(k.EntityType) + "/" + k.EntityID
}

// Preferences is an opaque per-favorite settings map (notifications and so on).
type Preferences map[string]any

func (p Preferences) Clone() Preferences {
	if p == nil {
		return nil
	}
	out := make(Preferences, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// EntityData is a denormalized snapshot of the favorited entity. It may be stale.
type EntityData map[string]any

func (d EntityData) Clone() EntityData {
	if d == nil {
		return nil
	}
	out := make(EntityData, len(d))
	for key, value := range d {
		out[key] = value
	}
	return out
}

// Favorite is one user's favorite record.
// DeletedAt is only set on tombstones carried by sync responses.
type Favorite struct {
	UserID          string      `json:"userId"`
	EntityType      EntityType  `json:"entityType"`
	EntityID        string      `json:"entityId"`
	Preferences     Preferences `json:"preferences,omitempty"`
	EntityData      EntityData  `json:"entityData,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	UpdatedByDevice string      `json:"updatedByDevice,omitempty"`
	DeletedAt       *time.Time  `json:"deletedAt,omitempty"`
}

func (f Favorite) Key() Key {
	return Key{UserID: f.UserID, EntityType: f.EntityType, EntityID: f.EntityID}
}

func (f Favorite) IsDeleted() bool {
	return f.DeletedAt != nil
}

func (f Favorite) Validate() error {
	if err := f.Key().Validate(); err != nil {
		return err
	}
	if f.UpdatedAt.Before(f.CreatedAt) {
		return fmt.Errorf("favorite updated_at is before created_at")
	}
	return nil
}

// Clone copies the record including its maps so callers can mutate freely.
func (f Favorite) Clone() Favorite {
	out := f
	out.Preferences = f.Preferences.Clone()
	out.EntityData = f.EntityData.Clone()
	if f.DeletedAt != nil {
		deletedAt := *f.DeletedAt
		out.DeletedAt = &deletedAt
	}
	return out
}

// Timestamp normalizes t to the store precision: UTC, millisecond.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func CloneAll(items []Favorite) []Favorite {
	out := make([]Favorite, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

// Index maps records by key; later duplicates win.
func Index(items []Favorite) map[Key]Favorite {
	out := make(map[Key]Favorite, len(items))
	for _, item := range items {
		out[item.Key()] = item
	}
	return out
}
