package favorite

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Resolution is the user's choice for a detected sync conflict.
type Resolution string

const (
	ResolutionKeepServer Resolution = "keep_server"
	ResolutionKeepClient Resolution = "keep_client"
	ResolutionMerge      Resolution = "merge"
)

func ParseResolution(v string) (Resolution, error) {
	resolution := Resolution(strings.ToLower(strings.TrimSpace(v)))
	if !resolution.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidResolution, v)
	}
	return resolution, nil
}

func (r Resolution) Valid() bool {
	switch r {
	case ResolutionKeepServer, ResolutionKeepClient, ResolutionMerge:
		return true
	default:
		return false
	}
}

// Conflict records a favorite edited on two devices since the client's last sync.
type Conflict struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	EntityType    EntityType `json:"entityType"`
	EntityID      string     `json:"entityId"`
	ServerVersion Favorite   `json:"serverVersion"`
	ClientVersion Favorite   `json:"clientVersion"`
	DetectedAt    time.Time  `json:"detectedAt"`
}

func (c Conflict) Key() Key {
	return Key{UserID: c.UserID, EntityType: c.EntityType, EntityID: c.EntityID}
}

// MergePreferences unions both key sets. Keys present on both sides take the
// value of the record with the newer UpdatedAt; ties go to the server.
func MergePreferences(server, client Favorite) Preferences {
	out := make(Preferences, len(server.Preferences)+len(client.Preferences))
	clientWins := client.UpdatedAt.After(server.UpdatedAt)

	for key, value := range server.Preferences {
		out[key] = value
	}
	for key, value := range client.Preferences {
		if _, exists := out[key]; exists && !clientWins {
			continue
		}
		out[key] = value
	}
	return out
}

func PreferencesEqual(left, right Preferences) bool {
	if len(left) == 0 && len(right) == 0 {
		return true
	}
	return reflect.DeepEqual(left, right)
}
