package favorite

import (
	"sort"
	"time"
)

// PreferenceNotifications is the preference key the stats count as "notify me".
const PreferenceNotifications = "notifications"

// SyncResult is the server's answer to an incremental sync.
// ServerChanges carries live records and tombstones the client must apply.
type SyncResult struct {
	ServerChanges []Favorite `json:"serverChanges"`
	Conflicts     []Conflict `json:"conflicts"`
	SyncTimestamp time.Time  `json:"syncTimestamp"`
}

// FullSnapshot is the server's complete live set, as returned by force sync.
type FullSnapshot struct {
	Favorites     []Favorite `json:"favorites"`
	SyncTimestamp time.Time  `json:"syncTimestamp"`
}

type Stats struct {
	Total                int                `json:"total"`
	ByEntityType         map[EntityType]int `json:"byEntityType"`
	NotificationsEnabled int                `json:"notificationsEnabled"`
	LastAddedAt          *time.Time         `json:"lastAddedAt,omitempty"`
}

func BuildStats(items []Favorite) Stats {
	out := Stats{ByEntityType: make(map[EntityType]int, len(AllEntityTypes()))}
	for _, entityType := range AllEntityTypes() {
		out.ByEntityType[entityType] = 0
	}

	for _, item := range items {
		if item.IsDeleted() {
			continue
		}
		out.Total++
		out.ByEntityType[item.EntityType]++
		if enabled, _ := item.Preferences[PreferenceNotifications].(bool); enabled {
			out.NotificationsEnabled++
		}
		if out.LastAddedAt == nil || item.CreatedAt.After(*out.LastAddedAt) {
			createdAt := item.CreatedAt
			out.LastAddedAt = &createdAt
		}
	}

	return out
}

const (
	FeedItemFavorite = "favorite"
	FeedItemFixture  = "fixture"
)

type FeedItem struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	EntityType EntityType     `json:"entityType"`
	EntityID   string         `json:"entityId"`
	Title      string         `json:"title"`
	Subtitle   string         `json:"subtitle,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	OccursAt   time.Time      `json:"occursAt"`
}

type FeedPage struct {
	Items   []FeedItem `json:"items"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
	HasMore bool       `json:"hasMore"`
}

// SortLatestFirst orders records newest-created first, then by key for stability.
func SortLatestFirst(items []Favorite) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].Key().String() < items[j].Key().String()
	})
}
