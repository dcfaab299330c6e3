package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	qb "github.com/riskibarqy/matchday-favorites/internal/platform/querybuilder"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get favorite: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("relation favorites does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected foreign key violation to be ignored")
		}
	})
}

func TestJSONBRoundTrip(t *testing.T) {
	raw, err := encodeJSONB(nil)
	if err != nil || string(raw) != "{}" {
		t.Fatalf("expected empty object, got %s err=%v", raw, err)
	}

	decoded, err := decodeJSONB([]byte(`{"notifications":true}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["notifications"] != true {
		t.Fatalf("unexpected decoded value: %+v", decoded)
	}

	empty, err := decodeJSONB([]byte("{}"))
	if err != nil || empty != nil {
		t.Fatalf("expected nil map for empty object, got %+v err=%v", empty, err)
	}
}

func TestFavoriteFromRow(t *testing.T) {
	deletedAt := time.Date(2026, 10, 2, 8, 0, 0, 123456789, time.FixedZone("WIB", 7*3600))
	item, err := favoriteFromRow(favoriteTableModel{
		ID:              7,
		UserID:          "user-1",
		EntityType:      "team",
		EntityID:        "eng-ars",
		Preferences:     []byte(`{"notifications":false}`),
		UpdatedByDevice: sql.NullString{String: "device-a", Valid: true},
		CreatedAt:       deletedAt.Add(-time.Hour),
		UpdatedAt:       deletedAt,
		DeletedAt:       &deletedAt,
	})
	if err != nil {
		t.Fatalf("favorite from row: %v", err)
	}
	if item.EntityType != favorite.EntityTypeTeam || item.UpdatedByDevice != "device-a" {
		t.Fatalf("unexpected favorite: %+v", item)
	}
	if item.DeletedAt == nil || item.DeletedAt.Location() != time.UTC || item.DeletedAt.Nanosecond() != 123000000 {
		t.Fatalf("expected UTC millisecond tombstone, got %v", item.DeletedAt)
	}
}

func TestFavoriteQueries(t *testing.T) {
	key := favorite.Key{UserID: "user-1", EntityType: favorite.EntityTypeTeam, EntityID: "eng-ars"}
	conditions := keyConditions(key)
	if len(conditions) != 3 {
		t.Fatalf("expected 3 key conditions, got %d", len(conditions))
	}

	query, args, err := qb.Update(favoritesTable).
		Set("deleted_at", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)).
		Where(append(conditions, qb.IsNull("deleted_at"))...).
		Returning(favoriteColumns...).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	want := "UPDATE favorites SET deleted_at = $1 WHERE user_id = $2 AND entity_type = $3 AND entity_id = $4 AND deleted_at IS NULL RETURNING id, user_id"
	if !strings.HasPrefix(query, want) {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 4 || args[3] != "eng-ars" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
