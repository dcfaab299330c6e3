package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	qb "github.com/riskibarqy/matchday-favorites/internal/platform/querybuilder"
)

const favoritesTable = "favorites"

var favoriteColumns = []string{
	"id",
	"user_id",
	"entity_type",
	"entity_id",
	"preferences",
	"updated_by_device",
	"created_at",
	"updated_at",
	"deleted_at",
}

// FavoriteRepository stores one row per (user, entity type, entity id).
// Deletes set deleted_at; a later create revives the same row.
type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string, entityType *favorite.EntityType) ([]favorite.Favorite, error) {
	conditions := []qb.Condition{
		qb.Eq("user_id", userID),
		qb.IsNull("deleted_at"),
	}
	if entityType != nil {
		conditions = append(conditions, qb.Eq("entity_type", string(*entityType)))
	}

	query, args, err := qb.Select(favoriteColumns...).From(favoritesTable).
		Where(conditions...).
		OrderBy("created_at DESC", "entity_type", "entity_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list favorites query: %w", err)
	}

	var rows []favoriteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list favorites user=%s: %w", userID, err)
	}

	out := make([]favorite.Favorite, 0, len(rows))
	for _, row := range rows {
		item, err := favoriteFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *FavoriteRepository) Get(ctx context.Context, key favorite.Key) (favorite.Favorite, bool, error) {
	return r.get(ctx, key, false)
}

func (r *FavoriteRepository) GetIncludingDeleted(ctx context.Context, key favorite.Key) (favorite.Favorite, bool, error) {
	return r.get(ctx, key, true)
}

func (r *FavoriteRepository) get(ctx context.Context, key favorite.Key, includeDeleted bool) (favorite.Favorite, bool, error) {
	conditions := keyConditions(key)
	if !includeDeleted {
		conditions = append(conditions, qb.IsNull("deleted_at"))
	}

	query, args, err := qb.Select(favoriteColumns...).From(favoritesTable).
		Where(conditions...).
		Limit(1).
		ToSQL()
	if err != nil {
		return favorite.Favorite{}, false, fmt.Errorf("build get favorite query: %w", err)
	}

	var row favoriteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return favorite.Favorite{}, false, nil
		}
		return favorite.Favorite{}, false, fmt.Errorf("get favorite %s: %w", key, err)
	}

	item, err := favoriteFromRow(row)
	if err != nil {
		return favorite.Favorite{}, false, err
	}
	return item, true, nil
}

func (r *FavoriteRepository) Create(ctx context.Context, item favorite.Favorite) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate favorite: %w", err)
	}

	preferences, err := encodeJSONB(item.Preferences)
	if err != nil {
		return fmt.Errorf("encode favorite preferences: %w", err)
	}

	query, args, err := qb.InsertModel(favoritesTable, favoriteInsertModel{
		UserID:          item.UserID,
		EntityType:      string(item.EntityType),
		EntityID:        item.EntityID,
		Preferences:     preferences,
		UpdatedByDevice: nullString(item.UpdatedByDevice),
		CreatedAt:       utc(item.CreatedAt),
		UpdatedAt:       utc(item.UpdatedAt),
	}, `ON CONFLICT (user_id, entity_type, entity_id)
DO UPDATE SET
    preferences = EXCLUDED.preferences,
    updated_by_device = EXCLUDED.updated_by_device,
    created_at = EXCLUDED.created_at,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL
WHERE favorites.deleted_at IS NOT NULL
RETURNING id`)
	if err != nil {
		return fmt.Errorf("build insert favorite query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		// A live row makes the conditional upsert return nothing.
		if isNotFound(err) || isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", favorite.ErrDuplicateFavorite, item.Key())
		}
		return fmt.Errorf("insert favorite %s: %w", item.Key(), err)
	}
	return nil
}

func (r *FavoriteRepository) UpdatePreferences(ctx context.Context, key favorite.Key, preferences favorite.Preferences, deviceID string, updatedAt time.Time) (favorite.Favorite, error) {
	encoded, err := encodeJSONB(preferences)
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("encode favorite preferences: %w", err)
	}

	conditions := append(keyConditions(key), qb.IsNull("deleted_at"))
	query, args, err := qb.Update(favoritesTable).
		Set("preferences", encoded).
		Set("updated_by_device", nullString(deviceID)).
		Set("updated_at", utc(updatedAt)).
		Where(conditions...).
		Returning(favoriteColumns...).
		ToSQL()
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("build update favorite preferences query: %w", err)
	}

	var row favoriteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return favorite.Favorite{}, fmt.Errorf("%w: %s", favorite.ErrNotFound, key)
		}
		return favorite.Favorite{}, fmt.Errorf("update favorite preferences %s: %w", key, err)
	}
	return favoriteFromRow(row)
}

func (r *FavoriteRepository) Delete(ctx context.Context, key favorite.Key, deviceID string, deletedAt time.Time) error {
	conditions := append(keyConditions(key), qb.IsNull("deleted_at"))
	query, args, err := qb.Update(favoritesTable).
		Set("deleted_at", utc(deletedAt)).
		Set("updated_at", utc(deletedAt)).
		Set("updated_by_device", nullString(deviceID)).
		Where(conditions...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete favorite query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete favorite %s: %w", key, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete favorite rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", favorite.ErrNotFound, key)
	}
	return nil
}

func keyConditions(key favorite.Key) []qb.Condition {
	return []qb.Condition{
		qb.Eq("user_id", key.UserID),
		qb.Eq("entity_type", string(key.EntityType)),
		qb.Eq("entity_id", key.EntityID),
	}
}

func favoriteFromRow(row favoriteTableModel) (favorite.Favorite, error) {
	preferences, err := decodeJSONB(row.Preferences)
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("decode favorite preferences id=%d: %w", row.ID, err)
	}

	item := favorite.Favorite{
		UserID:          row.UserID,
		EntityType:      favorite.EntityType(row.EntityType),
		EntityID:        row.EntityID,
		Preferences:     preferences,
		CreatedAt:       favorite.Timestamp(row.CreatedAt),
		UpdatedAt:       favorite.Timestamp(row.UpdatedAt),
		UpdatedByDevice: row.UpdatedByDevice.String,
	}
	if row.DeletedAt != nil {
		deletedAt := favorite.Timestamp(*row.DeletedAt)
		item.DeletedAt = &deletedAt
	}
	return item, nil
}
