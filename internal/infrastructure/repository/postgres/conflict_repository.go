package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-favorites/internal/domain/favorite"
	qb "github.com/riskibarqy/matchday-favorites/internal/platform/querybuilder"
)

const conflictsTable = "favorite_conflicts"

var conflictColumns = []string{
	"id",
	"user_id",
	"entity_type",
	"entity_id",
	"server_version",
	"client_version",
	"detected_at",
}

type ConflictRepository struct {
	db *sqlx.DB
}

func NewConflictRepository(db *sqlx.DB) *ConflictRepository {
	return &ConflictRepository{db: db}
}

// Save keeps a single open conflict per favorite; a newer detection replaces it.
func (r *ConflictRepository) Save(ctx context.Context, item favorite.Conflict) error {
	serverVersion, err := sonic.Marshal(item.ServerVersion)
	if err != nil {
		return fmt.Errorf("encode conflict server version: %w", err)
	}
	clientVersion, err := sonic.Marshal(item.ClientVersion)
	if err != nil {
		return fmt.Errorf("encode conflict client version: %w", err)
	}

	query, args, err := qb.InsertModel(conflictsTable, conflictTableModel{
		ID:            item.ID,
		UserID:        item.UserID,
		EntityType:    string(item.EntityType),
		EntityID:      item.EntityID,
		ServerVersion: serverVersion,
		ClientVersion: clientVersion,
		DetectedAt:    utc(item.DetectedAt),
	}, `ON CONFLICT (id)
DO UPDATE SET
    server_version = EXCLUDED.server_version,
    client_version = EXCLUDED.client_version,
    detected_at = EXCLUDED.detected_at`)
	if err != nil {
		return fmt.Errorf("build insert conflict query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert conflict id=%s: %w", item.ID, err)
	}
	return nil
}

func (r *ConflictRepository) Get(ctx context.Context, userID, conflictID string) (favorite.Conflict, bool, error) {
	query, args, err := qb.Select(conflictColumns...).From(conflictsTable).
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("id", conflictID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return favorite.Conflict{}, false, fmt.Errorf("build get conflict query: %w", err)
	}

	var row conflictTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return favorite.Conflict{}, false, nil
		}
		return favorite.Conflict{}, false, fmt.Errorf("get conflict id=%s: %w", conflictID, err)
	}

	item, err := conflictFromRow(row)
	if err != nil {
		return favorite.Conflict{}, false, err
	}
	return item, true, nil
}

func (r *ConflictRepository) ListByUser(ctx context.Context, userID string) ([]favorite.Conflict, error) {
	query, args, err := qb.Select(conflictColumns...).From(conflictsTable).
		Where(qb.Eq("user_id", userID)).
		OrderBy("detected_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list conflicts query: %w", err)
	}

	var rows []conflictTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list conflicts user=%s: %w", userID, err)
	}

	out := make([]favorite.Conflict, 0, len(rows))
	for _, row := range rows {
		item, err := conflictFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ConflictRepository) Delete(ctx context.Context, userID, conflictID string) error {
	query, args, err := qb.DeleteFrom(conflictsTable).
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("id", conflictID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete conflict query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete conflict id=%s: %w", conflictID, err)
	}
	return nil
}

func conflictFromRow(row conflictTableModel) (favorite.Conflict, error) {
	item := favorite.Conflict{
		ID:         row.ID,
		UserID:     row.UserID,
		EntityType: favorite.EntityType(row.EntityType),
		EntityID:   row.EntityID,
		DetectedAt: favorite.Timestamp(row.DetectedAt),
	}
	if err := sonic.Unmarshal(row.ServerVersion, &item.ServerVersion); err != nil {
		return favorite.Conflict{}, fmt.Errorf("decode conflict server version id=%s: %w", row.ID, err)
	}
	if err := sonic.Unmarshal(row.ClientVersion, &item.ClientVersion); err != nil {
		return favorite.Conflict{}, fmt.Errorf("decode conflict client version id=%s: %w", row.ID, err)
	}
	return item, nil
}
