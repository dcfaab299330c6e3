package postgres

import (
	"database/sql"
	"time"
)

type favoriteTableModel struct {
	ID              int64          `db:"id"`
	UserID          string         `db:"user_id"`
	EntityType      string         `db:"entity_type"`
	EntityID        string         `db:"entity_id"`
	Preferences     []byte         `db:"preferences"`
	UpdatedByDevice sql.NullString `db:"updated_by_device"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type favoriteInsertModel struct {
	UserID          string         `db:"user_id"`
	EntityType      string         `db:"entity_type"`
	EntityID        string         `db:"entity_id"`
	Preferences     []byte         `db:"preferences"`
	UpdatedByDevice sql.NullString `db:"updated_by_device"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type conflictTableModel struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	EntityType    string    `db:"entity_type"`
	EntityID      string    `db:"entity_id"`
	ServerVersion []byte    `db:"server_version"`
	ClientVersion []byte    `db:"client_version"`
	DetectedAt    time.Time `db:"detected_at"`
}
