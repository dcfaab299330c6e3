package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("entity_type", "entity_id").
		From("user_favorites").
		Where(Eq("user_id", "u-1"), IsNull("deleted_at")).
		OrderBy("created_at DESC").
		Limit(20).
		Offset(40).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT entity_type, entity_id FROM user_favorites WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC LIMIT 20 OFFSET 40"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "u-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InWithExpr(t *testing.T) {
	query, args, err := Select("*").
		From("user_favorites").
		Where(
			In("entity_type", []any{"team", "league"}),
			Expr("updated_at > ?", "2026-03-01"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM user_favorites WHERE entity_type IN ($1, $2) AND updated_at > $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("kv_entries").
		Columns("key", "value").
		Values("favorites:v1:u-1", []byte("{}")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO kv_entries (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = excluded.value"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "favorites:v1:u-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	query, args, err := Update("user_favorites").
		Set("deleted_at", at).
		SetExpr("updated_at", "NOW()").
		Where(Eq("user_id", "u-1"), Eq("entity_id", "eng-ars")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE user_favorites SET deleted_at = $1, updated_at = NOW() WHERE user_id = $2 AND entity_id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != "u-1" || args[2] != "eng-ars" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("favorite_conflicts").
		Where(Eq("user_id", "u-1"), Eq("id", "c-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM favorite_conflicts WHERE user_id = $1 AND id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("favorite_conflicts").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		UserID   string `db:"user_id"`
		EntityID string `db:"entity_id"`
		Ignored  string `db:"-"`
		internal string
	}

	query, args, err := InsertModel("user_favorites", row{UserID: "u-1", EntityID: "eng-ars", internal: "x"}, "RETURNING user_id")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO user_favorites (user_id, entity_id) VALUES ($1, $2) RETURNING user_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestRebind(t *testing.T) {
	got := Rebind("UPDATE kv SET v = $1 WHERE k = $2 AND note = 'costs $3'")
	want := "UPDATE kv SET v = ? WHERE k = ? AND note = 'costs $3'"
	if got != want {
		t.Fatalf("unexpected rebind:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestUpdateBuilder_ReturningAndGuard(t *testing.T) {
	query, _, err := Update("favorites").
		Set("preferences", []byte("{}")).
		Where(Eq("user_id", "u-1"), IsNull("deleted_at")).
		Returning("id", "updated_at").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE favorites SET preferences = $1 WHERE user_id = $2 AND deleted_at IS NULL RETURNING id, updated_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}

	if _, _, err := Update("favorites").Set("preferences", nil).ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional update")
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("favorites", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilRow *struct {
		ID string `db:"id"`
	}
	if _, _, err := InsertModel("favorites", nilRow, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
