package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-favorites/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// tracedQueryLimit caps the db.statement attribute on spans.
const tracedQueryLimit = 512

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dsn := postgresDSN(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(databaseName(dsn)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// postgresDSN adds disable_prepared_binary_result=yes to URL-style DSNs
// unless the caller already chose a value. Poolers in transaction mode
// reject binary results on prepared statements.
func postgresDSN(raw string, disableBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disableBinary {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	q := u.Query()
	if q.Has("disable_prepared_binary_result") {
		return raw
	}
	q.Set("disable_prepared_binary_result", "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// databaseName reads the database from either a URL or a key=value DSN.
func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		return strings.Trim(u.Path, "/")
	}
	for _, field := range strings.Fields(dsn) {
		if value, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

// traceQuery collapses whitespace so multi-line statements read as one line.
func traceQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > tracedQueryLimit {
		return query[:tracedQueryLimit] + "..."
	}
	return query
}
