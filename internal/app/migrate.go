package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/matchday-favorites/internal/config"
	"github.com/riskibarqy/matchday-favorites/internal/platform/logging"
)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

// Migrator applies the schema in db/migrations to the favorites database.
type Migrator struct {
	m      *migrate.Migrate
	source string
	logger *logging.Logger
}

// SchemaVersion is the applied migration version. Version is zero and
// Applied is false on an empty database.
type SchemaVersion struct {
	Version uint
	Dirty   bool
	Applied bool
}

func NewMigrator(cfg config.Config, dir string, logger *logging.Logger) (*Migrator, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}

	dir, err := FindMigrationsDir(dir)
	if err != nil {
		return nil, err
	}
	source := "file://" + filepath.ToSlash(dir)

	m, err := migrate.New(source, postgresDSN(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return &Migrator{m: m, source: source, logger: logger.With("source", source)}, nil
}

// FindMigrationsDir returns the first existing directory among dir, the
// MIGRATIONS_DIR env var and the default locations.
func FindMigrationsDir(dir string) (string, error) {
	candidates := append([]string{dir, os.Getenv("MIGRATIONS_DIR")}, defaultMigrationDirs...)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migrations directory not found (tried --dir, MIGRATIONS_DIR, %v)", defaultMigrationDirs)
}

func (m *Migrator) Up() error {
	return m.apply("up", m.m.Up())
}

func (m *Migrator) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("down steps must be >= 1")
	}
	return m.apply(fmt.Sprintf("down %d", steps), m.m.Steps(-steps))
}

func (m *Migrator) Goto(version uint) error {
	return m.apply(fmt.Sprintf("goto %d", version), m.m.Migrate(version))
}

// Force marks version as applied without running it, clearing the dirty flag.
func (m *Migrator) Force(version int) error {
	if version < -1 {
		return fmt.Errorf("version must be >= -1")
	}
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	m.logger.Info("schema version forced", "version", version)
	return nil
}

func (m *Migrator) Version() (SchemaVersion, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return SchemaVersion{}, nil
	}
	if err != nil {
		return SchemaVersion{}, fmt.Errorf("read schema version: %w", err)
	}
	return SchemaVersion{Version: version, Dirty: dirty, Applied: true}, nil
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (m *Migrator) apply(op string, err error) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		m.logger.Info("schema already up to date", "op", op)
		return nil
	case err != nil:
		return fmt.Errorf("migrate %s: %w", op, err)
	}
	m.logger.Info("migrations applied", "op", op)
	return nil
}
