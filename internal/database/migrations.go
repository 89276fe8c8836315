package database

import (
	"embed"
	"fmt"
	"path"
	"time"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/ywyher/survey/config"
)

//go:embed migrations
var migrationsFS embed.FS

const migrationTable = "survey_migrations"

const (
	MigrateUp   = "up"
	MigrateDown = "down"
)

var migrationDialects = map[string]string{
	config.DriverPostgres: "postgres",
	config.DriverSQLite:   "sqlite3",
}

type MigrationStatus struct {
	ID        string
	Applied   bool
	AppliedAt time.Time
}

func (s *DB) migrationSource() *migrate.EmbedFileSystemMigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       path.Join("migrations", s.Driver),
	}
}

func (s *DB) migrationDialect() (string, error) {
	dialect, ok := migrationDialects[s.Driver]
	if !ok {
		return "", fmt.Errorf("no migration dialect for driver %q", s.Driver)
	}
	return dialect, nil
}

// Migrate applies up to max migrations in direction; max 0 applies all.
func (s *DB) Migrate(direction string, max int) (int, error) {
	log := s.log.Function("Migrate")

	var dir migrate.MigrationDirection
	switch direction {
	case MigrateUp:
		dir = migrate.Up
	case MigrateDown:
		dir = migrate.Down
	default:
		return 0, log.Error("unknown migration direction", "direction", direction)
	}

	dialect, err := s.migrationDialect()
	if err != nil {
		return 0, log.Err("failed to resolve migration dialect", err)
	}

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return 0, log.Err("failed to get database from GORM", err)
	}

	set := migrate.MigrationSet{TableName: migrationTable}
	applied, err := set.ExecMax(sqlDB, dialect, s.migrationSource(), dir, max)
	if err != nil {
		return applied, log.Err("failed to apply migrations", err, "direction", direction, "applied", applied)
	}

	log.Info("Applied migrations", "direction", direction, "count", applied, "driver", s.Driver)
	return applied, nil
}

func (s *DB) MigrationStatus() ([]MigrationStatus, error) {
	log := s.log.Function("MigrationStatus")

	dialect, err := s.migrationDialect()
	if err != nil {
		return nil, log.Err("failed to resolve migration dialect", err)
	}

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return nil, log.Err("failed to get database from GORM", err)
	}

	migrations, err := s.migrationSource().FindMigrations()
	if err != nil {
		return nil, log.Err("failed to read migrations", err)
	}

	set := migrate.MigrationSet{TableName: migrationTable}
	records, err := set.GetMigrationRecords(sqlDB, dialect)
	if err != nil {
		return nil, log.Err("failed to read migration records", err)
	}

	appliedAt := make(map[string]time.Time, len(records))
	for _, record := range records {
		appliedAt[record.Id] = record.AppliedAt
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		at, ok := appliedAt[m.Id]
		statuses = append(statuses, MigrationStatus{ID: m.Id, Applied: ok, AppliedAt: at})
	}

	return statuses, nil
}
