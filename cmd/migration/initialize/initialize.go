package initialize

import (
	"github.com/ywyher/survey/internal/database"
	"github.com/ywyher/survey/internal/logger"
)

// InitializeTables brings the schema up to the latest migration.
func InitializeTables(db database.DB, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing survey schema", "driver", db.Driver)

	applied, err := db.Migrate(database.MigrateUp, 0)
	if err != nil {
		return log.Err("failed to migrate schema", err)
	}

	log.Info("Table initialization complete", "applied", applied)
	return nil
}
