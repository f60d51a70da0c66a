package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/SubgraphValidator/internal/db"
	"github.com/goran-ethernal/SubgraphValidator/internal/logger"
)

//go:embed 001_registry_manifests.sql
var mig001 string

// RunMigrations brings the registry schema up to date.
func RunMigrations(log *logger.Logger, database *sql.DB) error {
	migrations := []db.Migration{
		{
			ID:  "001_registry_manifests.sql",
			SQL: mig001,
		},
	}

	return db.RunMigrationsDB(log, database, migrations)
}
