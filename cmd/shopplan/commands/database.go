package commands

import (
	"database/sql"

	"github.com/teranos/shopplan/config"
	"github.com/teranos/shopplan/db"
	"github.com/teranos/shopplan/errors"
	"github.com/teranos/shopplan/logger"
)

// openDatabase opens and migrates a database using the specified path.
// If dbPath is empty, it resolves the path from configuration.
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		path, err := config.GetDatabasePath()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get database path")
		}
		if path == "" {
			dbPath = "shopplan.db"
		} else {
			dbPath = path
		}
	}

	database, err := db.OpenWithMigrations(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}

	return database, nil
}
