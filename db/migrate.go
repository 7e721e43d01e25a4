package db

import (
	"database/sql"
	"embed"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/shopplan/errors"
	"github.com/teranos/shopplan/logger"
	"github.com/teranos/shopplan/sym"
)

//go:embed sqlite/migrations/*.sql
var migrationFS embed.FS

const migrationsDir = "sqlite/migrations"

// bootstrapVersion creates the schema_migrations table itself, so it is
// the only migration allowed to run while that table is missing.
const bootstrapVersion = "000"

// Migrate applies every pending migration in version order, one
// transaction per file. Already-applied versions are skipped, so the
// call is idempotent. A nil logger disables progress logging.
func Migrate(db *sql.DB, log *zap.SugaredLogger) error {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.With(logger.FieldSymbol, sym.DB)

	files, err := migrationFiles()
	if err != nil {
		return err
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	ran := 0
	for _, filename := range files {
		version := strings.SplitN(filename, "_", 2)[0]
		if applied[version] {
			log.Debugw("Migration already applied", "migration", filename)
			continue
		}
		if len(applied) == 0 && ran == 0 && version != bootstrapVersion {
			return errors.Newf("schema_migrations missing and first pending migration is not %s: %s", bootstrapVersion, filename)
		}

		log.Infow("Applying migration", "migration", filename)
		if err := applyMigration(db, filename, version); err != nil {
			return err
		}
		ran++
	}

	if ran > 0 {
		log.Infow("Migrations complete", logger.FieldCount, ran)
	}
	return nil
}

// migrationFiles lists the embedded .sql files sorted by version prefix.
func migrationFiles() ([]string, error) {
	entries, err := migrationFS.ReadDir(migrationsDir)
	if err != nil {
		return nil, errors.Wrap(err, "read embedded migrations")
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// appliedVersions reads the set of recorded versions. A missing
// schema_migrations table yields an empty set; the bootstrap migration
// creates it.
func appliedVersions(db *sql.DB) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		// Fresh database: the table does not exist yet.
		return applied, nil
	}
	defer rows.Close()

	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, errors.Wrap(err, "scan applied version")
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// applyMigration executes one migration file and records its version in
// the same transaction.
func applyMigration(db *sql.DB, filename, version string) error {
	sqlBytes, err := migrationFS.ReadFile(filepath.Join(migrationsDir, filename))
	if err != nil {
		return errors.Wrapf(err, "read %s", filename)
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrapf(err, "begin tx for %s", filename)
	}

	if _, err := tx.Exec(string(sqlBytes)); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "execute %s", filename)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "record %s", filename)
	}

	return errors.Wrapf(tx.Commit(), "commit %s", filename)
}
