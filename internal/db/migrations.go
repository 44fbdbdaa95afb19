package db

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/ovumcalc/migrations"
	"gorm.io/gorm"
)

// ALTER TABLE ... ADD COLUMN has no IF NOT EXISTS in sqlite.
var addColumnPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)

type schemaMigration struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

type schemaMigrationRow struct {
	Version string `gorm:"column:version"`
}

// migrator applies numbered NNNN_name.sql files from files, each exactly once.
type migrator struct {
	database *gorm.DB
	files    fs.FS
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	return migrator{database: database, files: embeddedmigrations.Files}.run()
}

func (m migrator) run() error {
	if err := m.database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := m.load()
	if err != nil {
		return err
	}

	var rows []schemaMigrationRow
	if err := m.database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}
	applied := make(map[string]bool, len(rows))
	for _, row := range rows {
		applied[row.Version] = true
	}

	for _, migration := range pending {
		if applied[migration.Version] {
			continue
		}
		if err := m.apply(migration); err != nil {
			return err
		}
		slog.Info("applied migration", "name", migration.Name)
	}
	return nil
}

func (m migrator) load() ([]schemaMigration, error) {
	entries, err := fs.ReadDir(m.files, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(entries))
	byVersion := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".sql" {
			continue
		}
		version, _, found := strings.Cut(name, "_")
		order, err := strconv.Atoi(version)
		if !found || err != nil {
			continue
		}
		if previous, duplicate := byVersion[version]; duplicate {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, name)
		}
		byVersion[version] = name

		content, err := fs.ReadFile(m.files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, schemaMigration{Version: version, Order: order, Name: name, SQL: string(content)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Order < migrations[j].Order
	})
	return migrations, nil
}

func (m migrator) apply(migration schemaMigration) error {
	statements := splitSQLStatements(migration.SQL)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s has no SQL statements", migration.Name)
	}

	return m.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if columnAlreadyAdded(tx, statement) {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", migration.Name, statement, err)
			}
		}

		err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, migration.Version, migration.Name).Error
		if err != nil {
			return fmt.Errorf("record migration %s: %w", migration.Name, err)
		}
		return nil
	})
}

// columnAlreadyAdded reports whether statement adds a column the table has.
// Databases created before schema_migrations existed may carry such columns.
func columnAlreadyAdded(tx *gorm.DB, statement string) bool {
	matches := addColumnPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false
	}
	table := unquoteIdentifier(matches[1])
	column := unquoteIdentifier(matches[2])
	return tx.Migrator().HasColumn(table, column)
}

func splitSQLStatements(sqlText string) []string {
	var statements []string
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

func unquoteIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
