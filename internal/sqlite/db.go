package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"net/url"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/rpggio/qontract/migrations"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// connPragmas run on every pooled connection.
var connPragmas = []string{"busy_timeout(5000)", "foreign_keys(1)"}

// New creates a new SQLite database connection. File databases use WAL so
// readers do not block the writer.
func New(dataSourceName string) (*DB, error) {
	memory := strings.HasPrefix(dataSourceName, ":memory:")
	pragmas := append([]string(nil), connPragmas...)
	if !memory {
		pragmas = append(pragmas, "journal_mode(WAL)")
	}

	db, err := sql.Open("sqlite", withPragmas(dataSourceName, pragmas))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: opens its own empty database.
	if memory {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{db}, nil
}

func withPragmas(dsn string, pragmas []string) string {
	params := url.Values{}
	for _, p := range pragmas {
		params.Add("_pragma", p)
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + params.Encode()
}

// RunMigrations applies the embedded *.up.sql files in name order.
// Statements are idempotent so this runs on every start.
func (db *DB) RunMigrations() error {
	names, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrations.FS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", name, err)
		}
	}
	return nil
}
