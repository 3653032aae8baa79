package db

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
	driver    string
	namespace string
}

// New opens and pings the database. For postgres a non-empty namespace is
// the schema holding the tables, for sqlite it is a table name prefix.
func New(driver, dsn, namespace string) (*DB, error) {
	var db *sql.DB
	var err error

	switch driver {
	case "sqlite":
		db, err = sql.Open("sqlite", dsn)
	case "postgres":
		if namespace != "" {
			dsn, err = withSearchPath(dsn, namespace)
			if err != nil {
				return nil, err
			}
		}
		db, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("db: unsupported driver: %s", driver)
	}

	if err != nil {
		return nil, fmt.Errorf("db: failed to open: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("db: failed to ping: %w", err)
	}

	return &DB{DB: db, driver: driver, namespace: namespace}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

// TableName returns the namespaced name of a table.
func (d *DB) TableName(name string) string {
	if d.namespace == "" {
		return name
	}
	if d.driver == "postgres" {
		return d.namespace + "." + name
	}
	return d.namespace + "_" + name
}

func withSearchPath(dsn, schema string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("db: failed to parse DSN: %w", err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
