package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/grantsy/licensegate/internal/infra/db"
)

// SQL stores preferences in the preferences table of a sqlite or postgres
// database.
type SQL struct {
	db *db.DB
}

func NewSQL(database *db.DB) *SQL {
	return &SQL{db: database}
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	table := s.db.TableName("preferences")
	query := s.db.Rebind(fmt.Sprintf(`
		SELECT pref_value FROM %s WHERE pref_key = $1
	`, table))

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("prefs: failed to read %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	table := s.db.TableName("preferences")
	query := s.db.Rebind(fmt.Sprintf(`
		INSERT INTO %s (pref_key, pref_value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT(pref_key) DO UPDATE SET
			pref_value = excluded.pref_value,
			updated_at = excluded.updated_at
	`, table))

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("prefs: failed to write %q: %w", key, err)
	}
	return nil
}

func (s *SQL) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
