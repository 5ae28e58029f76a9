package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a host is not present in the store table.
var ErrNotFound = errors.New("store not found")

// ByHost fetches a single store row that is not suspended or deleted.  The
// caller supplies a context so the lookup respects request deadlines.
func ByHost(ctx context.Context, db *sqlx.DB, host string) (*Record, error) {
	const q = `
        SELECT id, host, name, default_language_id,
               suspended_at, deleted_at, created_at, updated_at
        FROM   store
        WHERE  host = ?
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        LIMIT  1;`

	var rec Record
	if err := db.GetContext(ctx, &rec, q, host); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// AllActive returns every store that is neither suspended nor deleted.
// Used by admin dashboards and batch operations, not by the HTTP bootstrap
// path.
func AllActive(db *sqlx.DB) ([]Record, error) {
	const q = `
        SELECT id, host, name, default_language_id,
               suspended_at, deleted_at, created_at, updated_at
        FROM   store
        WHERE  suspended_at IS NULL
          AND  deleted_at   IS NULL`
	var rows []Record
	if err := db.Select(&rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// SettingsByStore returns the key-value settings map for one store_id.
func SettingsByStore(ctx context.Context, db *sqlx.DB, storeID uint64) (Settings, error) {
	const q = `
	    SELECT  ` + "`key`, value" + `
	    FROM    store_setting
	    WHERE   store_id = ?`
	rows := make([]struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}, 0, 8)

	if err := db.SelectContext(ctx, &rows, q, storeID); err != nil {
		return nil, err
	}

	cfg := make(Settings, len(rows))
	for _, r := range rows {
		cfg[r.Key] = r.Value
	}
	return cfg, nil
}
