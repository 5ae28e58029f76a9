// internal/directory/currency.go
//
// Currency entity and SQL access.  Same authorization shape as language:
// published per platform, optionally limited to stores via store_mapping,
// with storeID == 0 meaning platform-wide.
package directory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Currency mirrors one row in the `currency` table.
type Currency struct {
	ID              int64   `db:"id"`
	Name            string  `db:"name"`
	Code            string  `db:"currency_code"` // "USD"
	Rate            float64 `db:"rate"`          // against the primary currency
	Published       bool    `db:"published"`
	LimitedToStores bool    `db:"limited_to_stores"`
	DisplayOrder    int     `db:"display_order"`
}

// Currencies wraps currency-table access for one database handle.
type Currencies struct {
	db *sqlx.DB
}

// NewCurrencies returns a Currencies repository bound to db.
func NewCurrencies(db *sqlx.DB) *Currencies { return &Currencies{db: db} }

// All lists published currencies in display order.  storeID > 0 applies
// store-mapping authorization; storeID == 0 ignores store limits.
func (c *Currencies) All(ctx context.Context, storeID int64) ([]Currency, error) {
	const base = `
        SELECT id, name, currency_code, rate,
               published, limited_to_stores, display_order
          FROM currency
         WHERE published = TRUE`

	q := base + ` ORDER BY display_order, id`
	args := []any{}
	if storeID > 0 {
		q = base + `
           AND (limited_to_stores = FALSE OR EXISTS (
                SELECT 1 FROM store_mapping sm
                 WHERE sm.entity_name = 'currency'
                   AND sm.entity_id = currency.id
                   AND sm.store_id = ?))
         ORDER BY display_order, id`
		args = append(args, storeID)
	}

	var rows []Currency
	if err := c.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// ByID fetches one currency regardless of published state.  (nil, nil) on
// miss.
func (c *Currencies) ByID(ctx context.Context, id int64) (*Currency, error) {
	const q = `
        SELECT id, name, currency_code, rate,
               published, limited_to_stores, display_order
          FROM currency
         WHERE id = ?
         LIMIT 1`

	var cur Currency
	if err := c.db.GetContext(ctx, &cur, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cur, nil
}
