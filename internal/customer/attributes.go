// internal/customer/attributes.go
//
// Typed, store-scoped customer attribute bag.
//
// Context
// -------
// The `customer_attribute` table stores per-customer preferences keyed by
// name and scoped by store id (store 0 = platform-wide).  The key set is a
// closed enumeration: callers use the AttrKey constants below, and typed
// getters parse the stored string once, at the boundary.  A missing row
// reads as the type's zero value, which is exactly the semantic the
// resolution fallback chains rely on.
//
// Writes are read-modify-write upserts with last-write-wins semantics;
// concurrent requests for the same customer are an accepted race (the
// persistence layer owns consistency).
package customer

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"
)

// AttrKey names one known customer attribute.
type AttrKey string

// The closed set of attribute keys.
const (
	AttrLanguageID             AttrKey = "language_id"
	AttrCurrencyID             AttrKey = "currency_id"
	AttrTaxDisplayTypeID       AttrKey = "tax_display_type_id"
	AttrImpersonatedCustomerID AttrKey = "impersonated_customer_id"
	AttrLanguageAutoDetected   AttrKey = "language_auto_detected"
)

// Attributes wraps the attribute table for one database handle.
type Attributes struct {
	db *sqlx.DB
}

// NewAttributes returns an attribute bag bound to db.
func NewAttributes(db *sqlx.DB) *Attributes { return &Attributes{db: db} }

// raw returns the stored string, "" when the row is absent.
func (a *Attributes) raw(ctx context.Context, customerID int64, key AttrKey, storeID int64) (string, error) {
	const q = `
        SELECT value
        FROM   customer_attribute
        WHERE  customer_id = ? AND ` + "`key`" + ` = ? AND store_id = ?
        LIMIT  1`

	var val string
	err := a.db.GetContext(ctx, &val, q, customerID, string(key), storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// save upserts one attribute row.  An empty value deletes the row so the
// table never accumulates explicit zero entries.
func (a *Attributes) save(ctx context.Context, customerID int64, key AttrKey, storeID int64, value string) error {
	if value == "" {
		const del = `
	        DELETE FROM customer_attribute
	        WHERE customer_id = ? AND ` + "`key`" + ` = ? AND store_id = ?`
		_, err := a.db.ExecContext(ctx, del, customerID, string(key), storeID)
		return err
	}

	const q = `
        INSERT INTO customer_attribute (customer_id, ` + "`key`" + `, store_id, value)
        VALUES (?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE value = VALUES(value)`
	_, err := a.db.ExecContext(ctx, q, customerID, string(key), storeID, value)
	return err
}

// Int reads an integer attribute; absent rows read as 0.
func (a *Attributes) Int(ctx context.Context, customerID int64, key AttrKey, storeID int64) (int64, error) {
	raw, err := a.raw(ctx, customerID, key, storeID)
	if err != nil || raw == "" {
		return 0, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, nil // junk in the bag reads as unset
	}
	return n, nil
}

// Bool reads a boolean attribute; absent rows read as false.
func (a *Attributes) Bool(ctx context.Context, customerID int64, key AttrKey, storeID int64) (bool, error) {
	raw, err := a.raw(ctx, customerID, key, storeID)
	if err != nil || raw == "" {
		return false, err
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, nil
	}
	return b, nil
}

// SaveInt writes an integer attribute.  Zero deletes the row.
func (a *Attributes) SaveInt(ctx context.Context, customerID int64, key AttrKey, storeID int64, value int64) error {
	if value == 0 {
		return a.save(ctx, customerID, key, storeID, "")
	}
	return a.save(ctx, customerID, key, storeID, strconv.FormatInt(value, 10))
}

// SaveBool writes a boolean attribute.  False deletes the row.
func (a *Attributes) SaveBool(ctx context.Context, customerID int64, key AttrKey, storeID int64, value bool) error {
	if !value {
		return a.save(ctx, customerID, key, storeID, "")
	}
	return a.save(ctx, customerID, key, storeID, "true")
}
