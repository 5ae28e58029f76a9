// internal/customer/repository.go
//
// SQL access for customer rows.
//
// Context
// -------
// Thin, parameterised query helpers over the `customer`, `customer_role`,
// and `customer_role_map` tables.  Lookups hydrate role system names with a
// second query so callers can answer registered-versus-guest without a
// round-trip.  Miss cases return (nil, nil), never a sentinel error; the
// identity resolver treats a miss as “try the next source”.
package customer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const selectColumns = `
    id, customer_guid, email, system_name, active, deleted,
    is_system_account, vendor_id, affiliate_id, last_ip_address,
    created_at, last_activity_at`

// Repository wraps customer-table access for one database handle.
type Repository struct {
	db *sqlx.DB
}

// NewRepository returns a Repository bound to db.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// ByID fetches one customer by numeric id.  (nil, nil) on miss.
func (r *Repository) ByID(ctx context.Context, id int64) (*Customer, error) {
	const q = `SELECT` + selectColumns + ` FROM customer WHERE id = ? LIMIT 1`
	return r.one(ctx, q, id)
}

// ByGUID fetches one customer by its stable GUID.  (nil, nil) on miss.
func (r *Repository) ByGUID(ctx context.Context, guid uuid.UUID) (*Customer, error) {
	const q = `SELECT` + selectColumns + ` FROM customer WHERE customer_guid = ? LIMIT 1`
	return r.one(ctx, q, guid.String())
}

// BySystemName fetches a well-known system account.  (nil, nil) on miss.
func (r *Repository) BySystemName(ctx context.Context, name string) (*Customer, error) {
	const q = `SELECT` + selectColumns + ` FROM customer WHERE system_name = ? LIMIT 1`
	return r.one(ctx, q, name)
}

func (r *Repository) one(ctx context.Context, q string, arg any) (*Customer, error) {
	var c Customer
	if err := r.db.GetContext(ctx, &c, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	roles, err := r.roles(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Roles = roles
	return &c, nil
}

// roles returns the role *system names* bound to customerID.  Inactive
// roles are filtered out.
func (r *Repository) roles(ctx context.Context, customerID int64) ([]string, error) {
	const q = `
        SELECT cr.system_name
          FROM customer_role_map crm
          JOIN customer_role cr ON cr.id = crm.role_id
         WHERE crm.customer_id = ? AND cr.active = TRUE`

	roles := make([]string, 0, 2)
	if err := r.db.SelectContext(ctx, &roles, q, customerID); err != nil {
		return nil, err
	}
	return roles, nil
}

// InsertGuest creates a fresh anonymous customer bound to the guests role
// and returns the hydrated record.
func (r *Repository) InsertGuest(ctx context.Context) (*Customer, error) {
	guid := uuid.New()
	now := time.Now().UTC()

	const ins = `
        INSERT INTO customer
            (customer_guid, email, system_name, active, deleted,
             is_system_account, vendor_id, affiliate_id, last_ip_address,
             created_at, last_activity_at)
        VALUES (?, '', '', TRUE, FALSE, FALSE, 0, 0, '', ?, ?)`

	res, err := r.db.ExecContext(ctx, ins, guid.String(), now, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	const bind = `
        INSERT INTO customer_role_map (customer_id, role_id)
        SELECT ?, id FROM customer_role WHERE system_name = ?`
	if _, err := r.db.ExecContext(ctx, bind, id, RoleGuests); err != nil {
		return nil, err
	}

	return &Customer{
		ID:        id,
		GUID:      guid,
		Active:    true,
		CreatedAt: now,
		Roles:     []string{RoleGuests},
	}, nil
}

// Update persists the mutable columns of an existing customer.
func (r *Repository) Update(ctx context.Context, c *Customer) error {
	const q = `
        UPDATE customer
           SET email = ?, active = ?, deleted = ?, vendor_id = ?,
               affiliate_id = ?, last_ip_address = ?, last_activity_at = ?
         WHERE id = ?`

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, q,
		c.Email, c.Active, c.Deleted, c.VendorID,
		c.AffiliateID, c.LastIPAddress, now, c.ID)
	return err
}
