// internal/customer/customer.go
//
// Customer entity and role helpers.
//
// Context
// -------
// Every request is served on behalf of exactly one customer record: a
// registered account, an anonymous guest, or one of the well-known system
// accounts (background task, search engine).  Role membership drives the
// registered-versus-guest distinction; the identity resolver must never
// silently adopt a registered account from a client-side token.
//
// Notes
// -----
//   - Valid() is the gate every resolution source must pass.
//   - Roles are loaded alongside the row by the repository; the slice is
//     read-only after load.
package customer

import (
	"time"

	"github.com/google/uuid"
)

// Well-known system account names.  These rows ship with the schema and are
// flagged is_system_account so storefront listings exclude them.
const (
	SystemNameBackgroundTask = "background_task"
	SystemNameSearchEngine   = "search_engine"
)

// Role system names referenced by the resolution rules.
const (
	RoleRegistered = "registered"
	RoleGuests     = "guests"
)

// Customer mirrors one row in the `customer` table plus its role bindings.
type Customer struct {
	ID              int64      `db:"id"`
	GUID            uuid.UUID  `db:"customer_guid"`
	Email           string     `db:"email"`
	SystemName      string     `db:"system_name"`
	Active          bool       `db:"active"`
	Deleted         bool       `db:"deleted"`
	IsSystemAccount bool       `db:"is_system_account"`
	VendorID        int64      `db:"vendor_id"`
	AffiliateID     int64      `db:"affiliate_id"`
	LastIPAddress   string     `db:"last_ip_address"`
	CreatedAt       time.Time  `db:"created_at"`
	LastActivityAt  *time.Time `db:"last_activity_at"`

	Roles []string `db:"-"` // role system names, loaded with the row
}

// Valid reports whether the record may serve as the current customer.
func (c *Customer) Valid() bool {
	return c != nil && !c.Deleted && c.Active
}

// HasRole reports membership by role system name.
func (c *Customer) HasRole(systemName string) bool {
	for _, r := range c.Roles {
		if r == systemName {
			return true
		}
	}
	return false
}

// IsRegistered reports whether the customer holds the registered role.
func (c *Customer) IsRegistered() bool { return c.HasRole(RoleRegistered) }

// IsGuest reports whether the customer holds the guests role.
func (c *Customer) IsGuest() bool { return c.HasRole(RoleGuests) }
