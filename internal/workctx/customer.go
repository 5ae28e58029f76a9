// internal/workctx/customer.go
//
// Current-customer resolution.
//
/*
Context
--------
The identity chain is an explicit ordered list of sources; the driver tries
each in order and stops at the first candidate that passes Valid()
(!deleted && active):

  1. background  — no transport context → background-task system account.
  2. crawler     — known search-engine UA → search-engine system account.
  3. auth        — externally authenticated customer, with impersonation
                   substitution (original retained for audit).
  4. cookie      — persisted GUID token, adopted only for non-registered
                   accounts.
  5. guest       — insert a fresh guest record (terminal, always succeeds
                   when the data layer is up).

A source returning (nil, nil) or an invalid candidate simply yields to the
next one; errors are logged at DEBUG and likewise yield.  On success the
GUID token is written back with the configured expiry.  If every source
fails—unreachable while guest insertion works—the previous cached value is
returned rather than an invalid customer.

Notes
-----
  - Resolution runs at most once per request; the second call returns the
    cached record without touching any service.
  - Oxford commas, two spaces after periods.
*/
package workctx

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/storefront/internal/customer"
	"github.com/yanizio/storefront/internal/metrics"
	"github.com/yanizio/storefront/internal/requestinfo"
)

// identitySource is one rung of the resolution ladder.
type identitySource struct {
	name    string
	resolve func(ctx context.Context) (*customer.Customer, error)
}

func (c *Context) identitySources() []identitySource {
	return []identitySource{
		{"background", c.backgroundTaskCustomer},
		{"crawler", c.searchEngineCustomer},
		{"auth", c.authenticatedCustomer},
		{"cookie", c.cookieGuestCustomer},
		{"guest", c.newGuestCustomer},
	}
}

// Customer resolves the current customer, caching the result for the rest
// of the request.
func (c *Context) Customer(ctx context.Context) (*customer.Customer, error) {
	if c.cachedCustomer != nil {
		return c.cachedCustomer, nil
	}

	var resolved *customer.Customer
	for _, src := range c.identitySources() {
		cand, err := src.resolve(ctx)
		if err != nil {
			zap.S().Debugw("identity source failed", "source", src.name, "err", err)
			continue
		}
		if cand.Valid() {
			zap.S().Debugw("identity resolved", "source", src.name, "customer", cand.ID)
			resolved = cand
			break
		}
	}

	if !resolved.Valid() {
		// Unreachable while guest insertion works; keep whatever we had.
		zap.S().Warnw("identity resolution exhausted", "store", c.store.ID())
		return c.cachedCustomer, nil
	}

	c.setCustomerCookie(resolved.GUID)
	c.cachedCustomer = resolved
	return resolved, nil
}

// SetCustomer overrides the cached identity and persists its token.
func (c *Context) SetCustomer(cust *customer.Customer) {
	c.setCustomerCookie(cust.GUID)
	c.cachedCustomer = cust
}

// OriginalCustomer returns the authenticated customer that was replaced by
// impersonation, or nil when no substitution occurred.
func (c *Context) OriginalCustomer() *customer.Customer {
	return c.originalCustomer
}

/*──────────────────────────── sources ──────────────────────────────────────*/

// backgroundTaskCustomer applies only when there is no transport context.
func (c *Context) backgroundTaskCustomer(ctx context.Context) (*customer.Customer, error) {
	if c.req != nil {
		return nil, nil
	}
	return c.deps.Customers.BySystemName(ctx, customer.SystemNameBackgroundTask)
}

// searchEngineCustomer applies when the UA matches a crawler signature.
func (c *Context) searchEngineCustomer(ctx context.Context) (*customer.Customer, error) {
	if c.req == nil {
		return nil, nil
	}
	info := requestinfo.FromContext(c.req.Context())
	if info == nil || !info.UA.IsBot {
		return nil, nil
	}
	return c.deps.Customers.BySystemName(ctx, customer.SystemNameSearchEngine)
}

// authenticatedCustomer asks the auth service, then applies impersonation:
// a valid customer carrying an impersonated-customer attribute > 0 is
// replaced by the (valid) target, and the original is retained.
func (c *Context) authenticatedCustomer(ctx context.Context) (*customer.Customer, error) {
	if c.req == nil || c.deps.Auth == nil {
		return nil, nil
	}
	auth, err := c.deps.Auth.AuthenticatedCustomer(c.req)
	if err != nil || !auth.Valid() {
		return auth, err
	}

	impID, err := c.deps.Attributes.Int(ctx, auth.ID, customer.AttrImpersonatedCustomerID, 0)
	if err != nil {
		// Degraded: serve the authenticated identity without substitution.
		zap.S().Debugw("impersonation attribute read failed", "customer", auth.ID, "err", err)
		return auth, nil
	}
	if impID > 0 {
		target, err := c.deps.Customers.ByID(ctx, impID)
		if err == nil && target.Valid() {
			c.originalCustomer = auth
			return target, nil
		}
	}
	return auth, nil
}

// cookieGuestCustomer adopts the persisted GUID token, but never a
// registered account: a stale or stolen token must not silently log a user
// in.
func (c *Context) cookieGuestCustomer(ctx context.Context) (*customer.Customer, error) {
	guid, ok := c.customerCookieGUID()
	if !ok {
		return nil, nil
	}
	cand, err := c.deps.Customers.ByGUID(ctx, guid)
	if err != nil {
		return nil, err
	}
	if cand == nil || cand.IsRegistered() {
		return nil, nil
	}
	return cand, nil
}

// newGuestCustomer is the terminal rung: mint a fresh anonymous record.
func (c *Context) newGuestCustomer(ctx context.Context) (*customer.Customer, error) {
	guest, err := c.deps.Customers.InsertGuest(ctx)
	if err != nil {
		return nil, err
	}
	metrics.GuestCustomersTotal.Inc()
	return guest, nil
}
