// internal/workctx/context.go
//
// Central per-request work context.
//
/*
Context
--------
Every request builds one *workctx.Context and passes it down to filters and
handlers via the request context.  It bundles:

  - Store     — the store serving this request (host-resolved, cached).
  - Settings  — per-store behaviour snapshot.
  - Resolvers — lazy, request-cached resolution of customer, vendor,
    language, currency, and tax display mode.

Each resolution runs at most once per request; setters invalidate their
cache entry explicitly.  The struct is request-scoped by construction (the
middleware builds a fresh one per request), so no locking is needed and no
state leaks across requests.

Background executions (cron, queue workers) build a Context with
NewBackground: no transport, no cookies, and the identity chain resolves
the background-task system account.

Notes
-----
  - Not safe for concurrent use; one goroutine per request owns it.
  - Oxford commas, two spaces after periods.
*/
package workctx

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/storefront/internal/customer"
	"github.com/yanizio/storefront/internal/directory"
	"github.com/yanizio/storefront/internal/store"
	"github.com/yanizio/storefront/internal/vendor"
)

// Context is created once per request (or once per background execution).
type Context struct {
	req  *http.Request       // nil for background executions
	w    http.ResponseWriter // nil for background executions
	deps Deps

	store    *store.Store
	settings Settings

	adminMode bool

	cachedCustomer   *customer.Customer
	originalCustomer *customer.Customer
	cachedVendor     *vendor.Vendor
	cachedLanguage   *directory.Language
	cachedCurrency   *directory.Currency
	cachedTax        *TaxDisplay
}

// New builds a Context for one HTTP request.
func New(deps Deps, st *store.Store, w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		req:      r,
		w:        w,
		deps:     deps,
		store:    st,
		settings: settingsFor(st),
	}
}

// NewBackground builds a Context for a background execution: no transport
// context, so the identity chain resolves the background-task account and
// cookie writes are skipped.
func NewBackground(deps Deps, st *store.Store) *Context {
	return &Context{
		deps:     deps,
		store:    st,
		settings: settingsFor(st),
	}
}

// Store returns the store serving this request.
func (c *Context) Store() *store.Store { return c.store }

// Settings returns the per-store behaviour snapshot.
func (c *Context) Settings() Settings { return c.settings }

// AdminMode reports whether the hosting layer flagged this request as
// administrative.
func (c *Context) AdminMode() bool { return c.adminMode }

// SetAdminMode flags the request as administrative and drops the currency
// cache, since admin mode changes the currency short-circuit.
func (c *Context) SetAdminMode(on bool) {
	c.adminMode = on
	c.cachedCurrency = nil
}

/*──────────────────────────── request plumbing ─────────────────────────────*/

type ctxKey struct{} // unexported, collision-proof

// FromRequest returns the Context previously stored by Middleware.  It
// returns nil if the middleware has not run.
func FromRequest(r *http.Request) *Context {
	v, _ := r.Context().Value(ctxKey{}).(*Context)
	return v
}

// WithContext returns a shallow copy of r carrying wc, and rebinds wc to
// that copy so cookie and metadata reads see the injected value.
func WithContext(r *http.Request, wc *Context) *http.Request {
	r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, wc))
	wc.req = r
	return r
}

// Middleware resolves the store for the request host, builds a fresh
// Context, and stores it in the request context.  Unknown hosts 404 before
// any handler runs.
func Middleware(deps Deps, stores *store.Cache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st, err := stores.Get(r.Context(), stripPort(r.Host))
			if err != nil {
				zap.S().Debugw("store lookup failed", "host", r.Host, "err", err)
				http.NotFound(w, r)
				return
			}

			r = WithContext(r, New(deps, st, w, r))
			next.ServeHTTP(w, r)
		})
	}
}

// AdminMode is route-group middleware that flags every request under it as
// administrative (currency short-circuit to the primary store currency).
func AdminMode(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wc := FromRequest(r); wc != nil {
			wc.SetAdminMode(true)
		}
		next.ServeHTTP(w, r)
	})
}

// stripPort removes any ":port" suffix from the Host header.
func stripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
