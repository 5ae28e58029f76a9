// internal/filters/affiliate.go
//
// Affiliate attribution filter.
//
// A request arriving with ?affiliateid=N (numeric) or ?affiliate=slug
// (friendly name) binds the current customer to that affiliate, provided
// the affiliate is active and not deleted and the binding actually
// changes.  The numeric parameter wins when both are present.  Never
// short-circuits.
package filters

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/yanizio/storefront/internal/affiliate"
	"github.com/yanizio/storefront/internal/customer"
	"github.com/yanizio/storefront/internal/metrics"
	"github.com/yanizio/storefront/internal/workctx"
)

const (
	affiliateIDParam   = "affiliateid"
	affiliateSlugParam = "affiliate"
)

// AffiliateService covers the two lookups attribution needs.
type AffiliateService interface {
	ByID(ctx context.Context, id int64) (*affiliate.Affiliate, error)
	BySlug(ctx context.Context, slug string) (*affiliate.Affiliate, error)
}

// CustomerUpdater persists a mutated customer record.
type CustomerUpdater interface {
	Update(ctx context.Context, c *customer.Customer) error
}

// Affiliate returns the attribution middleware.
func Affiliate(ready func() bool, affiliates AffiliateService, customers CustomerUpdater) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done, r := applied(r, "affiliate")
			if done || !ready() || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			var aff *affiliate.Affiliate

			q := r.URL.Query()
			if raw := q.Get(affiliateIDParam); raw != "" {
				if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
					aff, _ = affiliates.ByID(ctx, id)
				}
			} else if slug := q.Get(affiliateSlugParam); slug != "" {
				aff, _ = affiliates.BySlug(ctx, slug)
			}

			if !aff.Valid() {
				next.ServeHTTP(w, r)
				return
			}

			wc := workctx.FromRequest(r)
			if wc == nil {
				next.ServeHTTP(w, r)
				return
			}
			cust, err := wc.Customer(ctx)
			if err != nil || cust == nil {
				next.ServeHTTP(w, r)
				return
			}

			if cust.AffiliateID != aff.ID {
				cust.AffiliateID = aff.ID
				if err := customers.Update(ctx, cust); err != nil {
					zap.S().Warnw("affiliate attribution write failed",
						"customer", cust.ID, "affiliate", aff.ID, "err", err)
				} else {
					metrics.AffiliateAttributionsTotal.Inc()
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
