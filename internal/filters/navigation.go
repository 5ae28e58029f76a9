// internal/filters/navigation.go
//
// Public-navigation authorization filter.
//
// Rejects requests whose customer roles lack the public-store navigation
// permission (closed store, restricted preview).  Individual routes opt
// out by wrapping themselves in ExemptNavigation—search the tree for that
// name to find pages reachable while the store is closed.
package filters

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/storefront/internal/metrics"
	"github.com/yanizio/storefront/internal/security"
	"github.com/yanizio/storefront/internal/workctx"
)

// AuthorizeFunc answers whether the given roles carry a permission.
type AuthorizeFunc func(ctx context.Context, permission string, roles []string) (bool, error)

type exemptKey struct{}

// ExemptNavigation marks every request passing through it as exempt from
// the AllowNavigation filter.
func ExemptNavigation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(context.WithValue(r.Context(), exemptKey{}, true))
		next.ServeHTTP(w, r)
	})
}

// AllowNavigation returns the authorization middleware.
func AllowNavigation(ready func() bool, authorize AuthorizeFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done, r := applied(r, "allow-navigation")
			if done || !ready() {
				next.ServeHTTP(w, r)
				return
			}
			if r.Context().Value(exemptKey{}) != nil {
				next.ServeHTTP(w, r)
				return
			}

			wc := workctx.FromRequest(r)
			if wc == nil {
				next.ServeHTTP(w, r)
				return
			}
			cust, err := wc.Customer(r.Context())
			if err != nil || cust == nil {
				next.ServeHTTP(w, r)
				return
			}

			ok, err := authorize(r.Context(), security.PermissionPublicStoreAllowNavigation, cust.Roles)
			if err != nil {
				zap.S().Errorw("navigation authorize failed", "customer", cust.ID, "err", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if !ok {
				metrics.NavigationDeniedTotal.Inc()
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
