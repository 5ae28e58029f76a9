// internal/filters/captureip.go
//
// Last-IP capture filter.
//
// GET requests refresh the customer's last-known IP address when the
// resolved client address differs from the stored one.  The write is a
// read-modify-write against the customer service with last-write-wins
// semantics across concurrent requests.  Never short-circuits.
package filters

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/storefront/internal/requestinfo"
	"github.com/yanizio/storefront/internal/workctx"
)

// CaptureIP returns the last-IP capture middleware.
func CaptureIP(ready func() bool, customers CustomerUpdater) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done, r := applied(r, "capture-ip")
			if done || !ready() || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			info := requestinfo.FromContext(r.Context())
			if info == nil || info.IP == nil {
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

			ip := info.IP.String()
			if !strings.EqualFold(cust.LastIPAddress, ip) {
				cust.LastIPAddress = ip
				if err := customers.Update(r.Context(), cust); err != nil {
					zap.S().Warnw("last-ip write failed", "customer", cust.ID, "err", err)
				} else {
					zap.S().Debugw("last-ip updated",
						"customer", cust.ID, "ip", ip, "country", info.Geo.CountryISO)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
