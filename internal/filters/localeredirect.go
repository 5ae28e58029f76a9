// internal/filters/localeredirect.go
//
// Locale redirect filter.
//
// Attached to locale-aware route groups.  When multilingual SEO URLs are
// enabled and a GET request arrives without a locale segment, the filter
// computes the canonical locale-qualified URL from the working language
// and issues a permanent redirect.  Already-localized URLs pass through
// untouched, so the filter is idempotent by construction.
package filters

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/storefront/internal/localization"
	"github.com/yanizio/storefront/internal/metrics"
	"github.com/yanizio/storefront/internal/workctx"
)

// LocaleRedirect returns the SEO locale redirect middleware.
func LocaleRedirect(ready func() bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done, r := applied(r, "locale-redirect")
			if done || !ready() || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			wc := workctx.FromRequest(r)
			if wc == nil || !wc.Settings().SeoFriendlyURLs {
				next.ServeHTTP(w, r)
				return
			}

			if localization.IsLocalized(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			lang, err := wc.Language(r.Context())
			if err != nil || lang == nil || lang.UniqueSeoCode == "" {
				if err != nil {
					zap.S().Warnw("locale redirect language resolution failed", "err", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			target := localization.Prepend(r.URL.RequestURI(), strings.ToLower(lang.UniqueSeoCode))
			metrics.LocaleRedirectsTotal.Inc()
			zap.S().Debugw("locale redirect",
				"from", r.URL.RequestURI(), "to", target)
			http.Redirect(w, r, target, http.StatusMovedPermanently)
		})
	}
}
