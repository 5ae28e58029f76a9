// internal/filters/filters.go
//
// Request filter pipeline.
//
/*
Context
--------
Four independent, composable pre-action filters mirror the cross-cutting
concerns of the storefront: affiliate attribution, locale-qualified URL
redirection, last-IP capture, and public-navigation authorization.  Each is
a plain chi-style middleware; pipeline order is a registration concern in
cmd/web, not something the filters coordinate among themselves.

Shared rules
------------
  - Every filter consults the readiness probe and degrades to a no-op while
    the data store is not initialised.
  - Every filter marks the request context after running, so re-entrant
    dispatch (internal sub-requests, router re-runs) cannot apply a filter
    twice.
  - Attribution and IP capture run on GET only, matching the original
    behaviour of avoiding writes on form resubmission.

Notes
-----
  - Filters read the work context via workctx.FromRequest; requests without
    one (mis-wired pipelines) pass through untouched.
  - Oxford commas, two spaces after periods.
*/
package filters

import (
	"context"
	"net/http"
)

// appliedKey marks one filter as having run on this request chain.
type appliedKey string

// applied reports whether the named filter already ran, and returns the
// request marked so nested dispatch skips it.
func applied(r *http.Request, name string) (bool, *http.Request) {
	key := appliedKey(name)
	if r.Context().Value(key) != nil {
		return true, r
	}
	return false, r.WithContext(context.WithValue(r.Context(), key, true))
}
