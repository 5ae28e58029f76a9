// internal/workctx/vendor.go
//
// Current-vendor resolution: the vendor record bound to the current
// customer, when that customer is a vendor manager.  Invalid or missing
// vendors resolve to nil without error.
package workctx

import (
	"context"

	"github.com/yanizio/storefront/internal/vendor"
)

// Vendor resolves the vendor bound to the current customer, caching the
// result for the rest of the request.  nil when the customer is not a
// vendor manager or the vendor is deleted/inactive.
func (c *Context) Vendor(ctx context.Context) (*vendor.Vendor, error) {
	if c.cachedVendor != nil {
		return c.cachedVendor, nil
	}

	cust, err := c.Customer(ctx)
	if err != nil {
		return nil, err
	}
	if cust == nil || cust.VendorID <= 0 {
		return nil, nil
	}

	v, err := c.deps.Vendors.ByID(ctx, cust.VendorID)
	if err != nil {
		return nil, err
	}
	if !v.Valid() {
		return nil, nil
	}

	c.cachedVendor = v
	return v, nil
}
