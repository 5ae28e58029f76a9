// internal/workctx/tax.go
//
// Tax display mode resolution.  When the store permits per-customer choice
// the stored attribute wins; otherwise the store default applies.  The
// setter is a deliberate no-op when choice is not permitted.
package workctx

import (
	"context"

	"github.com/yanizio/storefront/internal/customer"
)

// TaxDisplay is how prices present tax to the customer.
type TaxDisplay int

const (
	TaxDisplayIncluding TaxDisplay = iota
	TaxDisplayExcluding
)

// String implements fmt.Stringer for logs and templates.
func (t TaxDisplay) String() string {
	if t == TaxDisplayExcluding {
		return "excluding"
	}
	return "including"
}

// TaxDisplayMode resolves the tax display mode, caching the result for the
// rest of the request.
func (c *Context) TaxDisplayMode(ctx context.Context) (TaxDisplay, error) {
	if c.cachedTax != nil {
		return *c.cachedTax, nil
	}

	mode := c.settings.DefaultTaxDisplay
	if c.settings.AllowCustomerTaxChoice {
		cust, err := c.Customer(ctx)
		if err != nil {
			return mode, err
		}
		if cust != nil {
			n, err := c.deps.Attributes.Int(ctx, cust.ID, customer.AttrTaxDisplayTypeID, c.store.ID())
			if err == nil && n == int64(TaxDisplayExcluding) {
				mode = TaxDisplayExcluding
			} else if err == nil && n == int64(TaxDisplayIncluding) {
				mode = TaxDisplayIncluding
			}
		}
	}

	c.cachedTax = &mode
	return mode, nil
}

// SetTaxDisplayMode persists the customer's choice (store-scoped).  No-op
// when the store does not permit per-customer choice.
func (c *Context) SetTaxDisplayMode(ctx context.Context, mode TaxDisplay) error {
	if !c.settings.AllowCustomerTaxChoice {
		return nil
	}
	cust, err := c.Customer(ctx)
	if err != nil {
		return err
	}
	if cust != nil {
		if err := c.deps.Attributes.SaveInt(ctx, cust.ID, customer.AttrTaxDisplayTypeID, c.store.ID(), int64(mode)); err != nil {
			return err
		}
	}
	c.cachedTax = nil
	return nil
}
