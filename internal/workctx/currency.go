// internal/workctx/currency.go
//
// Working-currency resolution.
//
// Admin mode short-circuits to the store's configured primary currency
// when that row still exists.  Otherwise the stored preference is
// validated against the store's currency list, then the fallback chain
// runs: working language's default currency → first currency for the
// store → first currency platform-wide.  The chain returns nil only when
// zero published currencies exist anywhere.
package workctx

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/storefront/internal/customer"
	"github.com/yanizio/storefront/internal/directory"
)

// Currency resolves the working currency, caching the result for the rest
// of the request.
func (c *Context) Currency(ctx context.Context) (*directory.Currency, error) {
	if c.cachedCurrency != nil {
		return c.cachedCurrency, nil
	}

	// Admin mode: primary store currency wins when it resolves.
	if c.adminMode && c.settings.PrimaryCurrencyID > 0 {
		primary, err := c.deps.Currencies.ByID(ctx, c.settings.PrimaryCurrencyID)
		if err != nil {
			return nil, err
		}
		if primary != nil {
			c.cachedCurrency = primary
			return primary, nil
		}
		zap.S().Warnw("primary store currency missing", "id", c.settings.PrimaryCurrencyID)
	}

	storeID := c.store.ID()
	available, err := c.deps.Currencies.All(ctx, storeID)
	if err != nil {
		return nil, err
	}

	cust, err := c.Customer(ctx)
	if err != nil {
		return nil, err
	}

	var prefID int64
	if cust != nil {
		prefID, _ = c.deps.Attributes.Int(ctx, cust.ID, customer.AttrCurrencyID, storeID)
	}

	cur := currencyByID(available, prefID)
	if cur == nil {
		if lang, err := c.Language(ctx); err == nil && lang != nil {
			cur = currencyByID(available, lang.DefaultCurrencyID)
		}
	}
	if cur == nil && len(available) > 0 {
		cur = &available[0]
	}
	if cur == nil {
		anywhere, err := c.deps.Currencies.All(ctx, 0)
		if err != nil {
			return nil, err
		}
		if len(anywhere) > 0 {
			cur = &anywhere[0]
		}
	}

	c.cachedCurrency = cur
	return cur, nil
}

// SetCurrency persists an explicit choice (store-scoped) and invalidates
// the cache.  nil clears the stored preference.
func (c *Context) SetCurrency(ctx context.Context, cur *directory.Currency) error {
	cust, err := c.Customer(ctx)
	if err != nil {
		return err
	}
	var id int64
	if cur != nil {
		id = cur.ID
	}
	if cust != nil {
		if err := c.deps.Attributes.SaveInt(ctx, cust.ID, customer.AttrCurrencyID, c.store.ID(), id); err != nil {
			return err
		}
	}
	c.cachedCurrency = nil
	return nil
}

// currencyByID returns the slice element with the given id, or nil.
func currencyByID(curs []directory.Currency, id int64) *directory.Currency {
	if id <= 0 {
		return nil
	}
	for i := range curs {
		if curs[i].ID == id {
			return &curs[i]
		}
	}
	return nil
}
