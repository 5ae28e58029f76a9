// internal/workctx/language.go
//
// Working-language resolution.
//
/*
Context
--------
Two detection steps may run before the stored preference is read:

  1. URL SEO code — when multilingual SEO URLs are enabled, a two-letter
     code in the request path selects a published, store-authorized
     language.
  2. Browser hint — when auto-detection is enabled and this customer has
     not been auto-detected for this store before, the first
     Accept-Language tag is matched against language cultures.  Success
     sets a one-time persisted flag so detection never repeats for this
     customer/store pair.

A successful detection that differs from the stored preference is persisted
(store-scoped).  The effective preference then resolves through the
fallback chain: stored preference → store default → first store-authorized
published language → first published language platform-wide.  The chain
returns nil only when zero published languages exist anywhere.

Notes
-----
  - Attribute write failures degrade to WARN logs; the request still
    resolves a language.
  - Oxford commas, two spaces after periods.
*/
package workctx

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/storefront/internal/customer"
	"github.com/yanizio/storefront/internal/directory"
	"github.com/yanizio/storefront/internal/localization"
	"github.com/yanizio/storefront/internal/requestinfo"
)

// Language resolves the working language, caching the result for the rest
// of the request.
func (c *Context) Language(ctx context.Context) (*directory.Language, error) {
	if c.cachedLanguage != nil {
		return c.cachedLanguage, nil
	}

	storeID := c.store.ID()
	authorized, err := c.deps.Languages.All(ctx, storeID)
	if err != nil {
		return nil, err
	}

	cust, err := c.Customer(ctx)
	if err != nil {
		return nil, err
	}

	detected := c.detectLanguage(ctx, cust, authorized)

	// Persist a detection that changes the stored preference.
	if detected != nil && cust != nil {
		stored, err := c.deps.Attributes.Int(ctx, cust.ID, customer.AttrLanguageID, storeID)
		if err == nil && stored != detected.ID {
			if err := c.deps.Attributes.SaveInt(ctx, cust.ID, customer.AttrLanguageID, storeID, detected.ID); err != nil {
				zap.S().Warnw("language preference write failed", "customer", cust.ID, "err", err)
			}
		}
	}

	// Effective preference plus fallback chain.
	var prefID int64
	if cust != nil {
		prefID, _ = c.deps.Attributes.Int(ctx, cust.ID, customer.AttrLanguageID, storeID)
	}

	lang := languageByID(authorized, prefID)
	if lang == nil {
		lang = languageByID(authorized, c.store.Record.DefaultLanguageID)
	}
	if lang == nil && len(authorized) > 0 {
		lang = &authorized[0]
	}
	if lang == nil {
		anywhere, err := c.deps.Languages.All(ctx, 0)
		if err != nil {
			return nil, err
		}
		if len(anywhere) > 0 {
			lang = &anywhere[0]
		}
	}

	c.cachedLanguage = lang
	return lang, nil
}

// SetLanguage persists an explicit choice (store-scoped) and invalidates
// the cache.  nil clears the stored preference.
func (c *Context) SetLanguage(ctx context.Context, lang *directory.Language) error {
	cust, err := c.Customer(ctx)
	if err != nil {
		return err
	}
	var id int64
	if lang != nil {
		id = lang.ID
	}
	if cust != nil {
		if err := c.deps.Attributes.SaveInt(ctx, cust.ID, customer.AttrLanguageID, c.store.ID(), id); err != nil {
			return err
		}
	}
	c.cachedLanguage = nil
	return nil
}

/*──────────────────────────── detection ────────────────────────────────────*/

// detectLanguage runs the URL and browser detection steps in order.
func (c *Context) detectLanguage(ctx context.Context, cust *customer.Customer, authorized []directory.Language) *directory.Language {
	if c.req == nil {
		return nil
	}

	if c.settings.SeoFriendlyURLs {
		if code, ok := localization.SeoCode(c.req.URL.Path); ok {
			if lang := directory.BySeoCode(authorized, code); lang != nil {
				return lang
			}
		}
	}

	if !c.settings.AutoDetectLanguage || cust == nil {
		return nil
	}

	storeID := c.store.ID()
	done, err := c.deps.Attributes.Bool(ctx, cust.ID, customer.AttrLanguageAutoDetected, storeID)
	if err != nil || done {
		return nil
	}

	info := requestinfo.FromContext(c.req.Context())
	if info == nil || len(info.Languages) == 0 {
		return nil
	}

	lang := directory.ByCulture(authorized, info.Languages[0])
	if lang == nil {
		return nil
	}

	// One-time flag: auto-detection never repeats for this customer/store.
	if err := c.deps.Attributes.SaveBool(ctx, cust.ID, customer.AttrLanguageAutoDetected, storeID, true); err != nil {
		zap.S().Warnw("language auto-detect flag write failed", "customer", cust.ID, "err", err)
	}
	return lang
}

// languageByID returns the slice element with the given id, or nil.
func languageByID(langs []directory.Language, id int64) *directory.Language {
	if id <= 0 {
		return nil
	}
	for i := range langs {
		if langs[i].ID == id {
			return &langs[i]
		}
	}
	return nil
}
