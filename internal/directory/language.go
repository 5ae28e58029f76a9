// internal/directory/language.go
//
// Language entity and SQL access.
//
// Context
// -------
// Languages are published per platform and optionally limited to specific
// stores through the shared `store_mapping` table.  The locale resolver
// only ever sees published, store-authorized rows: authorization is folded
// into the listing query rather than re-checked by every caller.
//
// A storeID of 0 lists platform-wide (published only, ignoring store
// limits)—the terminal rung of the resolution fallback chain.
package directory

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Language mirrors one row in the `language` table.
type Language struct {
	ID                int64  `db:"id"`
	Name              string `db:"name"`
	Culture           string `db:"language_culture"`  // "en-US"
	UniqueSeoCode     string `db:"unique_seo_code"`   // "en"
	DefaultCurrencyID int64  `db:"default_currency_id"`
	Published         bool   `db:"published"`
	LimitedToStores   bool   `db:"limited_to_stores"`
	DisplayOrder      int    `db:"display_order"`
}

// Languages wraps language-table access for one database handle.
type Languages struct {
	db *sqlx.DB
}

// NewLanguages returns a Languages repository bound to db.
func NewLanguages(db *sqlx.DB) *Languages { return &Languages{db: db} }

// All lists published languages in display order.  storeID > 0 additionally
// applies store-mapping authorization; storeID == 0 ignores store limits.
func (l *Languages) All(ctx context.Context, storeID int64) ([]Language, error) {
	const base = `
        SELECT id, name, language_culture, unique_seo_code,
               default_currency_id, published, limited_to_stores, display_order
          FROM language
         WHERE published = TRUE`

	q := base + ` ORDER BY display_order, id`
	args := []any{}
	if storeID > 0 {
		q = base + `
           AND (limited_to_stores = FALSE OR EXISTS (
                SELECT 1 FROM store_mapping sm
                 WHERE sm.entity_name = 'language'
                   AND sm.entity_id = language.id
                   AND sm.store_id = ?))
         ORDER BY display_order, id`
		args = append(args, storeID)
	}

	var rows []Language
	if err := l.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// ByID fetches one language regardless of published state.  (nil, nil) on
// miss.
func (l *Languages) ByID(ctx context.Context, id int64) (*Language, error) {
	const q = `
        SELECT id, name, language_culture, unique_seo_code,
               default_currency_id, published, limited_to_stores, display_order
          FROM language
         WHERE id = ?
         LIMIT 1`

	var lang Language
	if err := l.db.GetContext(ctx, &lang, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &lang, nil
}

// BySeoCode returns the language whose unique SEO code matches code
// (case-insensitive) from the given slice, or nil.
func BySeoCode(langs []Language, code string) *Language {
	for i := range langs {
		if strings.EqualFold(langs[i].UniqueSeoCode, code) {
			return &langs[i]
		}
	}
	return nil
}

// ByCulture returns the language whose culture tag matches tag
// (case-insensitive) from the given slice, or nil.
func ByCulture(langs []Language, tag string) *Language {
	for i := range langs {
		if strings.EqualFold(langs[i].Culture, tag) {
			return &langs[i]
		}
	}
	return nil
}
