// internal/redirects/legacy.go
//
// Backward-compatible redirect routes.
//
// Context
// -------
// Early platform versions exposed numeric-ID URLs (`/p/42`, `/c/7`) and
// system-name topic URLs (`/t/shipping`).  Crawlers and old bookmarks still
// hit them, so each legacy route resolves the entity's current slug through
// the `url_record` table and answers with a permanent redirect.  Unknown or
// retired targets redirect to the home page rather than 404—the safe
// default for a storefront.
//
// Notes
// -----
//   - Lookups are read-only; the newest active slug wins.
//   - Oxford commas, two spaces after periods.
package redirects

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// Entity names recorded in url_record.
const (
	entityProduct      = "product"
	entityCategory     = "category"
	entityManufacturer = "manufacturer"
	entityNews         = "news_item"
	entityBlogPost     = "blog_post"
	entityVendor       = "vendor"
	entityTopic        = "topic"
)

// Resolver answers slug lookups for the legacy routes.
type Resolver struct {
	db *sqlx.DB
}

// NewResolver returns a Resolver bound to db.
func NewResolver(db *sqlx.DB) *Resolver { return &Resolver{db: db} }

// Register attaches every legacy route to r.
func (res *Resolver) Register(r chi.Router) {
	r.Get("/p/{id}", res.entityHandler(entityProduct))
	r.Get("/c/{id}", res.entityHandler(entityCategory))
	r.Get("/m/{id}", res.entityHandler(entityManufacturer))
	r.Get("/news/{id}", res.entityHandler(entityNews))
	r.Get("/blog/{id}", res.entityHandler(entityBlogPost))
	r.Get("/vendor/{id}", res.entityHandler(entityVendor))
	r.Get("/t/{name}", res.topicHandler)
}

// entityHandler redirects /<prefix>/{id} to the entity's current slug.
func (res *Resolver) entityHandler(entity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			redirectHome(w, r)
			return
		}
		slug, err := res.slug(r.Context(), entity, id)
		if err != nil || slug == "" {
			redirectHome(w, r)
			return
		}
		http.Redirect(w, r, "/"+slug, http.StatusMovedPermanently)
	}
}

// topicHandler resolves a topic by system name, then by slug.
func (res *Resolver) topicHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		redirectHome(w, r)
		return
	}
	id, err := res.topicID(r.Context(), name)
	if err != nil || id <= 0 {
		redirectHome(w, r)
		return
	}
	slug, err := res.slug(r.Context(), entityTopic, id)
	if err != nil || slug == "" {
		redirectHome(w, r)
		return
	}
	http.Redirect(w, r, "/"+slug, http.StatusMovedPermanently)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusMovedPermanently)
}

/*──────────────────────────── queries ──────────────────────────────────────*/

// slug returns the newest active slug for one entity, "" on miss.
func (res *Resolver) slug(ctx context.Context, entity string, id int64) (string, error) {
	const q = `
        SELECT slug
          FROM url_record
         WHERE entity_name = ? AND entity_id = ? AND is_active = TRUE
         ORDER BY id DESC
         LIMIT 1`

	var slug string
	err := res.db.GetContext(ctx, &slug, q, entity, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return slug, nil
}

// topicID maps a topic system name to its numeric id, 0 on miss.
func (res *Resolver) topicID(ctx context.Context, systemName string) (int64, error) {
	const q = `SELECT id FROM topic WHERE system_name = ? LIMIT 1`

	var id int64
	err := res.db.GetContext(ctx, &id, q, systemName)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}
