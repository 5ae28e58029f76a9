// internal/redirects/legacy_test.go
//
// Unit-tests for the legacy redirect routes using sqlmock + httptest.
//
// Run: go test ./internal/redirects -v

package redirects

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

const (
	slugSelectRe  = `SELECT slug\s+FROM url_record\s+WHERE entity_name = \? AND entity_id = \? AND is_active = TRUE`
	topicSelectRe = `SELECT id FROM topic WHERE system_name = \?`
)

func newRouter(t *testing.T) (chi.Router, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	r := chi.NewRouter()
	NewResolver(sqlx.NewDb(db, "sqlmock")).Register(r)
	return r, mock
}

func get(r chi.Router, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestLegacyProductRedirect(t *testing.T) {
	r, mock := newRouter(t)

	mock.ExpectQuery(slugSelectRe).
		WithArgs("product", int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"slug"}).AddRow("blue-widget"))

	w := get(r, "/p/42")
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("want 301, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/blue-widget" {
		t.Fatalf("want /blue-widget, got %q", loc)
	}
}

func TestLegacyUnknownIDRedirectsHome(t *testing.T) {
	r, mock := newRouter(t)

	mock.ExpectQuery(slugSelectRe).
		WithArgs("category", int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"slug"}))

	w := get(r, "/c/999")
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("want 301, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("unknown target must go home, got %q", loc)
	}
}

func TestLegacyMalformedIDRedirectsHome(t *testing.T) {
	r, _ := newRouter(t)

	w := get(r, "/p/banana")
	if w.Code != http.StatusMovedPermanently || w.Header().Get("Location") != "/" {
		t.Fatalf("malformed id must go home, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestLegacyTopicRedirect(t *testing.T) {
	r, mock := newRouter(t)

	mock.ExpectQuery(topicSelectRe).
		WithArgs("shipping").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(slugSelectRe).
		WithArgs("topic", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"slug"}).AddRow("shipping-info"))

	w := get(r, "/t/shipping")
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("want 301, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/shipping-info" {
		t.Fatalf("want /shipping-info, got %q", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
