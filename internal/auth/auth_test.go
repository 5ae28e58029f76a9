// internal/auth/auth_test.go
//
// Unit-tests for the cookie authentication facade: only valid registered
// customers authenticate, anonymous requests answer (nil, nil), and
// sign-in/sign-out manage the session cookie.

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/yanizio/storefront/internal/customer"
)

type fakeLookup struct {
	byGUID map[uuid.UUID]*customer.Customer
}

func (f *fakeLookup) ByGUID(_ context.Context, g uuid.UUID) (*customer.Customer, error) {
	return f.byGUID[g], nil
}

func TestAuthenticatedCustomer(t *testing.T) {
	guid := uuid.New()
	reg := &customer.Customer{ID: 1, GUID: guid, Active: true, Roles: []string{customer.RoleRegistered}}
	svc := NewCookieService(&fakeLookup{byGUID: map[uuid.UUID]*customer.Customer{guid: reg}}, 0)

	r := httptest.NewRequest(http.MethodGet, "http://shop.example.com/", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: guid.String()})

	got, err := svc.AuthenticatedCustomer(r)
	if err != nil {
		t.Fatalf("AuthenticatedCustomer error: %v", err)
	}
	if got == nil || got.ID != 1 {
		t.Fatalf("want registered customer, got %+v", got)
	}
}

func TestAuthenticatedCustomerRejectsGuests(t *testing.T) {
	guid := uuid.New()
	guest := &customer.Customer{ID: 2, GUID: guid, Active: true, Roles: []string{customer.RoleGuests}}
	svc := NewCookieService(&fakeLookup{byGUID: map[uuid.UUID]*customer.Customer{guid: guest}}, 0)

	r := httptest.NewRequest(http.MethodGet, "http://shop.example.com/", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: guid.String()})

	got, err := svc.AuthenticatedCustomer(r)
	if err != nil || got != nil {
		t.Fatalf("guest token must not authenticate, got (%+v, %v)", got, err)
	}
}

func TestAuthenticatedCustomerAnonymous(t *testing.T) {
	svc := NewCookieService(&fakeLookup{byGUID: map[uuid.UUID]*customer.Customer{}}, 0)

	r := httptest.NewRequest(http.MethodGet, "http://shop.example.com/", nil)
	got, err := svc.AuthenticatedCustomer(r)
	if err != nil || got != nil {
		t.Fatalf("anonymous request must answer (nil, nil), got (%+v, %v)", got, err)
	}
}

func TestSignInSignOut(t *testing.T) {
	guid := uuid.New()
	reg := &customer.Customer{ID: 1, GUID: guid, Active: true, Roles: []string{customer.RoleRegistered}}
	svc := NewCookieService(&fakeLookup{}, 0)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "http://shop.example.com/", nil)
	svc.SignIn(w, r, reg)

	cks := w.Result().Cookies()
	if len(cks) != 1 || cks[0].Name != cookieName || cks[0].Value != guid.String() {
		t.Fatalf("unexpected sign-in cookie: %+v", cks)
	}
	if !cks[0].HttpOnly {
		t.Fatalf("session cookie must be HTTP-only")
	}

	w = httptest.NewRecorder()
	svc.SignOut(w)
	cks = w.Result().Cookies()
	if len(cks) != 1 || cks[0].Value != "" || cks[0].MaxAge != -1 {
		t.Fatalf("sign-out must clear the cookie: %+v", cks)
	}
}
