// internal/auth/auth.go
//
// Authentication facade.
//
// Context
//   The work context needs exactly one answer from this package: "which
//   registered customer, if any, is authenticated on this request?"  The
//   cookie implementation below stores the customer GUID in an HTTP-only
//   session cookie named "storefront_auth".  Credential verification
//   (login forms, OAuth, SSO) happens elsewhere; callers invoke SignIn
//   only after verifying credentials.
//
//   Replace this with a full session store backed by Redis, JWT, or your
//   preferred strategy.  The work context relies only on the
//   AuthenticatedCustomer call, so swapping the implementation is
//   painless.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yanizio/storefront/internal/customer"
)

const cookieName = "storefront_auth"

// CustomerLookup is the single customer-service call this package needs.
type CustomerLookup interface {
	ByGUID(ctx context.Context, guid uuid.UUID) (*customer.Customer, error)
}

// CookieService authenticates via a GUID-bearing session cookie.
type CookieService struct {
	customers CustomerLookup
	lifetime  time.Duration
}

// NewCookieService builds a CookieService.  lifetime <= 0 selects 14 days.
func NewCookieService(customers CustomerLookup, lifetime time.Duration) *CookieService {
	if lifetime <= 0 {
		lifetime = 14 * 24 * time.Hour
	}
	return &CookieService{customers: customers, lifetime: lifetime}
}

// AuthenticatedCustomer returns the registered customer bound to the
// session cookie, or (nil, nil) when the request is anonymous.  Guests and
// invalid records never authenticate.
func (s *CookieService) AuthenticatedCustomer(r *http.Request) (*customer.Customer, error) {
	ck, err := r.Cookie(cookieName)
	if err != nil || ck.Value == "" {
		return nil, nil
	}
	guid, err := uuid.Parse(ck.Value)
	if err != nil {
		return nil, nil
	}

	cust, err := s.customers.ByGUID(r.Context(), guid)
	if err != nil {
		return nil, err
	}
	if !cust.Valid() || !cust.IsRegistered() {
		return nil, nil
	}
	return cust, nil
}

// SignIn sets the session cookie for a verified customer.
//
// Callers invoke this only after credential verification succeeds.
func (s *CookieService) SignIn(w http.ResponseWriter, r *http.Request, cust *customer.Customer) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    cust.GUID.String(), // TODO: encrypt + sign
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil, // only send over HTTPS
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.lifetime),
	})
}

// SignOut clears the session cookie.
func (s *CookieService) SignOut(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
