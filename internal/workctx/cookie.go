// internal/workctx/cookie.go
//
// Identity-token cookie helpers.
//
// The cookie carries only the customer GUID: HTTP-only, lax same-site, one
// year by default.  Writing the zero GUID clears the token immediately
// (expiry in the past), which is how an identity is dropped client-side.
package workctx

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// customerCookieGUID reads the identity token.  ok is false when the cookie
// is missing, empty, or not a GUID.
func (c *Context) customerCookieGUID() (uuid.UUID, bool) {
	if c.req == nil {
		return uuid.Nil, false
	}
	ck, err := c.req.Cookie(c.deps.CookieName)
	if err != nil || ck.Value == "" {
		return uuid.Nil, false
	}
	guid, err := uuid.Parse(ck.Value)
	if err != nil {
		return uuid.Nil, false
	}
	return guid, true
}

// setCustomerCookie persists the identity token, or clears it when guid is
// the zero GUID.  No-op for background executions.
func (c *Context) setCustomerCookie(guid uuid.UUID) {
	if c.w == nil {
		return
	}

	ck := &http.Cookie{
		Name:     c.deps.CookieName,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if guid == uuid.Nil {
		ck.Value = ""
		ck.Expires = time.Now().AddDate(0, -1, 0)
		ck.MaxAge = -1
	} else {
		ck.Value = guid.String()
		ck.Expires = time.Now().Add(c.deps.CookieExpiry)
	}

	http.SetCookie(c.w, ck)
}
