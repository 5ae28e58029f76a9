// internal/requestinfo/requestinfo_test.go
//
// Unit-tests for request metadata parsing: Accept-Language ordering,
// client-IP extraction, and the Enrich middleware round-trip.

package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseLanguages(t *testing.T) {
	cases := []struct {
		header string
		want   []string
	}{
		{"", nil},
		{"en-US,en;q=0.9,de;q=0.8", []string{"en-us", "en", "de"}},
		{"fr-CA, fr;q=0.9, *;q=0.5", []string{"fr-ca", "fr"}},
		{"*", []string{}},
	}

	for _, c := range cases {
		got := parseLanguages(c.header)
		if len(got) != len(c.want) {
			t.Errorf("parseLanguages(%q) = %v, want %v", c.header, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("parseLanguages(%q)[%d] = %q, want %q", c.header, i, got[i], c.want[i])
			}
		}
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://shop.example.com/", nil)
	r.RemoteAddr = "192.0.2.10:4711"
	if ip := clientIP(r); ip == nil || ip.String() != "192.0.2.10" {
		t.Fatalf("RemoteAddr fallback: got %v", ip)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if ip := clientIP(r); ip == nil || ip.String() != "203.0.113.9" {
		t.Fatalf("left-most XFF address: got %v", ip)
	}
}

func TestEnrichStoresInfo(t *testing.T) {
	var got *Info
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "http://shop.example.com/", nil)
	r.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	r.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0")
	r.RemoteAddr = "192.0.2.10:4711"
	h.ServeHTTP(httptest.NewRecorder(), r)

	if got == nil {
		t.Fatalf("Info not stored in context")
	}
	if len(got.Languages) == 0 || got.Languages[0] != "de-de" {
		t.Fatalf("languages not parsed: %v", got.Languages)
	}
	if got.IP == nil || got.IP.String() != "192.0.2.10" {
		t.Fatalf("client IP not extracted: %v", got.IP)
	}
	if got.UA.IsBot {
		t.Fatalf("desktop browser misclassified as bot")
	}
}
