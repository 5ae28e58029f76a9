// internal/localization/url_test.go
//
// Unit-tests for the locale-qualified path helpers.

package localization

import "testing"

func TestSeoCode(t *testing.T) {
	cases := []struct {
		path string
		code string
		ok   bool
	}{
		{"/en/cart", "en", true},
		{"/EN/cart", "en", true}, // case-folded
		{"/en", "en", true},
		{"/", "", false},
		{"", "", false},
		{"/eng/cart", "", false},  // three letters
		{"/e1/cart", "", false},   // digit
		{"/cart", "", false},      // ordinary segment
		{"/en/", "en", true},      // trailing slash
		{"/de/news/42", "de", true},
	}

	for _, c := range cases {
		code, ok := SeoCode(c.path)
		if code != c.code || ok != c.ok {
			t.Errorf("SeoCode(%q) = (%q, %v), want (%q, %v)", c.path, code, ok, c.code, c.ok)
		}
	}
}

func TestStrip(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"/en/cart", "/cart"},
		{"/en", "/"},
		{"/cart", "/cart"},
		{"/", "/"},
		{"/de/news/42", "/news/42"},
	}

	for _, c := range cases {
		if got := Strip(c.in); got != c.want {
			t.Errorf("Strip(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPrepend(t *testing.T) {
	cases := []struct {
		raw, code, want string
	}{
		{"/cart", "en", "/en/cart"},
		{"/cart?x=1", "en", "/en/cart?x=1"},
		{"/", "en", "/en"},
		{"/?x=1", "en", "/en?x=1"},
		{"", "fr", "/fr"},
	}

	for _, c := range cases {
		if got := Prepend(c.raw, c.code); got != c.want {
			t.Errorf("Prepend(%q, %q) = %q, want %q", c.raw, c.code, got, c.want)
		}
	}
}
