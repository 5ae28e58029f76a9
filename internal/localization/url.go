// internal/localization/url.go
//
// Locale-qualified URL path helpers.
//
// Context
// -------
// When multilingual SEO URLs are enabled, public paths carry the working
// language's unique SEO code as their first segment: `/en/checkout`,
// `/fr/news/42`.  These helpers detect, extract, strip, and prepend that
// segment.  They are pure string functions; whether a candidate code maps
// to a real published language is the caller's job.
//
// Rules
// -----
// A path is "localized" when its first segment is exactly two ASCII
// letters.  That matches the unique-SEO-code length constraint and keeps
// detection allocation-free; two-letter content slugs must not be mounted
// at the root.
package localization

import "strings"

// SeoCode extracts the leading SEO-code segment from path.  ok is false
// when the path carries none.
func SeoCode(path string) (code string, ok bool) {
	seg := firstSegment(path)
	if !isSeoCode(seg) {
		return "", false
	}
	return strings.ToLower(seg), true
}

// IsLocalized reports whether path already carries a SEO-code segment.
func IsLocalized(path string) bool {
	_, ok := SeoCode(path)
	return ok
}

// Strip removes the leading SEO-code segment, if any.  "/en/cart" → "/cart",
// "/en" → "/".
func Strip(path string) string {
	seg := firstSegment(path)
	if !isSeoCode(seg) {
		return path
	}
	rest := strings.TrimPrefix(path, "/"+seg)
	if rest == "" {
		return "/"
	}
	return rest
}

// Prepend inserts code as the first path segment of rawURL, preserving any
// query string.  "/cart?x=1" + "en" → "/en/cart?x=1"; "/" → "/en".
func Prepend(rawURL, code string) string {
	path, query, hasQuery := strings.Cut(rawURL, "?")

	if path == "/" || path == "" {
		path = "/" + code
	} else {
		path = "/" + code + path
	}

	if hasQuery {
		return path + "?" + query
	}
	return path
}

// firstSegment returns the text between the leading slash and the next
// slash (or end of path).
func firstSegment(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i != -1 {
		p = p[:i]
	}
	return p
}

// isSeoCode reports whether seg is exactly two ASCII letters.
func isSeoCode(seg string) bool {
	if len(seg) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		c := seg[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
