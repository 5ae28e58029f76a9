//
//  internal/requestinfo/requestinfo.go
//
//  Lightweight types and helpers that collect per-request metadata
//  (user-agent fingerprint, client IP + geolocation hint, and the ordered
//  Accept-Language list).  These structs are inert.  They contain no
//  pointers to database handles or large buffers, so they are safe to log
//  or JSON-encode.
//
//  The work context consumes UA.IsBot for crawler classification, and the
//  locale resolver consumes Languages for one-time browser detection.  The
//  IP-capture filter consumes IP.
//
//  Dependencies
//  • github.com/avct/uasurfer          (UA parsing, ~18 000 bot signatures)
//  • github.com/oschwald/geoip2-golang (optional MaxMind lookup)
//

package requestinfo

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// UA holds the parsed user-agent properties the storefront cares about.
type UA struct {
	Raw     string // Entire User-Agent header
	Browser string // "Chrome", "Firefox", "Safari", etc.
	Device  string // "Desktop", "Mobile", "Tablet", or "Other"
	IsBot   bool   // True when the UA matches a known crawler signature
}

// Geo holds IP-based geolocation hints.  Best-effort; empty when no GeoIP
// database is configured or the address has no match.
type Geo struct {
	CountryISO string // "US", "CA", "FR", ...
	City       string // "Chicago", "Paris", ...
}

// Info is stored in the request context by Enrich and consumed by the work
// context and filters.
type Info struct {
	UA        UA
	IP        net.IP   // Left-most public client address
	Geo       Geo      // Best-effort geolocation of IP
	Languages []string // Accept-Language tags in client preference order
	Timestamp time.Time
}

//
//  -----------------------------
//  Package-level state
//  -----------------------------
//

// geoReader is an optional MaxMind handle.  It is safe for concurrent
// reads, which is all we ever perform.  nil disables geolocation.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2-City database at startup.  Call it from main()
// when a database path is configured; skipping it leaves Geo fields empty.
func InitGeo(dbPath string) error {
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

//
//  -----------------------------
//  Public helper: FromContext
//  -----------------------------
//

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer previously stored by Enrich.
// It returns nil if the middleware has not run.
func FromContext(ctx context.Context) *Info {
	v, _ := ctx.Value(ctxKey{}).(*Info)
	return v
}

// NewContext stores info where FromContext will find it.  Enrich calls this
// for HTTP traffic; background jobs may attach synthetic metadata the same
// way.
func NewContext(ctx context.Context, info *Info) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// parseUA converts a raw header into our UA struct using uasurfer.
func parseUA(uaHeader string) UA {
	u := uasurfer.Parse(uaHeader)

	var device string
	switch u.DeviceType {
	case uasurfer.DeviceComputer:
		device = "Desktop"
	case uasurfer.DeviceTablet:
		device = "Tablet"
	case uasurfer.DevicePhone, uasurfer.DeviceWearable:
		device = "Mobile"
	default:
		device = "Other"
	}

	return UA{
		Raw:     uaHeader,
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		Device:  device,
		IsBot:   u.IsBot(),
	}
}

// parseLanguages splits an Accept-Language header into lower-cased tags in
// client preference order.  Quality values are stripped, not honoured; the
// header order is the preference order for our purposes.
func parseLanguages(al string) []string {
	if al == "" {
		return nil
	}
	parts := strings.Split(al, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if i := strings.Index(tag, ";"); i != -1 {
			tag = tag[:i]
		}
		if tag != "" && tag != "*" {
			tags = append(tags, strings.ToLower(tag))
		}
	}
	return tags
}

// lookupGeo returns best-effort Geo data using the optional reader.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{}
	}
	rec, err := geoReader.City(ip)
	if err != nil {
		return Geo{}
	}
	return Geo{
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}
