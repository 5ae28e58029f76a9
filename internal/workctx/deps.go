// internal/workctx/deps.go
//
// Consumed service contracts.
//
// Context
// -------
// The work context is presentation glue: it owns no persistence and talks
// to the domain through the narrow interfaces below.  The SQL
// implementations live in internal/customer, internal/directory, and
// internal/vendor; tests substitute in-memory fakes.  Interfaces are
// declared here, on the consumer side, so the repositories stay plain
// structs.
package workctx

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yanizio/storefront/internal/customer"
	"github.com/yanizio/storefront/internal/directory"
	"github.com/yanizio/storefront/internal/store"
	"github.com/yanizio/storefront/internal/vendor"
)

// CustomerService covers every customer lookup and mutation the resolvers
// perform.  Lookups return (nil, nil) on miss.
type CustomerService interface {
	ByID(ctx context.Context, id int64) (*customer.Customer, error)
	ByGUID(ctx context.Context, guid uuid.UUID) (*customer.Customer, error)
	BySystemName(ctx context.Context, name string) (*customer.Customer, error)
	InsertGuest(ctx context.Context) (*customer.Customer, error)
	Update(ctx context.Context, c *customer.Customer) error
}

// AttributeService reads and writes the typed, store-scoped customer
// attribute bag.  storeID 0 addresses the platform-wide scope.
type AttributeService interface {
	Int(ctx context.Context, customerID int64, key customer.AttrKey, storeID int64) (int64, error)
	Bool(ctx context.Context, customerID int64, key customer.AttrKey, storeID int64) (bool, error)
	SaveInt(ctx context.Context, customerID int64, key customer.AttrKey, storeID int64, value int64) error
	SaveBool(ctx context.Context, customerID int64, key customer.AttrKey, storeID int64, value bool) error
}

// LanguageService lists published, store-authorized languages.  storeID 0
// lists platform-wide.
type LanguageService interface {
	All(ctx context.Context, storeID int64) ([]directory.Language, error)
}

// CurrencyService lists published, store-authorized currencies and resolves
// one by id (admin-mode primary currency override).
type CurrencyService interface {
	All(ctx context.Context, storeID int64) ([]directory.Currency, error)
	ByID(ctx context.Context, id int64) (*directory.Currency, error)
}

// VendorService resolves the vendor bound to a customer.
type VendorService interface {
	ByID(ctx context.Context, id int64) (*vendor.Vendor, error)
}

// AuthService answers "who is authenticated on this request", read-only.
// Credential verification is someone else's problem.
type AuthService interface {
	AuthenticatedCustomer(r *http.Request) (*customer.Customer, error)
}

// Deps bundles every collaborator a Context needs.  Built once in main and
// shared across requests; all fields are safe for concurrent use.
type Deps struct {
	Customers  CustomerService
	Attributes AttributeService
	Languages  LanguageService
	Currencies CurrencyService
	Vendors    VendorService
	Auth       AuthService

	CookieName   string        // identity-token cookie name
	CookieExpiry time.Duration // identity-token lifetime (default one year)
}

// Settings is the per-store behaviour snapshot the resolvers consult.  It
// is derived from the store's key-value settings at context creation so a
// mid-request settings flip cannot produce a half-and-half resolution.
type Settings struct {
	SeoFriendlyURLs        bool
	AutoDetectLanguage     bool
	PrimaryCurrencyID      int64
	AllowCustomerTaxChoice bool
	DefaultTaxDisplay      TaxDisplay
}

// settingsFor snapshots the resolver-relevant settings of one store.
func settingsFor(st *store.Store) Settings {
	s := st.Settings
	def := TaxDisplayIncluding
	if s.String(store.SettingDefaultTaxDisplay, "including") == "excluding" {
		def = TaxDisplayExcluding
	}
	return Settings{
		SeoFriendlyURLs:        s.Bool(store.SettingSeoFriendlyURLs, false),
		AutoDetectLanguage:     s.Bool(store.SettingAutoDetectLanguage, false),
		PrimaryCurrencyID:      s.Int64(store.SettingPrimaryCurrencyID, 0),
		AllowCustomerTaxChoice: s.Bool(store.SettingAllowCustomerTaxChoice, false),
		DefaultTaxDisplay:      def,
	}
}
