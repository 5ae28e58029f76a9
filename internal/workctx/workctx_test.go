// internal/workctx/workctx_test.go
//
// Shared in-memory fakes for the resolver tests.
//
// Context
// -------
// The resolvers talk to the domain through the narrow service interfaces in
// deps.go, so the tests substitute map-backed fakes and count calls instead
// of standing up a database.  Each test builds a fresh Context via New (or
// NewBackground) with a store fixture whose settings drive the behaviour
// under test.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package workctx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yanizio/storefront/internal/customer"
	"github.com/yanizio/storefront/internal/directory"
	"github.com/yanizio/storefront/internal/store"
	"github.com/yanizio/storefront/internal/vendor"
)

/*──────────────────────────── customers ────────────────────────────────────*/

type fakeCustomers struct {
	bySystemName map[string]*customer.Customer
	byGUID       map[uuid.UUID]*customer.Customer
	byID         map[int64]*customer.Customer

	lookups  int
	inserted int
	updated  []*customer.Customer
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{
		bySystemName: map[string]*customer.Customer{},
		byGUID:       map[uuid.UUID]*customer.Customer{},
		byID:         map[int64]*customer.Customer{},
	}
}

func (f *fakeCustomers) ByID(_ context.Context, id int64) (*customer.Customer, error) {
	f.lookups++
	return f.byID[id], nil
}

func (f *fakeCustomers) ByGUID(_ context.Context, g uuid.UUID) (*customer.Customer, error) {
	f.lookups++
	return f.byGUID[g], nil
}

func (f *fakeCustomers) BySystemName(_ context.Context, n string) (*customer.Customer, error) {
	f.lookups++
	return f.bySystemName[n], nil
}

func (f *fakeCustomers) InsertGuest(context.Context) (*customer.Customer, error) {
	f.inserted++
	return &customer.Customer{
		ID:     int64(1000 + f.inserted),
		GUID:   uuid.New(),
		Active: true,
		Roles:  []string{customer.RoleGuests},
	}, nil
}

func (f *fakeCustomers) Update(_ context.Context, c *customer.Customer) error {
	f.updated = append(f.updated, c)
	return nil
}

/*──────────────────────────── attributes ───────────────────────────────────*/

type fakeAttrs struct {
	ints  map[string]int64
	bools map[string]bool

	intWrites  int
	boolWrites int
}

func newFakeAttrs() *fakeAttrs {
	return &fakeAttrs{ints: map[string]int64{}, bools: map[string]bool{}}
}

func attrScope(custID int64, key customer.AttrKey, storeID int64) string {
	return fmt.Sprintf("%d/%s/%d", custID, key, storeID)
}

func (f *fakeAttrs) Int(_ context.Context, custID int64, key customer.AttrKey, storeID int64) (int64, error) {
	return f.ints[attrScope(custID, key, storeID)], nil
}

func (f *fakeAttrs) Bool(_ context.Context, custID int64, key customer.AttrKey, storeID int64) (bool, error) {
	return f.bools[attrScope(custID, key, storeID)], nil
}

func (f *fakeAttrs) SaveInt(_ context.Context, custID int64, key customer.AttrKey, storeID int64, v int64) error {
	f.intWrites++
	k := attrScope(custID, key, storeID)
	if v == 0 {
		delete(f.ints, k)
		return nil
	}
	f.ints[k] = v
	return nil
}

func (f *fakeAttrs) SaveBool(_ context.Context, custID int64, key customer.AttrKey, storeID int64, v bool) error {
	f.boolWrites++
	k := attrScope(custID, key, storeID)
	if !v {
		delete(f.bools, k)
		return nil
	}
	f.bools[k] = v
	return nil
}

/*──────────────────────────── directory ────────────────────────────────────*/

type fakeLanguages struct {
	byStore map[int64][]directory.Language
	calls   int
}

func (f *fakeLanguages) All(_ context.Context, storeID int64) ([]directory.Language, error) {
	f.calls++
	return f.byStore[storeID], nil
}

type fakeCurrencies struct {
	byStore map[int64][]directory.Currency
	byID    map[int64]*directory.Currency

	allCalls int
}

func (f *fakeCurrencies) All(_ context.Context, storeID int64) ([]directory.Currency, error) {
	f.allCalls++
	return f.byStore[storeID], nil
}

func (f *fakeCurrencies) ByID(_ context.Context, id int64) (*directory.Currency, error) {
	return f.byID[id], nil
}

/*──────────────────────────── vendor + auth ────────────────────────────────*/

type fakeVendors struct {
	byID map[int64]*vendor.Vendor
}

func (f *fakeVendors) ByID(_ context.Context, id int64) (*vendor.Vendor, error) {
	return f.byID[id], nil
}

type fakeAuth struct {
	cust *customer.Customer
	err  error
}

func (f *fakeAuth) AuthenticatedCustomer(*http.Request) (*customer.Customer, error) {
	return f.cust, f.err
}

/*──────────────────────────── fixtures ─────────────────────────────────────*/

var testVendor = vendor.Vendor{ID: 3, Name: "Acme Supplies", Active: true}

// testStore builds a store fixture with the given settings map.
func testStore(settings store.Settings) *store.Store {
	if settings == nil {
		settings = store.Settings{}
	}
	return &store.Store{
		Record: store.Record{
			ID:                1,
			Host:              "shop.example.com",
			Name:              "Shop",
			DefaultLanguageID: 1,
		},
		Settings: settings,
	}
}

// testDeps bundles the fakes into a Deps value with cookie defaults.
func testDeps(c *fakeCustomers, a *fakeAttrs, l *fakeLanguages, cur *fakeCurrencies) Deps {
	if c == nil {
		c = newFakeCustomers()
	}
	if a == nil {
		a = newFakeAttrs()
	}
	if l == nil {
		l = &fakeLanguages{byStore: map[int64][]directory.Language{}}
	}
	if cur == nil {
		cur = &fakeCurrencies{byStore: map[int64][]directory.Currency{}, byID: map[int64]*directory.Currency{}}
	}
	return Deps{
		Customers:    c,
		Attributes:   a,
		Languages:    l,
		Currencies:   cur,
		Vendors:      &fakeVendors{byID: map[int64]*vendor.Vendor{}},
		CookieName:   "storefront_customer",
		CookieExpiry: time.Hour,
	}
}
