// internal/workctx/currency_test.go
//
// Unit-tests for working-currency resolution.
//
// Covered behaviours:
//
//   • Admin mode short-circuits to the primary store currency.
//   • Stored preference wins when it is still available for the store.
//   • Working language's default currency is the next candidate.
//   • First available currency is the terminal store-level fallback.

package workctx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yanizio/storefront/internal/customer"
	"github.com/yanizio/storefront/internal/directory"
	"github.com/yanizio/storefront/internal/store"
)

var (
	curUSD = directory.Currency{ID: 1, Name: "US Dollar", Code: "USD", Rate: 1, Published: true}
	curEUR = directory.Currency{ID: 2, Name: "Euro", Code: "EUR", Rate: 0.9, Published: true}
	curGBP = directory.Currency{ID: 5, Name: "Pound", Code: "GBP", Rate: 0.8, Published: true}
)

func TestCurrencyAdminPrimary(t *testing.T) {
	curs := &fakeCurrencies{
		byStore: map[int64][]directory.Currency{1: {curUSD, curEUR}},
		byID:    map[int64]*directory.Currency{5: &curGBP},
	}

	st := testStore(store.Settings{store.SettingPrimaryCurrencyID: "5"})

	r := httptest.NewRequest(http.MethodGet, "http://shop.example.com/", nil)
	wc := New(testDeps(nil, nil, nil, curs), st, httptest.NewRecorder(), r)
	wc.SetAdminMode(true)

	got, err := wc.Currency(r.Context())
	if err != nil {
		t.Fatalf("Currency error: %v", err)
	}
	if got == nil || got.ID != curGBP.ID {
		t.Fatalf("want primary GBP in admin mode, got %+v", got)
	}
	if curs.allCalls != 0 {
		t.Fatalf("admin short-circuit must not list store currencies")
	}
}

func TestCurrencyStoredPreference(t *testing.T) {
	curs := &fakeCurrencies{
		byStore: map[int64][]directory.Currency{1: {curUSD, curEUR}},
		byID:    map[int64]*directory.Currency{},
	}
	attrs := newFakeAttrs()
	custs := newFakeCustomers()

	r := httptest.NewRequest(http.MethodGet, "http://shop.example.com/", nil)
	wc := New(testDeps(custs, attrs, nil, curs), testStore(nil), httptest.NewRecorder(), r)

	cust, _ := wc.Customer(r.Context())
	attrs.ints[attrScope(cust.ID, customer.AttrCurrencyID, 1)] = curEUR.ID

	got, err := wc.Currency(r.Context())
	if err != nil {
		t.Fatalf("Currency error: %v", err)
	}
	if got == nil || got.ID != curEUR.ID {
		t.Fatalf("want stored EUR, got %+v", got)
	}
}

func TestCurrencyLanguageDefault(t *testing.T) {
	curs := &fakeCurrencies{
		byStore: map[int64][]directory.Currency{1: {curUSD, curEUR}},
		byID:    map[int64]*directory.Currency{},
	}
	langs := &fakeLanguages{byStore: map[int64][]directory.Language{
		1: {langDE}, // default currency EUR
	}}

	st := testStore(nil)
	st.Record.DefaultLanguageID = langDE.ID

	r := httptest.NewRequest(http.MethodGet, "http://shop.example.com/", nil)
	wc := New(testDeps(nil, nil, langs, curs), st, httptest.NewRecorder(), r)

	got, err := wc.Currency(r.Context())
	if err != nil {
		t.Fatalf("Currency error: %v", err)
	}
	if got == nil || got.ID != curEUR.ID {
		t.Fatalf("want language-default EUR, got %+v", got)
	}
}

func TestCurrencyFirstAvailable(t *testing.T) {
	curs := &fakeCurrencies{
		byStore: map[int64][]directory.Currency{1: {curUSD, curEUR}},
		byID:    map[int64]*directory.Currency{},
	}

	r := httptest.NewRequest(http.MethodGet, "http://shop.example.com/", nil)
	wc := New(testDeps(nil, nil, nil, curs), testStore(nil), httptest.NewRecorder(), r)

	got, err := wc.Currency(r.Context())
	if err != nil {
		t.Fatalf("Currency error: %v", err)
	}
	if got == nil || got.ID != curUSD.ID {
		t.Fatalf("want first available USD, got %+v", got)
	}
}
