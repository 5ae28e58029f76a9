// cmd/web/main.go
//
// Storefront – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Optional Vault client (only when VAULT_ADDR is set).
//
//  2. Load config (conf/.env → conf/global.yaml → STOREFRONT_ env overrides),
//     resolving any `vault:` secret URIs.
//
//  3. Start daily rotating logger (tees to console when running in a TTY).
//
//  4. Open the platform DB; request enrichment gains GeoIP when configured.
//
//  5. Build the store cache and the repositories behind the work context.
//
//  6. Assemble the router:
//
//     • security headers + request enrichment + work-context injection
//       run on every request,
//     • affiliate attribution and last-IP capture run on every request
//       and never short-circuit,
//     • /metrics and the legacy ID redirects are exempt from the
//       closed-store navigation check,
//     • locale-aware pages add the SEO locale redirect.
//
//  7. Wrap with ForceHTTPS when configured, then serve with hardened
//     timeouts and graceful shutdown.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/storefront/internal/affiliate"
	"github.com/yanizio/storefront/internal/auth"
	"github.com/yanizio/storefront/internal/config"
	"github.com/yanizio/storefront/internal/customer"
	"github.com/yanizio/storefront/internal/database"
	"github.com/yanizio/storefront/internal/directory"
	"github.com/yanizio/storefront/internal/filters"
	"github.com/yanizio/storefront/internal/logger"
	"github.com/yanizio/storefront/internal/middleware"
	"github.com/yanizio/storefront/internal/redirects"
	"github.com/yanizio/storefront/internal/requestinfo"
	"github.com/yanizio/storefront/internal/security"
	"github.com/yanizio/storefront/internal/server"
	"github.com/yanizio/storefront/internal/store"
	"github.com/yanizio/storefront/internal/vault"
	"github.com/yanizio/storefront/internal/vendor"
	"github.com/yanizio/storefront/internal/workctx"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	//
	// ── 1.  Vault (optional) + config ───────────────────────────────────
	//
	var vc *vault.Client
	if os.Getenv("VAULT_ADDR") != "" {
		var err error
		if vc, err = vault.New(ctx); err != nil {
			log.Fatalf("vault client: %v", err)
		}
	}

	cfg, err := config.Load(ctx, vc)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Logger ──────────────────────────────────────────────────────
	//
	sugar, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if cfg.GeoIP.Path != "" {
		if err := requestinfo.InitGeo(cfg.GeoIP.Path); err != nil {
			sugar.Warnw("geoip unavailable", "path", cfg.GeoIP.Path, "err", err)
		}
	}

	//
	// ── 3.  Platform DB connect ─────────────────────────────────────────
	//
	sugar.Infow("connecting to platform DB")
	db, err := database.Open(cfg.BuildDSN())
	if err != nil {
		sugar.Fatalw("connect platform DB", "err", err)
	}
	defer db.Close()

	// Log active-store count as an early sanity check.
	if recs, err := store.AllActive(db); err == nil {
		sugar.Infow("platform DB online", "active_stores", len(recs))
	}

	//
	// ── 4.  Store cache + repositories ──────────────────────────────────
	//
	stores := store.NewCache(db, store.DefaultTTL)

	customers := customer.NewRepository(db)
	attributes := customer.NewAttributes(db)
	languages := directory.NewLanguages(db)
	currencies := directory.NewCurrencies(db)
	vendors := vendor.NewRepository(db)
	affiliates := affiliate.NewRepository(db)
	authSvc := auth.NewCookieService(customers, 0)

	deps := workctx.Deps{
		Customers:    customers,
		Attributes:   attributes,
		Languages:    languages,
		Currencies:   currencies,
		Vendors:      vendors,
		Auth:         authSvc,
		CookieName:   cfg.Customer.CookieName,
		CookieExpiry: time.Duration(cfg.Customer.CookieExpiryHours) * time.Hour,
	}

	authorize := func(ctx context.Context, permission string, roles []string) (bool, error) {
		return security.Authorize(ctx, db.DB, permission, roles)
	}
	allowNav := filters.AllowNavigation(database.Ready, authorize)

	//
	// ── 5.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)
	r.Use(workctx.Middleware(deps, stores))
	r.Use(filters.Affiliate(database.Ready, affiliates, customers))
	r.Use(filters.CaptureIP(database.Ready, customers))

	// Reachable while the store is closed.
	r.Group(func(g chi.Router) {
		g.Use(filters.ExemptNavigation)
		g.Use(allowNav)
		g.Handle("/metrics", promhttp.Handler())
		redirects.NewResolver(db).Register(g)
	})

	// Locale-aware storefront pages.
	r.Group(func(g chi.Router) {
		g.Use(allowNav)
		g.Use(filters.LocaleRedirect(database.Ready))
		g.Get("/", home)
		g.Get("/{locale:[A-Za-z]{2}}", home)
		g.Get("/{locale:[A-Za-z]{2}}/*", home)
	})

	var handler http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(stores, handler)
	}

	//
	// ── 6.  Serve ───────────────────────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, handler)
	sugar.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := server.Run(srv); err != nil {
		sugar.Fatalw("http server", "err", err)
	}
	sugar.Infow("shutdown complete")
}

// home renders a minimal landing page from the resolved working context.
// Real page rendering belongs to the catalog and content layers; this
// handler exists so the resolution pipeline has a terminal.
func home(w http.ResponseWriter, r *http.Request) {
	wc := workctx.FromRequest(r)
	if wc == nil {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	cust, err := wc.Customer(ctx)
	if err != nil {
		zap.S().Errorw("customer resolution failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	lang, _ := wc.Language(ctx)
	curr, _ := wc.Currency(ctx)
	tax, _ := wc.TaxDisplayMode(ctx)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s\n", wc.Store().Record.Name)
	if cust != nil {
		fmt.Fprintf(w, "customer: %s\n", cust.GUID)
	}
	if lang != nil {
		fmt.Fprintf(w, "language: %s\n", lang.UniqueSeoCode)
	}
	if curr != nil {
		fmt.Fprintf(w, "currency: %s\n", curr.Code)
	}
	fmt.Fprintf(w, "prices: tax %s\n", tax)
}
