// Package metrics holds Prometheus instruments that are used across the
// storefront.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GuestCustomersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guest_customers_total",
			Help: "Cumulative number of guest customer records inserted.",
		})

	LocaleRedirectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "locale_redirects_total",
			Help: "Cumulative number of permanent redirects to locale-qualified URLs.",
		})

	AffiliateAttributionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "affiliate_attributions_total",
			Help: "Cumulative number of customer-to-affiliate bindings written.",
		})

	NavigationDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "navigation_denied_total",
			Help: "Cumulative number of requests rejected by the public-navigation permission.",
		})

	StoreLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_load_total",
			Help: "Cumulative number of store rows successfully loaded into the cache.",
		})

	StoreLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_load_errors_total",
			Help: "Cumulative number of store load errors.",
		})
)

func init() {
	prometheus.MustRegister(
		GuestCustomersTotal,
		LocaleRedirectsTotal,
		AffiliateAttributionsTotal,
		NavigationDeniedTotal,
		StoreLoadTotal,
		StoreLoadErrorsTotal,
	)
}
