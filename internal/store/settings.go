// internal/store/settings.go
//
// Typed access to the per-store `store_setting` key-value table.
//
// Context
// -------
// Store behaviour toggles (multilingual SEO URLs, browser language
// auto-detection, tax display policy, primary currency) live in a key-value
// table so operators can flip them without a deploy.  The query runs once
// when the store is loaded, and the resulting map is cached alongside the
// Store aggregate.
//
// The key set is a closed enumeration; resolvers never probe ad-hoc
// strings.
package store

import "strconv"

// Setting keys understood by the resolvers and filters.
const (
	SettingSeoFriendlyURLs        = "localization.seo_friendly_urls"
	SettingAutoDetectLanguage     = "localization.auto_detect_language"
	SettingPrimaryCurrencyID      = "currency.primary_store_currency_id"
	SettingAllowCustomerTaxChoice = "tax.allow_customer_choice"
	SettingDefaultTaxDisplay      = "tax.default_display" // "including" or "excluding"
)

// Settings is the immutable key-value map loaded with the store row.
type Settings map[string]string

// Bool reports the setting as a boolean, with def on absence or junk.
func (s Settings) Bool(key string, def bool) bool {
	raw, ok := s[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

// Int64 reports the setting as an int64, with def on absence or junk.
func (s Settings) Int64(key string, def int64) int64 {
	raw, ok := s[key]
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// String reports the raw setting, with def on absence.
func (s Settings) String(key, def string) string {
	if raw, ok := s[key]; ok {
		return raw
	}
	return def
}
