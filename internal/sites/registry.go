// Package sites holds the static shopping-site registry: which sites the
// engine compares against, how to recognize their URLs, and which brands own
// which site. The tables are data, not logic — the matching engine stays free
// of brand-specific branches.
package sites

import (
	"net/url"
	"strings"
)

// Key is the canonical identifier of a registered shopping site.
type Key string

const (
	Myntra         Key = "myntra"
	Slikk          Key = "slikk"
	Bewakoof       Key = "bewakoof"
	Sassafras      Key = "sassafras"
	IndianGarageCo Key = "indian_garage_co"
	BearHouse      Key = "bearhouse"
	BearCompany    Key = "bearcompany"
	MyDesignation  Key = "mydesignation"
	Beeglee        Key = "beeglee"
	ColorCapital   Key = "color_capital"
	ChapterTwo     Key = "chapter_2"
	Qissa          Key = "qissa"
	MyWishbag      Key = "mywishbag"
	CampusSutra    Key = "campus_sutra"
	HauteSauce     Key = "haute_sauce"
	Silisoul       Key = "silisoul"
	GunsAndSons    Key = "guns_and_sons"
)

type site struct {
	key      Key
	patterns []string
}

// registry order is fixed: resolution takes the first site whose pattern
// matches, so marketplaces come first and brand sites keep their relative
// order. Multiple brand keys may share a storefront domain upstream; only the
// canonical owner is listed here so URL resolution is unambiguous.
var registry = []site{
	{Myntra, []string{"myntra.com"}},
	{Slikk, []string{"slikk.club"}},
	{Bewakoof, []string{"bewakoof.com"}},
	{Sassafras, []string{"sassafras.in"}},
	{IndianGarageCo, []string{"tigc.in"}},
	{BearHouse, []string{"thebearhouse.com", "bearhouseindia.com", "thebearhouse.in"}},
	{BearCompany, []string{"bearcompany.in", "thebearcompany.com"}},
	{MyDesignation, []string{"mydesignation.com"}},
	{Beeglee, []string{"beeglee.in"}},
	{ColorCapital, []string{"colorcapital.in"}},
	{ChapterTwo, []string{"chapter2drip.com"}},
	{Qissa, []string{"shopqissa.com"}},
	{MyWishbag, []string{"mywishbag.com"}},
	{CampusSutra, []string{"campussutra.com"}},
	{HauteSauce, []string{"buyhautesauce.com"}},
	{Silisoul, []string{"silisoul.com"}},
	{GunsAndSons, []string{"gunsnsons.com"}},
}

// primarySites are always searched, for every product.
var primarySites = []Key{Myntra, Slikk}

// Primary returns the fixed marketplace set searched for every product.
func Primary() []Key {
	out := make([]Key, len(primarySites))
	copy(out, primarySites)
	return out
}

// IsMarketplace reports whether the key is a multi-brand marketplace rather
// than a brand-owned storefront.
func IsMarketplace(k Key) bool {
	for _, p := range primarySites {
		if p == k {
			return true
		}
	}
	return false
}

// Known reports whether the key is in the registry.
func Known(k Key) bool {
	for _, s := range registry {
		if s.key == k {
			return true
		}
	}
	return false
}

// Resolve identifies which registered site a URL belongs to. A pattern
// matches against the URL's host or, failing that, the full lowercased URL
// text. First registry match wins.
func Resolve(rawURL string) (Key, bool) {
	lower := strings.ToLower(rawURL)
	host := extractHost(lower)

	for _, s := range registry {
		for _, pattern := range s.patterns {
			if strings.Contains(host, pattern) || strings.Contains(lower, pattern) {
				return s.key, true
			}
		}
	}
	return "", false
}

// extractHost pulls the bare host out of a URL, tolerating malformed input.
func extractHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
