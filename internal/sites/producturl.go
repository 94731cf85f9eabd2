package sites

import (
	"net/url"
	"strings"
)

// denyPatterns mark category, search, filter and pagination pages. They are
// checked before any site-specific allow rule: a global deny always wins.
var denyPatterns = []string{
	"/collections/", "/collection/", "/category/", "/categories/",
	"/search", "?search=", "/s?", "/find/",
	"/brand/", "/brands/", "/sale/", "/deals/",
	"/all-products", "/shop?",
	"/filter", "/sort=",
	"?page=", "&page=",
	"/men/", "/women/", "/kids/", "/unisex/",
	"/clothing/", "/accessories/", "/footwear/",
}

// productPathMarkers are per-site substrings that identify a genuine product
// page. An entry with an empty marker list accepts every URL that cleared the
// deny list (slikk has no stable product-path convention). Sites without an
// entry fall back to the generic path-depth rule.
var productPathMarkers = map[Key][]string{
	Bewakoof:       {"/p/", "/product/", "/buy"},
	Myntra:         {"/buy", "/p/"},
	Slikk:          {},
	MyDesignation:  {"/products/"},
	Sassafras:      {"/products/"},
	BearHouse:      {"/products/", "/product/"},
	BearCompany:    {"/products/", "/product/"},
	IndianGarageCo: {"/products/"},
	Beeglee:        {"/products/", "/product/"},
	ColorCapital:   {"/products/", "/product/"},
	ChapterTwo:     {"/products/", "/product/"},
	Qissa:          {"/products/", "/product/"},
	MyWishbag:      {"/products/", "/product/"},
	CampusSutra:    {"/products/", "/product/"},
	HauteSauce:     {"/products/", "/product/"},
	Silisoul:       {"/products/", "/product/"},
	GunsAndSons:    {"/products/", "/product/"},
}

// IsProductPage reports whether a URL points at a single-product page rather
// than a category, search or listing page.
func IsProductPage(rawURL string) bool {
	lower := strings.ToLower(rawURL)

	for _, pattern := range denyPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}

	if key, ok := Resolve(lower); ok {
		if markers, hasRule := productPathMarkers[key]; hasRule {
			if len(markers) == 0 {
				return true
			}
			for _, marker := range markers {
				if strings.Contains(lower, marker) {
					return true
				}
			}
			return false
		}
	}

	// Generic fallback: a leaf product path runs at least 3 segments deep;
	// shallower URLs are category roots.
	return pathDepth(lower) >= 3
}

func pathDepth(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	depth := 0
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			depth++
		}
	}
	return depth
}
