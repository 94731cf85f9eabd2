package domain

// Product is one immutable row of the merchant catalog. It is created by the
// catalog reader and never mutated during a matching run.
type Product struct {
	StyleID        string  `json:"style_id" binding:"required"`
	Brand          string  `json:"brand"`
	Title          string  `json:"product_title"`
	Gender         string  `json:"gender,omitempty"`
	Category       string  `json:"category,omitempty"`
	ReferencePrice float64 `json:"min_price_rupees,omitempty"` // 0 = no reference price known
	ImageURL       string  `json:"image_url,omitempty"`
}

// RawMatch is one entry of the ranked listing sequence returned by the visual
// search provider. Its visual rank is implicit: 1-based position in the slice.
type RawMatch struct {
	Link   string       `json:"link"`
	Title  string       `json:"title"`
	Source string       `json:"source"`
	Price  ListingPrice `json:"price"`
}

// Candidate is a RawMatch that survived the full filter cascade for one site.
// Scoped to a single product's single pass.
type Candidate struct {
	URL        string
	Price      string // normalized numeric string, or PriceNotDisplayed
	VisualRank int
	Similarity float64 // 0-100
	Title      string
}

// Sentinel values used in the comparison output. These are part of the output
// contract and must round-trip through the writer exactly.
const (
	NotFoundURL       = "Not Found"
	NotAvailablePrice = "Product not available on site"
	PriceNotDisplayed = "Price not displayed in listing"
)

// SiteResult is the chosen outcome for one (product, site) pair.
type SiteResult struct {
	URL   string `json:"url"`
	Price string `json:"price"`
}

// AbsentResult returns the sentinel "no match" result.
func AbsentResult() SiteResult {
	return SiteResult{URL: NotFoundURL, Price: NotAvailablePrice}
}

// Found reports whether the result holds an actual match.
func (r SiteResult) Found() bool {
	return r.URL != NotFoundURL
}

// ComparisonRow is one row of the final comparison table. The brand_* columns
// are generic: they hold whichever brand-owned site was resolved for the row.
type ComparisonRow struct {
	StyleID     string
	Brand       string
	Title       string
	Gender      string
	Category    string
	KlydoPrice  string
	MyntraPrice string
	SlikkPrice  string
	BrandPrice  string
	KlydoURL    string
	MyntraURL   string
	SlikkURL    string
	BrandURL    string
}

// ComparisonColumns is the fixed output header, in order.
var ComparisonColumns = []string{
	"style_id", "brand", "product_title", "gender", "category",
	"klydo_price", "myntra_price", "slikk_price", "brand_price",
	"klydo_url", "myntra_url", "slikk_url", "brand_url",
}

// Values returns the row cells in ComparisonColumns order.
func (r ComparisonRow) Values() []string {
	return []string{
		r.StyleID, r.Brand, r.Title, r.Gender, r.Category,
		r.KlydoPrice, r.MyntraPrice, r.SlikkPrice, r.BrandPrice,
		r.KlydoURL, r.MyntraURL, r.SlikkURL, r.BrandURL,
	}
}
