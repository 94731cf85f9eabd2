package usecase

import (
	"testing"

	"github.com/klydo/pricelens/internal/domain"
	"github.com/klydo/pricelens/internal/sites"
)

func rawPrice(s string) domain.ListingPrice {
	return domain.ListingPrice{Kind: domain.PriceRaw, Raw: s}
}

func padMatches(n int) []domain.RawMatch {
	padding := make([]domain.RawMatch, n)
	for i := range padding {
		padding[i] = domain.RawMatch{
			Link:   "https://unrelated-site.example/item",
			Title:  "filler",
			Source: "Other",
		}
	}
	return padding
}

func TestCandidateSelectorSelect(t *testing.T) {
	selector := NewCandidateSelector(NewMatchScorer(ScorerConfig{}))

	product := domain.Product{
		StyleID:        "KLY-001",
		Brand:          "Bewakoof",
		Title:          "Men Black Printed Tshirt",
		Category:       "t-shirts",
		ReferencePrice: 599,
	}
	targets := []sites.Key{sites.Myntra, sites.Slikk, sites.Bewakoof}

	t.Run("sites without a survivor keep the absence sentinel", func(t *testing.T) {
		results, stats := selector.Select(product, nil, targets)
		if len(results) != 3 {
			t.Fatalf("results has %d entries, want 3", len(results))
		}
		for site, res := range results {
			if res.URL != domain.NotFoundURL || res.Price != domain.NotAvailablePrice {
				t.Errorf("%s = %+v, want absence sentinel", site, res)
			}
		}
		if stats.Total() != 0 {
			t.Errorf("stats.Total() = %d, want 0", stats.Total())
		}
	})

	t.Run("accepts a candidate that survives every filter", func(t *testing.T) {
		matches := []domain.RawMatch{
			{
				Link:   "https://www.bewakoof.com/p/men-black-printed-tshirt",
				Title:  "Men Black Printed Tshirt",
				Source: "Bewakoof",
				Price:  rawPrice("₹620"),
			},
		}
		results, stats := selector.Select(product, matches, targets)
		got := results[sites.Bewakoof]
		if got.URL != matches[0].Link || got.Price != "620" {
			t.Errorf("bewakoof = %+v, want the listing with normalized price 620", got)
		}
		if stats.Total() != 0 {
			t.Errorf("stats.Total() = %d, want 0", stats.Total())
		}
	})

	t.Run("rank gate rejects the sixteenth result", func(t *testing.T) {
		matches := append(padMatches(15), domain.RawMatch{
			Link:   "https://www.bewakoof.com/p/men-black-printed-tshirt",
			Title:  "Men Black Printed Tshirt",
			Source: "Bewakoof",
			Price:  rawPrice("₹620"),
		})
		results, stats := selector.Select(product, matches, targets)
		if results[sites.Bewakoof].Found() {
			t.Error("rank-16 candidate accepted")
		}
		if stats.Rank != 1 {
			t.Errorf("stats.Rank = %d, want 1", stats.Rank)
		}
	})

	t.Run("lowest visual rank wins regardless of similarity", func(t *testing.T) {
		matches := []domain.RawMatch{
			{
				Link:   "https://www.bewakoof.com/p/black-printed-tshirt-loose",
				Title:  "Black Printed Tshirt",
				Source: "Bewakoof",
				Price:  rawPrice("₹610"),
			},
			{
				Link:   "https://www.bewakoof.com/p/men-black-printed-tshirt",
				Title:  "Men Black Printed Tshirt",
				Source: "Bewakoof",
				Price:  rawPrice("₹620"),
			},
		}
		results, _ := selector.Select(product, matches, targets)
		got := results[sites.Bewakoof]
		if got.URL != matches[0].Link {
			t.Errorf("winner = %q, want the rank-1 listing despite its lower similarity", got.URL)
		}
	})

	t.Run("price gate rejects and counts deviant listings", func(t *testing.T) {
		matches := []domain.RawMatch{
			{
				Link:   "https://www.bewakoof.com/p/men-black-printed-tshirt",
				Title:  "Men Black Printed Tshirt",
				Source: "Bewakoof",
				Price:  rawPrice("₹1999"), // far outside the 30% band around 599
			},
		}
		results, stats := selector.Select(product, matches, targets)
		if results[sites.Bewakoof].Found() {
			t.Error("overpriced candidate accepted")
		}
		if stats.Price != 1 {
			t.Errorf("stats.Price = %d, want 1", stats.Price)
		}
	})

	t.Run("missing price survives as the no-price sentinel", func(t *testing.T) {
		matches := []domain.RawMatch{
			{
				Link:   "https://www.bewakoof.com/p/men-black-printed-tshirt",
				Title:  "Men Black Printed Tshirt",
				Source: "Bewakoof",
			},
		}
		results, _ := selector.Select(product, matches, targets)
		got := results[sites.Bewakoof]
		if got.URL != matches[0].Link || got.Price != domain.PriceNotDisplayed {
			t.Errorf("bewakoof = %+v, want URL with price-not-displayed sentinel", got)
		}
	})

	t.Run("non-target sites are skipped without counting as rejections", func(t *testing.T) {
		matches := []domain.RawMatch{
			{
				Link:   "https://sassafras.in/products/black-printed-tshirt",
				Title:  "Men Black Printed Tshirt",
				Source: "Sassafras",
				Price:  rawPrice("₹620"),
			},
		}
		results, stats := selector.Select(product, matches, targets)
		if _, present := results[sites.Sassafras]; present {
			t.Error("non-target site appeared in results")
		}
		if stats.Total() != 0 {
			t.Errorf("stats.Total() = %d, want 0", stats.Total())
		}
	})

	t.Run("category gate rejects mismatched listings", func(t *testing.T) {
		matches := []domain.RawMatch{
			{
				Link:   "https://www.bewakoof.com/p/men-black-jeans",
				Title:  "Men Black Jeans",
				Source: "Bewakoof",
				Price:  rawPrice("₹620"),
			},
		}
		results, stats := selector.Select(product, matches, targets)
		if results[sites.Bewakoof].Found() {
			t.Error("wrong-category candidate accepted")
		}
		if stats.Category != 1 {
			t.Errorf("stats.Category = %d, want 1", stats.Category)
		}
	})

	t.Run("non-product URLs are rejected", func(t *testing.T) {
		matches := []domain.RawMatch{
			{
				Link:   "https://www.bewakoof.com/search?q=black+tshirt",
				Title:  "Men Black Printed Tshirt",
				Source: "Bewakoof",
				Price:  rawPrice("₹620"),
			},
		}
		results, stats := selector.Select(product, matches, targets)
		if results[sites.Bewakoof].Found() {
			t.Error("search-page candidate accepted")
		}
		if stats.URL != 1 {
			t.Errorf("stats.URL = %d, want 1", stats.URL)
		}
	})

	t.Run("marketplace listing without the brand is rejected", func(t *testing.T) {
		matches := []domain.RawMatch{
			{
				Link:   "https://www.myntra.com/tshirts/roadster/black-printed-tshirt/12/buy",
				Title:  "Roadster Men Black Printed Tshirt",
				Source: "Myntra",
				Price:  rawPrice("₹620"),
			},
		}
		results, stats := selector.Select(product, matches, targets)
		if results[sites.Myntra].Found() {
			t.Error("off-brand marketplace candidate accepted")
		}
		if stats.Brand != 1 {
			t.Errorf("stats.Brand = %d, want 1", stats.Brand)
		}
	})
}
