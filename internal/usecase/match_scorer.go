package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/klydo/pricelens/internal/domain"
	"github.com/klydo/pricelens/internal/sites"
)

// Package-level compiled regex pattern for performance
var wordRegex = regexp.MustCompile(`\w+`)

// Scoring adjustments and gate defaults
const (
	colorMatchBonus      = 15.0 // same color named in both titles
	colorMismatchPenalty = 20.0 // candidate names a different color

	defaultMaxVisualRank     = 15
	defaultPriceTolerance    = 0.30
	defaultMarketplaceSimMin = 3.0
	defaultBrandSiteSimMin   = 10.0
)

// categoryKeywords maps a catalog category key to the title keywords that
// confirm it. The check is mandatory only for categories that contain one of
// these keys; a category with no entry here always passes. That asymmetry
// (unknown category = silent pass, known category without keyword = hard
// reject) is deliberate and pending product-owner review.
var categoryKeywords = map[string][]string{
	"shirts":      {"shirt"},
	"t-shirts":    {"tshirt", "t-shirt", "tee"},
	"jeans":       {"jean"},
	"trousers":    {"trouser", "pant"},
	"kurtas":      {"kurta", "kurti"},
	"dresses":     {"dress"},
	"tops":        {"top", "bodysuit", "corset", "cami", "tank", "crop"},
	"jackets":     {"jacket", "blazer"},
	"sweatshirts": {"sweatshirt", "sweater", "hoodie"},
	"skirts":      {"skirt"},
}

// exemptCategories have no reliable keyword vocabulary; the category check
// never gates them.
var exemptCategories = map[string]bool{
	"other sets": true,
	"onesies":    true,
	"glasses":    true,
	"caps":       true,
}

// colorVocabulary is the fixed set of colors recognized in titles.
var colorVocabulary = []string{
	"black", "white", "blue", "red", "green", "yellow", "pink", "purple",
	"orange", "brown", "grey", "gray", "beige", "navy", "olive", "maroon",
	"silver", "gold", "cream", "khaki", "tan", "teal", "burgundy", "mint",
	"lavender", "coral", "peach", "mustard", "charcoal", "rose",
}

// titleStopWords are ignored when comparing titles.
var titleStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"with": true, "for": true, "on": true, "in": true, "at": true, "to": true,
	"buy": true, "shop": true, "online": true,
}

// ScorerConfig holds the tunable gates of the match scorer. Zero values fall
// back to the defaults above.
type ScorerConfig struct {
	MaxVisualRank            int
	PriceTolerance           float64
	MarketplaceSimilarityMin float64
	BrandSiteSimilarityMin   float64
}

// MatchScorer computes the independent pass/fail/score signals that the
// candidate selector applies as a filter cascade.
type MatchScorer struct {
	maxVisualRank            int
	priceTolerance           float64
	marketplaceSimilarityMin float64
	brandSiteSimilarityMin   float64
}

// NewMatchScorer creates a scorer with the given configuration.
func NewMatchScorer(config ScorerConfig) *MatchScorer {
	maxRank := config.MaxVisualRank
	if maxRank <= 0 {
		maxRank = defaultMaxVisualRank
	}
	tolerance := config.PriceTolerance
	if tolerance <= 0 {
		tolerance = defaultPriceTolerance
	}
	marketplaceMin := config.MarketplaceSimilarityMin
	if marketplaceMin <= 0 {
		marketplaceMin = defaultMarketplaceSimMin
	}
	brandSiteMin := config.BrandSiteSimilarityMin
	if brandSiteMin <= 0 {
		brandSiteMin = defaultBrandSiteSimMin
	}

	return &MatchScorer{
		maxVisualRank:            maxRank,
		priceTolerance:           tolerance,
		marketplaceSimilarityMin: marketplaceMin,
		brandSiteSimilarityMin:   brandSiteMin,
	}
}

// WithinRankGate reports whether a 1-based visual rank is still worth
// scoring. Tail results past the gate are rejected regardless of any other
// signal.
func (s *MatchScorer) WithinRankGate(rank int) bool {
	return rank <= s.maxVisualRank
}

// BrandMatches verifies brand identity. On the brand's own storefront, site
// membership alone verifies the brand. On marketplaces, some generated
// variant of the brand name must appear in the candidate's title, link or
// source.
func (s *MatchScorer) BrandMatches(match domain.RawMatch, targetBrand string, site sites.Key) bool {
	if !sites.IsMarketplace(site) {
		return true
	}

	combined := strings.ToLower(match.Title + " " + match.Link + " " + match.Source)
	for _, variation := range brandVariants(targetBrand) {
		// Tiny variants ("co", "2") would match almost anything.
		if len(variation) > 2 && strings.Contains(combined, variation) {
			return true
		}
	}
	return false
}

// brandVariants generates the spellings under which a brand may appear in a
// listing: collapsed forms, "the"-stripped forms, and curated aliases for
// brands whose listings routinely abbreviate.
func brandVariants(targetBrand string) []string {
	lower := strings.ToLower(targetBrand)
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(lower))

	variants := []string{
		strings.ReplaceAll(lower, " ", ""),
		strings.ReplaceAll(lower, " ", "-"),
		strings.ReplaceAll(lower, " ", "_"),
		lower,
	}

	if len(words) > 1 {
		variants = append(variants, strings.Join(words, ""))
		if words[0] == "the" {
			withoutThe := strings.Join(words[1:], " ")
			variants = append(variants, withoutThe, strings.ReplaceAll(withoutThe, " ", ""))
		}
	}

	if strings.Contains(lower, "bear") {
		variants = append(variants,
			"bear", "bearhouse", "bear house", "thebearhouse", "the bear house",
			"bearcompany", "bear company", "thebearcompany", "the bear company",
		)
	}
	if strings.Contains(lower, "bewakoof") {
		variants = append(variants, "bewakoof", "bwkf")
	}
	if strings.Contains(lower, "indian") && strings.Contains(lower, "garage") {
		variants = append(variants, "indiangarage", "indian garage", "tigc")
	}
	if strings.Contains(lower, "sassafras") || strings.Contains(lower, "mascln") ||
		strings.Contains(lower, "shae") || strings.Contains(lower, "pink paprika") {
		variants = append(variants, "sassafras", "mascln", "shae", "pink paprika")
	}
	if strings.Contains(lower, "mydesignation") {
		variants = append(variants, "mydesignation", "my designation", "designation")
	}
	if strings.Contains(lower, "beeglee") {
		variants = append(variants, "beeglee", "bee glee")
	}
	if strings.Contains(lower, "chapter") {
		variants = append(variants, "chapter2", "chapter 2", "chapter two")
	}
	if strings.Contains(lower, "campus") {
		variants = append(variants, "campussutra", "campus sutra")
	}
	if strings.Contains(lower, "guns") || strings.Contains(lower, "sons") {
		variants = append(variants, "guns", "sons", "gunsnsons", "guns & sons")
	}

	return variants
}

// CategoryMatches applies the category gate. The gate is mandatory only when
// the product category contains a known table key; it then requires one of
// that key's keywords in the candidate title.
func (s *MatchScorer) CategoryMatches(productCategory, candidateTitle string) bool {
	category := strings.ToLower(strings.TrimSpace(productCategory))
	if category == "" || exemptCategories[category] {
		return true
	}

	title := strings.ToLower(candidateTitle)
	mandatory := false
	for key, keywords := range categoryKeywords {
		if !strings.Contains(category, key) {
			continue
		}
		mandatory = true
		for _, kw := range keywords {
			if strings.Contains(title, kw) {
				return true
			}
		}
	}
	return !mandatory
}

// PriceWithinTolerance checks the candidate price against the reference
// price. The check is skipped (passes) when either side is unknown, and a
// parse failure also passes: a garbled price is not evidence of a mismatch.
func (s *MatchScorer) PriceWithinTolerance(referencePrice float64, candidatePrice string) bool {
	if referencePrice <= 0 {
		return true
	}
	if candidatePrice == "" || candidatePrice == domain.PriceNotDisplayed {
		return true
	}

	found, err := strconv.ParseFloat(candidatePrice, 64)
	if err != nil {
		return true
	}

	deviation := math.Abs(found-referencePrice) / referencePrice
	return deviation <= s.priceTolerance
}

// TitleSimilarity scores keyword overlap between the original and candidate
// titles on a 0-100 scale, adjusted by a color bonus/penalty.
func (s *MatchScorer) TitleSimilarity(originalTitle, foundTitle string) float64 {
	if originalTitle == "" || foundTitle == "" {
		return 0
	}

	origLower := strings.ToLower(originalTitle)
	foundLower := strings.ToLower(foundTitle)

	origKeywords := titleKeywords(origLower)
	foundKeywords := titleKeywords(foundLower)
	if len(origKeywords) == 0 {
		return 0
	}

	common := 0
	for kw := range origKeywords {
		if foundKeywords[kw] {
			common++
		}
	}
	score := float64(common) / float64(len(origKeywords)) * 100

	origColors := extractColors(origLower)
	foundColors := extractColors(foundLower)
	if len(origColors) > 0 {
		if anyColorShared(origColors, foundColors) {
			score += colorMatchBonus
		} else if len(foundColors) > 0 {
			score -= colorMismatchPenalty
		}
	}

	return math.Min(100, math.Max(0, score))
}

// SimilarityThreshold returns the minimum title similarity for a site.
// Marketplaces tolerate more noise because the brand, category and price
// gates have already narrowed the field.
func (s *MatchScorer) SimilarityThreshold(site sites.Key) float64 {
	if sites.IsMarketplace(site) {
		return s.marketplaceSimilarityMin
	}
	return s.brandSiteSimilarityMin
}

// titleKeywords tokenizes a lowercased title into its stop-word-filtered
// keyword set.
func titleKeywords(lowerTitle string) map[string]bool {
	keywords := make(map[string]bool)
	for _, word := range wordRegex.FindAllString(lowerTitle, -1) {
		if !titleStopWords[word] {
			keywords[word] = true
		}
	}
	return keywords
}

// extractColors lists the vocabulary colors mentioned in a lowercased title.
func extractColors(lowerTitle string) []string {
	var found []string
	for _, c := range colorVocabulary {
		if strings.Contains(lowerTitle, c) {
			found = append(found, c)
		}
	}
	return found
}

func anyColorShared(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
