package usecase

import (
	"context"
	"log"

	"github.com/klydo/pricelens/internal/domain"
	"github.com/klydo/pricelens/internal/sites"
)

// SearchServiceConfig holds configuration for the search service.
type SearchServiceConfig struct {
	Scorer ScorerConfig
}

// SearchService drives the two-pass match for a single product: a pure
// visual pass over the full target-site set, then a conditional visual+brand
// pass over whichever sites the first pass left unresolved.
type SearchService struct {
	lens     domain.LensClient
	selector *CandidateSelector
}

// NewSearchService creates a search service with dependencies.
func NewSearchService(lens domain.LensClient, config SearchServiceConfig) *SearchService {
	return &SearchService{
		lens:     lens,
		selector: NewCandidateSelector(NewMatchScorer(config.Scorer)),
	}
}

// MatchOutcome is the per-product result set.
type MatchOutcome struct {
	Product   domain.Product
	BrandSite sites.Key   // "" when the brand owns no registered site
	Targets   []sites.Key // primary sites plus the brand site, if any
	Results   map[sites.Key]domain.SiteResult
}

// Result returns the outcome for a site, defaulting to the absence sentinel.
func (o *MatchOutcome) Result(key sites.Key) domain.SiteResult {
	if r, ok := o.Results[key]; ok {
		return r
	}
	return domain.AbsentResult()
}

// FoundCount returns how many target sites resolved to an actual match.
func (o *MatchOutcome) FoundCount() int {
	n := 0
	for _, r := range o.Results {
		if r.Found() {
			n++
		}
	}
	return n
}

// MatchProduct runs the two-pass search strategy for one product.
// Flow: resolve targets -> pass 1 (image only) -> pass 2 (image + brand
// query, unresolved sites only) -> merge. A failed or empty pass is not
// fatal; unresolved sites keep their absence sentinels. A product without an
// image is skipped entirely and reported via ErrMissingImage.
func (s *SearchService) MatchProduct(ctx context.Context, product domain.Product) (*MatchOutcome, error) {
	brandSite, hasBrandSite := sites.ResolveBrandSite(product.Brand)

	targets := sites.Primary()
	if hasBrandSite && !containsKey(targets, brandSite) {
		targets = append(targets, brandSite)
	}

	outcome := &MatchOutcome{
		Product: product,
		Targets: targets,
		Results: make(map[sites.Key]domain.SiteResult, len(targets)),
	}
	if hasBrandSite {
		outcome.BrandSite = brandSite
	}
	for _, key := range targets {
		outcome.Results[key] = domain.AbsentResult()
	}

	if product.ImageURL == "" {
		log.Printf("[MATCH] %s: no image URL, skipping search", product.StyleID)
		return outcome, domain.ErrMissingImage
	}

	// Pass 1: pure visual search against the full target set.
	matches, err := s.lens.VisualSearch(ctx, product.ImageURL)
	if err != nil {
		log.Printf("[MATCH] %s: pass 1 search failed: %v", product.StyleID, err)
	} else {
		results, _ := s.selector.Select(product, matches, targets)
		outcome.Results = results
	}
	log.Printf("[MATCH] %s: pass 1 found %d/%d site(s)", product.StyleID, outcome.FoundCount(), len(targets))

	missing := unresolvedSites(targets, outcome.Results)
	if len(missing) == 0 {
		return outcome, nil
	}

	// Pass 2: same image plus the brand as text query, restricted to the
	// sites pass 1 left unresolved. The provider returns every brand product
	// it can see; the local cascade does the narrowing.
	query := sites.SearchQueryBrand(product.Brand)
	log.Printf("[MATCH] %s: pass 2 query %q for %d unresolved site(s)", product.StyleID, query, len(missing))

	matches, err = s.lens.VisualSearchWithQuery(ctx, product.ImageURL, query)
	if err != nil {
		log.Printf("[MATCH] %s: pass 2 search failed: %v", product.StyleID, err)
		return outcome, nil
	}

	secondPass, stats := s.selector.Select(product, matches, missing)
	for _, key := range missing {
		// Merge is monotonic: only sites still in the absence state may be
		// filled, and an already-resolved site is never overwritten.
		if r, ok := secondPass[key]; ok && r.Found() {
			outcome.Results[key] = r
		}
	}

	if total := stats.Total(); total > 0 {
		log.Printf("[MATCH] %s: pass 2 filtered %d (rank=%d, brand=%d, url=%d, cat=%d, price=%d, sim=%d)",
			product.StyleID, total, stats.Rank, stats.Brand, stats.URL, stats.Category, stats.Price, stats.Similarity)
	}
	log.Printf("[MATCH] %s: total found %d/%d site(s)", product.StyleID, outcome.FoundCount(), len(targets))

	return outcome, nil
}

func containsKey(keys []sites.Key, key sites.Key) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func unresolvedSites(targets []sites.Key, results map[sites.Key]domain.SiteResult) []sites.Key {
	var missing []sites.Key
	for _, key := range targets {
		if r, ok := results[key]; !ok || !r.Found() {
			missing = append(missing, key)
		}
	}
	return missing
}
