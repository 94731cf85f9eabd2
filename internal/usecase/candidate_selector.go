package usecase

import (
	"github.com/klydo/pricelens/internal/domain"
	"github.com/klydo/pricelens/internal/sites"
)

// RejectionStats counts how many raw matches each filter stage eliminated.
// Surfaced in logs after a second pass to explain thin results.
type RejectionStats struct {
	Rank       int
	Brand      int
	URL        int
	Category   int
	Price      int
	Similarity int
}

// Total returns the number of matches rejected across all stages.
func (r RejectionStats) Total() int {
	return r.Rank + r.Brand + r.URL + r.Category + r.Price + r.Similarity
}

// CandidateSelector runs raw matches through the filter cascade and picks at
// most one winner per target site.
type CandidateSelector struct {
	scorer *MatchScorer
}

// NewCandidateSelector creates a selector backed by the given scorer.
func NewCandidateSelector(scorer *MatchScorer) *CandidateSelector {
	return &CandidateSelector{scorer: scorer}
}

// Select filters the ranked match sequence against the product and collects
// the best surviving candidate per target site. Filter order is fixed: rank
// gate, site membership, brand, product-URL, category, price, similarity —
// cheap eliminations run before expensive string work. Sites with no
// survivor keep the absence sentinel.
func (cs *CandidateSelector) Select(
	product domain.Product,
	matches []domain.RawMatch,
	targets []sites.Key,
) (map[sites.Key]domain.SiteResult, RejectionStats) {
	results := make(map[sites.Key]domain.SiteResult, len(targets))
	for _, key := range targets {
		results[key] = domain.AbsentResult()
	}

	var stats RejectionStats
	if len(matches) == 0 {
		return results, stats
	}

	targetSet := make(map[sites.Key]bool, len(targets))
	for _, key := range targets {
		targetSet[key] = true
	}

	candidates := make(map[sites.Key][]domain.Candidate)

	for idx, match := range matches {
		rank := idx + 1
		if match.Link == "" {
			continue
		}

		if !cs.scorer.WithinRankGate(rank) {
			stats.Rank++
			continue
		}

		site, ok := sites.Resolve(match.Link)
		if !ok || !targetSet[site] {
			continue
		}

		if !cs.scorer.BrandMatches(match, product.Brand, site) {
			stats.Brand++
			continue
		}

		if !sites.IsProductPage(match.Link) {
			stats.URL++
			continue
		}

		if !cs.scorer.CategoryMatches(product.Category, match.Title) {
			stats.Category++
			continue
		}

		price, priceOK := match.Price.Resolve()
		if !priceOK {
			price = domain.PriceNotDisplayed
		}
		if !cs.scorer.PriceWithinTolerance(product.ReferencePrice, price) {
			stats.Price++
			continue
		}

		similarity := cs.scorer.TitleSimilarity(product.Title, match.Title)
		if similarity < cs.scorer.SimilarityThreshold(site) {
			stats.Similarity++
			continue
		}

		candidates[site] = append(candidates[site], domain.Candidate{
			URL:        match.Link,
			Price:      price,
			VisualRank: rank,
			Similarity: similarity,
			Title:      match.Title,
		})
	}

	// Once every hard filter has passed, visual rank is the dominant
	// discriminator: the lowest-rank survivor wins, ties going to the one
	// seen first.
	for site, list := range candidates {
		best := list[0]
		for _, c := range list[1:] {
			if c.VisualRank < best.VisualRank {
				best = c
			}
		}
		results[site] = domain.SiteResult{URL: best.URL, Price: best.Price}
	}

	return results, stats
}
