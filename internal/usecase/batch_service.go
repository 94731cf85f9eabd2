package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/klydo/pricelens/internal/domain"
	"github.com/klydo/pricelens/internal/sites"
)

const (
	defaultPacingDelay      = time.Second
	defaultCoverageTarget   = 0.50
	defaultKlydoURLTemplate = "https://klydo.in/product/%s"
)

// BatchServiceConfig holds configuration for the batch runner.
type BatchServiceConfig struct {
	PacingDelay      time.Duration
	CoverageTarget   float64 // fraction of products expected per site, 0-1
	KlydoURLTemplate string  // fmt template taking the style id
}

// BatchService iterates a product catalog strictly sequentially, matches each
// product via the search service with inter-product pacing, and serializes
// the final comparison rows. Products are never processed concurrently: the
// external provider is rate limited and each product takes at most two calls.
type BatchService struct {
	search           *SearchService
	source           domain.ProductSource
	sink             domain.ComparisonSink
	pacingDelay      time.Duration
	coverageTarget   float64
	klydoURLTemplate string
}

// NewBatchService creates a batch runner with dependencies.
func NewBatchService(
	search *SearchService,
	source domain.ProductSource,
	sink domain.ComparisonSink,
	config BatchServiceConfig,
) *BatchService {
	pacing := config.PacingDelay
	if pacing <= 0 {
		pacing = defaultPacingDelay
	}
	target := config.CoverageTarget
	if target <= 0 {
		target = defaultCoverageTarget
	}
	template := config.KlydoURLTemplate
	if template == "" {
		template = defaultKlydoURLTemplate
	}

	return &BatchService{
		search:           search,
		source:           source,
		sink:             sink,
		pacingDelay:      pacing,
		coverageTarget:   target,
		klydoURLTemplate: template,
	}
}

// BatchSummary aggregates coverage over one run.
type BatchSummary struct {
	Total       int
	MyntraFound int
	SlikkFound  int
	BrandFound  int
}

// Percent converts a found-count into a percentage of the batch.
func (s BatchSummary) Percent(found int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(found) / float64(s.Total) * 100
}

// Run processes the whole catalog. Per-product failures (missing image,
// provider errors) cost that product its matches and nothing more; only
// reading the input or writing the output can abort the run.
func (b *BatchService) Run(ctx context.Context) (*BatchSummary, error) {
	products, err := b.source.ReadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading product catalog: %w", err)
	}

	logBrandCounts(products)

	summary := &BatchSummary{Total: len(products)}
	rows := make([]domain.ComparisonRow, 0, len(products))

	for i, product := range products {
		log.Printf("[RUN] [%d/%d] %s (%s)", i+1, len(products), truncate(product.Title, 60), product.Brand)

		outcome, err := b.search.MatchProduct(ctx, product)
		if err != nil && !errors.Is(err, domain.ErrMissingImage) {
			log.Printf("[RUN] %s: match failed: %v", product.StyleID, err)
		}

		rows = append(rows, b.buildRow(outcome))
		tallyCoverage(summary, outcome)

		// Pacing between products keeps the provider's rate limits happy.
		if i < len(products)-1 {
			time.Sleep(b.pacingDelay)
		}
	}

	if err := b.sink.WriteComparison(ctx, rows); err != nil {
		return nil, fmt.Errorf("writing comparison output: %w", err)
	}

	b.logCoverage(summary)
	return summary, nil
}

// buildRow serializes an outcome into the fixed output schema. The klydo
// column is synthesized from the style id; the brand_* columns hold whichever
// brand-owned site was resolved for this row.
func (b *BatchService) buildRow(outcome *MatchOutcome) domain.ComparisonRow {
	product := outcome.Product
	myntra := outcome.Result(sites.Myntra)
	slikk := outcome.Result(sites.Slikk)

	brand := domain.AbsentResult()
	if outcome.BrandSite != "" {
		brand = outcome.Result(outcome.BrandSite)
	}

	return domain.ComparisonRow{
		StyleID:     product.StyleID,
		Brand:       product.Brand,
		Title:       product.Title,
		Gender:      product.Gender,
		Category:    product.Category,
		KlydoPrice:  formatReferencePrice(product.ReferencePrice),
		MyntraPrice: myntra.Price,
		SlikkPrice:  slikk.Price,
		BrandPrice:  brand.Price,
		KlydoURL:    fmt.Sprintf(b.klydoURLTemplate, product.StyleID),
		MyntraURL:   myntra.URL,
		SlikkURL:    slikk.URL,
		BrandURL:    brand.URL,
	}
}

func tallyCoverage(summary *BatchSummary, outcome *MatchOutcome) {
	if outcome.Result(sites.Myntra).Found() {
		summary.MyntraFound++
	}
	if outcome.Result(sites.Slikk).Found() {
		summary.SlikkFound++
	}
	if outcome.BrandSite != "" && outcome.Result(outcome.BrandSite).Found() {
		summary.BrandFound++
	}
}

func (b *BatchService) logCoverage(summary *BatchSummary) {
	target := b.coverageTarget * 100
	for _, line := range []struct {
		name  string
		found int
	}{
		{"myntra", summary.MyntraFound},
		{"slikk", summary.SlikkFound},
		{"brand sites", summary.BrandFound},
	} {
		pct := summary.Percent(line.found)
		status := "ok"
		if pct < target {
			status = "below target"
		}
		log.Printf("[RUN] coverage %s: %d/%d (%.0f%%, %s)", line.name, line.found, summary.Total, pct, status)
	}
}

func logBrandCounts(products []domain.Product) {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Brand]++
	}
	brands := make([]string, 0, len(counts))
	for brand := range counts {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	log.Printf("[RUN] processing %d product(s) from %d brand(s)", len(products), len(brands))
	for _, brand := range brands {
		log.Printf("[RUN]   %s: %d product(s)", brand, counts[brand])
	}
}

func formatReferencePrice(price float64) string {
	if price <= 0 {
		return ""
	}
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
