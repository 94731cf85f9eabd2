package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/klydo/pricelens/internal/domain"
)

type fakeProductSource struct {
	products []domain.Product
	err      error
}

func (f *fakeProductSource) ReadProducts(ctx context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

type fakeComparisonSink struct {
	rows []domain.ComparisonRow
	err  error
}

func (f *fakeComparisonSink) WriteComparison(ctx context.Context, rows []domain.ComparisonRow) error {
	f.rows = rows
	return f.err
}

func newTestBatch(lens *fakeLensClient, source *fakeProductSource, sink *fakeComparisonSink) *BatchService {
	search := NewSearchService(lens, SearchServiceConfig{})
	return NewBatchService(search, source, sink, BatchServiceConfig{
		PacingDelay: time.Millisecond,
	})
}

func TestBatchRun(t *testing.T) {
	t.Run("writes one row per product with synthesized catalog columns", func(t *testing.T) {
		source := &fakeProductSource{products: []domain.Product{testProduct()}}
		sink := &fakeComparisonSink{}
		lens := &fakeLensClient{visualMatches: []domain.RawMatch{bewakoofListing()}}

		summary, err := newTestBatch(lens, source, sink).Run(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sink.rows) != 1 {
			t.Fatalf("wrote %d rows, want 1", len(sink.rows))
		}

		row := sink.rows[0]
		if row.KlydoURL != "https://klydo.in/product/KLY-001" {
			t.Errorf("KlydoURL = %q", row.KlydoURL)
		}
		if row.KlydoPrice != "599" {
			t.Errorf("KlydoPrice = %q, want 599", row.KlydoPrice)
		}
		if row.BrandURL != "https://www.bewakoof.com/p/men-black-printed-tshirt" || row.BrandPrice != "620" {
			t.Errorf("brand columns = %q/%q, want resolved bewakoof listing", row.BrandURL, row.BrandPrice)
		}
		if row.MyntraURL != domain.NotFoundURL || row.MyntraPrice != domain.NotAvailablePrice {
			t.Errorf("myntra columns = %q/%q, want absence sentinels", row.MyntraURL, row.MyntraPrice)
		}

		if summary.Total != 1 || summary.BrandFound != 1 || summary.MyntraFound != 0 {
			t.Errorf("summary = %+v", summary)
		}
	})

	t.Run("product without image still gets a sentinel row", func(t *testing.T) {
		noImage := testProduct()
		noImage.StyleID = "KLY-002"
		noImage.ImageURL = ""

		source := &fakeProductSource{products: []domain.Product{noImage}}
		sink := &fakeComparisonSink{}
		lens := &fakeLensClient{}

		summary, err := newTestBatch(lens, source, sink).Run(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sink.rows) != 1 {
			t.Fatalf("wrote %d rows, want 1", len(sink.rows))
		}
		row := sink.rows[0]
		if row.StyleID != "KLY-002" || row.BrandURL != domain.NotFoundURL {
			t.Errorf("row = %+v, want sentinel row for KLY-002", row)
		}
		if summary.BrandFound != 0 {
			t.Errorf("BrandFound = %d, want 0", summary.BrandFound)
		}
	})

	t.Run("missing reference price leaves the klydo column empty", func(t *testing.T) {
		product := testProduct()
		product.ReferencePrice = 0

		source := &fakeProductSource{products: []domain.Product{product}}
		sink := &fakeComparisonSink{}

		_, err := newTestBatch(&fakeLensClient{}, source, sink).Run(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := sink.rows[0].KlydoPrice; got != "" {
			t.Errorf("KlydoPrice = %q, want empty", got)
		}
	})

	t.Run("read failure aborts the run", func(t *testing.T) {
		source := &fakeProductSource{err: errors.New("no such file")}
		_, err := newTestBatch(&fakeLensClient{}, source, &fakeComparisonSink{}).Run(context.Background())
		if err == nil {
			t.Fatal("expected error from unreadable catalog")
		}
	})

	t.Run("write failure aborts the run", func(t *testing.T) {
		source := &fakeProductSource{products: []domain.Product{testProduct()}}
		sink := &fakeComparisonSink{err: errors.New("disk full")}
		_, err := newTestBatch(&fakeLensClient{}, source, sink).Run(context.Background())
		if err == nil {
			t.Fatal("expected error from failing sink")
		}
	})

	t.Run("coverage counts span the batch", func(t *testing.T) {
		withMatch := testProduct()
		noImage := testProduct()
		noImage.StyleID = "KLY-002"
		noImage.ImageURL = ""

		source := &fakeProductSource{products: []domain.Product{withMatch, noImage}}
		sink := &fakeComparisonSink{}
		lens := &fakeLensClient{visualMatches: []domain.RawMatch{bewakoofListing()}}

		summary, err := newTestBatch(lens, source, sink).Run(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Total != 2 || summary.BrandFound != 1 {
			t.Errorf("summary = %+v, want Total 2 BrandFound 1", summary)
		}
		if got := summary.Percent(summary.BrandFound); got != 50 {
			t.Errorf("Percent(BrandFound) = %v, want 50", got)
		}
	})
}
