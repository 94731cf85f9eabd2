package domain

import "context"

// LensClient defines the interface for the external visual search capability.
// Both calls return the provider's ranked listing sequence; an empty slice is
// a valid outcome and means "no visual matches".
type LensClient interface {
	VisualSearch(ctx context.Context, imageURL string) ([]RawMatch, error)
	VisualSearchWithQuery(ctx context.Context, imageURL, query string) ([]RawMatch, error)
}

// ProductSource supplies the batch of products to match.
type ProductSource interface {
	ReadProducts(ctx context.Context) ([]Product, error)
}

// ComparisonSink receives the finished comparison table.
type ComparisonSink interface {
	WriteComparison(ctx context.Context, rows []ComparisonRow) error
}
