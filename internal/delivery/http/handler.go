package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klydo/pricelens/internal/domain"
	"github.com/klydo/pricelens/internal/usecase"
)

// ProductMatcher is the slice of the search service the handlers need.
type ProductMatcher interface {
	MatchProduct(ctx context.Context, product domain.Product) (*usecase.MatchOutcome, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matcher ProductMatcher
}

// NewHandler creates a new HTTP handler
func NewHandler(matcher ProductMatcher) *Handler {
	return &Handler{matcher: matcher}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricelens",
		"version": "1.0.0",
	})
}

// matchRequest mirrors one catalog row.
type matchRequest struct {
	StyleID        string  `json:"style_id" binding:"required"`
	Brand          string  `json:"brand"`
	Title          string  `json:"product_title"`
	Gender         string  `json:"gender"`
	Category       string  `json:"category"`
	MinPriceRupees float64 `json:"min_price_rupees"`
	ImageURL       string  `json:"image_url"`
}

// matchResponse is the per-product comparison result.
type matchResponse struct {
	StyleID   string                       `json:"style_id"`
	BrandSite string                       `json:"brand_site,omitempty"`
	Results   map[string]domain.SiteResult `json:"results"`
}

// SearchComparison runs the two-pass match for a single product.
func (h *Handler) SearchComparison(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	product := domain.Product{
		StyleID:        req.StyleID,
		Brand:          req.Brand,
		Title:          req.Title,
		Gender:         req.Gender,
		Category:       req.Category,
		ReferencePrice: req.MinPriceRupees,
		ImageURL:       req.ImageURL,
	}

	outcome, err := h.matcher.MatchProduct(c.Request.Context(), product)
	if err != nil {
		if errors.Is(err, domain.ErrMissingImage) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product has no image URL to search by"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := make(map[string]domain.SiteResult, len(outcome.Results))
	for key, result := range outcome.Results {
		results[string(key)] = result
	}

	c.JSON(http.StatusOK, matchResponse{
		StyleID:   product.StyleID,
		BrandSite: string(outcome.BrandSite),
		Results:   results,
	})
}
