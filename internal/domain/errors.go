package domain

import "errors"

var (
	// ErrLensAPIFailure is returned when a visual search request fails
	ErrLensAPIFailure = errors.New("visual search request failed")

	// ErrMissingImage is returned when a product has no image to search by
	ErrMissingImage = errors.New("product has no image URL")
)
