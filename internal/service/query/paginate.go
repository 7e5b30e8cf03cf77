// Package query implements the filterable, paginated retrieval logic shared
// by every listing endpoint.
package query

import (
	"github.com/vebops/store/internal/domain/models"
)

const (
	// DefaultPageSize applies when the caller sends no size or an invalid one.
	DefaultPageSize = 10
	// MaxPageSize caps requested sizes so one request cannot drag the whole
	// dataset through the aggregator.
	MaxPageSize = 100
)

// SanitizePage coerces the raw page number to 1-based indexing.
func SanitizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// SanitizeSize coerces the raw page size into [1, MaxPageSize].
func SanitizeSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Paginate slices an ordered result set into one page. Malformed page/size
// values are sanitized rather than rejected, and a page beyond the end yields
// an empty item list while the metadata keeps describing the true dataset.
// Pure and stateless: identical inputs always produce identical output.
func Paginate[T any](items []T, page, size int) models.Page[T] {
	safeSize := SanitizeSize(size)
	safePage := SanitizePage(page)

	totalItems := len(items)
	totalPages := 1
	if totalItems > 0 {
		totalPages = (totalItems + safeSize - 1) / safeSize
	}

	fromIndex := (safePage - 1) * safeSize
	toIndex := fromIndex + safeSize
	if toIndex > totalItems {
		toIndex = totalItems
	}

	pageItems := []T{}
	if fromIndex < toIndex {
		pageItems = items[fromIndex:toIndex]
	}

	return models.Page[T]{
		Items:       pageItems,
		TotalItems:  totalItems,
		Page:        safePage,
		Size:        safeSize,
		TotalPages:  totalPages,
		HasNext:     safePage < totalPages,
		HasPrevious: safePage > 1,
		Extra:       map[string]any{},
	}
}
