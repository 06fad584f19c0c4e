package helpers

import (
	"fmt"

	"github.com/deniz/studentdesk/internal/pkg/apperrors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// ValidatePaging rejects out-of-range paging parameters.
// Page numbers are 1-based.
func ValidatePaging(page, pageSize int) error {
	if page < DefaultPage {
		return fmt.Errorf("%w: page must be at least 1, got %d", apperrors.ErrValidationFailed, page)
	}
	if pageSize < 1 {
		return fmt.Errorf("%w: page size must be at least 1, got %d", apperrors.ErrValidationFailed, pageSize)
	}
	if pageSize > MaxPageSize {
		return fmt.Errorf("%w: page size must be at most %d, got %d", apperrors.ErrValidationFailed, MaxPageSize, pageSize)
	}
	return nil
}

// CalculateOffset converts a 1-based page number to a row offset
func CalculateOffset(page, pageSize int) uint64 {
	return uint64((page - 1) * pageSize)
}
