package pagination

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/centbook/centbook/internal/apperrors"
)

const (
	// DefaultPageSize is applied when the caller omits page_size.
	DefaultPageSize = 20
	// MaxPageSize is the ceiling enforced on caller-supplied page sizes.
	MaxPageSize = 100
)

// Params holds normalized page-number pagination parameters.
type Params struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParseParams normalizes the raw page and page_size query values. Absent or
// malformed values fall back to defaults; page_size is clamped to MaxPageSize.
func ParseParams(pageStr, pageSizeStr string) Params {
	page := 1
	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}

	pageSize := DefaultPageSize
	if v, err := strconv.Atoi(pageSizeStr); err == nil && v > 0 {
		pageSize = v
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Params{Page: page, PageSize: pageSize}
}

// PageURL builds the URL for a given page, preserving the path and page_size.
// It returns nil when pageNum is out of range for the given total count.
func PageURL(base *url.URL, params Params, pageNum int, totalCount int64) *string {
	if pageNum < 1 {
		return nil
	}
	lastPage := int((totalCount + int64(params.PageSize) - 1) / int64(params.PageSize))
	if pageNum > lastPage {
		return nil
	}

	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(pageNum))
	q.Set("page_size", strconv.Itoa(params.PageSize))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

// Links computes the next and previous page URLs for the current params.
func Links(base *url.URL, params Params, totalCount int64) (next, previous *string) {
	next = PageURL(base, params, params.Page+1, totalCount)
	previous = PageURL(base, params, params.Page-1, totalCount)
	return next, previous
}

// ValidatePage reports an error when the requested page starts past the end
// of the result set (page 1 is always valid, even when empty).
func ValidatePage(params Params, totalCount int64) error {
	if params.Page == 1 {
		return nil
	}
	if int64(params.Offset()) >= totalCount {
		return fmt.Errorf("page %d is out of range: %w", params.Page, apperrors.ErrNotFound)
	}
	return nil
}
