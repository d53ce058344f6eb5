package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	p := ParseParams("", "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = ParseParams("3", "50")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PageSize)
	assert.Equal(t, 100, p.Offset())

	// page_size is clamped to the ceiling.
	p = ParseParams("1", "5000")
	assert.Equal(t, MaxPageSize, p.PageSize)

	// Garbage falls back to defaults.
	p = ParseParams("zero", "-4")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
}

func TestLinks(t *testing.T) {
	base, err := url.Parse("http://localhost:8080/api/v1/accounts/abc/statement")
	require.NoError(t, err)

	// 5 rows, page size 2, on page 1: next exists, no previous.
	next, prev := Links(base, Params{Page: 1, PageSize: 2}, 5)
	require.NotNil(t, next)
	assert.Contains(t, *next, "page=2")
	assert.Contains(t, *next, "page_size=2")
	assert.Nil(t, prev)

	// Middle page has both.
	next, prev = Links(base, Params{Page: 2, PageSize: 2}, 5)
	require.NotNil(t, next)
	require.NotNil(t, prev)
	assert.Contains(t, *prev, "page=1")

	// Last page has no next.
	next, prev = Links(base, Params{Page: 3, PageSize: 2}, 5)
	assert.Nil(t, next)
	require.NotNil(t, prev)
}

func TestValidatePage(t *testing.T) {
	assert.NoError(t, ValidatePage(Params{Page: 1, PageSize: 20}, 0))
	assert.NoError(t, ValidatePage(Params{Page: 2, PageSize: 2}, 3))
	assert.Error(t, ValidatePage(Params{Page: 3, PageSize: 2}, 3))
}
