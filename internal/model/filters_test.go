package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	f := ProductFilters{}
	f.Normalize(DefaultPublicPageSize)

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPublicPageSize, f.Limit)
	assert.Equal(t, "createdAt", f.SortBy)
	assert.Equal(t, "desc", f.SortOrder)
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	f := ProductFilters{Page: 3, Limit: 20, SortBy: "basePrice", SortOrder: "asc"}
	f.Normalize(DefaultSellerPageSize)

	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, "basePrice", f.SortBy)
	assert.Equal(t, "asc", f.SortOrder)
}

func TestNormalizeRejectsUnknownSortOrder(t *testing.T) {
	f := ProductFilters{SortOrder: "sideways"}
	f.Normalize(DefaultPublicPageSize)
	assert.Equal(t, "desc", f.SortOrder)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 12, 30)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(30), p.TotalProducts)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestNewPaginationEdges(t *testing.T) {
	p := NewPagination(1, 12, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)

	p = NewPagination(3, 10, 30)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}
