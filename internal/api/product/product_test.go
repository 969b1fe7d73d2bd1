package product

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListContext(t *testing.T, rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/products?"+rawQuery, nil)
	return c
}

// 列表端点的全部查询参数都要进入筛选条件
func TestParseFiltersReadsAllParams(t *testing.T) {
	c := newListContext(t, "search=steel&category=metals&state=Maharashtra&city=Mumbai"+
		"&sustainabilityTag=recycled&seller=665f1c2e8b3d4a5e6f7a8b9c&status=active"+
		"&minPrice=100&maxPrice=500&minMoq=10&maxMoq=50"+
		"&page=2&limit=20&sortBy=basePrice&sortOrder=asc")

	filters := parseFilters(c)

	assert.Equal(t, "steel", filters.Search)
	assert.Equal(t, "metals", filters.Category)
	assert.Equal(t, "Maharashtra", filters.State)
	assert.Equal(t, "Mumbai", filters.City)
	assert.Equal(t, "recycled", filters.SustainabilityTag)
	assert.Equal(t, "665f1c2e8b3d4a5e6f7a8b9c", filters.SellerID)
	assert.Equal(t, "active", filters.Status)
	require.NotNil(t, filters.MinPrice)
	assert.Equal(t, 100.0, *filters.MinPrice)
	require.NotNil(t, filters.MaxPrice)
	assert.Equal(t, 500.0, *filters.MaxPrice)
	require.NotNil(t, filters.MinMoq)
	assert.Equal(t, 10.0, *filters.MinMoq)
	require.NotNil(t, filters.MaxMoq)
	assert.Equal(t, 50.0, *filters.MaxMoq)
	assert.Equal(t, 2, filters.Page)
	assert.Equal(t, 20, filters.Limit)
	assert.Equal(t, "basePrice", filters.SortBy)
	assert.Equal(t, "asc", filters.SortOrder)
}

func TestParseFiltersOmittedParams(t *testing.T) {
	c := newListContext(t, "category=metals")

	filters := parseFilters(c)

	assert.Equal(t, "metals", filters.Category)
	assert.Empty(t, filters.SellerID)
	// 未提供的数值条件保持为 nil，不会变成零值边界
	assert.Nil(t, filters.MinPrice)
	assert.Nil(t, filters.MaxPrice)
	assert.Nil(t, filters.MinMoq)
	assert.Nil(t, filters.MaxMoq)
	assert.Zero(t, filters.Page)
	assert.Zero(t, filters.Limit)
}

func TestParseFiltersIgnoresBadNumbers(t *testing.T) {
	c := newListContext(t, "minPrice=abc&page=x")

	filters := parseFilters(c)

	assert.Nil(t, filters.MinPrice)
	assert.Zero(t, filters.Page)
}
