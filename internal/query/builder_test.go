package query

import (
	"testing"

	"recyclemart-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func f64(v float64) *float64 { return &v }

func TestBuildProductFilterEmpty(t *testing.T) {
	filter := BuildProductFilter(model.ProductFilters{})
	assert.Equal(t, bson.M{}, filter)
}

func TestBuildProductFilterStatusSentinel(t *testing.T) {
	filter := BuildProductFilter(model.ProductFilters{Status: "all"})
	assert.Equal(t, bson.M{}, filter)

	filter = BuildProductFilter(model.ProductFilters{Status: "active"})
	assert.Equal(t, bson.M{"status": "active"}, filter)
}

func TestBuildProductFilterCategorySentinel(t *testing.T) {
	filter := BuildProductFilter(model.ProductFilters{Category: "all"})
	assert.Equal(t, bson.M{}, filter)
}

func TestBuildProductFilterSinglePredicateUnwrapped(t *testing.T) {
	filter := BuildProductFilter(model.ProductFilters{Category: "metals"})
	assert.Equal(t, bson.M{"category": "metals"}, filter)
}

// 各维度是独立谓词，用 $and 连接，后加入的维度不会覆盖先前的
func TestBuildProductFilterDimensionsConjoined(t *testing.T) {
	filter := BuildProductFilter(model.ProductFilters{
		Status:   "active",
		Search:   "steel",
		Category: "metals",
		State:    "Maharashtra",
	})

	and, ok := filter["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 4)

	assert.Equal(t, bson.M{"status": "active"}, and[0])

	// 文本搜索的 $or 只覆盖自己的字段
	searchOr, ok := and[1]["$or"].([]bson.M)
	require.True(t, ok)
	assert.Len(t, searchOr, 4)

	assert.Equal(t, bson.M{"category": "metals"}, and[2])

	// 地域的 $or 与搜索的 $or 各自独立
	stateOr, ok := and[3]["$or"].([]bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.M{"serviceableGeography.states": "Maharashtra"}, stateOr[0])
	assert.Equal(t, bson.M{"serviceableGeography.nationwide": true}, stateOr[1])
}

func TestBuildProductFilterPriceRange(t *testing.T) {
	filter := BuildProductFilter(model.ProductFilters{MinPrice: f64(100), MaxPrice: f64(500)})
	assert.Equal(t, bson.M{"pricing.basePrice": bson.M{"$gte": 100.0, "$lte": 500.0}}, filter)

	filter = BuildProductFilter(model.ProductFilters{MinMoq: f64(10)})
	assert.Equal(t, bson.M{"moq.quantity": bson.M{"$gte": 10.0}}, filter)
}

func TestBuildProductFilterSearchEscaped(t *testing.T) {
	filter := BuildProductFilter(model.ProductFilters{Search: "a.b*"})
	or := filter["$or"].([]bson.M)
	regex := or[0]["productName"].(primitive.Regex)
	assert.Equal(t, `a\.b\*`, regex.Pattern)
	assert.Equal(t, "i", regex.Options)
}

func TestBuildProductFilterSellerID(t *testing.T) {
	id := primitive.NewObjectID()
	filter := BuildProductFilter(model.ProductFilters{SellerID: id.Hex()})
	assert.Equal(t, bson.M{"sellerId": id}, filter)

	// 非法的ID直接忽略该维度
	filter = BuildProductFilter(model.ProductFilters{SellerID: "not-an-id"})
	assert.Equal(t, bson.M{}, filter)
}

func TestBuildFindOptionsDefaults(t *testing.T) {
	filters := model.ProductFilters{Page: 1, Limit: 12}
	filters.Normalize(model.DefaultPublicPageSize)

	opts := BuildFindOptions(filters)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
	assert.Equal(t, int64(0), *opts.Skip)
	assert.Equal(t, int64(12), *opts.Limit)
}

func TestBuildFindOptionsSortWhitelist(t *testing.T) {
	opts := BuildFindOptions(model.ProductFilters{Page: 2, Limit: 10, SortBy: "basePrice", SortOrder: "asc"})
	assert.Equal(t, bson.D{{Key: "pricing.basePrice", Value: 1}}, opts.Sort)
	assert.Equal(t, int64(10), *opts.Skip)

	// 白名单之外的字段退回默认排序
	opts = BuildFindOptions(model.ProductFilters{Page: 1, Limit: 10, SortBy: "password"})
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
}
