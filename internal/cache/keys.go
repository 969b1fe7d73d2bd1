package cache

import (
	"strconv"
	"strings"

	"recyclemart-backend/internal/model"
)

// 键段之间的分隔符
const keySeparator = "::"

// 列表缓存代数计数器所在的键
const generationKey = "products:generation"

// FilterOptionsKey 公共筛选项的缓存键
const FilterOptionsKey = "filter_options"

// ProductKey 产品详情的缓存键
func ProductKey(id string) string {
	return "product:" + id
}

// UserKey 身份摘要的缓存键
func UserKey(userID string) string {
	return "user:" + userID
}

// SellerProfileKey 卖家档案的缓存键，按用户ID划分
func SellerProfileKey(userID string) string {
	return "seller_profile:" + userID
}

// ListingKey 根据代数和完整的筛选参数集生成确定性的列表缓存键
// 字段按固定顺序序列化，相同参数永远得到相同的键
func ListingKey(generation int64, f model.ProductFilters) string {
	parts := []string{
		"products",
		"g" + strconv.FormatInt(generation, 10),
		f.Search,
		f.Category,
		formatBound(f.MinPrice),
		formatBound(f.MaxPrice),
		f.State,
		f.City,
		f.SustainabilityTag,
		formatBound(f.MinMoq),
		formatBound(f.MaxMoq),
		f.SellerID,
		f.Status,
		strconv.Itoa(f.Page),
		strconv.Itoa(f.Limit),
		f.SortBy,
		f.SortOrder,
	}
	return strings.Join(parts, keySeparator)
}

func formatBound(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
