package query

import (
	"recyclemart-backend/internal/model"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 允许排序的字段及其在文档中的路径
var sortFields = map[string]string{
	"createdAt":   "createdAt",
	"updatedAt":   "updatedAt",
	"basePrice":   "pricing.basePrice",
	"views":       "views",
	"productName": "productName",
}

// BuildProductFilter 将筛选条件翻译为 MongoDB 查询谓词
// 每个维度是独立的谓词，维度之间用 $and 连接；$or 只出现在
// 单个维度内部（文本搜索、地域），维度之间不会相互覆盖
func BuildProductFilter(f model.ProductFilters) bson.M {
	var and []bson.M

	if f.Status != "" && f.Status != "all" {
		and = append(and, bson.M{"status": f.Status})
	}

	if f.Search != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		and = append(and, bson.M{"$or": []bson.M{
			{"productName": regex},
			{"productType": regex},
			{"features": regex},
			{"benefits": regex},
		}})
	}

	// 哨兵值 all 等同于未筛选
	if f.Category != "" && f.Category != "all" {
		and = append(and, bson.M{"category": f.Category})
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		and = append(and, bson.M{"pricing.basePrice": price})
	}

	if f.State != "" {
		and = append(and, bson.M{"$or": []bson.M{
			{"serviceableGeography.states": f.State},
			{"serviceableGeography.nationwide": true},
		}})
	}
	if f.City != "" {
		and = append(and, bson.M{"serviceableGeography.cities": f.City})
	}

	if f.SustainabilityTag != "" {
		and = append(and, bson.M{"sustainabilityTags": f.SustainabilityTag})
	}

	if f.MinMoq != nil || f.MaxMoq != nil {
		moq := bson.M{}
		if f.MinMoq != nil {
			moq["$gte"] = *f.MinMoq
		}
		if f.MaxMoq != nil {
			moq["$lte"] = *f.MaxMoq
		}
		and = append(and, bson.M{"moq.quantity": moq})
	}

	if f.SellerID != "" {
		if sellerID, err := primitive.ObjectIDFromHex(f.SellerID); err == nil {
			and = append(and, bson.M{"sellerId": sellerID})
		}
	}

	switch len(and) {
	case 0:
		return bson.M{}
	case 1:
		return and[0]
	default:
		return bson.M{"$and": and}
	}
}

// BuildFindOptions 将分页和排序参数翻译为查询选项
func BuildFindOptions(f model.ProductFilters) *options.FindOptions {
	field, ok := sortFields[f.SortBy]
	if !ok {
		field = "createdAt"
	}
	direction := -1
	if f.SortOrder == "asc" {
		direction = 1
	}

	skip := int64(f.Page-1) * int64(f.Limit)
	return options.Find().
		SetSort(bson.D{{Key: field, Value: direction}}).
		SetSkip(skip).
		SetLimit(int64(f.Limit))
}
