package mongodb

import (
	"context"
	"sort"
	"time"

	"recyclemart-backend/internal/model"
	"recyclemart-backend/internal/query"
	"recyclemart-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ProductRepository 实现了产品相关的存储操作
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository 创建一个新的 ProductRepository 实例
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

// Create 创建新产品
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		util.Logger.Error("插入产品失败", zap.Error(err))
		return err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)

	util.Logger.Info("产品创建成功",
		zap.String("product_id", product.ID.Hex()),
		zap.String("seller_id", product.SellerID.Hex()))
	return nil
}

// FindByID 通过ID查找产品，未找到时返回 nil
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var product model.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List 按筛选条件查询产品并返回总数
func (r *ProductRepository) List(ctx context.Context, filters model.ProductFilters) ([]model.Product, int64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := query.BuildProductFilter(filters)
	opts := query.BuildFindOptions(filters)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := make([]model.Product, 0, filters.Limit)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Update 整体替换产品文档
func (r *ProductRepository) Update(ctx context.Context, product *model.Product) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	product.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		util.Logger.Error("更新产品失败",
			zap.String("product_id", product.ID.Hex()),
			zap.Error(err))
	}
	return err
}

// Delete 硬删除产品
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// IncrementViews 原子递增浏览计数
func (r *ProductRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// IncrementInquiries 原子递增询盘计数
func (r *ProductRepository) IncrementInquiries(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"inquiries": 1}})
	return err
}

// CountBySeller 统计卖家名下的产品数量，status 为空时统计全部
func (r *ProductRepository) CountBySeller(ctx context.Context, sellerID primitive.ObjectID, status string) (int64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{"sellerId": sellerID}
	if status != "" {
		filter["status"] = status
	}
	return r.coll.CountDocuments(ctx, filter)
}

// FindRecentBySeller 返回卖家最近创建的若干产品
func (r *ProductRepository) FindRecentBySeller(ctx context.Context, sellerID primitive.ObjectID, limit int) ([]model.Product, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"sellerId": sellerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]model.Product, 0, limit)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FilterOptions 聚合活跃产品的分类、标签、州和价格区间
func (r *ProductRepository) FilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	active := bson.M{"status": model.StatusActive}

	categories, err := r.distinctStrings(ctx, "category", active)
	if err != nil {
		return nil, err
	}
	tags, err := r.distinctStrings(ctx, "sustainabilityTags", active)
	if err != nil {
		return nil, err
	}
	states, err := r.distinctStrings(ctx, "serviceableGeography.states", active)
	if err != nil {
		return nil, err
	}

	priceRange := model.PriceStats{MinPrice: 0, MaxPrice: 100000}
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: active}},
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"minPrice": bson.M{"$min": "$pricing.basePrice"},
			"maxPrice": bson.M{"$max": "$pricing.basePrice"},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []model.PriceStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	if len(stats) > 0 {
		priceRange = stats[0]
	}

	return &model.FilterOptions{
		Categories:         categories,
		SustainabilityTags: tags,
		States:             states,
		PriceRange:         priceRange,
	}, nil
}

// distinctStrings 返回去重、去空、排序后的字符串字段值
func (r *ProductRepository) distinctStrings(ctx context.Context, field string, filter bson.M) ([]string, error) {
	raw, err := r.coll.Distinct(ctx, field, filter)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	sort.Strings(values)
	return values, nil
}
