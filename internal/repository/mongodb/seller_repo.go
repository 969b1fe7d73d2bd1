package mongodb

import (
	"context"
	"time"

	"recyclemart-backend/internal/model"
	"recyclemart-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SellerRepository 实现了卖家档案相关的存储操作
type SellerRepository struct {
	coll *mongo.Collection
}

// NewSellerRepository 创建一个新的 SellerRepository 实例
func NewSellerRepository(db *mongo.Database) *SellerRepository {
	return &SellerRepository{coll: db.Collection(sellersCollection)}
}

// Create 创建新的卖家档案
func (r *SellerRepository) Create(ctx context.Context, profile *model.SellerProfile) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, profile)
	if err != nil {
		util.Logger.Error("插入卖家档案失败", zap.Error(err))
		return err
	}
	profile.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID 通过ID查找卖家档案，未找到时返回 nil
func (r *SellerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.SellerProfile, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var profile model.SellerProfile
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUserID 通过用户ID查找卖家档案，未找到时返回 nil
func (r *SellerRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*model.SellerProfile, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var profile model.SellerProfile
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update 整体替换卖家档案文档
func (r *SellerRepository) Update(ctx context.Context, profile *model.SellerProfile) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	profile.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		util.Logger.Error("更新卖家档案失败",
			zap.String("seller_id", profile.ID.Hex()),
			zap.Error(err))
	}
	return err
}
