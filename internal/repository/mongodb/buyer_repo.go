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

// BuyerRepository 实现了买家档案相关的存储操作
type BuyerRepository struct {
	coll *mongo.Collection
}

// NewBuyerRepository 创建一个新的 BuyerRepository 实例
func NewBuyerRepository(db *mongo.Database) *BuyerRepository {
	return &BuyerRepository{coll: db.Collection(buyersCollection)}
}

// Create 创建新的买家档案
func (r *BuyerRepository) Create(ctx context.Context, profile *model.BuyerProfile) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, profile)
	if err != nil {
		util.Logger.Error("插入买家档案失败", zap.Error(err))
		return err
	}
	profile.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByUserID 通过用户ID查找买家档案，未找到时返回 nil
func (r *BuyerRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*model.BuyerProfile, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var profile model.BuyerProfile
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update 整体替换买家档案文档
func (r *BuyerRepository) Update(ctx context.Context, profile *model.BuyerProfile) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	profile.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	return err
}
