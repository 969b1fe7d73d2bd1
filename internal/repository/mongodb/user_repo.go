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

// UserRepository 实现了用户相关的存储操作
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository 创建一个新的 UserRepository 实例
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// Create 创建新用户
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		util.Logger.Error("插入用户失败", zap.Error(err))
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID 通过ID查找用户，未找到时返回 nil
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail 通过邮箱查找用户，未找到时返回 nil
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetProfileCompleted 更新档案完成标记
func (r *UserRepository) SetProfileCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"profileCompleted": completed,
		"updatedAt":        time.Now(),
	}})
	return err
}

// UpdateLastLogin 记录最近登录时间
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"lastLogin": time.Now(),
	}})
	return err
}
