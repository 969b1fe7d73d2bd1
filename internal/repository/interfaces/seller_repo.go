package interfaces

import (
	"context"

	"recyclemart-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SellerRepository interface {
	Create(ctx context.Context, profile *model.SellerProfile) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.SellerProfile, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*model.SellerProfile, error)
	Update(ctx context.Context, profile *model.SellerProfile) error
}
