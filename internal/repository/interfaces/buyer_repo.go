package interfaces

import (
	"context"

	"recyclemart-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BuyerRepository interface {
	Create(ctx context.Context, profile *model.BuyerProfile) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*model.BuyerProfile, error)
	Update(ctx context.Context, profile *model.BuyerProfile) error
}
