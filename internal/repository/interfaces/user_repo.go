package interfaces

import (
	"context"

	"recyclemart-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetProfileCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error
}
