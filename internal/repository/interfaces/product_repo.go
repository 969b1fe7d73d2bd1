package interfaces

import (
	"context"

	"recyclemart-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	List(ctx context.Context, filters model.ProductFilters) ([]model.Product, int64, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	IncrementInquiries(ctx context.Context, id primitive.ObjectID) error
	CountBySeller(ctx context.Context, sellerID primitive.ObjectID, status string) (int64, error)
	FindRecentBySeller(ctx context.Context, sellerID primitive.ObjectID, limit int) ([]model.Product, error)
	FilterOptions(ctx context.Context) (*model.FilterOptions, error)
}
