package service

import (
	"context"
	"testing"

	"recyclemart-backend/internal/errors"
	"recyclemart-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validProductInput() ProductInput {
	return ProductInput{
		ProductName: "Recycled Steel Bars",
		ProductType: "Raw Material",
		Category:    "metals",
		Pricing:     PricingInput{BasePrice: 450, Unit: "kg"},
		MOQ:         MOQInput{Quantity: 100, Unit: "kg"},
	}
}

func newProductService(t *testing.T) (*ProductService, *mockProductRepo, *mockSellerRepo) {
	productRepo := new(mockProductRepo)
	sellerRepo := new(mockSellerRepo)
	svc := NewProductService(productRepo, sellerRepo, newTestCache(t))
	return svc, productRepo, sellerRepo
}

func TestCreateProductRequiresSellerProfile(t *testing.T) {
	svc, _, sellerRepo := newProductService(t)
	userID := primitive.NewObjectID()

	sellerRepo.On("FindByUserID", mock.Anything, userID).Return(nil, nil)

	_, err := svc.CreateProduct(context.Background(), userID.Hex(), validProductInput(), nil, nil)
	assert.True(t, errors.Is(err, errors.ErrSellerProfileNotFound))
}

func TestCreateProductMapsFiles(t *testing.T) {
	svc, productRepo, sellerRepo := newProductService(t)
	userID := primitive.NewObjectID()
	seller := &model.SellerProfile{ID: primitive.NewObjectID(), UserID: userID}

	sellerRepo.On("FindByUserID", mock.Anything, userID).Return(seller, nil)
	productRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

	images := []UploadedFile{
		{Name: "front.jpg", URL: "/uploads/products/images/front.jpg"},
		{Name: "back.jpg", URL: "/uploads/products/images/back.jpg"},
	}
	documents := []UploadedFile{{Name: "spec.pdf", URL: "/uploads/products/documents/spec.pdf"}}

	product, err := svc.CreateProduct(context.Background(), userID.Hex(), validProductInput(), images, documents)
	require.NoError(t, err)

	assert.Equal(t, seller.ID, product.SellerID)
	assert.Equal(t, model.StatusActive, product.Status)
	require.Len(t, product.Images, 2)
	// 第一张图片为主图
	assert.True(t, product.Images[0].IsPrimary)
	assert.False(t, product.Images[1].IsPrimary)
	require.Len(t, product.Documents, 1)
	assert.Equal(t, "specification_sheet", product.Documents[0].Type)
	assert.Equal(t, "INR", product.Pricing.Currency)
}

// 相同筛选参数的第二次查询命中缓存，存储只访问一次
func TestListProductsSecondCallCached(t *testing.T) {
	svc, productRepo, _ := newProductService(t)
	ctx := context.Background()

	products := []model.Product{{ProductName: "Recycled Steel Bars"}}
	productRepo.On("List", mock.Anything, mock.AnythingOfType("model.ProductFilters")).
		Return(products, int64(1), nil).Once()

	first, cached, err := svc.ListProducts(ctx, model.ProductFilters{Category: "metals"})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 1, first.Pagination.CurrentPage)

	second, cached, err := svc.ListProducts(ctx, model.ProductFilters{Category: "metals"})
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first.Products, second.Products)
	productRepo.AssertExpectations(t)
}

// 产品写入后代数递增，下一次列表查询绕过旧缓存看到新价格
func TestListProductsSeesPriceUpdate(t *testing.T) {
	svc, productRepo, sellerRepo := newProductService(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	seller := &model.SellerProfile{ID: primitive.NewObjectID(), UserID: userID}
	product := &model.Product{
		ID:       primitive.NewObjectID(),
		SellerID: seller.ID,
		Status:   model.StatusActive,
		Pricing:  model.Pricing{BasePrice: 450, Unit: "kg", Currency: "INR"},
	}

	productRepo.On("List", mock.Anything, mock.AnythingOfType("model.ProductFilters")).
		Return([]model.Product{*product}, int64(1), nil).Once()

	_, cached, err := svc.ListProducts(ctx, model.ProductFilters{})
	require.NoError(t, err)
	assert.False(t, cached)

	sellerRepo.On("FindByUserID", mock.Anything, userID).Return(seller, nil)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

	input := validProductInput()
	input.Pricing.BasePrice = 500
	_, err = svc.UpdateProduct(ctx, userID.Hex(), product.ID.Hex(), input)
	require.NoError(t, err)

	updated := *product
	updated.Pricing.BasePrice = 500
	productRepo.On("List", mock.Anything, mock.AnythingOfType("model.ProductFilters")).
		Return([]model.Product{updated}, int64(1), nil).Once()

	list, cached, err := svc.ListProducts(ctx, model.ProductFilters{})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 500.0, list.Products[0].Pricing.BasePrice)
	productRepo.AssertExpectations(t)
}

// 卖家筛选在核实档案存在后传入查询
func TestListProductsSellerFilter(t *testing.T) {
	svc, productRepo, sellerRepo := newProductService(t)
	sellerID := primitive.NewObjectID()

	sellerRepo.On("FindByID", mock.Anything, sellerID).
		Return(&model.SellerProfile{ID: sellerID}, nil)
	productRepo.On("List", mock.Anything, mock.MatchedBy(func(f model.ProductFilters) bool {
		return f.SellerID == sellerID.Hex() && f.Status == model.StatusActive
	})).Return([]model.Product{}, int64(0), nil)

	_, _, err := svc.ListProducts(context.Background(), model.ProductFilters{SellerID: sellerID.Hex()})
	require.NoError(t, err)
	productRepo.AssertExpectations(t)
	sellerRepo.AssertExpectations(t)
}

// 卖家不存在或ID非法时忽略该条件，与其余条件继续查询
func TestListProductsUnknownSellerIgnored(t *testing.T) {
	svc, productRepo, sellerRepo := newProductService(t)
	sellerID := primitive.NewObjectID()

	sellerRepo.On("FindByID", mock.Anything, sellerID).Return(nil, nil)
	productRepo.On("List", mock.Anything, mock.MatchedBy(func(f model.ProductFilters) bool {
		return f.SellerID == "" && f.Category == "metals"
	})).Return([]model.Product{}, int64(0), nil).Once()

	_, cached, err := svc.ListProducts(context.Background(), model.ProductFilters{
		SellerID: sellerID.Hex(),
		Category: "metals",
	})
	require.NoError(t, err)
	assert.False(t, cached)

	// 非法ID同样被清掉，落在与上一次相同的缓存键上
	_, cached, err = svc.ListProducts(context.Background(), model.ProductFilters{
		SellerID: "not-an-id",
		Category: "metals",
	})
	require.NoError(t, err)
	assert.True(t, cached)
	productRepo.AssertExpectations(t)
}

// 浏览计数在缓存命中时也会递增
func TestGetProductIncrementsViewsOnCacheHit(t *testing.T) {
	svc, productRepo, _ := newProductService(t)
	ctx := context.Background()
	id := primitive.NewObjectID()
	product := &model.Product{ID: id, ProductName: "Recycled Steel Bars", Views: 7}

	productRepo.On("FindByID", mock.Anything, id).Return(product, nil).Once()
	productRepo.On("IncrementViews", mock.Anything, id).Return(nil).Twice()

	_, cached, err := svc.GetProduct(ctx, id.Hex())
	require.NoError(t, err)
	assert.False(t, cached)

	got, cached, err := svc.GetProduct(ctx, id.Hex())
	require.NoError(t, err)
	assert.True(t, cached)
	// 缓存保存的是递增前的快照
	assert.Equal(t, int64(7), got.Views)
	productRepo.AssertExpectations(t)
}

func TestGetProductNotFound(t *testing.T) {
	svc, productRepo, _ := newProductService(t)
	id := primitive.NewObjectID()

	productRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, _, err := svc.GetProduct(context.Background(), id.Hex())
	assert.True(t, errors.Is(err, errors.ErrProductNotFound))

	_, _, err = svc.GetProduct(context.Background(), "not-an-id")
	assert.True(t, errors.Is(err, errors.ErrProductNotFound))
}

// 非所有者的更新与删除得到与不存在相同的错误
func TestUpdateProductOwnership(t *testing.T) {
	svc, productRepo, sellerRepo := newProductService(t)
	userID := primitive.NewObjectID()
	caller := &model.SellerProfile{ID: primitive.NewObjectID(), UserID: userID}
	other := &model.Product{ID: primitive.NewObjectID(), SellerID: primitive.NewObjectID()}

	sellerRepo.On("FindByUserID", mock.Anything, userID).Return(caller, nil)
	productRepo.On("FindByID", mock.Anything, other.ID).Return(other, nil)

	_, err := svc.UpdateProduct(context.Background(), userID.Hex(), other.ID.Hex(), validProductInput())
	assert.True(t, errors.Is(err, errors.ErrProductNotFound))
	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	err = svc.DeleteProduct(context.Background(), userID.Hex(), other.ID.Hex())
	assert.True(t, errors.Is(err, errors.ErrProductNotFound))
	productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// 删除后详情缓存失效，下一次读取看到产品已不存在
func TestDeleteProductInvalidatesDetail(t *testing.T) {
	svc, productRepo, sellerRepo := newProductService(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	seller := &model.SellerProfile{ID: primitive.NewObjectID(), UserID: userID}
	product := &model.Product{ID: primitive.NewObjectID(), SellerID: seller.ID}

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil).Twice()
	productRepo.On("IncrementViews", mock.Anything, product.ID).Return(nil).Once()

	_, _, err := svc.GetProduct(ctx, product.ID.Hex())
	require.NoError(t, err)

	sellerRepo.On("FindByUserID", mock.Anything, userID).Return(seller, nil)
	productRepo.On("Delete", mock.Anything, product.ID).Return(nil)
	require.NoError(t, svc.DeleteProduct(ctx, userID.Hex(), product.ID.Hex()))

	productRepo.On("FindByID", mock.Anything, product.ID).Return(nil, nil).Once()
	_, _, err = svc.GetProduct(ctx, product.ID.Hex())
	assert.True(t, errors.Is(err, errors.ErrProductNotFound))
}

func TestListSellerProductsScopedToCaller(t *testing.T) {
	svc, productRepo, sellerRepo := newProductService(t)
	userID := primitive.NewObjectID()
	seller := &model.SellerProfile{ID: primitive.NewObjectID(), UserID: userID}

	sellerRepo.On("FindByUserID", mock.Anything, userID).Return(seller, nil)
	productRepo.On("List", mock.Anything, mock.MatchedBy(func(f model.ProductFilters) bool {
		return f.SellerID == seller.ID.Hex() && f.Limit == model.DefaultSellerPageSize
	})).Return([]model.Product{}, int64(0), nil)

	list, err := svc.ListSellerProducts(context.Background(), userID.Hex(), model.ProductFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), list.Pagination.TotalProducts)
	productRepo.AssertExpectations(t)
}

func TestFilterOptionsCached(t *testing.T) {
	svc, productRepo, _ := newProductService(t)
	opts := &model.FilterOptions{
		Categories: []string{"metals", "plastics"},
		PriceRange: model.PriceStats{MinPrice: 10, MaxPrice: 900},
	}

	productRepo.On("FilterOptions", mock.Anything).Return(opts, nil).Once()

	first, cached, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)
	productRepo.AssertExpectations(t)
}

func TestRecordInquiry(t *testing.T) {
	svc, productRepo, _ := newProductService(t)
	id := primitive.NewObjectID()

	productRepo.On("IncrementInquiries", mock.Anything, id).Return(nil)

	require.NoError(t, svc.RecordInquiry(context.Background(), id.Hex()))
	assert.True(t, errors.Is(svc.RecordInquiry(context.Background(), "bad"), errors.ErrProductNotFound))
}

func TestCreateProductValidation(t *testing.T) {
	svc, _, _ := newProductService(t)
	input := validProductInput()
	input.Category = "food"

	_, err := svc.CreateProduct(context.Background(), primitive.NewObjectID().Hex(), input, nil, nil)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}
