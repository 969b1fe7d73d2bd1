package service

import (
	"context"
	"fmt"
	"time"

	"recyclemart-backend/internal/cache"
	"recyclemart-backend/internal/errors"
	"recyclemart-backend/internal/model"
	"recyclemart-backend/internal/repository/interfaces"
	"recyclemart-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UploadedFile 是外部文件存储返回的引用，核心只保存路径
type UploadedFile struct {
	Name string
	URL  string
}

// CarbonFootprintInput 碳足迹载荷
type CarbonFootprintInput struct {
	Value       float64 `json:"value"`
	Unit        string  `json:"unit" validate:"omitempty,oneof=kg_co2_per_ton kg_co2_per_unit percentage_reduction"`
	Description string  `json:"description"`
}

// PricingInput 定价载荷
type PricingInput struct {
	BasePrice  float64           `json:"basePrice" validate:"required,gt=0"`
	PriceRange *model.PriceRange `json:"priceRange"`
	Unit       string            `json:"unit" validate:"required,oneof=kg ton piece meter liter cubic_meter square_meter"`
	Currency   string            `json:"currency"`
}

// MOQInput 最小起订量载荷
type MOQInput struct {
	Quantity float64 `json:"quantity" validate:"required,gte=1"`
	Unit     string  `json:"unit" validate:"required"`
}

// ProductInput 产品创建与更新共用的载荷
// 更新沿用完整校验，提供的字段在字段级覆盖现有值
type ProductInput struct {
	ProductName          string                     `json:"productName" validate:"required"`
	ProductType          string                     `json:"productType" validate:"required"`
	Category             string                     `json:"category" validate:"required,oneof=plastics metals paper electronics textiles glass chemicals construction automotive other"`
	Specifications       map[string]string          `json:"specifications"`
	Features             []string                   `json:"features"`
	Benefits             []string                   `json:"benefits"`
	CarbonFootprint      *CarbonFootprintInput      `json:"carbonFootprint"`
	SourceLocations      []model.SourceLocation     `json:"sourceLocations"`
	Pricing              PricingInput               `json:"pricing"`
	MOQ                  MOQInput                   `json:"moq"`
	ServiceableGeography model.ServiceableGeography `json:"serviceableGeography"`
	SustainabilityTags   []string                   `json:"sustainabilityTags" validate:"dive,oneof=recycled biodegradable carbon_neutral energy_efficient water_efficient renewable eco_friendly"`
	AdditionalInfo       string                     `json:"additionalInfo"`
	Status               string                     `json:"status" validate:"omitempty,oneof=draft active inactive"`
}

// ProductService 编排产品的增删改查与缓存失效
type ProductService struct {
	productRepo interfaces.ProductRepository
	sellerRepo  interfaces.SellerRepository
	cache       *cache.Cache
}

// NewProductService 创建一个新的 ProductService 实例
func NewProductService(productRepo interfaces.ProductRepository, sellerRepo interfaces.SellerRepository, c *cache.Cache) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		sellerRepo:  sellerRepo,
		cache:       c,
	}
}

// CreateProduct 校验载荷、持久化产品并使列表缓存失效
// 上传文件映射为图片和附件引用，第一张图片标记为主图
func (s *ProductService) CreateProduct(ctx context.Context, userID string, input ProductInput, images, documents []UploadedFile) (*model.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	seller, err := s.findSellerByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		SellerID: seller.ID,
		Status:   model.StatusActive,
	}
	applyProductInput(product, input)

	for i, img := range images {
		product.Images = append(product.Images, model.ProductImage{
			URL:       img.URL,
			Alt:       fmt.Sprintf("%s image %d", product.ProductName, i+1),
			IsPrimary: i == 0,
		})
	}
	now := time.Now()
	for _, doc := range documents {
		product.Documents = append(product.Documents, model.ProductDocument{
			Type:       "specification_sheet",
			Name:       doc.Name,
			URL:        doc.URL,
			UploadedAt: now,
		})
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建产品失败", err)
	}

	// 任何列表查询都可能包含新产品，整体作废
	s.cache.BumpListingGeneration(ctx)

	return product, nil
}

// ListProducts 公共列表端点的读穿缓存，只返回活跃产品
// 卖家筛选先核实卖家档案存在，不存在时忽略该条件
func (s *ProductService) ListProducts(ctx context.Context, filters model.ProductFilters) (*model.ProductList, bool, error) {
	filters.Status = model.StatusActive

	if filters.SellerID != "" {
		id, err := primitive.ObjectIDFromHex(filters.SellerID)
		if err != nil {
			filters.SellerID = ""
		} else {
			seller, err := s.sellerRepo.FindByID(ctx, id)
			if err != nil {
				return nil, false, errors.Wrap(errors.ErrDatabase, "查询卖家档案失败", err)
			}
			if seller == nil {
				filters.SellerID = ""
			}
		}
	}

	filters.Normalize(model.DefaultPublicPageSize)

	gen, cacheOK := s.cache.ListingGeneration(ctx)
	key := cache.ListingKey(gen, filters)
	if cacheOK {
		var list model.ProductList
		if s.cache.Get(ctx, key, &list) {
			return &list, true, nil
		}
	}

	products, total, err := s.productRepo.List(ctx, filters)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "查询产品列表失败", err)
	}

	list := &model.ProductList{
		Products:   products,
		Pagination: model.NewPagination(filters.Page, filters.Limit, total),
	}
	if cacheOK {
		s.cache.Set(ctx, key, list, cache.ListingTTL)
	}
	return list, false, nil
}

// GetProduct 详情端点的读穿缓存
// 无论命中与否浏览计数都会递增；缓存保存的是递增前的快照
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*model.Product, bool, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, false, errors.New(errors.ErrProductNotFound, "Product not found")
	}

	key := cache.ProductKey(productID)
	var cached model.Product
	if s.cache.Get(ctx, key, &cached) {
		if err := s.productRepo.IncrementViews(ctx, id); err != nil {
			util.Logger.Warn("递增浏览计数失败", zap.String("product_id", productID), zap.Error(err))
		}
		return &cached, true, nil
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "查询产品失败", err)
	}
	if product == nil {
		return nil, false, errors.New(errors.ErrProductNotFound, "Product not found")
	}

	if err := s.productRepo.IncrementViews(ctx, id); err != nil {
		util.Logger.Warn("递增浏览计数失败", zap.String("product_id", productID), zap.Error(err))
	}

	s.cache.Set(ctx, key, product, cache.ProductDetailTTL)
	return product, false, nil
}

// UpdateProduct 所有权校验后在字段级合并载荷并使缓存失效
// 非所有者得到与不存在相同的错误，避免泄露产品是否存在
func (s *ProductService) UpdateProduct(ctx context.Context, userID, productID string, input ProductInput) (*model.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	product, err := s.findOwnedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	applyProductInput(product, input)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新产品失败", err)
	}

	s.cache.Delete(ctx, cache.ProductKey(productID))
	s.cache.BumpListingGeneration(ctx)

	return product, nil
}

// DeleteProduct 所有权校验后硬删除产品并使缓存失效
func (s *ProductService) DeleteProduct(ctx context.Context, userID, productID string) error {
	product, err := s.findOwnedProduct(ctx, userID, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除产品失败", err)
	}

	s.cache.Delete(ctx, cache.ProductKey(productID))
	s.cache.BumpListingGeneration(ctx)

	util.Logger.Info("产品删除成功",
		zap.String("product_id", productID),
		zap.String("user_id", userID))
	return nil
}

// ListSellerProducts 卖家自己的产品列表，不限状态也不走缓存
func (s *ProductService) ListSellerProducts(ctx context.Context, userID string, filters model.ProductFilters) (*model.ProductList, error) {
	seller, err := s.findSellerByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	filters.SellerID = seller.ID.Hex()
	filters.Normalize(model.DefaultSellerPageSize)

	products, total, err := s.productRepo.List(ctx, filters)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询产品列表失败", err)
	}

	return &model.ProductList{
		Products:   products,
		Pagination: model.NewPagination(filters.Page, filters.Limit, total),
	}, nil
}

// FilterOptions 聚合公共筛选项，缓存一小时
func (s *ProductService) FilterOptions(ctx context.Context) (*model.FilterOptions, bool, error) {
	var cached model.FilterOptions
	if s.cache.Get(ctx, cache.FilterOptionsKey, &cached) {
		return &cached, true, nil
	}

	opts, err := s.productRepo.FilterOptions(ctx)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "聚合筛选项失败", err)
	}

	s.cache.Set(ctx, cache.FilterOptionsKey, opts, cache.FilterOptionsTTL)
	return opts, false, nil
}

// RecordInquiry 原子递增询盘计数
func (s *ProductService) RecordInquiry(ctx context.Context, productID string) error {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return errors.New(errors.ErrProductNotFound, "Product not found")
	}
	if err := s.productRepo.IncrementInquiries(ctx, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "递增询盘计数失败", err)
	}
	return nil
}

// findSellerByUser 解析调用方的卖家档案
func (s *ProductService) findSellerByUser(ctx context.Context, userID string) (*model.SellerProfile, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errors.New(errors.ErrSellerProfileNotFound, "Seller profile not found. Please complete your profile first.")
	}
	seller, err := s.sellerRepo.FindByUserID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询卖家档案失败", err)
	}
	if seller == nil {
		return nil, errors.New(errors.ErrSellerProfileNotFound, "Seller profile not found. Please complete your profile first.")
	}
	return seller, nil
}

// findOwnedProduct 查找产品并校验 product.sellerId 等于调用方的卖家档案
func (s *ProductService) findOwnedProduct(ctx context.Context, userID, productID string) (*model.Product, error) {
	seller, err := s.findSellerByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, errors.New(errors.ErrProductNotFound, "Product not found or access denied")
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询产品失败", err)
	}
	if product == nil || product.SellerID != seller.ID {
		return nil, errors.New(errors.ErrProductNotFound, "Product not found or access denied")
	}
	return product, nil
}

// applyProductInput 把载荷字段覆盖到产品文档上
// 计数器、图片、附件和归属关系不受载荷影响
func applyProductInput(product *model.Product, input ProductInput) {
	product.ProductName = input.ProductName
	product.ProductType = input.ProductType
	product.Category = input.Category
	if input.Specifications != nil {
		product.Specifications = input.Specifications
	}
	if input.Features != nil {
		product.Features = input.Features
	}
	if input.Benefits != nil {
		product.Benefits = input.Benefits
	}
	if input.CarbonFootprint != nil {
		product.CarbonFootprint = &model.CarbonFootprint{
			Value:       input.CarbonFootprint.Value,
			Unit:        input.CarbonFootprint.Unit,
			Description: input.CarbonFootprint.Description,
		}
	}
	if input.SourceLocations != nil {
		product.SourceLocations = input.SourceLocations
	}

	currency := input.Pricing.Currency
	if currency == "" {
		currency = "INR"
	}
	product.Pricing = model.Pricing{
		BasePrice:  input.Pricing.BasePrice,
		PriceRange: input.Pricing.PriceRange,
		Unit:       input.Pricing.Unit,
		Currency:   currency,
	}
	product.MOQ = model.MOQ{
		Quantity: input.MOQ.Quantity,
		Unit:     input.MOQ.Unit,
	}
	product.ServiceableGeography = input.ServiceableGeography
	if input.SustainabilityTags != nil {
		product.SustainabilityTags = input.SustainabilityTags
	}
	product.AdditionalInfo = input.AdditionalInfo
	if input.Status != "" {
		product.Status = input.Status
	}
}
