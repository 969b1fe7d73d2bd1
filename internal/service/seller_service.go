package service

import (
	"context"
	"time"

	"recyclemart-backend/internal/cache"
	"recyclemart-backend/internal/errors"
	"recyclemart-backend/internal/model"
	"recyclemart-backend/internal/repository/interfaces"
	"recyclemart-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SellerAddressInput 卖家地址载荷
type SellerAddressInput struct {
	Street  string `json:"street"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required,pincode"`
}

// ContactDetailsInput 联系方式载荷
type ContactDetailsInput struct {
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	AlternatePhone string `json:"alternatePhone"`
}

// ContactPersonInput 官方联系人载荷
type ContactPersonInput struct {
	Name        string `json:"name" validate:"required"`
	Designation string `json:"designation"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
}

// BusinessDetailsInput 工商信息载荷
type BusinessDetailsInput struct {
	GSTIN     string `json:"gstin" validate:"required,gstin"`
	PAN       string `json:"pan" validate:"required,pan"`
	CINNumber string `json:"cinNumber"`
}

// SellerProfileInput 卖家档案载荷
type SellerProfileInput struct {
	CompanyName           string               `json:"companyName" validate:"required"`
	BrandName             string               `json:"brandName"`
	Address               SellerAddressInput   `json:"address"`
	ContactDetails        ContactDetailsInput  `json:"contactDetails"`
	OfficialContactPerson ContactPersonInput   `json:"officialContactPerson"`
	BusinessDetails       BusinessDetailsInput `json:"businessDetails"`
}

// SellerService 处理卖家档案与仪表盘相关的业务逻辑
type SellerService struct {
	sellerRepo  interfaces.SellerRepository
	userRepo    interfaces.UserRepository
	productRepo interfaces.ProductRepository
	cache       *cache.Cache
}

// NewSellerService 创建一个新的 SellerService 实例
func NewSellerService(sellerRepo interfaces.SellerRepository, userRepo interfaces.UserRepository, productRepo interfaces.ProductRepository, c *cache.Cache) *SellerService {
	return &SellerService{
		sellerRepo:  sellerRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		cache:       c,
	}
}

// UpsertProfile 创建或合并卖家档案
// 标量字段整体覆盖，文件与证书列表只追加不替换
func (s *SellerService) UpsertProfile(ctx context.Context, userID string, input SellerProfileInput, documents, certifications []UploadedFile) (*model.SellerProfile, bool, error) {
	if err := validateInput(input); err != nil {
		return nil, false, err
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false, errors.New(errors.ErrUserNotFound, "User not found")
	}

	now := time.Now()
	newDocuments := make([]model.SellerDocument, 0, len(documents))
	for _, doc := range documents {
		newDocuments = append(newDocuments, model.SellerDocument{
			Type:               "company_registration",
			FileName:           doc.Name,
			FileURL:            doc.URL,
			UploadedAt:         now,
			VerificationStatus: model.VerificationPending,
		})
	}
	newCertifications := make([]model.SellerCertification, 0, len(certifications))
	for _, cert := range certifications {
		newCertifications = append(newCertifications, model.SellerCertification{
			Name:               util.TrimExtension(cert.Name),
			CertificateURL:     cert.URL,
			UploadedAt:         now,
			VerificationStatus: model.VerificationPending,
		})
	}

	existing, err := s.sellerRepo.FindByUserID(ctx, id)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "查询卖家档案失败", err)
	}

	var profile *model.SellerProfile
	created := false
	if existing != nil {
		applySellerInput(existing, input)
		existing.Documents = append(existing.Documents, newDocuments...)
		existing.Certifications = append(existing.Certifications, newCertifications...)
		if err := s.sellerRepo.Update(ctx, existing); err != nil {
			return nil, false, errors.Wrap(errors.ErrDatabase, "更新卖家档案失败", err)
		}
		profile = existing
	} else {
		profile = &model.SellerProfile{
			UserID:             id,
			Documents:          newDocuments,
			Certifications:     newCertifications,
			VerificationStatus: model.VerificationPending,
			Badges:             []string{},
		}
		applySellerInput(profile, input)
		if err := s.sellerRepo.Create(ctx, profile); err != nil {
			return nil, false, errors.Wrap(errors.ErrDatabase, "创建卖家档案失败", err)
		}
		created = true
	}

	if err := s.userRepo.SetProfileCompleted(ctx, id, true); err != nil {
		util.Logger.Warn("标记档案完成失败", zap.Error(err))
	}

	// 身份摘要和档案缓存都已过期
	s.cache.Delete(ctx, cache.UserKey(userID), cache.SellerProfileKey(userID))

	util.Logger.Info("卖家档案已保存",
		zap.String("user_id", userID),
		zap.Bool("created", created),
		zap.Int("new_documents", len(newDocuments)),
		zap.Int("new_certifications", len(newCertifications)))
	return profile, created, nil
}

// GetProfile 返回卖家档案，优先读取缓存
func (s *SellerService) GetProfile(ctx context.Context, userID string) (*model.SellerProfile, bool, error) {
	var cached model.SellerProfile
	if s.cache.Get(ctx, cache.SellerProfileKey(userID), &cached) {
		return &cached, true, nil
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false, errors.New(errors.ErrSellerProfileNotFound, "Seller profile not found")
	}
	profile, err := s.sellerRepo.FindByUserID(ctx, id)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "查询卖家档案失败", err)
	}
	if profile == nil {
		return nil, false, errors.New(errors.ErrSellerProfileNotFound, "Seller profile not found")
	}

	s.cache.Set(ctx, cache.SellerProfileKey(userID), profile, cache.SellerProfileTTL)
	return profile, false, nil
}

// Dashboard 聚合卖家仪表盘数据，始终实时计算不走缓存
func (s *SellerService) Dashboard(ctx context.Context, userID string) (*model.SellerDashboard, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errors.New(errors.ErrSellerProfileNotFound, "Seller profile not found")
	}
	seller, err := s.sellerRepo.FindByUserID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询卖家档案失败", err)
	}
	if seller == nil {
		return nil, errors.New(errors.ErrSellerProfileNotFound, "Seller profile not found")
	}

	total, err := s.productRepo.CountBySeller(ctx, seller.ID, "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计产品失败", err)
	}
	active, err := s.productRepo.CountBySeller(ctx, seller.ID, model.StatusActive)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计产品失败", err)
	}
	draft, err := s.productRepo.CountBySeller(ctx, seller.ID, model.StatusDraft)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计产品失败", err)
	}

	recent, err := s.productRepo.FindRecentBySeller(ctx, seller.ID, 5)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询最近产品失败", err)
	}

	var totalViews, totalInquiries int64
	for _, p := range recent {
		totalViews += p.Views
		totalInquiries += p.Inquiries
	}

	return &model.SellerDashboard{
		Profile: model.DashboardProfile{
			CompanyName:        seller.CompanyName,
			BrandName:          seller.BrandName,
			VerificationStatus: seller.VerificationStatus,
			Badges:             seller.Badges,
		},
		Stats: model.DashboardStats{
			TotalProducts:  total,
			ActiveProducts: active,
			DraftProducts:  draft,
			TotalViews:     totalViews,
			TotalInquiries: totalInquiries,
		},
		RecentProducts: recent,
		QuickActions: []model.QuickAction{
			{Name: "Add New Product", Action: "add_product"},
			{Name: "Update Profile", Action: "update_profile"},
			{Name: "View Analytics", Action: "view_analytics"},
		},
	}, nil
}

// applySellerInput 把标量字段覆盖到档案文档上，列表字段不在此处处理
func applySellerInput(profile *model.SellerProfile, input SellerProfileInput) {
	profile.CompanyName = input.CompanyName
	profile.BrandName = input.BrandName
	profile.Address = model.Address{
		Street:  input.Address.Street,
		City:    input.Address.City,
		State:   input.Address.State,
		Pincode: input.Address.Pincode,
		Country: "India",
	}
	profile.ContactDetails = model.ContactDetails{
		Email:          input.ContactDetails.Email,
		Phone:          input.ContactDetails.Phone,
		AlternatePhone: input.ContactDetails.AlternatePhone,
	}
	profile.OfficialContactPerson = model.ContactPerson{
		Name:        input.OfficialContactPerson.Name,
		Designation: input.OfficialContactPerson.Designation,
		Email:       input.OfficialContactPerson.Email,
		Phone:       input.OfficialContactPerson.Phone,
	}
	profile.BusinessDetails = model.BusinessDetails{
		GSTIN:     input.BusinessDetails.GSTIN,
		PAN:       input.BusinessDetails.PAN,
		CINNumber: input.BusinessDetails.CINNumber,
	}
}
