package service

import (
	"context"

	"recyclemart-backend/internal/cache"
	"recyclemart-backend/internal/errors"
	"recyclemart-backend/internal/model"
	"recyclemart-backend/internal/repository/interfaces"
	"recyclemart-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput 注册请求载荷
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=buyer seller"`
}

// LoginInput 登录请求载荷
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// BuyerLocationInput 买家位置载荷
type BuyerLocationInput struct {
	Coordinates []float64         `json:"coordinates" validate:"omitempty,len=2"`
	Address     BuyerAddressInput `json:"address"`
}

// BuyerAddressInput 买家地址载荷
type BuyerAddressInput struct {
	Street  string `json:"street"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required,pincode"`
}

// BuyerProjectInput 买家项目载荷
type BuyerProjectInput struct {
	Name                string   `json:"name" validate:"required"`
	Type                string   `json:"type" validate:"omitempty,oneof=Construction Manufacturing Infrastructure 'Renewable Energy' Other"`
	Location            string   `json:"location"`
	SustainabilityGoals []string `json:"sustainabilityGoals"`
	Description         string   `json:"description"`
}

// BuyerProfileInput 买家档案载荷
type BuyerProfileInput struct {
	Name     string              `json:"name" validate:"required"`
	Location BuyerLocationInput  `json:"location"`
	GSTIN    string              `json:"gstin" validate:"required,gstin"`
	Projects []BuyerProjectInput `json:"projects" validate:"required,min=1,dive"`
}

// UserService 处理注册、登录和身份摘要相关的业务逻辑
type UserService struct {
	userRepo   interfaces.UserRepository
	buyerRepo  interfaces.BuyerRepository
	sellerRepo interfaces.SellerRepository
	cache      *cache.Cache
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository, buyerRepo interfaces.BuyerRepository, sellerRepo interfaces.SellerRepository, c *cache.Cache) *UserService {
	return &UserService{
		userRepo:   userRepo,
		buyerRepo:  buyerRepo,
		sellerRepo: sellerRepo,
		cache:      c,
	}
}

// Register 注册新用户并预热身份摘要缓存
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	if err := validateInput(input); err != nil {
		return nil, "", err
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if existing != nil {
		return nil, "", errors.New(errors.ErrUserExists, "User already exists with this email")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInternal, "密码哈希失败", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", errors.Wrap(errors.ErrDatabase, "创建用户失败", err)
	}

	token, err := util.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInternal, "生成令牌失败", err)
	}

	s.cacheSummary(ctx, user)

	util.Logger.Info("用户注册成功",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))
	return user, token, nil
}

// Login 校验凭证，更新最近登录时间并刷新身份摘要缓存
func (s *UserService) Login(ctx context.Context, input LoginInput) (*model.User, string, error) {
	if err := validateInput(input); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, "", errors.New(errors.ErrInvalidCredentials, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", errors.New(errors.ErrInvalidCredentials, "Invalid email or password")
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		util.Logger.Warn("更新最近登录时间失败", zap.Error(err))
	}

	// profileCompleted 按档案实际存在与否重新计算
	user.ProfileCompleted = s.hasProfile(ctx, user)

	token, err := util.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInternal, "生成令牌失败", err)
	}

	s.cacheSummary(ctx, user)
	return user, token, nil
}

// Me 返回身份摘要，优先读取缓存
func (s *UserService) Me(ctx context.Context, userID string) (*model.UserSummary, bool, error) {
	var summary model.UserSummary
	if s.cache.Get(ctx, cache.UserKey(userID), &summary) {
		return &summary, true, nil
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false, errors.New(errors.ErrUserNotFound, "User not found")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, false, errors.New(errors.ErrUserNotFound, "User not found")
	}

	user.ProfileCompleted = s.hasProfile(ctx, user)
	s.cacheSummary(ctx, user)

	return &model.UserSummary{
		ID:               user.ID.Hex(),
		Email:            user.Email,
		Role:             user.Role,
		ProfileCompleted: user.ProfileCompleted,
		IsVerified:       user.IsVerified,
	}, false, nil
}

// Logout 删除身份摘要缓存，下一次 Me 重新计算
func (s *UserService) Logout(ctx context.Context, userID string) {
	s.cache.Delete(ctx, cache.UserKey(userID))
}

// UpsertBuyerProfile 创建或合并买家档案并标记用户档案完成
func (s *UserService) UpsertBuyerProfile(ctx context.Context, userID string, input BuyerProfileInput) (*model.BuyerProfile, bool, error) {
	if err := validateInput(input); err != nil {
		return nil, false, err
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false, errors.New(errors.ErrUserNotFound, "User not found")
	}

	coordinates := input.Location.Coordinates
	if len(coordinates) != 2 {
		coordinates = []float64{0, 0}
	}
	location := model.BuyerLocation{
		Type:        "Point",
		Coordinates: coordinates,
		Address: model.Address{
			Street:  input.Location.Address.Street,
			City:    input.Location.Address.City,
			State:   input.Location.Address.State,
			Pincode: input.Location.Address.Pincode,
			Country: "India",
		},
	}

	projects := make([]model.BuyerProject, 0, len(input.Projects))
	for _, p := range input.Projects {
		projectType := p.Type
		if projectType == "" {
			projectType = "Other"
		}
		projects = append(projects, model.BuyerProject{
			Name:                p.Name,
			Type:                projectType,
			Location:            p.Location,
			SustainabilityGoals: p.SustainabilityGoals,
			Description:         p.Description,
		})
	}

	existing, err := s.buyerRepo.FindByUserID(ctx, id)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "查询买家档案失败", err)
	}

	var profile *model.BuyerProfile
	created := false
	if existing != nil {
		existing.Name = input.Name
		existing.Location = location
		existing.GSTIN = input.GSTIN
		existing.Projects = projects
		if err := s.buyerRepo.Update(ctx, existing); err != nil {
			return nil, false, errors.Wrap(errors.ErrDatabase, "更新买家档案失败", err)
		}
		profile = existing
	} else {
		profile = &model.BuyerProfile{
			UserID:   id,
			Name:     input.Name,
			Location: location,
			GSTIN:    input.GSTIN,
			Projects: projects,
		}
		if err := s.buyerRepo.Create(ctx, profile); err != nil {
			return nil, false, errors.Wrap(errors.ErrDatabase, "创建买家档案失败", err)
		}
		created = true
	}

	if err := s.userRepo.SetProfileCompleted(ctx, id, true); err != nil {
		util.Logger.Warn("标记档案完成失败", zap.Error(err))
	}

	// 删除身份摘要缓存，下一次 Me 重新计算 profileCompleted
	s.cache.Delete(ctx, cache.UserKey(userID))

	return profile, created, nil
}

// hasProfile 按角色检查对应档案是否存在
func (s *UserService) hasProfile(ctx context.Context, user *model.User) bool {
	switch user.Role {
	case model.RoleBuyer:
		profile, err := s.buyerRepo.FindByUserID(ctx, user.ID)
		return err == nil && profile != nil
	case model.RoleSeller:
		profile, err := s.sellerRepo.FindByUserID(ctx, user.ID)
		return err == nil && profile != nil
	}
	return false
}

// cacheSummary 写入身份摘要缓存
func (s *UserService) cacheSummary(ctx context.Context, user *model.User) {
	s.cache.Set(ctx, cache.UserKey(user.ID.Hex()), model.UserSummary{
		ID:               user.ID.Hex(),
		Email:            user.Email,
		Role:             user.Role,
		ProfileCompleted: user.ProfileCompleted,
		IsVerified:       user.IsVerified,
	}, cache.UserSummaryTTL)
}
