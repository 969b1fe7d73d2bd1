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
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) (*UserService, *mockUserRepo, *mockBuyerRepo, *mockSellerRepo) {
	userRepo := new(mockUserRepo)
	buyerRepo := new(mockBuyerRepo)
	sellerRepo := new(mockSellerRepo)
	svc := NewUserService(userRepo, buyerRepo, sellerRepo, newTestCache(t))
	return svc, userRepo, buyerRepo, sellerRepo
}

func TestRegisterSuccess(t *testing.T) {
	svc, userRepo, _, _ := newUserService(t)
	ctx := context.Background()

	userRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	user, token, err := svc.Register(ctx, RegisterInput{
		Email:    "new@example.com",
		Password: "secret123",
		Role:     model.RoleBuyer,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, model.RoleBuyer, user.Role)
	// 密码以哈希形式存储
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	userRepo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, userRepo, _, _ := newUserService(t)

	userRepo.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&model.User{Email: "taken@example.com"}, nil)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "taken@example.com",
		Password: "secret123",
		Role:     model.RoleSeller,
	})
	assert.True(t, errors.Is(err, errors.ErrUserExists))
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	svc, _, _, _ := newUserService(t)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "x@example.com",
		Password: "secret123",
		Role:     "admin",
	})
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestLoginSuccess(t *testing.T) {
	svc, userRepo, buyerRepo, _ := newUserService(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	stored := &model.User{
		ID:           primitive.NewObjectID(),
		Email:        "buyer@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleBuyer,
	}

	userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(stored, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, stored.ID).Return(nil)
	buyerRepo.On("FindByUserID", mock.Anything, stored.ID).Return(&model.BuyerProfile{UserID: stored.ID}, nil)

	user, token, err := svc.Login(context.Background(), LoginInput{
		Email:    "buyer@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	// profileCompleted 按档案实际存在重新计算
	assert.True(t, user.ProfileCompleted)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, userRepo, _, _ := newUserService(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)

	userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").
		Return(&model.User{Email: "buyer@example.com", PasswordHash: string(hash)}, nil)

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "buyer@example.com",
		Password: "wrong",
	})
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, userRepo, _, _ := newUserService(t)

	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	// 未知邮箱与密码错误返回同一个错误
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

// Me 第二次调用命中缓存，不再访问存储
func TestMeReadThrough(t *testing.T) {
	svc, userRepo, buyerRepo, _ := newUserService(t)
	id := primitive.NewObjectID()
	stored := &model.User{ID: id, Email: "buyer@example.com", Role: model.RoleBuyer}

	userRepo.On("FindByID", mock.Anything, id).Return(stored, nil).Once()
	buyerRepo.On("FindByUserID", mock.Anything, id).Return(nil, nil).Once()

	first, cached, err := svc.Me(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := svc.Me(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)
	userRepo.AssertExpectations(t)
}

func TestLogoutInvalidatesSummary(t *testing.T) {
	svc, userRepo, buyerRepo, _ := newUserService(t)
	id := primitive.NewObjectID()
	stored := &model.User{ID: id, Email: "buyer@example.com", Role: model.RoleBuyer}

	// 登出后 Me 需要重新访问存储
	userRepo.On("FindByID", mock.Anything, id).Return(stored, nil).Twice()
	buyerRepo.On("FindByUserID", mock.Anything, id).Return(nil, nil).Twice()

	_, _, err := svc.Me(context.Background(), id.Hex())
	require.NoError(t, err)

	svc.Logout(context.Background(), id.Hex())

	_, cached, err := svc.Me(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.False(t, cached)
	userRepo.AssertExpectations(t)
}

func TestUpsertBuyerProfileCreates(t *testing.T) {
	svc, userRepo, buyerRepo, _ := newUserService(t)
	id := primitive.NewObjectID()

	buyerRepo.On("FindByUserID", mock.Anything, id).Return(nil, nil)
	buyerRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.BuyerProfile")).Return(nil)
	userRepo.On("SetProfileCompleted", mock.Anything, id, true).Return(nil)

	profile, created, err := svc.UpsertBuyerProfile(context.Background(), id.Hex(), BuyerProfileInput{
		Name:  "Green Build Co",
		GSTIN: "22AAAAA0000A1Z5",
		Location: BuyerLocationInput{
			Address: BuyerAddressInput{City: "Pune", State: "Maharashtra", Pincode: "411001"},
		},
		Projects: []BuyerProjectInput{{Name: "Warehouse Retrofit"}},
	})
	require.NoError(t, err)
	assert.True(t, created)
	// 缺省坐标与项目类型
	assert.Equal(t, []float64{0, 0}, profile.Location.Coordinates)
	assert.Equal(t, "Other", profile.Projects[0].Type)
	assert.Equal(t, "India", profile.Location.Address.Country)
	buyerRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}
