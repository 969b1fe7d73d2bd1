package auth

import (
	"net/http"

	"recyclemart-backend/internal/errors"
	"recyclemart-backend/internal/middleware"
	"recyclemart-backend/internal/service"
	"recyclemart-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 处理与认证和档案相关的HTTP请求
type AuthHandler struct {
	userService *service.UserService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService}
}

// Register 处理用户注册请求
func (h *AuthHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Logger.Warn("注册失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user, token, err := h.userService.Register(c.Request.Context(), input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":               user.ID.Hex(),
			"email":            user.Email,
			"role":             user.Role,
			"profileCompleted": user.ProfileCompleted,
		},
	}, "User registered successfully")
}

// Login 处理用户登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user, token, err := h.userService.Login(c.Request.Context(), input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":               user.ID.Hex(),
			"email":            user.Email,
			"role":             user.Role,
			"profileCompleted": user.ProfileCompleted,
			"isVerified":       user.IsVerified,
		},
	}, "Login successful")
}

// Me 返回当前用户的身份摘要
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	summary, cached, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCached(c, summary, cached)
}

// Logout 处理用户登出
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	h.userService.Logout(c.Request.Context(), userID)
	errors.HandleSuccess(c, http.StatusOK, nil, "Logged out successfully")
}

// BuyerProfile 创建或更新买家档案
func (h *AuthHandler) BuyerProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var input service.BuyerProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	profile, created, err := h.userService.UpsertBuyerProfile(c.Request.Context(), userID, input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	status := http.StatusOK
	message := "Buyer profile updated successfully"
	if created {
		status = http.StatusCreated
		message = "Buyer profile created successfully"
	}
	errors.HandleSuccess(c, status, profile, message)
}
