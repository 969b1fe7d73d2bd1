package middleware

import (
	"strings"

	"recyclemart-backend/internal/errors"
	"recyclemart-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// AuthMiddleware 解析 Bearer 令牌并把用户ID和角色放入上下文
// 核心信任令牌中的身份与角色声明
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "无效的认证格式"))
			c.Abort()
			return
		}

		userID, role, err := util.ValidateToken(parts[1])
		if err != nil {
			errors.HandleError(c, errors.Wrap(errors.ErrUnauthorized, "无效或过期的令牌", err))
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireRole 校验上下文中的角色声明
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			errors.HandleError(c, errors.New(errors.ErrRoleMismatch, "没有访问权限"))
			c.Abort()
			return
		}
		c.Next()
	}
}
