package util

import (
	"errors"
	"recyclemart-backend/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken 生成携带用户ID和角色的访问令牌
func GenerateToken(userID, role string) (string, error) {
	expires := time.Duration(config.AppConfig.JWTExpiresHours) * time.Hour
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(expires).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken 校验令牌并返回用户ID和角色
func ValidateToken(tokenString string) (string, string, error) {
	if tokenString == "" {
		return "", "", errors.New("令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("意外的签名方法")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("无效的令牌")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", errors.New("无效的用户ID")
	}
	role, _ := claims["role"].(string)

	return userID, role, nil
}
