package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 用户角色
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// User 结构体表示用户模型
type User struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email            string             `json:"email" bson:"email"`
	PasswordHash     string             `json:"-" bson:"password"` // 密码哈希不应在JSON中暴露
	Role             string             `json:"role" bson:"role"`
	ProfileCompleted bool               `json:"profileCompleted" bson:"profileCompleted"`
	IsVerified       bool               `json:"isVerified" bson:"isVerified"`
	LastLogin        *time.Time         `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserSummary 是缓存与 /auth/me 使用的身份摘要
type UserSummary struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	ProfileCompleted bool   `json:"profileCompleted"`
	IsVerified       bool   `json:"isVerified"`
}
