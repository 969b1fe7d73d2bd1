package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuyerLocation 买家位置，GeoJSON Point 加结构化地址
// 坐标为 [经度, 纬度]，location 字段上建有 2dsphere 索引
type BuyerLocation struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
	Address     Address   `json:"address" bson:"address"`
}

// BuyerProject 买家采购项目
type BuyerProject struct {
	Name                string     `json:"name" bson:"name"`
	Type                string     `json:"type" bson:"type"` // Construction/Manufacturing/Infrastructure/Renewable Energy/Other
	Location            string     `json:"location,omitempty" bson:"location,omitempty"`
	SustainabilityGoals []string   `json:"sustainabilityGoals" bson:"sustainabilityGoals"`
	StartDate           *time.Time `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate             *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Description         string     `json:"description,omitempty" bson:"description,omitempty"`
}

// BuyerProfile 买家档案，与用户一对一
type BuyerProfile struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Name      string             `json:"name" bson:"name"`
	Location  BuyerLocation      `json:"location" bson:"location"`
	GSTIN     string             `json:"gstin" bson:"gstin"`
	Projects  []BuyerProject     `json:"projects" bson:"projects"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
