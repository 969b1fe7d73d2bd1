package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 产品生命周期状态
const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ProductCategories 是产品分类的封闭枚举
var ProductCategories = []string{
	"plastics", "metals", "paper", "electronics", "textiles",
	"glass", "chemicals", "construction", "automotive", "other",
}

// PricingUnits 是计价单位的封闭枚举
var PricingUnits = []string{
	"kg", "ton", "piece", "meter", "liter", "cubic_meter", "square_meter",
}

// SustainabilityTags 是可持续性标签的封闭枚举
var SustainabilityTags = []string{
	"recycled", "biodegradable", "carbon_neutral", "energy_efficient",
	"water_efficient", "renewable", "eco_friendly",
}

// CarbonFootprint 碳足迹指标
type CarbonFootprint struct {
	Value       float64 `json:"value" bson:"value"`
	Unit        string  `json:"unit" bson:"unit"` // kg_co2_per_ton/kg_co2_per_unit/percentage_reduction
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
}

// SourceLocation 货源地
type SourceLocation struct {
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	Pincode string `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

// PriceRange 可选的报价区间
type PriceRange struct {
	Min float64 `json:"min,omitempty" bson:"min,omitempty"`
	Max float64 `json:"max,omitempty" bson:"max,omitempty"`
}

// Pricing 产品定价
type Pricing struct {
	BasePrice  float64     `json:"basePrice" bson:"basePrice"`
	PriceRange *PriceRange `json:"priceRange,omitempty" bson:"priceRange,omitempty"`
	Unit       string      `json:"unit" bson:"unit"`
	Currency   string      `json:"currency" bson:"currency"`
}

// MOQ 最小起订量
type MOQ struct {
	Quantity float64 `json:"quantity" bson:"quantity"`
	Unit     string  `json:"unit" bson:"unit"`
}

// ServiceableGeography 可服务地域
type ServiceableGeography struct {
	States     []string `json:"states" bson:"states"`
	Cities     []string `json:"cities" bson:"cities"`
	Nationwide bool     `json:"nationwide" bson:"nationwide"`
}

// ProductImage 产品图片引用，仅保存路径
// 图片存在时应恰好有一张标记为主图
type ProductImage struct {
	URL       string `json:"url" bson:"url"`
	Alt       string `json:"alt,omitempty" bson:"alt,omitempty"`
	IsPrimary bool   `json:"isPrimary" bson:"isPrimary"`
}

// ProductDocument 产品附件引用
type ProductDocument struct {
	Type       string    `json:"type" bson:"type"` // quality_certificate/test_report/specification_sheet/other
	Name       string    `json:"name" bson:"name"`
	URL        string    `json:"url" bson:"url"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

// ProductCertification 产品相关证书
type ProductCertification struct {
	Name           string     `json:"name" bson:"name"`
	IssuingBody    string     `json:"issuingBody,omitempty" bson:"issuingBody,omitempty"`
	CertificateURL string     `json:"certificateUrl" bson:"certificateUrl"`
	ValidUntil     *time.Time `json:"validUntil,omitempty" bson:"validUntil,omitempty"`
}

// Product 产品模型，属于某个卖家
type Product struct {
	ID                   primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	SellerID             primitive.ObjectID     `json:"sellerId" bson:"sellerId"`
	ProductName          string                 `json:"productName" bson:"productName"`
	ProductType          string                 `json:"productType" bson:"productType"`
	Category             string                 `json:"category" bson:"category"`
	Specifications       map[string]string      `json:"specifications" bson:"specifications"`
	Features             []string               `json:"features" bson:"features"`
	Benefits             []string               `json:"benefits" bson:"benefits"`
	CarbonFootprint      *CarbonFootprint       `json:"carbonFootprint,omitempty" bson:"carbonFootprint,omitempty"`
	SourceLocations      []SourceLocation       `json:"sourceLocations" bson:"sourceLocations"`
	Pricing              Pricing                `json:"pricing" bson:"pricing"`
	MOQ                  MOQ                    `json:"moq" bson:"moq"`
	ServiceableGeography ServiceableGeography   `json:"serviceableGeography" bson:"serviceableGeography"`
	Images               []ProductImage         `json:"images" bson:"images"`
	Documents            []ProductDocument      `json:"documents" bson:"documents"`
	Certifications       []ProductCertification `json:"certifications" bson:"certifications"`
	SustainabilityTags   []string               `json:"sustainabilityTags" bson:"sustainabilityTags"`
	AdditionalInfo       string                 `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
	Status               string                 `json:"status" bson:"status"`
	Views                int64                  `json:"views" bson:"views"`
	Inquiries            int64                  `json:"inquiries" bson:"inquiries"`
	CreatedAt            time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time              `json:"updatedAt" bson:"updatedAt"`
}

// FilterOptions 公共筛选项端点的聚合结果
type FilterOptions struct {
	Categories         []string   `json:"categories"`
	SustainabilityTags []string   `json:"sustainabilityTags"`
	States             []string   `json:"states"`
	PriceRange         PriceStats `json:"priceRange"`
}

// PriceStats 活跃产品的价格上下界
type PriceStats struct {
	MinPrice float64 `json:"minPrice" bson:"minPrice"`
	MaxPrice float64 `json:"maxPrice" bson:"maxPrice"`
}
