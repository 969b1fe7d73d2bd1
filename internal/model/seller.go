package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 卖家整体认证状态
const (
	VerificationPending  = "pending"
	VerificationInReview = "in_review"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// Address 结构化地址
type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Pincode string `json:"pincode" bson:"pincode"`
	Country string `json:"country" bson:"country"`
}

// ContactDetails 企业联系方式
type ContactDetails struct {
	Email          string `json:"email" bson:"email"`
	Phone          string `json:"phone" bson:"phone"`
	AlternatePhone string `json:"alternatePhone,omitempty" bson:"alternatePhone,omitempty"`
}

// ContactPerson 官方联系人
type ContactPerson struct {
	Name        string `json:"name" bson:"name"`
	Designation string `json:"designation,omitempty" bson:"designation,omitempty"`
	Email       string `json:"email,omitempty" bson:"email,omitempty"`
	Phone       string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// BusinessDetails 工商注册信息
type BusinessDetails struct {
	GSTIN     string `json:"gstin" bson:"gstin"`
	PAN       string `json:"pan" bson:"pan"`
	CINNumber string `json:"cinNumber,omitempty" bson:"cinNumber,omitempty"`
}

// SellerDocument 卖家上传的资质文件，逐份审核
type SellerDocument struct {
	Type               string    `json:"type" bson:"type"` // company_registration/gst_certificate/pan_card/other
	FileName           string    `json:"fileName" bson:"fileName"`
	FileURL            string    `json:"fileUrl" bson:"fileUrl"`
	UploadedAt         time.Time `json:"uploadedAt" bson:"uploadedAt"`
	VerificationStatus string    `json:"verificationStatus" bson:"verificationStatus"`
}

// SellerCertification 卖家认证证书
type SellerCertification struct {
	Name               string     `json:"name" bson:"name"`
	IssuingBody        string     `json:"issuingBody,omitempty" bson:"issuingBody,omitempty"`
	IssueDate          *time.Time `json:"issueDate,omitempty" bson:"issueDate,omitempty"`
	ExpiryDate         *time.Time `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	CertificateURL     string     `json:"certificateUrl" bson:"certificateUrl"`
	UploadedAt         time.Time  `json:"uploadedAt" bson:"uploadedAt"`
	VerificationStatus string     `json:"verificationStatus" bson:"verificationStatus"`
}

// DashboardProfile 仪表盘中的档案摘要
type DashboardProfile struct {
	CompanyName        string   `json:"companyName"`
	BrandName          string   `json:"brandName,omitempty"`
	VerificationStatus string   `json:"verificationStatus"`
	Badges             []string `json:"badges"`
}

// DashboardStats 仪表盘统计
// 浏览与询盘合计取自最近创建的5个产品
type DashboardStats struct {
	TotalProducts  int64 `json:"totalProducts"`
	ActiveProducts int64 `json:"activeProducts"`
	DraftProducts  int64 `json:"draftProducts"`
	TotalViews     int64 `json:"totalViews"`
	TotalInquiries int64 `json:"totalInquiries"`
}

// QuickAction 仪表盘快捷操作
type QuickAction struct {
	Name   string `json:"name"`
	Action string `json:"action"`
}

// SellerDashboard 卖家仪表盘聚合结果，始终实时计算
type SellerDashboard struct {
	Profile        DashboardProfile `json:"profile"`
	Stats          DashboardStats   `json:"stats"`
	RecentProducts []Product        `json:"recentProducts"`
	QuickActions   []QuickAction    `json:"quickActions"`
}

// SellerProfile 卖家档案，与用户一对一
// 文件和证书列表只追加不替换
type SellerProfile struct {
	ID                    primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	UserID                primitive.ObjectID    `json:"userId" bson:"userId"`
	CompanyName           string                `json:"companyName" bson:"companyName"`
	BrandName             string                `json:"brandName,omitempty" bson:"brandName,omitempty"`
	Address               Address               `json:"address" bson:"address"`
	ContactDetails        ContactDetails        `json:"contactDetails" bson:"contactDetails"`
	OfficialContactPerson ContactPerson         `json:"officialContactPerson" bson:"officialContactPerson"`
	BusinessDetails       BusinessDetails       `json:"businessDetails" bson:"businessDetails"`
	Documents             []SellerDocument      `json:"documents" bson:"documents"`
	Certifications        []SellerCertification `json:"certifications" bson:"certifications"`
	VerificationStatus    string                `json:"verificationStatus" bson:"verificationStatus"`
	Badges                []string              `json:"badges" bson:"badges"` // verified_supplier/premium/eco_friendly/trusted_partner
	CreatedAt             time.Time             `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time             `json:"updatedAt" bson:"updatedAt"`
}
