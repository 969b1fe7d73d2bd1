package seller

import (
	"encoding/json"
	"mime/multipart"
	"net/http"

	"recyclemart-backend/internal/errors"
	"recyclemart-backend/internal/middleware"
	"recyclemart-backend/internal/service"
	"recyclemart-backend/internal/storage"
	"recyclemart-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 单次提交的文件数量上限
const (
	maxDocuments      = 10
	maxCertifications = 5
)

// SellerHandler 处理卖家档案与仪表盘相关的HTTP请求
type SellerHandler struct {
	sellerService *service.SellerService
	fileStorage   storage.FileStorage
}

// NewSellerHandler 创建一个新的 SellerHandler 实例
func NewSellerHandler(sellerService *service.SellerService, fileStorage storage.FileStorage) *SellerHandler {
	return &SellerHandler{sellerService, fileStorage}
}

// UpsertProfile 创建或合并卖家档案，载荷为 multipart 表单
// 结构化字段以JSON字符串提交，文件追加到已有列表
func (h *SellerHandler) UpsertProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	input, err := parseProfileForm(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	documents, err := h.uploadFiles(c, "documents", "sellers/documents", maxDocuments)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	certifications, err := h.uploadFiles(c, "certifications", "sellers/certifications", maxCertifications)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	profile, created, err := h.sellerService.UpsertProfile(c.Request.Context(), userID, *input, documents, certifications)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	status := http.StatusOK
	message := "Seller profile updated successfully"
	if created {
		status = http.StatusCreated
		message = "Seller profile created successfully"
	}
	errors.HandleSuccess(c, status, profile, message)
}

// GetProfile 返回卖家自己的档案
func (h *SellerHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	profile, cached, err := h.sellerService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCached(c, profile, cached)
}

// Dashboard 返回卖家仪表盘聚合数据
func (h *SellerHandler) Dashboard(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	dashboard, err := h.sellerService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, http.StatusOK, dashboard, "")
}

// uploadFiles 把表单里的文件逐个传到存储后端
func (h *SellerHandler) uploadFiles(c *gin.Context, field, dir string, max int) ([]service.UploadedFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.Wrap(errors.ErrValidation, "无效的表单数据", err)
	}

	files := form.File[field]
	if len(files) > max {
		return nil, errors.New(errors.ErrFileUpload, "Too many files uploaded")
	}

	uploaded := make([]service.UploadedFile, 0, len(files))
	for _, file := range files {
		if err := util.ValidateUpload(file); err != nil {
			return nil, errors.Wrap(errors.ErrFileUpload, "Invalid file", err)
		}
		url, err := h.uploadOne(file, dir)
		if err != nil {
			util.Logger.Error("文件上传失败",
				zap.String("filename", file.Filename),
				zap.Error(err))
			return nil, errors.Wrap(errors.ErrFileUpload, "File upload failed", err)
		}
		uploaded = append(uploaded, service.UploadedFile{Name: file.Filename, URL: url})
	}
	return uploaded, nil
}

func (h *SellerHandler) uploadOne(file *multipart.FileHeader, dir string) (string, error) {
	path := dir + "/" + util.GenerateUniqueFilename(file.Filename)
	return h.fileStorage.UploadFile(file, path)
}

// parseProfileForm 解析 multipart 表单里的档案载荷
func parseProfileForm(c *gin.Context) (*service.SellerProfileInput, error) {
	input := &service.SellerProfileInput{
		CompanyName: c.PostForm("companyName"),
		BrandName:   c.PostForm("brandName"),
	}

	if v := c.PostForm("address"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Address); err != nil {
			return nil, errors.Wrap(errors.ErrValidation, "无效的 address 字段", err)
		}
	}
	if v := c.PostForm("contactDetails"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.ContactDetails); err != nil {
			return nil, errors.Wrap(errors.ErrValidation, "无效的 contactDetails 字段", err)
		}
	}
	if v := c.PostForm("officialContactPerson"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.OfficialContactPerson); err != nil {
			return nil, errors.Wrap(errors.ErrValidation, "无效的 officialContactPerson 字段", err)
		}
	}
	if v := c.PostForm("businessDetails"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.BusinessDetails); err != nil {
			return nil, errors.Wrap(errors.ErrValidation, "无效的 businessDetails 字段", err)
		}
	}

	return input, nil
}
