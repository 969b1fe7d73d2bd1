package product

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"recyclemart-backend/internal/errors"
	"recyclemart-backend/internal/middleware"
	"recyclemart-backend/internal/model"
	"recyclemart-backend/internal/service"
	"recyclemart-backend/internal/storage"
	"recyclemart-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 单次提交的文件数量上限
const (
	maxImages    = 5
	maxDocuments = 3
)

// ProductHandler 处理产品相关的HTTP请求
type ProductHandler struct {
	productService *service.ProductService
	fileStorage    storage.FileStorage
}

// NewProductHandler 创建一个新的 ProductHandler 实例
func NewProductHandler(productService *service.ProductService, fileStorage storage.FileStorage) *ProductHandler {
	return &ProductHandler{productService, fileStorage}
}

// Create 处理产品创建请求，载荷为 multipart 表单
// 结构化字段以JSON字符串提交
func (h *ProductHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	input, err := parseProductForm(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	images, err := h.uploadFiles(c, "images", "products/images", maxImages)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	documents, err := h.uploadFiles(c, "documents", "products/documents", maxDocuments)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), userID, *input, images, documents)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("产品创建成功",
		zap.String("product_id", product.ID.Hex()),
		zap.String("user_id", userID))
	errors.HandleSuccess(c, http.StatusCreated, product, "Product created successfully")
}

// List 公共产品列表，只含活跃产品
func (h *ProductHandler) List(c *gin.Context) {
	filters := parseFilters(c)

	list, cached, err := h.productService.ListProducts(c.Request.Context(), filters)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCached(c, list, cached)
}

// Get 公共产品详情
func (h *ProductHandler) Get(c *gin.Context) {
	product, cached, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCached(c, product, cached)
}

// Update 更新卖家自己的产品
func (h *ProductHandler) Update(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), userID, c.Param("id"), input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, http.StatusOK, product, "Product updated successfully")
}

// Delete 删除卖家自己的产品
func (h *ProductHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := h.productService.DeleteProduct(c.Request.Context(), userID, c.Param("id")); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, http.StatusOK, nil, "Product deleted successfully")
}

// MyProducts 卖家自己的产品列表，不限状态
func (h *ProductHandler) MyProducts(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	filters := parseFilters(c)

	list, err := h.productService.ListSellerProducts(c.Request.Context(), userID, filters)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, http.StatusOK, list, "")
}

// FilterOptions 公共筛选项聚合
func (h *ProductHandler) FilterOptions(c *gin.Context) {
	opts, cached, err := h.productService.FilterOptions(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCached(c, opts, cached)
}

// Inquiry 记录一次询盘
func (h *ProductHandler) Inquiry(c *gin.Context) {
	if err := h.productService.RecordInquiry(c.Request.Context(), c.Param("id")); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, http.StatusOK, nil, "Inquiry recorded successfully")
}

// uploadFiles 把表单里的文件逐个传到存储后端
func (h *ProductHandler) uploadFiles(c *gin.Context, field, dir string, max int) ([]service.UploadedFile, error) {
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

func (h *ProductHandler) uploadOne(file *multipart.FileHeader, dir string) (string, error) {
	path := dir + "/" + util.GenerateUniqueFilename(file.Filename)
	return h.fileStorage.UploadFile(file, path)
}

// parseProductForm 解析 multipart 表单里的产品载荷
// 结构化字段先按JSON解析，失败时退回原始字符串语义
func parseProductForm(c *gin.Context) (*service.ProductInput, error) {
	input := &service.ProductInput{
		ProductName:    c.PostForm("productName"),
		ProductType:    c.PostForm("productType"),
		Category:       c.PostForm("category"),
		AdditionalInfo: c.PostForm("additionalInfo"),
		Status:         c.PostForm("status"),
	}

	if v := c.PostForm("specifications"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Specifications); err != nil {
			return nil, errors.Wrap(errors.ErrValidation, "无效的 specifications 字段", err)
		}
	}
	if v := c.PostForm("features"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Features); err != nil {
			input.Features = []string{v}
		}
	}
	if v := c.PostForm("benefits"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Benefits); err != nil {
			input.Benefits = []string{v}
		}
	}
	if v := c.PostForm("carbonFootprint"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.CarbonFootprint); err != nil {
			return nil, errors.Wrap(errors.ErrValidation, "无效的 carbonFootprint 字段", err)
		}
	}
	if v := c.PostForm("sourceLocations"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.SourceLocations); err != nil {
			return nil, errors.Wrap(errors.ErrValidation, "无效的 sourceLocations 字段", err)
		}
	}
	if v := c.PostForm("pricing"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Pricing); err != nil {
			return nil, errors.Wrap(errors.ErrValidation, "无效的 pricing 字段", err)
		}
	}
	if v := c.PostForm("moq"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.MOQ); err != nil {
			return nil, errors.Wrap(errors.ErrValidation, "无效的 moq 字段", err)
		}
	}
	if v := c.PostForm("serviceableGeography"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.ServiceableGeography); err != nil {
			return nil, errors.Wrap(errors.ErrValidation, "无效的 serviceableGeography 字段", err)
		}
	}
	if v := c.PostForm("sustainabilityTags"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.SustainabilityTags); err != nil {
			input.SustainabilityTags = []string{v}
		}
	}

	return input, nil
}

// parseFilters 解析列表端点的查询参数
func parseFilters(c *gin.Context) model.ProductFilters {
	filters := model.ProductFilters{
		Search:            c.Query("search"),
		Category:          c.Query("category"),
		State:             c.Query("state"),
		City:              c.Query("city"),
		SustainabilityTag: c.Query("sustainabilityTag"),
		SellerID:          c.Query("seller"),
		Status:            c.Query("status"),
		SortBy:            c.Query("sortBy"),
		SortOrder:         c.Query("sortOrder"),
	}

	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		filters.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = v
	}
	filters.MinPrice = parseFloat(c.Query("minPrice"))
	filters.MaxPrice = parseFloat(c.Query("maxPrice"))
	filters.MinMoq = parseFloat(c.Query("minMoq"))
	filters.MaxMoq = parseFloat(c.Query("maxMoq"))

	return filters
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
