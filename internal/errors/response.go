package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 定义错误响应结构
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// SuccessResponse 定义成功响应结构
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Cached  bool        `json:"cached,omitempty"`
}

// 错误码与HTTP状态码映射
var errorStatusMap = map[ErrorCode]int{
	// 系统错误 (1000-1999)
	ErrInternal:    http.StatusInternalServerError,
	ErrDatabase:    http.StatusInternalServerError,
	ErrCache:       http.StatusInternalServerError,
	ErrTimeout:     http.StatusRequestTimeout,
	ErrUnavailable: http.StatusServiceUnavailable,

	// 认证错误 (2000-2999)
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrTokenExpired:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,

	// 请求错误 (3000-3999)
	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,
	ErrResourceExists:   http.StatusBadRequest,
	ErrResourceConflict: http.StatusConflict,
	ErrFileUpload:       http.StatusBadRequest,

	// 业务错误 (4000-4999)
	ErrUserNotFound:          http.StatusNotFound,
	ErrUserExists:            http.StatusBadRequest,
	ErrWeakPassword:          http.StatusBadRequest,
	ErrProductNotFound:       http.StatusNotFound,
	ErrSellerProfileNotFound: http.StatusNotFound,
	ErrBuyerProfileNotFound:  http.StatusNotFound,
	ErrRoleMismatch:          http.StatusForbidden,
}

// HandleError 统一处理错误响应
// 错误同时登记到 gin 的错误列表，供错误监控中间件统计
func HandleError(c *gin.Context, err error) {
	_ = c.Error(err)

	if appErr, ok := err.(*AppError); ok {
		status := errorStatusMap[appErr.Code]
		if status == 0 {
			status = http.StatusInternalServerError
		}

		resp := ErrorResponse{
			Success: false,
			Message: appErr.Message,
			Errors:  appErr.Details,
		}

		// 内部错误不向调用方泄露底层细节
		if appErr.Err != nil && status < http.StatusInternalServerError {
			resp.Error = appErr.Err.Error()
		}

		c.JSON(status, resp)
		return
	}

	// 处理非 AppError 类型的错误
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Message: "Internal Server Error",
	})
}

// HandleSuccess 统一处理成功响应
func HandleSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// HandleCached 处理读穿缓存端点的成功响应
func HandleCached(c *gin.Context, data interface{}, cached bool) {
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
		Cached:  cached,
	})
}
