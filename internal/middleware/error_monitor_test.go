package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"recyclemart-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// 经 HandleError 返回的错误要被监控中间件按错误码计数
func TestErrorMonitorCountsHandledErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	monitor := NewErrorMonitor()
	r := gin.New()
	r.Use(ErrorMonitorMiddleware(monitor))
	r.GET("/missing", func(c *gin.Context) {
		errors.HandleError(c, errors.New(errors.ErrProductNotFound, "Product not found"))
	})
	r.GET("/ok", func(c *gin.Context) {
		errors.HandleSuccess(c, http.StatusOK, nil, "")
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	counts := monitor.GetErrorCounts()
	assert.Equal(t, 2, counts[errors.ErrProductNotFound])
	assert.Len(t, counts, 1)
}

func TestErrorMonitorIgnoresPlainErrors(t *testing.T) {
	monitor := NewErrorMonitor()
	monitor.RecordError(assert.AnError)
	assert.Empty(t, monitor.GetErrorCounts())
}
