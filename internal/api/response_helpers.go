// internal/api/response_helpers.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/gravityreader/gravityreader/internal/errors"
	"github.com/gravityreader/gravityreader/internal/models"
)

// ResponseHelper 响应助手类
type ResponseHelper struct{}

// NewResponseHelper 创建响应助手
func NewResponseHelper() *ResponseHelper {
	return &ResponseHelper{}
}

// Success 200 JSON 响应
func (rh *ResponseHelper) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// RawJSON 原样写出模型生成的 JSON 文本，不做解析或校验
func (rh *ResponseHelper) RawJSON(c *gin.Context, body string) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(body))
}

// Error 错误响应，统一为 {"detail": ...}
func (rh *ResponseHelper) Error(c *gin.Context, statusCode int, detail string) {
	c.AbortWithStatusJSON(statusCode, models.ErrorBody{Detail: detail})
}

// BadRequest 400错误响应
func (rh *ResponseHelper) BadRequest(c *gin.Context, detail string) {
	rh.Error(c, http.StatusBadRequest, detail)
}

// FromError 把服务层错误映射为HTTP状态码：验证错误为400，其余一律500
func (rh *ResponseHelper) FromError(c *gin.Context, err error) int {
	status := StatusFor(err)
	rh.Error(c, status, apperrors.DetailOf(err))
	return status
}

// StatusFor 返回错误对应的HTTP状态码
func StatusFor(err error) int {
	if apperrors.IsValidationError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// getRequestID 获取请求ID
func (rh *ResponseHelper) getRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
