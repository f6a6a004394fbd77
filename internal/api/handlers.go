// internal/api/handlers.go
package api

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/gravityreader/gravityreader/internal/errors"
	"github.com/gravityreader/gravityreader/internal/models"
	"github.com/gravityreader/gravityreader/internal/services"
	"github.com/gravityreader/gravityreader/internal/utils"
)

// RootMessage GET / 返回的固定状态信息
const RootMessage = "GravityReader V2 Backend is running"

// Handler 处理API请求
type Handler struct {
	ReaderService *services.ReaderService // 翻译与摘要服务
	Response      *ResponseHelper         // 响应助手
	Logger        *utils.Logger
}

// NewHandler 创建API处理器
func NewHandler(readerService *services.ReaderService, logger *utils.Logger) *Handler {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &Handler{
		ReaderService: readerService,
		Response:      NewResponseHelper(),
		Logger:        logger,
	}
}

// Root 服务状态，与模型配置无关
func (h *Handler) Root(c *gin.Context) {
	h.Response.Success(c, models.RootStatus{Message: RootMessage})
}

// Analyze 按句或按段翻译文本，原样返回模型生成的 JSON 文本
func (h *Handler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, err.Error())
		return
	}

	mode := req.Mode.Normalize()
	h.Logger.Info("🔥 收到文本分析请求", utils.Fields{
		"mode":       mode,
		"request_id": h.Response.getRequestID(c),
	})

	result, err := h.ReaderService.Analyze(c.Request.Context(), req.Text, mode)
	if err != nil {
		h.fail(c, "文本分析失败", err)
		return
	}

	h.Response.RawJSON(c, result)
}

// Summarize 生成摘要，返回 {"summary": ...}
func (h *Handler) Summarize(c *gin.Context) {
	var req models.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, err.Error())
		return
	}

	h.Logger.Info("🔥 收到摘要请求", utils.Fields{
		"length":     *req.Length,
		"request_id": h.Response.getRequestID(c),
	})

	summary, err := h.ReaderService.Summarize(c.Request.Context(), req.Text, *req.Length)
	if err != nil {
		h.fail(c, "生成摘要失败", err)
		return
	}

	h.Response.Success(c, models.SummaryResult{Summary: summary})
}

// fail 记录错误并映射为HTTP响应
func (h *Handler) fail(c *gin.Context, message string, err error) {
	status := h.Response.FromError(c, err)
	if apperrors.IsValidationError(err) {
		return
	}

	h.Logger.Error(message, utils.Fields{
		"error":      err.Error(),
		"status":     status,
		"timeout":    apperrors.IsTimeoutError(err),
		"request_id": h.Response.getRequestID(c),
	})
}
