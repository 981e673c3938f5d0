package shared

import (
	"errors"

	"github.com/caneca-next/internal/http/response"
	"github.com/caneca-next/internal/logger"
	"github.com/caneca-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", code,
			"message", msg,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

// serviceErrorRule 业务错误到响应码与消息的映射。
type serviceErrorRule struct {
	target error
	code   int
	msg    string
}

var serviceErrorRules = []serviceErrorRule{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "记录不存在"},
	{target: service.ErrStockNotFound, code: response.CodeNotFound, msg: "库存记录不存在"},
	{target: service.ErrStockExists, code: response.CodeConflict, msg: "库存记录已存在"},
	{target: service.ErrInsufficientStock, code: response.CodeConflict, msg: "库存不足"},
	{target: service.ErrSKUExists, code: response.CodeConflict, msg: "SKU 已被占用"},
	{target: service.ErrSKURequired, code: response.CodeBadRequest, msg: "SKU 不能为空"},
	{target: service.ErrNameRequired, code: response.CodeBadRequest, msg: "名称不能为空"},
	{target: service.ErrInvalidPrice, code: response.CodeBadRequest, msg: "价格不合法"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "数量不合法"},
	{target: service.ErrInvalidMovementType, code: response.CodeBadRequest, msg: "流水类型不合法"},
	{target: service.ErrInvalidDiscount, code: response.CodeBadRequest, msg: "折扣不合法"},
	{target: service.ErrInvalidStatus, code: response.CodeBadRequest, msg: "订单状态不合法"},
	{target: service.ErrOrderNotPending, code: response.CodeConflict, msg: "订单不在待处理状态"},
	{target: service.ErrEmailExists, code: response.CodeConflict, msg: "邮箱已被注册"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "邮箱格式不合法"},
	{target: service.ErrPasswordTooShort, code: response.CodeBadRequest, msg: "密码长度不足"},
	{target: service.ErrInvalidCredential, code: response.CodeUnauthorized, msg: "邮箱或密码错误"},
	{target: service.ErrEmptyFile, code: response.CodeBadRequest, msg: "文件内容为空"},
	{target: service.ErrFileTooLarge, code: response.CodeBadRequest, msg: "文件大小超过限制"},
	{target: service.ErrFileTypeInvalid, code: response.CodeBadRequest, msg: "文件类型不被允许"},
}

// RespondServiceError 按映射表返回业务错误，未匹配的按内部错误处理。
func RespondServiceError(c *gin.Context, err error) {
	for _, rule := range serviceErrorRules {
		if errors.Is(err, rule.target) {
			RespondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	RespondError(c, response.CodeInternal, "服务器内部错误", err)
}

// GetContextUint 从上下文读取 uint 值，缺失或类型不符时返回统一错误响应。
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "未登录或登录已过期", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "上下文参数不合法", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "上下文参数不合法", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "上下文参数类型错误", nil)
		return 0, false
	}
}
