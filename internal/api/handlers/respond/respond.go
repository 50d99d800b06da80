package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-pantry/internal/pkg/common"
)

// Error 將服務層錯誤映射成統一的錯誤響應
// CustomError 帶自己的狀態碼與錯誤代碼，其餘一律 500
// Details 只在 debug 模式下帶出，避免外洩內部細節
func Error(c *gin.Context, err error, debug bool) {
	var customErr *common.CustomError
	if errors.As(err, &customErr) {
		resp := common.ErrorResponse{
			Code:    customErr.Code,
			Message: customErr.Message,
		}
		if debug && customErr.Err != nil {
			resp.Details = customErr.Err.Error()
		}
		c.JSON(customErr.Status, resp)
		return
	}

	resp := common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "服務器內部錯誤",
	}
	if debug {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

// BadRequest 輸入錯誤的快捷方式
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, common.ErrorResponse{
		Code:    common.ErrCodeInvalidRequest,
		Message: message,
	})
}

// NotFound 資源不存在的快捷方式
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, common.ErrorResponse{
		Code:    common.ErrCodeNotFound,
		Message: message,
	})
}
