package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipe-pantry/internal/core/auth"
	"recipe-pantry/internal/pkg/common"
)

// UserIDKey gin context 中已驗證使用者 ID 的鍵
const UserIDKey = "user_id"

// Auth 認證中間件
// 驗證 Authorization: Bearer <token>，通過後把使用者 ID 放進 context
func Auth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    common.ErrCodeUnauthorized,
				"message": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    common.ErrCodeUnauthorized,
				"message": "invalid authorization header",
			})
			return
		}

		userID, err := tokens.VerifyAccess(parts[1])
		if err != nil {
			// TOKEN_EXPIRED / INVALID_TOKEN 分開回報
			var customErr *common.CustomError
			if errors.As(err, &customErr) {
				c.AbortWithStatusJSON(customErr.Status, gin.H{
					"code":    customErr.Code,
					"message": customErr.Message,
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    common.ErrCodeUnauthorized,
				"message": "invalid token",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID 從 context 取出已驗證使用者 ID
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
