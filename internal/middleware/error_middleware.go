package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"urlmap-go/internal/apperrors"
	"urlmap-go/internal/i18n"
	"urlmap-go/response"
)

// GlobalErrorMiddleware 全局错误中间件
// AppError 的 Message 为 i18n 消息键，在此统一本地化后输出
func GlobalErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// 如果有错误发生
		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				var appErr *apperrors.AppError
				if errors.As(err.Err, &appErr) {
					msg := i18n.Translate(c.Request.Context(), appErr.Message)
					c.AbortWithStatusJSON(appErr.Code, response.Error(msg))
					return
				}
			}

			// 默认处理未定义的错误
			msg := i18n.Translate(c.Request.Context(), "error.system")
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(msg))
			return
		}
	}
}
