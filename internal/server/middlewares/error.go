package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/bcenhabil/barangaylink-system/pkg/ginx"
)

// ErrorHandler 统一错误处理中间件
// Handler 通过 c.Error 上报业务错误，这里统一按错误码输出
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		ginx.FromError(c, c.Errors.Last().Err)
	}
}
