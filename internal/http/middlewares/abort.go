package middlewares

import "github.com/gin-gonic/gin"

// abortJSON writes the shared error envelope. It mirrors handlers.RespondError
// so middleware rejections look the same as handler ones.
func abortJSON(c *gin.Context, status int, code, msg string) {
	body := gin.H{
		"error": msg,
		"code":  code,
	}
	if id, ok := RequestIDFromContext(c); ok {
		body["requestId"] = id
	}
	c.AbortWithStatusJSON(status, body)
}
