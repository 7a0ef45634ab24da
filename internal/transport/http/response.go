package http

import "github.com/gin-gonic/gin"

// 门户 API 的响应体固定为 {message: ...} 或 {error: ...} 两种形状，
// 错误信息不携带内部细节。

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
