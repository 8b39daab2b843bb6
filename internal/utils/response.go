package utils

import "github.com/gin-gonic/gin"

// All endpoints answer with the same envelope: {"success": true, ...} on
// success and {"success": false, "message": ...} on failure.

// OK sends a success envelope with the given extra fields.
func OK(c *gin.Context, status int, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// Data sends a success envelope wrapping a single payload.
func Data(c *gin.Context, status int, data interface{}) {
	OK(c, status, gin.H{"data": data})
}

// Fail sends a failure envelope with a client-facing message.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// AbortFail sends a failure envelope and stops the middleware chain.
func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
