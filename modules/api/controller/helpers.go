package controller

import (
	"github.com/gin-gonic/gin"
)

// JSONErr aborts with the error body the storefront clients expect.
func JSONErr(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}

func JSONBindErr(c *gin.Context, status int, message string, bindErr error) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":  "error",
		"message": message,
		"details": bindErr.Error(),
	})
}
