package utils

import "github.com/gin-gonic/gin"

// Response envelope: {success, data?, message?, count?}.

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONList(c *gin.Context, code int, data interface{}, count int) {
	c.JSON(code, gin.H{"success": true, "data": data, "count": count})
}

func JSONMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": true, "message": message})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}
