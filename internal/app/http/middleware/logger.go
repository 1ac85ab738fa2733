package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs method, path, status and latency without request
// bodies or emails.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		if uid, exists := c.Get("user_id"); exists {
			log.Printf("[%s] %s %s | %d | %v | user_id=%v",
				method, path, c.ClientIP(), statusCode, latency, uid)
		} else {
			log.Printf("[%s] %s %s | %d | %v",
				method, path, c.ClientIP(), statusCode, latency)
		}
	}
}
