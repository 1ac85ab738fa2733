package middleware

import (
	"net/http"
	"time"

	"sponsio/database"
	"sponsio/internal/domain/subscriptions"
	stripestatus "sponsio/internal/infra/stripe"

	"github.com/gin-gonic/gin"
)

func RequireActiveSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var sub subscriptions.Subscription
		if err := database.DB.Where("user_id = ?", userID).First(&sub).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Subscription not found or expired",
			})
			return
		}

		if !stripestatus.IsEntitled(sub.Status) || time.Now().After(sub.CurrentPeriodEnd) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your subscription has expired",
			})
			return
		}

		c.Next()
	}
}
