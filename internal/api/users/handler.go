package users

import (
	"net/http"
	"time"

	"sponsio/database"
	"sponsio/internal/domain/access"
	"sponsio/internal/domain/subscriptions"
	"sponsio/internal/domain/users"
	stripestatus "sponsio/internal/infra/stripe"

	"github.com/gin-gonic/gin"
)

type MeDTO struct {
	ID               uint    `json:"id"`
	Email            string  `json:"email"`
	AuthProvider     string  `json:"auth_provider"`
	IsAdmin          bool    `json:"is_admin"`
	IsVerified       bool    `json:"is_verified"`
	BusinessVerified bool    `json:"business_verified"`
	BusinessName     *string `json:"business_name,omitempty"`
	CanPublish       bool    `json:"can_publish"`
	Subscription     *SubDTO `json:"subscription,omitempty"`
}

type SubDTO struct {
	Status           string `json:"status"`
	CurrentPeriodEnd string `json:"current_period_end"`
}

// GET /me
func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	out := MeDTO{
		ID:               user.ID,
		Email:            user.Email,
		AuthProvider:     user.AuthProvider,
		IsAdmin:          user.IsAdmin,
		IsVerified:       user.IsVerified,
		BusinessVerified: user.BusinessVerified,
		BusinessName:     user.BusinessName,
		CanPublish:       access.CanPublish(&user),
	}

	var sub subscriptions.Subscription
	if err := database.DB.Where("user_id = ?", user.ID).First(&sub).Error; err == nil {
		out.Subscription = &SubDTO{
			Status:           stripestatus.NormalizeStatus(sub.Status),
			CurrentPeriodEnd: sub.CurrentPeriodEnd.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, out)
}

// POST /business/verify
// Sellers must register a business identity before their booking page goes
// live. A SIRET needs at least 9 digits (SIREN prefix).
func VerifyBusiness(c *gin.Context) {
	var input struct {
		BusinessName string `json:"business_name" binding:"required"`
		Siret        string `json:"siret" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(input.Siret) < 9 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid SIRET"})
		return
	}

	userID := c.GetUint("user_id")
	res := database.DB.Model(&users.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"business_verified": true,
			"business_name":     input.BusinessName,
			"siret":             input.Siret,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify business"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}
