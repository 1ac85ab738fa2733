package admin

import (
	"net/http"

	"sponsio/database"
	"sponsio/internal/domain/ads"
	"sponsio/internal/domain/booking"
	"sponsio/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type statsDTO struct {
	TotalUsers   int64   `json:"total_users"`
	TotalSlots   int64   `json:"total_slots"`
	BookedSlots  int64   `json:"booked_slots"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalClicks  int64   `json:"total_clicks"`
}

// GET /admin/stats
func GetStats(c *gin.Context) {
	var stats statsDTO

	database.DB.Model(&users.User{}).Count(&stats.TotalUsers)
	database.DB.Model(&ads.AdSlot{}).Count(&stats.TotalSlots)
	database.DB.Model(&ads.AdSlot{}).Where("is_booked = ?", true).Count(&stats.BookedSlots)

	var agg struct {
		Revenue float64
		Clicks  int64
	}
	if err := database.DB.Model(&booking.Booking{}).
		Select("COALESCE(SUM(amount_paid), 0) AS revenue, COALESCE(SUM(clicks), 0) AS clicks").
		Scan(&agg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	stats.TotalRevenue = agg.Revenue
	stats.TotalClicks = agg.Clicks

	c.JSON(http.StatusOK, stats)
}

type adminUserDTO struct {
	ID               uint    `json:"id"`
	Email            string  `json:"email"`
	AuthProvider     string  `json:"auth_provider"`
	IsAdmin          bool    `json:"is_admin"`
	IsVerified       bool    `json:"is_verified"`
	BusinessVerified bool    `json:"business_verified"`
	BusinessName     *string `json:"business_name"`
}

// GET /admin/users
func ListAllUsers(c *gin.Context) {
	var list []users.User
	if err := database.DB.Order("id ASC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]adminUserDTO, 0, len(list))
	for _, u := range list {
		out = append(out, adminUserDTO{
			ID:               u.ID,
			Email:            u.Email,
			AuthProvider:     u.AuthProvider,
			IsAdmin:          u.IsAdmin,
			IsVerified:       u.IsVerified,
			BusinessVerified: u.BusinessVerified,
			BusinessName:     u.BusinessName,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GET /admin/bookings
func ListAllBookings(c *gin.Context) {
	var list []booking.Booking
	if err := database.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
		return
	}
	c.JSON(http.StatusOK, list)
}
