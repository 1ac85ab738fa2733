package pro

import (
	"net/http"

	"sponsio/database"
	"sponsio/internal/domain/booking"

	"github.com/gin-gonic/gin"
)

type summaryDTO struct {
	SlotCount    int64   `json:"slot_count"`
	BookedSlots  int64   `json:"booked_slots"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalClicks  int64   `json:"total_clicks"`
}

// GET /pro/summary
// Revenue and click rollup for the authenticated creator's inventory.
// Sits behind the subscription guard.
func GetSummary(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var out summaryDTO

	database.DB.Table("ad_slots").Where("creator_id = ?", userID).Count(&out.SlotCount)
	database.DB.Table("ad_slots").Where("creator_id = ? AND is_booked = ?", userID, true).Count(&out.BookedSlots)

	var agg struct {
		Revenue float64
		Clicks  int64
	}
	if err := database.DB.Model(&booking.Booking{}).
		Joins("JOIN ad_slots ON ad_slots.id = bookings.slot_id").
		Where("ad_slots.creator_id = ?", userID).
		Select("COALESCE(SUM(bookings.amount_paid), 0) AS revenue, COALESCE(SUM(bookings.clicks), 0) AS clicks").
		Scan(&agg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}
	out.TotalRevenue = agg.Revenue
	out.TotalClicks = agg.Clicks

	c.JSON(http.StatusOK, out)
}
