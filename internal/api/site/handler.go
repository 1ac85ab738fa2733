package site

import (
	"net/http"

	"sponsio/config"
	"sponsio/database"
	"sponsio/internal/domain/ads"
	"sponsio/internal/domain/booking"
	"sponsio/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type publicSlotDTO struct {
	ads.AdSlot
	IsAvailable bool `json:"is_available"`
}

// GET /book/:creatorId
// Public booking page data: the creator's identity plus their slots in
// date order. Booked slots stay listed so the page can grey them out.
func GetBookingPage(c *gin.Context) {
	creatorID := c.Param("creatorId")

	var creator users.User
	if err := database.DB.First(&creator, "id = ?", creatorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}

	var slots []ads.AdSlot
	if err := database.DB.
		Where("creator_id = ?", creator.ID).
		Order("date ASC").
		Find(&slots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load slots"})
		return
	}

	out := make([]publicSlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, publicSlotDTO{AdSlot: s, IsAvailable: !s.IsBooked})
	}

	name := creator.Email
	if creator.BusinessName != nil && *creator.BusinessName != "" {
		name = *creator.BusinessName
	}

	c.JSON(http.StatusOK, gin.H{
		"creator": gin.H{"id": creator.ID, "name": name},
		"slots":   out,
	})
}

// GET /api/click/:slotId
// Counts the click and forwards to the advertiser. Any failure falls back
// to the app's home page so the visitor never sees an error.
func TrackClick(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	slotID := c.Param("slotId")

	var b booking.Booking
	err := database.DB.First(&b, "slot_id = ?", slotID).Error
	if err != nil || !b.Approved() || b.AdLink == nil || *b.AdLink == "" {
		c.Redirect(http.StatusFound, config.APP_URL)
		return
	}

	database.DB.Model(&booking.Booking{}).
		Where("slot_id = ?", slotID).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))

	c.Redirect(http.StatusFound, *b.AdLink)
}
