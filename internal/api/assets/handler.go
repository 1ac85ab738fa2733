package assets

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"sponsio/database"
	"sponsio/internal/domain/access"
	"sponsio/internal/domain/ads"
	"sponsio/internal/domain/booking"
	"sponsio/internal/domain/users"
	"sponsio/internal/infra/moderation"
	"sponsio/internal/infra/storage"

	"github.com/gin-gonic/gin"
)

// Wired in main at startup.
var (
	Moderator moderation.Classifier
	Uploader  storage.Uploader
)

const maxImageBytes = 5 << 20

// POST /slots/:id/assets  (multipart: image, link)
// Auth is optional: the buyer usually has no account. An authenticated
// admin skips the content classifier.
func UploadCreative(c *gin.Context) {
	slotID := c.Param("id")

	var slot ads.AdSlot
	if err := database.DB.Where("id = ?", slotID).First(&slot).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
		return
	}

	link := strings.TrimSpace(c.PostForm("link"))
	if !isValidAdLink(link) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing link"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image too large (max 5MB)"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil || int64(len(image)) > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image too large (max 5MB)"})
		return
	}

	if !skipsModeration(c) {
		if Moderator == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Moderation unavailable"})
			return
		}
		safe, err := Moderator.IsSafe(c.Request.Context(), image, mimeType)
		if err != nil {
			log.Printf("[ASSETS] moderation error for slot %s: %v", slotID, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Moderation unavailable"})
			return
		}
		if !safe {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "moderation_rejected"})
			return
		}
	}

	if Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage unavailable"})
		return
	}
	imageURL, err := Uploader.Upload(c.Request.Context(), image)
	if err != nil {
		log.Printf("[ASSETS] upload error for slot %s: %v", slotID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	if err := booking.ApplyApprovedCreative(database.DB, slotID, imageURL, link); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save creative"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": imageURL, "status": booking.StatusApproved})
}

// skipsModeration is true only for an authenticated admin.
func skipsModeration(c *gin.Context) bool {
	userID := c.GetUint("user_id")
	if userID == 0 {
		return false
	}
	var u users.User
	if err := database.DB.First(&u, userID).Error; err != nil {
		return false
	}
	return access.SkipsModeration(&u)
}

func isValidAdLink(link string) bool {
	if link == "" {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
