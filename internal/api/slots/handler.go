package slots

import (
	"errors"
	"net/http"
	"time"

	"sponsio/database"
	"sponsio/internal/domain/access"
	"sponsio/internal/domain/ads"
	"sponsio/internal/domain/booking"
	"sponsio/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errNotOwner = errors.New("not owner")

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// ------------------------------
// GET /board
// ------------------------------
func GetBoard(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	out, err := loadBoard(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
		return
	}

	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /slots
// ------------------------------
func CreateSlot(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if !access.CanPublish(&user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "business_verification_required"})
		return
	}

	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}
	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		ed, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
			return
		}
		endDate = &ed
	}

	slot := ads.AdSlot{
		CreatorID:   userID,
		Price:       req.Price,
		Date:        date,
		EndDate:     endDate,
		DisplayType: req.DisplayType,
		Title:       req.Title,
		SortIndex:   nextSortIndex(database.DB, userID),
	}
	if err := database.DB.Create(&slot).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create slot"})
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// ------------------------------
// DELETE /slots/:id
// ------------------------------
func DeleteSlot(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&ads.AdSlot{}, "id = ? AND creator_id = ?", id, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// Booking rows ride along with their slot.
		return tx.Where("slot_id = ?", id).Delete(&booking.Booking{}).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete slot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ------------------------------
// PUT /slots/reorder
// ------------------------------
// Applies a whole board drop in one transaction: every row carries its new
// position and column. Rows referencing slots or categories the caller does
// not own roll the whole batch back.
func ReorderSlots(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items required"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var catIDs []string
		if err := tx.Model(&ads.Category{}).Where("user_id = ?", userID).Pluck("id", &catIDs).Error; err != nil {
			return err
		}
		owned := make(map[string]bool, len(catIDs))
		for _, id := range catIDs {
			owned[id] = true
		}

		for _, item := range req.Items {
			ref := item.Ref()
			var categoryID interface{}
			if id, isCat := ref.CategoryID(); isCat {
				if !owned[id] {
					return errNotOwner
				}
				categoryID = id
			}

			res := tx.Model(&ads.AdSlot{}).
				Where("id = ? AND creator_id = ?", item.ID, userID).
				Updates(map[string]interface{}{
					"sort_index":  item.Order,
					"category_id": categoryID,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errNotOwner
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, errNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own one of the targeted slots or categories"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder slots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// POST /categories
// ------------------------------
// Returns the created row so optimistic clients can swap their placeholder
// id for the real one.
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	cat := ads.Category{UserID: userID, Name: req.Name}
	if err := database.DB.Create(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, cat)
}

// ------------------------------
// DELETE /categories/:id
// ------------------------------
func DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var cat ads.Category
		if err := tx.First(&cat, "id = ?", id).Error; err != nil {
			return err
		}
		if cat.UserID != userID {
			return errNotOwner
		}

		// Slots fall back to the uncategorized column; they are never deleted.
		if err := tx.Model(&ads.AdSlot{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&cat).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if errors.Is(err, errNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
