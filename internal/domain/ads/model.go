package ads

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultDisplayType = "Bannière Standard"

// AdSlot is a sellable advertising period owned by a creator. SortIndex is
// a display rank only; positions are rewritten wholesale by the board.
type AdSlot struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatorID uint   `gorm:"index;not null" json:"creator_id"`

	Date        time.Time  `gorm:"not null" json:"date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Price       float64    `gorm:"not null" json:"price"`
	DisplayType string     `gorm:"not null" json:"display_type"`
	Title       *string    `json:"title,omitempty"`

	IsBooked bool `gorm:"not null;default:false" json:"is_booked"`

	CategoryID *string `gorm:"index" json:"category_id,omitempty"`
	SortIndex  int     `gorm:"not null;default:0" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *AdSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.DisplayType == "" {
		s.DisplayType = DefaultDisplayType
	}
	return nil
}

// Category groups a creator's slots on the board. Deleting a category
// reassigns its slots to uncategorized; it never deletes slots.
type Category struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
