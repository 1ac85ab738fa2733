package booking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

// Booking is the fulfillment record of a sold slot. It exists only once
// payment has cleared; it stays PENDING until an approved creative arrives.
type Booking struct {
	ID     string `gorm:"primaryKey" json:"id"`
	SlotID string `gorm:"uniqueIndex;not null" json:"slot_id"`

	BuyerEmail string  `gorm:"not null" json:"buyer_email"`
	AmountPaid float64 `gorm:"not null" json:"amount_paid"`
	Clicks     int64   `gorm:"not null;default:0" json:"clicks"`

	AdImage *string `json:"ad_image,omitempty"`
	AdLink  *string `json:"ad_link,omitempty"`

	Status string `gorm:"type:varchar(16);not null;default:'PENDING'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// Approved reports whether the booking carries a served creative.
func (b *Booking) Approved() bool {
	return b.Status == StatusApproved && b.AdImage != nil && *b.AdImage != ""
}
