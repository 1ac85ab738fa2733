package subscriptions

import "time"

// Subscription mirrors the payment provider's state for a user's recurring
// plan. It is written only from Stripe data (webhook or session sync).
type Subscription struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`

	StripeCustomerID string `gorm:"index"`
	StripePriceID    string
	Status           string `gorm:"type:varchar(30)"`
	CurrentPeriodEnd time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
