package subscriptions

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Upsert mirrors the provider's subscription state onto the user's row,
// keyed on user_id so webhook replays and session syncs converge.
func Upsert(db *gorm.DB, userID uint, customerID, priceID, status string, periodEnd time.Time) error {
	sub := Subscription{
		UserID:           userID,
		StripeCustomerID: customerID,
		StripePriceID:    priceID,
		Status:           status,
		CurrentPeriodEnd: periodEnd,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stripe_customer_id", "stripe_price_id", "status", "current_period_end"}),
	}).Create(&sub).Error
}
