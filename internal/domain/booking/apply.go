package booking

import (
	"fmt"

	"sponsio/internal/domain/ads"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplyPaidSlot records a cleared payment: the slot goes unavailable and
// the booking is upserted, in one transaction. The amount always comes
// from the slot's listed price, the single authoritative source. Replays
// only rewrite buyer_email and amount_paid — an already-approved creative
// survives a late duplicate webhook.
func ApplyPaidSlot(db *gorm.DB, slotID, buyerEmail string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var slot ads.AdSlot
		if err := tx.Where("id = ?", slotID).First(&slot).Error; err != nil {
			return fmt.Errorf("slot %s: %w", slotID, err)
		}

		if err := tx.Model(&ads.AdSlot{}).
			Where("id = ?", slotID).
			Update("is_booked", true).Error; err != nil {
			return err
		}

		b := Booking{
			SlotID:     slotID,
			BuyerEmail: buyerEmail,
			AmountPaid: slot.Price,
			Status:     StatusPending,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"buyer_email", "amount_paid"}),
		}).Create(&b).Error
	})
}

// ApplyApprovedCreative stores an accepted creative and activates the
// booking. It never touches buyer_email, so the email captured at payment
// time stays put.
func ApplyApprovedCreative(db *gorm.DB, slotID, imageURL, link string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var slot ads.AdSlot
		if err := tx.Where("id = ?", slotID).First(&slot).Error; err != nil {
			return fmt.Errorf("slot %s: %w", slotID, err)
		}

		if err := tx.Model(&ads.AdSlot{}).
			Where("id = ?", slotID).
			Update("is_booked", true).Error; err != nil {
			return err
		}

		b := Booking{
			SlotID:     slotID,
			BuyerEmail: "annonceur@pro.com", // placeholder until the webhook fills it in
			AmountPaid: slot.Price,
			AdImage:    &imageURL,
			AdLink:     &link,
			Status:     StatusApproved,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"ad_image", "ad_link", "amount_paid", "status"}),
		}).Create(&b).Error
	})
}
