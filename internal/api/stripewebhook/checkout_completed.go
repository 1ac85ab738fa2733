package stripewebhooks

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"sponsio/database"
	"sponsio/internal/domain/ads"
	"sponsio/internal/domain/booking"
	"sponsio/internal/domain/subscriptions"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
)

const fallbackBuyerEmail = "inconnu@email.com"

// handleSlotPaymentCompleted books the slot named by the session's
// correlation metadata. The stored amount is the slot's listed price;
// Stripe's total is only compared for logging.
func handleSlotPaymentCompleted(session *stripe.CheckoutSession) error {
	slotID := ""
	if session.Metadata != nil {
		slotID = session.Metadata["slot_id"]
	}
	if slotID == "" {
		// Not one of ours; acknowledge.
		return nil
	}

	buyerEmail := fallbackBuyerEmail
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		buyerEmail = session.CustomerDetails.Email
	}

	var slot ads.AdSlot
	if err := database.DB.Where("id = ?", slotID).First(&slot).Error; err != nil {
		return fmt.Errorf("slot not found for session %s: %w", session.ID, err)
	}
	if session.AmountTotal != int64(slot.Price*100) {
		log.Printf("[STRIPE WEBHOOK] session %s total %d differs from slot price %.2f€; storing slot price",
			session.ID, session.AmountTotal, slot.Price)
	}

	if err := booking.ApplyPaidSlot(database.DB, slotID, buyerEmail); err != nil {
		return err
	}

	log.Printf("[STRIPE WEBHOOK] booking recorded for slot %s (%.2f€)", slotID, slot.Price)
	return nil
}

func handleSubscriptionCompleted(session *stripe.CheckoutSession) error {
	// Fetch the full session so subscription and customer are expanded.
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}

	subData, err := subscription.Get(fullSession.Subscription.ID, nil)
	if err != nil || subData == nil || subData.Items == nil || len(subData.Items.Data) == 0 || subData.Items.Data[0].Price == nil {
		return fmt.Errorf("failed to fetch subscription items: %w", err)
	}

	userID, err := userIDFromSessionOrRef(fullSession)
	if err != nil {
		return err
	}

	customerID := ""
	if fullSession.Customer != nil {
		customerID = fullSession.Customer.ID
	}

	return subscriptions.Upsert(
		database.DB,
		userID,
		customerID,
		subData.Items.Data[0].Price.ID,
		string(subData.Status),
		time.Unix(subData.CurrentPeriodEnd, 0),
	)
}

func userIDFromSessionOrRef(session *stripe.CheckoutSession) (uint, error) {
	userIDStr := ""
	if session.Metadata != nil {
		userIDStr = session.Metadata["user_id"]
	}
	if userIDStr == "" {
		userIDStr = session.ClientReferenceID
	}
	if userIDStr == "" {
		return 0, errors.New("missing user_id (metadata.user_id or client_reference_id)")
	}

	uid64, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user_id %q: %w", userIDStr, err)
	}
	return uint(uid64), nil
}
