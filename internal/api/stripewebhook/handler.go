package stripewebhooks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"sponsio/database"
	"sponsio/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func StripeWebhook(c *gin.Context) {
	// Stripe key is required for follow-up API calls (session/subscription fetches).
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_SECRET_KEY not configured"})
		return
	}

	endpointSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		fmt.Println("❌ Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	// At-least-once delivery: a replayed event id is acknowledged without
	// touching anything else.
	fresh, err := markEventSeen(database.DB, event.ID, string(event.Type), payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}
	if !fresh {
		c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		if err := handleCheckoutSessionCompleted(&session); err != nil {
			// Drop the dedupe row so Stripe's retry gets a clean attempt.
			unmarkEvent(database.DB, event.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		markEventProcessed(database.DB, event.ID)
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return

	default:
		// Acknowledge unknown events to avoid retries
		markEventProcessed(database.DB, event.ID)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
}

func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	switch session.Mode {
	case stripe.CheckoutSessionModePayment:
		return handleSlotPaymentCompleted(session)
	case stripe.CheckoutSessionModeSubscription:
		return handleSubscriptionCompleted(session)
	default:
		return nil
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}

// markEventSeen inserts the dedupe row. A unique-constraint conflict means
// the event was already delivered; fresh is false and nothing changed.
func markEventSeen(db *gorm.DB, eventID, eventType string, payload []byte) (bool, error) {
	evt := billing.WebhookEvent{
		Provider:        "stripe",
		ProviderEventID: eventID,
		EventType:       eventType,
		PayloadJSON:     string(payload),
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&evt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func markEventProcessed(db *gorm.DB, eventID string) {
	now := time.Now()
	db.Model(&billing.WebhookEvent{}).
		Where("provider = ? AND provider_event_id = ?", "stripe", eventID).
		Update("processed_at", now)
}

func unmarkEvent(db *gorm.DB, eventID string) {
	db.Where("provider = ? AND provider_event_id = ?", "stripe", eventID).
		Delete(&billing.WebhookEvent{})
}
