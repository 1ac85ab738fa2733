package checkout

import (
	"fmt"
	"net/http"
	"os"

	"sponsio/config"
	"sponsio/database"
	"sponsio/internal/domain/ads"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// The recurring plan is a single fixed product; there is no plan catalog.
const subscriptionPriceCents = 2900

// POST /checkout/slot
// Public: buyers do not need an account to purchase a slot. The price the
// session charges always comes from the slot row, never from the request.
func CreateSlotCheckoutSession(c *gin.Context) {
	var body struct {
		SlotID string `json:"slot_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SlotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid slot_id"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	var slot ads.AdSlot
	if err := database.DB.Where("id = ?", body.SlotID).First(&slot).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
		return
	}
	if slot.IsBooked {
		c.JSON(http.StatusConflict, gin.H{"error": "Slot already booked"})
		return
	}

	appURL := config.APP_URL

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(appURL + "/success?slotId=" + slot.ID),
		CancelURL:  stripe.String(appURL),

		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyEUR)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Sponsoring : " + slot.DisplayType),
						Description: stripe.String(fmt.Sprintf("Réservation pour le créneau du slot #%s", slot.ID)),
					},
					UnitAmount: stripe.Int64(int64(slot.Price * 100)),
				},
				Quantity: stripe.Int64(1),
			},
		},

		Metadata: map[string]string{
			"slot_id": slot.ID,
		},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

// POST /checkout/subscription
func CreateSubscriptionSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}
	email := c.GetString("email")

	appURL := config.APP_URL

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(appURL + "/pricing?success=true"),
		CancelURL:  stripe.String(appURL + "/pricing?canceled=true"),

		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(email),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyEUR)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Abonnement Pro"),
						Description: stripe.String("Accès complet aux fonctionnalités Pro"),
					},
					UnitAmount: stripe.Int64(subscriptionPriceCents),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(userID)),
		Metadata: map[string]string{
			"user_id": fmt.Sprint(userID),
		},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}
