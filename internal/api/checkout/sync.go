package checkout

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"sponsio/database"
	"sponsio/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
)

// POST /subscription/sync
// Fallback for the success redirect: the browser lands back before the
// webhook has necessarily been delivered, so the frontend pushes the
// session id and the server reconciles. Converges with the webhook via
// the same user_id-keyed upsert.
func SyncSubscription(c *gin.Context) {
	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid session_id"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	sess, err := checkoutsession.Get(body.SessionID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkout session not found"})
		return
	}

	// The session must belong to the caller.
	sessionUser := ""
	if sess.Metadata != nil {
		sessionUser = sess.Metadata["user_id"]
	}
	if sessionUser == "" {
		sessionUser = sess.ClientReferenceID
	}
	if sessionUser != strconv.FormatUint(uint64(userID), 10) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Session does not belong to this user"})
		return
	}

	if sess.Subscription == nil || sess.Subscription.ID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Session has no subscription yet"})
		return
	}

	subData, err := subscription.Get(sess.Subscription.ID, nil)
	if err != nil || subData == nil || subData.Items == nil || len(subData.Items.Data) == 0 || subData.Items.Data[0].Price == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
		return
	}

	customerID := ""
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}

	if err := subscriptions.Upsert(
		database.DB,
		userID,
		customerID,
		subData.Items.Data[0].Price.ID,
		string(subData.Status),
		time.Unix(subData.CurrentPeriodEnd, 0),
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(subData.Status)})
}
