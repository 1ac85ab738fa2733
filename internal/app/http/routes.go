package routes

import (
	adminapi "sponsio/internal/api/admin"
	"sponsio/internal/api/assets"
	authapi "sponsio/internal/api/auth"
	"sponsio/internal/api/checkout"
	"sponsio/internal/api/pro"
	siteapi "sponsio/internal/api/site"
	"sponsio/internal/api/slots"
	stripewebhooks "sponsio/internal/api/stripewebhook"
	"sponsio/internal/api/users"
	"sponsio/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine) {
	// Webhook first: raw body, no sanitization, signature is the auth.
	r.POST("/webhook", stripewebhooks.StripeWebhook)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public embed surface. No sanitization: these are GETs serving HTML
	// and redirects.
	r.GET("/book/:creatorId", siteapi.GetBookingPage)
	r.GET("/widget/:slotId", siteapi.GetWidget)
	r.GET("/api/click/:slotId", siteapi.TrackClick)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", authapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Buyers check out without an account.
	public.POST("/checkout/slot", checkout.CreateSlotCheckoutSession)

	// Creative upload is open to the paying buyer; an authenticated admin
	// gets the moderation bypass.
	creative := r.Group("/")
	creative.Use(middleware.OptionalAuthMiddleware())
	creative.POST("/slots/:id/assets", assets.UploadCreative)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)
	auth.POST("/business/verify", users.VerifyBusiness)

	auth.GET("/board", slots.GetBoard)
	auth.POST("/slots", slots.CreateSlot)
	auth.DELETE("/slots/:id", slots.DeleteSlot)
	auth.PUT("/slots/reorder", slots.ReorderSlots)
	auth.POST("/categories", slots.CreateCategory)
	auth.DELETE("/categories/:id", slots.DeleteCategory)

	auth.POST("/checkout/subscription", checkout.CreateSubscriptionSession)
	auth.POST("/subscription/sync", checkout.SyncSubscription)

	// Subscribed users
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireActiveSubscription())
	subscribed.GET("/pro/summary", pro.GetSummary)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	admin.GET("/stats", adminapi.GetStats)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/bookings", adminapi.ListAllBookings)
}
