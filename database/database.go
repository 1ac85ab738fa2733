package database

import (
	"fmt"
	"log"
	"os"

	"sponsio/internal/domain/ads"
	"sponsio/internal/domain/billing"
	"sponsio/internal/domain/booking"
	"sponsio/internal/domain/subscriptions"
	"sponsio/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Migrate is shared with the test suite, which runs it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&users.VerificationToken{},

		&ads.Category{},
		&ads.AdSlot{},
		&booking.Booking{},

		&subscriptions.Subscription{},
		&billing.WebhookEvent{},
	)
}
