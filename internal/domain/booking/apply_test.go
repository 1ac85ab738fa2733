package booking

import (
	"fmt"
	"testing"
	"time"

	"sponsio/internal/domain/ads"
	"sponsio/internal/domain/billing"
	"sponsio/internal/domain/subscriptions"
	"sponsio/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{}, &users.VerificationToken{},
		&ads.Category{}, &ads.AdSlot{}, &Booking{},
		&subscriptions.Subscription{}, &billing.WebhookEvent{},
	))
	return db
}

func seedSlot(t *testing.T, db *gorm.DB, price float64) ads.AdSlot {
	t.Helper()
	s := ads.AdSlot{CreatorID: 1, Date: time.Now().AddDate(0, 0, 7), Price: price, DisplayType: ads.DefaultDisplayType}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func TestApplyPaidSlotBooksAndCreates(t *testing.T) {
	db := setupDB(t)
	slot := seedSlot(t, db, 49)

	require.NoError(t, ApplyPaidSlot(db, slot.ID, "buyer@agency.test"))

	var stored ads.AdSlot
	require.NoError(t, db.First(&stored, "id = ?", slot.ID).Error)
	assert.True(t, stored.IsBooked)

	var b Booking
	require.NoError(t, db.First(&b, "slot_id = ?", slot.ID).Error)
	assert.Equal(t, "buyer@agency.test", b.BuyerEmail)
	assert.Equal(t, float64(49), b.AmountPaid, "amount comes from the slot's listed price")
	assert.Equal(t, StatusPending, b.Status)
	assert.False(t, b.Approved())
}

func TestApplyPaidSlotIsIdempotent(t *testing.T) {
	db := setupDB(t)
	slot := seedSlot(t, db, 49)

	require.NoError(t, ApplyPaidSlot(db, slot.ID, "buyer@agency.test"))
	require.NoError(t, ApplyPaidSlot(db, slot.ID, "buyer@agency.test"))

	var count int64
	db.Model(&Booking{}).Where("slot_id = ?", slot.ID).Count(&count)
	assert.EqualValues(t, 1, count, "replayed confirmation must not double-create")

	var stored ads.AdSlot
	require.NoError(t, db.First(&stored, "id = ?", slot.ID).Error)
	assert.True(t, stored.IsBooked)
}

func TestReplayedPaymentKeepsApprovedCreative(t *testing.T) {
	db := setupDB(t)
	slot := seedSlot(t, db, 49)

	require.NoError(t, ApplyPaidSlot(db, slot.ID, "buyer@agency.test"))
	require.NoError(t, ApplyApprovedCreative(db, slot.ID, "https://cdn.test/ad.png", "https://brand.test"))

	// Stripe redelivers the original confirmation after approval.
	require.NoError(t, ApplyPaidSlot(db, slot.ID, "buyer@agency.test"))

	var b Booking
	require.NoError(t, db.First(&b, "slot_id = ?", slot.ID).Error)
	assert.Equal(t, StatusApproved, b.Status)
	require.NotNil(t, b.AdImage)
	assert.Equal(t, "https://cdn.test/ad.png", *b.AdImage)
	assert.True(t, b.Approved())
}

func TestApplyApprovedCreativeKeepsBuyerEmail(t *testing.T) {
	db := setupDB(t)
	slot := seedSlot(t, db, 120)

	require.NoError(t, ApplyPaidSlot(db, slot.ID, "buyer@agency.test"))
	require.NoError(t, ApplyApprovedCreative(db, slot.ID, "https://cdn.test/ad.png", "https://brand.test"))

	var b Booking
	require.NoError(t, db.First(&b, "slot_id = ?", slot.ID).Error)
	assert.Equal(t, "buyer@agency.test", b.BuyerEmail)
	assert.Equal(t, float64(120), b.AmountPaid)
	require.NotNil(t, b.AdLink)
	assert.Equal(t, "https://brand.test", *b.AdLink)
}

func TestApplyPaidSlotUnknownSlot(t *testing.T) {
	db := setupDB(t)

	err := ApplyPaidSlot(db, "missing", "buyer@agency.test")
	require.Error(t, err)

	var count int64
	db.Model(&Booking{}).Count(&count)
	assert.EqualValues(t, 0, count, "no partial state on failure")
}
