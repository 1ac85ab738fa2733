package slots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sponsio/database"
	"sponsio/internal/domain/ads"
	"sponsio/internal/domain/board"
	"sponsio/internal/domain/booking"
	"sponsio/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	return db
}

func seedCreator(t *testing.T, db *gorm.DB, email string) users.User {
	t.Helper()
	u := users.User{Email: email, AuthProvider: "local", IsVerified: true, BusinessVerified: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedSlot(t *testing.T, db *gorm.DB, creatorID uint, sortIndex int) ads.AdSlot {
	t.Helper()
	s := ads.AdSlot{
		CreatorID:   creatorID,
		Date:        time.Now().AddDate(0, 0, 7),
		Price:       49,
		DisplayType: ads.DefaultDisplayType,
		SortIndex:   sortIndex,
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func perform(handler gin.HandlerFunc, userID uint, method, target string, body interface{}, params gin.Params) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if userID != 0 {
		c.Set("user_id", userID)
	}

	handler(c)
	return w
}

func TestReorderPersistsBoardDrop(t *testing.T) {
	db := setupDB(t)
	creator := seedCreator(t, db, "creator@sponsio.test")

	cat := ads.Category{UserID: creator.ID, Name: "Newsletter"}
	require.NoError(t, db.Create(&cat).Error)

	s0 := seedSlot(t, db, creator.ID, 0)
	s1 := seedSlot(t, db, creator.ID, 1)
	s2 := seedSlot(t, db, creator.ID, 2)

	// Drive the drop through the reducer, exactly as the board does.
	b := board.New([]board.Slot{
		{ID: s0.ID, Category: board.Uncategorized()},
		{ID: s1.ID, Category: board.Uncategorized()},
		{ID: s2.ID, Category: board.InCategory(cat.ID)},
	}, []board.Category{{ID: cat.ID, Name: cat.Name}})
	b.DragOverSlot(s0.ID, s2.ID) // s0 joins the category column, last place

	items := make([]ReorderItem, 0, 3)
	for _, p := range b.Drop() {
		item := ReorderItem{ID: p.SlotID, Order: p.Position}
		if id, ok := p.Category.CategoryID(); ok {
			item.CategoryID = &id
		}
		items = append(items, item)
	}

	w := perform(ReorderSlots, creator.ID, http.MethodPut, "/slots/reorder", ReorderRequest{Items: items}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored []ads.AdSlot
	require.NoError(t, db.Where("creator_id = ?", creator.ID).Order("sort_index ASC").Find(&stored).Error)
	require.Len(t, stored, 3)
	assert.Equal(t, []string{s1.ID, s2.ID, s0.ID}, []string{stored[0].ID, stored[1].ID, stored[2].ID})
	for i, s := range stored {
		assert.Equal(t, i, s.SortIndex)
	}
	require.NotNil(t, stored[2].CategoryID)
	assert.Equal(t, cat.ID, *stored[2].CategoryID, "dragged slot adopted its neighbor's column")
}

func TestReorderNormalizesLegacySentinel(t *testing.T) {
	db := setupDB(t)
	creator := seedCreator(t, db, "creator@sponsio.test")
	cat := ads.Category{UserID: creator.ID, Name: "Old"}
	require.NoError(t, db.Create(&cat).Error)

	s := seedSlot(t, db, creator.ID, 0)
	require.NoError(t, db.Model(&ads.AdSlot{}).Where("id = ?", s.ID).Update("category_id", cat.ID).Error)

	sentinel := "uncategorized"
	w := perform(ReorderSlots, creator.ID, http.MethodPut, "/slots/reorder", ReorderRequest{
		Items: []ReorderItem{{ID: s.ID, Order: 0, CategoryID: &sentinel}},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored ads.AdSlot
	require.NoError(t, db.First(&stored, "id = ?", s.ID).Error)
	assert.Nil(t, stored.CategoryID)
}

func TestReorderRejectsForeignSlot(t *testing.T) {
	db := setupDB(t)
	owner := seedCreator(t, db, "owner@sponsio.test")
	intruder := seedCreator(t, db, "intruder@sponsio.test")

	s := seedSlot(t, db, owner.ID, 0)
	mine := seedSlot(t, db, intruder.ID, 0)

	w := perform(ReorderSlots, intruder.ID, http.MethodPut, "/slots/reorder", ReorderRequest{
		Items: []ReorderItem{
			{ID: mine.ID, Order: 5},
			{ID: s.ID, Order: 0},
		},
	}, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// The whole batch rolled back, including the intruder's own row.
	var stored ads.AdSlot
	require.NoError(t, db.First(&stored, "id = ?", mine.ID).Error)
	assert.Equal(t, 0, stored.SortIndex)
}

func TestReorderRejectsForeignCategory(t *testing.T) {
	db := setupDB(t)
	owner := seedCreator(t, db, "owner@sponsio.test")
	intruder := seedCreator(t, db, "intruder@sponsio.test")

	theirCat := ads.Category{UserID: owner.ID, Name: "Theirs"}
	require.NoError(t, db.Create(&theirCat).Error)
	mine := seedSlot(t, db, intruder.ID, 0)

	w := perform(ReorderSlots, intruder.ID, http.MethodPut, "/slots/reorder", ReorderRequest{
		Items: []ReorderItem{{ID: mine.ID, Order: 0, CategoryID: &theirCat.ID}},
	}, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	var stored ads.AdSlot
	require.NoError(t, db.First(&stored, "id = ?", mine.ID).Error)
	assert.Nil(t, stored.CategoryID)
}

func TestDeleteCategoryReassignsSlots(t *testing.T) {
	db := setupDB(t)
	creator := seedCreator(t, db, "creator@sponsio.test")

	cat := ads.Category{UserID: creator.ID, Name: "Doomed"}
	require.NoError(t, db.Create(&cat).Error)
	s1 := seedSlot(t, db, creator.ID, 0)
	s2 := seedSlot(t, db, creator.ID, 1)
	require.NoError(t, db.Model(&ads.AdSlot{}).Where("id IN ?", []string{s1.ID, s2.ID}).Update("category_id", cat.ID).Error)

	w := perform(DeleteCategory, creator.ID, http.MethodDelete, "/categories/"+cat.ID, nil,
		gin.Params{{Key: "id", Value: cat.ID}})
	require.Equal(t, http.StatusOK, w.Code)

	var catCount, slotCount int64
	db.Model(&ads.Category{}).Count(&catCount)
	db.Model(&ads.AdSlot{}).Count(&slotCount)
	assert.EqualValues(t, 0, catCount)
	assert.EqualValues(t, 2, slotCount, "deleting a category must not delete slots")

	var orphaned int64
	db.Model(&ads.AdSlot{}).Where("category_id IS NULL").Count(&orphaned)
	assert.EqualValues(t, 2, orphaned)
}

func TestDeleteCategoryOwnership(t *testing.T) {
	db := setupDB(t)
	owner := seedCreator(t, db, "owner@sponsio.test")
	intruder := seedCreator(t, db, "intruder@sponsio.test")

	cat := ads.Category{UserID: owner.ID, Name: "Protected"}
	require.NoError(t, db.Create(&cat).Error)

	w := perform(DeleteCategory, intruder.ID, http.MethodDelete, "/categories/"+cat.ID, nil,
		gin.Params{{Key: "id", Value: cat.ID}})
	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.Model(&ads.Category{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteSlotCascadesToBooking(t *testing.T) {
	db := setupDB(t)
	creator := seedCreator(t, db, "creator@sponsio.test")
	s := seedSlot(t, db, creator.ID, 0)
	require.NoError(t, db.Create(&booking.Booking{SlotID: s.ID, BuyerEmail: "buyer@x.test", AmountPaid: 49}).Error)

	w := perform(DeleteSlot, creator.ID, http.MethodDelete, "/slots/"+s.ID, nil,
		gin.Params{{Key: "id", Value: s.ID}})
	require.Equal(t, http.StatusOK, w.Code)

	var bookings int64
	db.Model(&booking.Booking{}).Count(&bookings)
	assert.EqualValues(t, 0, bookings)
}

func TestDeleteSlotRejectsNonOwner(t *testing.T) {
	db := setupDB(t)
	owner := seedCreator(t, db, "owner@sponsio.test")
	intruder := seedCreator(t, db, "intruder@sponsio.test")
	s := seedSlot(t, db, owner.ID, 0)

	w := perform(DeleteSlot, intruder.ID, http.MethodDelete, "/slots/"+s.ID, nil,
		gin.Params{{Key: "id", Value: s.ID}})
	require.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&ads.AdSlot{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateSlotRequiresVerifiedBusiness(t *testing.T) {
	db := setupDB(t)
	u := users.User{Email: "fresh@sponsio.test", AuthProvider: "local", IsVerified: true}
	require.NoError(t, db.Create(&u).Error)

	req := CreateSlotRequest{Price: 49, Date: "2026-09-15"}
	w := perform(CreateSlot, u.ID, http.MethodPost, "/slots", req, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.NoError(t, db.Model(&users.User{}).Where("id = ?", u.ID).Update("business_verified", true).Error)
	w = perform(CreateSlot, u.ID, http.MethodPost, "/slots", req, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var slot ads.AdSlot
	require.NoError(t, db.First(&slot, "creator_id = ?", u.ID).Error)
	assert.Equal(t, ads.DefaultDisplayType, slot.DisplayType)
	assert.False(t, slot.IsBooked)
}

func TestGetBoardSnapshot(t *testing.T) {
	db := setupDB(t)
	creator := seedCreator(t, db, "creator@sponsio.test")
	s0 := seedSlot(t, db, creator.ID, 1)
	s1 := seedSlot(t, db, creator.ID, 0)
	require.NoError(t, db.Create(&booking.Booking{SlotID: s0.ID, BuyerEmail: "b@x.test", AmountPaid: 49}).Error)

	w := perform(GetBoard, creator.ID, http.MethodGet, "/board", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out BoardDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Slots, 2)
	assert.Equal(t, s1.ID, out.Slots[0].ID, "slots come back in display order")
	assert.Nil(t, out.Slots[0].Booking)
	require.NotNil(t, out.Slots[1].Booking)
	assert.Equal(t, "b@x.test", out.Slots[1].Booking.BuyerEmail)
}
