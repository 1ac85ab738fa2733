package slots

import (
	"sponsio/internal/domain/ads"
	"sponsio/internal/domain/booking"

	"gorm.io/gorm"
)

func userSlotsQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Where("creator_id = ?", userID)
}

// loadBoard builds the dashboard snapshot: slots in display order with
// their bookings attached, plus categories by creation time.
func loadBoard(db *gorm.DB, userID uint) (BoardDTO, error) {
	var slotRows []ads.AdSlot
	if err := userSlotsQuery(db, userID).
		Order("sort_index ASC").
		Find(&slotRows).Error; err != nil {
		return BoardDTO{}, err
	}

	ids := make([]string, 0, len(slotRows))
	for _, s := range slotRows {
		ids = append(ids, s.ID)
	}

	bysSlot := map[string]*booking.Booking{}
	if len(ids) > 0 {
		var bookings []booking.Booking
		if err := db.Where("slot_id IN ?", ids).Find(&bookings).Error; err != nil {
			return BoardDTO{}, err
		}
		for i := range bookings {
			bysSlot[bookings[i].SlotID] = &bookings[i]
		}
	}

	out := BoardDTO{Slots: make([]SlotDTO, 0, len(slotRows))}
	for _, s := range slotRows {
		out.Slots = append(out.Slots, SlotDTO{AdSlot: s, Booking: bysSlot[s.ID]})
	}

	if err := db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out.Categories).Error; err != nil {
		return BoardDTO{}, err
	}
	if out.Categories == nil {
		out.Categories = []ads.Category{}
	}

	return out, nil
}

// nextSortIndex appends new slots at the end of the uncategorized column.
func nextSortIndex(db *gorm.DB, userID uint) int {
	var count int64
	userSlotsQuery(db.Model(&ads.AdSlot{}), userID).Count(&count)
	return int(count)
}
