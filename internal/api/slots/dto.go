package slots

import (
	"sponsio/internal/domain/ads"
	"sponsio/internal/domain/board"
	"sponsio/internal/domain/booking"
)

type CreateSlotRequest struct {
	Price       float64 `json:"price" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	EndDate     *string `json:"end_date,omitempty"`
	DisplayType string  `json:"display_type"`
	Title       *string `json:"title,omitempty"`
}

type ReorderItem struct {
	ID         string  `json:"id" binding:"required"`
	Order      int     `json:"order"`
	CategoryID *string `json:"category_id"`
}

// Ref normalizes the wire value into the tagged category reference. The
// legacy "uncategorized" sentinel some embeds still send maps to the
// uncategorized column.
func (i ReorderItem) Ref() board.CategoryRef {
	if i.CategoryID == nil || *i.CategoryID == "" || *i.CategoryID == "uncategorized" {
		return board.Uncategorized()
	}
	return board.InCategory(*i.CategoryID)
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items" binding:"required"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type SlotDTO struct {
	ads.AdSlot
	Booking *booking.Booking `json:"booking,omitempty"`
}

type BoardDTO struct {
	Slots      []SlotDTO      `json:"slots"`
	Categories []ads.Category `json:"categories"`
}
