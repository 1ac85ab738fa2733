// Package board holds the in-memory state machine behind the slot
// organization board. Handlers and clients feed it drag events; Drop()
// yields the placement batch that gets persisted. It has no knowledge of
// HTTP or the database.
package board

// CategoryRef identifies the column a slot sits in. The zero value is the
// uncategorized column, so there is no sentinel string to compare against.
type CategoryRef struct {
	id string
}

func Uncategorized() CategoryRef { return CategoryRef{} }

func InCategory(id string) CategoryRef { return CategoryRef{id: id} }

func (r CategoryRef) IsUncategorized() bool { return r.id == "" }

// CategoryID returns the category id and true, or ("", false) for the
// uncategorized column.
func (r CategoryRef) CategoryID() (string, bool) { return r.id, r.id != "" }

// Slot is the board's working copy of an ad slot: identity plus column.
type Slot struct {
	ID       string
	Category CategoryRef
}

type CategoryState int

const (
	// Confirmed categories exist server-side.
	Confirmed CategoryState = iota
	// Pending categories were created optimistically and await a server id.
	Pending
)

type Category struct {
	ID    string
	Name  string
	State CategoryState
}

// Board is the reducer state: the full ordered slot list (across all
// columns) and the category list.
type Board struct {
	Slots      []Slot
	Categories []Category
}

// New copies its inputs so later snapshot refreshes can rebuild the board
// without aliasing the caller's slices.
func New(slots []Slot, categories []Category) Board {
	b := Board{
		Slots:      make([]Slot, len(slots)),
		Categories: make([]Category, len(categories)),
	}
	copy(b.Slots, slots)
	copy(b.Categories, categories)
	return b
}

func (b *Board) index(slotID string) int {
	for i := range b.Slots {
		if b.Slots[i].ID == slotID {
			return i
		}
	}
	return -1
}

// DragOverSlot re-sequences the list when the dragged slot hovers another
// slot. When the two slots sit in different columns the dragged slot adopts
// its new neighbor's category immediately, during the drag.
func (b *Board) DragOverSlot(activeID, overID string) {
	if activeID == overID {
		return
	}
	from := b.index(activeID)
	to := b.index(overID)
	if from < 0 || to < 0 {
		return
	}
	if b.Slots[from].Category != b.Slots[to].Category {
		b.Slots[from].Category = b.Slots[to].Category
	}
	arrayMove(b.Slots, from, to)
}

// DragOverContainer reassigns the dragged slot's column without reordering;
// the drop handles ordering.
func (b *Board) DragOverContainer(activeID string, target CategoryRef) {
	i := b.index(activeID)
	if i < 0 {
		return
	}
	b.Slots[i].Category = target
}

// Placement is one row of the persisted batch.
type Placement struct {
	SlotID   string
	Position int
	Category CategoryRef
}

// Drop commits the drag: the whole list, in display order, as positions
// 0..N-1 with each slot's final column.
func (b *Board) Drop() []Placement {
	out := make([]Placement, len(b.Slots))
	for i, s := range b.Slots {
		out[i] = Placement{SlotID: s.ID, Position: i, Category: s.Category}
	}
	return out
}

// StagePendingCategory inserts an optimistic placeholder under a temporary
// id before the server has confirmed creation.
func (b *Board) StagePendingCategory(tempID, name string) {
	b.Categories = append(b.Categories, Category{ID: tempID, Name: name, State: Pending})
}

// ConfirmCategory swaps a pending placeholder for its server-assigned id.
// Slots already dropped into the placeholder column follow the rename.
func (b *Board) ConfirmCategory(tempID, realID string) {
	for i := range b.Categories {
		if b.Categories[i].ID == tempID && b.Categories[i].State == Pending {
			b.Categories[i].ID = realID
			b.Categories[i].State = Confirmed
		}
	}
	for i := range b.Slots {
		if id, ok := b.Slots[i].Category.CategoryID(); ok && id == tempID {
			b.Slots[i].Category = InCategory(realID)
		}
	}
}

// RollbackCategory drops a pending placeholder after a failed creation and
// returns its slots to the uncategorized column.
func (b *Board) RollbackCategory(tempID string) {
	b.removeCategory(tempID, true)
}

// RemoveCategory deletes a confirmed category; its slots move to
// uncategorized, mirroring the server-side delete semantics.
func (b *Board) RemoveCategory(id string) {
	b.removeCategory(id, false)
}

func (b *Board) removeCategory(id string, pendingOnly bool) {
	removed := false
	kept := b.Categories[:0]
	for _, c := range b.Categories {
		if c.ID == id && (!pendingOnly || c.State == Pending) {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	b.Categories = kept
	if !removed {
		return
	}
	for i := range b.Slots {
		if cid, ok := b.Slots[i].Category.CategoryID(); ok && cid == id {
			b.Slots[i].Category = Uncategorized()
		}
	}
}

// arrayMove shifts the element at from to position to, preserving the
// relative order of everything else.
func arrayMove(s []Slot, from, to int) {
	if from == to || from < 0 || to < 0 || from >= len(s) || to >= len(s) {
		return
	}
	moved := s[from]
	if from < to {
		copy(s[from:], s[from+1:to+1])
	} else {
		copy(s[to+1:], s[to:from])
	}
	s[to] = moved
}
