// Package inventory implements the player inventory data contract: the main
// 36-slot storage with the hotbar in the first nine slots, the four armor
// slots and the crafting grid.
package inventory

import (
	"errors"

	"github.com/mc173/mc173/server/item"
)

const (
	// MainSize is the number of main inventory slots, hotbar included.
	MainSize = 36
	// HotbarSize is the number of hotbar slots at the front of the main
	// inventory.
	HotbarSize = 9
	// ArmorSize is the number of armor slots.
	ArmorSize = 4
	// CraftSize is the number of crafting grid slots; the 2x2 grid uses the
	// top-left quadrant of the 3x3.
	CraftSize = 9
	// WindowSize is the slot count of the player inventory window on the
	// wire: crafting result, craft grid (2x2), armor, main and hotbar.
	WindowSize = 45
)

// ErrSlotOutOfRange is returned for slot indices outside the inventory.
var ErrSlotOutOfRange = errors.New("inventory: slot out of range")

// maxStackSize returns how many items of the id stack together. Tools,
// flint and steel, bows and shears do not stack.
func maxStackSize(id int16) uint8 {
	if id == 0 {
		return 0
	}
	if _, tier := item.ToolOf(id); tier != item.TierNone {
		return 1
	}
	switch id {
	case item.FlintAndSteel, item.Bow, item.Shears:
		return 1
	}
	return 64
}

// Inventory is a player inventory. The zero value is empty and usable.
type Inventory struct {
	// Main holds the storage slots; the first HotbarSize are the hotbar.
	Main [MainSize]item.Stack
	// Armor holds the armor slots, boots first.
	Armor [ArmorSize]item.Stack
	// Craft holds the crafting grid.
	Craft [CraftSize]item.Stack
	// Cursor is the stack on the player's mouse cursor while a window is
	// open.
	Cursor item.Stack
	// HandSlot is the selected hotbar slot, in [0, HotbarSize).
	HandSlot int16
}

// Held returns the stack in the selected hotbar slot.
func (inv *Inventory) Held() item.Stack {
	return inv.Main[inv.HandSlot]
}

// SetHandSlot selects a hotbar slot. Out-of-range slots are rejected.
func (inv *Inventory) SetHandSlot(slot int16) error {
	if slot < 0 || slot >= HotbarSize {
		return ErrSlotOutOfRange
	}
	inv.HandSlot = slot
	return nil
}

// Slot returns the main inventory stack at the index.
func (inv *Inventory) Slot(i int) (item.Stack, error) {
	if i < 0 || i >= MainSize {
		return item.Stack{}, ErrSlotOutOfRange
	}
	return inv.Main[i], nil
}

// SetSlot writes the main inventory stack at the index.
func (inv *Inventory) SetSlot(i int, s item.Stack) error {
	if i < 0 || i >= MainSize {
		return ErrSlotOutOfRange
	}
	inv.Main[i] = s
	return nil
}

// Add inserts a stack, merging with compatible stacks first and filling
// empty slots after, hotbar first. It returns the number of items that did
// not fit.
func (inv *Inventory) Add(s item.Stack) uint8 {
	if s.Empty() {
		return 0
	}
	remaining := s.Size
	limit := maxStackSize(s.ID)

	for i := range inv.Main {
		slot := &inv.Main[i]
		if slot.Empty() || slot.ID != s.ID || slot.Damage != s.Damage || slot.Size >= limit {
			continue
		}
		space := limit - slot.Size
		moved := min(space, remaining)
		slot.Size += moved
		remaining -= moved
		if remaining == 0 {
			return 0
		}
	}
	for i := range inv.Main {
		slot := &inv.Main[i]
		if !slot.Empty() {
			continue
		}
		moved := min(limit, remaining)
		*slot = item.Stack{ID: s.ID, Size: moved, Damage: s.Damage}
		remaining -= moved
		if remaining == 0 {
			return 0
		}
	}
	return remaining
}

// ConsumeHeld removes one item from the held stack, clearing the slot when
// it empties. It reports whether an item was consumed.
func (inv *Inventory) ConsumeHeld() bool {
	slot := &inv.Main[inv.HandSlot]
	if slot.Empty() {
		return false
	}
	slot.Size--
	if slot.Size == 0 {
		*slot = item.Stack{}
	}
	return true
}

// TakeHeld removes and returns a single item of the held stack.
func (inv *Inventory) TakeHeld() (item.Stack, bool) {
	held := inv.Held()
	if held.Empty() {
		return item.Stack{}, false
	}
	if !inv.ConsumeHeld() {
		return item.Stack{}, false
	}
	return item.Stack{ID: held.ID, Size: 1, Damage: held.Damage}, true
}

// WindowStacks returns the inventory laid out as the 45 wire slots of the
// player window: crafting result, 2x2 grid, armor, main storage, hotbar.
func (inv *Inventory) WindowStacks() []*item.Stack {
	out := make([]*item.Stack, WindowSize)
	at := func(s item.Stack) *item.Stack {
		if s.Empty() {
			return nil
		}
		cp := s
		return &cp
	}
	// Slot 0 is the crafting result, which this data contract leaves empty.
	for i := 0; i < 4; i++ {
		out[1+i] = at(inv.Craft[i])
	}
	for i := 0; i < ArmorSize; i++ {
		out[5+i] = at(inv.Armor[i])
	}
	for i := HotbarSize; i < MainSize; i++ {
		out[9+i-HotbarSize] = at(inv.Main[i])
	}
	for i := 0; i < HotbarSize; i++ {
		out[36+i] = at(inv.Main[i])
	}
	return out
}
