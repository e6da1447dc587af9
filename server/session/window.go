package session

import (
	"github.com/mc173/mc173/server/item"
	"github.com/mc173/mc173/server/item/inventory"
	"github.com/mc173/mc173/server/item/recipe"
	"github.com/mc173/mc173/server/proto"
)

// Player inventory window slot ranges.
const (
	slotCraftResult = 0
	slotCraftFirst  = 1
	slotCraftLast   = 4
	slotArmorFirst  = 5
	slotArmorLast   = 8
	slotMainFirst   = 9
	slotMainLast    = 35
	slotHotbarFirst = 36
	slotHotbarLast  = 44
)

// slotRef resolves a player-window slot index to the backing inventory
// stack. The crafting result has no backing slot and resolves to nil.
func (s *Session) slotRef(slot int16) *item.Stack {
	switch {
	case slot >= slotCraftFirst && slot <= slotCraftLast:
		return &s.inv.Craft[slot-slotCraftFirst]
	case slot >= slotArmorFirst && slot <= slotArmorLast:
		return &s.inv.Armor[slot-slotArmorFirst]
	case slot >= slotMainFirst && slot <= slotMainLast:
		return &s.inv.Main[inventory.HotbarSize+slot-slotMainFirst]
	case slot >= slotHotbarFirst && slot <= slotHotbarLast:
		return &s.inv.Main[slot-slotHotbarFirst]
	}
	return nil
}

// handleInventoryClick applies a click into the player inventory window:
// the cursor and the clicked slot swap or merge, and the crafting result
// slot reflects the 2x2 grid after every change.
func (s *Session) handleInventoryClick(p *proto.WindowClick) {
	defer func() {
		s.Send(&proto.WindowTransaction{WindowID: p.WindowID, Transaction: p.Transaction, Accepted: true})
	}()

	if p.Slot == slotCraftResult {
		s.takeCraftResult()
		return
	}
	slot := s.slotRef(p.Slot)
	if slot == nil {
		s.log.Warn("click into invalid slot dropped", "username", s.username, "slot", p.Slot)
		return
	}

	cursor := s.inv.Cursor
	switch {
	case cursor.Empty():
		s.inv.Cursor = *slot
		*slot = item.Stack{}
	case slot.Empty():
		*slot = cursor
		s.inv.Cursor = item.Stack{}
	case slot.ID == cursor.ID && slot.Damage == cursor.Damage:
		// Merge the cursor into the slot up to a full stack.
		total := uint16(slot.Size) + uint16(cursor.Size)
		if total > 64 {
			slot.Size = 64
			cursor.Size = uint8(total - 64)
			s.inv.Cursor = cursor
		} else {
			slot.Size = uint8(total)
			s.inv.Cursor = item.Stack{}
		}
	default:
		*slot, s.inv.Cursor = s.inv.Cursor, *slot
	}

	if p.Slot >= slotCraftFirst && p.Slot <= slotCraftLast {
		s.refreshCraftResult()
	}
}

// refreshCraftResult recomputes the crafting result of the 2x2 grid and
// pushes it to the client.
func (s *Session) refreshCraftResult() {
	result, ok := recipe.MatchGrid(s.inv.Craft[:4], 2)
	pkt := &proto.WindowSetItem{WindowID: 0, Slot: slotCraftResult}
	if ok {
		cp := result
		pkt.Stack = &cp
	}
	s.Send(pkt)
}

// takeCraftResult moves the crafted stack onto the cursor and consumes one
// item from every used grid cell.
func (s *Session) takeCraftResult() {
	result, ok := recipe.MatchGrid(s.inv.Craft[:4], 2)
	if !ok {
		return
	}
	if !s.inv.Cursor.Empty() {
		if s.inv.Cursor.ID != result.ID || s.inv.Cursor.Damage != result.Damage ||
			uint16(s.inv.Cursor.Size)+uint16(result.Size) > 64 {
			return
		}
		s.inv.Cursor.Size += result.Size
	} else {
		s.inv.Cursor = result
	}
	for i := 0; i < 4; i++ {
		st := &s.inv.Craft[i]
		if st.Empty() {
			continue
		}
		st.Size--
		if st.Size == 0 {
			*st = item.Stack{}
		}
	}
	s.refreshCraftResult()
}
