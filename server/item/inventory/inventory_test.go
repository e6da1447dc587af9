package inventory

import (
	"testing"

	"github.com/mc173/mc173/server/item"
)

func TestAddMergesAndFills(t *testing.T) {
	var inv Inventory
	if rest := inv.Add(item.Stack{ID: 4, Size: 40}); rest != 0 {
		t.Fatalf("add into empty inventory left %d", rest)
	}
	if rest := inv.Add(item.Stack{ID: 4, Size: 40}); rest != 0 {
		t.Fatalf("second add left %d", rest)
	}
	// 80 cobblestone: one full stack of 64 and one of 16.
	if inv.Main[0].Size != 64 || inv.Main[1].Size != 16 {
		t.Fatalf("merge layout wrong: %d/%d", inv.Main[0].Size, inv.Main[1].Size)
	}
}

func TestAddOverflow(t *testing.T) {
	var inv Inventory
	for i := range inv.Main {
		inv.Main[i] = item.Stack{ID: 1, Size: 64}
	}
	if rest := inv.Add(item.Stack{ID: 1, Size: 10}); rest != 10 {
		t.Fatalf("full inventory must reject, got rest %d", rest)
	}
}

func TestToolsDoNotStack(t *testing.T) {
	var inv Inventory
	inv.Add(item.Stack{ID: item.IronPickaxe, Size: 1})
	inv.Add(item.Stack{ID: item.IronPickaxe, Size: 1})
	if inv.Main[0].Size != 1 || inv.Main[1].Size != 1 {
		t.Fatalf("tools must occupy one slot each: %+v %+v", inv.Main[0], inv.Main[1])
	}
}

func TestHandSlot(t *testing.T) {
	var inv Inventory
	if err := inv.SetHandSlot(8); err != nil {
		t.Fatalf("slot 8: %v", err)
	}
	if err := inv.SetHandSlot(9); err == nil {
		t.Fatalf("slot 9 must be rejected")
	}
	inv.Main[8] = item.Stack{ID: 3, Size: 2}
	if inv.Held().ID != 3 {
		t.Fatalf("held stack wrong")
	}
}

func TestConsumeHeld(t *testing.T) {
	var inv Inventory
	inv.Main[0] = item.Stack{ID: 3, Size: 2}
	if !inv.ConsumeHeld() || inv.Main[0].Size != 1 {
		t.Fatalf("first consume")
	}
	if !inv.ConsumeHeld() || !inv.Main[0].Empty() {
		t.Fatalf("second consume must clear the slot")
	}
	if inv.ConsumeHeld() {
		t.Fatalf("empty slot must not consume")
	}
}

func TestTakeHeld(t *testing.T) {
	var inv Inventory
	inv.Main[0] = item.Stack{ID: 5, Size: 3, Damage: 1}
	got, ok := inv.TakeHeld()
	if !ok || got.ID != 5 || got.Size != 1 || got.Damage != 1 {
		t.Fatalf("take held: %+v %v", got, ok)
	}
	if inv.Main[0].Size != 2 {
		t.Fatalf("source stack not decremented")
	}
}

func TestWindowStacksLayout(t *testing.T) {
	var inv Inventory
	inv.Main[0] = item.Stack{ID: 3, Size: 1}  // hotbar slot 0 -> window 36
	inv.Main[9] = item.Stack{ID: 4, Size: 2}  // storage row -> window 9
	inv.Armor[0] = item.Stack{ID: 301, Size: 1}
	out := inv.WindowStacks()
	if len(out) != WindowSize {
		t.Fatalf("window size %d", len(out))
	}
	if out[36] == nil || out[36].ID != 3 {
		t.Fatalf("hotbar not at window 36")
	}
	if out[9] == nil || out[9].ID != 4 {
		t.Fatalf("storage not at window 9")
	}
	if out[5] == nil || out[5].ID != 301 {
		t.Fatalf("armor not at window 5")
	}
	if out[0] != nil {
		t.Fatalf("crafting result must start empty")
	}
}
