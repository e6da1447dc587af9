package recipe

import (
	"testing"

	"github.com/mc173/mc173/server/item"
)

func grid2(a, b, c, d int16) []item.Stack {
	mk := func(id int16) item.Stack {
		if id == 0 {
			return item.Stack{}
		}
		return item.Stack{ID: id, Size: 1}
	}
	return []item.Stack{mk(a), mk(b), mk(c), mk(d)}
}

func TestPlanksFromLog(t *testing.T) {
	out, ok := MatchGrid(grid2(log, 0, 0, 0), 2)
	if !ok || out.ID != planks || out.Size != 4 {
		t.Fatalf("log must craft 4 planks, got %+v %v", out, ok)
	}
}

func TestSticksAnywhereInGrid(t *testing.T) {
	// The vertical plank pair matches in either column thanks to trimming.
	for _, g := range [][]item.Stack{
		grid2(planks, 0, planks, 0),
		grid2(0, planks, 0, planks),
	} {
		out, ok := MatchGrid(g, 2)
		if !ok || out.ID != item.Stick || out.Size != 4 {
			t.Fatalf("plank pair must craft sticks, got %+v %v", out, ok)
		}
	}
}

func TestCraftingTableRecipe(t *testing.T) {
	out, ok := MatchGrid(grid2(planks, planks, planks, planks), 2)
	if !ok || out.ID != 58 {
		t.Fatalf("four planks must craft a crafting table, got %+v %v", out, ok)
	}
}

func TestNoMatch(t *testing.T) {
	if _, ok := MatchGrid(grid2(planks, cobblestone, 0, 0), 2); ok {
		t.Fatalf("mixed pair must not craft")
	}
	if _, ok := MatchGrid(grid2(0, 0, 0, 0), 2); ok {
		t.Fatalf("empty grid must not craft")
	}
}

func TestShaped3x3(t *testing.T) {
	mk := func(id int16) item.Stack {
		if id == 0 {
			return item.Stack{}
		}
		return item.Stack{ID: id, Size: 1}
	}
	furnace := []item.Stack{
		mk(cobblestone), mk(cobblestone), mk(cobblestone),
		mk(cobblestone), mk(0), mk(cobblestone),
		mk(cobblestone), mk(cobblestone), mk(cobblestone),
	}
	out, ok := MatchGrid(furnace, 3)
	if !ok || out.ID != 61 {
		t.Fatalf("cobblestone ring must craft a furnace, got %+v %v", out, ok)
	}

	pickaxe := []item.Stack{
		mk(planks), mk(planks), mk(planks),
		mk(0), mk(item.Stick), mk(0),
		mk(0), mk(item.Stick), mk(0),
	}
	out, ok = MatchGrid(pickaxe, 3)
	if !ok || out.ID != item.WoodPickaxe {
		t.Fatalf("wood pickaxe recipe failed, got %+v %v", out, ok)
	}
}

func TestMirroredMatch(t *testing.T) {
	mk := func(id int16) item.Stack {
		if id == 0 {
			return item.Stack{}
		}
		return item.Stack{ID: id, Size: 1}
	}
	// The axe pattern has a handed shape; its mirror must match too.
	axe := []item.Stack{
		mk(planks), mk(planks),
		mk(planks), mk(item.Stick),
		mk(0), mk(item.Stick),
	}
	mirroredAxe := []item.Stack{
		mk(planks), mk(planks),
		mk(item.Stick), mk(planks),
		mk(item.Stick), mk(0),
	}
	_, okA := MatchGrid(axe, 2)
	_, okB := MatchGrid(mirroredAxe, 2)
	if !okA || !okB {
		t.Fatalf("axe pattern and its mirror must both craft: %v vs %v", okA, okB)
	}
}

func TestShapelessFlintAndSteel(t *testing.T) {
	out, ok := MatchGrid(grid2(item.Flint, 0, 0, item.IronIngot), 2)
	if !ok || out.ID != item.FlintAndSteel {
		t.Fatalf("flint and steel is shapeless, got %+v %v", out, ok)
	}
}

func TestSmeltTable(t *testing.T) {
	if out, ok := Smelt(15); !ok || out.ID != item.IronIngot {
		t.Fatalf("iron ore must smelt to iron")
	}
	if out, ok := Smelt(12); !ok || out.ID != 20 {
		t.Fatalf("sand must smelt to glass")
	}
	if _, ok := Smelt(item.Stick); ok {
		t.Fatalf("sticks do not smelt")
	}
}

func TestFuelTimes(t *testing.T) {
	if FuelTime(item.Coal) != 1600 {
		t.Fatalf("coal burn time wrong")
	}
	if FuelTime(planks) != 300 {
		t.Fatalf("plank burn time wrong")
	}
	if FuelTime(item.Diamond) != 0 {
		t.Fatalf("diamonds are not fuel")
	}
}
