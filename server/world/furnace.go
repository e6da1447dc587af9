package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/item"
	"github.com/mc173/mc173/server/item/recipe"
)

// smeltDuration is the number of ticks one smelting operation takes.
const smeltDuration = 200

// FurnaceState is the block entity of a furnace cell.
type FurnaceState struct {
	// Input, Fuel and Output are the three furnace slots.
	Input, Fuel, Output item.Stack
	// BurnRemaining is the number of ticks of fuel left.
	BurnRemaining uint64
	// Progress is the tick count of the current smelting operation.
	Progress uint64
}

// Furnace returns the state of the furnace at the position, if the cell is
// a furnace with state attached.
func (w *World) Furnace(pos cube.Pos) (*FurnaceState, bool) {
	st, ok := w.furnaces[pos]
	return st, ok
}

// SetFurnaceSlots writes the slots of the furnace at the position, creating
// its state on first use. It reports false when the cell is not a furnace.
func (w *World) SetFurnaceSlots(pos cube.Pos, input, fuel, output item.Stack) bool {
	w.guard.Assert()
	id, _, ok := w.Block(pos)
	if !ok || (id != block.Furnace && id != block.FurnaceLit) {
		return false
	}
	if w.furnaces == nil {
		w.furnaces = make(map[cube.Pos]*FurnaceState)
	}
	st, ok := w.furnaces[pos]
	if !ok {
		st = &FurnaceState{}
		w.furnaces[pos] = st
	}
	st.Input, st.Fuel, st.Output = input, fuel, output
	return true
}

// tickFurnaces advances every furnace block entity: fuel is consumed to
// keep the fire lit while the input smelts, and the cell swaps between the
// lit and unlit furnace blocks as the fire starts and dies.
func (w *World) tickFurnaces() {
	if len(w.furnaces) == 0 {
		return
	}
	// Furnace positions iterate in deterministic block order.
	for _, pos := range sortedFurnacePositions(w.furnaces) {
		st := w.furnaces[pos]
		id, meta, ok := w.Block(pos)
		if !ok || (id != block.Furnace && id != block.FurnaceLit) {
			delete(w.furnaces, pos)
			continue
		}
		w.tickFurnace(pos, id, meta, st)
	}
}

func (w *World) tickFurnace(pos cube.Pos, id, meta uint8, st *FurnaceState) {
	smeltable := false
	if !st.Input.Empty() {
		if out, ok := recipe.Smelt(st.Input.ID); ok {
			smeltable = st.Output.Empty() ||
				(st.Output.ID == out.ID && st.Output.Size+out.Size <= 64)
		}
	}

	if st.BurnRemaining == 0 && smeltable && !st.Fuel.Empty() {
		if burn := recipe.FuelTime(st.Fuel.ID); burn > 0 {
			st.BurnRemaining = burn
			st.Fuel.Size--
			if st.Fuel.Size == 0 {
				st.Fuel = item.Stack{}
			}
		}
	}

	if st.BurnRemaining > 0 {
		st.BurnRemaining--
		if id == block.Furnace {
			w.SetBlock(pos, block.FurnaceLit, meta)
		}
		if smeltable {
			st.Progress++
			if st.Progress >= smeltDuration {
				st.Progress = 0
				out, _ := recipe.Smelt(st.Input.ID)
				if st.Output.Empty() {
					st.Output = out
				} else {
					st.Output.Size += out.Size
				}
				st.Input.Size--
				if st.Input.Size == 0 {
					st.Input = item.Stack{}
				}
			}
		} else {
			st.Progress = 0
		}
		return
	}

	st.Progress = 0
	if id == block.FurnaceLit {
		w.SetBlock(pos, block.Furnace, meta)
	}
}

func sortedFurnacePositions(m map[cube.Pos]*FurnaceState) []cube.Pos {
	out := make([]cube.Pos, 0, len(m))
	for pos := range m {
		out = append(out, pos)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && lessPos(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func lessPos(a, b cube.Pos) bool {
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[2] < b[2]
}
