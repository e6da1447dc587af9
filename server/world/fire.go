package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// tickFire ages a fire cell, burns the flammable blocks it touches and
// eventually dies out. The age lives in the cell metadata.
func (w *World) tickFire(pos cube.Pos, meta uint8) {
	if !w.canPlaceFire(pos) {
		w.SetBlockNotify(pos, block.Air, 0)
		return
	}

	// Rain extinguishes surface fire.
	if w.set.Weather != WeatherClear && w.conf.Dimension != Nether {
		if cpos, ok := cube.PosToChunkPos(pos); ok {
			if c := w.cache.chunk(cpos); c != nil && pos[1] >= int(c.Height(pos)) {
				w.SetBlockNotify(pos, block.Air, 0)
				return
			}
		}
	}

	age := meta
	if age < 15 {
		age++
		w.SetBlock(pos, block.Fire, age)
	}

	// Consume one flammable neighbour per tick at most, favouring a
	// deterministic face order.
	for _, face := range cube.Faces() {
		n := pos.Side(face)
		id, _, ok := w.Block(n)
		if !ok || !block.IsFlammable(id) {
			continue
		}
		if w.rand.IntBounded(int32(age)+10) < 5 {
			if id == block.TNT {
				w.igniteTNT(n)
			} else {
				w.SetBlockNotify(n, block.Fire, 0)
				w.ScheduleBlockTick(n, block.Fire, 40)
			}
			break
		}
	}

	if age >= 15 && w.rand.ChoiceIndex(4) == 0 {
		// Old fire dies where it cannot rest on an opaque block.
		if !w.IsOpaqueCube(pos.Side(cube.FaceDown)) {
			w.SetBlockNotify(pos, block.Air, 0)
			return
		}
	}
	w.ScheduleBlockTick(pos, block.Fire, 40)
}
