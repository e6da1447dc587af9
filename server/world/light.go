package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/world/chunk"
)

// LightKind selects one of the two independent light relaxations.
type LightKind uint8

const (
	// LightBlock is the light emitted by blocks.
	LightBlock LightKind = iota
	// LightSky is the light falling from the sky column.
	LightSky
)

type lightUpdate struct {
	pos  cube.Pos
	kind LightKind
}

// ScheduleLightUpdate enqueues a light relaxation at the position. The queue
// is processed with a bounded budget each tick.
func (w *World) ScheduleLightUpdate(pos cube.Pos, kind LightKind) {
	w.guard.Assert()
	w.lightQueue = append(w.lightQueue, lightUpdate{pos: pos, kind: kind})
}

// LightUpdateCount returns the number of pending light relaxations.
func (w *World) LightUpdateCount() int {
	return len(w.lightQueue)
}

// processLight runs up to budget light relaxations. Each relaxation
// recomputes the light value of its cell from its sources and neighbours and
// re-enqueues the neighbours when the stored value changed.
func (w *World) processLight(budget int) {
	for i := 0; i < budget && len(w.lightQueue) > 0; i++ {
		up := w.lightQueue[0]
		w.lightQueue = w.lightQueue[1:]
		w.relaxLight(up.pos, up.kind)
	}
}

func (w *World) relaxLight(pos cube.Pos, kind LightKind) {
	cpos, valid := cube.PosToChunkPos(pos)
	if !valid {
		return
	}
	c := w.cache.chunk(cpos)
	if c == nil {
		return
	}

	id, _ := c.Block(pos)
	opacity := block.LightOpacity(id)

	var computed uint8
	if kind == LightSky && pos[1] >= int(c.Height(pos)) {
		// Cells above the column height see the sky directly.
		computed = 15
	} else {
		var source uint8
		if kind == LightBlock {
			source = block.LightEmission(id)
		}
		var maxNeighbour uint8
		for _, face := range cube.Faces() {
			n := pos.Side(face)
			if n.OutOfBounds() {
				continue
			}
			ncpos, _ := cube.PosToChunkPos(n)
			nc := w.cache.chunk(ncpos)
			if nc == nil {
				continue
			}
			bl, sl := nc.Light(n)
			v := bl
			if kind == LightSky {
				v = sl
			}
			if v > maxNeighbour {
				maxNeighbour = v
			}
		}
		through := int(maxNeighbour) - int(opacity) - 1
		if through < 0 {
			through = 0
		}
		computed = max(source, uint8(through))
	}

	var stored uint8
	bl, sl := c.Light(pos)
	if kind == LightBlock {
		stored = bl
	} else {
		stored = sl
	}
	if computed == stored {
		return
	}
	if kind == LightBlock {
		c.SetBlockLight(pos, computed)
	} else {
		c.SetSkyLight(pos, computed)
	}
	w.cache.markModified(chunk.MustIDFromPos(cpos))
	for _, face := range cube.Faces() {
		n := pos.Side(face)
		if !n.OutOfBounds() {
			w.lightQueue = append(w.lightQueue, lightUpdate{pos: n, kind: kind})
		}
	}
}
