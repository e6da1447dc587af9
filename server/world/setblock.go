package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/world/chunk"
)

// SetBlock writes a cell. It returns the previous id and metadata, with ok
// false when the chunk is not loaded or Y is out of range. Writing the value
// already present is a no-op. A successful write recomputes the column
// height, journals a BlockSet update and, when the opacity or emission of the
// cell changed, schedules sky and block light relaxation at the position.
func (w *World) SetBlock(pos cube.Pos, id, meta uint8) (prevID, prevMeta uint8, ok bool) {
	w.guard.Assert()
	cpos, valid := cube.PosToChunkPos(pos)
	if !valid {
		return 0, 0, false
	}
	c := w.cache.chunk(cpos)
	if c == nil {
		return 0, 0, false
	}
	prevID, prevMeta = c.Block(pos)
	if prevID == id && prevMeta == meta {
		return prevID, prevMeta, true
	}
	c.SetBlock(pos, id, meta)
	w.recomputeHeight(c, pos)

	cid := chunk.MustIDFromPos(cpos)
	w.cache.markModified(cid)
	w.appendBlockSet(cid, pos, id, meta)

	if block.LightOpacity(prevID) != block.LightOpacity(id) ||
		block.LightEmission(prevID) != block.LightEmission(id) {
		w.ScheduleLightUpdate(pos, LightSky)
		w.ScheduleLightUpdate(pos, LightBlock)
	}
	return prevID, prevMeta, true
}

// SetBlockSelfNotify writes a cell like SetBlock and then fires the
// self-transition notifications of the removed and added block, which arm
// scheduled ticks for fluids and falling blocks and wake the redstone solver
// when wire appears.
func (w *World) SetBlockSelfNotify(pos cube.Pos, id, meta uint8) (prevID, prevMeta uint8, ok bool) {
	prevID, prevMeta, ok = w.SetBlock(pos, id, meta)
	if !ok || (prevID == id && prevMeta == meta) {
		return prevID, prevMeta, ok
	}
	w.notifyChange(pos, prevID, id)
	return prevID, prevMeta, true
}

// SetBlockNotify writes a cell like SetBlockSelfNotify and then notifies all
// six neighbours of the change.
func (w *World) SetBlockNotify(pos cube.Pos, id, meta uint8) (prevID, prevMeta uint8, ok bool) {
	prevID, prevMeta, ok = w.SetBlockSelfNotify(pos, id, meta)
	if !ok {
		return prevID, prevMeta, false
	}
	w.NotifyBlocksAround(pos, id)
	return prevID, prevMeta, true
}

// notifyChange runs the self-transition reactions of a cell that changed
// from one id to another.
func (w *World) notifyChange(pos cube.Pos, fromID, toID uint8) {
	switch fromID {
	case block.Button:
		if face, ok := block.ButtonFace(w.metaAt(pos)); ok {
			w.NotifyBlocksAround(pos.Side(face), block.Button)
		}
	case block.Sign, block.WallSign:
		if toID != block.Sign && toID != block.WallSign {
			w.clearSignText(pos)
		}
	}
	switch toID {
	case block.WaterMoving:
		w.ScheduleBlockTick(pos, toID, 5)
	case block.LavaMoving:
		w.ScheduleBlockTick(pos, toID, 30)
	case block.Redstone:
		w.notifyRedstone(pos)
	case block.Sand, block.Gravel:
		w.ScheduleBlockTick(pos, toID, 3)
	case block.Fire:
		if !w.TryIgnitePortal(pos) {
			w.ScheduleBlockTick(pos, toID, 40)
		}
	}
}

func (w *World) metaAt(pos cube.Pos) uint8 {
	_, meta, _ := w.Block(pos)
	return meta
}

// BreakBlock sets the cell to air with full notifications and emits a pickup
// event for the dropped cell contents.
func (w *World) BreakBlock(pos cube.Pos) {
	id, meta, ok := w.Block(pos)
	if !ok || id == block.Air {
		return
	}
	w.SetBlockNotify(pos, block.Air, 0)
	w.PushEvent(Event{Kind: EventBlockPickup, Pos: pos, Block: id, Metadata: meta})
}

// recomputeHeight restores the height map invariant of the column at pos:
// the stored height is one more than the highest cell with non-zero opacity.
func (w *World) recomputeHeight(c *chunk.Chunk, pos cube.Pos) {
	h := 0
	for y := chunk.Height - 1; y >= 0; y-- {
		id := c.Blocks[chunk.Index3D(cube.Pos{pos[0], y, pos[2]})]
		if block.LightOpacity(id) > 0 {
			h = y + 1
			break
		}
	}
	c.SetHeight(pos, uint8(h))
}

// initChunkLight seeds the light arrays of a freshly generated chunk: the
// height map is rebuilt, sky light is full above the height and attenuated
// through translucent cells below it, and block light starts at each cell's
// emission. The BFS relaxation refines both lazily.
func (w *World) initChunkLight(c *chunk.Chunk) {
	for z := 0; z < chunk.Width; z++ {
		for x := 0; x < chunk.Width; x++ {
			col := cube.Pos{x, 0, z}
			w.recomputeHeight(c, col)
			h := int(c.Height(col))
			light := 15
			for y := chunk.Height - 1; y >= 0; y-- {
				pos := cube.Pos{x, y, z}
				if y >= h {
					c.SetSkyLight(pos, 15)
				} else {
					light -= int(block.LightOpacity(c.Blocks[chunk.Index3D(pos)]))
					if light < 0 {
						light = 0
					}
					c.SetSkyLight(pos, uint8(light))
				}
				if e := block.LightEmission(c.Blocks[chunk.Index3D(pos)]); e > 0 {
					c.SetBlockLight(pos, e)
				}
			}
		}
	}
}
