package world

import (
	"sort"

	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/world/chunk"
)

// scheduledTick is a block update armed for a future tick. The set semantics
// deduplicate re-arms of the same block for the same tick.
type scheduledTick struct {
	time uint64
	pos  cube.Pos
	id   uint8
}

// ScheduleBlockTick arms a block update after the given delay in ticks. The
// update only fires if the block still has the scheduled id.
func (w *World) ScheduleBlockTick(pos cube.Pos, id uint8, delay uint64) {
	w.guard.Assert()
	st := scheduledTick{time: w.set.Time + delay, pos: pos, id: id}
	if _, ok := w.scheduledTicks[st]; ok {
		return
	}
	w.scheduledTicks[st] = struct{}{}
	w.scheduledQueue = append(w.scheduledQueue, st)
}

// Tick runs one simulation step of the world: weather, the scheduled block
// ticks that came due, random block ticks, and the bounded light relaxation
// budget. The clock advances at the end of the step so that the very first
// step observes time zero.
func (w *World) Tick() {
	w.guard.Assert()

	w.tickWeather()
	w.tickLightning()
	w.runScheduledTicks()
	w.runExplosions()
	w.tickFurnaces()
	w.runRandomTicks()
	w.processLight(w.conf.LightBudget)

	w.set.Time++
	if w.set.Time%20 == 0 {
		w.PushEvent(Event{Kind: EventTimeBroadcast, Time: w.set.Time})
	}
}

// runScheduledTicks fires every armed block update whose time has come, in
// deterministic order: by armed time, then by position.
func (w *World) runScheduledTicks() {
	if len(w.scheduledQueue) == 0 {
		return
	}
	var due []scheduledTick
	rest := w.scheduledQueue[:0]
	for _, st := range w.scheduledQueue {
		if st.time <= w.set.Time {
			due = append(due, st)
		} else {
			rest = append(rest, st)
		}
	}
	w.scheduledQueue = rest
	sort.Slice(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if a.time != b.time {
			return a.time < b.time
		}
		if a.pos[1] != b.pos[1] {
			return a.pos[1] < b.pos[1]
		}
		if a.pos[0] != b.pos[0] {
			return a.pos[0] < b.pos[0]
		}
		return a.pos[2] < b.pos[2]
	})
	for _, st := range due {
		delete(w.scheduledTicks, st)
		if id, meta, ok := w.Block(st.pos); ok && id == st.id {
			w.tickBlock(st.pos, id, meta)
		}
	}
}

// tickBlock runs the scheduled update of a single block.
func (w *World) tickBlock(pos cube.Pos, id, meta uint8) {
	switch id {
	case block.WaterMoving:
		w.tickFluid(pos, id, meta, 5)
	case block.LavaMoving:
		w.tickFluid(pos, id, meta, 30)
	case block.Sand, block.Gravel:
		w.tickFalling(pos, id, meta)
	case block.Fire:
		w.tickFire(pos, meta)
	case block.Repeater, block.RepeaterLit:
		w.tickRepeater(pos, id, meta)
	case block.RedstoneTorch, block.RedstoneTorchLit:
		w.tickRedstoneTorch(pos, id, meta)
	case block.Button:
		// Buttons release after their armed delay.
		if block.ButtonIsPressed(meta) {
			block.ButtonSetPressed(&meta, false)
			w.SetBlockNotify(pos, id, meta)
			if face, ok := block.ButtonFace(meta); ok {
				w.NotifyBlocksAround(pos.Side(face), block.Button)
			}
		}
	}
}

// tickFluid spreads a moving fluid: straight down into replaceable cells,
// then outward horizontally with the flow distance growing by one, and
// settles the cell to its still form when fully spread.
func (w *World) tickFluid(pos cube.Pos, id, meta uint8, delay uint64) {
	distance := block.FluidDistance(meta)
	below := pos.Side(cube.FaceDown)
	if !below.OutOfBounds() && w.IsReplaceable(below) && !w.Material(below).IsFluid() {
		falling := meta | 0x8
		w.SetBlock(below, id, falling)
		w.ScheduleBlockTick(below, id, delay)
		return
	}
	spread := false
	if distance < 7 {
		for _, face := range cube.HorizontalFaces() {
			side := pos.Side(face)
			if w.IsReplaceable(side) && !w.Material(side).IsFluid() {
				w.SetBlockSelfNotify(side, id, distance+1)
				w.ScheduleBlockTick(side, id, delay)
				spread = true
			}
		}
	}
	if !spread {
		// Fully spread fluid settles to its still form until disturbed.
		w.SetBlock(pos, id+1, meta)
	}
}

// tickFalling drops sand and gravel through replaceable cells below.
func (w *World) tickFalling(pos cube.Pos, id, meta uint8) {
	below := pos.Side(cube.FaceDown)
	if below.OutOfBounds() || !w.IsReplaceable(below) {
		return
	}
	w.SetBlockNotify(pos, block.Air, 0)
	w.SetBlockNotify(below, id, meta)
	w.ScheduleBlockTick(below, id, 3)
}

// runRandomTicks draws random cells of each loaded chunk and runs their slow
// behaviour: grass spread and crop growth consume from the world PRNG, which
// keeps the draws part of the deterministic stream.
func (w *World) runRandomTicks() {
	if w.conf.RandomTickSpeed < 0 {
		return
	}
	for _, id := range w.store.Loaded() {
		cpos := id.Pos()
		c := w.store.chunkByID(id)
		if c == nil {
			continue
		}
		for i := 0; i < w.conf.RandomTickSpeed; i++ {
			r := w.rand.IntBounded(chunk.Size3D)
			x := int(r >> 11 & 0xF)
			z := int(r >> 7 & 0xF)
			y := int(r & 0x7F)
			pos := cube.Pos{int(cpos[0])<<4 | x, y, int(cpos[1])<<4 | z}
			blockID := c.Blocks[chunk.Index3D(pos)]
			switch blockID {
			case block.Wheat:
				w.growWheat(pos)
			case block.Grass:
				w.spreadGrass(pos)
			case block.Sapling:
				w.growSapling(pos)
			case block.Cactus:
				w.growCactus(pos)
			case block.SugarCanes:
				w.growSugarCanes(pos)
			case block.Snow:
				w.meltSnow(pos)
			}
		}
	}
}

// growWheat advances the growth metadata of a wheat cell when it is lit.
func (w *World) growWheat(pos cube.Pos) {
	if w.MaxLight(pos) < 9 {
		return
	}
	_, meta, ok := w.Block(pos)
	if !ok || meta >= 7 {
		return
	}
	if w.rand.ChoiceIndex(10) == 0 {
		w.SetBlock(pos, block.Wheat, meta+1)
	}
}

// spreadGrass turns a random nearby dirt cell into grass when that cell is
// lit, or turns the grass cell itself back to dirt when it is buried under an
// opaque block.
func (w *World) spreadGrass(pos cube.Pos) {
	above := pos.Side(cube.FaceUp)
	if w.IsOpaqueCube(above) {
		w.SetBlock(pos, block.Dirt, 0)
		return
	}
	if w.rand.ChoiceIndex(4) != 0 {
		return
	}
	target := cube.Pos{
		pos[0] + int(w.rand.IntBounded(3)) - 1,
		pos[1] + int(w.rand.IntBounded(5)) - 3,
		pos[2] + int(w.rand.IntBounded(3)) - 1,
	}
	if target.OutOfBounds() {
		return
	}
	if w.IsBlock(target, block.Dirt) && !w.IsOpaqueCube(target.Side(cube.FaceUp)) && w.MaxLight(target.Side(cube.FaceUp)) >= 9 {
		w.SetBlock(target, block.Grass, 0)
	}
}
