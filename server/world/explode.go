package world

import (
	"math"

	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// explosionResistance returns the blast resistance of a block id. Water,
// obsidian and bedrock survive ordinary explosions.
func explosionResistance(id uint8) float64 {
	switch {
	case id == block.Bedrock || id == block.Portal:
		return math.Inf(1)
	case id == block.Obsidian:
		return 6000
	case block.IsWater(id) || block.IsLava(id):
		return 500
	}
	return block.Hardness(id) * 5
}

// Explode removes the blocks within the radius around the centre, weakening
// with distance, and emits an explosion event carrying the destroyed cells.
// Destroyed blocks have a small chance to drop as items.
func (w *World) Explode(center cube.Pos, radius float64) {
	w.guard.Assert()
	r := int(math.Ceil(radius))
	var destroyed []cube.Pos
	for y := center[1] - r; y <= center[1]+r; y++ {
		if y < 0 || y >= cube.WorldHeight {
			continue
		}
		for z := center[2] - r; z <= center[2]+r; z++ {
			for x := center[0] - r; x <= center[0]+r; x++ {
				pos := cube.Pos{x, y, z}
				dx, dy, dz := float64(x-center[0]), float64(y-center[1]), float64(z-center[2])
				dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
				if dist > radius {
					continue
				}
				id, meta, ok := w.Block(pos)
				if !ok || id == block.Air {
					continue
				}
				// The blast weakens linearly with distance; resistant blocks
				// survive close hits.
				power := (radius - dist) * 4
				if explosionResistance(id) > power {
					continue
				}
				destroyed = append(destroyed, pos)
				if id == block.TNT {
					// Chained TNT detonates after a short fuse.
					w.SetBlock(pos, block.Air, 0)
					w.scheduleExplosion(pos, 4)
					continue
				}
				w.SetBlock(pos, block.Air, 0)
				// Roughly a third of the destroyed blocks drop.
				if w.rand.ChoiceIndex(3) == 0 {
					w.PushEvent(Event{Kind: EventBlockPickup, Pos: pos, Block: id, Metadata: meta})
				}
			}
		}
	}
	// Notify around the crater once the blocks are gone so supported blocks
	// re-evaluate against the new shape.
	for _, pos := range destroyed {
		w.NotifyBlocksAround(pos, block.Air)
	}
	w.PushEvent(Event{Kind: EventExplosion, Pos: center, Radius: radius, Destroyed: destroyed})
}

// scheduleExplosion arms a TNT explosion at the position after the delay.
func (w *World) scheduleExplosion(pos cube.Pos, delay uint64) {
	w.pendingExplosions = append(w.pendingExplosions, pendingExplosion{
		time: w.set.Time + delay,
		pos:  pos,
	})
}

type pendingExplosion struct {
	time uint64
	pos  cube.Pos
}

// runExplosions fires every armed explosion that came due.
func (w *World) runExplosions() {
	if len(w.pendingExplosions) == 0 {
		return
	}
	var due []pendingExplosion
	rest := w.pendingExplosions[:0]
	for _, pe := range w.pendingExplosions {
		if pe.time <= w.set.Time {
			due = append(due, pe)
		} else {
			rest = append(rest, pe)
		}
	}
	w.pendingExplosions = rest
	for _, pe := range due {
		w.Explode(pe.pos, 4)
	}
}

// IgniteTNT replaces a TNT block by a pending explosion with the standard
// fuse.
func (w *World) IgniteTNT(pos cube.Pos) {
	w.guard.Assert()
	w.igniteTNT(pos)
}

// igniteTNT replaces a TNT block by a pending explosion.
func (w *World) igniteTNT(pos cube.Pos) {
	if !w.IsBlock(pos, block.TNT) {
		return
	}
	w.SetBlockNotify(pos, block.Air, 0)
	w.scheduleExplosion(pos, 80)
}
