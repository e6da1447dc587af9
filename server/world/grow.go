package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// growSapling turns a lit sapling into a small tree: a log trunk with a
// leaf crown. The sapling grows in two stages tracked in its metadata.
func (w *World) growSapling(pos cube.Pos) {
	if w.MaxLight(pos.Side(cube.FaceUp)) < 9 {
		return
	}
	if w.rand.ChoiceIndex(7) != 0 {
		return
	}
	_, meta, ok := w.Block(pos)
	if !ok {
		return
	}
	// The high metadata bit marks a sapling ready to grow; the first
	// passing draw arms it, the second grows the tree.
	if meta&0x8 == 0 {
		w.SetBlock(pos, block.Sapling, meta|0x8)
		return
	}
	w.growTree(pos, meta&0x3)
}

// growTree places a trunk and crown if enough room is free above the
// sapling. kind carries the sapling wood type into the log metadata.
func (w *World) growTree(pos cube.Pos, kind uint8) {
	height := 4 + int(w.rand.IntBounded(3))
	if pos[1]+height+2 >= cube.WorldHeight {
		return
	}
	for y := 1; y < height; y++ {
		if !w.IsReplaceable(pos.Add(cube.Pos{0, y, 0})) {
			return
		}
	}

	// Crown first so the trunk overwrites the inner leaves.
	top := pos[1] + height
	for y := top - 2; y <= top+1; y++ {
		radius := 2
		if y >= top {
			radius = 1
		}
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				// Trim the corners of the crown for a rounder shape.
				if dx*dx+dz*dz > radius*radius+1 {
					continue
				}
				leaf := cube.Pos{pos[0] + dx, y, pos[2] + dz}
				if w.IsReplaceable(leaf) {
					w.SetBlock(leaf, block.Leaves, kind)
				}
			}
		}
	}
	for y := 0; y < height; y++ {
		w.SetBlock(pos.Add(cube.Pos{0, y, 0}), block.Log, kind)
	}
}

// growCactus adds a cactus segment on top of a column of at most three.
func (w *World) growCactus(pos cube.Pos) {
	if w.rand.ChoiceIndex(30) != 0 {
		return
	}
	above := pos.Side(cube.FaceUp)
	if above.OutOfBounds() || !w.IsBlock(above, block.Air) {
		return
	}
	height := 1
	below := pos.Side(cube.FaceDown)
	for w.IsBlock(below, block.Cactus) {
		height++
		below = below.Side(cube.FaceDown)
	}
	if height >= 3 {
		return
	}
	w.SetBlockNotify(above, block.Cactus, 0)
}

// growSugarCanes adds a cane segment on top of a column of at most three.
func (w *World) growSugarCanes(pos cube.Pos) {
	if w.rand.ChoiceIndex(30) != 0 {
		return
	}
	above := pos.Side(cube.FaceUp)
	if above.OutOfBounds() || !w.IsBlock(above, block.Air) {
		return
	}
	height := 1
	below := pos.Side(cube.FaceDown)
	for w.IsBlock(below, block.SugarCanes) {
		height++
		below = below.Side(cube.FaceDown)
	}
	if height >= 3 {
		return
	}
	w.SetBlockNotify(above, block.SugarCanes, 0)
}

// meltSnow clears a thin snow layer when the block light alone is bright
// enough, as happens beside torches.
func (w *World) meltSnow(pos cube.Pos) {
	bl, _, ok := w.Light(pos)
	if ok && bl > 11 {
		w.SetBlockNotify(pos, block.Air, 0)
	}
}
