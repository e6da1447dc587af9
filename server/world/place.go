package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// CanPlaceBlock reports whether the block id may be placed at the position,
// oriented toward the given face. The face points from the placed block
// toward the block it was clicked against. The final gate is that the
// targeted cell itself is replaceable.
func (w *World) CanPlaceBlock(pos cube.Pos, face cube.Face, id uint8) bool {
	base := true
	switch id {
	case block.Button:
		base = !face.IsVertical() && w.IsOpaqueCube(pos.Side(face))
	case block.Lever:
		base = face != cube.FaceUp && w.IsOpaqueCube(pos.Side(face))
	case block.Ladder:
		base = w.isOpaqueAround(pos)
	case block.Trapdoor:
		base = !face.IsVertical() && w.IsOpaqueCube(pos.Side(face))
	case block.PistonExt, block.PistonMoving:
		base = false
	case block.DeadBush:
		base = w.IsBlock(pos.Side(cube.FaceDown), block.Sand)
	case block.Dandelion, block.Poppy, block.Sapling, block.TallGrass:
		below, _, _ := w.Block(pos.Side(cube.FaceDown))
		base = below == block.Grass || below == block.Dirt || below == block.Farmland
	case block.Wheat:
		base = w.IsBlock(pos.Side(cube.FaceDown), block.Farmland)
	case block.Cactus:
		base = w.canPlaceCactus(pos)
	case block.SugarCanes:
		base = w.canPlaceSugarCanes(pos)
	case block.Cake:
		base = w.IsSolid(pos.Side(cube.FaceDown))
	case block.Bed:
		base = w.IsSolid(pos.Side(cube.FaceDown))
	case block.Sign:
		base = w.IsOpaqueCube(pos.Side(cube.FaceDown))
	case block.WallSign:
		base = !face.IsVertical() && w.IsOpaqueCube(pos.Side(face))
	case block.Chest:
		base = w.canPlaceChest(pos)
	case block.WoodDoor, block.IronDoor:
		base = w.canPlaceDoor(pos)
	case block.Fence:
		below := pos.Side(cube.FaceDown)
		base = w.IsBlock(below, block.Fence) || w.IsSolid(below)
	case block.Fire:
		base = w.canPlaceFire(pos)
	case block.Torch, block.RedstoneTorch, block.RedstoneTorchLit:
		base = w.IsOpaqueCube(pos.Side(face))
	case block.RedMushroom, block.BrownMushroom,
		block.WoodPressurePlate, block.StonePressurePlate,
		block.Pumpkin, block.PumpkinLit,
		block.Rail, block.PoweredRail, block.DetectorRail,
		block.Repeater, block.RepeaterLit,
		block.Redstone, block.Snow:
		base = w.IsOpaqueCube(pos.Side(cube.FaceDown))
	}
	return base && w.IsReplaceable(pos)
}

func (w *World) canPlaceCactus(pos cube.Pos) bool {
	for _, face := range cube.HorizontalFaces() {
		if w.IsSolid(pos.Side(face)) {
			return false
		}
	}
	below, _, ok := w.Block(pos.Side(cube.FaceDown))
	return ok && (below == block.Cactus || below == block.Sand)
}

func (w *World) canPlaceSugarCanes(pos cube.Pos) bool {
	below := pos.Side(cube.FaceDown)
	id, _, ok := w.Block(below)
	if !ok || (id != block.SugarCanes && id != block.Grass && id != block.Dirt) {
		return false
	}
	for _, face := range cube.HorizontalFaces() {
		if w.Material(below.Side(face)) == block.MaterialWater {
			return true
		}
	}
	return false
}

func (w *World) canPlaceChest(pos cube.Pos) bool {
	foundSingle := false
	for _, face := range cube.HorizontalFaces() {
		neighbour := pos.Side(face)
		if !w.IsBlock(neighbour, block.Chest) {
			continue
		}
		// A second chest beside the target forbids the placement, as does a
		// neighbour that is already half of a double chest.
		if foundSingle {
			return false
		}
		for _, nf := range cube.HorizontalFaces() {
			if face == nf.Opposite() {
				continue
			}
			if w.IsBlock(neighbour.Side(nf), block.Chest) {
				return false
			}
		}
		foundSingle = true
	}
	return true
}

func (w *World) canPlaceDoor(pos cube.Pos) bool {
	return w.IsOpaqueCube(pos.Side(cube.FaceDown)) && w.IsReplaceable(pos.Side(cube.FaceUp))
}

func (w *World) canPlaceFire(pos cube.Pos) bool {
	if w.IsOpaqueCube(pos.Side(cube.FaceDown)) {
		return true
	}
	for _, face := range cube.Faces() {
		if id, _, ok := w.Block(pos.Side(face)); ok && block.IsFlammable(id) {
			return true
		}
	}
	return false
}

func (w *World) isOpaqueAround(pos cube.Pos) bool {
	for _, face := range cube.HorizontalFaces() {
		if w.IsOpaqueCube(pos.Side(face)) {
			return true
		}
	}
	return false
}

// PlaceBlock writes the block at the position with metadata oriented from
// the face. Legality is not checked here; callers validate with
// CanPlaceBlock first.
func (w *World) PlaceBlock(pos cube.Pos, face cube.Face, id, meta uint8) {
	w.guard.Assert()
	switch id {
	case block.Button:
		block.ButtonSetFace(&meta, face)
	case block.Trapdoor:
		block.TrapdoorSetFace(&meta, face)
	case block.Piston, block.StickyPiston:
		block.PistonSetFace(&meta, face.Opposite())
	case block.WoodStair, block.CobblestoneStair:
		block.StairSetFace(&meta, face)
	case block.Repeater, block.RepeaterLit:
		block.RepeaterSetFace(&meta, face)
	case block.Pumpkin, block.PumpkinLit:
		block.PumpkinSetFace(&meta, face)
	case block.Furnace, block.FurnaceLit, block.Dispenser:
		block.FurnaceSetFace(&meta, face)
	case block.Torch, block.RedstoneTorch, block.RedstoneTorchLit:
		block.TorchSetFace(&meta, face)
	case block.Lever:
		w.placeLever(pos, face, meta)
		return
	case block.Ladder:
		w.placeLadder(pos, face, meta)
		return
	case block.WoodDoor, block.IronDoor:
		w.placeDoor(pos, face, id, meta)
		return
	case block.WallSign:
		block.LadderSetFace(&meta, face)
	}
	w.SetBlockNotify(pos, id, meta)
}

// PlaceBed writes the foot and head halves of a bed, the head one cell
// toward the facing direction. It reports false when the head cell is not
// free or either support is missing.
func (w *World) PlaceBed(pos cube.Pos, facing cube.Face) bool {
	w.guard.Assert()
	if facing.IsVertical() {
		facing = cube.FaceSouth
	}
	head := pos.Side(facing)
	if !w.IsReplaceable(pos) || !w.IsReplaceable(head) {
		return false
	}
	if !w.IsSolid(pos.Side(cube.FaceDown)) || !w.IsSolid(head.Side(cube.FaceDown)) {
		return false
	}
	var meta uint8
	block.BedSetFace(&meta, facing)
	headMeta := meta
	block.BedSetHead(&headMeta, true)
	w.SetBlockSelfNotify(head, block.Bed, headMeta)
	w.SetBlockNotify(pos, block.Bed, meta)
	return true
}

// placeLever orients a lever from the placement face; floor levers roll
// their handle axis with the world PRNG.
func (w *World) placeLever(pos cube.Pos, face cube.Face, meta uint8) {
	axis := cube.Z
	if face == cube.FaceDown {
		if w.rand.ChoiceIndex(2) == 0 {
			axis = cube.Z
		} else {
			axis = cube.X
		}
	}
	block.LeverSetFace(&meta, face, axis)
	w.SetBlockNotify(pos, block.Lever, meta)
}

// placeLadder prefers the desired wall but falls back to a deterministic
// search over the south, north, east and west walls.
func (w *World) placeLadder(pos cube.Pos, face cube.Face, meta uint8) {
	if face.IsVertical() || !w.IsOpaqueCube(pos.Side(face)) {
		for _, around := range []cube.Face{cube.FaceSouth, cube.FaceNorth, cube.FaceEast, cube.FaceWest} {
			if w.IsOpaqueCube(pos.Side(around)) {
				face = around
				break
			}
		}
	}
	block.LadderSetFace(&meta, face)
	w.SetBlockNotify(pos, block.Ladder, meta)
}

// placeDoor writes both door halves; the upper half goes in without
// neighbour notifications so it is not broken before the pair is complete.
func (w *World) placeDoor(pos cube.Pos, face cube.Face, id, meta uint8) {
	if !face.IsVertical() {
		block.DoorSetFace(&meta, face)
	}
	upper := meta
	block.DoorSetUpper(&upper, true)
	w.SetBlockSelfNotify(pos.Side(cube.FaceUp), id, upper)
	w.SetBlockNotify(pos, id, meta)
}
