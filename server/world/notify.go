package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// NotifyBlocksAround notifies all six neighbours of the position; the origin
// block id is the id that triggered the notification.
func (w *World) NotifyBlocksAround(pos cube.Pos, originID uint8) {
	for _, face := range cube.Faces() {
		w.NotifyBlock(pos.Side(face), originID)
	}
}

// NotifyBlock asks the block at the position to re-evaluate itself after a
// neighbour changed. Unloaded positions are ignored.
func (w *World) NotifyBlock(pos cube.Pos, originID uint8) {
	w.guard.Assert()
	id, meta, ok := w.Block(pos)
	if !ok {
		return
	}
	w.notifyBlockUnchecked(pos, id, meta, originID)
}

func (w *World) notifyBlockUnchecked(pos cube.Pos, id, meta, originID uint8) {
	switch block.FamilyOf(id) {
	case block.FamilyRedstoneWire:
		if originID != block.Redstone {
			w.notifyRedstone(pos)
		}
	case block.FamilyMovingFluid:
		w.notifyFluid(pos, id, meta)
	case block.FamilyStillFluid:
		w.notifyFluidStill(pos, id, meta)
	case block.FamilyTrapdoor:
		w.notifyTrapdoor(pos, meta, originID)
	case block.FamilyDoor:
		w.notifyDoor(pos, id, meta, originID)
	case block.FamilyFlower:
		w.notifyFlower(pos, id)
	case block.FamilyMushroom:
		w.notifyMushroom(pos)
	case block.FamilyCactus:
		w.notifyCactus(pos)
	default:
		switch id {
		case block.TNT:
			if block.IsRedstoneComponent(originID) && w.HasPassivePower(pos) {
				w.igniteTNT(pos)
			}
		case block.Portal:
			w.notifyPortal(pos, meta)
		case block.Repeater, block.RepeaterLit:
			w.notifyRepeater(pos, id, meta)
		case block.RedstoneTorch, block.RedstoneTorchLit:
			w.notifyRedstoneTorch(pos, id)
		}
	}
}

// notifyFluid converts lava to obsidian or cobblestone when it touches
// water: a source hardens to obsidian, flow within four cells of the source
// to cobblestone.
func (w *World) notifyFluid(pos cube.Pos, id, meta uint8) {
	if id != block.LavaMoving {
		return
	}
	distance := block.FluidDistance(meta)
	for _, face := range cube.HorizontalFaces() {
		if nid, _, ok := w.Block(pos.Side(face)); ok && block.IsWater(nid) {
			if distance == 0 {
				w.SetBlockNotify(pos, block.Obsidian, 0)
			} else if distance <= 4 {
				w.SetBlockNotify(pos, block.Cobblestone, 0)
			}
			return
		}
	}
}

// notifyFluidStill re-emits a still fluid as its moving form so that flow
// recomputes from the disturbed cell.
func (w *World) notifyFluidStill(pos cube.Pos, id, meta uint8) {
	moving := block.StillToMoving(id)
	w.notifyFluid(pos, moving, meta)
	w.SetBlockSelfNotify(pos, moving, meta)
}

// notifyFlower breaks a flower-family block when the light is too low or its
// support block is not in the family's allow-list.
func (w *World) notifyFlower(pos cube.Pos, id uint8) {
	stay := block.FlowerSupport(id)
	if w.MaxLight(pos) >= 8 {
		belowID, _, _ := w.Block(pos.Side(cube.FaceDown))
		for _, s := range stay {
			if s == belowID {
				return
			}
		}
	}
	w.BreakBlock(pos)
}

// notifyMushroom breaks a mushroom when the light is too high or its support
// is not an opaque cube.
func (w *World) notifyMushroom(pos cube.Pos) {
	if w.MaxLight(pos) >= 13 || !w.IsOpaqueCube(pos.Side(cube.FaceDown)) {
		w.BreakBlock(pos)
	}
}

// notifyCactus breaks a cactus when any horizontal neighbour is solid or the
// block below is neither cactus nor sand.
func (w *World) notifyCactus(pos cube.Pos) {
	for _, face := range cube.HorizontalFaces() {
		if w.IsSolid(pos.Side(face)) {
			w.BreakBlock(pos)
			return
		}
	}
	belowID, _, ok := w.Block(pos.Side(cube.FaceDown))
	if !ok || (belowID != block.Cactus && belowID != block.Sand) {
		w.BreakBlock(pos)
	}
}

// notifyTrapdoor breaks the trapdoor when its wall is gone, and otherwise
// syncs its open bit to the passive power around it when the notification
// came from a redstone component.
func (w *World) notifyTrapdoor(pos cube.Pos, meta, originID uint8) {
	face := block.TrapdoorFace(meta)
	if !w.IsOpaqueCube(pos.Side(face)) {
		w.BreakBlock(pos)
		return
	}
	if !block.IsRedstoneComponent(originID) {
		return
	}
	open := block.TrapdoorIsOpen(meta)
	powered := w.HasPassivePower(pos)
	if open != powered {
		block.TrapdoorSetOpen(&meta, powered)
		w.SetBlockNotify(pos, block.Trapdoor, meta)
	}
}

// notifyDoor propagates upper-half notifications to the lower half, breaks
// unsupported doors and recomputes the open state from the power sampled
// around both halves when a redstone component changed.
func (w *World) notifyDoor(pos cube.Pos, id, meta, originID uint8) {
	if block.DoorIsUpper(meta) {
		// Redirect to the lower half when it is the same door; a dangling
		// upper half silently turns to air, upper halves drop nothing.
		below := pos.Side(cube.FaceDown)
		if belowID, belowMeta, ok := w.Block(below); ok && belowID == id {
			w.notifyDoor(below, belowID, belowMeta, originID)
			return
		}
		w.SetBlockNotify(pos, block.Air, 0)
		return
	}

	above := pos.Side(cube.FaceUp)
	if aboveID, _, ok := w.Block(above); ok && aboveID != id {
		w.BreakBlock(pos)
		return
	}
	if !w.IsOpaqueCube(pos.Side(cube.FaceDown)) {
		// Breaking the lower half notifies and destroys the upper one.
		w.BreakBlock(pos)
		return
	}

	if !block.IsRedstoneComponent(originID) {
		return
	}

	powered := w.HasPassivePowerFrom(pos.Side(cube.FaceDown), cube.FaceUp) ||
		w.HasPassivePowerFrom(above.Side(cube.FaceUp), cube.FaceDown)
	if !powered {
		for _, face := range cube.Faces() {
			fp := pos.Side(face)
			if w.HasPassivePowerFrom(fp, face.Opposite()) ||
				w.HasPassivePowerFrom(fp.Side(cube.FaceUp), face.Opposite()) {
				powered = true
				break
			}
		}
	}

	if block.DoorIsOpen(meta) == powered {
		return
	}
	block.DoorSetOpen(&meta, powered)

	// Write both halves without neighbour notifications so the upper half is
	// not re-broken mid-update, then notify around the pair.
	w.SetBlockSelfNotify(pos, id, meta)
	upperMeta := meta
	block.DoorSetUpper(&upperMeta, true)
	w.SetBlockSelfNotify(above, id, upperMeta)

	w.NotifyBlock(pos.Side(cube.FaceDown), id)
	w.NotifyBlock(above.Side(cube.FaceUp), id)
	for _, face := range cube.Faces() {
		w.NotifyBlock(pos.Side(face), id)
		w.NotifyBlock(above.Side(face), id)
	}
}
