package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// Interact runs the right-click behaviour of the block at the position.
// It reports whether the block consumed the interaction.
func (w *World) Interact(pos cube.Pos) bool {
	w.guard.Assert()
	id, meta, ok := w.Block(pos)
	if !ok {
		return false
	}
	switch id {
	case block.Lever:
		block.LeverSetOn(&meta, !block.LeverIsOn(meta))
		w.SetBlockNotify(pos, id, meta)
		// The support block conducts the change to anything mounted on it.
		if face, _, ok := block.LeverFace(meta); ok {
			w.NotifyBlocksAround(pos.Side(face), block.Lever)
		}
		return true
	case block.Button:
		if block.ButtonIsPressed(meta) {
			return true
		}
		block.ButtonSetPressed(&meta, true)
		w.SetBlockNotify(pos, id, meta)
		if face, ok := block.ButtonFace(meta); ok {
			w.NotifyBlocksAround(pos.Side(face), block.Button)
		}
		w.ScheduleBlockTick(pos, id, 20)
		return true
	case block.WoodDoor:
		lower, lowerMeta := pos, meta
		if block.DoorIsUpper(meta) {
			lower = pos.Side(cube.FaceDown)
			var ok bool
			if _, lowerMeta, ok = w.Block(lower); !ok {
				return false
			}
		}
		block.DoorSetOpen(&lowerMeta, !block.DoorIsOpen(lowerMeta))
		w.SetBlockSelfNotify(lower, id, lowerMeta)
		upperMeta := lowerMeta
		block.DoorSetUpper(&upperMeta, true)
		w.SetBlockSelfNotify(lower.Side(cube.FaceUp), id, upperMeta)
		return true
	case block.Trapdoor:
		block.TrapdoorSetOpen(&meta, !block.TrapdoorIsOpen(meta))
		w.SetBlockNotify(pos, id, meta)
		return true
	case block.Repeater, block.RepeaterLit:
		block.RepeaterSetDelay(&meta, block.RepeaterDelay(meta)+1)
		w.SetBlockNotify(pos, id, meta)
		return true
	}
	return false
}
