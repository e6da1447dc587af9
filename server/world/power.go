package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// ActivePowerFrom returns the redstone power emitted by the block at pos
// through the given face of that block. Wire contributes its own power level
// sideways and downward; every other source emits full power on the faces it
// drives.
func (w *World) ActivePowerFrom(pos cube.Pos, through cube.Face) uint8 {
	id, meta, ok := w.Block(pos)
	if !ok {
		return 0
	}
	switch id {
	case block.Lever:
		if block.LeverIsOn(meta) {
			return 15
		}
	case block.Button:
		if block.ButtonIsPressed(meta) {
			return 15
		}
	case block.StonePressurePlate, block.WoodPressurePlate:
		if meta != 0 {
			return 15
		}
	case block.DetectorRail:
		if meta&0x8 != 0 {
			return 15
		}
	case block.RedstoneTorchLit:
		// A lit torch drives every face except the one toward its support.
		if face, ok := block.TorchFace(meta); !ok || through != face {
			return 15
		}
	case block.RepeaterLit:
		if through == block.RepeaterFace(meta) {
			return 15
		}
	case block.Redstone:
		// Wire drives the block it sits on and the blocks beside it, never
		// the block above.
		if through != cube.FaceUp {
			return meta
		}
	}
	return 0
}

// strongPowerFrom is like ActivePowerFrom but excludes wire: only strong
// sources conduct through opaque blocks.
func (w *World) strongPowerFrom(pos cube.Pos, through cube.Face) uint8 {
	if w.IsBlock(pos, block.Redstone) {
		return 0
	}
	return w.ActivePowerFrom(pos, through)
}

// HasPassivePowerFrom reports whether the block at pos transmits power
// through the given face of that block: either it emits directly, or it is
// an opaque cube conducting a strong source from one of its other sides, or
// it is an opaque cube with powered wire beside it or on top of it.
func (w *World) HasPassivePowerFrom(pos cube.Pos, through cube.Face) bool {
	if w.ActivePowerFrom(pos, through) > 0 {
		return true
	}
	if !w.IsOpaqueCube(pos) {
		return false
	}
	for _, face := range cube.Faces() {
		n := pos.Side(face)
		if w.strongPowerFrom(n, face.Opposite()) > 0 {
			return true
		}
		if id, meta, ok := w.Block(n); ok && id == block.Redstone && meta > 0 && face != cube.FaceDown {
			// Wire beside or on top of the cube powers it weakly.
			return true
		}
	}
	return false
}

// HasPassivePower reports whether any neighbour transmits power into the
// block at pos.
func (w *World) HasPassivePower(pos cube.Pos) bool {
	for _, face := range cube.Faces() {
		if w.HasPassivePowerFrom(pos.Side(face), face.Opposite()) {
			return true
		}
	}
	return false
}
