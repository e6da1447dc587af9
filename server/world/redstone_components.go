package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// notifyRepeater arms a delayed state flip when the repeater's input no
// longer matches its output state.
func (w *World) notifyRepeater(pos cube.Pos, id, meta uint8) {
	lit := id == block.RepeaterLit
	if w.repeaterInputPowered(pos, meta) != lit {
		w.ScheduleBlockTick(pos, id, block.RepeaterDelayTicks(meta))
	}
}

// tickRepeater flips the repeater to match its input.
func (w *World) tickRepeater(pos cube.Pos, id, meta uint8) {
	lit := id == block.RepeaterLit
	powered := w.repeaterInputPowered(pos, meta)
	if powered == lit {
		return
	}
	next := block.Repeater
	if powered {
		next = block.RepeaterLit
	}
	w.SetBlockNotify(pos, next, meta)
}

// repeaterInputPowered samples the cell behind the repeater's input face.
func (w *World) repeaterInputPowered(pos cube.Pos, meta uint8) bool {
	out := block.RepeaterFace(meta)
	back := pos.Side(out.Opposite())
	return w.HasPassivePowerFrom(back, out)
}

// notifyRedstoneTorch arms the torch inversion check shortly after any
// neighbour change.
func (w *World) notifyRedstoneTorch(pos cube.Pos, id uint8) {
	w.ScheduleBlockTick(pos, id, 2)
}

// tickRedstoneTorch inverts the torch against the power state of its
// support block: a powered support extinguishes the torch.
func (w *World) tickRedstoneTorch(pos cube.Pos, id, meta uint8) {
	face, ok := block.TorchFace(meta)
	if !ok {
		return
	}
	support := pos.Side(face)
	powered := w.HasPassivePower(support)
	lit := id == block.RedstoneTorchLit
	if powered != lit {
		return
	}
	next := block.RedstoneTorchLit
	if powered {
		next = block.RedstoneTorch
	}
	w.SetBlockNotify(pos, next, meta)
}
