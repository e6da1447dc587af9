package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// SignText is the four text lines of a sign block.
type SignText [4]string

// SetSignText writes the text of a sign cell. It reports false when the
// cell holds no sign.
func (w *World) SetSignText(pos cube.Pos, text SignText) bool {
	w.guard.Assert()
	id, _, ok := w.Block(pos)
	if !ok || (id != block.Sign && id != block.WallSign) {
		return false
	}
	if w.signs == nil {
		w.signs = make(map[cube.Pos]SignText)
	}
	w.signs[pos] = text
	return true
}

// SignTextAt returns the stored text of the sign at the position.
func (w *World) SignTextAt(pos cube.Pos) (SignText, bool) {
	text, ok := w.signs[pos]
	return text, ok
}

// clearSignText removes the stored text when the sign cell is gone. Called
// from the self-transition path of the sign blocks.
func (w *World) clearSignText(pos cube.Pos) {
	delete(w.signs, pos)
}
