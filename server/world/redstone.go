package world

import (
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/world/redstone"
)

// notifyRedstone resolves the wire network connected to the wire at pos. The
// solver captures its recursion in local worklists, so the notification
// dispatcher never grows the stack with it.
func (w *World) notifyRedstone(pos cube.Pos) {
	redstone.Update(w, pos)
}
