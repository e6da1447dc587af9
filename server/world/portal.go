package world

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// portalMaxInner bounds the inner size of a portal frame in both
// directions.
const portalMaxInner = 21

// TryIgnitePortal checks for a valid obsidian frame around the position and
// fills its interior with portal blocks. The position may be any interior
// cell, typically where fire was just placed. It reports whether a portal
// lit.
func (w *World) TryIgnitePortal(pos cube.Pos) bool {
	w.guard.Assert()
	for _, axis := range []cube.Axis{cube.X, cube.Z} {
		if inner, ok := w.findPortalFrame(pos, axis); ok {
			meta := uint8(0)
			if axis == cube.Z {
				meta = 1
			}
			for _, p := range inner {
				w.SetBlock(p, block.Portal, meta)
			}
			w.log.Info("portal lit", "x", pos[0], "y", pos[1], "z", pos[2])
			return true
		}
	}
	return false
}

// findPortalFrame walks the interior of a candidate frame along the axis
// and verifies the obsidian border. It returns the interior cells.
func (w *World) findPortalFrame(pos cube.Pos, axis cube.Axis) ([]cube.Pos, bool) {
	step := cube.Pos{1, 0, 0}
	if axis == cube.Z {
		step = cube.Pos{0, 0, 1}
	}
	isFrame := func(p cube.Pos) bool { return w.IsBlock(p, block.Obsidian) }
	interior := func(p cube.Pos) bool {
		id, _, ok := w.Block(p)
		return ok && (id == block.Air || id == block.Fire || id == block.Portal)
	}

	// Slide to the bottom-left interior corner.
	origin := pos
	for n := 0; interior(origin.Side(cube.FaceDown)) && n < portalMaxInner; n++ {
		origin = origin.Side(cube.FaceDown)
	}
	for n := 0; interior(cube.Pos{origin[0] - step[0], origin[1], origin[2] - step[2]}) && n < portalMaxInner; n++ {
		origin = cube.Pos{origin[0] - step[0], origin[1], origin[2] - step[2]}
	}

	// Measure the interior.
	width := 0
	for width < portalMaxInner && interior(cube.Pos{origin[0] + width*step[0], origin[1], origin[2] + width*step[2]}) {
		width++
	}
	height := 0
	for height < portalMaxInner && interior(cube.Pos{origin[0], origin[1] + height, origin[2]}) {
		height++
	}
	if width < 2 || height < 3 {
		return nil, false
	}

	var inner []cube.Pos
	for dy := 0; dy < height; dy++ {
		for d := 0; d < width; d++ {
			p := cube.Pos{origin[0] + d*step[0], origin[1] + dy, origin[2] + d*step[2]}
			if !interior(p) {
				return nil, false
			}
			inner = append(inner, p)
			// The border beside the edge cells must be obsidian.
			if d == 0 && !isFrame(cube.Pos{p[0] - step[0], p[1], p[2] - step[2]}) {
				return nil, false
			}
			if d == width-1 && !isFrame(cube.Pos{p[0] + step[0], p[1], p[2] + step[2]}) {
				return nil, false
			}
		}
	}
	for d := 0; d < width; d++ {
		below := cube.Pos{origin[0] + d*step[0], origin[1] - 1, origin[2] + d*step[2]}
		above := cube.Pos{origin[0] + d*step[0], origin[1] + height, origin[2] + d*step[2]}
		if !isFrame(below) || !isFrame(above) {
			return nil, false
		}
	}
	return inner, true
}

// notifyPortal breaks the whole portal sheet when its frame or a
// neighbouring portal block disappears.
func (w *World) notifyPortal(pos cube.Pos, meta uint8) {
	axisStep := cube.Pos{1, 0, 0}
	if meta&0x1 != 0 {
		axisStep = cube.Pos{0, 0, 1}
	}
	// A portal cell survives while it is sandwiched between portal or
	// obsidian cells vertically and along its axis.
	supported := func(p cube.Pos) bool {
		id, _, ok := w.Block(p)
		return ok && (id == block.Portal || id == block.Obsidian)
	}
	if supported(pos.Side(cube.FaceUp)) && supported(pos.Side(cube.FaceDown)) &&
		supported(cube.Pos{pos[0] - axisStep[0], pos[1], pos[2] - axisStep[2]}) &&
		supported(cube.Pos{pos[0] + axisStep[0], pos[1], pos[2] + axisStep[2]}) {
		return
	}
	// Vanish without drops; neighbouring portal cells collapse in turn.
	w.SetBlockNotify(pos, block.Air, 0)
}
