package world

import (
	"testing"

	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// buildFrame places a standard 4x5 obsidian frame with a 2x3 interior whose
// bottom-left interior cell is at the given position, spanning the X axis.
func buildFrame(w *World, origin cube.Pos) {
	for d := -1; d <= 2; d++ {
		w.SetBlock(cube.Pos{origin[0] + d, origin[1] - 1, origin[2]}, block.Obsidian, 0)
		w.SetBlock(cube.Pos{origin[0] + d, origin[1] + 3, origin[2]}, block.Obsidian, 0)
	}
	for dy := 0; dy < 3; dy++ {
		w.SetBlock(cube.Pos{origin[0] - 1, origin[1] + dy, origin[2]}, block.Obsidian, 0)
		w.SetBlock(cube.Pos{origin[0] + 2, origin[1] + dy, origin[2]}, block.Obsidian, 0)
		// The interior must be clear.
		w.SetBlock(cube.Pos{origin[0], origin[1] + dy, origin[2]}, block.Air, 0)
		w.SetBlock(cube.Pos{origin[0] + 1, origin[1] + dy, origin[2]}, block.Air, 0)
	}
}

func TestPortalIgnites(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{8, 70, 8})
	origin := cube.Pos{8, 70, 8}
	buildFrame(w, origin)

	// Fire in the frame interior lights the portal.
	w.SetBlockSelfNotify(origin, block.Fire, 0)

	for dy := 0; dy < 3; dy++ {
		for d := 0; d < 2; d++ {
			p := cube.Pos{origin[0] + d, origin[1] + dy, origin[2]}
			if id, _, _ := w.Block(p); id != block.Portal {
				t.Fatalf("interior cell %v must be portal, reads %d", p, id)
			}
		}
	}
}

func TestPortalNeedsCompleteFrame(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{8, 70, 8})
	origin := cube.Pos{8, 70, 8}
	buildFrame(w, origin)
	// Remove the middle block of the left side of the border.
	w.SetBlock(cube.Pos{origin[0] - 1, origin[1] + 1, origin[2]}, block.Air, 0)

	w.SetBlockSelfNotify(origin, block.Fire, 0)
	if id, _, _ := w.Block(cube.Pos{origin[0] + 1, origin[1] + 1, origin[2]}); id == block.Portal {
		t.Fatalf("broken frame must not light")
	}
}

func TestPortalCollapsesWithFrame(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{8, 70, 8})
	origin := cube.Pos{8, 70, 8}
	buildFrame(w, origin)
	w.SetBlockSelfNotify(origin, block.Fire, 0)
	if id, _, _ := w.Block(origin); id != block.Portal {
		t.Fatalf("portal must be lit before the collapse test")
	}

	// Breaking a frame block under the sheet collapses every portal cell.
	w.SetBlockNotify(cube.Pos{origin[0], origin[1] - 1, origin[2]}, block.Air, 0)
	for dy := 0; dy < 3; dy++ {
		for d := 0; d < 2; d++ {
			p := cube.Pos{origin[0] + d, origin[1] + dy, origin[2]}
			if id, _, _ := w.Block(p); id == block.Portal {
				t.Fatalf("portal cell %v must collapse with the frame", p)
			}
		}
	}
}
