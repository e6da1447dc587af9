package world

import (
	"testing"

	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

func TestGrowTreePlacesTrunkAndCrown(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{8, 64, 8})
	w.growTree(cube.Pos{8, 64, 8}, 0)

	id, _, _ := w.Block(cube.Pos{8, 64, 8})
	if id != block.Log {
		t.Fatalf("trunk base must be a log, reads %d", id)
	}
	foundLeaves := false
	for y := 66; y < 74 && !foundLeaves; y++ {
		for dx := -2; dx <= 2 && !foundLeaves; dx++ {
			if lid, _, _ := w.Block(cube.Pos{8 + dx, y, 8}); lid == block.Leaves {
				foundLeaves = true
			}
		}
	}
	if !foundLeaves {
		t.Fatalf("tree must carry a leaf crown")
	}
}

func TestGrowTreeNeedsRoom(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{8, 64, 8})
	// A stone ceiling two blocks up blocks the trunk.
	w.SetBlock(cube.Pos{8, 66, 8}, block.Stone, 0)
	w.growTree(cube.Pos{8, 64, 8}, 0)
	if id, _, _ := w.Block(cube.Pos{8, 64, 8}); id == block.Log {
		t.Fatalf("tree must not grow without room")
	}
}

func TestGrowCactusColumnCap(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{4, 64, 4})
	w.SetBlock(cube.Pos{4, 63, 4}, block.Sand, 0)
	w.SetBlock(cube.Pos{4, 64, 4}, block.Cactus, 0)
	w.SetBlock(cube.Pos{4, 65, 4}, block.Cactus, 0)
	w.SetBlock(cube.Pos{4, 66, 4}, block.Cactus, 0)

	// Force the growth draw until it passes once; the column must still
	// refuse a fourth segment.
	for i := 0; i < 1000; i++ {
		w.growCactus(cube.Pos{4, 66, 4})
	}
	if id, _, _ := w.Block(cube.Pos{4, 67, 4}); id != block.Air {
		t.Fatalf("cactus must cap at three segments, got %d above", id)
	}
}

func TestSignTextLifecycle(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{4, 64, 4})
	w.SetBlock(cube.Pos{4, 64, 4}, block.Sign, 0)
	if !w.SetSignText(cube.Pos{4, 64, 4}, SignText{"a", "b", "c", "d"}) {
		t.Fatalf("sign text must store on a sign cell")
	}
	if w.SetSignText(cube.Pos{5, 64, 4}, SignText{}) {
		t.Fatalf("sign text must not store on air")
	}
	text, ok := w.SignTextAt(cube.Pos{4, 64, 4})
	if !ok || text != (SignText{"a", "b", "c", "d"}) {
		t.Fatalf("stored text wrong: %v", text)
	}
	// Replacing the sign clears the stored text.
	w.SetBlockSelfNotify(cube.Pos{4, 64, 4}, block.Air, 0)
	if _, ok := w.SignTextAt(cube.Pos{4, 64, 4}); ok {
		t.Fatalf("text must clear when the sign is gone")
	}
}

func TestPlaceBed(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{4, 64, 4})
	if !w.PlaceBed(cube.Pos{4, 64, 4}, cube.FaceEast) {
		t.Fatalf("bed must place on flat ground")
	}
	footID, footMeta, _ := w.Block(cube.Pos{4, 64, 4})
	headID, headMeta, _ := w.Block(cube.Pos{5, 64, 4})
	if footID != block.Bed || headID != block.Bed {
		t.Fatalf("bed halves missing: %d/%d", footID, headID)
	}
	if block.BedIsHead(footMeta) || !block.BedIsHead(headMeta) {
		t.Fatalf("head bit wrong: foot %04b head %04b", footMeta, headMeta)
	}
	if block.BedFace(footMeta) != cube.FaceEast {
		t.Fatalf("bed facing wrong")
	}
	// A bed against a wall must be refused.
	w.SetBlock(cube.Pos{8, 64, 8}, block.Stone, 0)
	if w.PlaceBed(cube.Pos{7, 64, 8}, cube.FaceEast) {
		t.Fatalf("bed must not place into a wall")
	}
}
