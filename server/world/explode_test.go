package world

import (
	"testing"

	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

func TestExplodeClearsCrater(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{8, 64, 8})
	w.DrainEvents()

	w.Explode(cube.Pos{8, 63, 8}, 3)

	if id, _, _ := w.Block(cube.Pos{8, 63, 8}); id != block.Air {
		t.Fatalf("explosion centre must clear, reads %d", id)
	}
	var ev *Event
	for _, e := range w.DrainEvents() {
		if e.Kind == EventExplosion {
			cp := e
			ev = &cp
		}
	}
	if ev == nil {
		t.Fatalf("explosion event missing")
	}
	if len(ev.Destroyed) == 0 {
		t.Fatalf("explosion destroyed nothing")
	}
	for _, p := range ev.Destroyed {
		if id, _, _ := w.Block(p); id != block.Air {
			t.Fatalf("destroyed cell %v still reads %d", p, id)
		}
	}
}

func TestExplodeSparesBedrockAndObsidian(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{8, 64, 8})
	w.SetBlock(cube.Pos{8, 64, 8}, block.Obsidian, 0)

	w.Explode(cube.Pos{8, 65, 8}, 3)

	if id, _, _ := w.Block(cube.Pos{8, 64, 8}); id != block.Obsidian {
		t.Fatalf("obsidian must survive a TNT-sized blast")
	}
	if id, _, _ := w.Block(cube.Pos{8, 0, 8}); id != block.Bedrock {
		t.Fatalf("bedrock must always survive")
	}
}

func TestTNTIgnitesFromRedstone(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{8, 64, 8})
	w.SetBlock(cube.Pos{8, 64, 8}, block.TNT, 0)
	// A lever right beside the TNT powers it when flipped.
	var meta uint8
	block.LeverSetFace(&meta, cube.FaceDown, cube.Z)
	w.SetBlockNotify(cube.Pos{9, 64, 8}, block.Lever, meta)
	w.Interact(cube.Pos{9, 64, 8})

	if id, _, _ := w.Block(cube.Pos{8, 64, 8}); id != block.Air {
		t.Fatalf("powered TNT must leave its cell, reads %d", id)
	}
	// The fuse burns for 80 ticks before the blast.
	for i := 0; i < 85; i++ {
		w.Tick()
	}
	found := false
	for _, e := range w.DrainEvents() {
		if e.Kind == EventExplosion {
			found = true
		}
	}
	if !found {
		t.Fatalf("TNT fuse must end in an explosion")
	}
}
