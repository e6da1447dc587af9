package generator

import (
	"testing"

	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/world/chunk"
)

func TestOverworldDeterministic(t *testing.T) {
	var g Overworld
	a := g.GenerateChunk(9999, cube.ChunkPos{3, -7})
	b := g.GenerateChunk(9999, cube.ChunkPos{3, -7})
	if *a != *b {
		t.Fatalf("same seed and position must generate identical chunks")
	}
	c := g.GenerateChunk(10000, cube.ChunkPos{3, -7})
	if *a == *c {
		t.Fatalf("different seeds should diverge")
	}
}

func TestOverworldShape(t *testing.T) {
	var g Overworld
	c := g.GenerateChunk(1, cube.ChunkPos{0, 0})
	for z := 0; z < chunk.Width; z++ {
		for x := 0; x < chunk.Width; x++ {
			if id, _ := c.Block(cube.Pos{x, 0, z}); id != block.Bedrock {
				t.Fatalf("floor at %d,%d is %d, want bedrock", x, z, id)
			}
			surfaced := false
			for y := 1; y < chunk.Height; y++ {
				id, _ := c.Block(cube.Pos{x, y, z})
				if id == block.Grass || (id == block.WaterStill && !surfaced) {
					surfaced = true
				}
			}
			if !surfaced {
				t.Fatalf("column %d,%d has no surface", x, z)
			}
		}
	}
}

func TestNetherShape(t *testing.T) {
	var g Nether
	c := g.GenerateChunk(1, cube.ChunkPos{0, 0})
	if id, _ := c.Block(cube.Pos{0, 0, 0}); id != block.Bedrock {
		t.Fatalf("nether floor must be bedrock")
	}
	if id, _ := c.Block(cube.Pos{0, chunk.Height - 1, 0}); id != block.Bedrock {
		t.Fatalf("nether ceiling must be bedrock")
	}
	foundRack := false
	for y := 1; y < 40; y++ {
		if id, _ := c.Block(cube.Pos{8, y, 8}); id == block.Netherrack {
			foundRack = true
		}
	}
	if !foundRack {
		t.Fatalf("nether body must contain netherrack")
	}
}

func TestFlatLayout(t *testing.T) {
	var g Flat
	c := g.GenerateChunk(0, cube.ChunkPos{5, 5})
	cases := []struct {
		y    int
		want uint8
	}{
		{0, block.Bedrock},
		{30, block.Stone},
		{61, block.Dirt},
		{62, block.Dirt},
		{63, block.Grass},
		{64, block.Air},
	}
	for _, cse := range cases {
		if id, _ := c.Block(cube.Pos{7, cse.y, 7}); id != cse.want {
			t.Fatalf("flat y=%d: got %d, want %d", cse.y, id, cse.want)
		}
	}
}
