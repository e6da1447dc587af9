// Package generator provides the default deterministic terrain generators.
// The world only depends on the Generator interface; anything producing the
// same chunk for the same (seed, position) pair can replace these.
package generator

import (
	"github.com/aquilax/go-perlin"
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/world/chunk"
)

const (
	seaLevel    = 64
	baseHeight  = 64
	heightSwing = 24
	noiseScale  = 1.0 / 128.0
)

// Overworld generates rolling perlin terrain with a bedrock floor, stone
// body, dirt cap and grass surface, flooded to sea level.
type Overworld struct{}

// GenerateChunk returns the terrain of the chunk at the position. The noise
// source is rebuilt from the seed on every call, which keeps the generator
// stateless and deterministic.
func (Overworld) GenerateChunk(seed int64, pos cube.ChunkPos) *chunk.Chunk {
	noise := perlin.NewPerlin(2, 2, 3, seed)
	c := &chunk.Chunk{}
	for z := 0; z < chunk.Width; z++ {
		for x := 0; x < chunk.Width; x++ {
			wx := float64(int(pos[0])*chunk.Width + x)
			wz := float64(int(pos[1])*chunk.Width + z)
			n := noise.Noise2D(wx*noiseScale, wz*noiseScale)
			surface := baseHeight + int(n*heightSwing)
			if surface < 8 {
				surface = 8
			}
			if surface > chunk.Height-10 {
				surface = chunk.Height - 10
			}
			for y := 0; y < chunk.Height; y++ {
				p := cube.Pos{x, y, z}
				switch {
				case y == 0:
					c.SetBlock(p, block.Bedrock, 0)
				case y < surface-3:
					c.SetBlock(p, block.Stone, 0)
				case y < surface:
					c.SetBlock(p, block.Dirt, 0)
				case y == surface:
					if surface < seaLevel {
						c.SetBlock(p, block.Dirt, 0)
					} else {
						c.SetBlock(p, block.Grass, 0)
					}
				case y <= seaLevel && y > surface:
					c.SetBlock(p, block.WaterStill, 0)
				}
			}
		}
	}
	return c
}

// Nether generates the nether terrain: a netherrack body with a lava sea and
// a bedrock floor and ceiling.
type Nether struct{}

// GenerateChunk ...
func (Nether) GenerateChunk(seed int64, pos cube.ChunkPos) *chunk.Chunk {
	noise := perlin.NewPerlin(2, 2, 3, seed^0x6E65746865)
	c := &chunk.Chunk{}
	for z := 0; z < chunk.Width; z++ {
		for x := 0; x < chunk.Width; x++ {
			wx := float64(int(pos[0])*chunk.Width + x)
			wz := float64(int(pos[1])*chunk.Width + z)
			n := noise.Noise2D(wx*noiseScale, wz*noiseScale)
			surface := 36 + int(n*16)
			for y := 0; y < chunk.Height; y++ {
				p := cube.Pos{x, y, z}
				switch {
				case y == 0 || y == chunk.Height-1:
					c.SetBlock(p, block.Bedrock, 0)
				case y <= surface:
					c.SetBlock(p, block.Netherrack, 0)
				case y <= 32:
					c.SetBlock(p, block.LavaStill, 0)
				}
			}
		}
	}
	return c
}

// Flat generates a fixed superflat world: bedrock, stone up to Y 60, two
// dirt layers and a grass surface at Y 63. Useful for tests and scenario worlds.
type Flat struct{}

// GenerateChunk ...
func (Flat) GenerateChunk(_ int64, _ cube.ChunkPos) *chunk.Chunk {
	c := &chunk.Chunk{}
	for z := 0; z < chunk.Width; z++ {
		for x := 0; x < chunk.Width; x++ {
			c.SetBlock(cube.Pos{x, 0, z}, block.Bedrock, 0)
			c.SetBlock(cube.Pos{x, 61, z}, block.Dirt, 0)
			c.SetBlock(cube.Pos{x, 62, z}, block.Dirt, 0)
			c.SetBlock(cube.Pos{x, 63, z}, block.Grass, 0)
			for y := 1; y < 61; y++ {
				c.SetBlock(cube.Pos{x, y, z}, block.Stone, 0)
			}
		}
	}
	return c
}
