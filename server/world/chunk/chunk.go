// Package chunk holds the dense storage of a 16x128x16 column of blocks along
// with the packed light, metadata, height and biome arrays that accompany it.
package chunk

import (
	"github.com/mc173/mc173/server/block/cube"
)

const (
	// Width is the size of a chunk in both the X and Z direction.
	Width = 16
	// Height is the vertical size of a chunk.
	Height = 128
	// Size2D is the number of columns in a chunk.
	Size2D = Width * Width
	// Size3D is the number of blocks in a chunk.
	Size3D = Size2D * Height
)

// Chunk is a column of blocks with its auxiliary arrays. All arrays are
// indexed with the layout used by the wire format: x in the top bits, then z,
// then y, so that a whole column of Y values is contiguous.
type Chunk struct {
	// Blocks holds the block id of every cell.
	Blocks [Size3D]byte
	// Metadata holds the packed 4-bit metadata of every cell.
	Metadata NibbleArray
	// BlockLight holds the packed 4-bit block light of every cell.
	BlockLight NibbleArray
	// SkyLight holds the packed 4-bit sky light of every cell.
	SkyLight NibbleArray
	// HeightMap holds, for each column, the Y of the first cell above the
	// column with full sky light.
	HeightMap [Size2D]uint8
	// Biomes holds the biome id of each column.
	Biomes [Size2D]uint8
}

// Index3D returns the index into the 3D arrays for a position. Only the
// relevant low bits of each component are used, so the position may be global.
func Index3D(pos cube.Pos) int {
	x := pos[0] & 0b1111
	z := pos[2] & 0b1111
	y := pos[1] & 0b1111111
	return x<<11 | z<<7 | y
}

// Index2D returns the index into the 2D arrays for a position, ignoring Y.
func Index2D(pos cube.Pos) int {
	x := pos[0] & 0b1111
	z := pos[2] & 0b1111
	return z<<4 | x
}

// Block returns the block id and metadata at the position.
func (c *Chunk) Block(pos cube.Pos) (id, meta uint8) {
	i := Index3D(pos)
	return c.Blocks[i], c.Metadata.At(i)
}

// SetBlock sets the block id and metadata at the position. It does not touch
// light or the height map: the world layer owns those updates.
func (c *Chunk) SetBlock(pos cube.Pos, id, meta uint8) {
	i := Index3D(pos)
	c.Blocks[i] = id
	c.Metadata.Set(i, meta)
}

// Light returns the block light and sky light at the position.
func (c *Chunk) Light(pos cube.Pos) (blockLight, skyLight uint8) {
	i := Index3D(pos)
	return c.BlockLight.At(i), c.SkyLight.At(i)
}

// SetBlockLight sets the block light value at the position.
func (c *Chunk) SetBlockLight(pos cube.Pos, v uint8) {
	c.BlockLight.Set(Index3D(pos), v)
}

// SetSkyLight sets the sky light value at the position.
func (c *Chunk) SetSkyLight(pos cube.Pos, v uint8) {
	c.SkyLight.Set(Index3D(pos), v)
}

// Height returns the height map value of the column at the position.
func (c *Chunk) Height(pos cube.Pos) uint8 {
	return c.HeightMap[Index2D(pos)]
}

// SetHeight sets the height map value of the column at the position.
func (c *Chunk) SetHeight(pos cube.Pos, h uint8) {
	c.HeightMap[Index2D(pos)] = h
}

// Biome returns the biome id of the column at the position.
func (c *Chunk) Biome(pos cube.Pos) uint8 {
	return c.Biomes[Index2D(pos)]
}

// Clone returns a deep copy of the chunk, used for snapshots handed to the
// persistence layer.
func (c *Chunk) Clone() *Chunk {
	cp := *c
	return &cp
}
