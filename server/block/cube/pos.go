package cube

// Pos holds the position of a block. The position is represented of an array
// with an x, y and z value, where the y value is positive.
type Pos [3]int

// X returns the X coordinate of the block position.
func (p Pos) X() int {
	return p[0]
}

// Y returns the Y coordinate of the block position.
func (p Pos) Y() int {
	return p[1]
}

// Z returns the Z coordinate of the block position.
func (p Pos) Z() int {
	return p[2]
}

// Add adds the coordinates of the position passed to those of p and returns
// the result.
func (p Pos) Add(o Pos) Pos {
	return Pos{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

// Side returns the position on the side of this block position, at a specific
// face.
func (p Pos) Side(face Face) Pos {
	switch face {
	case FaceDown:
		p[1]--
	case FaceUp:
		p[1]++
	case FaceNorth:
		p[2]--
	case FaceSouth:
		p[2]++
	case FaceWest:
		p[0]--
	case FaceEast:
		p[0]++
	}
	return p
}

// OutOfBounds checks if the position is out of the vertical world bounds.
func (p Pos) OutOfBounds() bool {
	return p[1] < 0 || p[1] >= WorldHeight
}

// Neighbours calls the function passed for each of the block position's six
// neighbours.
func (p Pos) Neighbours(f func(neighbour Pos)) {
	for _, face := range Faces() {
		f(p.Side(face))
	}
}

// WorldHeight is the exclusive upper bound of the Y coordinate of a block.
const WorldHeight = 128

// ChunkPos holds the position of a chunk. The type is provided as an alias of
// two ints for readability: the X and Z of the chunk, which are the block X
// and Z shifted right by four.
type ChunkPos [2]int32

// X returns the X coordinate of the chunk position.
func (p ChunkPos) X() int32 {
	return p[0]
}

// Z returns the Z coordinate of the chunk position.
func (p ChunkPos) Z() int32 {
	return p[1]
}

// PosToChunkPos returns the position of the chunk that the block position
// passed falls in, and whether the block position has a valid Y coordinate.
func PosToChunkPos(p Pos) (ChunkPos, bool) {
	if p.OutOfBounds() {
		return ChunkPos{}, false
	}
	return ChunkPos{int32(p[0] >> 4), int32(p[2] >> 4)}, true
}
