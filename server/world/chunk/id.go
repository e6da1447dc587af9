package chunk

import (
	"fmt"

	"github.com/mc173/mc173/server/block/cube"
)

// ID is the stable key of a chunk: the two 16-bit halves of the chunk X and Z
// packed into a 32-bit value, X in the high half.
type ID uint32

// IDFromPos packs a chunk position into an ID. An error is returned if either
// component does not fit in a signed 16-bit integer.
func IDFromPos(pos cube.ChunkPos) (ID, error) {
	if pos[0] < -32768 || pos[0] > 32767 || pos[1] < -32768 || pos[1] > 32767 {
		return 0, fmt.Errorf("chunk position %d,%d out of the 16-bit id range", pos[0], pos[1])
	}
	return ID(uint32(uint16(pos[0]))<<16 | uint32(uint16(pos[1]))), nil
}

// MustIDFromPos packs a chunk position into an ID and panics if it does not
// fit. Used on paths where the position was already validated.
func MustIDFromPos(pos cube.ChunkPos) ID {
	id, err := IDFromPos(pos)
	if err != nil {
		panic(err)
	}
	return id
}

// Pos unpacks the ID back into a chunk position.
func (id ID) Pos() cube.ChunkPos {
	return cube.ChunkPos{int32(int16(id >> 16)), int32(int16(id & 0xFFFF))}
}
