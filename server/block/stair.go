package block

import "github.com/mc173/mc173/server/block/cube"

// Stair metadata holds the ascent direction in the low two bits.

// StairFace returns the horizontal direction the stair ascends toward.
func StairFace(meta uint8) cube.Face {
	switch meta & 0x3 {
	case 0:
		return cube.FaceEast
	case 1:
		return cube.FaceWest
	case 2:
		return cube.FaceSouth
	default:
		return cube.FaceNorth
	}
}

// StairSetFace writes the ascent direction into stair metadata. Vertical
// faces fall back to east.
func StairSetFace(meta *uint8, face cube.Face) {
	var v uint8
	switch face {
	case cube.FaceWest:
		v = 1
	case cube.FaceSouth:
		v = 2
	case cube.FaceNorth:
		v = 3
	}
	*meta = *meta&^0x3 | v
}
