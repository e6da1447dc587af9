package block

import "github.com/mc173/mc173/server/block/cube"

// Facing codecs of full blocks that store a direction in their metadata:
// pistons use the full 0-5 face encoding, furnaces and dispensers the wall
// values 2-5, pumpkins a compact 0-3 rotation.

// PistonFace returns the direction a piston base points toward. The encoding
// matches the wire face order directly.
func PistonFace(meta uint8) (cube.Face, bool) {
	return cube.FaceFromWire(meta & 0x7)
}

// PistonSetFace writes the pointing direction into piston metadata.
func PistonSetFace(meta *uint8, face cube.Face) {
	*meta = *meta&^0x7 | uint8(face)
}

// PistonExtended reports whether the piston base metadata has the extended
// bit set.
func PistonExtended(meta uint8) bool {
	return meta&0x8 != 0
}

// FurnaceFace returns the horizontal direction a furnace or dispenser front
// points toward.
func FurnaceFace(meta uint8) cube.Face {
	switch meta {
	case 2:
		return cube.FaceNorth
	case 3:
		return cube.FaceSouth
	case 4:
		return cube.FaceWest
	default:
		return cube.FaceEast
	}
}

// FurnaceSetFace writes the front direction into furnace or dispenser
// metadata. Vertical faces fall back to north.
func FurnaceSetFace(meta *uint8, face cube.Face) {
	switch face {
	case cube.FaceSouth:
		*meta = 3
	case cube.FaceWest:
		*meta = 4
	case cube.FaceEast:
		*meta = 5
	default:
		*meta = 2
	}
}

// PumpkinFace returns the horizontal direction a pumpkin face points toward.
func PumpkinFace(meta uint8) cube.Face {
	switch meta & 0x3 {
	case 0:
		return cube.FaceSouth
	case 1:
		return cube.FaceWest
	case 2:
		return cube.FaceNorth
	default:
		return cube.FaceEast
	}
}

// PumpkinSetFace writes the face direction into pumpkin metadata. Vertical
// faces fall back to south.
func PumpkinSetFace(meta *uint8, face cube.Face) {
	var v uint8
	switch face {
	case cube.FaceWest:
		v = 1
	case cube.FaceNorth:
		v = 2
	case cube.FaceEast:
		v = 3
	}
	*meta = *meta&^0x3 | v
}
