package block

import "github.com/mc173/mc173/server/block/cube"

// Trapdoor metadata: bits 0-1 hold the wall the trapdoor hangs from, bit 2
// the open flag.

// TrapdoorIsOpen reports whether the trapdoor metadata has the open bit set.
func TrapdoorIsOpen(meta uint8) bool {
	return meta&0x4 != 0
}

// TrapdoorSetOpen sets or clears the open bit of trapdoor metadata.
func TrapdoorSetOpen(meta *uint8, open bool) {
	if open {
		*meta |= 0x4
	} else {
		*meta &^= 0x4
	}
}

// TrapdoorFace returns the direction of the wall block the trapdoor is
// attached to.
func TrapdoorFace(meta uint8) cube.Face {
	switch meta & 0x3 {
	case 0:
		return cube.FaceNorth
	case 1:
		return cube.FaceSouth
	case 2:
		return cube.FaceWest
	default:
		return cube.FaceEast
	}
}

// TrapdoorSetFace writes the supporting wall direction into trapdoor
// metadata.
func TrapdoorSetFace(meta *uint8, face cube.Face) {
	var v uint8
	switch face {
	case cube.FaceNorth:
		v = 0
	case cube.FaceSouth:
		v = 1
	case cube.FaceWest:
		v = 2
	default:
		v = 3
	}
	*meta = *meta&^0x3 | v
}
