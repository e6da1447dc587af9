package block

import "github.com/mc173/mc173/server/block/cube"

// Door metadata: bits 0-1 hold the hinge direction, bit 2 the open flag and
// bit 3 the upper-half flag.

// DoorIsOpen reports whether the door metadata has the open bit set.
func DoorIsOpen(meta uint8) bool {
	return meta&0x4 != 0
}

// DoorSetOpen sets or clears the open bit of door metadata.
func DoorSetOpen(meta *uint8, open bool) {
	if open {
		*meta |= 0x4
	} else {
		*meta &^= 0x4
	}
}

// DoorIsUpper reports whether the metadata marks the upper door half.
func DoorIsUpper(meta uint8) bool {
	return meta&0x8 != 0
}

// DoorSetUpper sets or clears the upper-half bit of door metadata.
func DoorSetUpper(meta *uint8, upper bool) {
	if upper {
		*meta |= 0x8
	} else {
		*meta &^= 0x8
	}
}

// DoorFace returns the horizontal face the closed door occupies.
func DoorFace(meta uint8) cube.Face {
	switch meta & 0x3 {
	case 0:
		return cube.FaceWest
	case 1:
		return cube.FaceNorth
	case 2:
		return cube.FaceEast
	default:
		return cube.FaceSouth
	}
}

// DoorSetFace writes the horizontal face into door metadata.
func DoorSetFace(meta *uint8, face cube.Face) {
	var v uint8
	switch face {
	case cube.FaceWest:
		v = 0
	case cube.FaceNorth:
		v = 1
	case cube.FaceEast:
		v = 2
	default:
		v = 3
	}
	*meta = *meta&^0x3 | v
}
