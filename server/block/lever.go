package block

import "github.com/mc173/mc173/server/block/cube"

// Lever metadata: bits 0-2 hold the mounting orientation, bit 3 the on flag.
// Wall levers store the wall direction; floor levers additionally encode
// which axis the handle flips along.

// LeverIsOn reports whether the lever metadata has the on bit set.
func LeverIsOn(meta uint8) bool {
	return meta&0x8 != 0
}

// LeverSetOn sets or clears the on bit of lever metadata.
func LeverSetOn(meta *uint8, on bool) {
	if on {
		*meta |= 0x8
	} else {
		*meta &^= 0x8
	}
}

// LeverFace returns the face pointing from the lever toward its support
// block, and for floor levers the axis the handle flips along.
func LeverFace(meta uint8) (face cube.Face, axis cube.Axis, ok bool) {
	switch meta & 0x7 {
	case 1:
		return cube.FaceWest, cube.X, true
	case 2:
		return cube.FaceEast, cube.X, true
	case 3:
		return cube.FaceNorth, cube.Z, true
	case 4:
		return cube.FaceSouth, cube.Z, true
	case 5:
		return cube.FaceDown, cube.Z, true
	case 6:
		return cube.FaceDown, cube.X, true
	}
	return 0, 0, false
}

// LeverSetFace writes the mounting orientation into lever metadata. The face
// points from the lever toward its support; for floor levers (FaceDown) the
// axis selects between the two ground orientations.
func LeverSetFace(meta *uint8, face cube.Face, axis cube.Axis) {
	var v uint8
	switch face {
	case cube.FaceWest:
		v = 1
	case cube.FaceEast:
		v = 2
	case cube.FaceNorth:
		v = 3
	case cube.FaceSouth:
		v = 4
	default:
		if axis == cube.X {
			v = 6
		} else {
			v = 5
		}
	}
	*meta = *meta&^0x7 | v
}
