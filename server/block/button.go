package block

import "github.com/mc173/mc173/server/block/cube"

// Button metadata: bits 0-2 hold the wall orientation, bit 3 the pressed
// flag. Buttons mount on walls only.

// ButtonIsPressed reports whether the button metadata has the pressed bit
// set.
func ButtonIsPressed(meta uint8) bool {
	return meta&0x8 != 0
}

// ButtonSetPressed sets or clears the pressed bit of button metadata.
func ButtonSetPressed(meta *uint8, pressed bool) {
	if pressed {
		*meta |= 0x8
	} else {
		*meta &^= 0x8
	}
}

// ButtonFace returns the face pointing from the button toward its support
// block.
func ButtonFace(meta uint8) (cube.Face, bool) {
	switch meta & 0x7 {
	case 1:
		return cube.FaceWest, true
	case 2:
		return cube.FaceEast, true
	case 3:
		return cube.FaceNorth, true
	case 4:
		return cube.FaceSouth, true
	}
	return 0, false
}

// ButtonSetFace writes the wall orientation into button metadata.
func ButtonSetFace(meta *uint8, face cube.Face) {
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
	}
	*meta = *meta&^0x7 | v
}
