package block

import "github.com/mc173/mc173/server/block/cube"

// Torch metadata holds the mounting orientation in the low three bits: wall
// values 1-4 and 5 for a torch standing on the floor. The same codec covers
// regular and redstone torches.

// TorchFace returns the face pointing from the torch toward its support
// block.
func TorchFace(meta uint8) (cube.Face, bool) {
	switch meta & 0x7 {
	case 1:
		return cube.FaceWest, true
	case 2:
		return cube.FaceEast, true
	case 3:
		return cube.FaceNorth, true
	case 4:
		return cube.FaceSouth, true
	case 5:
		return cube.FaceDown, true
	}
	return 0, false
}

// TorchSetFace writes the mounting orientation into torch metadata.
func TorchSetFace(meta *uint8, face cube.Face) {
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
		v = 5
	}
	*meta = *meta&^0x7 | v
}

// IsTorch reports whether the id is any torch block.
func IsTorch(id uint8) bool {
	return id == Torch || id == RedstoneTorch || id == RedstoneTorchLit
}
