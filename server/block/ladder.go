package block

import "github.com/mc173/mc173/server/block/cube"

// Ladder metadata holds the direction of the supporting wall in values 2-5.

// LadderFace returns the face pointing from the ladder toward its support
// block.
func LadderFace(meta uint8) (cube.Face, bool) {
	switch meta {
	case 2:
		return cube.FaceNorth, true
	case 3:
		return cube.FaceSouth, true
	case 4:
		return cube.FaceWest, true
	case 5:
		return cube.FaceEast, true
	}
	return 0, false
}

// LadderSetFace writes the supporting wall direction into ladder metadata.
func LadderSetFace(meta *uint8, face cube.Face) {
	switch face {
	case cube.FaceNorth:
		*meta = 2
	case cube.FaceSouth:
		*meta = 3
	case cube.FaceWest:
		*meta = 4
	case cube.FaceEast:
		*meta = 5
	}
}
