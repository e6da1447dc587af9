// Package entity holds the entity model of the simulation and the tracker
// that turns entity motion into quantized wire deltas.
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mc173/mc173/server/block/cube"
)

// Kind is the coarse entity kind, selecting the spawn packet shape and the
// tracking constants.
type Kind uint8

const (
	// KindPlayer is a player entity.
	KindPlayer Kind = iota
	// KindItem is a dropped item stack.
	KindItem
	// KindMob is a living non-player entity.
	KindMob
	// KindObject is a non-living object: boats, arrows, falling blocks.
	KindObject
	// KindPainting is a painting.
	KindPainting
)

// TrackingDistance returns the axis-aligned distance in blocks within which
// observers see entities of the kind.
func (k Kind) TrackingDistance() int {
	switch k {
	case KindPlayer:
		return 512
	case KindMob, KindPainting:
		return 160
	default:
		return 64
	}
}

// UpdateInterval returns the tick interval between delta transmissions of
// the kind.
func (k Kind) UpdateInterval() uint64 {
	if k == KindPlayer {
		return 2
	}
	return 3
}

// Entity is a tracked entity. Players are entities with session linkage kept
// in the server layer; the world owns the entity rows of its dimension.
type Entity struct {
	// EID is the unique entity id.
	EID int32
	// Kind selects the spawn packet and tracking constants.
	Kind Kind
	// Dimension is the dimension the entity lives in.
	Dimension int32

	// Pos is the position of the entity's feet.
	Pos mgl64.Vec3
	// Yaw and Pitch are the look angles in radians.
	Yaw, Pitch float32
	// Vel is the velocity in blocks per tick.
	Vel mgl64.Vec3
	// OnGround is true when the entity stands on solid ground.
	OnGround bool

	// Username is set for player entities.
	Username string
	// HeldItem is the item id shown in a player's hand.
	HeldItem int16
	// SubKind is the mob or object kind code for those entities.
	SubKind uint8
	// Motive is the painting motive name for painting entities.
	Motive string
	// Sneaking is the crouch flag of player entities.
	Sneaking bool
}

// Facing returns the horizontal direction the entity looks toward. A yaw
// of zero faces south, turning clockwise through west, north and east.
func (e *Entity) Facing() cube.Face {
	turn := float64(e.Yaw) / (2 * math.Pi)
	turn -= math.Floor(turn)
	switch int(turn*4 + 0.5) & 3 {
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

// BlockPos returns the block position containing the entity's feet.
func (e *Entity) BlockPos() cube.Pos {
	return cube.Pos{floorInt(e.Pos[0]), floorInt(e.Pos[1]), floorInt(e.Pos[2])}
}

// ChunkPos returns the chunk position containing the entity.
func (e *Entity) ChunkPos() cube.ChunkPos {
	return cube.ChunkPos{int32(floorInt(e.Pos[0]) >> 4), int32(floorInt(e.Pos[2]) >> 4)}
}

func floorInt(v float64) int {
	i := int(v)
	if float64(i) > v {
		i--
	}
	return i
}
