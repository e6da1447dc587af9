package proto

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mc173/mc173/server/item"
)

// KeepAlive is sent in both directions to hold the connection open.
type KeepAlive struct{}

// ID ...
func (KeepAlive) ID() uint8 { return IDKeepAlive }

// Handshake starts the login exchange. The server replies with its
// identifier string.
type Handshake struct {
	// Username is the username the client wants to log in with.
	Username string
}

// ID ...
func (Handshake) ID() uint8 { return IDHandshake }

// Login requests to join the world.
type Login struct {
	// Protocol must be 14 for Beta 1.7.3 clients.
	Protocol int32
	// Username is the username to join with.
	Username string
}

// ID ...
func (Login) ID() uint8 { return IDLogin }

// Chat carries a chat message in either direction.
type Chat struct {
	// Message is the raw message text.
	Message string
}

// ID ...
func (Chat) ID() uint8 { return IDChat }

// Flying reports only the on-ground flag.
type Flying struct {
	// OnGround is true when the player stands on solid ground.
	OnGround bool
}

// ID ...
func (Flying) ID() uint8 { return IDFlying }

// Position reports a position change.
type Position struct {
	// Pos is the feet position of the player.
	Pos mgl64.Vec3
	// Stance is the eye offset of the player, normally Pos Y plus 1.62.
	Stance float64
	// OnGround is true when the player stands on solid ground.
	OnGround bool
}

// ID ...
func (Position) ID() uint8 { return IDPosition }

// Look reports a look change.
type Look struct {
	// Yaw and Pitch are the look angles in degrees on the wire.
	Yaw, Pitch float32
	// OnGround is true when the player stands on solid ground.
	OnGround bool
}

// ID ...
func (Look) ID() uint8 { return IDLook }

// PositionLook reports both a position and a look change. The server also
// sends this shape to teleport the client.
type PositionLook struct {
	// Pos is the feet position of the player.
	Pos mgl64.Vec3
	// Stance is the eye offset of the player.
	Stance float64
	// Yaw and Pitch are the look angles in degrees.
	Yaw, Pitch float32
	// OnGround is true when the player stands on solid ground.
	OnGround bool
}

// ID ...
func (PositionLook) ID() uint8 { return IDPositionLook }

// Break statuses of the BreakBlock packet.
const (
	// BreakStart begins breaking a block.
	BreakStart uint8 = 0
	// BreakFinish claims the block finished breaking.
	BreakFinish uint8 = 2
	// BreakDropItem drops the held item; no block is involved.
	BreakDropItem uint8 = 4
)

// BreakBlock drives the three-phase block breaking protocol.
type BreakBlock struct {
	// X, Y, Z locate the block. Y is a single byte on the wire.
	X int32
	Y int8
	Z int32
	// Face is the targeted face, 0..5.
	Face uint8
	// Status is one of the Break constants.
	Status uint8
}

// ID ...
func (BreakBlock) ID() uint8 { return IDBreakBlock }

// PlaceFaceNone is the Direction of a PlaceBlock packet that targets no
// block, used when the client uses the held item on air.
const PlaceFaceNone uint8 = 0xFF

// PlaceBlock requests placing the held block or using the held item against
// a block face.
type PlaceBlock struct {
	// X, Y, Z locate the clicked block. Y is a single byte on the wire.
	X int32
	Y int8
	Z int32
	// Direction is the clicked face, 0..5, or PlaceFaceNone.
	Direction uint8
	// Stack is the held stack as the client believes it, if any.
	Stack *item.Stack
}

// ID ...
func (PlaceBlock) ID() uint8 { return IDPlaceBlock }

// HandSlot selects the held hotbar slot.
type HandSlot struct {
	// Slot is the hotbar slot, 0..8.
	Slot int16
}

// ID ...
func (HandSlot) ID() uint8 { return IDHandSlot }

// Animation reports an arm swing or similar animation.
type Animation struct {
	// EntityID is the animating entity.
	EntityID int32
	// Animate is the animation code; 1 is the arm swing.
	Animate uint8
}

// ID ...
func (Animation) ID() uint8 { return IDAnimation }

// Action states of the Action packet.
const (
	// ActionSneak starts sneaking.
	ActionSneak uint8 = 1
	// ActionUnsneak stops sneaking.
	ActionUnsneak uint8 = 2
	// ActionWake leaves the bed.
	ActionWake uint8 = 3
)

// Action reports a player state change: sneaking or waking up.
type Action struct {
	// EntityID is the acting entity.
	EntityID int32
	// State is one of the Action constants.
	State uint8
}

// ID ...
func (Action) ID() uint8 { return IDAction }

// Interact reports clicking another entity.
type Interact struct {
	// Self is the clicking entity.
	Self int32
	// Target is the clicked entity.
	Target int32
	// LeftClick is true for an attack.
	LeftClick bool
}

// ID ...
func (Interact) ID() uint8 { return IDInteract }

// Respawn asks to respawn after death, or confirms a dimension change.
type Respawn struct {
	// Dimension is the dimension to respawn into.
	Dimension int8
}

// ID ...
func (Respawn) ID() uint8 { return IDRespawn }

// WindowClick reports a click into an open window.
type WindowClick struct {
	// WindowID is the clicked window; 0 is the player inventory.
	WindowID uint8
	// Slot is the clicked slot index.
	Slot int16
	// RightClick is true for a right mouse click.
	RightClick bool
	// Transaction is the client transaction counter.
	Transaction int16
	// Shift is true for a shift click.
	Shift bool
	// Stack is the stack the client believes is in the slot.
	Stack *item.Stack
}

// ID ...
func (WindowClick) ID() uint8 { return IDWindowClick }

// WindowClose reports the client closed a window.
type WindowClose struct {
	// WindowID is the closed window.
	WindowID uint8
}

// ID ...
func (WindowClose) ID() uint8 { return IDWindowClose }

// WindowTransaction confirms or rejects a window transaction.
type WindowTransaction struct {
	// WindowID is the window of the transaction.
	WindowID uint8
	// Transaction is the transaction counter.
	Transaction int16
	// Accepted is true when the transaction was accepted.
	Accepted bool
}

// ID ...
func (WindowTransaction) ID() uint8 { return IDWindowTransaction }

// UpdateSign writes the four text lines of a sign.
type UpdateSign struct {
	// X, Y, Z locate the sign block.
	X int32
	Y int16
	Z int32
	// Lines are the four text lines.
	Lines [4]string
}

// ID ...
func (UpdateSign) ID() uint8 { return IDUpdateSign }

// Disconnect announces the peer is leaving; as an outbound packet the reason
// is shown to the player.
type Disconnect struct {
	// Reason is the human-readable reason.
	Reason string
}

// ID ...
func (Disconnect) ID() uint8 { return IDDisconnect }
