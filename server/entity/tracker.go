package entity

import (
	"github.com/mc173/mc173/server/proto"
)

const (
	// absoluteInterval is the number of ticks after which an absolute
	// teleport is forced regardless of the delta size.
	absoluteInterval = 400
	// moveThreshold is the minimum quantized position delta worth a packet.
	moveThreshold = 8
	// lookThreshold is the minimum quantized look delta worth a packet.
	lookThreshold = 8
	// velocityThreshold is the minimum quantized velocity delta worth a
	// packet, 100/8000 of a block per tick.
	velocityThreshold = 100
)

// Tracker converts the motion of one entity into wire deltas against the
// last transmitted quantized state. One tracker exists per tracked entity;
// its emissions are fanned out to every observer holding a view of it.
type Tracker struct {
	e *Entity

	interval uint64
	ticks    uint64
	absolute uint64

	sentX, sentY, sentZ int32
	sentYaw, sentPitch  int8
	velX, velY, velZ    int16
}

// NewTracker returns a tracker for the entity, primed so that the first
// delta transmits against the current state.
func NewTracker(e *Entity) *Tracker {
	t := &Tracker{e: e, interval: e.Kind.UpdateInterval()}
	t.capture()
	return t
}

// Entity returns the tracked entity.
func (t *Tracker) Entity() *Entity {
	return t.e
}

// Age returns the number of ticks the tracker has run.
func (t *Tracker) Age() uint64 {
	return t.ticks
}

func (t *Tracker) capture() {
	t.sentX, t.sentY, t.sentZ = proto.QuantizeVec3(t.e.Pos)
	t.sentYaw = proto.QuantizeLook(t.e.Yaw)
	t.sentPitch = proto.QuantizeLook(t.e.Pitch)
	t.velX = proto.QuantizeVelocity(t.e.Vel[0])
	t.velY = proto.QuantizeVelocity(t.e.Vel[1])
	t.velZ = proto.QuantizeVelocity(t.e.Vel[2])
}

// SpawnPacket returns the kind-specific spawn packet reflecting the current
// quantized state. It is sent when an observer first sees the entity.
func (t *Tracker) SpawnPacket() proto.Packet {
	x, y, z := proto.QuantizeVec3(t.e.Pos)
	yaw, pitch := proto.QuantizeLook(t.e.Yaw), proto.QuantizeLook(t.e.Pitch)
	switch t.e.Kind {
	case KindPlayer:
		return &proto.HumanSpawn{
			EntityID: t.e.EID, Username: t.e.Username,
			X: x, Y: y, Z: z, Yaw: yaw, Pitch: pitch,
			CurrentItem: t.e.HeldItem,
		}
	case KindItem:
		return &proto.ItemSpawn{EntityID: t.e.EID, X: x, Y: y, Z: z}
	case KindMob:
		return &proto.MobSpawn{EntityID: t.e.EID, Kind: t.e.SubKind, X: x, Y: y, Z: z, Yaw: yaw, Pitch: pitch}
	case KindPainting:
		return &proto.PaintingSpawn{EntityID: t.e.EID, Motive: t.e.Motive, X: x, Y: y, Z: z}
	default:
		return &proto.ObjectSpawn{EntityID: t.e.EID, Kind: t.e.SubKind, X: x, Y: y, Z: z}
	}
}

// KillPacket returns the packet removing the entity from an observer.
func (t *Tracker) KillPacket() proto.Packet {
	return &proto.EntityKill{EntityID: t.e.EID}
}

// Tick advances the tracker one tick and emits the due wire deltas through
// send. Emission order per entity is stable: position or look first, then
// velocity.
func (t *Tracker) Tick(send func(proto.Packet)) {
	t.ticks++
	t.absolute++
	if t.ticks%t.interval != 0 {
		return
	}

	x, y, z := proto.QuantizeVec3(t.e.Pos)
	yaw, pitch := proto.QuantizeLook(t.e.Yaw), proto.QuantizeLook(t.e.Pitch)
	dx, dy, dz := int32(x-t.sentX), int32(y-t.sentY), int32(z-t.sentZ)
	dyaw := int32(yaw) - int32(t.sentYaw)
	dpitch := int32(pitch) - int32(t.sentPitch)

	moved := abs32(dx) >= moveThreshold || abs32(dy) >= moveThreshold || abs32(dz) >= moveThreshold
	turned := abs32(dyaw) >= lookThreshold || abs32(dpitch) >= lookThreshold
	outOfRange := abs32(dx) > 127 || abs32(dy) > 127 || abs32(dz) > 127

	switch {
	case outOfRange || t.absolute >= absoluteInterval:
		send(&proto.EntityTeleport{EntityID: t.e.EID, X: x, Y: y, Z: z, Yaw: yaw, Pitch: pitch})
		t.sentX, t.sentY, t.sentZ = x, y, z
		t.sentYaw, t.sentPitch = yaw, pitch
		t.absolute = 0
	case moved && turned:
		send(&proto.EntityMoveAndLook{EntityID: t.e.EID, DX: int8(dx), DY: int8(dy), DZ: int8(dz), Yaw: yaw, Pitch: pitch})
		t.sentX, t.sentY, t.sentZ = x, y, z
		t.sentYaw, t.sentPitch = yaw, pitch
	case moved:
		send(&proto.EntityMove{EntityID: t.e.EID, DX: int8(dx), DY: int8(dy), DZ: int8(dz)})
		t.sentX, t.sentY, t.sentZ = x, y, z
	case turned:
		send(&proto.EntityLook{EntityID: t.e.EID, Yaw: yaw, Pitch: pitch})
		t.sentYaw, t.sentPitch = yaw, pitch
	}

	vx := proto.QuantizeVelocity(t.e.Vel[0])
	vy := proto.QuantizeVelocity(t.e.Vel[1])
	vz := proto.QuantizeVelocity(t.e.Vel[2])
	if abs32(int32(vx)-int32(t.velX)) >= velocityThreshold ||
		abs32(int32(vy)-int32(t.velY)) >= velocityThreshold ||
		abs32(int32(vz)-int32(t.velZ)) >= velocityThreshold {
		send(&proto.EntityVelocity{EntityID: t.e.EID, VelX: vx, VelY: vy, VelZ: vz})
		t.velX, t.velY, t.velZ = vx, vy, vz
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
