// Package proto enumerates the wire surface of the Beta 1.7.3 protocol: the
// inbound intents a client may send and the outbound deltas the simulation
// produces. The byte-level codec lives outside this module; it reads and
// writes these structs through the Conn interface.
//
// KeepAlive, Chat, PositionLook, WindowTransaction, Respawn and Disconnect
// travel in both directions with the same shape; every other packet struct
// belongs to exactly one direction.
package proto

// Packet is implemented by every packet struct. ID returns the wire packet
// id the codec frames the struct with.
type Packet interface {
	ID() uint8
}

// Conn is the transport a session reads intents from and writes deltas to.
// The external codec implements it on top of a TCP stream; tests use the
// in-memory Loopback.
type Conn interface {
	// ReadPacket reads the next inbound packet, blocking until one arrives.
	ReadPacket() (Packet, error)
	// WritePacket writes an outbound packet.
	WritePacket(Packet) error
	// Close tears the transport down; pending reads fail afterwards.
	Close() error
	// RemoteAddr describes the remote end for logging.
	RemoteAddr() string
}

// Wire packet ids.
const (
	IDKeepAlive          uint8 = 0x00
	IDLogin              uint8 = 0x01
	IDHandshake          uint8 = 0x02
	IDChat               uint8 = 0x03
	IDUpdateTime         uint8 = 0x04
	IDSpawnPosition      uint8 = 0x06
	IDInteract           uint8 = 0x07
	IDUpdateHealth       uint8 = 0x08
	IDRespawn            uint8 = 0x09
	IDFlying             uint8 = 0x0A
	IDPosition           uint8 = 0x0B
	IDLook               uint8 = 0x0C
	IDPositionLook       uint8 = 0x0D
	IDBreakBlock         uint8 = 0x0E
	IDPlaceBlock         uint8 = 0x0F
	IDHandSlot           uint8 = 0x10
	IDPlayerSleep        uint8 = 0x11
	IDAnimation          uint8 = 0x12
	IDAction             uint8 = 0x13
	IDHumanSpawn         uint8 = 0x14
	IDItemSpawn          uint8 = 0x15
	IDEntityPickup       uint8 = 0x16
	IDObjectSpawn        uint8 = 0x17
	IDMobSpawn           uint8 = 0x18
	IDPaintingSpawn      uint8 = 0x19
	IDEntityVelocity     uint8 = 0x1C
	IDEntityKill         uint8 = 0x1D
	IDEntityMove         uint8 = 0x1F
	IDEntityLook         uint8 = 0x20
	IDEntityMoveAndLook  uint8 = 0x21
	IDEntityTeleport     uint8 = 0x22
	IDEntityStatus       uint8 = 0x26
	IDEntityRide         uint8 = 0x27
	IDEntityMetadata     uint8 = 0x28
	IDChunkState         uint8 = 0x32
	IDChunkData          uint8 = 0x33
	IDChunkBlockSet      uint8 = 0x34
	IDBlockSet           uint8 = 0x35
	IDExplosion          uint8 = 0x3C
	IDEffectPlay         uint8 = 0x3D
	IDNotification       uint8 = 0x46
	IDLightningBolt      uint8 = 0x47
	IDWindowOpen         uint8 = 0x64
	IDWindowClose        uint8 = 0x65
	IDWindowClick        uint8 = 0x66
	IDWindowSetItem      uint8 = 0x67
	IDWindowItems        uint8 = 0x68
	IDWindowProgress     uint8 = 0x69
	IDWindowTransaction  uint8 = 0x6A
	IDUpdateSign         uint8 = 0x82
	IDStatisticIncrement uint8 = 0xC8
	IDDisconnect         uint8 = 0xFF
)
