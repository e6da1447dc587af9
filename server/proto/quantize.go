package proto

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// QuantizePos converts a block-space coordinate to the 1/32-block fixed
// point used by entity packets.
func QuantizePos(v float64) int32 {
	return int32(math.Floor(v * 32))
}

// QuantizeVec3 quantizes all three axes of a position.
func QuantizeVec3(v mgl64.Vec3) (x, y, z int32) {
	return QuantizePos(v[0]), QuantizePos(v[1]), QuantizePos(v[2])
}

// QuantizeLook converts a look angle in radians to the signed 256-step wire
// encoding, wrapping modulo a full turn.
func QuantizeLook(radians float32) int8 {
	return int8(int32(math.Floor(float64(radians) * 256 / (2 * math.Pi))))
}

// QuantizeVelocity converts a velocity in blocks per tick to the i16 wire
// encoding, clamped to the protocol's ±3.9 ceiling.
func QuantizeVelocity(v float64) int16 {
	const limit = 3.9
	if v < -limit {
		v = -limit
	} else if v > limit {
		v = limit
	}
	return int16(v * 8000)
}
