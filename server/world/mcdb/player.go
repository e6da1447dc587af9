package mcdb

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OfflinePlayer is the record kept for a player who left the server: enough
// to revive them where they logged out.
type OfflinePlayer struct {
	// Username keys the record.
	Username string
	// Dimension is the dimension the player was last in.
	Dimension int32
	// Pos is the last position of the player.
	Pos mgl64.Vec3
	// Yaw and Pitch are the last look angles of the player, in radians.
	Yaw, Pitch float32
}

func playerKey(username string) []byte {
	return append([]byte("p"), username...)
}

// LoadOfflinePlayer reads the record of the given username.
func (db *DB) LoadOfflinePlayer(username string) (OfflinePlayer, bool, error) {
	val, ok, err := db.get(playerKey(username))
	if err != nil || !ok {
		return OfflinePlayer{}, false, err
	}
	if len(val) != 1+4+3*8+2*4 || val[0] != formatVersion {
		return OfflinePlayer{}, false, fmt.Errorf("offline player %q: malformed record", username)
	}
	p := OfflinePlayer{Username: username}
	p.Dimension = int32(binary.LittleEndian.Uint32(val[1:]))
	for i := 0; i < 3; i++ {
		p.Pos[i] = math.Float64frombits(binary.LittleEndian.Uint64(val[5+i*8:]))
	}
	p.Yaw = math.Float32frombits(binary.LittleEndian.Uint32(val[29:]))
	p.Pitch = math.Float32frombits(binary.LittleEndian.Uint32(val[33:]))
	return p, true, nil
}

// SaveOfflinePlayer upserts the record of a player.
func (db *DB) SaveOfflinePlayer(p OfflinePlayer) error {
	val := make([]byte, 0, 1+4+3*8+2*4)
	val = append(val, formatVersion)
	val = binary.LittleEndian.AppendUint32(val, uint32(p.Dimension))
	for i := 0; i < 3; i++ {
		val = binary.LittleEndian.AppendUint64(val, math.Float64bits(p.Pos[i]))
	}
	val = binary.LittleEndian.AppendUint32(val, math.Float32bits(p.Yaw))
	val = binary.LittleEndian.AppendUint32(val, math.Float32bits(p.Pitch))
	return db.ldb.Put(playerKey(p.Username), val, nil)
}
