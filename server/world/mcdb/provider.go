package mcdb

import (
	"encoding/binary"
	"fmt"

	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/world"
	"github.com/mc173/mc173/server/world/chunk"
)

// formatVersion guards the record layouts below.
const formatVersion = 1

// Provider implements world.Provider for one dimension of a DB.
type Provider struct {
	db  *DB
	dim world.Dimension
}

// NewProvider returns the provider of the given dimension.
func (db *DB) NewProvider(dim world.Dimension) *Provider {
	return &Provider{db: db, dim: dim}
}

func (p *Provider) chunkKey(pos cube.ChunkPos) []byte {
	key := make([]byte, 0, 16)
	key = append(key, 'c')
	key = binary.LittleEndian.AppendUint32(key, uint32(p.dim))
	key = binary.LittleEndian.AppendUint32(key, uint32(chunk.MustIDFromPos(pos)))
	return key
}

func (p *Provider) settingsKey() []byte {
	key := make([]byte, 0, 8)
	key = append(key, 's')
	key = binary.LittleEndian.AppendUint32(key, uint32(p.dim))
	return key
}

// chunk record: version byte, blocks, metadata, block light, sky light,
// height map, biomes, all raw.
const chunkRecordSize = 1 + chunk.Size3D + 3*(chunk.Size3D/2) + 2*chunk.Size2D

// LoadChunk reads the stored chunk at the position.
func (p *Provider) LoadChunk(pos cube.ChunkPos) (*chunk.Chunk, bool, error) {
	val, ok, err := p.db.get(p.chunkKey(pos))
	if err != nil || !ok {
		return nil, false, err
	}
	if len(val) != chunkRecordSize || val[0] != formatVersion {
		return nil, false, fmt.Errorf("chunk %v: malformed record (%d bytes, version %d)", pos, len(val), val[0])
	}
	c := &chunk.Chunk{}
	off := 1
	off += copy(c.Blocks[:], val[off:])
	off += copy(c.Metadata[:], val[off:])
	off += copy(c.BlockLight[:], val[off:])
	off += copy(c.SkyLight[:], val[off:])
	off += copy(c.HeightMap[:], val[off:])
	copy(c.Biomes[:], val[off:])
	return c, true, nil
}

// SaveChunk persists a chunk snapshot, skipping the write when the content
// has not changed since the last save.
func (p *Provider) SaveChunk(pos cube.ChunkPos, c *chunk.Chunk) error {
	val := make([]byte, 0, chunkRecordSize)
	val = append(val, formatVersion)
	val = append(val, c.Blocks[:]...)
	val = append(val, c.Metadata[:]...)
	val = append(val, c.BlockLight[:]...)
	val = append(val, c.SkyLight[:]...)
	val = append(val, c.HeightMap[:]...)
	val = append(val, c.Biomes[:]...)
	return p.db.putIfChanged(p.chunkKey(pos), val)
}

// LoadSettings reads the stored world settings.
func (p *Provider) LoadSettings(s *world.Settings) (bool, error) {
	val, ok, err := p.db.get(p.settingsKey())
	if err != nil || !ok {
		return false, err
	}
	if len(val) < 26 || val[0] != formatVersion {
		return false, fmt.Errorf("world settings: malformed record")
	}
	s.Seed = int64(binary.LittleEndian.Uint64(val[1:]))
	s.Time = binary.LittleEndian.Uint64(val[9:])
	s.Weather = world.Weather(val[17])
	s.WeatherNextTime = binary.LittleEndian.Uint64(val[18:])
	s.Name = string(val[26:])
	return true, nil
}

// SaveSettings persists the world settings.
func (p *Provider) SaveSettings(s *world.Settings) error {
	val := make([]byte, 0, 26+len(s.Name))
	val = append(val, formatVersion)
	val = binary.LittleEndian.AppendUint64(val, uint64(s.Seed))
	val = binary.LittleEndian.AppendUint64(val, s.Time)
	val = append(val, byte(s.Weather))
	val = binary.LittleEndian.AppendUint64(val, s.WeatherNextTime)
	val = append(val, s.Name...)
	return p.db.ldb.Put(p.settingsKey(), val, nil)
}
