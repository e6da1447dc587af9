package world

import (
	"github.com/brentp/intintmap"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/world/chunk"
)

// Store is the loaded-chunk map of a world. Chunks are keyed by their packed
// id through an int-int index into a dense slice, which keeps the per-tick
// lookup path free of interface boxing.
type Store struct {
	w      *World
	index  *intintmap.Map
	chunks []*chunk.Chunk
	ids    []chunk.ID
	dirty  map[chunk.ID]struct{}
}

func newStore(w *World) *Store {
	return &Store{
		w:     w,
		index: intintmap.New(1024, 0.6),
		dirty: make(map[chunk.ID]struct{}),
	}
}

// Chunk returns the loaded chunk at the position, or nil. It never loads or
// generates.
func (s *Store) Chunk(pos cube.ChunkPos) *chunk.Chunk {
	id, err := chunk.IDFromPos(pos)
	if err != nil {
		return nil
	}
	return s.chunkByID(id)
}

func (s *Store) chunkByID(id chunk.ID) *chunk.Chunk {
	slot, ok := s.index.Get(int64(id))
	if !ok {
		return nil
	}
	return s.chunks[slot]
}

// GetOrLoad returns the chunk at the position, loading it from the provider
// or generating it deterministically when absent. The returned chunk is
// installed in the store.
func (s *Store) GetOrLoad(pos cube.ChunkPos) *chunk.Chunk {
	id := chunk.MustIDFromPos(pos)
	if c := s.chunkByID(id); c != nil {
		return c
	}
	c, ok, err := s.w.conf.Provider.LoadChunk(pos)
	if err != nil {
		// Storage faults leave the chunk absent until the generator fills it;
		// the failed load is not retried this tick.
		s.w.log.Warn("loading chunk failed", "cx", pos[0], "cz", pos[1], "error", err)
		ok = false
	}
	if !ok {
		c = s.w.conf.Generator.GenerateChunk(s.w.set.Seed, pos)
		s.w.initChunkLight(c)
		s.dirty[id] = struct{}{}
	}
	s.install(id, c)
	return c
}

func (s *Store) install(id chunk.ID, c *chunk.Chunk) {
	slot := len(s.chunks)
	s.chunks = append(s.chunks, c)
	s.ids = append(s.ids, id)
	s.index.Put(int64(id), int64(slot))
}

// Loaded returns the ids of all loaded chunks in load order.
func (s *Store) Loaded() []chunk.ID {
	return s.ids
}

// MarkDirty flags a chunk for the next save pass.
func (s *Store) MarkDirty(id chunk.ID) {
	s.dirty[id] = struct{}{}
}

func (s *Store) saveDirty() {
	for id := range s.dirty {
		c := s.chunkByID(id)
		if c == nil {
			continue
		}
		if err := s.w.conf.Provider.SaveChunk(id.Pos(), c.Clone()); err != nil {
			s.w.log.Warn("saving chunk failed", "cx", id.Pos()[0], "cz", id.Pos()[1], "error", err)
			continue
		}
		delete(s.dirty, id)
	}
}

// Store returns the chunk store of the world.
func (w *World) Store() *Store {
	return w.store
}

// Chunk returns the loaded chunk at the chunk position, or nil.
func (w *World) Chunk(pos cube.ChunkPos) *chunk.Chunk {
	return w.cache.chunk(pos)
}

// GetOrLoad returns the chunk at the position, generating it on demand.
func (w *World) GetOrLoad(pos cube.ChunkPos) *chunk.Chunk {
	return w.cache.getOrLoad(pos)
}

// Block returns the block id and metadata at the position. ok is false when
// the chunk is not loaded or the Y coordinate is out of range.
func (w *World) Block(pos cube.Pos) (id, meta uint8, ok bool) {
	cpos, valid := cube.PosToChunkPos(pos)
	if !valid {
		return 0, 0, false
	}
	c := w.cache.chunk(cpos)
	if c == nil {
		return 0, 0, false
	}
	id, meta = c.Block(pos)
	return id, meta, true
}

// Light returns the block light and sky light at the position.
func (w *World) Light(pos cube.Pos) (blockLight, skyLight uint8, ok bool) {
	cpos, valid := cube.PosToChunkPos(pos)
	if !valid {
		return 0, 0, false
	}
	c := w.cache.chunk(cpos)
	if c == nil {
		return 0, 0, false
	}
	blockLight, skyLight = c.Light(pos)
	return blockLight, skyLight, true
}

// MaxLight returns the larger of the block light and sky light at the
// position, or zero when the chunk is not loaded.
func (w *World) MaxLight(pos cube.Pos) uint8 {
	bl, sl, ok := w.Light(pos)
	if !ok {
		return 0
	}
	return max(bl, sl)
}
