package world

import (
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/world/chunk"
)

// Cache is the per-tick chunk access buffer. Lookups resolve through a small
// map first so that repeated access to the same few chunks inside one tick
// stays cheap, and every chunk written during the tick is remembered so that
// Flush can mark it dirty and fold it into the outgoing update set. Reads
// always observe writes made earlier in the same tick: entries reference the
// store's chunks directly.
type Cache struct {
	store    *Store
	entries  map[chunk.ID]*chunk.Chunk
	absent   map[chunk.ID]struct{}
	modified map[chunk.ID]struct{}
}

func newCache(store *Store) *Cache {
	return &Cache{
		store:    store,
		entries:  make(map[chunk.ID]*chunk.Chunk, 64),
		absent:   make(map[chunk.ID]struct{}, 16),
		modified: make(map[chunk.ID]struct{}, 16),
	}
}

func (c *Cache) chunk(pos cube.ChunkPos) *chunk.Chunk {
	id, err := chunk.IDFromPos(pos)
	if err != nil {
		return nil
	}
	if ch, ok := c.entries[id]; ok {
		return ch
	}
	if _, ok := c.absent[id]; ok {
		return nil
	}
	ch := c.store.chunkByID(id)
	if ch == nil {
		c.absent[id] = struct{}{}
		return nil
	}
	c.entries[id] = ch
	return ch
}

func (c *Cache) getOrLoad(pos cube.ChunkPos) *chunk.Chunk {
	id := chunk.MustIDFromPos(pos)
	if ch, ok := c.entries[id]; ok {
		return ch
	}
	ch := c.store.GetOrLoad(pos)
	c.entries[id] = ch
	delete(c.absent, id)
	return ch
}

func (c *Cache) markModified(id chunk.ID) {
	c.modified[id] = struct{}{}
}

// Flush marks every chunk written during the tick dirty in the store and
// resets the cache for the next tick. It returns the modified chunk ids.
func (c *Cache) Flush() []chunk.ID {
	out := make([]chunk.ID, 0, len(c.modified))
	for id := range c.modified {
		c.store.MarkDirty(id)
		out = append(out, id)
	}
	clear(c.entries)
	clear(c.absent)
	clear(c.modified)
	return out
}

// Cache returns the per-tick chunk cache of the world. The server flushes it
// at the end of every tick.
func (w *World) Cache() *Cache {
	return w.cache
}
