// Package world implements the server-authoritative simulation of one
// dimension: chunk storage with lazy generation, block physics and
// notifications, redstone, lighting, weather and the per-tick clock.
package world

import (
	"log/slog"

	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/internal/jrand"
	"github.com/mc173/mc173/server/internal/txguard"
	"github.com/mc173/mc173/server/world/chunk"
)

// Dimension identifies an independent world.
type Dimension int32

const (
	// Overworld is the default dimension.
	Overworld Dimension = 0
	// Nether is the nether dimension. It has no weather.
	Nether Dimension = -1
)

// Generator produces the terrain of a chunk deterministically from the world
// seed and the chunk position.
type Generator interface {
	// GenerateChunk returns a fully populated chunk for the position. The
	// function must be deterministic in (seed, pos).
	GenerateChunk(seed int64, pos cube.ChunkPos) *chunk.Chunk
}

// Provider loads and saves chunks and world metadata. Load misses are
// signalled with ok == false, not an error.
type Provider interface {
	// LoadChunk returns the stored chunk at the position, if any.
	LoadChunk(pos cube.ChunkPos) (c *chunk.Chunk, ok bool, err error)
	// SaveChunk persists a chunk snapshot.
	SaveChunk(pos cube.ChunkPos, c *chunk.Chunk) error
	// LoadSettings reads the stored world settings into s, if present.
	LoadSettings(s *Settings) (ok bool, err error)
	// SaveSettings persists the world settings.
	SaveSettings(s *Settings) error
}

// NopProvider is a Provider that stores nothing, used for throwaway worlds
// and tests.
type NopProvider struct{}

// LoadChunk ...
func (NopProvider) LoadChunk(cube.ChunkPos) (*chunk.Chunk, bool, error) { return nil, false, nil }

// SaveChunk ...
func (NopProvider) SaveChunk(cube.ChunkPos, *chunk.Chunk) error { return nil }

// LoadSettings ...
func (NopProvider) LoadSettings(*Settings) (bool, error) { return false, nil }

// SaveSettings ...
func (NopProvider) SaveSettings(*Settings) error { return nil }

// Settings holds the persisted per-dimension state.
type Settings struct {
	// Name is the display name of the world.
	Name string
	// Seed seeds the generator and the world PRNG.
	Seed int64
	// Time is the tick counter of the world.
	Time uint64
	// Weather is the current weather state.
	Weather Weather
	// WeatherNextTime is the tick at which the weather is recomputed.
	WeatherNextTime uint64
}

// Config holds the options of a World.
type Config struct {
	// Log is the logger used by the world. Defaults to slog.Default().
	Log *slog.Logger
	// Dimension selects the dimension of the world.
	Dimension Dimension
	// Name is the display name of the world.
	Name string
	// Seed seeds the generator and the world PRNG.
	Seed int64
	// Generator produces terrain for missing chunks. Required.
	Generator Generator
	// Provider persists chunks and settings. Defaults to NopProvider.
	Provider Provider
	// LightBudget caps the number of light relaxations per tick. Defaults
	// to 1000.
	LightBudget int
	// RandomTickSpeed is the number of random block ticks attempted per
	// loaded chunk per tick. Defaults to 80; -1 disables random ticking.
	RandomTickSpeed int
}

// World is the complete state of one dimension. All methods must be called
// from the tick goroutine; the world performs no locking of its own.
type World struct {
	conf  Config
	log   *slog.Logger
	guard *txguard.Guard

	set Settings

	store *Store
	cache *Cache

	rand *jrand.Source

	lightQueue []lightUpdate

	scheduledTicks map[scheduledTick]struct{}
	scheduledQueue []scheduledTick

	pendingExplosions []pendingExplosion

	signs    map[cube.Pos]SignText
	furnaces map[cube.Pos]*FurnaceState

	updateID uint64
	journal  []ChunkUpdate

	events []Event
}

// New creates a World from the config, loading persisted settings when the
// provider has them.
func New(conf Config) *World {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Provider == nil {
		conf.Provider = NopProvider{}
	}
	if conf.LightBudget <= 0 {
		conf.LightBudget = 1000
	}
	if conf.RandomTickSpeed == 0 {
		conf.RandomTickSpeed = 80
	}
	w := &World{
		conf:           conf,
		log:            conf.Log.With("dimension", int32(conf.Dimension)),
		guard:          txguard.New(),
		rand:           jrand.New(conf.Seed),
		scheduledTicks: make(map[scheduledTick]struct{}),
	}
	w.set = Settings{Name: conf.Name, Seed: conf.Seed, Weather: WeatherClear}
	if ok, err := conf.Provider.LoadSettings(&w.set); err != nil {
		w.log.Warn("loading world settings failed, starting fresh", "error", err)
	} else if ok {
		w.log.Info("loaded world settings", "name", w.set.Name, "time", w.set.Time)
	}
	w.store = newStore(w)
	w.cache = newCache(w.store)
	return w
}

// Guard returns the tick-ownership guard of the world. The server arms it at
// the start of every tick.
func (w *World) Guard() *txguard.Guard {
	return w.guard
}

// Dimension returns the dimension of the world.
func (w *World) Dimension() Dimension {
	return w.conf.Dimension
}

// Name returns the display name of the world.
func (w *World) Name() string {
	return w.set.Name
}

// Seed returns the seed of the world.
func (w *World) Seed() int64 {
	return w.set.Seed
}

// Time returns the current tick counter of the world.
func (w *World) Time() uint64 {
	return w.set.Time
}

// Rand returns the world PRNG. Only tick-path code may draw from it.
func (w *World) Rand() *jrand.Source {
	w.guard.Assert()
	return w.rand
}

// Weather returns the current weather of the world.
func (w *World) Weather() Weather {
	return w.set.Weather
}

// PushEvent appends an event to the world's event queue.
func (w *World) PushEvent(ev Event) {
	w.guard.Assert()
	w.events = append(w.events, ev)
}

// DrainEvents removes and returns all queued events.
func (w *World) DrainEvents() []Event {
	evs := w.events
	w.events = nil
	return evs
}

// Save flushes dirty chunks and settings to the provider.
func (w *World) Save() {
	w.store.saveDirty()
	if err := w.conf.Provider.SaveSettings(&w.set); err != nil {
		w.log.Warn("saving world settings failed", "error", err)
	}
}

// Material returns the material of the block at the position, defaulting to
// air when the chunk is not loaded.
func (w *World) Material(pos cube.Pos) block.Material {
	if id, _, ok := w.Block(pos); ok {
		return block.MaterialOf(id)
	}
	return block.MaterialAir
}

// IsReplaceable reports whether the block at the position can be replaced by
// a placement. Unloaded space is not replaceable.
func (w *World) IsReplaceable(pos cube.Pos) bool {
	if id, _, ok := w.Block(pos); ok {
		return block.MaterialOf(id).IsReplaceable()
	}
	return false
}

// IsOpaqueCube reports whether the block at the position is a full opaque
// cube. Unloaded space reports false.
func (w *World) IsOpaqueCube(pos cube.Pos) bool {
	if id, _, ok := w.Block(pos); ok {
		return block.IsOpaqueCube(id)
	}
	return false
}

// IsSolid reports whether the block at the position has a solid material.
func (w *World) IsSolid(pos cube.Pos) bool {
	if id, _, ok := w.Block(pos); ok {
		return block.MaterialOf(id).IsSolid()
	}
	return false
}

// IsBlock reports whether the block at the position has the given id.
func (w *World) IsBlock(pos cube.Pos, id uint8) bool {
	if got, _, ok := w.Block(pos); ok {
		return got == id
	}
	return false
}
