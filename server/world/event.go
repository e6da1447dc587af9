package world

import (
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/world/chunk"
)

// UpdateKind is the kind of a chunk update journal entry.
type UpdateKind uint8

const (
	// UpdateFullChunk marks an entry requiring a full chunk resend.
	UpdateFullChunk UpdateKind = iota
	// UpdateBlockSet marks a single-cell change with a sibling BlockSet row.
	UpdateBlockSet
)

// ChunkUpdate is one entry of the append-only chunk update journal. Entries
// live from emission until every subscribed observer has consumed them; the
// server drains the journal once per tick and fans it out.
type ChunkUpdate struct {
	// UpdateID is the monotonically increasing id of the update.
	UpdateID uint64
	// ChunkID is the chunk the update belongs to.
	ChunkID chunk.ID
	// Kind selects between a full chunk resend and a single block set.
	Kind UpdateKind
	// BlockSet carries the cell data of an UpdateBlockSet entry.
	BlockSet BlockSetUpdate
}

// BlockSetUpdate is the sibling row of an UpdateBlockSet journal entry.
type BlockSetUpdate struct {
	// UpdateID matches the owning ChunkUpdate.
	UpdateID uint64
	// Pos is the global position of the changed cell.
	Pos cube.Pos
	// Block and Metadata are the new cell contents.
	Block    uint8
	Metadata uint8
}

func (w *World) appendBlockSet(id chunk.ID, pos cube.Pos, blockID, meta uint8) {
	w.updateID++
	w.journal = append(w.journal, ChunkUpdate{
		UpdateID: w.updateID,
		ChunkID:  id,
		Kind:     UpdateBlockSet,
		BlockSet: BlockSetUpdate{UpdateID: w.updateID, Pos: pos, Block: blockID, Metadata: meta},
	})
}

// AppendFullChunk journals a full-chunk update, forcing subscribed observers
// to receive the chunk again.
func (w *World) AppendFullChunk(id chunk.ID) {
	w.guard.Assert()
	w.updateID++
	w.journal = append(w.journal, ChunkUpdate{UpdateID: w.updateID, ChunkID: id, Kind: UpdateFullChunk})
}

// DrainJournal removes and returns all journal entries accumulated since the
// last drain, in emission order.
func (w *World) DrainJournal() []ChunkUpdate {
	j := w.journal
	w.journal = nil
	return j
}

// EventKind discriminates world events.
type EventKind uint8

const (
	// EventWeatherChange signals a weather transition in the world.
	EventWeatherChange EventKind = iota
	// EventTimeBroadcast requests an UpdateTime broadcast to the world's
	// players.
	EventTimeBroadcast
	// EventBlockPickup signals an item stack dropped into the world.
	EventBlockPickup
	// EventLightning signals a lightning strike during thunder.
	EventLightning
	// EventExplosion signals an explosion with its destroyed cells.
	EventExplosion
)

// Event is a world-level occurrence consumed by the session layer after the
// world tick.
type Event struct {
	// Kind discriminates the event payload.
	Kind EventKind
	// Weather carries the new weather of an EventWeatherChange.
	Weather Weather
	// Time carries the tick counter of an EventTimeBroadcast.
	Time uint64
	// Pos carries the cell of an EventBlockPickup.
	Pos cube.Pos
	// Block and Metadata carry the dropped cell contents.
	Block    uint8
	Metadata uint8
	// Radius carries the blast radius of an EventExplosion.
	Radius float64
	// Destroyed carries the destroyed cells of an EventExplosion.
	Destroyed []cube.Pos
}
