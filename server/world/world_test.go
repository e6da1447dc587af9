package world

import (
	"testing"

	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/world/chunk"
	"github.com/mc173/mc173/server/world/generator"
)

func newTestWorld(t *testing.T, seed int64) *World {
	t.Helper()
	return New(Config{
		Dimension:       Overworld,
		Name:            "test",
		Seed:            seed,
		Generator:       generator.Flat{},
		RandomTickSpeed: -1,
	})
}

func loadAround(w *World, pos cube.Pos) {
	cpos, _ := cube.PosToChunkPos(pos)
	for dz := int32(-1); dz <= 1; dz++ {
		for dx := int32(-1); dx <= 1; dx++ {
			w.GetOrLoad(cube.ChunkPos{cpos[0] + dx, cpos[1] + dz})
		}
	}
}

func TestSetBlockLastWriteWins(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{0, 64, 0})
	positions := []cube.Pos{{0, 64, 0}, {5, 70, 5}, {-3, 10, 12}, {15, 127, 15}}
	for i, pos := range positions {
		for round := 0; round < 3; round++ {
			id := uint8(i + round + 1)
			meta := uint8(round)
			if _, _, ok := w.SetBlock(pos, id, meta); !ok {
				t.Fatalf("set at %v failed", pos)
			}
			gotID, gotMeta, ok := w.Block(pos)
			if !ok || gotID != id || gotMeta != meta {
				t.Fatalf("read-your-writes at %v: got (%d,%d,%v), want (%d,%d)", pos, gotID, gotMeta, ok, id, meta)
			}
		}
	}
}

func TestSetBlockOutOfRange(t *testing.T) {
	w := newTestWorld(t, 1)
	if _, _, ok := w.SetBlock(cube.Pos{0, 128, 0}, block.Stone, 0); ok {
		t.Fatalf("set above the world must fail")
	}
	if _, _, ok := w.SetBlock(cube.Pos{0, -1, 0}, block.Stone, 0); ok {
		t.Fatalf("set below the world must fail")
	}
	if _, _, ok := w.Block(cube.Pos{10000, 64, 10000}); ok {
		t.Fatalf("read from unloaded chunk must miss")
	}
}

func TestHeightInvariant(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{4, 64, 4})
	c := w.Chunk(cube.ChunkPos{0, 0})

	// Flat terrain: grass at 63, so the height is 64.
	if h := c.Height(cube.Pos{4, 0, 4}); h != 64 {
		t.Fatalf("initial height: got %d, want 64", h)
	}
	w.SetBlock(cube.Pos{4, 80, 4}, block.Stone, 0)
	if h := c.Height(cube.Pos{4, 0, 4}); h != 81 {
		t.Fatalf("height after build: got %d, want 81", h)
	}
	// Glass has zero opacity, so it does not raise the column height.
	w.SetBlock(cube.Pos{4, 90, 4}, block.Glass, 0)
	if h := c.Height(cube.Pos{4, 0, 4}); h != 81 {
		t.Fatalf("height after glass: got %d, want 81", h)
	}
	w.SetBlock(cube.Pos{4, 80, 4}, block.Air, 0)
	if h := c.Height(cube.Pos{4, 0, 4}); h != 64 {
		t.Fatalf("height after removal: got %d, want 64", h)
	}
}

func TestSetBlockJournals(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{0, 64, 0})
	w.DrainJournal()

	w.SetBlock(cube.Pos{1, 64, 1}, block.Stone, 0)
	// Writing the same value again must not journal.
	w.SetBlock(cube.Pos{1, 64, 1}, block.Stone, 0)
	entries := w.DrainJournal()
	if len(entries) != 1 {
		t.Fatalf("expected one journal entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Kind != UpdateBlockSet || e.BlockSet.Block != block.Stone || e.BlockSet.Pos != (cube.Pos{1, 64, 1}) {
		t.Fatalf("unexpected journal entry: %+v", e)
	}
}

func TestLightScheduledOnOpacityChange(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{0, 70, 0})
	if n := w.LightUpdateCount(); n != 0 {
		t.Fatalf("fresh world has %d pending light updates", n)
	}
	w.SetBlock(cube.Pos{0, 70, 0}, block.Stone, 0)
	if n := w.LightUpdateCount(); n != 2 {
		t.Fatalf("opacity change must schedule sky and block light, got %d", n)
	}
	// A metadata-only change leaves light alone.
	w.SetBlock(cube.Pos{0, 70, 0}, block.Stone, 1)
	if n := w.LightUpdateCount(); n != 2 {
		t.Fatalf("metadata change must not schedule light, got %d", n)
	}
}

func TestTorchLightRelaxation(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{8, 70, 8})
	w.SetBlock(cube.Pos{8, 70, 8}, block.Torch, 5)
	w.processLight(200000)
	bl, _, _ := w.Light(cube.Pos{8, 70, 8})
	if bl != 14 {
		t.Fatalf("torch cell block light: got %d, want 14", bl)
	}
	bl, _, _ = w.Light(cube.Pos{9, 70, 8})
	if bl != 13 {
		t.Fatalf("neighbour block light: got %d, want 13", bl)
	}
	bl, _, _ = w.Light(cube.Pos{12, 70, 8})
	if bl != 10 {
		t.Fatalf("distance-4 block light: got %d, want 10", bl)
	}
}

func TestCactusBreaksBesideSolid(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{4, 64, 4})
	w.SetBlock(cube.Pos{4, 63, 4}, block.Sand, 0)
	w.SetBlock(cube.Pos{4, 64, 4}, block.Cactus, 0)
	// Growing a solid neighbour and notifying must break the cactus.
	w.SetBlockNotify(cube.Pos{5, 64, 4}, block.Stone, 0)
	if id, _, _ := w.Block(cube.Pos{4, 64, 4}); id != block.Air {
		t.Fatalf("cactus must break beside a solid block, still %d", id)
	}
}

func TestFlowerBreaksWithoutSupport(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{4, 64, 4})
	w.SetBlock(cube.Pos{4, 64, 4}, block.Dandelion, 0)
	// Swap the grass below for stone; stone is not in the allow-list.
	w.SetBlockNotify(cube.Pos{4, 63, 4}, block.Stone, 0)
	if id, _, _ := w.Block(cube.Pos{4, 64, 4}); id != block.Air {
		t.Fatalf("flower must break on a stone support, still %d", id)
	}
}

func TestLavaWaterContact(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{4, 70, 4})
	w.SetBlock(cube.Pos{4, 70, 4}, block.LavaMoving, 0)
	w.SetBlock(cube.Pos{5, 70, 4}, block.WaterMoving, 0)
	w.NotifyBlock(cube.Pos{4, 70, 4}, block.WaterMoving)
	if id, _, _ := w.Block(cube.Pos{4, 70, 4}); id != block.Obsidian {
		t.Fatalf("lava source beside water must harden to obsidian, got %d", id)
	}

	w.SetBlock(cube.Pos{8, 70, 4}, block.LavaMoving, 2)
	w.SetBlock(cube.Pos{9, 70, 4}, block.WaterMoving, 0)
	w.NotifyBlock(cube.Pos{8, 70, 4}, block.WaterMoving)
	if id, _, _ := w.Block(cube.Pos{8, 70, 4}); id != block.Cobblestone {
		t.Fatalf("lava flow beside water must harden to cobblestone, got %d", id)
	}
}

func TestDoorBreaksWithLowerHalf(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{4, 64, 4})
	w.PlaceBlock(cube.Pos{4, 64, 4}, cube.FaceNorth, block.WoodDoor, 0)
	if id, meta, _ := w.Block(cube.Pos{4, 65, 4}); id != block.WoodDoor || !block.DoorIsUpper(meta) {
		t.Fatalf("upper door half missing: id %d meta %d", id, meta)
	}
	// Remove the supporting block; the whole door must go.
	w.SetBlockNotify(cube.Pos{4, 63, 4}, block.Air, 0)
	if id, _, _ := w.Block(cube.Pos{4, 64, 4}); id != block.Air {
		t.Fatalf("lower door half must break")
	}
	if id, _, _ := w.Block(cube.Pos{4, 65, 4}); id != block.Air {
		t.Fatalf("upper door half must break with the lower")
	}
}

func TestCanPlaceCactus(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{4, 64, 4})
	if w.CanPlaceBlock(cube.Pos{4, 64, 4}, cube.FaceDown, block.Cactus) {
		t.Fatalf("cactus must not sit on grass")
	}
	w.SetBlock(cube.Pos{4, 63, 4}, block.Sand, 0)
	if !w.CanPlaceBlock(cube.Pos{4, 64, 4}, cube.FaceDown, block.Cactus) {
		t.Fatalf("cactus must sit on sand")
	}
	w.SetBlock(cube.Pos{5, 64, 4}, block.Stone, 0)
	if w.CanPlaceBlock(cube.Pos{4, 64, 4}, cube.FaceDown, block.Cactus) {
		t.Fatalf("cactus must reject a solid horizontal neighbour")
	}
}

func TestCanPlaceGates(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{4, 64, 4})
	// The final gate: the target cell must be replaceable.
	w.SetBlock(cube.Pos{4, 64, 4}, block.Stone, 0)
	if w.CanPlaceBlock(cube.Pos{4, 64, 4}, cube.FaceDown, block.Dirt) {
		t.Fatalf("occupied cell must not be placeable")
	}
	// Levers cannot hang from the ceiling.
	if w.CanPlaceBlock(cube.Pos{4, 66, 4}, cube.FaceUp, block.Lever) {
		t.Fatalf("ceiling lever must be rejected")
	}
	if !w.CanPlaceBlock(cube.Pos{4, 65, 4}, cube.FaceDown, block.Lever) {
		t.Fatalf("floor lever on stone must be accepted")
	}
}

func TestFluidSpread(t *testing.T) {
	w := newTestWorld(t, 1)
	loadAround(w, cube.Pos{4, 70, 4})
	// A pool floor so the water spreads sideways instead of falling.
	for x := 2; x <= 6; x++ {
		for z := 2; z <= 6; z++ {
			w.SetBlock(cube.Pos{x, 69, z}, block.Stone, 0)
		}
	}
	w.SetBlockSelfNotify(cube.Pos{4, 70, 4}, block.WaterMoving, 0)
	for i := 0; i < 12; i++ {
		w.Tick()
	}
	id, meta, _ := w.Block(cube.Pos{5, 70, 4})
	if id != block.WaterMoving && id != block.WaterStill {
		t.Fatalf("water must spread east, got %d", id)
	}
	if block.FluidDistance(meta) != 1 {
		t.Fatalf("spread water distance: got %d, want 1", block.FluidDistance(meta))
	}
}

func TestWeatherFirstTransition(t *testing.T) {
	w := newTestWorld(t, 9999)
	// The first weather tick runs at time zero: it must keep the clear
	// weather but consume the bound draw that schedules the transition.
	expected := newTestWorld(t, 9999)
	r := expected.rand.IntBounded(168000)
	change := uint64(12000 + r)

	var events []Event
	for i := 0; i < int(change)+2; i++ {
		w.Tick()
		events = append(events, w.DrainEvents()...)
	}
	var weatherEvents []Event
	for _, ev := range events {
		if ev.Kind == EventWeatherChange {
			weatherEvents = append(weatherEvents, ev)
		}
	}
	if len(weatherEvents) != 1 {
		t.Fatalf("expected exactly one weather change, got %d", len(weatherEvents))
	}
	if got := weatherEvents[0].Weather; got != WeatherRain && got != WeatherThunder {
		t.Fatalf("first transition from clear must rain or thunder, got %v", got)
	}
	if w.Weather() == WeatherClear {
		t.Fatalf("weather must not be clear after the transition")
	}
}

func TestNetherHasNoWeather(t *testing.T) {
	w := New(Config{
		Dimension:       Nether,
		Name:            "nether",
		Seed:            9999,
		Generator:       generator.Flat{},
		RandomTickSpeed: -1,
	})
	for i := 0; i < 30000; i++ {
		w.Tick()
		for _, ev := range w.DrainEvents() {
			if ev.Kind == EventWeatherChange {
				t.Fatalf("nether produced a weather change")
			}
		}
	}
	if w.Weather() != WeatherClear {
		t.Fatalf("nether weather must stay clear")
	}
}

func TestTimeBroadcastEvery20Ticks(t *testing.T) {
	w := newTestWorld(t, 1)
	count := 0
	for i := 0; i < 100; i++ {
		w.Tick()
		for _, ev := range w.DrainEvents() {
			if ev.Kind == EventTimeBroadcast {
				count++
			}
		}
	}
	if count != 5 {
		t.Fatalf("expected 5 time broadcasts over 100 ticks, got %d", count)
	}
	if w.Time() != 100 {
		t.Fatalf("time after 100 ticks: got %d", w.Time())
	}
}

func TestTickDeterminism(t *testing.T) {
	run := func() []ChunkUpdate {
		w := New(Config{
			Dimension: Overworld,
			Name:      "det",
			Seed:      424242,
			Generator: generator.Flat{},
		})
		loadAround(w, cube.Pos{4, 64, 4})
		w.DrainJournal()
		w.PlaceBlock(cube.Pos{4, 64, 4}, cube.FaceDown, block.Lever, 0)
		w.SetBlockSelfNotify(cube.Pos{8, 70, 8}, block.WaterMoving, 0)
		var journal []ChunkUpdate
		journal = append(journal, w.DrainJournal()...)
		for i := 0; i < 200; i++ {
			w.Tick()
			journal = append(journal, w.DrainJournal()...)
		}
		return journal
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("journal lengths diverged: %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("journal entry %d diverged: %+v != %+v", i, a[i], b[i])
		}
	}
}

func TestChunkIDRoundTripProperty(t *testing.T) {
	for _, cpos := range []cube.ChunkPos{{0, 0}, {-1, 1}, {-32768, 32767}, {123, -456}} {
		id := chunk.MustIDFromPos(cpos)
		if id.Pos() != cpos {
			t.Fatalf("round trip of %v failed", cpos)
		}
	}
}
