package world

import "github.com/mc173/mc173/server/block/cube"

// Weather is the weather state of a dimension.
type Weather uint8

const (
	// WeatherClear is the default weather.
	WeatherClear Weather = iota
	// WeatherRain is falling rain.
	WeatherRain
	// WeatherThunder is rain with thunder.
	WeatherThunder
)

// String returns the name of the weather state.
func (we Weather) String() string {
	switch we {
	case WeatherClear:
		return "clear"
	case WeatherRain:
		return "rain"
	case WeatherThunder:
		return "thunder"
	}
	return "unknown"
}

// SetWeather forces the weather of the world without touching the schedule
// and emits the change event.
func (w *World) SetWeather(weather Weather) {
	w.guard.Assert()
	if w.conf.Dimension == Nether || w.set.Weather == weather {
		return
	}
	w.set.Weather = weather
	w.PushEvent(Event{Kind: EventWeatherChange, Weather: weather})
}

// tickWeather advances the weather state machine. The nether has no weather.
// When the change tick is reached a new state is drawn from the PRNG: Clear
// rolls rain or thunder, anything else rolls between staying and clearing.
// The very first world tick keeps the current weather but still schedules
// the next change.
func (w *World) tickWeather() {
	if w.conf.Dimension == Nether {
		return
	}
	if w.set.Time < w.set.WeatherNextTime {
		return
	}

	next := w.set.Weather
	if w.set.Time != 0 {
		switch w.set.Weather {
		case WeatherClear:
			choices := [...]Weather{WeatherRain, WeatherThunder}
			next = choices[w.rand.ChoiceIndex(2)]
		default:
			choices := [...]Weather{w.set.Weather, WeatherClear}
			next = choices[w.rand.ChoiceIndex(2)]
		}
	}

	bound := int32(168000)
	if w.set.Weather != WeatherClear {
		bound = 12000
	}
	delay := uint64(w.rand.IntBounded(bound)) + 12000
	w.set.WeatherNextTime = w.set.Time + delay

	if next != w.set.Weather {
		w.log.Info("weather changing", "from", w.set.Weather.String(), "to", next.String(), "next_change", w.set.WeatherNextTime)
		w.set.Weather = next
		w.PushEvent(Event{Kind: EventWeatherChange, Weather: next})
	}
}

// tickLightning draws a strike position during thunder. Strikes land on the
// surface of a random loaded chunk, roughly one every few seconds per world.
func (w *World) tickLightning() {
	if w.set.Weather != WeatherThunder {
		return
	}
	loaded := w.store.Loaded()
	if len(loaded) == 0 {
		return
	}
	if w.rand.IntBounded(100) != 0 {
		return
	}
	id := loaded[w.rand.ChoiceIndex(len(loaded))]
	c := w.store.chunkByID(id)
	x := int(w.rand.IntBounded(16))
	z := int(w.rand.IntBounded(16))
	cpos := id.Pos()
	local := cube.Pos{x, 0, z}
	pos := cube.Pos{int(cpos[0])<<4 | x, int(c.Height(local)), int(cpos[1])<<4 | z}
	w.PushEvent(Event{Kind: EventLightning, Pos: pos})
}
