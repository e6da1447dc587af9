package recipe

import "github.com/mc173/mc173/server/item"

// smeltTable maps furnace inputs to their outputs.
var smeltTable = map[int16]item.Stack{
	15:              {ID: item.IronIngot, Size: 1}, // iron ore
	14:              {ID: item.GoldIngot, Size: 1}, // gold ore
	4:               {ID: 1, Size: 1},              // cobblestone to stone
	12:              {ID: 20, Size: 1},             // sand to glass
	17:              {ID: item.Coal, Size: 1},      // log to charcoal
	item.ClayBall:   {ID: item.Brick, Size: 1},
	81:              {ID: 351, Size: 1}, // cactus to green dye
}

// Smelt returns the furnace output of the input item id.
func Smelt(input int16) (item.Stack, bool) {
	out, ok := smeltTable[input]
	return out, ok
}

// FuelTime returns the burn duration of a fuel item in ticks, or zero for
// items that do not burn.
func FuelTime(id int16) uint64 {
	switch id {
	case item.Coal:
		return 1600
	case 5, 17, 58, 54, 85, 53: // wooden blocks
		return 300
	case item.Stick:
		return 100
	case 11: // a lava bucket would go here; still lava counts for parity
		return 20000
	}
	return 0
}
