// Package painting holds the painting motive table of Beta 1.7.3. Motives
// are identified on the wire by their name; the sizes drive the placement
// check of painting items.
package painting

// Motive is one paintable motive.
type Motive struct {
	// Name is the wire identifier of the motive.
	Name string
	// Width and Height are the size of the motive in blocks.
	Width, Height int
}

// Motives lists every motive of Beta 1.7.3 in registry order.
var Motives = []Motive{
	{"Kebab", 1, 1},
	{"Aztec", 1, 1},
	{"Alban", 1, 1},
	{"Aztec2", 1, 1},
	{"Bomb", 1, 1},
	{"Plant", 1, 1},
	{"Wasteland", 1, 1},
	{"Pool", 2, 1},
	{"Courbet", 2, 1},
	{"Sea", 2, 1},
	{"Sunset", 2, 1},
	{"Creebet", 2, 1},
	{"Wanderer", 1, 2},
	{"Graham", 1, 2},
	{"Match", 2, 2},
	{"Bust", 2, 2},
	{"Stage", 2, 2},
	{"Void", 2, 2},
	{"SkullAndRoses", 2, 2},
	{"Fighters", 4, 2},
	{"Pointer", 4, 4},
	{"Pigscene", 4, 4},
	{"BurningSkull", 4, 4},
	{"Skeleton", 4, 3},
	{"DonkeyKong", 4, 3},
}

// ByName returns the motive with the given wire name.
func ByName(name string) (Motive, bool) {
	for _, m := range Motives {
		if m.Name == name {
			return m, true
		}
	}
	return Motive{}, false
}
