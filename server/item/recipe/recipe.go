// Package recipe holds the crafting and smelting tables. Shaped recipes
// match a trimmed crafting grid cell for cell; shapeless recipes match any
// arrangement of their ingredients.
package recipe

import (
	"github.com/mc173/mc173/server/item"
)

// Shaped is a recipe whose ingredients must keep their arrangement.
type Shaped struct {
	// Width and Height are the size of the trimmed pattern.
	Width, Height int
	// Ingredients lists the pattern row-major; zero is an empty cell.
	Ingredients []int16
	// Result is the crafted stack.
	Result item.Stack
}

// Shapeless is a recipe matched by its ingredient multiset alone.
type Shapeless struct {
	// Ingredients lists the required item ids.
	Ingredients []int16
	// Result is the crafted stack.
	Result item.Stack
}

// MatchGrid returns the crafted result for the grid laid out row-major with
// the given width. Empty rows and columns around the used cells are ignored.
func MatchGrid(grid []item.Stack, width int) (item.Stack, bool) {
	if width <= 0 || len(grid)%width != 0 {
		return item.Stack{}, false
	}
	height := len(grid) / width

	// Trim the grid to the bounding box of its non-empty cells.
	minX, minY, maxX, maxY := width, height, -1, -1
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !grid[y*width+x].Empty() {
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 {
		return item.Stack{}, false
	}
	tw, th := maxX-minX+1, maxY-minY+1
	trimmed := make([]int16, 0, tw*th)
	var used []int16
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			id := grid[y*width+x].ID
			if grid[y*width+x].Empty() {
				id = 0
			} else {
				used = append(used, id)
			}
			trimmed = append(trimmed, id)
		}
	}

	for _, r := range shapedRecipes {
		if r.Width != tw || r.Height != th {
			continue
		}
		if matchPattern(trimmed, r.Ingredients) || matchPattern(trimmed, mirrored(r)) {
			return r.Result, true
		}
	}
	for _, r := range shapelessRecipes {
		if matchMultiset(used, r.Ingredients) {
			return r.Result, true
		}
	}
	return item.Stack{}, false
}

func matchPattern(grid, pattern []int16) bool {
	if len(grid) != len(pattern) {
		return false
	}
	for i := range grid {
		if grid[i] != pattern[i] {
			return false
		}
	}
	return true
}

// mirrored returns the pattern flipped horizontally, so that handed recipes
// such as hoes and stairs match both ways.
func mirrored(r Shaped) []int16 {
	out := make([]int16, len(r.Ingredients))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			out[y*r.Width+x] = r.Ingredients[y*r.Width+(r.Width-1-x)]
		}
	}
	return out
}

func matchMultiset(used, ingredients []int16) bool {
	if len(used) != len(ingredients) {
		return false
	}
	counts := map[int16]int{}
	for _, id := range used {
		counts[id]++
	}
	for _, id := range ingredients {
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}
	return true
}

// Block item ids used in patterns; the block id space doubles as the item
// id space below 256.
const (
	planks      int16 = 5
	cobblestone int16 = 4
	log         int16 = 17
	wool        int16 = 35
	sand        int16 = 12
	glassBlock  int16 = 20
)

var shapedRecipes = []Shaped{
	// Sticks and basic stations.
	{Width: 1, Height: 2, Ingredients: []int16{planks, planks}, Result: item.Stack{ID: item.Stick, Size: 4}},
	{Width: 2, Height: 2, Ingredients: []int16{planks, planks, planks, planks}, Result: item.Stack{ID: 58, Size: 1}},
	{Width: 3, Height: 3, Ingredients: []int16{cobblestone, cobblestone, cobblestone, cobblestone, 0, cobblestone, cobblestone, cobblestone, cobblestone}, Result: item.Stack{ID: 61, Size: 1}},
	{Width: 3, Height: 3, Ingredients: []int16{planks, planks, planks, planks, 0, planks, planks, planks, planks}, Result: item.Stack{ID: 54, Size: 1}},

	// Torches and light.
	{Width: 1, Height: 2, Ingredients: []int16{item.Coal, item.Stick}, Result: item.Stack{ID: 50, Size: 4}},

	// Pickaxes.
	{Width: 3, Height: 3, Ingredients: []int16{planks, planks, planks, 0, item.Stick, 0, 0, item.Stick, 0}, Result: item.Stack{ID: item.WoodPickaxe, Size: 1}},
	{Width: 3, Height: 3, Ingredients: []int16{cobblestone, cobblestone, cobblestone, 0, item.Stick, 0, 0, item.Stick, 0}, Result: item.Stack{ID: item.StonePickaxe, Size: 1}},
	{Width: 3, Height: 3, Ingredients: []int16{item.IronIngot, item.IronIngot, item.IronIngot, 0, item.Stick, 0, 0, item.Stick, 0}, Result: item.Stack{ID: item.IronPickaxe, Size: 1}},
	{Width: 3, Height: 3, Ingredients: []int16{item.Diamond, item.Diamond, item.Diamond, 0, item.Stick, 0, 0, item.Stick, 0}, Result: item.Stack{ID: item.DiamondPickaxe, Size: 1}},

	// Axes.
	{Width: 2, Height: 3, Ingredients: []int16{planks, planks, planks, item.Stick, 0, item.Stick}, Result: item.Stack{ID: item.WoodAxe, Size: 1}},
	{Width: 2, Height: 3, Ingredients: []int16{cobblestone, cobblestone, cobblestone, item.Stick, 0, item.Stick}, Result: item.Stack{ID: item.StoneAxe, Size: 1}},
	{Width: 2, Height: 3, Ingredients: []int16{item.IronIngot, item.IronIngot, item.IronIngot, item.Stick, 0, item.Stick}, Result: item.Stack{ID: item.IronAxe, Size: 1}},

	// Swords.
	{Width: 1, Height: 3, Ingredients: []int16{planks, planks, item.Stick}, Result: item.Stack{ID: item.WoodSword, Size: 1}},
	{Width: 1, Height: 3, Ingredients: []int16{cobblestone, cobblestone, item.Stick}, Result: item.Stack{ID: item.StoneSword, Size: 1}},
	{Width: 1, Height: 3, Ingredients: []int16{item.IronIngot, item.IronIngot, item.Stick}, Result: item.Stack{ID: item.IronSword, Size: 1}},

	// Shovels.
	{Width: 1, Height: 3, Ingredients: []int16{planks, item.Stick, item.Stick}, Result: item.Stack{ID: item.WoodShovel, Size: 1}},
	{Width: 1, Height: 3, Ingredients: []int16{cobblestone, item.Stick, item.Stick}, Result: item.Stack{ID: item.StoneShovel, Size: 1}},
	{Width: 1, Height: 3, Ingredients: []int16{item.IronIngot, item.Stick, item.Stick}, Result: item.Stack{ID: item.IronShovel, Size: 1}},

	// Furniture and structure blocks.
	{Width: 3, Height: 2, Ingredients: []int16{wool, wool, wool, planks, planks, planks}, Result: item.Stack{ID: item.BedItem, Size: 1}},
	{Width: 2, Height: 3, Ingredients: []int16{planks, planks, planks, planks, planks, planks}, Result: item.Stack{ID: item.WoodDoorItem, Size: 1}},
	{Width: 2, Height: 3, Ingredients: []int16{item.IronIngot, item.IronIngot, item.IronIngot, item.IronIngot, item.IronIngot, item.IronIngot}, Result: item.Stack{ID: item.IronDoorItem, Size: 1}},
	{Width: 3, Height: 3, Ingredients: []int16{planks, planks, planks, planks, planks, planks, 0, item.Stick, 0}, Result: item.Stack{ID: item.SignItem, Size: 1}},
	{Width: 2, Height: 3, Ingredients: []int16{item.Stick, item.Stick, item.Stick, item.Stick, item.Stick, item.Stick}, Result: item.Stack{ID: 65, Size: 1}},
	{Width: 3, Height: 2, Ingredients: []int16{item.Stick, item.Stick, item.Stick, item.Stick, item.Stick, item.Stick}, Result: item.Stack{ID: 85, Size: 2}},
	{Width: 3, Height: 3, Ingredients: []int16{item.Book, item.Book, item.Book, planks, planks, planks, planks, planks, planks}, Result: item.Stack{ID: 47, Size: 1}},
	{Width: 3, Height: 1, Ingredients: []int16{1, 1, 1}, Result: item.Stack{ID: 44, Size: 3}},
	{Width: 3, Height: 3, Ingredients: []int16{item.Gunpowder, sand, item.Gunpowder, sand, item.Gunpowder, sand, item.Gunpowder, sand, item.Gunpowder}, Result: item.Stack{ID: 46, Size: 1}},
	{Width: 3, Height: 3, Ingredients: []int16{0, item.GlowstoneDust, 0, item.GlowstoneDust, 0, item.GlowstoneDust, 0, item.GlowstoneDust, 0}, Result: item.Stack{ID: 89, Size: 1}},
	{Width: 2, Height: 2, Ingredients: []int16{item.Brick, item.Brick, item.Brick, item.Brick}, Result: item.Stack{ID: 45, Size: 1}},
	{Width: 2, Height: 2, Ingredients: []int16{sand, sand, sand, sand}, Result: item.Stack{ID: 24, Size: 1}},
}

var shapelessRecipes = []Shapeless{
	{Ingredients: []int16{log}, Result: item.Stack{ID: planks, Size: 4}},
	{Ingredients: []int16{item.IronIngot, item.Flint}, Result: item.Stack{ID: item.FlintAndSteel, Size: 1}},
}

// Shapeds returns the registered shaped recipes, primarily for tests and
// tooling.
func Shapeds() []Shaped {
	return shapedRecipes
}
