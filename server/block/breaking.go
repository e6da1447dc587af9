package block

import (
	"math"

	"github.com/mc173/mc173/server/item"
)

// ToolSpeed returns the dig speed multiplier of the held item against the
// block: the item's base speed when its tool class is effective against the
// block's material, 1 otherwise. Swords get their fixed bonus against webs,
// shears against wool, webs and leaves.
func ToolSpeed(held int16, id uint8) float64 {
	class, _ := item.ToolOf(held)
	if class == item.ClassNone {
		return 1
	}
	m := MaterialOf(id)
	switch class {
	case item.ClassPickaxe:
		switch m {
		case MaterialRock, MaterialIron, MaterialIce, MaterialGlass:
			return item.SpeedOf(held)
		}
	case item.ClassAxe:
		switch m {
		case MaterialWood, MaterialPumpkin:
			return item.SpeedOf(held)
		}
	case item.ClassShovel:
		switch m {
		case MaterialGround, MaterialSand, MaterialSnow, MaterialSnowBlock, MaterialClay:
			return item.SpeedOf(held)
		}
	case item.ClassSword:
		if m == MaterialWeb {
			return 15
		}
	case item.ClassShears:
		switch m {
		case MaterialCloth:
			return 5
		case MaterialWeb, MaterialLeaves:
			return 15
		}
	}
	return 1
}

// CanBreak reports whether breaking the block with the held item yields its
// fast break time. Ores and metal blocks demand a pickaxe of sufficient tier,
// snow a shovel, webs a sword or shears; everything else follows the
// material's default breakability.
func CanBreak(held int16, id uint8) bool {
	class, tier := item.ToolOf(held)
	switch id {
	case Obsidian:
		return class == item.ClassPickaxe && tier >= item.TierDiamond
	case GoldOre, GoldBlock, RedstoneOre, RedstoneOreLit, DiamondOre, DiamondBlock:
		return class == item.ClassPickaxe && tier >= item.TierIron
	case IronOre, IronBlock, LapisOre, LapisBlock:
		return class == item.ClassPickaxe && tier >= item.TierStone
	case Cobweb:
		return class == item.ClassSword || class == item.ClassShears
	case Snow, SnowBlock:
		return class == item.ClassShovel
	}
	m := MaterialOf(id)
	switch m {
	case MaterialRock, MaterialIron:
		return class == item.ClassPickaxe
	case MaterialGround, MaterialSand, MaterialClay, MaterialSnow, MaterialSnowBlock:
		return class == item.ClassShovel
	}
	return m.BreakableByDefault()
}

// BreakDuration returns the number of ticks needed to break the block with
// the held item. +Inf marks unbreakable blocks; zero breaks instantly. The
// in-water and off-ground penalties divide the dig speed by five each.
func BreakDuration(id uint8, held int16, inWater, onGround bool) float64 {
	h := Hardness(id)
	if math.IsInf(h, 1) {
		return math.Inf(1)
	}
	if h == 0 {
		return 0
	}
	modifier := ToolSpeed(held, id)
	if inWater {
		modifier /= 5
	}
	if !onGround {
		modifier /= 5
	}
	base := 100.0
	if CanBreak(held, id) {
		base = 30.0
	}
	return h * base / modifier
}
