package block

// Slab kinds, stored as the slab and double-slab metadata.
const (
	SlabStone uint8 = iota
	SlabSandstone
	SlabWood
	SlabCobblestone
)

// SlabKind returns the material kind of slab metadata.
func SlabKind(meta uint8) uint8 {
	return meta & 0x3
}

// CombineSlabs reports whether placing a slab of the given kind onto an
// existing slab cell forms a double slab.
func CombineSlabs(existingMeta, placedMeta uint8) bool {
	return SlabKind(existingMeta) == SlabKind(placedMeta)
}
