// Package redstone implements the wire power solver. A single notification
// resolves the entire connected component of wire around the triggering
// cell: the network topology is discovered and charged from external
// sources, power is relaxed outward, and every surrounding block of a
// changed wire is notified exactly once.
package redstone

import (
	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
)

// World is the surface the solver needs from the simulation. The world
// package passes itself.
type World interface {
	// Block returns the block id and metadata at the position.
	Block(pos cube.Pos) (id, meta uint8, ok bool)
	// SetBlock writes a cell and returns its previous contents.
	SetBlock(pos cube.Pos, id, meta uint8) (prevID, prevMeta uint8, ok bool)
	// ActivePowerFrom returns the power emitted by the block at the position
	// through the given face of that block.
	ActivePowerFrom(pos cube.Pos, through cube.Face) uint8
	// IsOpaqueCube reports whether the block at the position is a full
	// opaque cube.
	IsOpaqueCube(pos cube.Pos) bool
	// NotifyBlock asks the block at the position to re-evaluate itself.
	NotifyBlock(pos cube.Pos, originID uint8)
}

// node tracks one wire cell of the network while the solver runs.
type node struct {
	// power is the current power of the node.
	power uint8
	// links marks, per horizontal face, a hint that another wire connects
	// there, possibly one step up or down.
	links cube.FaceSet
	// opaqueAbove gates upward diagonal propagation.
	opaqueAbove bool
	// opaqueBelow gates downward diagonal propagation.
	opaqueBelow bool
}

type pendingEntry struct {
	pos  cube.Pos
	link cube.Face
}

// Update resolves the wire network connected to the wire cell at pos. The
// component is fully relaxed before the function returns; recursion through
// block notifications is bounded by the worklists kept here.
func Update(w World, pos cube.Pos) {
	nodes := make(map[cube.Pos]*node)
	// order keeps the discovery order of nodes so that the shutdown pass
	// over never-charged nodes stays deterministic.
	var order []cube.Pos

	pending := []pendingEntry{{pos: pos, link: cube.FaceDown}}
	var sources []cube.Pos

	// Phase 1: walk the connected wires, record links and charge each node
	// with the strongest external power beside it.
	for len(pending) > 0 {
		entry := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if n, ok := nodes[entry.pos]; ok {
			n.links.Insert(entry.link)
			continue
		}
		n := &node{}
		nodes[entry.pos] = n
		order = append(order, entry.pos)
		n.links.Insert(entry.link)
		n.opaqueAbove = w.IsOpaqueCube(entry.pos.Side(cube.FaceUp))
		n.opaqueBelow = w.IsOpaqueCube(entry.pos.Side(cube.FaceDown))

		for _, face := range cube.HorizontalFaces() {
			// The face that discovered this node was linked above already.
			if face == entry.link {
				continue
			}
			facePos := entry.pos.Side(face)
			id, _, ok := w.Block(facePos)
			if !ok {
				continue
			}
			if id == block.Redstone {
				n.links.Insert(face)
				pending = append(pending, pendingEntry{pos: facePos, link: face.Opposite()})
				continue
			}
			if p := w.ActivePowerFrom(facePos, face.Opposite()); p > n.power {
				n.power = p
			}
			if block.IsOpaqueCube(id) {
				// Wire may run on top of the faced block when nothing opaque
				// sits above this node.
				if !n.opaqueAbove {
					up := facePos.Side(cube.FaceUp)
					if upID, _, ok := w.Block(up); ok && upID == block.Redstone {
						n.links.Insert(face)
						pending = append(pending, pendingEntry{pos: up, link: face.Opposite()})
					}
				}
			} else {
				// Wire may run below the faced block when it is not opaque.
				down := facePos.Side(cube.FaceDown)
				if downID, _, ok := w.Block(down); ok && downID == block.Redstone {
					n.links.Insert(face)
					pending = append(pending, pendingEntry{pos: down, link: face.Opposite()})
				}
			}
		}

		// Pure sources above and below charge the node too.
		for _, face := range []cube.Face{cube.FaceDown, cube.FaceUp} {
			if p := w.ActivePowerFrom(entry.pos.Side(face), face.Opposite()); p > n.power {
				n.power = p
			}
		}

		if n.power > 0 {
			sources = append(sources, entry.pos)
		}
	}

	// Phase 2: relax power outward, breadth-first from the charged sources.
	// changed collects the nodes whose stored cell actually changed, in
	// closest-to-source-first order.
	var changed []cube.Pos
	next := 0
	for next < len(sources) {
		start, end := next, len(sources)
		next = end
		for i := start; i < end; i++ {
			nodePos := sources[i]
			n, ok := nodes[nodePos]
			if !ok {
				continue
			}
			delete(nodes, nodePos)

			if prevID, prevMeta, ok := w.SetBlock(nodePos, block.Redstone, n.power); ok &&
				(prevID != block.Redstone || prevMeta != n.power) {
				changed = append(changed, nodePos)
			}
			if n.power <= 1 {
				continue
			}
			propagated := n.power - 1
			for _, face := range cube.HorizontalFaces() {
				if !n.links.Contains(face) {
					continue
				}
				facePos := nodePos.Side(face)
				if fn, ok := nodes[facePos]; ok {
					if propagated > fn.power {
						fn.power = propagated
					}
					sources = append(sources, facePos)
				}
				if !n.opaqueAbove {
					above := facePos.Side(cube.FaceUp)
					if fn, ok := nodes[above]; ok {
						if propagated > fn.power {
							fn.power = propagated
						}
						sources = append(sources, above)
					}
				}
				if n.opaqueBelow {
					below := facePos.Side(cube.FaceDown)
					if fn, ok := nodes[below]; ok {
						if propagated > fn.power {
							fn.power = propagated
						}
						sources = append(sources, below)
					}
				}
			}
		}
	}

	// Nodes never reached by a source shut down to zero.
	for _, nodePos := range order {
		if _, ok := nodes[nodePos]; !ok {
			continue
		}
		delete(nodes, nodePos)
		if prevID, prevMeta, ok := w.SetBlock(nodePos, block.Redstone, 0); ok &&
			(prevID != block.Redstone || prevMeta != 0) {
			changed = append(changed, nodePos)
		}
	}

	// Phase 3: notify the fixed neighbourhood of every changed wire exactly
	// once, closest to the sources first.
	notified := make(map[cube.Pos]struct{})
	notify := func(p cube.Pos) {
		if _, ok := notified[p]; ok {
			return
		}
		notified[p] = struct{}{}
		w.NotifyBlock(p, block.Redstone)
	}
	for _, nodePos := range changed {
		notify(nodePos.Side(cube.FaceUp))
		notify(nodePos.Side(cube.FaceDown))
		notify(nodePos.Add(cube.Pos{0, 2, 0}))
		notify(nodePos.Add(cube.Pos{0, -2, 0}))
		for _, face := range cube.HorizontalFaces() {
			facePos := nodePos.Side(face)
			notify(facePos)
			notify(facePos.Side(face))
			notify(facePos.Side(cube.FaceUp))
			notify(facePos.Side(cube.FaceDown))
			notify(facePos.Side(face.RotateRight()))
		}
	}
}
