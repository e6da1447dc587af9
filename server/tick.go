package server

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/entity"
	"github.com/mc173/mc173/server/item"
	"github.com/mc173/mc173/server/proto"
	"github.com/mc173/mc173/server/session"
	"github.com/mc173/mc173/server/world"
	"github.com/mc173/mc173/server/world/chunk"
)

// multiBlockThreshold is the number of single-cell updates to one chunk in
// one tick at or above which they are coalesced into one ChunkBlockSet packet.
const multiBlockThreshold = 10

// Tick runs one full server step: inbound intents are drained into the
// simulation, the worlds tick, and the resulting deltas are fanned out to
// the subscribed observers and flushed.
func (srv *Server) Tick() {
	for _, w := range srv.worldList {
		w.Guard().Arm()
	}
	defer func() {
		for _, w := range srv.worldList {
			w.Guard().Disarm()
		}
	}()

	srv.admitSessions()
	srv.closeLostSessions()
	srv.drainInboxes()
	srv.completeLogins()

	for _, w := range srv.worldList {
		w.Tick()
	}

	srv.dispatchEvents()
	srv.tickKeepAlive()
	srv.collectItems()
	srv.reconcileViews()
	srv.tickTrackers()
	srv.dispatchJournals()

	for _, w := range srv.worldList {
		w.Cache().Flush()
	}

	srv.flushOutboxes()
	srv.pruneSessions()
}

// admitSessions moves freshly accepted connections into the session list.
func (srv *Server) admitSessions() {
	srv.mu.Lock()
	fresh := srv.pendingSessions
	srv.pendingSessions = nil
	srv.mu.Unlock()
	srv.sessions = append(srv.sessions, fresh...)
}

// closeLostSessions tears down sessions whose transport failed, on the tick
// goroutine so world state stays tick-owned.
func (srv *Server) closeLostSessions() {
	srv.mu.Lock()
	lost := srv.lost
	srv.lost = nil
	srv.mu.Unlock()
	for _, sess := range lost {
		sess.Close(true)
	}
}

// drainInboxes feeds every parked inbound packet into its session handler.
func (srv *Server) drainInboxes() {
	for _, sess := range srv.sessions {
		for _, pkt := range sess.DrainInbox() {
			sess.HandlePacket(pkt)
		}
	}
}

// completeLogins sends the post-login sequence of players admitted this
// tick: spawn position, the teleport to their position, the clock and the
// current weather. Their chunk window follows from view reconciliation.
func (srv *Server) completeLogins() {
	for _, eid := range srv.order {
		rec, ok := srv.entities[eid]
		if !ok || rec.player == nil || !rec.player.fresh {
			continue
		}
		p := rec.player
		p.fresh = false
		w := p.sess.World()
		sp := srv.conf.SpawnPos
		p.sess.Send(&proto.SpawnPosition{X: sp[0], Y: sp[1], Z: sp[2]})
		p.sess.Send(&proto.PositionLook{
			Pos:      p.ent.Pos,
			Stance:   p.ent.Pos[1] + 1.62,
			Yaw:      radiansToDegrees(p.ent.Yaw),
			Pitch:    radiansToDegrees(p.ent.Pitch),
			OnGround: p.ent.OnGround,
		})
		p.sess.Send(&proto.UpdateTime{Time: w.Time()})
		if w.Weather() != world.WeatherClear {
			p.sess.Send(&proto.Notification{Reason: proto.NotifyRainStart})
		}
		p.sess.Send(&proto.UpdateHealth{Health: 20})
		p.sess.Send(&proto.WindowItems{WindowID: 0, Stacks: p.sess.Inventory().WindowStacks()})
	}
}

// dispatchEvents fans the worlds' event queues out to the affected players.
func (srv *Server) dispatchEvents() {
	for _, w := range srv.worldList {
		dim := int32(w.Dimension())
		for _, ev := range w.DrainEvents() {
			switch ev.Kind {
			case world.EventWeatherChange:
				reason := proto.NotifyRainEnd
				if ev.Weather != world.WeatherClear {
					reason = proto.NotifyRainStart
				}
				srv.forEachPlayerIn(dim, func(p *playerRecord) {
					p.sess.Send(&proto.Notification{Reason: reason})
				})
			case world.EventTimeBroadcast:
				srv.forEachPlayerIn(dim, func(p *playerRecord) {
					p.sess.Send(&proto.UpdateTime{Time: ev.Time})
				})
			case world.EventBlockPickup:
				srv.spawnItemEntityForCell(dim, ev)
			case world.EventExplosion:
				destroyed := make([][3]int8, 0, len(ev.Destroyed))
				for _, p := range ev.Destroyed {
					destroyed = append(destroyed, [3]int8{
						int8(p[0] - ev.Pos[0]), int8(p[1] - ev.Pos[1]), int8(p[2] - ev.Pos[2]),
					})
				}
				pkt := &proto.Explosion{
					X: float64(ev.Pos[0]) + 0.5, Y: float64(ev.Pos[1]) + 0.5, Z: float64(ev.Pos[2]) + 0.5,
					Radius:    float32(ev.Radius),
					Destroyed: destroyed,
				}
				srv.forEachPlayerIn(dim, func(p *playerRecord) {
					p.sess.Send(pkt)
				})
			case world.EventLightning:
				srv.nextEID++
				bolt := &proto.LightningBolt{
					EntityID: srv.nextEID,
					X:        int32(ev.Pos[0] * 32), Y: int32(ev.Pos[1] * 32), Z: int32(ev.Pos[2] * 32),
				}
				srv.forEachPlayerIn(dim, func(p *playerRecord) {
					p.sess.Send(bolt)
				})
			}
		}
	}
}

func (srv *Server) spawnItemEntityForCell(dim int32, ev world.Event) {
	pos := mgl64.Vec3{float64(ev.Pos[0]) + 0.5, float64(ev.Pos[1]) + 0.5, float64(ev.Pos[2]) + 0.5}
	srv.spawnItemEntity(dim, pos, item.Stack{ID: int16(ev.Block), Size: 1, Damage: int16(ev.Metadata)})
}

// forEachPlayerIn calls f for every playing session in the dimension, in
// login order.
func (srv *Server) forEachPlayerIn(dim int32, f func(*playerRecord)) {
	for _, eid := range srv.order {
		rec, ok := srv.entities[eid]
		if !ok || rec.player == nil {
			continue
		}
		if rec.ent.Dimension == dim {
			f(rec.player)
		}
	}
}

// collectItems lets players pick up the item entities they stand next to:
// the stack moves into the inventory, the pickup animation goes to every
// observer and the entity dies.
func (srv *Server) collectItems() {
	for _, eid := range append([]int32(nil), srv.order...) {
		rec, ok := srv.entities[eid]
		if !ok || rec.ent.Kind != entity.KindItem {
			continue
		}
		// Fresh drops rest for a few ticks before anyone collects them.
		if rec.tracker.Age() < 10 {
			continue
		}
		for _, peid := range srv.order {
			prec, ok := srv.entities[peid]
			if !ok || prec.player == nil || prec.ent.Dimension != rec.ent.Dimension {
				continue
			}
			if !withinPickupRange(prec.ent, rec.ent) {
				continue
			}
			stack := item.Stack{ID: rec.ent.HeldItem, Size: 1}
			if rest := prec.player.sess.Inventory().Add(stack); rest != 0 {
				continue
			}
			pickup := &proto.EntityPickup{CollectedID: eid, CollectorID: peid}
			srv.forEachObserver(eid, func(observer *playerRecord) {
				observer.sess.Send(pickup)
			})
			prec.player.sess.Send(pickup)
			prec.player.sess.Send(&proto.WindowItems{WindowID: 0, Stacks: prec.player.sess.Inventory().WindowStacks()})
			srv.removeEntity(eid)
			break
		}
	}
}

func radiansToDegrees(rad float32) float32 {
	return rad * 180 / math.Pi
}

func withinPickupRange(player, it *entity.Entity) bool {
	const reach = 1.5
	for i := 0; i < 3; i++ {
		d := player.Pos[i] - it.Pos[i]
		if d < -reach || d > reach {
			return false
		}
	}
	return true
}

// tickKeepAlive pings every playing session every ten seconds so transports
// with idle timeouts stay open.
func (srv *Server) tickKeepAlive() {
	if srv.worlds[world.Overworld].Time()%200 != 0 {
		return
	}
	for _, sess := range srv.sessions {
		if sess.State() == session.StatePlaying {
			sess.Send(&proto.KeepAlive{})
		}
	}
}

// reconcileViews restores the view invariants of every player: the square
// chunk window around their position exists and is streamed, and entity
// views match the per-kind tracking distances.
func (srv *Server) reconcileViews() {
	r := srv.conf.ViewRadius
	for _, eid := range srv.order {
		rec, ok := srv.entities[eid]
		if !ok || rec.player == nil {
			continue
		}
		p := rec.player
		w := p.sess.World()
		if w == nil {
			continue
		}
		srv.reconcileChunkViews(p, w, r)
		srv.reconcileEntityViews(p)
	}
}

func (srv *Server) reconcileChunkViews(p *playerRecord, w *world.World, r int) {
	center := p.ent.ChunkPos()
	for cz := center[1] - int32(r); cz <= center[1]+int32(r); cz++ {
		for cx := center[0] - int32(r); cx <= center[0]+int32(r); cx++ {
			cpos := cube.ChunkPos{cx, cz}
			id, err := chunk.IDFromPos(cpos)
			if err != nil {
				continue
			}
			if _, ok := p.chunkViews[id]; ok {
				continue
			}
			c := w.GetOrLoad(cpos)
			p.chunkViews[id] = struct{}{}
			srv.sendFullChunk(p.sess, cpos, c)
		}
	}
}

func (srv *Server) sendFullChunk(sess *session.Session, cpos cube.ChunkPos, c *chunk.Chunk) {
	sess.Send(&proto.ChunkState{CX: cpos[0], CZ: cpos[1], Init: true})
	from := cube.Pos{int(cpos[0]) * chunk.Width, 0, int(cpos[1]) * chunk.Width}
	size := cube.Pos{chunk.Width, chunk.Height, chunk.Width}
	payload, from, size, err := c.CompressData(from, size)
	if err != nil {
		srv.log.Warn("compressing chunk failed", "cx", cpos[0], "cz", cpos[1], "error", err)
		return
	}
	sess.Send(&proto.ChunkData{
		X: int32(from[0]), Y: int16(from[1]), Z: int32(from[2]),
		SizeX: uint8(size[0]), SizeY: uint8(size[1]), SizeZ: uint8(size[2]),
		Compressed: payload,
	})
}

func (srv *Server) reconcileEntityViews(p *playerRecord) {
	for _, targetEID := range srv.order {
		target, ok := srv.entities[targetEID]
		if !ok || targetEID == p.ent.EID {
			continue
		}
		_, seen := p.entityViews[targetEID]
		inRange := target.ent.Dimension == p.ent.Dimension &&
			axisDistance(p.ent, target.ent) <= float64(target.ent.Kind.TrackingDistance())
		switch {
		case inRange && !seen:
			p.entityViews[targetEID] = struct{}{}
			p.sess.Send(target.tracker.SpawnPacket())
		case !inRange && seen:
			delete(p.entityViews, targetEID)
			p.sess.Send(target.tracker.KillPacket())
		}
	}
}

// axisDistance is the largest per-axis horizontal distance between two
// entities.
func axisDistance(a, b *entity.Entity) float64 {
	dx := a.Pos[0] - b.Pos[0]
	if dx < 0 {
		dx = -dx
	}
	dz := a.Pos[2] - b.Pos[2]
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

// tickTrackers advances every entity tracker and fans its deltas out to the
// players holding a view of the entity.
func (srv *Server) tickTrackers() {
	for _, eid := range srv.order {
		rec, ok := srv.entities[eid]
		if !ok || rec.dead {
			continue
		}
		rec.tracker.Tick(func(pkt proto.Packet) {
			srv.forEachObserver(eid, func(observer *playerRecord) {
				observer.sess.Send(pkt)
			})
		})
	}
}

// dispatchJournals drains the chunk update journals and fans each entry out
// to the chunk's subscribers. Bursts of single-cell updates to one chunk
// coalesce into a multi-cell packet.
func (srv *Server) dispatchJournals() {
	for _, w := range srv.worldList {
		dim := int32(w.Dimension())
		entries := w.DrainJournal()
		if len(entries) == 0 {
			continue
		}
		perChunk := make(map[chunk.ID]int)
		for _, e := range entries {
			if e.Kind == world.UpdateBlockSet {
				perChunk[e.ChunkID]++
			}
		}
		coalesced := make(map[chunk.ID]*proto.ChunkBlockSet)
		for _, e := range entries {
			switch e.Kind {
			case world.UpdateFullChunk:
				srv.resendChunk(w, dim, e.ChunkID)
			case world.UpdateBlockSet:
				if perChunk[e.ChunkID] >= multiBlockThreshold {
					srv.appendCoalesced(coalesced, e)
					continue
				}
				bs := e.BlockSet
				pkt := &proto.BlockSet{
					X: int32(bs.Pos[0]), Y: int8(bs.Pos[1]), Z: int32(bs.Pos[2]),
					Block: bs.Block, Metadata: bs.Metadata,
				}
				srv.sendToSubscribers(dim, e.ChunkID, pkt)
			}
		}
		for id, pkt := range coalesced {
			srv.sendToSubscribers(dim, id, pkt)
		}
	}
}

func (srv *Server) appendCoalesced(coalesced map[chunk.ID]*proto.ChunkBlockSet, e world.ChunkUpdate) {
	pkt, ok := coalesced[e.ChunkID]
	if !ok {
		cpos := e.ChunkID.Pos()
		pkt = &proto.ChunkBlockSet{CX: cpos[0], CZ: cpos[1]}
		coalesced[e.ChunkID] = pkt
	}
	bs := e.BlockSet
	packed := int16(bs.Pos[0]&15)<<12 | int16(bs.Pos[2]&15)<<8 | int16(bs.Pos[1]&127)
	pkt.Positions = append(pkt.Positions, packed)
	pkt.Blocks = append(pkt.Blocks, bs.Block)
	pkt.Metadata = append(pkt.Metadata, bs.Metadata)
}

func (srv *Server) resendChunk(w *world.World, dim int32, id chunk.ID) {
	c := w.Chunk(id.Pos())
	if c == nil {
		return
	}
	srv.forEachPlayerIn(dim, func(p *playerRecord) {
		if _, subscribed := p.chunkViews[id]; subscribed {
			srv.sendFullChunk(p.sess, id.Pos(), c)
		}
	})
}

func (srv *Server) sendToSubscribers(dim int32, id chunk.ID, pkt proto.Packet) {
	srv.forEachPlayerIn(dim, func(p *playerRecord) {
		if _, subscribed := p.chunkViews[id]; subscribed {
			p.sess.Send(pkt)
		}
	})
}

// flushOutboxes writes every session's queued packets to its connection.
func (srv *Server) flushOutboxes() {
	for _, sess := range srv.sessions {
		sess.FlushOutbox()
	}
}

// pruneSessions drops closed sessions from the session list.
func (srv *Server) pruneSessions() {
	kept := srv.sessions[:0]
	for _, sess := range srv.sessions {
		if sess.State() != session.StateClosed {
			kept = append(kept, sess)
		}
	}
	srv.sessions = kept
}
