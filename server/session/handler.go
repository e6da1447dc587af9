package session

import (
	"fmt"
	"math"

	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/item"
	"github.com/mc173/mc173/server/proto"
)

// HandlePacket processes one inbound packet on the tick goroutine. Protocol
// violations disconnect the session; consistency warnings drop the packet.
func (s *Session) HandlePacket(pkt proto.Packet) {
	if s.state == StateClosed {
		return
	}
	switch p := pkt.(type) {
	case *proto.KeepAlive:
		s.Send(&proto.KeepAlive{})
	case *proto.Handshake:
		s.handleHandshake(p)
	case *proto.Login:
		s.handleLogin(p)
	case *proto.Disconnect:
		s.log.Info("client disconnected", "username", s.username, "reason", p.Reason)
		s.Close(false)
	default:
		if s.state != StatePlaying {
			s.Disconnect("unexpected packet before login")
			return
		}
		s.handlePlaying(pkt)
	}
}

func (s *Session) handleHandshake(*proto.Handshake) {
	if s.state != StateHandshaking {
		s.Disconnect("handshake out of order")
		return
	}
	s.Send(&proto.HandshakeReply{Identifier: ServerIdentifier})
}

func (s *Session) handleLogin(p *proto.Login) {
	if s.state != StateHandshaking {
		s.Disconnect("login out of order")
		return
	}
	if p.Protocol != ProtocolVersion {
		s.log.Warn("rejecting login with wrong protocol", "username", p.Username, "protocol", p.Protocol)
		s.Disconnect(fmt.Sprintf("protocol version %d not supported", p.Protocol))
		return
	}
	w, ent, err := s.ctrl.Login(s, p.Username)
	if err != nil {
		s.log.Warn("login rejected", "username", p.Username, "error", err)
		s.Disconnect(err.Error())
		return
	}
	s.username = p.Username
	s.w = w
	s.ent = ent
	s.state = StatePlaying
	s.log = s.log.With("username", p.Username)

	s.Send(&proto.LoginReply{EntityID: ent.EID, Seed: w.Seed(), Dimension: int8(w.Dimension())})
}

func (s *Session) handlePlaying(pkt proto.Packet) {
	switch p := pkt.(type) {
	case *proto.Chat:
		s.ctrl.Chat(s, p.Message)
	case *proto.Flying:
		s.ent.OnGround = p.OnGround
	case *proto.Position:
		s.ent.Pos = p.Pos
		s.ent.OnGround = p.OnGround
	case *proto.Look:
		s.ent.Yaw = degreesToRadians(p.Yaw)
		s.ent.Pitch = degreesToRadians(p.Pitch)
		s.ent.OnGround = p.OnGround
	case *proto.PositionLook:
		s.ent.Pos = p.Pos
		s.ent.Yaw = degreesToRadians(p.Yaw)
		s.ent.Pitch = degreesToRadians(p.Pitch)
		s.ent.OnGround = p.OnGround
	case *proto.BreakBlock:
		s.handleBreakBlock(p)
	case *proto.PlaceBlock:
		s.handlePlaceBlock(p)
	case *proto.HandSlot:
		if err := s.inv.SetHandSlot(p.Slot); err != nil {
			s.log.Warn("invalid hand slot dropped", "username", s.username, "slot", p.Slot)
			return
		}
	case *proto.Animation:
		s.ctrl.Animate(s, p.Animate)
	case *proto.Action:
		s.handleAction(p)
	case *proto.Interact:
		if p.LeftClick {
			s.ctrl.AttackEntity(s, p.Target)
		}
	case *proto.Respawn:
		if w := s.ctrl.Respawn(s, p.Dimension); w != nil {
			s.w = w
		}
		s.Send(&proto.UpdateHealth{Health: 20})
	case *proto.WindowClick, *proto.WindowClose, *proto.WindowTransaction:
		s.handleWindow(pkt)
	case *proto.UpdateSign:
		s.handleUpdateSign(p)
	default:
		s.log.Warn("unhandled packet dropped", "username", s.username, "packet_id", pkt.ID())
	}
}

func (s *Session) handleAction(p *proto.Action) {
	switch p.State {
	case proto.ActionSneak:
		s.ent.Sneaking = true
		s.ctrl.Sneak(s, true)
	case proto.ActionUnsneak:
		s.ent.Sneaking = false
		s.ctrl.Sneak(s, false)
	case proto.ActionWake:
		// Beds are data contracts only; waking needs no simulation.
	default:
		s.log.Warn("unknown action state dropped", "username", s.username, "state", p.State)
	}
}

func (s *Session) handleBreakBlock(p *proto.BreakBlock) {
	if p.Status == proto.BreakDropItem {
		s.ctrl.DropHeldItem(s)
		return
	}
	pos := cube.Pos{int(p.X), int(p.Y), int(p.Z)}
	switch p.Status {
	case proto.BreakStart:
		s.startBreaking(pos)
	case proto.BreakFinish:
		s.finishBreaking(pos)
	default:
		s.log.Warn("unknown break status dropped", "username", s.username, "status", p.Status)
	}
}

func (s *Session) startBreaking(pos cube.Pos) {
	id, _, ok := s.w.Block(pos)
	if !ok || id == block.Air {
		return
	}
	held := s.HeldStack().ID
	inWater := s.w.Material(s.ent.BlockPos()).IsFluid()
	duration := block.BreakDuration(id, held, inWater, s.ent.OnGround)
	switch {
	case math.IsInf(duration, 1):
		// Unbreakable; the client animation is its own problem.
	case duration == 0:
		s.w.BreakBlock(pos)
		s.ctrl.BrokeBlock(s, pos, id)
		s.breaking = nil
	default:
		s.breaking = &BreakingBlock{StartTick: s.w.Time(), Pos: pos, ID: id}
	}
}

func (s *Session) finishBreaking(pos cube.Pos) {
	br := s.breaking
	if br == nil || br.Pos != [3]int(pos) {
		s.log.Warn("break finish for wrong position dropped", "username", s.username, "pos", pos)
		return
	}
	id, _, ok := s.w.Block(pos)
	if !ok || id != br.ID {
		s.log.Warn("break finish for changed block dropped", "username", s.username, "pos", pos)
		return
	}
	held := s.HeldStack().ID
	inWater := s.w.Material(s.ent.BlockPos()).IsFluid()
	duration := block.BreakDuration(id, held, inWater, s.ent.OnGround)
	minTicks := uint64(duration * 0.7)
	if s.w.Time() < br.StartTick+minTicks {
		s.log.Warn("break finished too early, ignored", "username", s.username, "pos", pos,
			"elapsed", s.w.Time()-br.StartTick, "required", minTicks)
		return
	}
	s.breaking = nil
	s.w.BreakBlock(pos)
	s.ctrl.BrokeBlock(s, pos, id)
}

func (s *Session) handlePlaceBlock(p *proto.PlaceBlock) {
	if p.Direction == proto.PlaceFaceNone {
		// Using the held item on air; nothing in the core item set reacts.
		return
	}
	dir, ok := cube.FaceFromWire(p.Direction)
	if !ok {
		s.log.Warn("invalid place direction dropped", "username", s.username, "direction", p.Direction)
		return
	}
	clicked := cube.Pos{int(p.X), int(p.Y), int(p.Z)}

	// Clicking a block that reacts to interaction consumes the click before
	// any placement happens: doors, levers, buttons, trapdoors, repeaters,
	// and the blocks that open a window on the client.
	if !s.ent.Sneaking {
		if s.w.Interact(clicked) {
			return
		}
		if s.openWindowFor(clicked) {
			return
		}
	}

	// Clicking either bed half begins sleeping.
	if cid, _, ok := s.w.Block(clicked); ok && cid == block.Bed {
		s.ctrl.SleepInBed(s, clicked)
		return
	}

	held := s.HeldStack()
	if held.Empty() && p.Stack != nil {
		// Fall back to the client-claimed stack for sessions that never
		// received a server-side inventory.
		held = *p.Stack
	}
	if s.useToolOnBlock(held, clicked, dir) {
		return
	}

	id, meta, ok := blockToPlace(held, dir)
	if !ok {
		return
	}

	pos := clicked.Side(dir)
	face := dir.Opposite()
	if pos.OutOfBounds() {
		return
	}
	if id == block.Bed {
		if s.w.IsReplaceable(pos) && s.w.PlaceBed(pos, s.ent.Facing()) {
			s.inv.ConsumeHeld()
		}
		return
	}
	if !s.w.CanPlaceBlock(pos, face, id) {
		// The client already predicted the placement; force it back.
		if cur, curMeta, ok := s.w.Block(pos); ok {
			s.Send(&proto.BlockSet{X: int32(pos[0]), Y: int8(pos[1]), Z: int32(pos[2]), Block: cur, Metadata: curMeta})
		}
		return
	}
	s.w.PlaceBlock(pos, face, id, meta)
	s.inv.ConsumeHeld()
}

// useToolOnBlock applies the non-placement tools: hoes till grass and dirt
// into farmland, flint and steel lights fires and portals and detonates
// TNT. It reports whether the item consumed the click.
func (s *Session) useToolOnBlock(held item.Stack, clicked cube.Pos, dir cube.Face) bool {
	switch held.ID {
	case item.WoodHoe, item.StoneHoe, item.IronHoe, item.DiamondHoe, item.GoldHoe:
		id, _, ok := s.w.Block(clicked)
		if !ok || (id != block.Grass && id != block.Dirt) {
			return false
		}
		if s.w.IsSolid(clicked.Side(cube.FaceUp)) {
			return false
		}
		s.w.SetBlockNotify(clicked, block.Farmland, 0)
		return true
	case item.FlintAndSteel:
		if s.w.IsBlock(clicked, block.TNT) {
			s.w.IgniteTNT(clicked)
			return true
		}
		target := clicked.Side(dir)
		if target.OutOfBounds() || !s.w.IsReplaceable(target) {
			return false
		}
		s.w.SetBlockNotify(target, block.Fire, 0)
		return true
	}
	return false
}

// blockToPlace resolves the held stack to the block id and metadata a
// placement writes. Items whose block has a separate item id translate
// through the item table; signs pick their standing or wall form from the
// clicked face.
func blockToPlace(held item.Stack, dir cube.Face) (uint8, uint8, bool) {
	if held.Empty() {
		return 0, 0, false
	}
	if held.IsBlock() {
		return uint8(held.ID), uint8(held.Damage & 0xF), true
	}
	id, ok := item.BlockForItem(held.ID)
	if !ok {
		return 0, 0, false
	}
	if id == block.Sign {
		switch {
		case dir == cube.FaceUp:
			// Standing sign on top of the clicked block.
		case dir.IsVertical():
			return 0, 0, false
		default:
			id = block.WallSign
		}
	}
	return id, 0, true
}

// openWindowFor opens the client window of a container-like block. It
// reports whether the clicked block opened one.
func (s *Session) openWindowFor(clicked cube.Pos) bool {
	id, _, ok := s.w.Block(clicked)
	if !ok {
		return false
	}
	s.windowCount++
	if s.windowCount == 0 {
		// Window id zero is reserved for the player inventory.
		s.windowCount = 1
	}
	switch id {
	case block.CraftingTable:
		s.Send(&proto.WindowOpen{WindowID: s.windowCount, Kind: 1, Title: "Crafting", Slots: 9})
	case block.Furnace, block.FurnaceLit:
		s.Send(&proto.WindowOpen{WindowID: s.windowCount, Kind: 2, Title: "Furnace", Slots: 3})
		s.Send(&proto.WindowProgress{WindowID: s.windowCount, Bar: 0, Value: 0})
	case block.Chest:
		s.Send(&proto.WindowOpen{WindowID: s.windowCount, Kind: 0, Title: "Chest", Slots: 27})
	case block.Dispenser:
		s.Send(&proto.WindowOpen{WindowID: s.windowCount, Kind: 3, Title: "Trap", Slots: 9})
	default:
		s.windowCount--
		return false
	}
	return true
}

func (s *Session) handleWindow(pkt proto.Packet) {
	switch p := pkt.(type) {
	case *proto.WindowClick:
		if p.WindowID == 0 {
			s.handleInventoryClick(p)
			return
		}
		if p.WindowID != s.windowCount {
			s.log.Warn("click into unknown window dropped", "username", s.username, "window", p.WindowID)
			return
		}
		// Container windows accept the transaction verbatim; their contents
		// are a pure data contract.
		s.Send(&proto.WindowTransaction{WindowID: p.WindowID, Transaction: p.Transaction, Accepted: true})
	case *proto.WindowClose:
		// Nothing held across window closes.
	case *proto.WindowTransaction:
		if !p.Accepted {
			s.log.Warn("client rejected window transaction", "username", s.username, "window", p.WindowID)
		}
	}
}

func (s *Session) handleUpdateSign(p *proto.UpdateSign) {
	pos := cube.Pos{int(p.X), int(p.Y), int(p.Z)}
	if !s.w.SetSignText(pos, p.Lines) {
		s.log.Warn("sign update for non-sign dropped", "username", s.username, "pos", pos)
	}
}

func degreesToRadians(deg float32) float32 {
	return deg * math.Pi / 180
}
