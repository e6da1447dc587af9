// Package session implements the per-connection state machine: the
// handshake and login exchange, the translation of inbound intents into
// simulation calls, and the outbox of deltas flushed back to the wire.
package session

import (
	"log/slog"
	"sync"

	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/entity"
	"github.com/mc173/mc173/server/item"
	"github.com/mc173/mc173/server/item/inventory"
	"github.com/mc173/mc173/server/proto"
	"github.com/mc173/mc173/server/world"
)

// ServerIdentifier is the handshake reply of a server without
// authentication.
const ServerIdentifier = "-"

// ProtocolVersion is the only protocol version accepted at login.
const ProtocolVersion = 14

// State is the connection state.
type State uint8

const (
	// StateHandshaking is the state from accept until a successful login.
	StateHandshaking State = iota
	// StatePlaying is the state of a logged-in player.
	StatePlaying
	// StateClosed is the state after disconnect.
	StateClosed
)

// Controller is the server surface a session drives: login, teardown and
// cross-player effects live above the session.
type Controller interface {
	// Login admits the username into the game, spawning or reviving its
	// player entity, and returns the world and entity of the player. A
	// returned error carries the disconnect reason.
	Login(s *Session, username string) (*world.World, *entity.Entity, error)
	// Disconnected tears down the playing state of the session. lost is
	// true when the transport failed rather than the client leaving.
	Disconnected(s *Session, lost bool)
	// Chat fans a chat message out to every player.
	Chat(from *Session, message string)
	// Animate fans an animation of the session's entity out to its
	// observers.
	Animate(s *Session, animate uint8)
	// Sneak fans the crouch flag of the session's entity out to its
	// observers as entity metadata.
	Sneak(s *Session, sneaking bool)
	// DropHeldItem spawns an item entity for the session's held stack.
	DropHeldItem(s *Session)
	// AttackEntity routes a left-click on another entity.
	AttackEntity(s *Session, target int32)
	// BrokeBlock fans the break effect of a block out to the player's
	// observers and credits the mining statistic.
	BrokeBlock(s *Session, pos cube.Pos, id uint8)
	// SleepInBed handles a click on a bed: the player sleeps or is told the
	// bed cannot be used now.
	SleepInBed(s *Session, pos cube.Pos)
	// Respawn revives the session's player, optionally into another
	// dimension, and returns the world it respawned into.
	Respawn(s *Session, dimension int8) *world.World
}

// BreakingBlock records the single block a player is currently breaking.
type BreakingBlock struct {
	// StartTick is the world time the breaking started at.
	StartTick uint64
	// Pos is the block position.
	Pos [3]int
	// ID is the block id when breaking started.
	ID uint8
}

// Session is the server side of one client connection.
type Session struct {
	log  *slog.Logger
	conn proto.Conn
	ctrl Controller

	state State

	username string
	w        *world.World
	ent      *entity.Entity

	inMu  sync.Mutex
	inbox []proto.Packet

	outbox []proto.Packet

	inv         inventory.Inventory
	breaking    *BreakingBlock
	windowCount uint8
}

// New wraps an accepted connection in a handshaking session.
func New(log *slog.Logger, conn proto.Conn, ctrl Controller) *Session {
	return &Session{
		log:  log.With("addr", conn.RemoteAddr()),
		conn: conn,
		ctrl: ctrl,
	}
}

// State returns the current connection state.
func (s *Session) State() State {
	return s.state
}

// Username returns the username of a logged-in session.
func (s *Session) Username() string {
	return s.username
}

// Entity returns the player entity of a playing session, or nil.
func (s *Session) Entity() *entity.Entity {
	return s.ent
}

// World returns the world of a playing session, or nil.
func (s *Session) World() *world.World {
	return s.w
}

// Conn returns the underlying connection.
func (s *Session) Conn() proto.Conn {
	return s.conn
}

// Inventory returns the player inventory of the session.
func (s *Session) Inventory() *inventory.Inventory {
	return &s.inv
}

// HeldStack returns the stack in the selected hotbar slot.
func (s *Session) HeldStack() item.Stack {
	return s.inv.Held()
}

// TakeHeld removes and returns one item of the held stack.
func (s *Session) TakeHeld() (item.Stack, bool) {
	return s.inv.TakeHeld()
}

// Park appends an inbound packet to the session inbox. Called from the
// connection's reader goroutine.
func (s *Session) Park(pkt proto.Packet) {
	s.inMu.Lock()
	s.inbox = append(s.inbox, pkt)
	s.inMu.Unlock()
}

// DrainInbox removes and returns the parked inbound packets. Called at the
// start of each tick, on the tick goroutine.
func (s *Session) DrainInbox() []proto.Packet {
	s.inMu.Lock()
	pkts := s.inbox
	s.inbox = nil
	s.inMu.Unlock()
	return pkts
}

// Send queues an outbound packet; the outbox is flushed at the end of the
// tick.
func (s *Session) Send(pkt proto.Packet) {
	if s.state == StateClosed {
		return
	}
	s.outbox = append(s.outbox, pkt)
}

// FlushOutbox writes all queued outbound packets to the connection. A write
// failure closes the session as a lost transport.
func (s *Session) FlushOutbox() {
	if len(s.outbox) == 0 {
		return
	}
	pkts := s.outbox
	s.outbox = nil
	for _, pkt := range pkts {
		if err := s.conn.WritePacket(pkt); err != nil {
			if s.state != StateClosed {
				s.log.Warn("writing packet failed, dropping session", "error", err)
				s.Close(true)
			}
			return
		}
	}
}

// Disconnect sends a disconnect with the reason and closes the session.
func (s *Session) Disconnect(reason string) {
	if s.state == StateClosed {
		return
	}
	_ = s.conn.WritePacket(&proto.Disconnect{Reason: reason})
	s.Close(false)
}

// Close tears the session down. lost marks a transport failure rather than
// a voluntary leave.
func (s *Session) Close(lost bool) {
	if s.state == StateClosed {
		return
	}
	wasPlaying := s.state == StatePlaying
	s.state = StateClosed
	_ = s.conn.Close()
	if wasPlaying {
		s.ctrl.Disconnected(s, lost)
	}
}
