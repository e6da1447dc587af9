// Package server ties the simulation together: it owns the worlds, the
// sessions, the per-player view tables and the 20 Hz tick driver.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/fasthash/fnv1a"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/entity"
	"github.com/mc173/mc173/server/item"
	"github.com/mc173/mc173/server/painting"
	"github.com/mc173/mc173/server/proto"
	"github.com/mc173/mc173/server/session"
	"github.com/mc173/mc173/server/world"
	"github.com/mc173/mc173/server/world/chunk"
	"github.com/mc173/mc173/server/world/mcdb"
)

// TickInterval is the wall time of one simulation tick.
const TickInterval = 50 * time.Millisecond

// Listener accepts connections carrying the external wire codec.
type Listener interface {
	// Accept blocks until the next connection arrives.
	Accept() (proto.Conn, error)
	// Close stops the listener; Accept fails afterwards.
	Close() error
}

// playerRecord is the server-side state of one logged-in player.
type playerRecord struct {
	sess        *session.Session
	ent         *entity.Entity
	uuid        uuid.UUID
	fresh       bool
	chunkViews  map[chunk.ID]struct{}
	entityViews map[int32]struct{}
}

// entityRecord is a tracked entity with its delta tracker. Player entities
// also appear here.
type entityRecord struct {
	ent     *entity.Entity
	tracker *entity.Tracker
	player  *playerRecord
	dead    bool
}

// Server is a complete game server.
type Server struct {
	conf Config
	log  *slog.Logger

	worlds    map[world.Dimension]*world.World
	worldList []*world.World

	mu              sync.Mutex
	pendingSessions []*session.Session
	lost            []*session.Session
	accepted        []Listener

	sessions []*session.Session
	players  map[string]*playerRecord
	entities map[int32]*entityRecord
	order    []int32
	offline  map[string]mcdb.OfflinePlayer

	nextEID int32

	running  atomic.Bool
	stopOnce sync.Once
	stopped  chan struct{}
	done     sync.WaitGroup
}

// New creates a Server from the config.
func New(conf Config) *Server {
	conf = conf.fillDefaults()
	srv := &Server{
		conf:     conf,
		log:      conf.Log,
		worlds:   make(map[world.Dimension]*world.World),
		players:  make(map[string]*playerRecord),
		entities: make(map[int32]*entityRecord),
		offline:  make(map[string]mcdb.OfflinePlayer),
		stopped:  make(chan struct{}),
	}
	srv.worlds[world.Overworld] = world.New(world.Config{
		Log:             conf.Log,
		Dimension:       world.Overworld,
		Name:            conf.Name,
		Seed:            conf.Seed,
		Generator:       conf.Generator,
		Provider:        srv.provider(world.Overworld),
		LightBudget:     conf.LightBudget,
		RandomTickSpeed: conf.RandomTickSpeed,
	})
	srv.worlds[world.Nether] = world.New(world.Config{
		Log:             conf.Log,
		Dimension:       world.Nether,
		Name:            conf.Name + " nether",
		Seed:            conf.Seed,
		Generator:       conf.NetherGenerator,
		Provider:        srv.provider(world.Nether),
		LightBudget:     conf.LightBudget,
		RandomTickSpeed: conf.RandomTickSpeed,
	})
	srv.worldList = []*world.World{srv.worlds[world.Overworld], srv.worlds[world.Nether]}
	return srv
}

func (srv *Server) provider(dim world.Dimension) world.Provider {
	if srv.conf.DB == nil {
		return world.NopProvider{}
	}
	return srv.conf.DB.NewProvider(dim)
}

// World returns the world of the dimension, or nil.
func (srv *Server) World(dim world.Dimension) *world.World {
	return srv.worlds[dim]
}

// Listen serves connections from the listener until it fails or the server
// stops.
func (srv *Server) Listen(l Listener) {
	srv.mu.Lock()
	srv.accepted = append(srv.accepted, l)
	srv.mu.Unlock()
	srv.done.Add(1)
	go func() {
		defer srv.done.Done()
		for {
			conn, err := l.Accept()
			if err != nil {
				select {
				case <-srv.stopped:
				default:
					srv.log.Warn("listener failed", "error", err)
				}
				return
			}
			srv.AddConn(conn)
		}
	}()
}

// AddConn injects an accepted connection. A session is created in the
// handshaking state and a reader goroutine parks its inbound packets until
// the tick drains them.
func (srv *Server) AddConn(conn proto.Conn) {
	sess := session.New(srv.log, conn, srv)
	srv.mu.Lock()
	srv.pendingSessions = append(srv.pendingSessions, sess)
	srv.mu.Unlock()
	srv.done.Add(1)
	go func() {
		defer srv.done.Done()
		for {
			pkt, err := conn.ReadPacket()
			if err != nil {
				srv.mu.Lock()
				srv.lost = append(srv.lost, sess)
				srv.mu.Unlock()
				return
			}
			sess.Park(pkt)
		}
	}()
}

// Run drives the fixed-rate tick loop until Stop is called. A tick that
// overruns its slot starts the next tick immediately and logs a warning.
func (srv *Server) Run() {
	srv.running.Store(true)
	srv.log.Info("server running", "bind", srv.conf.BindAddress, "seed", srv.conf.Seed)
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for srv.running.Load() {
		select {
		case <-ticker.C:
			start := time.Now()
			srv.Tick()
			if d := time.Since(start); d > TickInterval {
				srv.log.Warn("tick overrun", "duration", d)
			}
		case <-srv.stopped:
			return
		}
	}
}

// Stop shuts the server down: listeners close, players are disconnected and
// the worlds are saved.
func (srv *Server) Stop() {
	srv.stopOnce.Do(func() {
		srv.running.Store(false)
		close(srv.stopped)
		srv.mu.Lock()
		listeners := srv.accepted
		srv.mu.Unlock()
		for _, l := range listeners {
			_ = l.Close()
		}
		for _, sess := range srv.sessions {
			sess.Disconnect("server closed")
		}
		for _, w := range srv.worldList {
			w.Save()
		}
		if srv.conf.DB != nil {
			if err := srv.conf.DB.Close(); err != nil {
				srv.log.Warn("closing world database failed", "error", err)
			}
		}
	})
}

// Login implements session.Controller. It admits the username, spawning a
// fresh player entity at the world spawn or reviving the stored offline
// record.
func (srv *Server) Login(s *session.Session, username string) (*world.World, *entity.Entity, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil, errors.New("invalid username")
	}
	if !srv.conf.Whitelist.Allowed(username) {
		return nil, nil, errors.New("you are not whitelisted on this server")
	}
	key := strings.ToLower(username)
	if _, online := srv.players[key]; online {
		return nil, nil, errors.New("a player with this username is already online")
	}

	dim := world.Overworld
	pos := mgl64.Vec3{float64(srv.conf.SpawnPos[0]), float64(srv.conf.SpawnPos[1]), float64(srv.conf.SpawnPos[2])}
	var yaw, pitch float32
	off, ok := srv.offline[key]
	if !ok && srv.conf.DB != nil {
		var err error
		if off, ok, err = srv.conf.DB.LoadOfflinePlayer(key); err != nil {
			srv.log.Warn("loading offline player failed", "username", username, "error", err)
			ok = false
		}
	}
	if ok {
		dim = world.Dimension(off.Dimension)
		pos = off.Pos
		yaw, pitch = off.Yaw, off.Pitch
	}
	w, ok := srv.worlds[dim]
	if !ok {
		w = srv.worlds[world.Overworld]
	}

	srv.nextEID++
	ent := &entity.Entity{
		EID:       srv.nextEID,
		Kind:      entity.KindPlayer,
		Dimension: int32(w.Dimension()),
		Pos:       pos,
		Yaw:       yaw,
		Pitch:     pitch,
		Username:  username,
	}
	rec := &playerRecord{
		sess:        s,
		ent:         ent,
		uuid:        offlineUUID(username),
		fresh:       true,
		chunkViews:  make(map[chunk.ID]struct{}),
		entityViews: make(map[int32]struct{}),
	}
	srv.players[key] = rec
	srv.addEntity(ent, rec)
	srv.log.Info("player logged in", "username", username, "eid", ent.EID, "dimension", ent.Dimension)
	return w, ent, nil
}

// Disconnected implements session.Controller.
func (srv *Server) Disconnected(s *session.Session, lost bool) {
	key := strings.ToLower(s.Username())
	rec, ok := srv.players[key]
	if !ok {
		return
	}
	delete(srv.players, key)
	srv.removeEntity(rec.ent.EID)
	record := mcdb.OfflinePlayer{
		Username:  key,
		Dimension: rec.ent.Dimension,
		Pos:       rec.ent.Pos,
		Yaw:       rec.ent.Yaw,
		Pitch:     rec.ent.Pitch,
	}
	srv.offline[key] = record
	if srv.conf.DB != nil {
		if err := srv.conf.DB.SaveOfflinePlayer(record); err != nil {
			srv.log.Warn("saving offline player failed", "username", key, "error", err)
		}
	}
	srv.log.Info("player left", "username", key, "lost", lost)
}

// Chat implements session.Controller.
func (srv *Server) Chat(from *session.Session, message string) {
	line := fmt.Sprintf("<%s> %s", from.Username(), message)
	srv.log.Info("chat", "username", from.Username(), "message", message)
	for _, rec := range srv.players {
		rec.sess.Send(&proto.Chat{Message: line})
	}
}

// Animate implements session.Controller: the animation is fanned out to
// every observer of the animating player.
func (srv *Server) Animate(s *session.Session, animate uint8) {
	ent := s.Entity()
	if ent == nil {
		return
	}
	pkt := &proto.Animation{EntityID: ent.EID, Animate: animate}
	srv.forEachObserver(ent.EID, func(observer *playerRecord) {
		observer.sess.Send(pkt)
	})
}

// Sneak implements session.Controller: the crouch flag travels to observers
// as the entity flag byte of the metadata payload.
func (srv *Server) Sneak(s *session.Session, sneaking bool) {
	ent := s.Entity()
	if ent == nil {
		return
	}
	var flags byte
	if sneaking {
		flags |= entity.FlagSneaking
	}
	pkt := &proto.EntityMetadata{EntityID: ent.EID, Metadata: entity.FlagsMetadata(flags)}
	srv.forEachObserver(ent.EID, func(observer *playerRecord) {
		observer.sess.Send(pkt)
	})
}

// BrokeBlock implements session.Controller: the break effect plays for the
// breaking player's observers and the mining statistic is credited.
func (srv *Server) BrokeBlock(s *session.Session, pos cube.Pos, id uint8) {
	ent := s.Entity()
	if ent == nil {
		return
	}
	effect := &proto.EffectPlay{
		Effect: 2001,
		X:      int32(pos[0]), Y: int8(pos[1]), Z: int32(pos[2]),
		Data: int32(id),
	}
	srv.forEachObserver(ent.EID, func(observer *playerRecord) {
		observer.sess.Send(effect)
	})
	// Statistic ids for mined blocks start at 16777216 plus the block id.
	s.Send(&proto.StatisticIncrement{Statistic: 16777216 + int32(id), Amount: 1})
}

// Respawn implements session.Controller: the player's entity moves to the
// spawn of the requested dimension and every view of it resets so the
// client streams the new surroundings.
func (srv *Server) Respawn(s *session.Session, dimension int8) *world.World {
	key := strings.ToLower(s.Username())
	rec, ok := srv.players[key]
	if !ok {
		return nil
	}
	w, ok := srv.worlds[world.Dimension(dimension)]
	if !ok {
		w = srv.worlds[world.Overworld]
	}
	rec.ent.Dimension = int32(w.Dimension())
	rec.ent.Pos = mgl64.Vec3{
		float64(srv.conf.SpawnPos[0]),
		float64(srv.conf.SpawnPos[1]),
		float64(srv.conf.SpawnPos[2]),
	}
	// The client resets its chunk and entity state on respawn; clear the
	// server-side views so reconciliation streams everything again, and
	// kill this player on everyone who saw it in the old dimension.
	clear(rec.chunkViews)
	clear(rec.entityViews)
	for _, other := range srv.players {
		if other == rec {
			continue
		}
		if _, saw := other.entityViews[rec.ent.EID]; saw {
			delete(other.entityViews, rec.ent.EID)
			other.sess.Send(&proto.EntityKill{EntityID: rec.ent.EID})
		}
	}
	s.Send(&proto.Respawn{Dimension: int8(w.Dimension())})
	s.Send(&proto.PositionLook{
		Pos:    rec.ent.Pos,
		Stance: rec.ent.Pos[1] + 1.62,
	})
	srv.log.Info("player respawned", "username", key, "dimension", int32(w.Dimension()))
	return w
}

// SleepInBed implements session.Controller. Sleeping only works at night;
// otherwise the client is told the bed cannot be used.
func (srv *Server) SleepInBed(s *session.Session, pos cube.Pos) {
	ent := s.Entity()
	w := s.World()
	if ent == nil || w == nil {
		return
	}
	if w.Time()%24000 < 12000 {
		s.Send(&proto.Notification{Reason: proto.NotifyBedInvalid})
		return
	}
	pkt := &proto.PlayerSleep{
		EntityID: ent.EID,
		X:        int32(pos[0]), Y: int8(pos[1]), Z: int32(pos[2]),
	}
	s.Send(pkt)
	srv.forEachObserver(ent.EID, func(observer *playerRecord) {
		observer.sess.Send(pkt)
	})
}

// DropHeldItem implements session.Controller: one item of the held stack is
// consumed and spawned as an item entity at the player's position, 1.3
// blocks up.
func (srv *Server) DropHeldItem(s *session.Session) {
	ent := s.Entity()
	if ent == nil {
		return
	}
	dropped, ok := s.TakeHeld()
	if !ok {
		return
	}
	srv.spawnItemEntity(ent.Dimension, ent.Pos.Add(mgl64.Vec3{0, 1.3, 0}), dropped)
}

// AttackEntity implements session.Controller: a left click plays the hurt
// status on the target for everyone who sees it.
func (srv *Server) AttackEntity(s *session.Session, target int32) {
	rec, ok := srv.entities[target]
	if !ok || s.Entity() == nil || s.Entity().EID == target {
		return
	}
	pkt := &proto.EntityStatus{EntityID: target, Status: 2}
	srv.forEachObserver(target, func(observer *playerRecord) {
		observer.sess.Send(pkt)
	})
	if rec.player != nil {
		rec.player.sess.Send(pkt)
	}
}

func (srv *Server) addEntity(ent *entity.Entity, player *playerRecord) {
	srv.entities[ent.EID] = &entityRecord{ent: ent, tracker: entity.NewTracker(ent), player: player}
	srv.order = append(srv.order, ent.EID)
}

func (srv *Server) removeEntity(eid int32) {
	rec, ok := srv.entities[eid]
	if !ok {
		return
	}
	rec.dead = true
	delete(srv.entities, eid)
	for i, id := range srv.order {
		if id == eid {
			srv.order = append(srv.order[:i], srv.order[i+1:]...)
			break
		}
	}
	// Cascade the view rows referencing the entity and tell its observers.
	for _, p := range srv.players {
		if _, saw := p.entityViews[eid]; saw {
			delete(p.entityViews, eid)
			p.sess.Send(&proto.EntityKill{EntityID: eid})
		}
	}
}

// SpawnPainting creates a painting entity of the named motive. The motive
// must exist in the painting registry.
func (srv *Server) SpawnPainting(dim int32, pos mgl64.Vec3, motive string) (int32, error) {
	m, ok := painting.ByName(motive)
	if !ok {
		return 0, fmt.Errorf("unknown painting motive %q", motive)
	}
	srv.nextEID++
	ent := &entity.Entity{EID: srv.nextEID, Kind: entity.KindPainting, Dimension: dim, Pos: pos, Motive: m.Name}
	srv.addEntity(ent, nil)
	return ent.EID, nil
}

func (srv *Server) spawnItemEntity(dim int32, pos mgl64.Vec3, stack item.Stack) {
	srv.nextEID++
	ent := &entity.Entity{EID: srv.nextEID, Kind: entity.KindItem, Dimension: dim, Pos: pos, HeldItem: stack.ID}
	srv.addEntity(ent, nil)
}

// forEachObserver calls f for every player currently holding an entity view
// of the target, in login order.
func (srv *Server) forEachObserver(target int32, f func(*playerRecord)) {
	for _, eid := range srv.order {
		rec, ok := srv.entities[eid]
		if !ok || rec.player == nil {
			continue
		}
		if _, saw := rec.player.entityViews[target]; saw {
			f(rec.player)
		}
	}
}

// offlineUUID derives a stable identity for a username without an
// authentication service.
func offlineUUID(username string) uuid.UUID {
	var id uuid.UUID
	lo := fnv1a.HashString64("mc173:player:" + strings.ToLower(username))
	hi := fnv1a.HashString64(strings.ToLower(username) + ":mc173")
	for i := 0; i < 8; i++ {
		id[i] = byte(lo >> (8 * i))
		id[8+i] = byte(hi >> (8 * i))
	}
	// Mark as a version-3-style name UUID.
	id[6] = id[6]&0x0F | 0x30
	id[8] = id[8]&0x3F | 0x80
	return id
}
