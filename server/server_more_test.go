package server

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mc173/mc173/server/item"
	"github.com/mc173/mc173/server/proto"
	"github.com/mc173/mc173/server/world"
)

func TestRespawnIntoNether(t *testing.T) {
	srv := newTestServer(t)
	client, sess := addTestClient(t, srv)
	login(t, srv, sess, client, "alice")

	sess.Park(&proto.Respawn{Dimension: -1})
	srv.Tick()

	if sess.World().Dimension() != world.Nether {
		t.Fatalf("session world must switch to the nether")
	}
	if sess.Entity().Dimension != -1 {
		t.Fatalf("entity dimension must switch")
	}
	pkts := drainClient(client)
	var sawRespawn bool
	states := 0
	for _, pkt := range pkts {
		switch pkt.(type) {
		case *proto.Respawn:
			sawRespawn = true
		case *proto.ChunkState:
			states++
		}
	}
	if !sawRespawn {
		t.Fatalf("client must receive the respawn confirmation")
	}
	if states != 441 {
		t.Fatalf("nether chunk window must stream, got %d chunk states", states)
	}
}

func TestItemPickup(t *testing.T) {
	srv := newTestServer(t)
	client, sess := addTestClient(t, srv)
	login(t, srv, sess, client, "alice")
	drainClient(client)

	ent := sess.Entity()
	srv.spawnItemEntity(0, ent.Pos.Add(mgl64.Vec3{0.5, 0, 0}), item.Stack{ID: 4, Size: 1})
	itemEID := srv.nextEID

	// The drop rests for ten ticks before it may be collected.
	for i := 0; i < 12; i++ {
		srv.Tick()
	}
	if _, alive := srv.entities[itemEID]; alive {
		t.Fatalf("item entity must be collected")
	}
	if got := sess.Inventory().Main[0]; got.ID != 4 || got.Size != 1 {
		t.Fatalf("stack must land in the inventory, got %+v", got)
	}
	sawPickup := false
	for _, pkt := range drainClient(client) {
		if p, ok := pkt.(*proto.EntityPickup); ok && p.CollectedID == itemEID {
			sawPickup = true
		}
	}
	if !sawPickup {
		t.Fatalf("collector must receive the pickup packet")
	}
}

func TestSleepOnlyAtNight(t *testing.T) {
	srv := newTestServer(t)
	client, sess := addTestClient(t, srv)
	login(t, srv, sess, client, "alice")
	w := srv.World(0)
	w.Guard().Arm()
	if !w.PlaceBed([3]int{2, 64, 2}, 5) {
		t.Fatalf("bed placement failed")
	}
	w.Guard().Disarm()
	drainClient(client)

	// Daytime: the click is refused with a bed notification.
	sess.Park(&proto.PlaceBlock{X: 2, Y: 64, Z: 2, Direction: 1})
	srv.Tick()
	refused := false
	for _, pkt := range drainClient(client) {
		if n, ok := pkt.(*proto.Notification); ok && n.Reason == proto.NotifyBedInvalid {
			refused = true
		}
	}
	if !refused {
		t.Fatalf("daytime sleep must be refused")
	}
}

func TestPaintingVisibleToPlayers(t *testing.T) {
	srv := newTestServer(t)
	client, sess := addTestClient(t, srv)
	login(t, srv, sess, client, "alice")
	drainClient(client)

	if _, err := srv.SpawnPainting(0, sess.Entity().Pos.Add(mgl64.Vec3{2, 0, 0}), "Kebab"); err != nil {
		t.Fatalf("spawn painting: %v", err)
	}
	if _, err := srv.SpawnPainting(0, sess.Entity().Pos, "NotAMotive"); err == nil {
		t.Fatalf("unknown motive must be rejected")
	}
	srv.Tick()
	found := false
	for _, pkt := range drainClient(client) {
		if ps, ok := pkt.(*proto.PaintingSpawn); ok && ps.Motive == "Kebab" {
			found = true
		}
	}
	if !found {
		t.Fatalf("painting spawn must reach nearby players")
	}
}

func TestKeepAliveCadence(t *testing.T) {
	srv := newTestServer(t)
	client, sess := addTestClient(t, srv)
	login(t, srv, sess, client, "alice")
	drainClient(client)

	keepalives := 0
	for i := 0; i < 400; i++ {
		srv.Tick()
		for _, pkt := range drainClient(client) {
			if _, ok := pkt.(*proto.KeepAlive); ok {
				keepalives++
			}
		}
	}
	if keepalives != 2 {
		t.Fatalf("expected 2 keepalives over 400 ticks, got %d", keepalives)
	}
}
