package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mc173/mc173/server/block"
	"github.com/mc173/mc173/server/block/cube"
	"github.com/mc173/mc173/server/entity"
	"github.com/mc173/mc173/server/item"
	"github.com/mc173/mc173/server/proto"
	"github.com/mc173/mc173/server/world"
	"github.com/mc173/mc173/server/world/generator"
)

// stubController records the controller calls a session makes.
type stubController struct {
	w   *world.World
	ent *entity.Entity

	loginErr    error
	chats       []string
	drops       int
	broken      []cube.Pos
	disconnects int
}

func (c *stubController) Login(*Session, string) (*world.World, *entity.Entity, error) {
	if c.loginErr != nil {
		return nil, nil, c.loginErr
	}
	return c.w, c.ent, nil
}
func (c *stubController) Disconnected(*Session, bool)   { c.disconnects++ }
func (c *stubController) Chat(_ *Session, msg string)   { c.chats = append(c.chats, msg) }
func (c *stubController) Animate(*Session, uint8)       {}
func (c *stubController) Sneak(*Session, bool)          {}
func (c *stubController) DropHeldItem(*Session)         { c.drops++ }
func (c *stubController) AttackEntity(*Session, int32)  {}
func (c *stubController) SleepInBed(*Session, cube.Pos) {}
func (c *stubController) BrokeBlock(_ *Session, pos cube.Pos, _ uint8) {
	c.broken = append(c.broken, pos)
}
func (c *stubController) Respawn(*Session, int8) *world.World { return c.w }

func newPlayingSession(t *testing.T) (*Session, *stubController, *proto.Loopback) {
	t.Helper()
	w := world.New(world.Config{
		Dimension:       world.Overworld,
		Name:            "session test",
		Seed:            7,
		Generator:       generator.Flat{},
		RandomTickSpeed: -1,
	})
	for dz := int32(-1); dz <= 1; dz++ {
		for dx := int32(-1); dx <= 1; dx++ {
			w.GetOrLoad(cube.ChunkPos{dx, dz})
		}
	}
	ctrl := &stubController{
		w:   w,
		ent: &entity.Entity{EID: 1, Kind: entity.KindPlayer, Username: "alice", Pos: [3]float64{0.5, 64, 0.5}, OnGround: true},
	}
	client, serverEnd := proto.NewLoopback(256)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess := New(log, serverEnd, ctrl)
	sess.HandlePacket(&proto.Handshake{Username: "alice"})
	sess.HandlePacket(&proto.Login{Protocol: ProtocolVersion, Username: "alice"})
	sess.FlushOutbox()
	for {
		if _, ok := client.TryReadPacket(); !ok {
			break
		}
	}
	if sess.State() != StatePlaying {
		t.Fatalf("session not playing after login")
	}
	return sess, ctrl, client
}

func TestStateMachineRejectsEarlyPlay(t *testing.T) {
	_, serverEnd := proto.NewLoopback(16)
	ctrl := &stubController{}
	sess := New(slog.New(slog.NewTextHandler(io.Discard, nil)), serverEnd, ctrl)
	sess.HandlePacket(&proto.Chat{Message: "hi"})
	if sess.State() != StateClosed {
		t.Fatalf("playing packet in handshaking must close the session")
	}
	if len(ctrl.chats) != 0 {
		t.Fatalf("chat must not reach the controller before login")
	}
}

func TestChatRouted(t *testing.T) {
	sess, ctrl, _ := newPlayingSession(t)
	sess.HandlePacket(&proto.Chat{Message: "hello"})
	if len(ctrl.chats) != 1 || ctrl.chats[0] != "hello" {
		t.Fatalf("chat not routed: %v", ctrl.chats)
	}
}

func TestPositionUpdatesEntity(t *testing.T) {
	sess, ctrl, _ := newPlayingSession(t)
	sess.HandlePacket(&proto.Position{Pos: [3]float64{10, 70, -3}, Stance: 71.62, OnGround: false})
	if ctrl.ent.Pos != ([3]float64{10, 70, -3}) || ctrl.ent.OnGround {
		t.Fatalf("position not applied: %+v", ctrl.ent)
	}
}

func TestHandSlotValidation(t *testing.T) {
	sess, _, _ := newPlayingSession(t)
	sess.HandlePacket(&proto.HandSlot{Slot: 3})
	if sess.Inventory().HandSlot != 3 {
		t.Fatalf("hand slot not applied")
	}
	sess.HandlePacket(&proto.HandSlot{Slot: 12})
	if sess.Inventory().HandSlot != 3 {
		t.Fatalf("invalid hand slot must be dropped")
	}
}

func TestPlaceTranslatesItemBlocks(t *testing.T) {
	sess, ctrl, _ := newPlayingSession(t)
	sess.Inventory().Main[0] = item.Stack{ID: item.RedstoneItem, Size: 4}
	sess.HandlePacket(&proto.PlaceBlock{X: 2, Y: 63, Z: 2, Direction: 1})
	if id, _, _ := ctrl.w.Block(cube.Pos{2, 64, 2}); id != block.Redstone {
		t.Fatalf("redstone item must place wire, cell reads %d", id)
	}
	if sess.Inventory().Main[0].Size != 3 {
		t.Fatalf("placement must consume one item")
	}
}

func TestPlaceRejectedSendsCorrection(t *testing.T) {
	sess, ctrl, client := newPlayingSession(t)
	// Clicking the stone's bottom face targets the grass cell below it: the
	// placement must be rejected and the true cell contents pushed back.
	ctrl.w.SetBlock(cube.Pos{2, 64, 2}, block.Stone, 0)
	sess.Inventory().Main[0] = item.Stack{ID: int16(block.Dirt), Size: 1}
	sess.HandlePacket(&proto.PlaceBlock{X: 2, Y: 64, Z: 2, Direction: 0})
	sess.FlushOutbox()
	found := false
	for {
		pkt, ok := client.TryReadPacket()
		if !ok {
			break
		}
		if bs, ok := pkt.(*proto.BlockSet); ok && bs.Y == 63 {
			found = true
		}
	}
	if !found {
		t.Fatalf("rejected placement must push the real cell back")
	}
	if sess.Inventory().Main[0].Size != 1 {
		t.Fatalf("rejected placement must not consume")
	}
}

func TestLeverClickToggles(t *testing.T) {
	sess, ctrl, _ := newPlayingSession(t)
	var meta uint8
	block.LeverSetFace(&meta, cube.FaceDown, cube.Z)
	ctrl.w.SetBlockNotify(cube.Pos{3, 64, 3}, block.Lever, meta)
	sess.HandlePacket(&proto.PlaceBlock{X: 3, Y: 64, Z: 3, Direction: 1})
	if _, got, _ := ctrl.w.Block(cube.Pos{3, 64, 3}); !block.LeverIsOn(got) {
		t.Fatalf("clicking a lever must toggle it on")
	}
}

func TestCraftingTableOpensWindow(t *testing.T) {
	sess, ctrl, client := newPlayingSession(t)
	ctrl.w.SetBlock(cube.Pos{3, 64, 3}, block.CraftingTable, 0)
	sess.HandlePacket(&proto.PlaceBlock{X: 3, Y: 64, Z: 3, Direction: 1})
	sess.FlushOutbox()
	opened := false
	for {
		pkt, ok := client.TryReadPacket()
		if !ok {
			break
		}
		if wo, ok := pkt.(*proto.WindowOpen); ok && wo.Kind == 1 {
			opened = true
		}
	}
	if !opened {
		t.Fatalf("crafting table click must open a window")
	}
}

func TestBreakLifecycle(t *testing.T) {
	sess, ctrl, _ := newPlayingSession(t)
	ctrl.w.SetBlock(cube.Pos{1, 64, 1}, block.Dirt, 0)

	sess.HandlePacket(&proto.BreakBlock{X: 1, Y: 64, Z: 1, Status: proto.BreakStart})
	sess.HandlePacket(&proto.BreakBlock{X: 1, Y: 64, Z: 1, Status: proto.BreakFinish})
	if id, _, _ := ctrl.w.Block(cube.Pos{1, 64, 1}); id != block.Dirt {
		t.Fatalf("early finish must be ignored")
	}

	// Advance past 70%% of the 50-tick bare-handed dirt duration.
	for i := 0; i < 36; i++ {
		ctrl.w.Tick()
	}
	sess.HandlePacket(&proto.BreakBlock{X: 1, Y: 64, Z: 1, Status: proto.BreakFinish})
	if id, _, _ := ctrl.w.Block(cube.Pos{1, 64, 1}); id != block.Air {
		t.Fatalf("late finish must break the block")
	}
	if len(ctrl.broken) != 1 {
		t.Fatalf("break must be reported once, got %d", len(ctrl.broken))
	}
}

func TestInstantBreak(t *testing.T) {
	sess, ctrl, _ := newPlayingSession(t)
	ctrl.w.SetBlock(cube.Pos{1, 64, 1}, block.Torch, 5)
	sess.HandlePacket(&proto.BreakBlock{X: 1, Y: 64, Z: 1, Status: proto.BreakStart})
	if id, _, _ := ctrl.w.Block(cube.Pos{1, 64, 1}); id != block.Air {
		t.Fatalf("zero-hardness block must break on start")
	}
}

func TestDropHeldRouted(t *testing.T) {
	sess, ctrl, _ := newPlayingSession(t)
	sess.HandlePacket(&proto.BreakBlock{Status: proto.BreakDropItem})
	if ctrl.drops != 1 {
		t.Fatalf("drop status must route to the controller")
	}
}

func TestUpdateSignStoresText(t *testing.T) {
	sess, ctrl, _ := newPlayingSession(t)
	ctrl.w.SetBlock(cube.Pos{2, 64, 2}, block.Sign, 0)
	sess.HandlePacket(&proto.UpdateSign{X: 2, Y: 64, Z: 2, Lines: [4]string{"hello", "", "", ""}})
	text, ok := ctrl.w.SignTextAt(cube.Pos{2, 64, 2})
	if !ok || text[0] != "hello" {
		t.Fatalf("sign text not stored: %v %v", text, ok)
	}
}

func TestInventoryClickAndCraft(t *testing.T) {
	sess, _, client := newPlayingSession(t)
	inv := sess.Inventory()
	inv.Main[0] = item.Stack{ID: 17, Size: 1} // a log in the hotbar

	// Pick the log up from hotbar window slot 36 and drop it into the first
	// crafting cell (window slot 1).
	sess.HandlePacket(&proto.WindowClick{WindowID: 0, Slot: 36, Transaction: 1})
	if inv.Cursor.ID != 17 || !inv.Main[0].Empty() {
		t.Fatalf("click must lift the stack onto the cursor: %+v", inv.Cursor)
	}
	sess.HandlePacket(&proto.WindowClick{WindowID: 0, Slot: 1, Transaction: 2})
	if !inv.Cursor.Empty() || inv.Craft[0].ID != 17 {
		t.Fatalf("click must drop the stack into the grid")
	}

	// The result slot now offers four planks; taking it consumes the log.
	sess.HandlePacket(&proto.WindowClick{WindowID: 0, Slot: 0, Transaction: 3})
	if inv.Cursor.ID != 5 || inv.Cursor.Size != 4 {
		t.Fatalf("crafting result not taken: %+v", inv.Cursor)
	}
	if !inv.Craft[0].Empty() {
		t.Fatalf("crafting must consume the grid")
	}

	sess.FlushOutbox()
	accepted := 0
	for {
		pkt, ok := client.TryReadPacket()
		if !ok {
			break
		}
		if tr, ok := pkt.(*proto.WindowTransaction); ok && tr.Accepted {
			accepted++
		}
	}
	if accepted != 3 {
		t.Fatalf("every click must be acknowledged, got %d", accepted)
	}
}

func TestDisconnectPacket(t *testing.T) {
	sess, ctrl, _ := newPlayingSession(t)
	sess.HandlePacket(&proto.Disconnect{Reason: "bye"})
	if sess.State() != StateClosed || ctrl.disconnects != 1 {
		t.Fatalf("disconnect must close and notify: state=%v n=%d", sess.State(), ctrl.disconnects)
	}
}
