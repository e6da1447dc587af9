package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mc173/mc173/server/proto"
)

func TestReadUserConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	uc, err := ReadUserConfig(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if uc.Server.BindAddress != "127.0.0.1:25565" {
		t.Fatalf("default bind address: %q", uc.Server.BindAddress)
	}
	if uc.World.ViewRadius != 10 {
		t.Fatalf("default view radius: %d", uc.World.ViewRadius)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	// A second read parses the file written on the first.
	again, err := ReadUserConfig(path)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if again != uc {
		t.Fatalf("config changed across reads: %+v != %+v", again, uc)
	}
}

func TestConfigFillDefaults(t *testing.T) {
	conf := Config{}.fillDefaults()
	if conf.ViewRadius != 10 || conf.BindAddress == "" || conf.Generator == nil {
		t.Fatalf("defaults not filled: %+v", conf)
	}
	if conf.SpawnPos != [3]int32{0, 100, 0} {
		t.Fatalf("default spawn: %v", conf.SpawnPos)
	}
}

func TestWhitelist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whitelist.toml")
	wl, err := LoadWhitelist(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// Disabled whitelists allow everyone.
	if !wl.Allowed("alice") {
		t.Fatalf("disabled whitelist must allow")
	}
	wl.SetEnabled(true)
	if wl.Allowed("alice") {
		t.Fatalf("empty enabled whitelist must reject")
	}
	if err := wl.Add("Alice"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !wl.Allowed("alice") || !wl.Allowed("ALICE") {
		t.Fatalf("whitelist must match case-insensitively")
	}

	// Entries persist across loads.
	wl2, err := LoadWhitelist(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	wl2.SetEnabled(true)
	if !wl2.Allowed("alice") {
		t.Fatalf("whitelist entry lost on reload")
	}
	if err := wl2.Remove("alice"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if wl2.Allowed("alice") {
		t.Fatalf("removed entry must reject")
	}

	var nilWL *Whitelist
	if !nilWL.Allowed("anyone") {
		t.Fatalf("nil whitelist must allow")
	}
}

func TestWhitelistBlocksLogin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whitelist.toml")
	wl, err := LoadWhitelist(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	wl.SetEnabled(true)
	_ = wl.Add("bob")

	srv := newTestServer(t)
	srv.conf.Whitelist = wl

	client, sess := addTestClient(t, srv)
	pkts := login(t, srv, sess, client, "alice")
	if len(pkts) == 0 {
		t.Fatalf("expected a disconnect")
	}
	if _, ok := pkts[len(pkts)-1].(*proto.Disconnect); !ok {
		t.Fatalf("want Disconnect, got %T", pkts[len(pkts)-1])
	}
}
