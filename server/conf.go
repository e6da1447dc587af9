package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/mc173/mc173/server/world"
	"github.com/mc173/mc173/server/world/generator"
	"github.com/mc173/mc173/server/world/mcdb"
)

// Config contains options for starting a server. Fields left zero fall back
// to sensible defaults in New.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is set
	// to slog.Default().
	Log *slog.Logger
	// Name is the name of the server, used for the world display name.
	Name string
	// Seed seeds the terrain generator and the world PRNGs.
	Seed int64
	// BindAddress is the TCP address the external codec listens on. The
	// server itself only logs it; listeners are attached by the caller.
	BindAddress string
	// ViewRadius is the half-width of the square chunk window kept loaded
	// around each player, in chunks.
	ViewRadius int
	// SpawnPos is the world spawn block.
	SpawnPos [3]int32
	// LightBudget caps the light relaxations per world per tick.
	LightBudget int
	// RandomTickSpeed is the number of random block ticks per chunk per
	// tick; -1 disables random ticking.
	RandomTickSpeed int
	// DB is the shared world database. If nil, nothing is persisted.
	DB *mcdb.DB
	// Whitelist restricts logins when non-nil and enabled.
	Whitelist *Whitelist
	// Generator overrides the overworld generator, primarily for tests.
	Generator world.Generator
	// NetherGenerator overrides the nether generator.
	NetherGenerator world.Generator
}

// UserConfig is the TOML shape of the server configuration file.
type UserConfig struct {
	Server struct {
		// Name is the displayed server name.
		Name string `toml:"name"`
		// BindAddress is the address the wire codec binds to.
		BindAddress string `toml:"bind_address"`
	} `toml:"server"`
	World struct {
		// Seed seeds the terrain generator.
		Seed int64 `toml:"seed"`
		// Folder is the directory the world database lives in.
		Folder string `toml:"folder"`
		// ViewRadius is the chunk window half-width.
		ViewRadius int `toml:"view_radius"`
	} `toml:"world"`
	Players struct {
		// WhitelistFile enables the whitelist when set.
		WhitelistFile string `toml:"whitelist_file"`
	} `toml:"players"`
}

// DefaultUserConfig returns the configuration written on first start.
func DefaultUserConfig() UserConfig {
	uc := UserConfig{}
	uc.Server.Name = "mc173 server"
	uc.Server.BindAddress = "127.0.0.1:25565"
	uc.World.Seed = 9999
	uc.World.Folder = "world"
	uc.World.ViewRadius = 10
	return uc
}

// ReadUserConfig loads the TOML configuration at the path, creating it with
// defaults when absent.
func ReadUserConfig(path string) (UserConfig, error) {
	uc := DefaultUserConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		out, mErr := toml.Marshal(uc)
		if mErr != nil {
			return uc, fmt.Errorf("encoding default config: %w", mErr)
		}
		if wErr := os.WriteFile(path, out, 0644); wErr != nil {
			return uc, fmt.Errorf("writing default config: %w", wErr)
		}
		return uc, nil
	}
	if err != nil {
		return uc, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &uc); err != nil {
		return uc, fmt.Errorf("decoding config: %w", err)
	}
	return uc, nil
}

// Config converts the user configuration to a runtime Config, opening the
// world database and whitelist it references.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	conf := Config{
		Log:         log,
		Name:        uc.Server.Name,
		Seed:        uc.World.Seed,
		BindAddress: uc.Server.BindAddress,
		ViewRadius:  uc.World.ViewRadius,
	}
	if uc.World.Folder != "" {
		if err := os.MkdirAll(uc.World.Folder, 0755); err != nil {
			return conf, fmt.Errorf("creating world folder: %w", err)
		}
		db, err := mcdb.Open(filepath.Join(uc.World.Folder, "db"))
		if err != nil {
			return conf, err
		}
		conf.DB = db
	}
	if uc.Players.WhitelistFile != "" {
		wl, err := LoadWhitelist(uc.Players.WhitelistFile)
		if err != nil {
			return conf, err
		}
		wl.SetEnabled(true)
		conf.Whitelist = wl
	}
	return conf, nil
}

// fillDefaults completes a Config with default values.
func (conf Config) fillDefaults() Config {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Name == "" {
		conf.Name = "mc173 server"
	}
	if conf.BindAddress == "" {
		conf.BindAddress = "127.0.0.1:25565"
	}
	if conf.ViewRadius <= 0 {
		conf.ViewRadius = 10
	}
	if conf.SpawnPos == [3]int32{} {
		conf.SpawnPos = [3]int32{0, 100, 0}
	}
	if conf.Generator == nil {
		conf.Generator = generator.Overworld{}
	}
	if conf.NetherGenerator == nil {
		conf.NetherGenerator = generator.Nether{}
	}
	return conf
}
