package server

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml"
)

var (
	// ErrWhitelistUnavailable is returned when the whitelist is not configured.
	ErrWhitelistUnavailable = errors.New("whitelist is not configured")
	// ErrWhitelistInvalidName is returned when an invalid player name is provided to a whitelist operation.
	ErrWhitelistInvalidName = errors.New("invalid player name")
)

// Whitelist controls which players are allowed to join the server. Entries are persisted in a TOML file.
type Whitelist struct {
	mu       sync.RWMutex
	players  map[string]struct{}
	filePath string
	enabled  bool
}

type whitelistFile struct {
	Players []string `toml:"players"`
}

// LoadWhitelist loads the whitelist stored in the file at the provided path. If the file does not exist yet, it will
// be created with an empty player list.
func LoadWhitelist(path string) (*Whitelist, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("whitelist path must not be empty")
	}
	w := &Whitelist{
		players:  make(map[string]struct{}),
		filePath: path,
	}
	if err := w.reloadFromDisk(); err != nil {
		return nil, err
	}
	return w, nil
}

// Enabled reports if the whitelist is currently enforced.
func (w *Whitelist) Enabled() bool {
	if w == nil {
		return false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.enabled
}

// SetEnabled toggles enforcement of the whitelist.
func (w *Whitelist) SetEnabled(enabled bool) {
	w.mu.Lock()
	w.enabled = enabled
	w.mu.Unlock()
}

// Allowed reports whether the username may join. A disabled whitelist allows
// everyone.
func (w *Whitelist) Allowed(username string) bool {
	if w == nil {
		return true
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.enabled {
		return true
	}
	_, ok := w.players[strings.ToLower(username)]
	return ok
}

// Add inserts a username into the whitelist and persists the file.
func (w *Whitelist) Add(username string) error {
	if w == nil {
		return ErrWhitelistUnavailable
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrWhitelistInvalidName
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.players[strings.ToLower(username)] = struct{}{}
	return w.saveLocked()
}

// Remove deletes a username from the whitelist and persists the file.
func (w *Whitelist) Remove(username string) error {
	if w == nil {
		return ErrWhitelistUnavailable
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.players, strings.ToLower(username))
	return w.saveLocked()
}

func (w *Whitelist) reloadFromDisk() error {
	data, err := os.ReadFile(w.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return w.saveLocked()
	}
	if err != nil {
		return fmt.Errorf("reading whitelist: %w", err)
	}
	var f whitelistFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decoding whitelist: %w", err)
	}
	for _, name := range f.Players {
		name = strings.TrimSpace(name)
		if name != "" {
			w.players[strings.ToLower(name)] = struct{}{}
		}
	}
	return nil
}

func (w *Whitelist) saveLocked() error {
	f := whitelistFile{Players: make([]string, 0, len(w.players))}
	for name := range w.players {
		f.Players = append(f.Players, name)
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding whitelist: %w", err)
	}
	if err := os.WriteFile(w.filePath, data, 0644); err != nil {
		return fmt.Errorf("writing whitelist: %w", err)
	}
	return nil
}
