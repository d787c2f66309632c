package media

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/pders01/castdex/internal/config"
)

//go:embed players.toml
var playersTOML []byte

// PlayerDefinition defines how a video player should be invoked
type PlayerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	Args        []string `toml:"args,omitempty"`
	ArgsDarwin  []string `toml:"args_darwin,omitempty"`
	ArgsLinux   []string `toml:"args_linux,omitempty"`
	ArgsWindows []string `toml:"args_windows,omitempty"`
}

// PlayersConfig holds all player definitions
type PlayersConfig struct {
	Players map[string]PlayerDefinition `toml:"players"`
}

// PlayerRegistry manages player definitions
type PlayerRegistry struct {
	players map[string]PlayerDefinition
}

// NewPlayerRegistry loads the built-in definitions and then players.toml
// from the config directory, which overrides them by name.
func NewPlayerRegistry() (*PlayerRegistry, error) {
	r, err := parsePlayers(playersTOML)
	if err != nil {
		return nil, fmt.Errorf("parsing players.toml: %w", err)
	}
	if data, err := os.ReadFile(filepath.Join(config.Dir(), "players.toml")); err == nil {
		if err := r.merge(data); err != nil {
			return nil, fmt.Errorf("parsing user players.toml: %w", err)
		}
	}
	return r, nil
}

func parsePlayers(data []byte) (*PlayerRegistry, error) {
	var cfg PlayersConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Players == nil {
		cfg.Players = make(map[string]PlayerDefinition)
	}
	return &PlayerRegistry{players: cfg.Players}, nil
}

func (r *PlayerRegistry) merge(data []byte) error {
	var cfg PlayersConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	for name, def := range cfg.Players {
		r.players[name] = def
	}
	return nil
}

// Args returns the arguments placed before the URL for player on this
// platform. Unknown players get none. ok is false when the player is known
// but not supported here.
func (r *PlayerRegistry) Args(player string) (args []string, ok bool) {
	def, exists := r.players[player]
	if !exists {
		return nil, true
	}
	if !slices.Contains(def.Platforms, runtime.GOOS) {
		return nil, false
	}

	switch runtime.GOOS {
	case "darwin":
		if def.ArgsDarwin != nil {
			return def.ArgsDarwin, true
		}
	case "linux":
		if def.ArgsLinux != nil {
			return def.ArgsLinux, true
		}
	case "windows":
		if def.ArgsWindows != nil {
			return def.ArgsWindows, true
		}
	}
	return def.Args, true
}
