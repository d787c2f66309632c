// Package media hands episode links to an external video player.
package media

import (
	"fmt"
	"os/exec"

	"github.com/pders01/castdex/internal/config"
	"github.com/pders01/castdex/internal/debuglog"
	"github.com/pders01/castdex/internal/validation"
)

type Launcher struct {
	videoPlayer   string
	defaultOpener string
	registry      *PlayerRegistry
	lookPath      func(string) (string, error)
	start         func(*exec.Cmd) error
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewPlayerRegistry()
	if err != nil {
		debuglog.Warnf("player definitions unavailable: %v", err)
		registry = &PlayerRegistry{players: make(map[string]PlayerDefinition)}
	}
	return newLauncher(cfg.VideoPlayers(), cfg.Media.DefaultOpener, registry, exec.LookPath, startDetached)
}

func newLauncher(players []string, opener string, registry *PlayerRegistry, lookPath func(string) (string, error), start func(*exec.Cmd) error) *Launcher {
	l := &Launcher{
		defaultOpener: opener,
		registry:      registry,
		lookPath:      lookPath,
		start:         start,
	}
	for _, p := range players {
		if _, err := lookPath(p); err != nil {
			continue
		}
		if _, ok := registry.Args(p); ok {
			l.videoPlayer = p
			break
		}
	}
	return l
}

// Player is the video player that will be used, or "" for the default
// opener.
func (l *Launcher) Player() string {
	return l.videoPlayer
}

// Open validates url and launches it. Only external http(s) links are
// accepted.
func (l *Launcher) Open(url string) error {
	normalized, err := validation.NewExternalURLValidator().Validate(url)
	if err != nil {
		return fmt.Errorf("refusing to open link: %w", err)
	}

	cmd, err := l.command(normalized)
	if err != nil {
		return err
	}

	debuglog.Infof("opening %s with %s", normalized, cmd.Path)
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	return nil
}

func (l *Launcher) command(url string) (*exec.Cmd, error) {
	if l.videoPlayer != "" {
		args, _ := l.registry.Args(l.videoPlayer)
		return exec.Command(l.videoPlayer, append(append([]string{}, args...), url)...), nil
	}

	switch l.defaultOpener {
	case "":
		return nil, fmt.Errorf("no application found to open URL")
	case "start":
		// start is a cmd.exe builtin; the empty argument is the window title.
		return exec.Command("cmd", "/c", "start", "", url), nil
	default:
		return exec.Command(l.defaultOpener, url), nil
	}
}

// startDetached starts GUI applications without waiting on them.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
