package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pders01/castdex/internal/validation"
)

type Config struct {
	Feeds FeedsConfig `mapstructure:"feeds"`
	UI    UIConfig    `mapstructure:"ui"`
	Media MediaConfig `mapstructure:"media"`
	Keys  KeyConfig   `mapstructure:"keys"`
	Log   LogConfig   `mapstructure:"log"`
}

// FeedsConfig locates the three catalog feeds. Each location is an http(s)
// URL, a local path, or bolt://path for a snapshot. A non-empty Snapshot
// replaces all three.
type FeedsConfig struct {
	Index       string        `mapstructure:"index"`
	Topics      string        `mapstructure:"topics"`
	Episodes    string        `mapstructure:"episodes"`
	Snapshot    string        `mapstructure:"snapshot"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type UIConfig struct {
	Colors           UIColors      `mapstructure:"colors"`
	Debounce         time.Duration `mapstructure:"debounce"`
	MaxKeywords      int           `mapstructure:"max_keywords"`
	WordWrapMaxWidth int           `mapstructure:"word_wrap_max_width"`
	WordWrapMinWidth int           `mapstructure:"word_wrap_min_width"`
	MarkdownStyle    string        `mapstructure:"markdown_style"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

type MediaConfig struct {
	Darwin        MediaPlayers `mapstructure:"darwin"`
	Linux         MediaPlayers `mapstructure:"linux"`
	Windows       MediaPlayers `mapstructure:"windows"`
	DefaultOpener string       `mapstructure:"default_opener"`
}

// MediaPlayers lists video players in order of preference.
type MediaPlayers struct {
	Video []string `mapstructure:"video"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit      string `mapstructure:"quit"`
	Search    string `mapstructure:"search"`
	Topics    string `mapstructure:"topics"`
	Sort      string `mapstructure:"sort"`
	OpenMedia string `mapstructure:"open_media"`
	Back      string `mapstructure:"back"`
	Help      string `mapstructure:"help"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// Dir is the directory holding config.toml.
func Dir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "castdex")
}

// DefaultPath is where generate-config writes when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Feeds: FeedsConfig{
			Index:       "data/episodes-index.json",
			Topics:      "data/topics.json",
			Episodes:    "data/episodes.json",
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "castdex/1.0 (https://github.com/pders01/castdex)",
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6B6B",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
				Success:   "#4ADE80",
			},
			Debounce:         300 * time.Millisecond,
			MaxKeywords:      5,
			WordWrapMaxWidth: 120,
			WordWrapMinWidth: 40,
			MarkdownStyle:    "auto",
		},
		Media: MediaConfig{
			Darwin:        MediaPlayers{Video: []string{"iina", "mpv", "vlc"}},
			Linux:         MediaPlayers{Video: []string{"mpv", "vlc"}},
			Windows:       MediaPlayers{Video: []string{"mpv", "vlc"}},
			DefaultOpener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:      "q",
				Search:    "/",
				Topics:    "t",
				Sort:      "s",
				OpenMedia: "o",
				Back:      "esc",
				Help:      "?",
			},
		},
		Log: LogConfig{
			Level: "off",
			Path:  filepath.Join(homeDir, ".castdex", "castdex.log"),
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

// settings flattens cfg into dotted viper keys.
func settings(cfg *Config) map[string]any {
	return map[string]any{
		"feeds.index":        cfg.Feeds.Index,
		"feeds.topics":       cfg.Feeds.Topics,
		"feeds.episodes":     cfg.Feeds.Episodes,
		"feeds.snapshot":     cfg.Feeds.Snapshot,
		"feeds.http_timeout": cfg.Feeds.HTTPTimeout.String(),
		"feeds.user_agent":   cfg.Feeds.UserAgent,

		"ui.colors.primary":      cfg.UI.Colors.Primary,
		"ui.colors.secondary":    cfg.UI.Colors.Secondary,
		"ui.colors.accent":       cfg.UI.Colors.Accent,
		"ui.colors.text":         cfg.UI.Colors.Text,
		"ui.colors.muted":        cfg.UI.Colors.Muted,
		"ui.colors.error":        cfg.UI.Colors.Error,
		"ui.colors.success":      cfg.UI.Colors.Success,
		"ui.debounce":            cfg.UI.Debounce.String(),
		"ui.max_keywords":        cfg.UI.MaxKeywords,
		"ui.word_wrap_max_width": cfg.UI.WordWrapMaxWidth,
		"ui.word_wrap_min_width": cfg.UI.WordWrapMinWidth,
		"ui.markdown_style":      cfg.UI.MarkdownStyle,

		"media.darwin.video":       cfg.Media.Darwin.Video,
		"media.linux.video":        cfg.Media.Linux.Video,
		"media.windows.video":      cfg.Media.Windows.Video,
		"media.default_opener":     cfg.Media.DefaultOpener,
		"keys.modifier":            cfg.Keys.Modifier,
		"keys.bindings.quit":       cfg.Keys.Bindings.Quit,
		"keys.bindings.search":     cfg.Keys.Bindings.Search,
		"keys.bindings.topics":     cfg.Keys.Bindings.Topics,
		"keys.bindings.sort":       cfg.Keys.Bindings.Sort,
		"keys.bindings.open_media": cfg.Keys.Bindings.OpenMedia,
		"keys.bindings.back":       cfg.Keys.Bindings.Back,
		"keys.bindings.help":       cfg.Keys.Bindings.Help,

		"log.level": cfg.Log.Level,
		"log.path":  cfg.Log.Path,
	}
}

// Load reads configPath, or config.toml from the config directory or the
// working directory when configPath is empty. Every key can be overridden
// from the environment, e.g. CASTDEX_FEEDS_INDEX.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	for key, value := range settings(defaultConfig()) {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CASTDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := expandPaths(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// expandPaths expands ~ in file settings. Feed locations are left alone
// because they may be URLs; the feed loader validates them.
func expandPaths(cfg *Config) error {
	if cfg.Log.Path == "" {
		return nil
	}
	p, err := validation.ExpandPath(cfg.Log.Path)
	if err != nil {
		return fmt.Errorf("log path: %w", err)
	}
	cfg.Log.Path = p
	return nil
}

func Save(config *Config, path string) error {
	v := viper.New()
	for key, value := range settings(config) {
		v.Set(key, value)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	return Save(defaultConfig(), path)
}

// VideoPlayers returns the player list for the running platform.
func (c *Config) VideoPlayers() []string {
	switch runtime.GOOS {
	case "darwin":
		return c.Media.Darwin.Video
	case "windows":
		return c.Media.Windows.Video
	default:
		return c.Media.Linux.Video
	}
}
