package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pders01/castdex/internal/config"
	"github.com/pders01/castdex/internal/debuglog"
	"github.com/pders01/castdex/internal/feed"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath   string
	indexFlag    string
	topicsFlag   string
	episodesFlag string
	snapshotFlag string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "castdex",
	Short: "castdex - browse a podcast transcript archive",
	Long: `castdex loads an episode index and a topic taxonomy and lets you search,
filter by topic, sort and read full transcripts in the terminal.

Feeds are JSON files or URLs, or a bbolt snapshot written by "castdex build".
Without a subcommand the interactive browser starts.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBrowse,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to configuration file")
	pf.StringVar(&indexFlag, "index", "", "Episode index feed (URL, path or bolt://path)")
	pf.StringVar(&topicsFlag, "topics", "", "Topic feed (URL or path)")
	pf.StringVar(&episodesFlag, "episodes", "", "Full episode feed with transcripts (URL or path)")
	pf.StringVar(&snapshotFlag, "snapshot", "", "bbolt snapshot to read instead of the JSON feeds")
	pf.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error or off")
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = debuglog.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration, applies the global flag overrides and
// starts file logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{indexFlag, &cfg.Feeds.Index},
		{topicsFlag, &cfg.Feeds.Topics},
		{episodesFlag, &cfg.Feeds.Episodes},
		{snapshotFlag, &cfg.Feeds.Snapshot},
		{logLevelFlag, &cfg.Log.Level},
	}
	for _, o := range overrides {
		if o.flag != "" {
			*o.dst = o.flag
		}
	}

	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.Path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSource loads the config and opens the feeds it points at.
func openSource() (*config.Config, feed.Source, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	src, err := feed.OpenSource(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, src, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
