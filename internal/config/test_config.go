package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	d := defaultConfig()
	return &Config{
		Feeds: FeedsConfig{
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "castdex-test/1.0",
		},
		UI:    d.UI,
		Media: d.Media,
		Keys:  d.Keys,
		Log:   LogConfig{Level: "off"},
	}
}
