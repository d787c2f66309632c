package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	indexJSON = `[
  {"slug":"alice","guest":"Alice","title":"Rust in production","keywords":["rust"],"publish_date":"2024-01-10","duration_seconds":3600,"view_count":500,"youtube_url":"https://www.youtube.com/watch?v=alice"},
  {"slug":"bob","guest":"Bob","title":"Scaling Postgres","keywords":["databases"],"publish_date":"2024-03-01","duration_seconds":1800,"view_count":9000},
  {"slug":"carol","guest":"Carol","title":"Ownership and borrowing","description":"A deep dive into the Rust borrow checker","publish_date":"2023-11-20","duration_seconds":5400,"view_count":50}
]`
	topicsJSON = `[
  {"name":"rust","display_name":"Rust","count":2,"episodes":[{"slug":"alice"},{"slug":"carol"}]},
  {"name":"databases","display_name":"Databases","count":1,"episodes":[{"slug":"bob"}]}
]`
	episodesJSON = `[
  {"slug":"alice","guest":"Alice","title":"Rust in production","keywords":["rust"],"transcript":"Transcript of Alice"},
  {"slug":"bob","guest":"Bob","title":"Scaling Postgres","keywords":["databases"],"transcript":"Vacuum and indexes"},
  {"slug":"carol","guest":"Carol","title":"Ownership and borrowing","description":"A deep dive into the Rust borrow checker","transcript":"Lifetimes everywhere"}
]`
)

func resetFlags() {
	configPath, indexFlag, topicsFlag, episodesFlag, snapshotFlag, logLevelFlag = "", "", "", "", "", ""
	listQuery, listTopic, listSort, listLimit, listWidth = "", "", "", 0, 80
	showRaw, showWidth = false, 100
	searchLimit, searchVerbose = 10, false
	buildOut, buildRSS, buildSnapshot = "", "", ""
	versionBanner = false
}

// execute runs the root command with an empty home and working directory
// so no user configuration leaks in.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// feedArgs writes the three JSON feeds and returns the flags pointing at them.
func feedArgs(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "episodes-index.json"), indexJSON)
	writeFile(t, filepath.Join(dir, "topics.json"), topicsJSON)
	writeFile(t, filepath.Join(dir, "episodes.json"), episodesJSON)
	return []string{
		"--index", filepath.Join(dir, "episodes-index.json"),
		"--topics", filepath.Join(dir, "topics.json"),
		"--episodes", filepath.Join(dir, "episodes.json"),
	}
}

func assertOrder(t *testing.T, out string, words ...string) {
	t.Helper()
	last := -1
	for _, w := range words {
		i := strings.Index(out, w)
		require.NotEqual(t, -1, i, "%q missing from output", w)
		assert.Greater(t, i, last, "%q out of order", w)
		last = i
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)

	if !strings.Contains(out, "castdex dev") {
		t.Errorf("Expected version output to contain 'castdex dev', got: %s", out)
	}
	if !strings.Contains(out, "Podcast transcript browser") {
		t.Errorf("Expected version output to contain tagline, got: %s", out)
	}
	if !strings.Contains(out, "github.com/pders01/castdex") {
		t.Errorf("Expected version output to contain module path, got: %s", out)
	}
}

func TestGenerateConfigCommand(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "castdex", "config.toml")

	out, err := execute(t, "generate-config", configFile)
	require.NoError(t, err)

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		t.Errorf("Config file was not created at %s", configFile)
	}
	if !strings.Contains(out, "Generated default configuration at:") {
		t.Errorf("Expected output to contain 'Generated default configuration at:', got: %s", out)
	}
}

func TestListCommand_FeedOrderByDefault(t *testing.T) {
	out, err := execute(t, append([]string{"list"}, feedArgs(t)...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Showing all 3 episodes")
	assertOrder(t, out, "Alice", "Bob", "Carol")
}

func TestListCommand_QueryAndSort(t *testing.T) {
	args := append([]string{"list", "--query", "RUST", "--sort", "views-desc"}, feedArgs(t)...)
	out, err := execute(t, args...)
	require.NoError(t, err)

	assert.Contains(t, out, "Showing 2 of 3 episodes")
	assert.NotContains(t, out, "Bob")
	assertOrder(t, out, "Alice", "Carol")
}

func TestListCommand_TopicAndLimit(t *testing.T) {
	args := append([]string{"list", "--topic", "rust", "--sort", "date-asc", "--limit", "1"}, feedArgs(t)...)
	out, err := execute(t, args...)
	require.NoError(t, err)

	assert.Contains(t, out, "Carol")
	assert.NotContains(t, out, "Alice")
	assert.Contains(t, out, "Showing 2 of 3 episodes")
}

func TestListCommand_UnknownTopicIsEmpty(t *testing.T) {
	out, err := execute(t, append([]string{"list", "--topic", "cooking"}, feedArgs(t)...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "No episodes found")
	assert.Contains(t, out, "Showing 0 of 3 episodes")
}

func TestListCommand_BadSort(t *testing.T) {
	_, err := execute(t, append([]string{"list", "--sort", "loudest"}, feedArgs(t)...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sort key")
}

func TestListCommand_MissingFeed(t *testing.T) {
	_, err := execute(t, "list", "--index", filepath.Join(t.TempDir(), "nope.json"), "--topics", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed")
}

func TestShowCommand(t *testing.T) {
	out, err := execute(t, append([]string{"show", "alice", "--raw"}, feedArgs(t)...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "# Rust in production")
	assert.Contains(t, out, "## Transcript")
	assert.Contains(t, out, "Transcript of Alice")
}

func TestShowCommand_UnknownSlug(t *testing.T) {
	_, err := execute(t, append([]string{"show", "zed"}, feedArgs(t)...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no episode with slug "zed"`)
}

func TestTopicsCommand(t *testing.T) {
	out, err := execute(t, append([]string{"topics"}, feedArgs(t)...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Rust (2)")
	assertOrder(t, out, "rust", "databases")
}

func TestSearchCommand(t *testing.T) {
	out, err := execute(t, append([]string{"search", "lifetimes"}, feedArgs(t)...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "(carol)")
	assert.NotContains(t, out, "(bob)")
}

func TestSearchCommand_Verbose(t *testing.T) {
	out, err := execute(t, append([]string{"search", "--verbose", "postgres"}, feedArgs(t)...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Searched 3 episodes")
	assert.Contains(t, out, "(bob)")
}

func TestSearchCommand_SlugIsSanitized(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "episodes-index.json"), indexJSON)
	writeFile(t, filepath.Join(dir, "topics.json"), topicsJSON)
	writeFile(t, filepath.Join(dir, "episodes.json"),
		`[{"slug":"evil\u001b[2J","guest":"Eve","title":"Escapes","transcript":"terminal escapes"}]`)

	out, err := execute(t, "search", "escapes",
		"--index", filepath.Join(dir, "episodes-index.json"),
		"--topics", filepath.Join(dir, "topics.json"),
		"--episodes", filepath.Join(dir, "episodes.json"))
	require.NoError(t, err)

	assert.Contains(t, out, "(evil")
	assert.NotContains(t, out, "\x1b")
}

func TestSearchCommand_ShortQuery(t *testing.T) {
	out, err := execute(t, append([]string{"search", "x"}, feedArgs(t)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "No matches")
}

func TestBuildCommand_ThenListSnapshot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "episodes", "alice", "transcript.md"),
		"---\nguest: Alice\ntitle: Pricing\npublish_date: 2024-01-02\n---\nHello there.\n")
	writeFile(t, filepath.Join(root, "episodes", "bob", "transcript.md"),
		"+++\nguest = \"Bob\"\ntitle = \"Growth\"\n+++\nBye now.\n")
	writeFile(t, filepath.Join(root, "index", "pricing.md"),
		"- [Alice](../episodes/alice/transcript.md)\n")
	snapshot := filepath.Join(t.TempDir(), "catalog.db")

	out, err := execute(t, "build", root, "--snapshot", snapshot)
	require.NoError(t, err)
	assert.Contains(t, out, "Built 2 episodes and 1 topics")
	assert.FileExists(t, filepath.Join(root, "data", "episodes-index.json"))
	assert.FileExists(t, snapshot)

	out, err = execute(t, "list", "--snapshot", snapshot)
	require.NoError(t, err)
	assert.Contains(t, out, "Showing all 2 episodes")

	out, err = execute(t, "list", "--index", filepath.Join(root, "data", "episodes-index.json"),
		"--topics", filepath.Join(root, "data", "topics.json"), "--topic", "pricing")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 1 of 2 episodes")
}
