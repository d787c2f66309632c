package media

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlayers_Builtin(t *testing.T) {
	r, err := parsePlayers(playersTOML)
	require.NoError(t, err)

	for _, name := range []string{"mpv", "iina", "vlc", "celluloid"} {
		_, ok := r.players[name]
		assert.True(t, ok, "missing built-in player %s", name)
	}
}

func TestPlayerRegistry_Args(t *testing.T) {
	r, err := parsePlayers([]byte(`
[players.test]
platforms = ["` + runtime.GOOS + `"]
args = ["--generic"]
args_linux = ["--linux"]
args_darwin = ["--darwin"]
args_windows = ["--windows"]

[players.elsewhere]
platforms = ["plan9"]
args = ["--x"]
`))
	require.NoError(t, err)

	args, ok := r.Args("test")
	assert.True(t, ok)
	switch runtime.GOOS {
	case "linux", "darwin", "windows":
		assert.Equal(t, []string{"--" + runtime.GOOS}, args)
	default:
		assert.Equal(t, []string{"--generic"}, args)
	}

	_, ok = r.Args("elsewhere")
	assert.False(t, ok, "unsupported platform")

	args, ok = r.Args("unknown-player")
	assert.True(t, ok)
	assert.Nil(t, args)
}

func TestPlayerRegistry_Merge(t *testing.T) {
	r, err := parsePlayers(playersTOML)
	require.NoError(t, err)

	require.NoError(t, r.merge([]byte(`
[players.mpv]
platforms = ["darwin", "linux", "windows"]
args = ["--custom"]
`)))

	args, ok := r.Args("mpv")
	require.True(t, ok)
	assert.Equal(t, []string{"--custom"}, args)

	assert.Error(t, r.merge([]byte("not = [valid")))
}
