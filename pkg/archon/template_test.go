package archon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommand(t *testing.T) {
	t.Run("WithExe", func(t *testing.T) {
		argv, err := renderCommand("/usr/bin/ffmpeg", "-i {src} -c:a libopus {dst}", "/a/in.flac", "/b/out.opus")
		require.NoError(t, err)
		assert.Equal(t, []string{"/usr/bin/ffmpeg", "-i", "/a/in.flac", "-c:a", "libopus", "/b/out.opus"}, argv)
	})

	t.Run("WithoutExe", func(t *testing.T) {
		argv, err := renderCommand("", "/bin/cp {src} {dst}", "/a/in.mp3", "/b/out.mp3")
		require.NoError(t, err)
		assert.Equal(t, []string{"/bin/cp", "/a/in.mp3", "/b/out.mp3"}, argv)
	})

	t.Run("PathsWithSpaces", func(t *testing.T) {
		argv, err := renderCommand("/usr/bin/conv", "{src} {dst}", "/a/my song.flac", "/b/my song.opus")
		require.NoError(t, err)
		assert.Equal(t, []string{"/usr/bin/conv", "/a/my song.flac", "/b/my song.opus"}, argv)
	})

	t.Run("RepeatedPlaceholder", func(t *testing.T) {
		argv, err := renderCommand("/usr/bin/conv", "{src} {src} {dst}", "s", "d")
		require.NoError(t, err)
		assert.Equal(t, []string{"/usr/bin/conv", "s", "s", "d"}, argv)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := renderCommand("", "", "s", "d")
		assert.Error(t, err)
	})
}
