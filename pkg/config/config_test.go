package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resetState clears the package-level koanf instance between Init calls.
func resetState() {
	K = koanf.New(Delimiter)
	Config = nil
	cfgPath = ""
}

func testTrees(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()
	src := filepath.Join(base, "src")
	dst := filepath.Join(base, "dst")
	require.NoError(t, os.Mkdir(src, 0755))
	require.NoError(t, os.Mkdir(dst, 0755))
	return src, dst
}

func TestInit(t *testing.T) {
	resetState()
	src, dst := testTrees(t)

	path := writeConfigFile(t, `
source = "`+src+`"
target = "`+dst+`"

[copier]
inputs = [".jpg", ".png"]

[converter]
inputs = [".flac"]
output = ".opus"
cmd = "/bin/cp {src} {dst}"
rate_limit = 2

[pools]
heavy_threads = 4
`)

	require.NoError(t, Init(path))

	assert.Equal(t, src, Config.Source)
	assert.Equal(t, dst, Config.Target)
	assert.Equal(t, []string{".jpg", ".png"}, Config.Copier.Inputs)
	assert.Equal(t, []string{".flac"}, Config.Converter.Inputs)
	assert.Equal(t, ".opus", Config.Converter.Output)
	assert.Equal(t, 2, Config.Converter.RateLimit)
	assert.Equal(t, 4, Config.Pools.HeavyThreads)
	assert.Equal(t, path, Path())
}

func TestInitDefaults(t *testing.T) {
	resetState()
	src, dst := testTrees(t)

	path := writeConfigFile(t, `
source = "`+src+`"
target = "`+dst+`"
`)

	require.NoError(t, Init(path))

	assert.Equal(t, DefaultOverrideFilename, Config.OverrideFilename)
	assert.Equal(t, OnOverrideErrorSkipConvert, Config.OnOverrideError)
	assert.Equal(t, defaultLightMultiplier, Config.Pools.LightMultiplier)
	assert.Equal(t, defaultHeavyMultiplier, Config.Pools.HeavyMultiplier)
}

func TestInitEnvOverride(t *testing.T) {
	resetState()
	src, dst := testTrees(t)
	otherDst := filepath.Join(t.TempDir(), "other")
	require.NoError(t, os.Mkdir(otherDst, 0755))

	path := writeConfigFile(t, `
source = "`+src+`"
target = "`+dst+`"
`)

	t.Setenv("ARCHON__TARGET", otherDst)
	require.NoError(t, Init(path))
	assert.Equal(t, otherDst, Config.Target)
}

func TestInitMissingFile(t *testing.T) {
	resetState()
	assert.Error(t, Init(filepath.Join(t.TempDir(), "nope.toml")))
}

func TestValidate(t *testing.T) {
	src, dst := testTrees(t)

	valid := func() *Configuration {
		c := &Configuration{
			Source: src,
			Target: dst,
			Copier: CopierConfig{Inputs: []string{".jpg"}},
			Converter: ConverterConfig{
				Inputs: []string{".flac"},
				Output: ".opus",
				Cmd:    "/bin/cp {src} {dst}",
			},
		}
		c.applyDefaults()
		return c
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("MissingSource", func(t *testing.T) {
		c := valid()
		c.Source = ""
		assert.Error(t, c.Validate())
	})

	t.Run("SourceNotADir", func(t *testing.T) {
		c := valid()
		f := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(f, nil, 0644))
		c.Source = f
		assert.Error(t, c.Validate())
	})

	t.Run("BadIgnoreRegex", func(t *testing.T) {
		c := valid()
		c.IgnoreRegexes = []string{`^(unclosed`}
		assert.ErrorContains(t, c.Validate(), "ignore_regexes")
	})

	t.Run("BadCopierSuffix", func(t *testing.T) {
		c := valid()
		c.Copier.Inputs = []string{"jpg"}
		assert.ErrorContains(t, c.Validate(), "copier.inputs")
	})

	t.Run("BadOutputSuffix", func(t *testing.T) {
		c := valid()
		c.Converter.Output = "opus"
		assert.ErrorContains(t, c.Validate(), "converter.output")
	})

	t.Run("CmdWithoutPlaceholders", func(t *testing.T) {
		c := valid()
		c.Converter.Cmd = "/bin/cp {src} out.opus"
		assert.ErrorContains(t, c.Validate(), "{dst}")
	})

	t.Run("CmdEmptyWithInputs", func(t *testing.T) {
		c := valid()
		c.Converter.Cmd = ""
		assert.Error(t, c.Validate())
	})

	t.Run("CmdNotRequiredWithoutInputs", func(t *testing.T) {
		c := valid()
		c.Converter = ConverterConfig{}
		assert.NoError(t, c.Validate())
	})

	t.Run("UnknownPolicy", func(t *testing.T) {
		c := valid()
		c.OnOverrideError = "explode"
		assert.ErrorContains(t, c.Validate(), "on_override_error")
	})

	t.Run("NegativePoolSize", func(t *testing.T) {
		c := valid()
		c.Pools.LightThreads = -1
		assert.ErrorContains(t, c.Validate(), "pools.light_threads")
	})

	t.Run("MissingConverterExe", func(t *testing.T) {
		c := valid()
		c.Converter.Exe = filepath.Join(t.TempDir(), "no-such-binary")
		assert.ErrorContains(t, c.Validate(), "converter.exe")
	})
}
