package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		set, err := Compile(nil)
		require.NoError(t, err)
		assert.Nil(t, set)
	})

	t.Run("Valid", func(t *testing.T) {
		set, err := Compile([]string{`Ext == ".log"`, `Size > 1024`})
		require.NoError(t, err)
		require.NotNil(t, set)
		assert.Len(t, set.Programs, 2)
	})

	t.Run("SyntaxError", func(t *testing.T) {
		_, err := Compile([]string{`Name ==`})
		assert.Error(t, err)
	})

	t.Run("NotBoolean", func(t *testing.T) {
		_, err := Compile([]string{`Size + 1`})
		assert.Error(t, err)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, err := Compile([]string{`Owner == "root"`})
		assert.Error(t, err)
	})
}

func TestMatchAny(t *testing.T) {
	set, err := Compile([]string{
		`Ext == ".log"`,
		`Size > 1000 && !IsDir`,
		`RegexMatch("^cover\\.(jpg|png)$")`,
		`AgeDays > 365`,
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		env    *Env
		expect bool
	}{
		{"ByExt", &Env{Name: "debug.log", Ext: ".log"}, true},
		{"BySize", &Env{Name: "raw.bin", Ext: ".bin", Size: 2000}, true},
		{"DirExemptFromSize", &Env{Name: "big", IsDir: true, Size: 2000}, false},
		{"ByRegex", &Env{Name: "cover.jpg", Ext: ".jpg"}, true},
		{"ByAge", &Env{Name: "old.txt", Ext: ".txt", AgeDays: 400}, true},
		{"NoMatch", &Env{Name: "song.flac", Ext: ".flac", Size: 500}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := set.MatchAny(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, match)
		})
	}
}

func TestMatchAnyNilSet(t *testing.T) {
	var set *Set
	match, err := set.MatchAny(&Env{Name: "anything"})
	require.NoError(t, err)
	assert.False(t, match)
}
