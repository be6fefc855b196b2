package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabulary(t *testing.T) {
	lex := Default()

	assert.Len(t, lex.Planets, 9)
	assert.Contains(t, lex.Categories, "dwarf planets")
	assert.Equal(t, []string{"and", "vs", "versus"}, lex.CompareSeparators)
	assert.True(t, lex.IsPlanet("Mars"))
	assert.False(t, lex.IsPlanet("sun"))
}

func TestLoadOverridesOnlyGivenLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("planets: [Vulcan, Krypton]\n"), 0o600))

	lex, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"vulcan", "krypton"}, lex.Planets)
	assert.Equal(t, Default().HelpWords, lex.HelpWords)
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	lex, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), lex)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("planets: [unterminated\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestWordSet(t *testing.T) {
	set := NewWordSet([]string{"Hello", "hi"})

	assert.True(t, set.Has("HELLO"))
	assert.True(t, set.Any([]string{"well", "hi"}))
	assert.False(t, set.Any([]string{"well", "there"}))
	assert.False(t, set.Any(nil))
}
