package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinLists(t *testing.T) {
	t.Parallel()

	cat := Builtin()
	assert.Equal(t, []string{"sight_words_k", "sight_words_1", "dinosaurs"}, cat.IDs())
	assert.True(t, cat.Has(DefaultListID))

	dinos, ok := cat.Get("dinosaurs")
	require.True(t, ok)
	assert.Equal(t, "Dinosaurs (Fun)", dinos.Name)
	assert.Contains(t, dinos.Words, "dino")
}

func TestBuiltinListsHaveDistinctLowercaseWords(t *testing.T) {
	t.Parallel()

	for _, l := range Builtin().Lists() {
		seen := map[string]bool{}
		for _, w := range l.Words {
			assert.False(t, seen[w], "list %s repeats %q", l.ID, w)
			seen[w] = true
			assert.Regexp(t, `^[a-z]+$`, w)
		}
	}
}

func TestGetReturnsCopy(t *testing.T) {
	t.Parallel()

	cat := Builtin()
	l, ok := cat.Get("sight_words_k")
	require.True(t, ok)
	l.Words[0] = "mutated"

	again, _ := cat.Get("sight_words_k")
	assert.Equal(t, "a", again.Words[0])
}

func TestLoadMergesYAMLAndTextLists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "lists.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`lists:
  - id: animals
    name: Animals
    words: [Cat, dog, cat, "co-op"]
  - id: dinosaurs
    name: Big Dinos
    words: [rex]
`), 0o644))
	listDir := filepath.Join(dir, "wordlists")
	require.NoError(t, os.MkdirAll(listDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(listDir, "colors.txt"), []byte("red\nblue\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(listDir, "README.md"), []byte("ignored"), 0o644))

	cat, err := Load(Sources{YAMLPath: yamlPath, WordListDir: listDir})
	require.NoError(t, err)

	assert.Equal(t, []string{"sight_words_k", "sight_words_1", "dinosaurs", "animals", "colors"}, cat.IDs())

	animals, ok := cat.Get("animals")
	require.True(t, ok)
	assert.Equal(t, []string{"cat", "dog"}, animals.Words)

	dinos, _ := cat.Get("dinosaurs")
	assert.Equal(t, "Big Dinos", dinos.Name)
	assert.Equal(t, []string{"rex"}, dinos.Words)

	colors, _ := cat.Get("colors")
	assert.Equal(t, []string{"red", "blue"}, colors.Words)
}

func TestLoadMissingSourcesIsBuiltin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cat, err := Load(Sources{
		YAMLPath:    filepath.Join(dir, "missing.yaml"),
		WordListDir: filepath.Join(dir, "missing"),
	})
	require.NoError(t, err)
	assert.Equal(t, Builtin().IDs(), cat.IDs())
}

func TestLoadRejectsDuplicateYAMLIDs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lists.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`lists:
  - id: a
    words: [one]
  - id: a
    words: [two]
`), 0o644))

	_, err := Load(Sources{YAMLPath: path})
	assert.ErrorIs(t, err, ErrDuplicateList)
}
