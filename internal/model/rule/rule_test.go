package rule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsValid(t *testing.T) {
	table := Seed()
	require.NoError(t, table.Validate())

	ids := make([]string, 0, len(table.Rules))
	for _, r := range table.Rules {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"fashion", "beauty", "food", "crafts"}, ids)
	assert.Len(t, table.Greeting.Suggestions, 5)
}

func TestParseNormalizesKeywords(t *testing.T) {
	raw := []byte(`
greeting:
  text: hello
  suggestions: [Tea]
rules:
  - id: tea
    keywords: ["  Chai ", "TEA"]
    response: "Tea it is"
    suggestions: ["Masala Chai"]
fallback:
  text: "Tell me more"
  suggestions: ["Anything"]
`)
	table, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, table.Rules, 1)
	assert.Equal(t, []string{"chai", "tea"}, table.Rules[0].Keywords)
	assert.Equal(t, []string{"Masala Chai"}, table.Rules[0].Suggestions)
}

func TestParseRejectsEmptyKeyword(t *testing.T) {
	raw := []byte(`
rules:
  - id: broken
    keywords: ["  "]
    response: "x"
fallback:
  text: "y"
`)
	_, err := Parse(raw)
	require.ErrorIs(t, err, ErrEmptyKeyword)
}

func TestParseRejectsMissingFallback(t *testing.T) {
	_, err := Parse([]byte(`rules: []`))
	require.ErrorIs(t, err, ErrNoFallback)
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	raw := []byte(`
rules:
  - id: a
    keywords: [x]
    response: one
  - id: a
    keywords: [y]
    response: two
fallback:
  text: z
`)
	_, err := Parse(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fallback:\n  text: hi\n"), 0o600))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi", table.Fallback.Text)
	assert.Empty(t, table.Rules)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	table := Seed()
	r, ok := table.Find("food")
	require.True(t, ok)
	assert.Equal(t, []string{"snack", "food"}, r.Keywords)

	_, ok = table.Find("electronics")
	assert.False(t, ok)
}

func TestLoadOrSeed(t *testing.T) {
	table, err := LoadOrSeed("")
	require.NoError(t, err)
	assert.Equal(t, Seed(), table)

	_, err = LoadOrSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
