package sizer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MegaGrindStone/gochunk"
)

func writeBPEFixture(t *testing.T) (vocabPath, mergesPath string) {
	t.Helper()
	dir := t.TempDir()

	vocab := `{"a":0,"b":1,"c":2,"ab":3,"abc":4}`
	vocabPath = filepath.Join(dir, "vocab.json")
	require.NoError(t, os.WriteFile(vocabPath, []byte(vocab), 0o644))

	merges := "#version\na b\nab c\n"
	mergesPath = filepath.Join(dir, "merges.txt")
	require.NoError(t, os.WriteFile(mergesPath, []byte(merges), 0o644))

	return vocabPath, mergesPath
}

func TestBPESizeMergesGreedily(t *testing.T) {
	vocabPath, mergesPath := writeBPEFixture(t)

	b, err := NewBPE(vocabPath, mergesPath, nil)
	require.NoError(t, err)

	// "abc" -> bytes a,b,c -> merge(a,b)->ab, then merge(ab,c)->abc: 1 token.
	assert.Equal(t, 1, b.Size([]byte("abc")))
}

func TestBPESizeSpecialTokens(t *testing.T) {
	vocabPath, mergesPath := writeBPEFixture(t)

	b, err := NewBPE(vocabPath, mergesPath, map[string]int{"<|endoftext|>": 999})
	require.NoError(t, err)

	assert.Equal(t, 1, b.Size([]byte("<|endoftext|>")))
}

func TestNewBPEMissingFile(t *testing.T) {
	_, mergesPath := writeBPEFixture(t)

	_, err := NewBPE("/nonexistent/vocab.json", mergesPath, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gochunk.ErrTokenizerLoad))
}

func TestNewBPEMalformedVocab(t *testing.T) {
	dir := t.TempDir()
	vocabPath := filepath.Join(dir, "vocab.json")
	require.NoError(t, os.WriteFile(vocabPath, []byte("not json"), 0o644))
	_, mergesPath := writeBPEFixture(t)

	_, err := NewBPE(vocabPath, mergesPath, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gochunk.ErrTokenizerLoad))
}

func TestNewBPEFromConfigMergesGreedily(t *testing.T) {
	vocabJSON := []byte(`{"a":0,"b":1,"c":2,"ab":3,"abc":4}`)
	mergesText := []byte("#version\na b\nab c\n")

	b, err := NewBPEFromConfig(vocabJSON, mergesText, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, b.Size([]byte("abc")))
}

func TestNewBPEFromConfigMalformedVocab(t *testing.T) {
	_, err := NewBPEFromConfig([]byte("not json"), []byte("#version\na b\n"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gochunk.ErrTokenizerLoad))
}

func TestNewBPEFromTokenizerMergesGreedily(t *testing.T) {
	vocab := map[string]int{"a": 0, "b": 1, "c": 2, "ab": 3, "abc": 4}
	mergeRules := [][2]string{{"a", "b"}, {"ab", "c"}}

	b, err := NewBPEFromTokenizer(vocab, mergeRules, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, b.Size([]byte("abc")))
}

func TestNewBPEFromTokenizerSpecialTokens(t *testing.T) {
	vocab := map[string]int{"a": 0, "b": 1, "c": 2, "ab": 3, "abc": 4}
	mergeRules := [][2]string{{"a", "b"}, {"ab", "c"}}

	b, err := NewBPEFromTokenizer(vocab, mergeRules, map[string]int{"<|endoftext|>": 999})
	require.NoError(t, err)

	assert.Equal(t, 1, b.Size([]byte("<|endoftext|>")))
}

// The three BPE construction kinds (file path, serialized config, parsed
// object) must agree on the same logical tokenizer.
func TestBPEConstructorsAgree(t *testing.T) {
	vocabPath, mergesPath := writeBPEFixture(t)
	vocabJSON := []byte(`{"a":0,"b":1,"c":2,"ab":3,"abc":4}`)
	mergesText := []byte("#version\na b\nab c\n")
	vocab := map[string]int{"a": 0, "b": 1, "c": 2, "ab": 3, "abc": 4}
	mergeRules := [][2]string{{"a", "b"}, {"ab", "c"}}

	byFile, err := NewBPE(vocabPath, mergesPath, nil)
	require.NoError(t, err)
	byConfig, err := NewBPEFromConfig(vocabJSON, mergesText, nil)
	require.NoError(t, err)
	byTokenizer, err := NewBPEFromTokenizer(vocab, mergeRules, nil)
	require.NoError(t, err)

	for _, text := range []string{"abc", "a", "ac"} {
		want := byFile.Size([]byte(text))
		assert.Equal(t, want, byConfig.Size([]byte(text)), "config variant mismatch for %q", text)
		assert.Equal(t, want, byTokenizer.Size([]byte(text)), "tokenizer variant mismatch for %q", text)
	}
}
