package ladder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MegaGrindStone/gochunk"
	"github.com/MegaGrindStone/gochunk/sizer"
)

// Scenario 8 from SPEC_FULL.md §8: two top-level Python function
// definitions separated by blank lines, chunked through the Code ladder
// at the function-definition (depth-1) boundary. The blank-line gap
// between the two functions lies before that boundary, so it forms the
// tail of the first chunk's raw span and trim removes it; with no minimum
// chunk size (Lo=0, see splitter_test.go's note on single-number Capacity
// entries) no text of the second function is pulled into the first chunk.
func TestCodeScenarioPythonFunctionBoundary(t *testing.T) {
	const src = "def foo():\n    return 42\n\n\ndef bar():\n    return 7\n"

	s, err := NewCode(mustCapacity(t, 0, 40), sizer.Character{}, "python", gochunk.WithTrim(true))
	require.NoError(t, err)

	assert.Equal(t, []string{"def foo():\n    return 42", "def bar():\n    return 7"}, s.Chunks(src))
}

func TestNewCodeUnknownLanguage(t *testing.T) {
	_, err := NewCode(mustCapacity(t, 0, 40), sizer.Character{}, "cobol")
	require.Error(t, err)
	assert.ErrorIs(t, err, gochunk.ErrInvalidLanguage)
}

func TestCodeGoFunctionBoundary(t *testing.T) {
	const src = `package main

func a() {
	println("a")
}

func b() {
	println("b")
}
`
	s, err := NewCode(mustCapacity(t, 0, 200), sizer.Character{}, "go", gochunk.WithTrim(true))
	require.NoError(t, err)

	chunks := s.Chunks(src)
	require.NotEmpty(t, chunks)
	joined := strings.Join(chunks, "")
	assert.Contains(t, joined, `println("a")`)
	assert.Contains(t, joined, `println("b")`)
}

// A source string isn't valid Go, but tree-sitter's Go grammar still
// produces *some* tree (with ERROR nodes) rather than failing outright,
// so this mostly exercises that the ladder degrades gracefully either
// way: every byte of the input still shows up across the emitted chunks.
func TestCodeMalformedSourceStillCoversInput(t *testing.T) {
	const src = "func ( { this is not valid go +++ "

	s, err := NewCode(mustCapacity(t, 0, 10), sizer.Character{}, "go", gochunk.WithTrim(false))
	require.NoError(t, err)

	chunks := s.Chunks(src)
	require.NotEmpty(t, chunks)
	assert.Equal(t, src, strings.Join(chunks, ""))
}
