package sizer

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"

	"github.com/MegaGrindStone/gochunk"
)

// modelsByName maps the model names callers pass to NewModel onto the
// tokenizer.Model constants github.com/tiktoken-go/tokenizer knows how to
// load a codec for. Grounded in internal/helper.go's EncodeStringByTiktoken,
// which hardcodes tokenizer.GPT4o; NewModel generalizes that to any model
// the library ships a codec for.
var modelsByName = map[string]tokenizer.Model{
	"gpt-4o":            tokenizer.GPT4o,
	"gpt-4":             tokenizer.GPT4,
	"gpt-4-turbo":       tokenizer.GPT4,
	"gpt-3.5-turbo":     tokenizer.GPT3dot5Turbo,
	"text-davinci-003":  tokenizer.TextDavinci003,
}

// Model sizes text by the token count of a named tiktoken-compatible model,
// via github.com/tiktoken-go/tokenizer. Size units are tokens, matching how
// LLM context windows are actually budgeted.
type Model struct {
	codec tokenizer.Codec
}

// NewModel resolves name to a tokenizer codec. name is matched
// case-sensitively against a small set of well-known OpenAI model names
// (e.g. "gpt-4o"); an unresolvable name returns gochunk.ErrUnknownModel.
func NewModel(name string) (*Model, error) {
	m, ok := modelsByName[name]
	if !ok {
		return nil, fmt.Errorf("sizer.NewModel(%q): %w", name, gochunk.ErrUnknownModel)
	}
	codec, err := tokenizer.ForModel(m)
	if err != nil {
		return nil, fmt.Errorf("sizer.NewModel(%q): %w", name, err)
	}
	return &Model{codec: codec}, nil
}

// NewModelFromCodec wraps an already-resolved tokenizer.Codec directly,
// for callers that have already loaded or built one (e.g. via
// tokenizer.ForModel or tokenizer.Get themselves) rather than naming a
// model this package knows how to resolve.
func NewModelFromCodec(codec tokenizer.Codec) *Model {
	return &Model{codec: codec}
}

// Size implements gochunk.Sizer. It counts tokens, not bytes or runes.
func (m *Model) Size(text []byte) int {
	ids, _, err := m.codec.Encode(string(text))
	if err != nil {
		// Encode only fails on internal codec corruption, never on input
		// content; treat it as "no tokens" rather than panicking out of a
		// Sizer, which SPEC_FULL.md requires to be total.
		return 0
	}
	return len(ids)
}
