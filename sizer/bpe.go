package sizer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/MegaGrindStone/gochunk"
)

// pair is a pair of BPE token strings considered for merging.
type pair struct {
	Left  string
	Right string
}

// BPE sizes text by running a GPT-2-style byte-pair-encoding tokenizer and
// counting the resulting tokens rather than returning their IDs. It never
// fetches its vocabulary over the network: every constructor takes a
// vocabulary and merge table the caller already has, whether as a local
// file path (NewBPE), already-resident serialized bytes
// (NewBPEFromConfig), or an already-parsed vocabulary and merge-rule list
// (NewBPEFromTokenizer).
type BPE struct {
	vocab         map[string]int
	merges        map[pair]int
	specialTokens map[string]int
	preTokenizeRe *regexp2.Regexp
}

// NewBPE loads a vocabulary and merge table from vocabPath and mergesPath,
// in the same vocab.json / merges.txt format produced by Hugging Face's
// tokenizers library. specialTokens may be nil. A malformed or unreadable
// file returns gochunk.ErrTokenizerLoad. This is the "tokenizer by config
// file path" construction kind from spec.md §6.
func NewBPE(vocabPath, mergesPath string, specialTokens map[string]int) (*BPE, error) {
	vocabFile, err := os.ReadFile(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("sizer.NewBPE: reading %s: %w", vocabPath, gochunk.ErrTokenizerLoad)
	}
	mergesFile, err := os.ReadFile(mergesPath)
	if err != nil {
		return nil, fmt.Errorf("sizer.NewBPE: reading %s: %w", mergesPath, gochunk.ErrTokenizerLoad)
	}

	b, err := NewBPEFromConfig(vocabFile, mergesFile, specialTokens)
	if err != nil {
		return nil, fmt.Errorf("sizer.NewBPE: %w", err)
	}
	return b, nil
}

// NewBPEFromConfig builds a BPE from an already-resident serialized
// vocab.json / merges.txt pair — e.g. fetched from an object store or
// embedded as a build asset, rather than read from a local path. This is
// the "tokenizer by serialized config" construction kind from spec.md §6.
// Malformed vocab JSON or merge-rule text returns gochunk.ErrTokenizerLoad.
func NewBPEFromConfig(vocabJSON, mergesText []byte, specialTokens map[string]int) (*BPE, error) {
	var vocab map[string]int
	if err := json.Unmarshal(vocabJSON, &vocab); err != nil {
		return nil, fmt.Errorf("sizer.NewBPEFromConfig: parsing vocab: %w", gochunk.ErrTokenizerLoad)
	}
	return NewBPEFromTokenizer(vocab, parseMergeRules(mergesText), specialTokens)
}

// NewBPEFromTokenizer builds a BPE from an already-constructed tokenizer's
// vocabulary and ordered merge-rule list (rank order, lowest first) — the
// "tokenizer by object" construction kind from spec.md §6, for callers
// that already hold a parsed tokenizer value (e.g. returned by another
// library's binding) rather than its serialized bytes.
func NewBPEFromTokenizer(vocab map[string]int, mergeRules [][2]string, specialTokens map[string]int) (*BPE, error) {
	merges := make(map[pair]int, len(mergeRules))
	for i, r := range mergeRules {
		merges[pair{Left: r[0], Right: r[1]}] = i
	}

	pattern := `'s|'t|'re|'ve|'m|'ll|'d|[\p{L}]+|[\p{N}]+|[^\s\p{L}\p{N}]+`
	if len(specialTokens) > 0 {
		names := make([]string, 0, len(specialTokens))
		for tok := range specialTokens {
			names = append(names, quoteMeta(tok))
		}
		pattern = fmt.Sprintf(`(%s)|%s`, strings.Join(names, "|"), pattern)
	}
	re, err := regexp2.Compile(pattern, 0)
	if err != nil {
		return nil, fmt.Errorf("sizer.NewBPEFromTokenizer: compiling pre-tokenizer regex: %w", gochunk.ErrTokenizerLoad)
	}

	return &BPE{
		vocab:         vocab,
		merges:        merges,
		specialTokens: specialTokens,
		preTokenizeRe: re,
	}, nil
}

// parseMergeRules parses merges.txt-format bytes (a header line followed
// by one "left right" pair per line, in rank order) into an ordered
// merge-rule list, the shape NewBPEFromTokenizer expects.
func parseMergeRules(mergesText []byte) [][2]string {
	var rules [][2]string
	lines := strings.Split(string(mergesText), "\n")
	if len(lines) > 0 {
		lines = lines[1:] // header line, per the Hugging Face merges.txt format
	}
	for _, line := range lines {
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		rules = append(rules, [2]string{parts[0], parts[1]})
	}
	return rules
}

// Size implements gochunk.Sizer. Unknown tokens (bytes that never appear in
// the loaded vocabulary, which shouldn't happen for a byte-level BPE vocab
// built the normal way) are counted as one token each rather than making
// Size fallible.
func (t *BPE) Size(text []byte) int {
	count := 0
	for _, chunk := range t.preTokenize(string(text)) {
		if _, isSpecial := t.specialTokens[chunk]; isSpecial {
			count++
			continue
		}

		initial := make([]string, 0, len(chunk))
		for _, b := range []byte(chunk) {
			initial = append(initial, string(rune(b)))
		}
		count += len(t.bpe(initial))
	}
	return count
}

func (t *BPE) preTokenize(text string) []string {
	var parts []string
	match, err := t.preTokenizeRe.FindStringMatch(text)
	for match != nil && err == nil {
		parts = append(parts, match.String())
		match, err = t.preTokenizeRe.FindNextMatch(match)
	}
	return parts
}

func (t *BPE) bpe(tokens []string) []string {
	if len(tokens) < 2 {
		return tokens
	}

	for {
		pairs := adjacentPairs(tokens)
		if len(pairs) == 0 {
			break
		}

		best := pair{}
		minRank := int(^uint(0) >> 1)
		for p := range pairs {
			if rank, ok := t.merges[p]; ok && rank < minRank {
				minRank = rank
				best = p
			}
		}
		if minRank == int(^uint(0)>>1) {
			break
		}

		merged := make([]string, 0, len(tokens))
		for i := 0; i < len(tokens); {
			if i < len(tokens)-1 && tokens[i] == best.Left && tokens[i+1] == best.Right {
				merged = append(merged, best.Left+best.Right)
				i += 2
			} else {
				merged = append(merged, tokens[i])
				i++
			}
		}
		tokens = merged
	}
	return tokens
}

// quoteMeta escapes regex metacharacters in a literal special-token string
// (e.g. "<|endoftext|>") so it can be embedded in the pre-tokenizer pattern.
func quoteMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func adjacentPairs(tokens []string) map[pair]bool {
	pairs := make(map[pair]bool)
	for i := 0; i < len(tokens)-1; i++ {
		pairs[pair{Left: tokens[i], Right: tokens[i+1]}] = true
	}
	return pairs
}
