package generator

import (
	"fmt"
	"unicode"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Token is one encoder token with its rune span in the source text.
type Token struct {
	Text       string
	Start, End int
}

// TokenEncoder splits text into tokens with rune offsets.
type TokenEncoder interface {
	Encode(text string) ([]Token, error)
}

// TokenSample is the token-level form of a sample with BIO tags.
type TokenSample struct {
	Tokens []string `json:"tokens"`
	Tags   []string `json:"tags"`
}

// WhitespaceEncoder splits on Unicode whitespace.
type WhitespaceEncoder struct{}

// Encode implements TokenEncoder.
func (WhitespaceEncoder) Encode(text string) ([]Token, error) {
	var tokens []Token
	start := -1
	runes := []rune(text)
	for i, r := range runes {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, Token{Text: string(runes[start:i]), Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{Text: string(runes[start:]), Start: start, End: len(runes)})
	}
	return tokens, nil
}

// HFEncoder encodes with a HuggingFace tokenizer.json.
type HFEncoder struct {
	tk *tokenizer.Tokenizer
}

// NewHFEncoder loads a tokenizer.json file.
func NewHFEncoder(path string) (*HFEncoder, error) {
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	return &HFEncoder{tk: tk}, nil
}

// Encode implements TokenEncoder. Tokenizer offsets are byte offsets and are
// converted to rune offsets.
func (h *HFEncoder) Encode(text string) ([]Token, error) {
	en, err := h.tk.EncodeSingle(text, false)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	runeAt := byteToRune(text)
	tokens := make([]Token, 0, len(en.Tokens))
	for i, tok := range en.Tokens {
		if i >= len(en.Offsets) || len(en.Offsets[i]) < 2 {
			continue
		}
		s, e := en.Offsets[i][0], en.Offsets[i][1]
		if s < 0 || e > len(text) || s >= e {
			continue
		}
		tokens = append(tokens, Token{Text: tok, Start: runeAt[s], End: runeAt[e]})
	}
	return tokens, nil
}

// byteToRune maps every byte offset of text, plus len(text), to a rune index.
func byteToRune(text string) []int {
	out := make([]int, len(text)+1)
	ri := -1
	for bi := 0; bi < len(text); bi++ {
		if isRuneStart(text[bi]) {
			ri++
		}
		out[bi] = ri
	}
	out[len(text)] = ri + 1
	return out
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// TagSample converts a sample into BIO-tagged tokens. A token overlapping an
// entity gets B-<label> when it is the first token of that entity and
// I-<label> otherwise.
func TagSample(enc TokenEncoder, s Sample) (TokenSample, error) {
	tokens, err := enc.Encode(s.Text)
	if err != nil {
		return TokenSample{}, err
	}
	out := TokenSample{
		Tokens: make([]string, len(tokens)),
		Tags:   make([]string, len(tokens)),
	}
	opened := make([]bool, len(s.Entities))
	for i, tok := range tokens {
		out.Tokens[i] = tok.Text
		out.Tags[i] = "O"
		for j, e := range s.Entities {
			if tok.Start >= e.End || tok.End <= e.Start {
				continue
			}
			if opened[j] {
				out.Tags[i] = "I-" + e.Label
			} else {
				out.Tags[i] = "B-" + e.Label
				opened[j] = true
			}
			break
		}
	}
	return out, nil
}

// TagSamples tags a batch.
func TagSamples(enc TokenEncoder, samples []Sample) ([]TokenSample, error) {
	out := make([]TokenSample, 0, len(samples))
	for i, s := range samples {
		t, err := TagSample(enc, s)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}
