// Package alphabet maps between human-readable tokens and the dense integer
// symbols a model consumes. An Alphabet assigns each token the index of its
// position in the declaration order, so the same list that labels a model's
// emission columns can encode raw input.
package alphabet

import "fmt"

// Alphabet is an immutable, ordered set of unique tokens.
type Alphabet struct {
	tokens []string
	index  map[string]int
}

// New builds an Alphabet from the given tokens. Tokens must be non-empty and
// unique; their order fixes the integer symbol each one encodes to.
func New(tokens ...string) (*Alphabet, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("alphabet requires at least one token")
	}
	index := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		if tok == "" {
			return nil, fmt.Errorf("alphabet token %d is empty", i)
		}
		if prev, ok := index[tok]; ok {
			return nil, fmt.Errorf("alphabet token %q appears at both %d and %d", tok, prev, i)
		}
		index[tok] = i
	}
	return &Alphabet{tokens: append([]string(nil), tokens...), index: index}, nil
}

// DNA returns the nucleotide alphabet A, C, G, T in that order.
func DNA() *Alphabet {
	a, err := New("A", "C", "G", "T")
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of tokens.
func (a *Alphabet) Len() int { return len(a.tokens) }

// Tokens returns a copy of the tokens in symbol order.
func (a *Alphabet) Tokens() []string {
	return append([]string(nil), a.tokens...)
}

// Index returns the symbol for a token and whether the token is known.
func (a *Alphabet) Index(token string) (int, bool) {
	i, ok := a.index[token]
	return i, ok
}

// Token returns the token for a symbol.
func (a *Alphabet) Token(symbol int) (string, error) {
	if symbol < 0 || symbol >= len(a.tokens) {
		return "", fmt.Errorf("symbol %d is outside the alphabet [0, %d)", symbol, len(a.tokens))
	}
	return a.tokens[symbol], nil
}

// Encode converts a token sequence into symbols. The first token not in the
// alphabet fails the call with an *UnknownTokenError.
func (a *Alphabet) Encode(tokens []string) ([]int, error) {
	symbols := make([]int, len(tokens))
	for pos, tok := range tokens {
		i, ok := a.index[tok]
		if !ok {
			return nil, &UnknownTokenError{Position: pos, Token: tok}
		}
		symbols[pos] = i
	}
	return symbols, nil
}

// EncodeRunes converts a string into symbols, treating every rune as one
// token. It suits single-character alphabets such as DNA.
func (a *Alphabet) EncodeRunes(s string) ([]int, error) {
	symbols := make([]int, 0, len(s))
	pos := 0
	for _, r := range s {
		i, ok := a.index[string(r)]
		if !ok {
			return nil, &UnknownTokenError{Position: pos, Token: string(r)}
		}
		symbols = append(symbols, i)
		pos++
	}
	return symbols, nil
}

// Decode converts symbols back into tokens.
func (a *Alphabet) Decode(symbols []int) ([]string, error) {
	tokens := make([]string, len(symbols))
	for pos, symbol := range symbols {
		tok, err := a.Token(symbol)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", pos, err)
		}
		tokens[pos] = tok
	}
	return tokens, nil
}

// UnknownTokenError reports a token that an Alphabet cannot encode.
type UnknownTokenError struct {
	Position int
	Token    string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown token %q at position %d", e.Token, e.Position)
}
