package token

import "strings"

// Stream is a mutable, ordered token sequence; concatenated texts form the source
type Stream struct {
	tokens []Token
}

// NewStream creates a stream over tokens
func NewStream(tokens []Token) *Stream {
	return &Stream{tokens: tokens}
}

// Len returns number of tokens
func (s *Stream) Len() int {
	return len(s.tokens)
}

// At returns the token at index i
func (s *Stream) At(i int) Token {
	return s.tokens[i]
}

// Tokens returns the underlying tokens
func (s *Stream) Tokens() []Token {
	return s.tokens
}

// ReplaceAt replaces the token at index i
func (s *Stream) ReplaceAt(i int, tok Token) {
	s.tokens[i] = tok
}

// RemoveRange removes tokens in [i, j)
func (s *Stream) RemoveRange(i, j int) {
	if i >= j {
		return
	}
	s.tokens = append(s.tokens[:i], s.tokens[j:]...)
}

// InsertBefore inserts tokens in front of index i
func (s *Stream) InsertBefore(i int, tokens ...Token) {
	if len(tokens) == 0 {
		return
	}
	updated := make([]Token, 0, len(s.tokens)+len(tokens))
	updated = append(updated, s.tokens[:i]...)
	updated = append(updated, tokens...)
	updated = append(updated, s.tokens[i:]...)
	s.tokens = updated
}

// Render concatenates token texts back into source
func (s *Stream) Render() string {
	size := 0
	for _, tok := range s.tokens {
		size += len(tok.Text)
	}
	builder := strings.Builder{}
	builder.Grow(size)
	for _, tok := range s.tokens {
		builder.WriteString(tok.Text)
	}
	return builder.String()
}
