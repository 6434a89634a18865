package boa

import (
	"fmt"
	"slices"
)

type TokenType int

// KeywordConsts are the reserved words of the surface language. None of
// them may be used as a plain identifier.
var KeywordConsts = []string{
	"let", "add1", "sub1", "+", "-", "*",
}

func IsKeyword(s string) bool {
	return slices.Contains(KeywordConsts, s)
}

func GetAllKeywords() []string {
	return KeywordConsts
}

const (
	TokenInt TokenType = iota
	TokenSymbol
	TokenLParen
	TokenRParen
	TokenEOF
)

func (t TokenType) String() string {
	return []string{
		"TokenInt",
		"TokenSymbol",
		"TokenLParen",
		"TokenRParen",
		"TokenEOF",
	}[t]
}

type Loc struct {
	FileName string `json:"fileName"`
	Line     int    `json:"line"`
	ColStart int    `json:"colStart"`
	ColEnd   *int   `json:"colEnd,omitempty"`
}

func NewLoc(fileName string, line, colStart int, colEnd *int) Loc {
	return Loc{
		FileName: fileName,
		Line:     line,
		ColStart: colStart,
		ColEnd:   colEnd,
	}
}

func (l Loc) String() string {
	if l.ColEnd != nil && *l.ColEnd != l.ColStart {
		return fmt.Sprintf("%d:%d-%d", l.Line, l.ColStart, *l.ColEnd)
	}
	return fmt.Sprintf("%d:%d", l.Line, l.ColStart)
}

// End returns the last column covered by the location.
func (l Loc) End() int {
	if l.ColEnd != nil {
		return *l.ColEnd
	}
	return l.ColStart
}

// Before reports whether l starts before other in the source.
func (l Loc) Before(other Loc) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.ColStart < other.ColStart
}

// Span covers a node from its first token to its last one.
type Span struct {
	Start Loc `json:"start"`
	End   Loc `json:"end"`
}

// Contains reports whether the 1-based position line:col falls inside the span.
func (s Span) Contains(line, col int) bool {
	if line < s.Start.Line || line > s.End.Line {
		return false
	}
	if line == s.Start.Line && col < s.Start.ColStart {
		return false
	}
	if line == s.End.Line && col > s.End.End() {
		return false
	}
	return true
}

type Token struct {
	Kind  TokenType `json:"kind"`
	Value string    `json:"value"`
	Loc   Loc       `json:"loc"`
}

func NewToken(kind TokenType, value string, loc Loc) Token {
	return Token{
		Kind:  kind,
		Value: value,
		Loc:   loc,
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s", t.Kind, t.Value)
}
