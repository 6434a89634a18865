package boa

import (
	"strings"
)

// Sexp is a node of the generic parenthesized token tree handed to the AST
// builder. It is either an *Atom or a *List.
type Sexp interface {
	GetSpan() Span
	String() string
	sexpNode()
}

// Atom is a single integer or symbol token.
type Atom struct {
	Token Token
}

func (a *Atom) GetSpan() Span  { return Span{Start: a.Token.Loc, End: a.Token.Loc} }
func (a *Atom) String() string { return a.Token.Value }
func (a *Atom) sexpNode()      {}

// IsInt reports whether the atom was lexed as a numeric token.
func (a *Atom) IsInt() bool { return a.Token.Kind == TokenInt }

// List is a parenthesized sequence of items.
type List struct {
	Open  Token
	Items []Sexp
	Close Token
}

func (l *List) GetSpan() Span { return Span{Start: l.Open.Loc, End: l.Close.Loc} }
func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}
func (l *List) sexpNode() {}

// Reader assembles a token stream into a token tree.
type Reader struct {
	tokens  []Token
	currIdx int
}

func NewReader(tokens []Token) *Reader {
	return &Reader{tokens: tokens}
}

// Read expects exactly one datum followed by EOF.
func (r *Reader) Read() Result[Sexp] {
	if r.isAtEnd() {
		return ResErr[Sexp](NewSyntaxError("Invalid: empty program", r.current().Loc))
	}
	res := r.datum()
	if res.IsErr() {
		return res
	}
	if !r.isAtEnd() {
		return ResErr[Sexp](NewSyntaxError("Invalid: unexpected trailing "+describe(*r.current()), r.current().Loc))
	}
	return res
}

func (r *Reader) datum() Result[Sexp] {
	tok := r.advance()
	switch tok.Kind {
	case TokenInt, TokenSymbol:
		return ResOk[Sexp](&Atom{Token: *tok})
	case TokenLParen:
		list := &List{Open: *tok, Items: []Sexp{}}
		for !r.check(TokenRParen) {
			if r.isAtEnd() {
				return ResErr[Sexp](NewSyntaxError("Invalid: unclosed '('", tok.Loc))
			}
			item := r.datum()
			if item.IsErr() {
				return item
			}
			list.Items = append(list.Items, item.Value)
		}
		list.Close = *r.advance()
		return ResOk[Sexp](list)
	case TokenRParen:
		return ResErr[Sexp](NewSyntaxError("Invalid: unexpected ')'", tok.Loc))
	}
	return ResErr[Sexp](NewSyntaxError("Invalid: unexpected "+describe(*tok), tok.Loc))
}

func (r *Reader) check(kind TokenType) bool {
	return r.current().Kind == kind
}

func (r *Reader) advance() *Token {
	tok := r.current()
	if !r.isAtEnd() {
		r.currIdx++
	}
	return tok
}

func (r *Reader) isAtEnd() bool {
	return r.current().Kind == TokenEOF
}

func (r *Reader) current() *Token {
	if r.currIdx >= len(r.tokens) {
		return &Token{Kind: TokenEOF}
	}
	return &r.tokens[r.currIdx]
}

func describe(tok Token) string {
	if tok.Kind == TokenEOF {
		return "end of input"
	}
	return "'" + tok.Value + "'"
}

// ReadSource tokenizes source and reads its single top-level datum.
func ReadSource(srcName, source string) Result[Sexp] {
	tokens, lexErr := NewLexer(srcName, source).Tokenize()
	if lexErr.IsErr() {
		return ResErr[Sexp](lexErr.Err)
	}
	return NewReader(tokens).Read()
}
