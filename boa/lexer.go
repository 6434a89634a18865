package boa

import (
	"unicode"
	"unicode/utf8"
)

// Lexer walks the source one rune at a time. Columns count runes, not
// bytes.
type Lexer struct {
	source    string
	srcName   string
	currIdx   int
	currChar  rune
	currWidth int
	line      int
	col       int
	tokens    []Token
}

func NewLexer(srcName, source string) *Lexer {
	l := &Lexer{
		source:  source,
		srcName: srcName,
		currIdx: 0,
		line:    1,
		col:     1,
		tokens:  make([]Token, 0),
	}

	l.decode()
	return l
}

// decode loads the rune starting at currIdx.
func (l *Lexer) decode() {
	if l.currIdx < len(l.source) {
		l.currChar, l.currWidth = utf8.DecodeRuneInString(l.source[l.currIdx:])
	} else {
		l.currChar, l.currWidth = 0, 0
	}
}

func (l *Lexer) advance() {
	if l.currChar == '\n' {
		l.line++
		l.col = 0
	}
	l.currIdx += l.currWidth
	l.decode()
	l.col++
}

func (l *Lexer) hasChar() bool {
	return l.currIdx < len(l.source)
}

// peek returns the rune offset positions past the current one.
func (l *Lexer) peek(offset int) rune {
	idx := l.currIdx
	for ; offset > 0 && idx < len(l.source); offset-- {
		_, width := utf8.DecodeRuneInString(l.source[idx:])
		idx += width
	}
	if idx < len(l.source) {
		r, _ := utf8.DecodeRuneInString(l.source[idx:])
		return r
	}
	return 0
}

// invalidEncoding reports a byte that does not start a valid UTF-8 rune.
func (l *Lexer) invalidEncoding() bool {
	return l.currChar == utf8.RuneError && l.currWidth == 1
}

func (l *Lexer) getLoc(colStart *int) Loc {
	actualColStart := l.col
	if colStart != nil {
		actualColStart = *colStart
	}

	var colEnd *int
	if colStart != nil {
		end := l.col - 1
		colEnd = &end
	}
	return NewLoc(l.srcName, l.line, actualColStart, colEnd)
}

func (l *Lexer) addToken(kind TokenType, value string, loc Loc) {
	l.tokens = append(l.tokens, NewToken(kind, value, loc))
}

func (l *Lexer) createError(msg string, loc Loc) Result[Token] {
	return ResErr[Token](NewLexerError(msg, loc))
}

// skipComment consumes a ';' comment up to the end of the line.
func (l *Lexer) skipComment() bool {
	if l.currChar != ';' {
		return false
	}
	for l.hasChar() && l.currChar != '\n' {
		l.advance()
	}
	return true
}

func isDelimiter(c rune) bool {
	return c == '(' || c == ')' || c == ';' || unicode.IsSpace(c)
}

// startsNumber reports whether the atom beginning at the current character
// is numeric: a digit, or a sign directly followed by a digit.
func (l *Lexer) startsNumber() bool {
	if unicode.IsDigit(l.currChar) {
		return true
	}
	return (l.currChar == '-' || l.currChar == '+') && unicode.IsDigit(l.peek(1))
}

// Tokenize splits the source into parentheses and atoms. Numeric atoms keep
// their raw text; range and shape checks belong to the AST builder.
func (l *Lexer) Tokenize() ([]Token, Result[Token]) {
	for l.hasChar() {
		if l.invalidEncoding() {
			return nil, l.createError("Invalid UTF-8 in source", l.getLoc(nil))
		}
		if unicode.IsSpace(l.currChar) {
			l.advance()
			continue
		}

		if l.skipComment() {
			continue
		}

		switch l.currChar {
		case '(':
			l.addToken(TokenLParen, "(", l.getLoc(nil))
			l.advance()
			continue
		case ')':
			l.addToken(TokenRParen, ")", l.getLoc(nil))
			l.advance()
			continue
		case '"':
			return nil, l.createError("String literals are not supported", l.getLoc(nil))
		}

		kind := TokenSymbol
		if l.startsNumber() {
			kind = TokenInt
		}
		if res := l.atom(kind); res.IsErr() {
			return nil, res
		}
	}

	l.addToken(TokenEOF, "", l.getLoc(nil))
	return l.tokens, Result[Token]{}
}

func (l *Lexer) atom(kind TokenType) Result[Token] {
	startCol := l.col
	startIdx := l.currIdx
	for l.hasChar() && !isDelimiter(l.currChar) {
		if l.currChar == '"' {
			return l.createError("String literals are not supported", l.getLoc(nil))
		}
		if l.invalidEncoding() {
			return l.createError("Invalid UTF-8 in source", l.getLoc(nil))
		}
		l.advance()
	}
	tok := NewToken(kind, l.source[startIdx:l.currIdx], l.getLoc(&startCol))
	l.tokens = append(l.tokens, tok)
	return ResOk(tok)
}
