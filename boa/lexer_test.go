package boa

import (
	"strings"
	"testing"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := NewLexer("test.boa", src).Tokenize()
	if err.IsErr() {
		t.Fatalf("Tokenize(%q) failed: %v", src, err.Err)
	}
	return tokens
}

func TestLexer_Tokens(t *testing.T) {
	tokens := tokenize(t, "(+ 1 -2)")

	expected := []struct {
		kind  TokenType
		value string
		col   int
	}{
		{TokenLParen, "(", 1},
		{TokenSymbol, "+", 2},
		{TokenInt, "1", 4},
		{TokenInt, "-2", 6},
		{TokenRParen, ")", 8},
		{TokenEOF, "", 9},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, exp := range expected {
		tok := tokens[i]
		if tok.Kind != exp.kind || tok.Value != exp.value {
			t.Errorf("token %d: expected %s %q, got %s %q", i, exp.kind, exp.value, tok.Kind, tok.Value)
		}
		if tok.Loc.ColStart != exp.col {
			t.Errorf("token %d (%q): expected column %d, got %d", i, tok.Value, exp.col, tok.Loc.ColStart)
		}
	}

	if end := tokens[3].Loc.End(); end != 7 {
		t.Errorf("expected -2 to end at column 7, got %d", end)
	}
}

func TestLexer_SymbolsAndSigns(t *testing.T) {
	tests := []struct {
		src  string
		kind TokenType
	}{
		{"-", TokenSymbol},
		{"-x", TokenSymbol},
		{"add1", TokenSymbol},
		{"my-var", TokenSymbol},
		{"42", TokenInt},
		{"+7", TokenInt},
		{"12ab", TokenInt},
	}
	for _, tt := range tests {
		tokens := tokenize(t, tt.src)
		if tokens[0].Kind != tt.kind || tokens[0].Value != tt.src {
			t.Errorf("%q: expected %s, got %s %q", tt.src, tt.kind, tokens[0].Kind, tokens[0].Value)
		}
	}
}

func TestLexer_LinesAndComments(t *testing.T) {
	src := "; leading comment\n(let ((x 1)) ; trailing\n  x)"
	tokens := tokenize(t, src)

	var x *Token
	for i := range tokens {
		if tokens[i].Value == "x" && tokens[i].Loc.Line == 3 {
			x = &tokens[i]
		}
	}
	if x == nil {
		t.Fatalf("expected an x token on line 3, got %v", tokens)
	}
	if x.Loc.ColStart != 3 {
		t.Errorf("expected x at column 3, got %d", x.Loc.ColStart)
	}
	if tokens[0].Kind != TokenLParen || tokens[0].Loc.Line != 2 {
		t.Errorf("expected the comment to be skipped, first token is %v at %s", tokens[0], tokens[0].Loc)
	}
	for _, tok := range tokens {
		if tok.Value == "trailing" || tok.Value == ";" {
			t.Errorf("comment text leaked into tokens: %v", tok)
		}
	}
}

func TestLexer_RejectsStrings(t *testing.T) {
	_, err := NewLexer("test.boa", `(+ "a" 1)`).Tokenize()
	if !err.IsErr() {
		t.Fatal("expected a lexer error for a string literal")
	}
	if !IsErrorType(err.Err, ErrorLexer) {
		t.Errorf("expected LexerError, got %v", err.Err)
	}
}

func TestLexer_Empty(t *testing.T) {
	tokens := tokenize(t, "   \n\t")
	if len(tokens) != 1 || tokens[0].Kind != TokenEOF {
		t.Errorf("expected only EOF, got %v", tokens)
	}
}

func TestLexer_NonASCIIIdentifiers(t *testing.T) {
	// à ends in byte 0xA0 and Å in 0x85, both spaces when read as Latin-1
	tokens := tokenize(t, "(+ xà xÅ)")

	expected := []struct {
		value    string
		col, end int
	}{
		{"(", 1, 1},
		{"+", 2, 2},
		{"xà", 4, 5},
		{"xÅ", 7, 8},
		{")", 9, 9},
	}
	if len(tokens) != len(expected)+1 {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected)+1, len(tokens), tokens)
	}
	for i, exp := range expected {
		tok := tokens[i]
		if tok.Value != exp.value || tok.Loc.ColStart != exp.col || tok.Loc.End() != exp.end {
			t.Errorf("token %d: expected %q at %d-%d, got %q at %d-%d",
				i, exp.value, exp.col, exp.end, tok.Value, tok.Loc.ColStart, tok.Loc.End())
		}
	}
	if tokens[2].Kind != TokenSymbol {
		t.Errorf("expected a symbol, got %s", tokens[2].Kind)
	}
}

func TestLexer_SignBeforeNonASCII(t *testing.T) {
	tokens := tokenize(t, "-é")
	if tokens[0].Kind != TokenSymbol || tokens[0].Value != "-é" {
		t.Errorf("expected symbol -é, got %v", tokens[0])
	}
}

func TestLexer_RejectsInvalidUTF8(t *testing.T) {
	for _, src := range []string{"x\xc3", "(+ 1 \xff)", "\x85"} {
		_, err := NewLexer("test.boa", src).Tokenize()
		if !err.IsErr() || !IsErrorType(err.Err, ErrorLexer) {
			t.Errorf("%q: expected a LexerError, got %v", src, err.Err)
			continue
		}
		if !strings.Contains(err.Err.Error(), "Invalid UTF-8") {
			t.Errorf("%q: unexpected message %q", src, err.Err.Error())
		}
	}
}
