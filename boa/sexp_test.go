package boa

import (
	"strings"
	"testing"
)

func TestReader_Read(t *testing.T) {
	res := ReadSource("test.boa", "(let ((x 5))\n  (add1 x))")
	if res.IsErr() {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	list, ok := res.Value.(*List)
	if !ok {
		t.Fatalf("expected a list, got %T", res.Value)
	}
	if len(list.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(list.Items))
	}
	if got := list.String(); got != "(let ((x 5)) (add1 x))" {
		t.Errorf("unexpected tree %q", got)
	}

	span := list.GetSpan()
	if span.Start.Line != 1 || span.Start.ColStart != 1 {
		t.Errorf("expected the list to start at 1:1, got %s", span.Start)
	}
	if span.End.Line != 2 || span.End.ColStart != 11 {
		t.Errorf("expected the list to end at 2:11, got %s", span.End)
	}
}

func TestReader_Atom(t *testing.T) {
	res := ReadSource("test.boa", "  -17  ")
	if res.IsErr() {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	atom, ok := res.Value.(*Atom)
	if !ok || !atom.IsInt() || atom.String() != "-17" {
		t.Errorf("expected integer atom -17, got %#v", res.Value)
	}
}

func TestReader_Errors(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{"", "empty program"},
		{"; only a comment", "empty program"},
		{"(+ 1 2", "unclosed '('"},
		{"((x)", "unclosed '('"},
		{")", "unexpected ')'"},
		{"1 2", "unexpected trailing '2'"},
		{"(add1 1))", "unexpected trailing ')'"},
	}
	for _, tt := range tests {
		res := ReadSource("test.boa", tt.src)
		if !res.IsErr() {
			t.Errorf("%q: expected an error, got %s", tt.src, res.Value)
			continue
		}
		if !IsErrorType(res.Err, ErrorSyntax) {
			t.Errorf("%q: expected SyntaxError, got %v", tt.src, res.Err)
		}
		if !strings.Contains(res.Err.Error(), tt.message) {
			t.Errorf("%q: expected message containing %q, got %q", tt.src, tt.message, res.Err.Error())
		}
	}
}
