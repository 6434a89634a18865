package boa

import (
	"fmt"
	"strings"
)

type ParamDoc struct {
	Name        string
	Description string
}

// KeywordDoc documents one reserved form of the language.
type KeywordDoc struct {
	Keyword     string
	Signature   string
	Description string
	Params      []ParamDoc
	Example     string
	Result      string
}

func NewKeywordDoc(keyword, signature, description string, params []ParamDoc, example, result string) *KeywordDoc {
	return &KeywordDoc{
		Keyword:     keyword,
		Signature:   signature,
		Description: description,
		Params:      params,
		Example:     example,
		Result:      result,
	}
}

// Markdown renders the doc for editor hovers.
func (d *KeywordDoc) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "```boa\n%s\n```\n\n%s\n", d.Signature, d.Description)
	if len(d.Params) > 0 {
		b.WriteString("\n")
		for _, p := range d.Params {
			fmt.Fprintf(&b, "- `%s`: %s\n", p.Name, p.Description)
		}
	}
	if d.Example != "" {
		fmt.Fprintf(&b, "\nExample: `%s` evaluates to `%s`\n", d.Example, d.Result)
	}
	return b.String()
}

var KeywordDocs = map[string]*KeywordDoc{
	"let": NewKeywordDoc(
		"let",
		"(let ((name expr)+) body)",
		"Binds each name to the value of its expression, in written order, then evaluates the body. "+
			"A binding is visible to the bindings after it and to the body, and shadows an outer binding of the same name. "+
			"A name may appear only once per binding list.",
		[]ParamDoc{
			{"name", "An identifier that is not a reserved word."},
			{"expr", "The value stored in the binding's stack slot."},
			{"body", "The expression whose value the let produces."},
		},
		"(let ((x 5) (y (+ x 1))) (* x y))",
		"30",
	),
	"add1": NewKeywordDoc(
		"add1",
		"(add1 expr)",
		"Adds one to the value of the operand.",
		[]ParamDoc{{"expr", "The operand."}},
		"(add1 5)",
		"6",
	),
	"sub1": NewKeywordDoc(
		"sub1",
		"(sub1 expr)",
		"Subtracts one from the value of the operand.",
		[]ParamDoc{{"expr", "The operand."}},
		"(sub1 5)",
		"4",
	),
	"+": NewKeywordDoc(
		"+",
		"(+ left right)",
		"Adds the two operands.",
		[]ParamDoc{{"left", "First operand."}, {"right", "Second operand."}},
		"(+ 1 2)",
		"3",
	),
	"-": NewKeywordDoc(
		"-",
		"(- left right)",
		"Subtracts right from left.",
		[]ParamDoc{{"left", "The minuend."}, {"right", "The subtrahend."}},
		"(- 10 4)",
		"6",
	),
	"*": NewKeywordDoc(
		"*",
		"(* left right)",
		"Multiplies the two operands.",
		[]ParamDoc{{"left", "First factor."}, {"right", "Second factor."}},
		"(* 3 4)",
		"12",
	),
}
