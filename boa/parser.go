package boa

import (
	"errors"
	"fmt"
	"strconv"
)

// Parser turns a token tree into an expression tree. It only validates
// shape: scope problems are reported by the compiler.
type Parser struct {
	root Sexp
}

func NewParser(root Sexp) *Parser {
	return &Parser{root: root}
}

func (p *Parser) Parse() Result[Expr] {
	if p.root == nil {
		return ResErr[Expr](NewSyntaxError("Invalid: empty program", Loc{}))
	}
	return p.expr(p.root)
}

// ParseSource runs the lexer, reader and parser over a complete source unit.
func ParseSource(srcName, source string) Result[Expr] {
	tree := ReadSource(srcName, source)
	if tree.IsErr() {
		return ResErr[Expr](tree.Err)
	}
	return NewParser(tree.Value).Parse()
}

func syntaxErr[T any](loc Loc, format string, args ...any) Result[T] {
	return ResErr[T](NewSyntaxError(fmt.Sprintf(format, args...), loc))
}

func (p *Parser) expr(s Sexp) Result[Expr] {
	switch n := s.(type) {
	case *Atom:
		return p.atom(n)
	case *List:
		return p.list(n)
	}
	return syntaxErr[Expr](s.GetSpan().Start, "Invalid")
}

func (p *Parser) atom(a *Atom) Result[Expr] {
	tok := a.Token
	if a.IsInt() {
		value, err := strconv.ParseInt(tok.Value, 10, 32)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return syntaxErr[Expr](tok.Loc, "Invalid: number %s does not fit in 32 bits", tok.Value)
			}
			return syntaxErr[Expr](tok.Loc, "Invalid: malformed number %q", tok.Value)
		}
		return ResOk[Expr](&NumberExpr{Token: &tok, Value: int32(value)})
	}
	if IsKeyword(tok.Value) {
		return syntaxErr[Expr](tok.Loc, "Invalid: reserved word %q used as an identifier", tok.Value)
	}
	return ResOk[Expr](&IdentExpr{Token: &tok, Name: tok.Value})
}

func (p *Parser) list(l *List) Result[Expr] {
	if len(l.Items) == 0 {
		return syntaxErr[Expr](l.Open.Loc, "Invalid: empty expression ()")
	}
	head, ok := l.Items[0].(*Atom)
	if !ok || head.IsInt() {
		return syntaxErr[Expr](l.Items[0].GetSpan().Start, "Invalid: expected an operator, found %s", l.Items[0])
	}
	opTok := head.Token
	args := l.Items[1:]

	switch opTok.Value {
	case "add1", "sub1":
		if len(args) != 1 {
			return syntaxErr[Expr](opTok.Loc, "Invalid: %s expects exactly one operand, got %d", opTok.Value, len(args))
		}
		operand := p.expr(args[0])
		if operand.IsErr() {
			return operand
		}
		op := OpIncrement
		if opTok.Value == "sub1" {
			op = OpDecrement
		}
		return ResOk[Expr](&UnaryOp{Token: &opTok, Op: op, Operand: operand.Value, Span: l.GetSpan()})

	case "+", "-", "*":
		if len(args) != 2 {
			return syntaxErr[Expr](opTok.Loc, "Invalid: %s expects exactly two operands, got %d", opTok.Value, len(args))
		}
		left := p.expr(args[0])
		if left.IsErr() {
			return left
		}
		right := p.expr(args[1])
		if right.IsErr() {
			return right
		}
		return ResOk[Expr](&BinaryOp{
			Token: &opTok,
			Op:    binaryOperators[opTok.Value],
			Left:  left.Value,
			Right: right.Value,
			Span:  l.GetSpan(),
		})

	case "let":
		return p.let(l, opTok, args)
	}

	return syntaxErr[Expr](opTok.Loc, "Invalid: unknown form %q", opTok.Value)
}

var binaryOperators = map[string]BinaryOperator{
	"+": OpAdd,
	"-": OpSub,
	"*": OpMul,
}

func (p *Parser) let(l *List, letTok Token, args []Sexp) Result[Expr] {
	if len(args) != 2 {
		return syntaxErr[Expr](letTok.Loc, "Invalid: let expects a binding list and a body")
	}
	bindList, ok := args[0].(*List)
	if !ok {
		return syntaxErr[Expr](args[0].GetSpan().Start, "Invalid: let bindings must be a list")
	}
	if len(bindList.Items) == 0 {
		return syntaxErr[Expr](bindList.Open.Loc, "Invalid: let requires at least one binding")
	}

	bindings := make([]*Binding, 0, len(bindList.Items))
	for _, item := range bindList.Items {
		b := p.binding(item)
		if b.IsErr() {
			return ResErr[Expr](b.Err)
		}
		bindings = append(bindings, b.Value)
	}

	body := p.expr(args[1])
	if body.IsErr() {
		return body
	}
	return ResOk[Expr](&LetExpr{Token: &letTok, Bindings: bindings, Body: body.Value, Span: l.GetSpan()})
}

// binding parses (<identifier> <expr>).
func (p *Parser) binding(s Sexp) Result[*Binding] {
	l, ok := s.(*List)
	if !ok || len(l.Items) != 2 {
		return syntaxErr[*Binding](s.GetSpan().Start, "Invalid: binding must have the form (name expr)")
	}
	name, ok := l.Items[0].(*Atom)
	if !ok || name.IsInt() {
		return syntaxErr[*Binding](l.Items[0].GetSpan().Start, "Invalid: binding name must be an identifier")
	}
	if IsKeyword(name.Token.Value) {
		return syntaxErr[*Binding](name.Token.Loc, "Invalid: reserved word %q cannot be bound", name.Token.Value)
	}
	value := p.expr(l.Items[1])
	if value.IsErr() {
		return ResErr[*Binding](value.Err)
	}
	nameTok := name.Token
	return ResOk(&Binding{Name: &nameTok, Value: value.Value, Span: l.GetSpan()})
}
