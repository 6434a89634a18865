package boa

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Expr is an immutable node of the expression tree. Nodes are built once by
// the parser and never modified afterwards.
type Expr interface {
	GetToken() *Token
	GetSpan() Span
	String() string
	exprNode() // dummy method
}

type UnaryOperator int

const (
	OpIncrement UnaryOperator = iota
	OpDecrement
)

func (o UnaryOperator) String() string {
	return []string{"add1", "sub1"}[o]
}

func (o UnaryOperator) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
)

func (o BinaryOperator) String() string {
	return []string{"+", "-", "*"}[o]
}

func (o BinaryOperator) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Visitor pattern for traversing the AST.
type Visitor interface {
	Visit(node Expr)
}

// WalkFunc is a function that can be used as a visitor.
type WalkFunc func(node Expr)

func (f WalkFunc) Visit(node Expr) {
	f(node)
}

// Walk visits node and then its children in source order.
func Walk(node Expr, visitor Visitor) {
	if node == nil {
		return
	}

	visitor.Visit(node)

	switch n := node.(type) {
	case *UnaryOp:
		Walk(n.Operand, visitor)
	case *BinaryOp:
		Walk(n.Left, visitor)
		Walk(n.Right, visitor)
	case *LetExpr:
		for _, b := range n.Bindings {
			Walk(b.Value, visitor)
		}
		Walk(n.Body, visitor)
	}
}

// NumberExpr is an integer literal.
//
//	42  ->  NumberExpr{Value: 42}
type NumberExpr struct {
	Token *Token
	Value int32
}

func (e *NumberExpr) GetToken() *Token { return e.Token }
func (e *NumberExpr) GetSpan() Span    { return tokenSpan(e.Token) }
func (e *NumberExpr) String() string   { return fmt.Sprintf("%d", e.Value) }
func (e *NumberExpr) exprNode()        {}
func (e *NumberExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type  string `json:"type"`
		Value int32  `json:"value"`
		Loc   Loc    `json:"loc"`
	}{
		Type:  "Number",
		Value: e.Value,
		Loc:   e.GetSpan().Start,
	})
}

// IdentExpr is a reference to a let-bound name.
type IdentExpr struct {
	Token *Token
	Name  string
}

func (e *IdentExpr) GetToken() *Token { return e.Token }
func (e *IdentExpr) GetSpan() Span    { return tokenSpan(e.Token) }
func (e *IdentExpr) String() string   { return e.Name }
func (e *IdentExpr) exprNode()        {}
func (e *IdentExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Loc  Loc    `json:"loc"`
	}{
		Type: "Identifier",
		Name: e.Name,
		Loc:  e.GetSpan().Start,
	})
}

// UnaryOp is (add1 e) or (sub1 e). Token is the operator symbol.
type UnaryOp struct {
	Token   *Token
	Op      UnaryOperator
	Operand Expr
	Span    Span
}

func (e *UnaryOp) GetToken() *Token { return e.Token }
func (e *UnaryOp) GetSpan() Span    { return e.Span }
func (e *UnaryOp) String() string   { return fmt.Sprintf("(%s %s)", e.Op, e.Operand) }
func (e *UnaryOp) exprNode()        {}
func (e *UnaryOp) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type    string        `json:"type"`
		Op      UnaryOperator `json:"op"`
		Operand Expr          `json:"operand"`
	}{
		Type:    "UnaryOp",
		Op:      e.Op,
		Operand: e.Operand,
	})
}

// BinaryOp is (op Left Right).
//
//	(- 10 4)
//	 ^ ^^ ^
//	 | |  Right
//	 | Left
//	 Op
type BinaryOp struct {
	Token *Token
	Op    BinaryOperator
	Left  Expr
	Right Expr
	Span  Span
}

func (e *BinaryOp) GetToken() *Token { return e.Token }
func (e *BinaryOp) GetSpan() Span    { return e.Span }
func (e *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op, e.Left, e.Right)
}
func (e *BinaryOp) exprNode() {}
func (e *BinaryOp) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type  string         `json:"type"`
		Op    BinaryOperator `json:"op"`
		Left  Expr           `json:"left"`
		Right Expr           `json:"right"`
	}{
		Type:  "BinaryOp",
		Op:    e.Op,
		Left:  e.Left,
		Right: e.Right,
	})
}

// Binding is one (name expr) pair of a let.
type Binding struct {
	Name  *Token
	Value Expr
	Span  Span
}

func (b *Binding) String() string { return fmt.Sprintf("(%s %s)", b.Name.Value, b.Value) }
func (b *Binding) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name  string `json:"name"`
		Value Expr   `json:"value"`
	}{
		Name:  b.Name.Value,
		Value: b.Value,
	})
}

// LetExpr binds names in written order, each visible to the bindings after
// it and to Body.
type LetExpr struct {
	Token    *Token
	Bindings []*Binding
	Body     Expr
	Span     Span
}

func (e *LetExpr) GetToken() *Token { return e.Token }
func (e *LetExpr) GetSpan() Span    { return e.Span }
func (e *LetExpr) String() string {
	parts := make([]string, len(e.Bindings))
	for i, b := range e.Bindings {
		parts[i] = b.String()
	}
	return fmt.Sprintf("(let (%s) %s)", strings.Join(parts, " "), e.Body)
}
func (e *LetExpr) exprNode() {}
func (e *LetExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type     string     `json:"type"`
		Bindings []*Binding `json:"bindings"`
		Body     Expr       `json:"body"`
	}{
		Type:     "Let",
		Bindings: e.Bindings,
		Body:     e.Body,
	})
}

func tokenSpan(tok *Token) Span {
	if tok == nil {
		return Span{}
	}
	return Span{Start: tok.Loc, End: tok.Loc}
}
