package boa

import (
	"sort"

	"github.com/benbjohnson/immutable"
)

// Symbol is one let binding together with the slot the compiler gives it.
type Symbol struct {
	Name  string
	Slot  int32
	Def   Loc
	Value Expr
	// Scope is the region in which the binding is visible: the bindings
	// after it in the same let, and the body.
	Scope Span
}

// Reference is an identifier use. Symbol is nil when the name is unbound.
type Reference struct {
	Name   string
	Loc    Loc
	Symbol *Symbol
}

// Analysis is the result of resolving every name in an expression. Unlike
// the compiler it does not stop at the first problem.
type Analysis struct {
	Symbols    []*Symbol
	References []*Reference
	Errors     []Error
}

type scope = *immutable.Map[string, *Symbol]

// Analyze resolves names in e, assigning slots exactly as Compile does.
func Analyze(e Expr) *Analysis {
	a := &Analysis{}
	a.expr(e, FirstSlot, immutable.NewMap[string, *Symbol](nil))
	return a
}

func (a *Analysis) expr(e Expr, si int32, env scope) {
	switch n := e.(type) {
	case *IdentExpr:
		ref := &Reference{Name: n.Name, Loc: n.GetSpan().Start}
		if sym, ok := env.Get(n.Name); ok {
			ref.Symbol = sym
		} else {
			a.Errors = append(a.Errors, NewUnboundIdentifierError(n.Name, ref.Loc))
		}
		a.References = append(a.References, ref)
	case *UnaryOp:
		a.expr(n.Operand, si, env)
	case *BinaryOp:
		a.expr(n.Left, si, env)
		a.expr(n.Right, si+1, env)
	case *LetExpr:
		a.let(n, si, env)
	}
}

func (a *Analysis) let(n *LetExpr, si int32, env scope) {
	seen := make(map[string]bool, len(n.Bindings))
	for i, b := range n.Bindings {
		if seen[b.Name.Value] {
			a.Errors = append(a.Errors, NewDuplicateBindingError(b.Name.Value, b.Name.Loc))
		}
		seen[b.Name.Value] = true

		a.expr(b.Value, si, env)

		visibleFrom := n.Body.GetSpan().Start
		if i+1 < len(n.Bindings) {
			visibleFrom = n.Bindings[i+1].Span.Start
		}
		sym := &Symbol{
			Name:  b.Name.Value,
			Slot:  si,
			Def:   b.Name.Loc,
			Value: b.Value,
			Scope: Span{Start: visibleFrom, End: n.Span.End},
		}
		a.Symbols = append(a.Symbols, sym)
		env = env.Set(b.Name.Value, sym)
		si++
	}
	a.expr(n.Body, si, env)
}

// SymbolsAt returns the bindings visible at line:col, innermost first, with
// shadowed bindings left out.
func (a *Analysis) SymbolsAt(line, col int) []*Symbol {
	var visible []*Symbol
	byName := map[string]int{}
	for _, sym := range a.Symbols {
		if !sym.Scope.Contains(line, col) {
			continue
		}
		if idx, ok := byName[sym.Name]; ok {
			if visible[idx].Scope.Start.Before(sym.Scope.Start) {
				visible[idx] = sym
			}
			continue
		}
		byName[sym.Name] = len(visible)
		visible = append(visible, sym)
	}
	// innermost scopes start last
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[j].Scope.Start.Before(visible[i].Scope.Start)
	})
	return visible
}

// ReferenceAt returns the identifier use covering line:col, if any.
func (a *Analysis) ReferenceAt(line, col int) *Reference {
	for _, ref := range a.References {
		if (Span{Start: ref.Loc, End: ref.Loc}).Contains(line, col) {
			return ref
		}
	}
	return nil
}

// DefinitionAt returns the binding whose name covers line:col, if any.
func (a *Analysis) DefinitionAt(line, col int) *Symbol {
	for _, sym := range a.Symbols {
		if (Span{Start: sym.Def, End: sym.Def}).Contains(line, col) {
			return sym
		}
	}
	return nil
}
