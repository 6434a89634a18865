package boa

import "fmt"

// Compile generates the instruction sequence that leaves the value of node in
// rax, starting from an empty environment at FirstSlot.
func Compile(node Expr) ([]Instr, error) {
	return CompileExpr(node, FirstSlot, NewEnv())
}

// CompileExpr compiles e with si as the next free stack slot and env as the
// bindings in scope. Neither argument is modified: nested scopes get their
// own extended copies, and every temporary or binding takes a slot at or
// above si, so nothing live below si is ever overwritten.
func CompileExpr(e Expr, si int32, env Env) ([]Instr, error) {
	switch n := e.(type) {
	case *NumberExpr:
		return []Instr{Mov(RegVal(RAX), ImmVal(n.Value))}, nil

	case *IdentExpr:
		slot, ok := env.Lookup(n.Name)
		if !ok {
			return nil, NewUnboundIdentifierError(n.Name, n.GetSpan().Start)
		}
		return []Instr{Mov(RegVal(RAX), SlotVal(slot))}, nil

	case *UnaryOp:
		instrs, err := CompileExpr(n.Operand, si, env)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case OpIncrement:
			return append(instrs, Add(RegVal(RAX), ImmVal(1))), nil
		case OpDecrement:
			return append(instrs, Sub(RegVal(RAX), ImmVal(1))), nil
		}
		return nil, fmt.Errorf("unknown unary operator %d", n.Op)

	case *BinaryOp:
		return compileBinary(n, si, env)

	case *LetExpr:
		return compileLet(n, si, env)
	}
	return nil, fmt.Errorf("cannot compile %T", e)
}

// compileBinary saves the left operand in slot si while the right operand is
// computed with si+1, then combines the two into rax as left OP right.
func compileBinary(n *BinaryOp, si int32, env Env) ([]Instr, error) {
	left, err := CompileExpr(n.Left, si, env)
	if err != nil {
		return nil, err
	}
	right, err := CompileExpr(n.Right, si+1, env)
	if err != nil {
		return nil, err
	}

	saved := SlotVal(si)
	instrs := make([]Instr, 0, len(left)+len(right)+3)
	instrs = append(instrs, left...)
	instrs = append(instrs, Mov(saved, RegVal(RAX)))
	instrs = append(instrs, right...)

	switch n.Op {
	case OpAdd:
		instrs = append(instrs, Add(RegVal(RAX), saved))
	case OpMul:
		instrs = append(instrs, Mul(RegVal(RAX), saved))
	case OpSub:
		// rax holds right: -right + left
		instrs = append(instrs, Neg(RegVal(RAX)), Add(RegVal(RAX), saved))
	default:
		return nil, fmt.Errorf("unknown binary operator %d", n.Op)
	}
	return instrs, nil
}

func compileLet(n *LetExpr, si int32, env Env) ([]Instr, error) {
	if err := checkDuplicates(n.Bindings); err != nil {
		return nil, err
	}

	var instrs []Instr
	for _, b := range n.Bindings {
		value, err := CompileExpr(b.Value, si, env)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, value...)
		instrs = append(instrs, Mov(SlotVal(si), RegVal(RAX)))
		env = env.Extend(b.Name.Value, si)
		si++
	}

	body, err := CompileExpr(n.Body, si, env)
	if err != nil {
		return nil, err
	}
	return append(instrs, body...), nil
}

// checkDuplicates rejects a binding list that names the same identifier
// twice, reporting the second occurrence.
func checkDuplicates(bindings []*Binding) error {
	seen := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		if _, ok := seen[b.Name.Value]; ok {
			return NewDuplicateBindingError(b.Name.Value, b.Name.Loc)
		}
		seen[b.Name.Value] = struct{}{}
	}
	return nil
}

// StackDepth returns the highest stack slot touched by instrs, or 0 if none.
func StackDepth(instrs []Instr) int32 {
	var depth int32
	for _, instr := range instrs {
		for _, v := range []Val{instr.Dst, instr.Src} {
			if slot, ok := v.Slot(); ok && slot > depth {
				depth = slot
			}
		}
	}
	return depth
}
