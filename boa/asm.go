package boa

import "fmt"

// Reg is a machine register.
type Reg int

const (
	RAX Reg = iota // accumulator
	RSP
)

func (r Reg) String() string {
	switch r {
	case RAX:
		return "rax"
	case RSP:
		return "rsp"
	}
	return fmt.Sprintf("reg%d", int(r))
}

// WordSize is the width in bytes of one stack slot.
const WordSize = 8

type ValKind int

const (
	ValReg ValKind = iota
	ValImm
	ValRegOffset
)

// Val is an instruction operand: a register, an immediate, or a memory word
// at a displacement from a register.
type Val struct {
	Kind   ValKind
	Reg    Reg
	Imm    int32
	Offset int32
}

func RegVal(r Reg) Val { return Val{Kind: ValReg, Reg: r} }

func ImmVal(n int32) Val { return Val{Kind: ValImm, Imm: n} }

func RegOffsetVal(r Reg, offset int32) Val {
	return Val{Kind: ValRegOffset, Reg: r, Offset: offset}
}

// SlotVal addresses stack slot k, which lives 8*k bytes below the stack
// pointer captured at entry.
func SlotVal(slot int32) Val {
	return RegOffsetVal(RSP, -WordSize*slot)
}

// Slot reports the stack slot addressed by v, if it is one.
func (v Val) Slot() (int32, bool) {
	if v.Kind != ValRegOffset || v.Reg != RSP || v.Offset > 0 || v.Offset%WordSize != 0 {
		return 0, false
	}
	return -v.Offset / WordSize, true
}

func (v Val) String() string {
	return ValToString(v)
}

type OpCode int

const (
	IMov OpCode = iota
	IAdd
	ISub
	IMul
	INeg
)

func (o OpCode) String() string {
	names := map[OpCode]string{
		IMov: "mov",
		IAdd: "add",
		ISub: "sub",
		IMul: "imul",
		INeg: "neg",
	}
	if name, ok := names[o]; ok {
		return name
	}
	return fmt.Sprintf("op%d", int(o))
}

// Instr is one target instruction. Src is unused by single-operand ops.
type Instr struct {
	Op  OpCode
	Dst Val
	Src Val
}

func Mov(dst, src Val) Instr { return Instr{Op: IMov, Dst: dst, Src: src} }
func Add(dst, src Val) Instr { return Instr{Op: IAdd, Dst: dst, Src: src} }
func Sub(dst, src Val) Instr { return Instr{Op: ISub, Dst: dst, Src: src} }
func Mul(dst, src Val) Instr { return Instr{Op: IMul, Dst: dst, Src: src} }
func Neg(dst Val) Instr      { return Instr{Op: INeg, Dst: dst} }

// Arity is the number of operands the instruction takes.
func (i Instr) Arity() int {
	if i.Op == INeg {
		return 1
	}
	return 2
}

func (i Instr) String() string {
	return InstrToString(i)
}
