package boa

import (
	"fmt"
	"strings"
)

// EntryLabel is the symbol the runtime calls into.
const EntryLabel = "our_code_starts_here"

func ValToString(v Val) string {
	switch v.Kind {
	case ValReg:
		return v.Reg.String()
	case ValImm:
		return fmt.Sprintf("%d", v.Imm)
	case ValRegOffset:
		switch {
		case v.Offset < 0:
			return fmt.Sprintf("[%s - %d]", v.Reg, -int64(v.Offset))
		case v.Offset > 0:
			return fmt.Sprintf("[%s + %d]", v.Reg, v.Offset)
		}
		return fmt.Sprintf("[%s]", v.Reg)
	}
	return "?"
}

func InstrToString(i Instr) string {
	if i.Arity() == 1 {
		return fmt.Sprintf("%s %s", i.Op, ValToString(i.Dst))
	}
	return fmt.Sprintf("%s %s, %s", i.Op, ValToString(i.Dst), ValToString(i.Src))
}

// RenderInstrs prints one instruction per line, indented for the program
// body, without a trailing newline.
func RenderInstrs(instrs []Instr) string {
	lines := make([]string, len(instrs))
	for i, instr := range instrs {
		lines[i] = "  " + InstrToString(instr)
	}
	return strings.Join(lines, "\n")
}

// RenderProgram wraps the instructions in the fixed program template.
func RenderProgram(instrs []Instr) string {
	var b strings.Builder
	b.WriteString("section .text\n")
	fmt.Fprintf(&b, "global %s\n", EntryLabel)
	fmt.Fprintf(&b, "%s:\n", EntryLabel)
	if len(instrs) > 0 {
		b.WriteString(RenderInstrs(instrs))
		b.WriteString("\n")
	}
	b.WriteString("  ret\n")
	return b.String()
}
