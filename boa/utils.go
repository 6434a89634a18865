package boa

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("boa")

// Unit is one compiled source file.
type Unit struct {
	Name   string
	Source string
	Expr   Expr
	Instrs []Instr
}

// CompileSource runs the whole pipeline over source. On failure no partial
// instruction list is returned.
func CompileSource(srcName, source string) (*Unit, error) {
	parsed := ParseSource(srcName, source)
	if parsed.IsErr() {
		return nil, parsed.Err
	}

	instrs, err := Compile(parsed.Value)
	if err != nil {
		return nil, err
	}

	return &Unit{Name: srcName, Source: source, Expr: parsed.Value, Instrs: instrs}, nil
}

// CompileFile reads and compiles the file at path. The source is returned
// even when compilation fails so callers can show the error in context.
func CompileFile(path string) (*Unit, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("error reading file: %w", err)
	}
	source := string(data)

	start := time.Now()
	unit, err := CompileSource(path, source)
	if err != nil {
		log.Debugf("compiling %s failed after %s: %v", path, time.Since(start), err)
		return nil, source, err
	}
	log.Infof("compiled %s: %d instructions, %d stack slots in %s",
		path, len(unit.Instrs), StackDepth(unit.Instrs), time.Since(start))
	return unit, source, nil
}

// Run executes the unit on vm and returns the accumulator.
func (u *Unit) Run(vm *VM) (int64, error) {
	res := vm.Interpret(u.Instrs)
	if res.IsErr() {
		return 0, res.Err
	}
	return res.Value, nil
}

// Emit renders the unit in the given output mode.
func (u *Unit) Emit(mode string) (string, error) {
	switch mode {
	case EmitAsm, "":
		return RenderProgram(u.Instrs), nil
	case EmitListing:
		return Disassemble(u.Instrs), nil
	case EmitAST:
		data, err := json.MarshalIndent(u.Expr, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}
	return "", fmt.Errorf("unknown emit mode %q", mode)
}

// Disassemble lists instructions with their index and, for stack operands,
// the slot they touch.
func Disassemble(instrs []Instr) string {
	var parts []string

	parts = append(parts, "--------- Instructions ---------\n")
	if len(instrs) == 0 {
		parts = append(parts, "Instruction list is empty.\n")
	}
	for i, instr := range instrs {
		line := fmt.Sprintf("%04d: %-24s", i, InstrToString(instr))
		for _, v := range []Val{instr.Dst, instr.Src} {
			if slot, ok := v.Slot(); ok {
				line += fmt.Sprintf(" ; slot %d", slot)
			}
		}
		parts = append(parts, strings.TrimRight(line, " ")+"\n")
	}
	parts = append(parts, fmt.Sprintf("\nhighest stack slot: %d\n", StackDepth(instrs)))

	return strings.Join(parts, "")
}
