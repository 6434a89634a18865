package boa

import (
	"reflect"
	"strings"
	"testing"
)

func compileLines(t *testing.T, src string) []string {
	t.Helper()
	instrs, err := Compile(parse(t, src))
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", src, err)
	}
	lines := make([]string, len(instrs))
	for i, instr := range instrs {
		lines[i] = InstrToString(instr)
	}
	return lines
}

func TestCompile_Sequences(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{"number", "42", []string{"mov rax, 42"}},
		{"negative", "-7", []string{"mov rax, -7"}},
		{"add1", "(add1 5)", []string{"mov rax, 5", "add rax, 1"}},
		{"sub1", "(sub1 5)", []string{"mov rax, 5", "sub rax, 1"}},
		{"plus", "(+ 1 2)", []string{
			"mov rax, 1",
			"mov [rsp - 16], rax",
			"mov rax, 2",
			"add rax, [rsp - 16]",
		}},
		{"minus", "(- 10 4)", []string{
			"mov rax, 10",
			"mov [rsp - 16], rax",
			"mov rax, 4",
			"neg rax",
			"add rax, [rsp - 16]",
		}},
		{"times", "(* 3 4)", []string{
			"mov rax, 3",
			"mov [rsp - 16], rax",
			"mov rax, 4",
			"imul rax, [rsp - 16]",
		}},
		{"let", "(let ((x 5)) x)", []string{
			"mov rax, 5",
			"mov [rsp - 16], rax",
			"mov rax, [rsp - 16]",
		}},
		{"let two bindings", "(let ((x 5) (y 6)) (+ x y))", []string{
			"mov rax, 5",
			"mov [rsp - 16], rax",
			"mov rax, 6",
			"mov [rsp - 24], rax",
			"mov rax, [rsp - 16]",
			"mov [rsp - 32], rax",
			"mov rax, [rsp - 24]",
			"add rax, [rsp - 32]",
		}},
		{"nested operands", "(+ (+ 1 2) (+ 3 4))", []string{
			"mov rax, 1",
			"mov [rsp - 16], rax",
			"mov rax, 2",
			"add rax, [rsp - 16]",
			"mov [rsp - 16], rax",
			"mov rax, 3",
			"mov [rsp - 24], rax",
			"mov rax, 4",
			"add rax, [rsp - 24]",
			"add rax, [rsp - 16]",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compileLines(t, tt.src)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected:\n%s\ngot:\n%s", strings.Join(tt.expected, "\n"), strings.Join(got, "\n"))
			}
		})
	}
}

func TestCompile_SavedOperandSurvivesRightSide(t *testing.T) {
	instrs, err := Compile(parse(t, "(* (let ((a 2)) (+ a 1)) (let ((b 4)) (- b (+ 1 1))))"))
	if err != nil {
		t.Fatal(err)
	}

	// the last instruction combines rax with the saved left operand
	last := instrs[len(instrs)-1]
	saved, ok := last.Src.Slot()
	if !ok {
		t.Fatalf("expected the final instruction to read a slot, got %s", InstrToString(last))
	}

	storeIdx := -1
	for i, instr := range instrs {
		if instr.Op == IMov {
			if slot, ok := instr.Dst.Slot(); ok && slot == saved {
				storeIdx = i
			}
		}
	}
	if storeIdx < 0 {
		t.Fatalf("no store to slot %d", saved)
	}
	// between the last store of the left value and the combine, nothing may
	// write that slot again
	for i := storeIdx + 1; i < len(instrs)-1; i++ {
		if slot, ok := instrs[i].Dst.Slot(); ok && slot == saved {
			t.Errorf("instruction %d (%s) clobbers the saved operand", i, InstrToString(instrs[i]))
		}
	}
}

func TestCompileExpr_StartSlotAndEnv(t *testing.T) {
	env := NewEnv().Extend("x", 3)

	instrs, err := CompileExpr(parse(t, "x"), 5, env)
	if err != nil {
		t.Fatal(err)
	}
	if len(instrs) != 1 || InstrToString(instrs[0]) != "mov rax, [rsp - 24]" {
		t.Errorf("unexpected code %v", instrs)
	}

	instrs, err = CompileExpr(parse(t, "(+ x 1)"), 5, env)
	if err != nil {
		t.Fatal(err)
	}
	if got := InstrToString(instrs[1]); got != "mov [rsp - 40], rax" {
		t.Errorf("expected the temporary in slot 5, got %q", got)
	}
	if env.Len() != 1 {
		t.Errorf("the caller's environment was modified")
	}
}

func TestCompile_ScopeErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind ErrorType
		name string
	}{
		{"(let ((x 1) (x 2)) x)", ErrorDuplicateBinding, "x"},
		{"(let ((x 1)) (let ((y 2) (z 3) (y 4)) x))", ErrorDuplicateBinding, "y"},
		{"y", ErrorUnboundIdentifier, "y"},
		{"(let ((x 1)) (+ x y))", ErrorUnboundIdentifier, "y"},
		{"(let ((x x)) x)", ErrorUnboundIdentifier, "x"},
		{"(let ((x (add1 y)) (y 1)) x)", ErrorUnboundIdentifier, "y"},
		{"(+ (let ((x 1)) x) x)", ErrorUnboundIdentifier, "x"},
		{"(let ((x 1) (x q)) x)", ErrorDuplicateBinding, "x"},
	}
	for _, tt := range tests {
		instrs, err := Compile(parse(t, tt.src))
		if err == nil {
			t.Errorf("%q: expected %s", tt.src, tt.kind)
			continue
		}
		if instrs != nil {
			t.Errorf("%q: expected no instructions on failure, got %d", tt.src, len(instrs))
		}
		be, ok := err.(*BoaError)
		if !ok {
			t.Errorf("%q: expected *BoaError, got %T", tt.src, err)
			continue
		}
		if be.Type != tt.kind || be.Name != tt.name {
			t.Errorf("%q: expected %s for %q, got %s for %q", tt.src, tt.kind, tt.name, be.Type, be.Name)
		}
	}
}

func TestCompile_DuplicateMessage(t *testing.T) {
	_, err := Compile(parse(t, "(let ((x 1) (x 2)) x)"))
	if err == nil || !strings.Contains(err.Error(), "Duplicate binding") {
		t.Fatalf("expected a duplicate binding error, got %v", err)
	}
	loc := err.(*BoaError).Loc
	if loc.ColStart != 14 {
		t.Errorf("expected the second x (column 14) to be reported, got %s", loc)
	}

	_, err = Compile(parse(t, "(+ 1 y)"))
	if err == nil || !strings.Contains(err.Error(), "Unbound variable identifier y") {
		t.Fatalf("expected an unbound identifier error, got %v", err)
	}
}

func TestCompile_Shadowing(t *testing.T) {
	tests := []string{
		"(let ((x 5)) (let ((x 6)) x))",
		"(let ((x 1) (y 2)) (let ((x 3)) (+ x y)))",
	}
	for _, src := range tests {
		if _, err := Compile(parse(t, src)); err != nil {
			t.Errorf("%q: unexpected error %v", src, err)
		}
	}
}

func TestCompile_Deterministic(t *testing.T) {
	src := "(let ((x 5) (y (+ x 1))) (* (- x y) (let ((x 2)) (add1 x))))"
	expr := parse(t, src)

	first, err := Compile(expr)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Compile(expr)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("compiling the same tree twice gave different instructions")
	}
	if RenderProgram(first) != RenderProgram(compileUnit(t, src).Instrs) {
		t.Error("compiling the same source twice gave different programs")
	}
}

func TestStackDepth(t *testing.T) {
	tests := []struct {
		src   string
		depth int32
	}{
		{"42", 0},
		{"(add1 1)", 0},
		{"(+ 1 2)", 2},
		{"(let ((x 5) (y 6)) (+ x y))", 4},
		{"(+ (+ 1 2) (+ 3 4))", 3},
	}
	for _, tt := range tests {
		instrs, err := Compile(parse(t, tt.src))
		if err != nil {
			t.Fatal(err)
		}
		if got := StackDepth(instrs); got != tt.depth {
			t.Errorf("%q: expected depth %d, got %d", tt.src, tt.depth, got)
		}
	}
}

func compileUnit(t *testing.T, src string) *Unit {
	t.Helper()
	unit, err := CompileSource("test.boa", src)
	if err != nil {
		t.Fatalf("CompileSource(%q) failed: %v", src, err)
	}
	return unit
}

func TestCompile_NonASCIINames(t *testing.T) {
	if got := runSource(t, "(let ((xà 1) (xÅ 2)) (- xà xÅ))"); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}

	_, err := CompileSource("test.boa", "(let ((xà 7)) xÅ)")
	if !IsErrorType(err, ErrorUnboundIdentifier) || err.(*BoaError).Name != "xÅ" {
		t.Errorf("expected xÅ to be unbound, got %v", err)
	}

	_, err = CompileSource("test.boa", "(let ((é 1) (é 2)) é)")
	if !IsErrorType(err, ErrorDuplicateBinding) || err.(*BoaError).Name != "é" {
		t.Errorf("expected a duplicate é, got %v", err)
	}
}
