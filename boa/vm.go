package boa

import (
	"fmt"
	"io"
)

// InitialStackPointer is the value rsp holds when the program is entered.
const InitialStackPointer int64 = 0x7ffe_0000

// returnLinkage stands in for the return address stored at [rsp].
const returnLinkage int64 = 0x0040_1000

// VM is a reference machine for the instruction model. It executes an
// instruction list the way the target processor would and reports the
// accumulator, refusing reads of stack words nothing has written and writes
// to the linkage slots.
type VM struct {
	instrs []Instr
	ip     int
	regs   [2]int64
	memory map[int64]int64

	// Trace, when set, receives one line per executed instruction.
	Trace io.Writer
}

func NewVM() *VM {
	return &VM{
		memory: make(map[int64]int64),
	}
}

// Interpret runs instrs from a fresh machine state and returns rax.
func (vm *VM) Interpret(instrs []Instr) Result[int64] {
	vm.instrs = instrs
	vm.ip = 0
	vm.regs = [2]int64{}
	vm.regs[RSP] = InitialStackPointer
	clear(vm.memory)
	vm.memory[InitialStackPointer] = returnLinkage

	return vm.run()
}

func (vm *VM) run() Result[int64] {
	for vm.ip < len(vm.instrs) {
		instr := vm.instrs[vm.ip]
		vm.ip++

		switch instr.Op {
		case IMov:
			src, err := vm.read(instr.Src)
			if err != nil {
				return ResErr[int64](err)
			}
			if err := vm.write(instr.Dst, src); err != nil {
				return ResErr[int64](err)
			}
		case IAdd, ISub, IMul:
			if err := vm.arith(instr); err != nil {
				return ResErr[int64](err)
			}
		case INeg:
			val, err := vm.read(instr.Dst)
			if err != nil {
				return ResErr[int64](err)
			}
			if err := vm.write(instr.Dst, -val); err != nil {
				return ResErr[int64](err)
			}
		default:
			return vm.runtimeErrorRes("unknown opcode %s", instr.Op)
		}

		if vm.Trace != nil {
			fmt.Fprintf(vm.Trace, "%04d: %-24s rax=%d\n", vm.ip-1, InstrToString(instr), vm.regs[RAX])
		}
	}

	if vm.memory[vm.regs[RSP]] != returnLinkage {
		return vm.runtimeErrorRes("return linkage at [rsp] was overwritten")
	}
	return ResOk(vm.regs[RAX])
}

func (vm *VM) arith(instr Instr) Error {
	dst, err := vm.read(instr.Dst)
	if err != nil {
		return err
	}
	src, err := vm.read(instr.Src)
	if err != nil {
		return err
	}
	var result int64
	switch instr.Op {
	case IAdd:
		result = dst + src
	case ISub:
		result = dst - src
	case IMul:
		result = dst * src
	}
	return vm.write(instr.Dst, result)
}

// Register returns the current value of r.
func (vm *VM) Register(r Reg) int64 {
	return vm.regs[r]
}

// Slot returns the word stored in stack slot k, if one has been written.
func (vm *VM) Slot(k int32) (int64, bool) {
	val, ok := vm.memory[vm.regs[RSP]-WordSize*int64(k)]
	return val, ok
}

func (vm *VM) address(v Val) int64 {
	return vm.regs[v.Reg] + int64(v.Offset)
}

func (vm *VM) read(v Val) (int64, Error) {
	switch v.Kind {
	case ValReg:
		return vm.regs[v.Reg], nil
	case ValImm:
		return int64(v.Imm), nil
	case ValRegOffset:
		val, ok := vm.memory[vm.address(v)]
		if !ok {
			return 0, vm.runtimeError("read of uninitialized memory %s", ValToString(v))
		}
		return val, nil
	}
	return 0, vm.runtimeError("invalid operand kind %d", v.Kind)
}

func (vm *VM) write(v Val, val int64) Error {
	switch v.Kind {
	case ValReg:
		vm.regs[v.Reg] = val
		return nil
	case ValRegOffset:
		addr := vm.address(v)
		if addr > InitialStackPointer-int64(FirstSlot)*WordSize {
			return vm.runtimeError("write to reserved linkage slot %s", ValToString(v))
		}
		vm.memory[addr] = val
		return nil
	}
	return vm.runtimeError("cannot write to %s", ValToString(v))
}

func (vm *VM) runtimeError(format string, args ...any) Error {
	return NewRuntimeError(fmt.Sprintf("instruction %d: ", vm.ip-1)+fmt.Sprintf(format, args...), Loc{})
}

func (vm *VM) runtimeErrorRes(format string, args ...any) Result[int64] {
	return ResErr[int64](vm.runtimeError(format, args...))
}
