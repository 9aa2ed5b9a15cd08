package main

import (
	"errors"
	"fmt"

	"github.com/jcorbin/gobf/internal/tape"
)

// VM implements the machine: a fixed tape of byte cells under a data pointer,
// a program read through an instruction pointer, and a stack of loop return
// addresses.
type VM struct {
	ioCore

	capacity uint
	tape     *tape.Tape

	ip uint // instruction pointer
	dp uint // data pointer

	// The loop stack holds the instruction pointer of every loop start
	// entered at runtime and not yet left; it is never bounded by
	// anything but memory.
	stack []uint

	state machineState
}

type mode uint8

const (
	running mode = iota
	skipping
	halted
)

// machineState is exactly one of running, skipping(depth >= 1), or halted.
type machineState struct {
	mode  mode
	depth uint
}

func (st machineState) String() string {
	switch st.mode {
	case running:
		return "running"
	case skipping:
		return fmt.Sprintf("skipping(%v)", st.depth)
	case halted:
		return "halted"
	}
	return fmt.Sprintf("invalid(%d)", st.mode)
}

// InstructionPtr returns the program offset of the next symbol to Feed.
func (vm *VM) InstructionPtr() uint { return vm.ip }

// DataPtr returns the address of the current cell.
func (vm *VM) DataPtr() uint { return vm.dp }

// Halted returns true once the machine has run off the end of its program.
func (vm *VM) Halted() bool { return vm.state.mode == halted }

// Depth returns the number of loops entered and not yet left.
func (vm *VM) Depth() int { return len(vm.stack) }

// Cell returns the value of the tape cell at addr.
func (vm *VM) Cell(addr uint) (byte, error) { return vm.tape.Load(addr) }

// Feed advances the machine by one symbol, which must be the symbol decoded
// at InstructionPtr. Any fault leaves the machine as it was.
func (vm *VM) Feed(sym Symbol) error {
	if vm.logfn != nil {
		vm.logf("feed @%v %v -- %v dp:%v r:%v", vm.ip, sym, vm.state, vm.dp, vm.stack)
	}
	switch vm.state.mode {
	case halted:
		return errHalted
	case skipping:
		return vm.skip(sym)
	case running:
		return vm.run1(sym)
	}
	panic(fmt.Sprintf("invalid machine state %v", vm.state))
}

func (vm *VM) skip(sym Symbol) error {
	if sym.Kind == EOFSymbol {
		return bracketError{vm.ip, vm.state.depth}
	}
	if sym.Kind == InstructionSymbol {
		switch sym.Op {
		case LoopStart:
			vm.state.depth++
		case LoopEnd:
			if vm.state.depth--; vm.state.depth == 0 {
				vm.state = machineState{mode: running}
			}
		}
	}
	vm.ip++
	return nil
}

func (vm *VM) run1(sym Symbol) error {
	switch sym.Kind {
	case EOFSymbol:
		vm.state = machineState{mode: halted}
		return nil
	case OtherSymbol:
		vm.ip++
		return nil
	}

	var err error
	switch sym.Op {
	case MoveRight:
		err = vm.moveRight()
	case MoveLeft:
		err = vm.moveLeft()
	case Increment:
		err = vm.delta(1)
	case Decrement:
		err = vm.delta(-1)
	case Print:
		err = vm.print()
	case Read:
		err = vm.read()
	case LoopStart:
		err = vm.loopStart()
	case LoopEnd:
		// sets ip back to the loop start, to re-test its cell
		return vm.loopEnd()
	default:
		panic(fmt.Sprintf("invalid instruction %v", sym.Op))
	}
	if err == nil {
		vm.ip++
	}
	return err
}

func (vm *VM) moveRight() error {
	if vm.dp+1 >= vm.tape.Cap() {
		return ptrError(vm.dp)
	}
	vm.dp++
	return nil
}

func (vm *VM) moveLeft() error {
	if vm.dp == 0 {
		return ptrError(vm.dp)
	}
	vm.dp--
	return nil
}

func (vm *VM) delta(delta int8) error {
	val, err := vm.load()
	if err != nil {
		return err
	}
	val, err = tape.Delta(val, delta)
	var de tape.DeltaError
	if errors.As(err, &de) {
		return valError{vm.dp, de.Delta}
	} else if err != nil {
		return err
	}
	return vm.stor(val)
}

func (vm *VM) print() error {
	val, err := vm.load()
	if err != nil {
		return err
	}
	_, err = vm.printChar(val)
	return err
}

func (vm *VM) read() error {
	val, err := vm.readByte()
	if err != nil {
		return err
	}
	return vm.stor(val)
}

func (vm *VM) loopStart() error {
	val, err := vm.load()
	if err != nil {
		return err
	}
	if val != 0 {
		vm.stack = append(vm.stack, vm.ip)
	} else {
		vm.state = machineState{mode: skipping, depth: 1}
	}
	return nil
}

func (vm *VM) loopEnd() error {
	i := len(vm.stack) - 1
	if i < 0 {
		return errStackUnderflow
	}
	vm.ip, vm.stack = vm.stack[i], vm.stack[:i]
	return nil
}

// load and stor access the current cell; the data pointer never leaves the
// tape, but a tape limit is still reported as a pointer fault.
func (vm *VM) load() (byte, error) {
	val, err := vm.tape.Load(vm.dp)
	if err != nil {
		return 0, ptrError(vm.dp)
	}
	return val, nil
}

func (vm *VM) stor(val byte) error {
	if err := vm.tape.Stor(vm.dp, val); err != nil {
		return ptrError(vm.dp)
	}
	return nil
}
