package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/gobf/internal/fileinput"
	"github.com/jcorbin/gobf/internal/logio"
	"github.com/jcorbin/gobf/internal/panicerr"
)

// testProgramName names programs run by vmTestCase, and so prefixes the
// location of any fault they report.
const testProgramName = "test.bf"

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	for _, vmt := range vmts {
		t.Run(vmt.name, vmt.run)
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type vmTestCase struct {
	name    string
	opts    []interface{}
	setup   []func(vm *VM)
	program string
	feed    []Symbol
	expect  []func(t *testing.T, vm *VM)
	timeout time.Duration

	wantErr    error
	wantErrMsg string

	nextInputID int
}

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withProgram(program string) vmTestCase {
	vmt.program = program
	return vmt
}

func (vmt vmTestCase) withCapacity(n uint) vmTestCase {
	vmt.opts = append(vmt.opts, WithCapacity(n))
	return vmt
}

func (vmt vmTestCase) withInput(input string) vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		name := t.Name() + "/input"
		if id := vmt.nextInputID; id > 0 {
			name += "_" + strconv.Itoa(id+1)
		}
		vmt.nextInputID++
		return WithInput(namedReader{strings.NewReader(input), name})
	})
	return vmt
}

func (vmt vmTestCase) withCells(addr uint, values ...byte) vmTestCase {
	vmt.setup = append(vmt.setup, func(vm *VM) {
		for i, val := range values {
			if err := vm.tape.Stor(addr+uint(i), val); err != nil {
				panic(err)
			}
		}
	})
	return vmt
}

func (vmt vmTestCase) withDP(dp uint) vmTestCase {
	vmt.setup = append(vmt.setup, func(vm *VM) {
		vm.dp = dp
	})
	return vmt
}

func (vmt vmTestCase) withIP(ip uint) vmTestCase {
	vmt.setup = append(vmt.setup, func(vm *VM) {
		vm.ip = ip
	})
	return vmt
}

func (vmt vmTestCase) withStack(values ...uint) vmTestCase {
	vmt.setup = append(vmt.setup, func(vm *VM) {
		vm.stack = append(vm.stack, values...)
	})
	return vmt
}

func (vmt vmTestCase) withSkipping(depth uint) vmTestCase {
	vmt.setup = append(vmt.setup, func(vm *VM) {
		vm.state = machineState{mode: skipping, depth: depth}
	})
	return vmt
}

func (vmt vmTestCase) withHalted() vmTestCase {
	vmt.setup = append(vmt.setup, func(vm *VM) {
		vm.state = machineState{mode: halted}
	})
	return vmt
}

func (vmt vmTestCase) do(syms ...Symbol) vmTestCase {
	vmt.feed = append(vmt.feed, syms...)
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectErrorMessage(mess string) vmTestCase {
	vmt.wantErrMsg = mess
	return vmt
}

func (vmt vmTestCase) expectIP(ip uint) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, ip, vm.InstructionPtr(), "expected instruction pointer")
	})
	return vmt
}

func (vmt vmTestCase) expectDP(dp uint) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, dp, vm.DataPtr(), "expected data pointer")
	})
	return vmt
}

func (vmt vmTestCase) expectStack(values ...uint) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []uint{}
		}
		stack := vm.stack
		if stack == nil {
			stack = []uint{}
		}
		assert.Equal(t, values, stack, "expected loop stack values")
		assert.Equal(t, len(values), vm.Depth(), "expected loop depth")
	})
	return vmt
}

func (vmt vmTestCase) expectState(state string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, state, vm.state.String(), "expected machine state")
		assert.Equal(t, state == "halted", vm.Halted(), "expected Halted()")
	})
	return vmt
}

func (vmt vmTestCase) expectCells(addr uint, values ...byte) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		buf := make([]byte, len(values))
		for i := range buf {
			val, err := vm.Cell(addr + uint(i))
			assert.NoError(t, err, "unexpected cell @%v error", addr+uint(i))
			buf[i] = val
		}
		assert.Equal(t, values, buf, "expected cell values @%v", addr)
	})
	return vmt
}

func (vmt vmTestCase) expectUsed(values ...byte) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		var used []byte
		if len(values) > 0 {
			used = values
		}
		assert.Equal(t, used, vm.tape.Used(), "expected used tape cells")
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectDump(dump string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		var out strings.Builder
		vmDumper{
			vm:  vm,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return WithTee(&logio.Writer{Logf: func(mess string, args ...interface{}) {
			t.Logf("out: "+mess, args...)
		}})
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	// trace is only shown for failed tests
	var trace []string
	vm := vmt.buildVM(t, WithLogf(func(mess string, args ...interface{}) {
		trace = append(trace, fmt.Sprintf(mess, args...))
	}))
	defer func() {
		if t.Failed() {
			for _, line := range trace {
				t.Logf("trace: %v", line)
			}
		}
	}()

	vmt.runVMTest(context.Background(), t, vm)
}

func (vmt vmTestCase) runVMTest(ctx context.Context, t *testing.T, vm *VM) {
	const defaultTimeout = time.Second
	timeout := vmt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			vmt.dumpToTest(t, vm)
		}
	}()

	err := vmt.runVM(ctx, vm)
	if vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
	}
	if vmt.wantErrMsg != "" {
		assert.EqualError(t, err, vmt.wantErrMsg, "expected error message")
	}
	if vmt.wantErr == nil && vmt.wantErrMsg == "" {
		assert.NoError(t, err, "unexpected VM run error")
	}

	if !t.Failed() {
		for _, expect := range vmt.expect {
			expect(t, vm)
		}
	}
}

func (vmt vmTestCase) runVM(ctx context.Context, vm *VM) error {
	if len(vmt.feed) == 0 {
		return vm.Run(ctx, fileinput.FromString(testProgramName, vmt.program))
	}
	return panicerr.Recover("vmTestCase.feed", func() error {
		for _, sym := range vmt.feed {
			if err := vm.Feed(sym); err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		return vm.out.Flush()
	})
}

func (vmt vmTestCase) buildVM(t *testing.T, extra ...VMOption) *VM {
	var opts []VMOption
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(vmt *vmTestCase, t *testing.T) VMOption:
			opts = append(opts, impl(&vmt, t))
		case VMOption:
			opts = append(opts, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	vm := New(append(opts, extra...)...)
	for _, setup := range vmt.setup {
		setup(vm)
	}
	return vm
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Flush()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

type namedReader struct {
	*strings.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func instr(op Instruction) Symbol { return Symbol{Op: op} }
func other(r rune) Symbol         { return Symbol{Kind: OtherSymbol, Char: r} }

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
