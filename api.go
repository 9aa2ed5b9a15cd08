package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jcorbin/gobf/internal/fileinput"
	"github.com/jcorbin/gobf/internal/panicerr"
	"github.com/jcorbin/gobf/internal/tape"
)

// New creates a running VM with a fresh tape; without options it has
// tape.DefaultCapacity cells, no input, and discards output.
func New(opts ...VMOption) *VM {
	var vm VM
	VMOptions(defaultOptions, VMOptions(opts...)).apply(&vm)
	vm.tape = tape.New(vm.capacity)
	vm.capacity = vm.tape.Cap()
	return &vm
}

// Run drives the VM through prog until it halts or faults: decoding the
// symbol under the instruction pointer, and feeding it, one step at a time.
// Faults are returned annotated with their program location; the context is
// checked between steps. Output is flushed before returning.
func (vm *VM) Run(ctx context.Context, prog *fileinput.Program) error {
	return panicerr.Recover("VM", func() error {
		return vm.run(ctx, prog)
	})
}

func (vm *VM) run(ctx context.Context, prog *fileinput.Program) (rerr error) {
	defer func() {
		if ferr := vm.out.Flush(); rerr == nil && ferr != nil {
			rerr = fmt.Errorf("flush output: %w", ferr)
		}
		if rerr != nil {
			vm.logf("halt error: %v", rerr)
		} else {
			vm.logf("halt")
		}
	}()

	for !vm.Halted() {
		if err := ctx.Err(); err != nil {
			return err
		}
		ip := vm.InstructionPtr()
		if err := vm.Feed(DecodeSymbol(prog.At(ip))); err != nil {
			if IsFault(err) {
				return fmt.Errorf("%v: %w", prog.Location(ip), err)
			}
			return err
		}
	}
	return nil
}

// WithInput queues a reader for Read instructions to take lines from; readers
// are consumed in the order given.
func WithInput(r io.Reader) VMOption { return withInput(r) }

// WithOutput sets where Print instructions write.
func WithOutput(w io.Writer) VMOption { return withOutput(w) }

// WithTee copies output to an additional writer.
func WithTee(w io.Writer) VMOption { return withTee(w) }

// WithCapacity sets the number of tape cells; 0 means tape.DefaultCapacity.
func WithCapacity(n uint) VMOption { return withCapacity(n) }

// WithPrompt writes text to w before every line of input is read.
func WithPrompt(w io.Writer, text string) VMOption { return withPrompt(w, text) }

// WithLogf sets a trace logging function, called for every step.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
