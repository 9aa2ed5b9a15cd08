package main

import (
	"io"

	"github.com/jcorbin/gobf/internal/flushio"
)

// VMOption customizes a VM built by New.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withOutput(io.Discard),
	withCapacity(0),
)

// VMOptions combines any number of options into one, applied in order;
// nil options are skipped.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		if many, ok := opt.(vmOptions); ok {
			all = append(all, many...)
		} else if opt != nil {
			all = append(all, opt)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type capacityOption uint
type promptOption struct {
	io.Writer
	text string
}

func withInput(r io.Reader) inputOption                { return inputOption{r} }
func withOutput(w io.Writer) outputOption              { return outputOption{w} }
func withTee(w io.Writer) teeOption                    { return teeOption{w} }
func withCapacity(n uint) capacityOption               { return capacityOption(n) }
func withPrompt(w io.Writer, text string) promptOption { return promptOption{w, text} }

func (i inputOption) apply(vm *VM) {
	vm.in.Queue = append(vm.in.Queue, i.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		if err := vm.out.Flush(); err != nil {
			vm.logf("flush replaced output: %v", err)
		}
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (n capacityOption) apply(vm *VM) {
	vm.capacity = uint(n)
}

func (p promptOption) apply(vm *VM) {
	vm.prompt = p.Writer
	vm.promptText = p.text
}
