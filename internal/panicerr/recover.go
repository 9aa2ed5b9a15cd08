// Package panicerr turns a panic inside a VM run into an ordinary error.
package panicerr

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
)

// Error is a panic recovered from a named operation, with the stack of the
// panicking goroutine.
type Error struct {
	Op    string
	Value interface{}
	Stack []byte
}

func (pe *Error) Error() string {
	if pe.Op == "" {
		return fmt.Sprintf("panic: %v", pe.Value)
	}
	return fmt.Sprintf("%v: panic: %v", pe.Op, pe.Value)
}

// Format appends the recovered stack under the %+v verb.
func (pe *Error) Format(f fmt.State, c rune) {
	io.WriteString(f, pe.Error())
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\n%s", pe.Stack)
	}
}

// Unwrap returns the panic value if it was an error.
func (pe *Error) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}

// Recover calls f, returning any panic it raises as an *Error.
func Recover(op string, f func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &Error{Op: op, Value: v, Stack: debug.Stack()}
		}
	}()
	return f()
}

// As returns the recovered panic carried by err, if there is one.
func As(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
