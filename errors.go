package main

import (
	"errors"
	"fmt"
)

var (
	errInvalidChar    = errors.New("invalid input character")
	errStackUnderflow = errors.New("loop stack underflow")
	errHalted         = errors.New("machine halted")
)

// ptrError reports the data pointer that could not move.
type ptrError uint

// valError reports a cell that an increment or decrement would have wrapped.
type valError struct {
	addr  uint
	delta int8
}

// bracketError reports the end of program reached while still skipping past
// missing loop ends.
type bracketError struct {
	ip      uint
	missing uint
}

// printError reports a cell byte that is not a standalone utf8 scalar.
type printError byte

func (ptr ptrError) Error() string { return fmt.Sprintf("data pointer out of bounds @%v", uint(ptr)) }
func (val valError) Error() string {
	return fmt.Sprintf("cell value out of bounds by %+d @%v", val.delta, val.addr)
}
func (br bracketError) Error() string {
	return fmt.Sprintf("mismatched brackets: %v missing ] at end of program @%v", br.missing, br.ip)
}
func (b printError) Error() string { return fmt.Sprintf("unprintable byte 0x%02x", byte(b)) }

// IsFault returns true if err is, or wraps, a machine fault, as opposed to a
// host error like a failed read or write.
func IsFault(err error) bool {
	var (
		pe ptrError
		ve valError
		be bracketError
		ue printError
	)
	return errors.Is(err, errInvalidChar) ||
		errors.Is(err, errStackUnderflow) ||
		errors.Is(err, errHalted) ||
		errors.As(err, &pe) ||
		errors.As(err, &ve) ||
		errors.As(err, &be) ||
		errors.As(err, &ue)
}
