package tape

import "fmt"

// DefaultCapacity provides a default for New when given a zero capacity.
const DefaultCapacity = 30000

// Tape implements a fixed-capacity byte-addressable memory.
// All cells start at 0; the tape never grows after New.
type Tape struct {
	cells []byte

	highest uint
	written bool
}

// LimitError indicates that a memory operation, like load or store, addressed
// a cell past the end of the tape.
type LimitError struct {
	Addr uint
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("tape limit exceeded by %v @%v", lim.Op, lim.Addr)
}

// New allocates a zeroed tape of the given capacity, or DefaultCapacity if
// capacity is 0.
func New(capacity uint) *Tape {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	return &Tape{cells: make([]byte, capacity)}
}

// Cap returns the number of addressable cells.
func (t *Tape) Cap() uint { return uint(len(t.cells)) }

// Load returns the byte stored at addr.
func (t *Tape) Load(addr uint) (byte, error) {
	if err := t.checkLimit(addr, "load"); err != nil {
		return 0, err
	}
	return t.cells[addr], nil
}

// Stor stores val at addr, tracking the highest address written so far.
func (t *Tape) Stor(addr uint, val byte) error {
	if err := t.checkLimit(addr, "stor"); err != nil {
		return err
	}
	t.cells[addr] = val
	if !t.written || addr > t.highest {
		t.highest = addr
		t.written = true
	}
	return nil
}

// Highest returns the highest address ever stored to, and false if nothing
// has been stored yet.
func (t *Tape) Highest() (uint, bool) { return t.highest, t.written }

// Used returns a copy of the cells from address 0 through the highest address
// written; it is empty for a tape that was never written.
func (t *Tape) Used() []byte {
	if !t.written {
		return nil
	}
	return append([]byte(nil), t.cells[:t.highest+1]...)
}

// Restore replaces the leading cells of the tape with the given values,
// zeroing the rest. Returns an error, without modifying the tape, if values
// would not fit.
func (t *Tape) Restore(values []byte) error {
	if n := uint(len(values)); n > t.Cap() {
		return LimitError{n - 1, "restore"}
	}
	n := copy(t.cells, values)
	for i := range t.cells[n:] {
		t.cells[n+i] = 0
	}
	t.highest, t.written = 0, false
	if n > 0 {
		t.highest, t.written = uint(n-1), true
	}
	return nil
}

func (t *Tape) checkLimit(addr uint, op string) error {
	if addr >= uint(len(t.cells)) {
		return LimitError{addr, op}
	}
	return nil
}
