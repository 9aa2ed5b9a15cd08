package tape

// Dump provides tape internals for testing.
type Dump struct {
	Cells   []byte
	Highest uint
	Written bool
}

// Dump tape data for testing.
func (t *Tape) Dump() (d Dump) {
	d.Cells = t.cells
	d.Highest = t.highest
	d.Written = t.written
	return d
}
