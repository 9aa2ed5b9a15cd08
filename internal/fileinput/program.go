package fileinput

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jcorbin/gobf/internal/runeio"
)

// Program is a fully loaded, randomly indexable program text.
type Program struct {
	Name string

	text  []rune
	lines []int // rune offset of each line start
}

// Load reads all of r into a Program, named after r if it has a Name.
func Load(r io.Reader) (*Program, error) {
	src := runeio.NewSource(r)
	prog := &Program{Name: src.Name, lines: []int{0}}
	for {
		c, _, err := src.ReadRune()
		if err == io.EOF {
			return prog, nil
		} else if err != nil {
			return nil, fmt.Errorf("failed to read %v: %w", prog.Name, err)
		}
		prog.text = append(prog.text, c)
		if c == '\n' {
			prog.lines = append(prog.lines, len(prog.text))
		}
	}
}

// LoadFile opens and loads the named program file.
func LoadFile(name string) (*Program, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// FromString creates a named Program from a string.
func FromString(name, text string) *Program {
	prog, err := Load(namedReader{strings.NewReader(text), name})
	if err != nil {
		panic(err) // strings.Reader never fails
	}
	return prog
}

type namedReader struct {
	*strings.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

// Len returns the number of runes in the program.
func (prog *Program) Len() int { return len(prog.text) }

// At returns the rune at offset i, or false if i is past the end.
func (prog *Program) At(i uint) (rune, bool) {
	if i < uint(len(prog.text)) {
		return prog.text[i], true
	}
	return 0, false
}

// Location maps a rune offset to a 1-based line and column; offsets past the
// end are located just after the last rune.
func (prog *Program) Location(i uint) Location {
	if n := uint(len(prog.text)); i > n {
		i = n
	}
	line := sort.Search(len(prog.lines), func(j int) bool {
		return uint(prog.lines[j]) > i
	}) - 1
	return Location{
		Name: prog.Name,
		Line: line + 1,
		Col:  int(i) - prog.lines[line] + 1,
	}
}

func (prog *Program) String() string { return string(prog.text) }
