package fileinput

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gobf/internal/runeio"
)

// Location names a line, and optionally a column, in an input file.
type Location struct {
	Name string
	Line int
	Col  int
}

// Line combines a Location along with a bytes.Buffer for handling it.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string {
	if loc.Col > 0 {
		return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Col)
	}
	return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
}

func (il *Line) String() string { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input implements sequential line reading through a Queue of one or more
// input streams. Both the current and last scanned lines are tracked to
// facilitate user feedback.
type Input struct {
	rr    io.RuneReader
	Queue []io.Reader
	Last  Line
	Scan  Line
}

// ReadRune reads one rune from the current input stream, appending it into the
// current Scan line, and rolling Scan over to Last after line feed.
// Returns n == 0 with a nil error when one stream ends and another begins;
// any rune value, including NUL, is a real rune when n > 0.
func (in *Input) ReadRune() (r rune, n int, err error) {
	if in.rr == nil && !in.nextIn() {
		return 0, 0, io.EOF
	}

	r, n, err = in.rr.ReadRune()
	if n > 0 {
		if r == '\n' {
			in.nextLine()
		} else {
			in.Scan.WriteRune(r)
		}
		return r, n, nil
	}
	if err == io.EOF && in.nextIn() {
		err = nil
	}
	return 0, 0, err
}

// ReadLine reads runes through the next line feed, which is included in the
// returned string. The end of a stream also ends any partial line. Returns
// io.EOF only once all streams are exhausted without reading anything.
func (in *Input) ReadLine() (string, error) {
	var sb strings.Builder
	for {
		r, n, err := in.ReadRune()
		switch {
		case n > 0:
			sb.WriteRune(r)
			if r == '\n' {
				return sb.String(), nil
			}
		case err != nil && err != io.EOF:
			return "", err
		case sb.Len() > 0:
			return sb.String(), nil
		case err == io.EOF:
			return "", io.EOF
		}
	}
}

func (in *Input) nextLine() {
	in.Last.Reset()
	in.Last.Name = in.Scan.Name
	in.Last.Line = in.Scan.Line
	in.Last.Write(in.Scan.Bytes())
	in.Scan.Reset()
	in.Scan.Line++
}

// nextIn rolls over to the next queued stream, if any. Queued readers are
// owned by the caller and never closed.
func (in *Input) nextIn() bool {
	if in.Scan.Len() > 0 {
		in.nextLine()
	}
	in.rr = nil
	if len(in.Queue) > 0 {
		src := runeio.NewSource(in.Queue[0])
		in.Queue = in.Queue[1:]
		in.rr = src
		in.Scan.Name = src.Name
		in.Scan.Line = 1
	}
	return in.rr != nil
}
