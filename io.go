package main

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/jcorbin/gobf/internal/fileinput"
	"github.com/jcorbin/gobf/internal/flushio"
	"github.com/jcorbin/gobf/internal/runeio"
)

type ioCore struct {
	in  fileinput.Input
	out flushio.WriteFlusher

	prompt     io.Writer
	promptText string

	logfn func(mess string, args ...interface{})
}

func (ioc ioCore) logf(mess string, args ...interface{}) {
	if ioc.logfn != nil {
		ioc.logfn(mess, args...)
	}
}

// readByte reads one line of input and returns its first character, which
// must encode as a single utf8 byte. Pending output is flushed first, so that
// any prompt printed by the program is visible.
func (ioc *ioCore) readByte() (byte, error) {
	if err := ioc.out.Flush(); err != nil {
		return 0, fmt.Errorf("flush output: %w", err)
	}
	if ioc.prompt != nil {
		if _, err := io.WriteString(ioc.prompt, ioc.promptText); err != nil {
			return 0, fmt.Errorf("write prompt: %w", err)
		}
	}

	line, err := ioc.in.ReadLine()
	if err == io.EOF {
		return 0, errInvalidChar
	} else if err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}
	ioc.logf("read line %v", &ioc.in.Last)

	if r, n := utf8.DecodeRuneInString(line); r == utf8.RuneError || n != 1 {
		return 0, errInvalidChar
	}
	return line[0], nil
}

// printChar writes b to output if it is a standalone utf8 scalar, returning
// the text written.
func (ioc *ioCore) printChar(b byte) (string, error) {
	text, err := runeio.WriteScalarByte(ioc.out, b)
	if errors.Is(err, runeio.ErrNotScalar) {
		return "", printError(b)
	} else if err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return text, nil
}
