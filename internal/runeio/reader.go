package runeio

import (
	"bufio"
	"fmt"
	"io"
)

// Source is a rune stream along with a name to use in diagnostics.
type Source struct {
	io.RuneReader
	Name string
}

// NewSource reads runes from r, buffering it only if it cannot already read
// runes itself. The source is named by NameOf(r).
func NewSource(r io.Reader) Source {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return Source{RuneReader: rr, Name: NameOf(r)}
}

// NameOf returns obj's Name() if it has one, or a placeholder naming its type.
func NameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
