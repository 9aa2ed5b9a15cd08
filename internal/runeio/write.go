package runeio

import (
	"errors"
	"io"
	"unicode/utf8"
)

// ErrNotScalar indicates a byte that does not encode a unicode scalar value on
// its own; only bytes below utf8.RuneSelf do.
var ErrNotScalar = errors.New("byte is not a standalone utf8 scalar")

// WriteScalarByte writes b to w if b alone is a valid utf8 encoding, returning
// the text written. Returns ErrNotScalar, without writing, otherwise.
func WriteScalarByte(w io.Writer, b byte) (string, error) {
	if !utf8.Valid([]byte{b}) {
		return "", ErrNotScalar
	}
	if bw, ok := w.(io.ByteWriter); ok {
		return string(rune(b)), bw.WriteByte(b)
	}
	if _, err := w.Write([]byte{b}); err != nil {
		return "", err
	}
	return string(rune(b)), nil
}

// Mnemonic returns a short printable form of b: the character itself for
// printable ASCII, a caret form like ^@ or ^[ for C0 controls and DEL, and
// an empty string otherwise.
func Mnemonic(b byte) string {
	switch {
	case b < 0x20 || b == 0x7f:
		return "^" + string(rune(b^0x40))
	case b < 0x7f:
		return string(rune(b))
	}
	return ""
}
