package main

import "fmt"

// Instruction is one of the eight machine operations.
type Instruction uint8

// Instructions, named for their effect on the machine.
const (
	MoveRight Instruction = iota // >
	MoveLeft                     // <
	Increment                    // +
	Decrement                    // -
	Print                        // .
	Read                         // ,
	LoopStart                    // [
	LoopEnd                      // ]
)

var instructionNames = [...]string{
	MoveRight: "right",
	MoveLeft:  "left",
	Increment: "inc",
	Decrement: "dec",
	Print:     "print",
	Read:      "read",
	LoopStart: "loop",
	LoopEnd:   "end",
}

func (op Instruction) String() string {
	if int(op) < len(instructionNames) {
		return instructionNames[op]
	}
	return fmt.Sprintf("Instruction(%d)", uint8(op))
}

// SymbolKind distinguishes instructions from the end of the program and from
// any other (comment) character.
type SymbolKind uint8

// Symbol kinds.
const (
	InstructionSymbol SymbolKind = iota
	EOFSymbol
	OtherSymbol
)

// Symbol is the decoded form of the program character under the instruction
// pointer.
type Symbol struct {
	Kind SymbolKind
	Op   Instruction // when Kind == InstructionSymbol
	Char rune        // when Kind == OtherSymbol
}

// EOF is the symbol decoded past the end of a program.
var EOF = Symbol{Kind: EOFSymbol}

// DecodeSymbol maps a program character to a Symbol; ok false means there is
// no character, and decodes as EOF.
func DecodeSymbol(r rune, ok bool) Symbol {
	if !ok {
		return EOF
	}
	switch r {
	case '>':
		return Symbol{Op: MoveRight}
	case '<':
		return Symbol{Op: MoveLeft}
	case '+':
		return Symbol{Op: Increment}
	case '-':
		return Symbol{Op: Decrement}
	case '.':
		return Symbol{Op: Print}
	case ',':
		return Symbol{Op: Read}
	case '[':
		return Symbol{Op: LoopStart}
	case ']':
		return Symbol{Op: LoopEnd}
	}
	return Symbol{Kind: OtherSymbol, Char: r}
}

func (sym Symbol) String() string {
	switch sym.Kind {
	case InstructionSymbol:
		return sym.Op.String()
	case EOFSymbol:
		return "EOF"
	default:
		return fmt.Sprintf("other(%q)", sym.Char)
	}
}
