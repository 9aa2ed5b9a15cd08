package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/jcorbin/gobf/internal/runeio"
)

const dumpRowWidth = 16

type vmDumper struct {
	vm  *VM
	out io.Writer

	addrWidth int
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  state: %v\n", dump.vm.state)
	fmt.Fprintf(dump.out, "  ip: %v\n", dump.vm.ip)
	fmt.Fprintf(dump.out, "  dp: %v\n", dump.vm.dp)
	dump.dumpCell()
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
	dump.dumpTape()
}

func (dump vmDumper) dumpCell() {
	val, err := dump.vm.Cell(dump.vm.dp)
	if err != nil {
		fmt.Fprintf(dump.out, "  cell: %v\n", err)
		return
	}
	if m := runeio.Mnemonic(val); m != "" {
		fmt.Fprintf(dump.out, "  cell: 0x%02x %v\n", val, m)
	} else {
		fmt.Fprintf(dump.out, "  cell: 0x%02x\n", val)
	}
}

func (dump *vmDumper) dumpTape() {
	cells := dump.vm.tape.Used()
	fmt.Fprintf(dump.out, "# Tape capacity:%v used:%v\n", dump.vm.tape.Cap(), len(cells))

	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(len(cells)))
	}

	var buf bytes.Buffer
	for addr := 0; addr < len(cells); addr += dumpRowWidth {
		end := addr + dumpRowWidth
		if end > len(cells) {
			end = len(cells)
		}
		fmt.Fprintf(&buf, "  @%*v", dump.addrWidth, addr)
		for _, val := range cells[addr:end] {
			fmt.Fprintf(&buf, " %02x", val)
		}
		for i := end; i < addr+dumpRowWidth; i++ {
			buf.WriteString("   ")
		}
		buf.WriteString("  |")
		for _, val := range cells[addr:end] {
			if 0x20 <= val && val < 0x7f {
				buf.WriteByte(val)
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteString("|\n")
		buf.WriteTo(dump.out)
	}
}
