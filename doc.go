// Command gobf runs programs on a bounded eight instruction machine.
//
// The machine has a tape of byte cells, 30000 of them unless told otherwise,
// all starting at 0. A data pointer selects the current cell; it starts at 0 and
// may never leave the tape. An instruction pointer selects the next character of
// the program; the program is fully loaded before running, because loops jump
// backwards arbitrarily far.
//
// Every program character decodes to a symbol: one of the eight instructions
// below, the end of the program, or any other character, which is a comment.
//
//	>  move the data pointer right
//	<  move the data pointer left
//	+  increment the current cell
//	-  decrement the current cell
//	.  print the current cell
//	,  read a line of input, storing its first byte in the current cell
//	[  enter a loop if the current cell is non-zero, otherwise skip it
//	]  return to the matching [ to test its cell again
//
// Unlike most machines of this kind, cells do not wrap: incrementing 255 or
// decrementing 0 is a fault. So is moving off either end of the tape, printing a
// byte that is not a character on its own, reading when there is no input, or
// reaching a ] that closes no loop.
//
// A [ that finds its cell zero switches the machine into skipping, counting
// nested [ and ] until the matching ] is found. Reaching the end of the program
// while skipping is a fault, reporting how many ] were missing. Otherwise the
// end of the program halts the machine; feeding a halted machine is a fault.
//
// Section 1: see symbols.go and machine.go
//
// Section 2: the command line
//
//	gobf [-config gobf.toml] [-capacity n] [-trace] [-timeout d] [-dump]
//	     [-snapshot out.cbor] [-resume in.cbor] [-prompt text] program.bf
//
// Program input is read from stdin one line at a time; output goes to stdout.
// After the run "Finished OK!" or "Finished with error!" is printed, with any
// fault diagnostic logged to stderr. The exit status is 0 after a normal halt, 1
// after a machine fault, 3 if gobf itself panicked (the stack is logged), and 2
// after any other error. With -trace, program output is also logged to stderr
// as OUTPUT lines alongside the TRACE lines.
//
// A configuration file may set the same things as flags:
//
//	[machine]
//	capacity = 30000
//
//	[run]
//	trace = false
//	timeout = "10s"
//	dump = false
//	prompt = "> "
//	snapshot = "last.cbor"
//	resume = ""
package main
