package logio

import "bytes"

// Writer logs every line written to it through Logf, such as a Logger's
// Leveledf or testing.T.Logf. A trailing partial line is held until more is
// written or Flush is called; Writer is a flushio.WriteFlusher, so a VM
// flushing its output at halt also logs any unterminated line.
type Writer struct {
	Logf func(mess string, args ...interface{})

	partial []byte
}

func (lw *Writer) Write(p []byte) (int, error) {
	n := len(p)
	for {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			lw.partial = append(lw.partial, p...)
			return n, nil
		}
		if len(lw.partial) > 0 {
			lw.partial = append(lw.partial, p[:i]...)
			lw.emit(lw.partial)
			lw.partial = lw.partial[:0]
		} else {
			lw.emit(p[:i])
		}
		p = p[i+1:]
	}
}

// Flush logs any held partial line.
func (lw *Writer) Flush() error {
	if len(lw.partial) > 0 {
		lw.emit(lw.partial)
		lw.partial = lw.partial[:0]
	}
	return nil
}

func (lw *Writer) emit(line []byte) { lw.Logf("%s", line) }
