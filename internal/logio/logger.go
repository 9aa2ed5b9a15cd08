package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Exit codes retained by Logger for ExitCode.
const (
	ExitOK       = 0
	ExitFault    = 1
	ExitError    = 2
	ExitInternal = 3
)

// Logger implements a leveled logging facility that remembers the worst error
// logged, for use as a process exit code.
type Logger struct {
	sync.Mutex
	output   io.Writer
	buf      bytes.Buffer
	exitCode int
}

// SetOutput sets the logger's output stream.
func (log *Logger) SetOutput(out io.Writer) {
	log.Lock()
	defer log.Unlock()
	log.output = out
}

// ExitCode returns a code to pass to os.Exit: ExitOK unless something was
// logged through Errorf or ErrorIf.
func (log *Logger) ExitCode() int {
	log.Lock()
	defer log.Unlock()
	return log.exitCode
}

// Leveledf returns a typical printf-style formatting function that logs
// messages with the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs any non-nil error at "ERROR" level, raising ExitCode to
// ExitError.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Lock()
		defer log.Unlock()
		log.reportError(err)
	}
}

// Errorf is like `Printf("ERROR", ...)` but additionally raises ExitCode to at
// least ExitFault.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Exitf(ExitFault, mess, args...)
}

// Exitf logs at "ERROR" level, raising ExitCode to at least code.
func (log *Logger) Exitf(code int, mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if err := log.printf("ERROR", mess, args...); err != nil {
		log.reportError(err)
	}
	if log.exitCode < code {
		log.exitCode = code
	}
}

// Printf prints a line to the output stream like "level: message...\n".
// Reports any io error as an "ERROR" level log, raising ExitCode to ExitError.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if err := log.printf(level, mess, args...); err != nil {
		log.reportError(err)
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	if log.output == nil {
		log.buf.Reset()
		return nil
	}
	_, err := log.buf.WriteTo(log.output)
	return err
}

func (log *Logger) reportError(err error) {
	log.buf.Reset()
	log.printf("ERROR", "%+v", err)
	if log.exitCode < ExitError {
		log.exitCode = ExitError
	}
}
