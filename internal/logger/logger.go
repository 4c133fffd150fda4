package logger

import (
	"io"
	"log"
	"os"
)

// Logger writes prefixed messages at four levels. Info goes to one writer,
// warnings, errors and traces go to another.
type Logger struct {
	log   *log.Logger
	warn  *log.Logger
	err   *log.Logger
	trace *log.Logger
}

// New returns a logger writing info to stdout and everything else to stderr.
func New(prefix string) Logger {
	return NewWithWriters(prefix, os.Stdout, os.Stderr)
}

// NewWithWriters is New with explicit writers.
func NewWithWriters(prefix string, out, errOut io.Writer) Logger {
	return Logger{
		log:   log.New(out, "["+prefix+"] ", log.Ldate|log.Ltime),
		warn:  log.New(errOut, "["+prefix+" WARN] ", log.Ldate|log.Ltime|log.Lshortfile),
		err:   log.New(errOut, "["+prefix+" ERR] ", log.Ldate|log.Ltime|log.Lshortfile),
		trace: log.New(errOut, "["+prefix+" TRACE] ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return NewWithWriters("", io.Discard, io.Discard)
}

// IsZero reports whether l was declared without a constructor.
func (l Logger) IsZero() bool {
	return l.log == nil && l.warn == nil && l.err == nil && l.trace == nil
}

// or falls back to the standard logger so a zero Logger still writes.
func or(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}

func (l Logger) Log(format string, a ...interface{}) {
	or(l.log).Printf(format, a...)
}

func (l Logger) Warn(format string, a ...interface{}) {
	or(l.warn).Printf(format, a...)
}

func (l Logger) Err(err error, format string, a ...interface{}) {
	if err != nil {
		or(l.err).Printf(format+": %+v", append(a, err)...)
	} else {
		or(l.err).Printf(format, a...)
	}
}

func (l Logger) Trace(format string, a ...interface{}) {
	or(l.trace).Printf(format, a...)
}
