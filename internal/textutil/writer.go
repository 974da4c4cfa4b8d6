package textutil

import (
	"bytes"
	"io"
)

// WriteBuffer combines a byte buffer with a destination writer and flush
// policy. Example use:
//
// 	var buf WriteBuffer
// 	buf.To = os.Stdout
// 	for _, line := range lines {
// 		buf.WriteString(line)
// 		buf.MaybeFlush()
// 	}
// 	buf.Flush()
type WriteBuffer struct {
	FlushPolicy
	To io.Writer
	bytes.Buffer
}

// FlushPolicy determines when a WriteBuffer should flush during its main write
// phase.
type FlushPolicy interface {
	ShouldFlush(b []byte) int
}

// FlushPolicyFunc is a convenience adaptor for FlushPolicy around a compatible
// anonymous function.
type FlushPolicyFunc func(b []byte) int

// ShouldFlush calls the receiver function pointer.
func (f FlushPolicyFunc) ShouldFlush(b []byte) int { return f(b) }

// Flush writes all of the receiver buffer contents, regardless of the
// FlushPolicy.
func (buf *WriteBuffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return err
}

// MaybeFlush writes N bytes into To if FlushPolicy returns N > 0.
// If FlushPolicy is nil, it will be set to FlushLineChunks.
func (buf *WriteBuffer) MaybeFlush() error {
	if buf.FlushPolicy == nil {
		buf.FlushPolicy = FlushPolicyFunc(FlushLineChunks)
	}
	b := buf.Bytes()
	if n := buf.ShouldFlush(b); n > 0 {
		m, err := buf.To.Write(b[:n])
		buf.Next(m)
		return err
	}
	return nil
}

// FlushLineChunks is a FlushPolicy(Func) that flushes as large a chunk as
// possible, through the last written line ending byte.
func FlushLineChunks(b []byte) int {
	if i := bytes.LastIndexAny(b, "\r\n"); i >= 0 {
		return i + 1
	}
	return 0
}

// PrefixWriter returns a writer that prepends the given string before every
// non-empty line written through it, lines ending as they do for ScanLines;
// empty lines pass through unprefixed so that re-indented output carries no
// trailing whitespace.
// The caller SHOULD close it to flush any partial final line.
func PrefixWriter(prefix string, w io.Writer) io.WriteCloser {
	p := &prefixer{prefix: prefix}
	p.buf.To = w
	return p
}

type prefixer struct {
	buf    WriteBuffer
	prefix string
	mid    bool // within a line that already received its prefix
}

func (p *prefixer) Close() error { return p.buf.Flush() }

func (p *prefixer) Write(b []byte) (n int, err error) {
	for len(b) > 0 {
		line := b[:lineEnd(b)]
		b = b[len(line):]

		if !p.mid && !isEmptyLine(line) {
			p.buf.WriteString(p.prefix)
		}
		m, _ := p.buf.Write(line)
		n += m
		switch line[len(line)-1] {
		case '\n', '\r':
			p.mid = false
		default:
			p.mid = true
		}
	}
	return n, p.buf.MaybeFlush()
}

// lineEnd returns the length of the first line in b, through its "\n",
// "\r\n" or lone "\r" ending; a "\r\n" split across writes reads as a
// line followed by an empty one.
func lineEnd(b []byte) int {
	i := bytes.IndexAny(b, "\r\n")
	switch {
	case i < 0:
		return len(b)
	case b[i] == '\r' && i+1 < len(b) && b[i+1] == '\n':
		return i + 2
	}
	return i + 1
}

// isEmptyLine reports whether line holds nothing but its line ending. A
// partial line is never empty: more content may follow.
func isEmptyLine(line []byte) bool {
	switch string(line) {
	case "\n", "\r\n", "\r":
		return true
	}
	return false
}

// ErrWriter wraps a writer, tracking its last error, and preventing future
// writes after a non-nil one.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes through to Writer if Err is nil, retaining any returned error.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}
