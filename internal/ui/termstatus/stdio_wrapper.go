package termstatus

import (
	"bytes"
	"io"
)

// lineWriter forwards complete lines to print. Close flushes a trailing
// partial line.
type lineWriter struct {
	buf   bytes.Buffer
	print func(string)
}

var _ io.WriteCloser = &lineWriter{}

func newLineWriter(print func(string)) *lineWriter {
	return &lineWriter{print: print}
}

func (w *lineWriter) Write(data []byte) (n int, err error) {
	n, err = w.buf.Write(data)
	if err != nil {
		return n, err
	}

	buf := w.buf.Bytes()
	if i := bytes.LastIndexByte(buf, '\n'); i != -1 {
		w.print(string(buf[:i+1]))
		w.buf.Next(i + 1)
	}

	return n, nil
}

func (w *lineWriter) Close() error {
	if w.buf.Len() > 0 {
		w.print(string(append(w.buf.Bytes(), '\n')))
		w.buf.Reset()
	}
	return nil
}
