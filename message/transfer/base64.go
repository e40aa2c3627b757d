package transfer

import (
	"encoding/base64"
	"io"
)

const defaultBase64LineLength = 76

var defaultBase64LineBreak = []byte{'\r', '\n'}

// newlineWriter inserts a line break after every "every" bytes. No break is
// written after the final line.
type newlineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (nw *newlineWriter) Write(b []byte) (int, error) {
	n := 0
	for nw.acc+len(b) > nw.every {
		if nw.acc == nw.every {
			if _, err := nw.w.Write(nw.lbr); err != nil {
				return n, err
			}
			nw.acc = 0
			continue
		}

		take := nw.every - nw.acc
		ln, err := nw.w.Write(b[:take])
		n += ln
		if err != nil {
			return n, err
		}

		if _, err := nw.w.Write(nw.lbr); err != nil {
			return n, err
		}

		b = b[take:]
		nw.acc = 0
	}

	ln, err := nw.w.Write(b)
	n += ln
	nw.acc += ln
	return n, err
}

// NewBase64Encoder will translate all bytes written to the returned
// io.WriteCloser into base64 encoding and write those to the give io.Writer.
// Lines are broken with CRLF every 76 characters. You must call Close() to
// flush the final quantum.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	enc := base64.NewEncoder(base64.StdEncoding, &newlineWriter{
		every: defaultBase64LineLength,
		lbr:   defaultBase64LineBreak,
		w:     w,
	})
	return &writer{enc, enc}
}
