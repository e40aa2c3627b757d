package transfer

import (
	"io"
	"mime/quotedprintable"
)

// NewQuotedPrintableEncoder will transform all bytes written to the returned
// io.WriteCloser into quoted-printable form and write them to the given
// io.Writer. Line breaks in the input are kept as hard CRLF line breaks.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	return &writer{qpw, qpw}
}

// NewBinaryQuotedPrintableEncoder works like NewQuotedPrintableEncoder, but
// treats CR and LF as ordinary bytes, so they are escaped rather than treated
// as line breaks.
func NewBinaryQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	qpw.Binary = true
	return &writer{qpw, qpw}
}
