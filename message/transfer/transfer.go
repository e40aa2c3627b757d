package transfer

import (
	"fmt"
	"io"
)

// Encoding names a Content-transfer-encoding. The value is the token written
// to the header.
type Encoding string

const (
	SevenBit        Encoding = "7bit"             // bytes will be left as-is
	QuotedPrintable Encoding = "quoted-printable" // bytes will be transformed to quoted-printable
	Base64          Encoding = "base64"           // bytes will be transformed to base64
)

// HeaderName is the name of the header written ahead of every encoded body.
const HeaderName = "Content-Transfer-Encoding"

// String returns the header token for the encoding.
func (e Encoding) String() string {
	return string(e)
}

// Classifier picks the transfer encoding to use for a chunk of bytes. The
// singleLine flag is set when the bytes are a header value rather than a
// block of lines. The isBody flag is set when the bytes are message body text
// (rather than an attachment or a header), which enables line-ending
// normalization for 7bit output.
type Classifier interface {
	Classify(b []byte, singleLine, isBody bool) Encoding
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(b []byte, singleLine, isBody bool) Encoding

// Classify calls f.
func (f ClassifierFunc) Classify(b []byte, singleLine, isBody bool) Encoding {
	return f(b, singleLine, isBody)
}

// writer is an internal helper to make wrapping easier.
type writer struct {
	io.Writer
	io.Closer
}

// Close will close the nested writer if there is one.
func (w *writer) Close() error {
	if w.Closer != nil {
		return w.Closer.Close()
	}
	return nil
}

// Transcoding returns the encoder constructor for the given Encoding. The
// isBody flag selects text mode for quoted-printable, where line breaks in the
// input are emitted as hard CRLF breaks.
func Transcoding(e Encoding, isBody bool) func(io.Writer) io.WriteCloser {
	switch e {
	case QuotedPrintable:
		if isBody {
			return NewQuotedPrintableEncoder
		}
		return NewBinaryQuotedPrintableEncoder
	case Base64:
		return NewBase64Encoder
	default:
		return NewAsIsEncoder
	}
}

// WriteHeader writes the Content-Transfer-Encoding header line for e followed
// by the blank line that ends a part header.
func WriteHeader(w io.Writer, e Encoding) (int64, error) {
	n, err := fmt.Fprintf(w, "%s: %s\r\n\r\n", HeaderName, e)
	return int64(n), err
}

// WriteEncoded writes the Content-Transfer-Encoding header line for e, the
// blank line, and then b transformed by the matching encoder. Bytes for
// SevenBit are written exactly as given.
func WriteEncoded(w io.Writer, e Encoding, b []byte, isBody bool) (int64, error) {
	total, err := WriteHeader(w, e)
	if err != nil {
		return total, err
	}

	cw := &countingWriter{w: w}
	ew := Transcoding(e, isBody)(cw)
	if _, err := ew.Write(b); err != nil {
		return total + cw.n, err
	}

	err = ew.Close()
	return total + cw.n, err
}

// countingWriter counts the bytes the encoders pass through to the sink.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
