package header

import (
	"io"
)

// These are the header field names used by this library.
const (
	FieldBcc                     = "Bcc"
	FieldCc                      = "Cc"
	FieldContentDisposition      = "Content-Disposition"
	FieldContentID               = "Content-ID"
	FieldContentLanguage         = "Content-Language"
	FieldContentLocation         = "Content-Location"
	FieldContentTransferEncoding = "Content-Transfer-Encoding"
	FieldContentType             = "Content-Type"
	FieldDate                    = "Date"
	FieldFrom                    = "From"
	FieldInReplyTo               = "In-Reply-To"
	FieldMessageID               = "Message-ID"
	FieldReferences              = "References"
	FieldReplyTo                 = "Reply-To"
	FieldSender                  = "Sender"
	FieldSubject                 = "Subject"
	FieldTo                      = "To"
)

// FoldColumn is the column at which header values prefer to fold.
const FoldColumn = 76

// Value is implemented by everything that can be written as the body of a
// header field.
//
// WriteHeader writes the value to w. The written argument is the number of
// bytes already written on the current header line (the field name, colon,
// and space for the first line), which is used to decide where to fold. The
// value must finish by writing a line break and returns the number of bytes
// left trailing on the last line it wrote, which is always zero once the
// break has been written. Any error from w is returned immediately.
type Value interface {
	WriteHeader(w io.Writer, written int) (int, error)
}

// WriteField writes a complete header field line, "Name: value\r\n", to w.
func WriteField(w io.Writer, name string, v Value) error {
	if _, err := io.WriteString(w, name); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ": "); err != nil {
		return err
	}
	_, err := v.WriteHeader(w, len(name)+2)
	return err
}

// lineWriter helps values keep track of the column while they write. Once a
// write fails, all further writes are skipped and the error is kept.
type lineWriter struct {
	w   io.Writer
	col int
	err error
}

func newLineWriter(w io.Writer, written int) *lineWriter {
	return &lineWriter{w: w, col: written}
}

// write writes s unless a previous write failed.
func (lw *lineWriter) write(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s)
	lw.col += len(s)
}

// fold continues the field on the next line. The column counter resets.
func (lw *lineWriter) fold() {
	lw.write(Fold.String())
	lw.col = 0
}

// fits reports whether n more bytes fit on the current line.
func (lw *lineWriter) fits(n int) bool {
	return lw.col+n <= FoldColumn
}

// writeToken writes sep and then tok, or sep with its trailing space
// replaced by a fold when tok is too long for the current line. The first
// token of a value (empty sep) never folds.
func (lw *lineWriter) writeToken(sep, tok string) {
	if sep == "" || lw.col == 0 || lw.fits(len(sep)+len(tok)) {
		lw.write(sep)
		lw.write(tok)
		return
	}

	if len(sep) > 0 && sep[len(sep)-1] == ' ' {
		sep = sep[:len(sep)-1]
	}
	lw.write(sep)
	lw.fold()
	lw.write(tok)
}

// end writes the final line break and reports the result.
func (lw *lineWriter) end() (int, error) {
	lw.write(CRLF.String())
	if lw.err != nil {
		return 0, lw.err
	}
	return 0, nil
}
