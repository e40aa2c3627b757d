package header

import "io"

// Raw is a header value written exactly as given. It is up to the caller to
// make sure the text is legal in a header, including any folding.
type Raw struct {
	text string
}

// NewRaw returns a Raw value.
func NewRaw(text string) *Raw {
	return &Raw{text}
}

// String returns the text.
func (r *Raw) String() string {
	return r.text
}

// WriteHeader writes the text followed by a line break.
func (r *Raw) WriteHeader(w io.Writer, written int) (int, error) {
	lw := newLineWriter(w, written)
	lw.write(r.text)
	return lw.end()
}
