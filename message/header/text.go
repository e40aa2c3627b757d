package header

import (
	"io"
	"strings"
)

// Text is unstructured text, like the Subject field.
type Text struct {
	text    string
	charset string
}

// NewText returns a Text value. Text that is not plain ASCII is written as
// UTF-8 encoded words.
func NewText(text string) *Text {
	return &Text{text: text}
}

// NewTextCharset returns a Text value that is written in the named charset
// when encoding is required.
func NewTextCharset(charset, text string) *Text {
	return &Text{text: text, charset: charset}
}

// String returns the text as given.
func (t *Text) String() string {
	return t.text
}

// Charset returns the charset used for encoded words.
func (t *Text) Charset() string {
	if t.charset == "" {
		return "utf-8"
	}
	return t.charset
}

// WriteHeader writes the text, folding between words to keep lines short.
// Encoded words are sized so the first one fits on the line it starts.
func (t *Text) WriteHeader(w io.Writer, written int) (int, error) {
	lw := newLineWriter(w, written)

	words := strings.Split(t.text, " ")
	if needsEncoding(t.text) {
		words = encodedWords(t.charset, t.text, FoldColumn-written)
	}

	for i, word := range words {
		sep := ""
		if i > 0 {
			sep = " "
		}
		lw.writeToken(sep, word)
	}
	return lw.end()
}
