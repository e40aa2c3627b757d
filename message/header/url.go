package header

import (
	"io"
	"strings"
)

// URL is a list of URLs, as found in the List-* fields of mailing list
// messages.
type URL struct {
	urls []string
}

// NewURL returns a URL value.
func NewURL(urls ...string) *URL {
	return &URL{urls}
}

// URLs returns the URLs.
func (u *URL) URLs() []string {
	return u.urls
}

// String returns the list without folding.
func (u *URL) String() string {
	parts := make([]string, len(u.urls))
	for i, s := range u.urls {
		parts[i] = "<" + s + ">"
	}
	return strings.Join(parts, ", ")
}

// WriteHeader writes each URL in angle brackets, separated by commas.
func (u *URL) WriteHeader(w io.Writer, written int) (int, error) {
	lw := newLineWriter(w, written)
	for i, s := range u.urls {
		sep := ""
		if i > 0 {
			sep = ", "
		}
		lw.writeToken(sep, "<"+s+">")
	}
	return lw.end()
}
