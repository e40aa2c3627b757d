package header

import (
	"io"
	"strings"
)

// MessageID is a list of message identifiers as used in the Message-ID,
// In-Reply-To, and References fields.
type MessageID struct {
	ids []string
}

// NewMessageID returns a MessageID value for the given ids. Any angle
// brackets surrounding an id are removed; they are added back on output.
func NewMessageID(ids ...string) *MessageID {
	clean := make([]string, len(ids))
	for i, id := range ids {
		clean[i] = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(id), "<"), ">")
	}
	return &MessageID{ids: clean}
}

// IDs returns the identifiers without angle brackets.
func (m *MessageID) IDs() []string {
	return m.ids
}

// String returns the identifiers as they appear in a header, without folding.
func (m *MessageID) String() string {
	parts := make([]string, len(m.ids))
	for i, id := range m.ids {
		parts[i] = "<" + id + ">"
	}
	return strings.Join(parts, " ")
}

// WriteHeader writes each id in angle brackets. Once a line reaches the fold
// column and more ids remain, the field is folded.
func (m *MessageID) WriteHeader(w io.Writer, written int) (int, error) {
	lw := newLineWriter(w, written)
	for i, id := range m.ids {
		lw.write("<" + id + ">")
		if lw.col >= FoldColumn && i < len(m.ids)-1 {
			lw.fold()
		}
	}
	return lw.end()
}
