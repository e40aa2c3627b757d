package header

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/zostay/go-mailbuilder/message/transfer"
)

// ErrUnknownCharset is returned by the default CharsetEncoder when the
// charset has no known encoding.
var ErrUnknownCharset = errors.New("unknown charset")

// CharsetEncoder converts UTF-8 text into the named charset. It is used when
// writing values created with NewTextCharset. It may be replaced to support
// additional character sets.
var CharsetEncoder = func(charset, s string) ([]byte, error) {
	enc, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownCharset, charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownCharset, charset)
	}

	return enc.NewEncoder().Bytes([]byte(s))
}

func isUTF8(charset string) bool {
	return charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "utf8")
}

// MaxEncodedWord is the longest an RFC 2047 encoded word may be.
const MaxEncodedWord = 75

// wordEncoder writes text as encoded words in either the Q or the B form.
type wordEncoder struct {
	label   string
	b       bool
	convert func(string) []byte
}

// newWordEncoder picks the charset label and the form for s. Text that can't
// be converted to charset falls back to UTF-8.
func newWordEncoder(charset, s string) *wordEncoder {
	we := &wordEncoder{label: "utf-8", convert: func(s string) []byte { return []byte(s) }}
	b := []byte(s)
	if !isUTF8(charset) {
		if cb, err := CharsetEncoder(charset, s); err == nil {
			we.label = strings.ToLower(charset)
			we.convert = func(s string) []byte {
				cb, _ := CharsetEncoder(charset, s)
				return cb
			}
			b = cb
		}
	}

	we.b = transfer.Classify(b, true, false) == transfer.Base64
	return we
}

// qSafe reports whether c is written as itself in the Q form.
func qSafe(c byte) bool {
	return c > ' ' && c <= '~' && c != '=' && c != '?' && c != '_'
}

// size returns the length of the encoded word holding b.
func (we *wordEncoder) size(b []byte) int {
	n := len(we.label) + len("=?") + len("?q?") + len("?=")
	if we.b {
		return n + base64.StdEncoding.EncodedLen(len(b))
	}
	for _, c := range b {
		if qSafe(c) || c == ' ' {
			n++
		} else {
			n += 3
		}
	}
	return n
}

// word returns b as a single encoded word.
func (we *wordEncoder) word(b []byte) string {
	var sb strings.Builder
	sb.WriteString("=?")
	sb.WriteString(we.label)
	if we.b {
		sb.WriteString("?b?")
		sb.WriteString(base64.StdEncoding.EncodeToString(b))
	} else {
		sb.WriteString("?q?")
		for _, c := range b {
			switch {
			case c == ' ':
				sb.WriteByte('_')
			case qSafe(c):
				sb.WriteByte(c)
			default:
				fmt.Fprintf(&sb, "=%02X", c)
			}
		}
	}
	sb.WriteString("?=")
	return sb.String()
}

// encodedWords returns s as RFC 2047 encoded words. The first word is made to
// fit in first bytes when it can and the rest in MaxEncodedWord. Words never
// split a character.
func encodedWords(charset, s string, first int) []string {
	we := newWordEncoder(charset, s)

	var words []string
	limit := first
	chunk := ""
	for _, r := range s {
		next := chunk + string(r)
		if chunk != "" && we.size(we.convert(next)) > limit {
			words = append(words, we.word(we.convert(chunk)))
			chunk, limit = string(r), MaxEncodedWord
			continue
		}
		chunk = next
	}
	if chunk != "" || len(words) == 0 {
		words = append(words, we.word(we.convert(chunk)))
	}
	return words
}

// encodeWords returns s as one or more encoded words separated by spaces.
func encodeWords(charset, s string) string {
	return strings.Join(encodedWords(charset, s, MaxEncodedWord), " ")
}

// needsEncoding reports whether s can't be written into a header as is.
func needsEncoding(s string) bool {
	return transfer.Classify([]byte(s), true, false) != transfer.SevenBit
}
