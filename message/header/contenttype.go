package header

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"sort"
	"strings"
)

// ErrEmptyMediaType is returned by ParseContentType when there is no media
// type to parse.
var ErrEmptyMediaType = errors.New("empty media type")

// ContentType is a value with a list of attributes. It is used for the
// Content-Type and Content-Disposition fields. Attribute names are case
// insensitive and are stored in lowercase.
type ContentType struct {
	value string
	attrs map[string]string
}

// NewContentType returns a ContentType with no attributes.
func NewContentType(value string) *ContentType {
	return &ContentType{value: value}
}

// ParseContentType parses a field like `text/plain; charset=utf-8`.
func ParseContentType(s string) (*ContentType, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmptyMediaType
	}

	mt, params, err := mime.ParseMediaType(s)
	if err != nil {
		return nil, fmt.Errorf("unable to parse media type %q: %w", s, err)
	}

	ct := NewContentType(mt)
	for k, v := range params {
		ct.SetAttribute(k, v)
	}
	return ct, nil
}

// Value returns the media type or disposition.
func (c *ContentType) Value() string {
	return c.value
}

// SetAttribute sets an attribute and returns the receiver for chaining.
func (c *ContentType) SetAttribute(name, value string) *ContentType {
	if c.attrs == nil {
		c.attrs = make(map[string]string, 1)
	}
	c.attrs[strings.ToLower(name)] = value
	return c
}

// Attribute returns the named attribute and whether it was set.
func (c *ContentType) Attribute(name string) (string, bool) {
	v, ok := c.attrs[strings.ToLower(name)]
	return v, ok
}

// RemoveAttribute deletes the named attribute, returning the value it had.
func (c *ContentType) RemoveAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	v, ok := c.attrs[name]
	delete(c.attrs, name)
	return v, ok
}

// AttributeNames returns the attribute names in sorted order.
func (c *ContentType) AttributeNames() []string {
	names := make([]string, 0, len(c.attrs))
	for k := range c.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsText returns true for text/* media types.
func (c *ContentType) IsText() bool {
	return strings.HasPrefix(strings.ToLower(c.value), "text/")
}

// IsMultipart returns true for multipart/* media types.
func (c *ContentType) IsMultipart() bool {
	return strings.HasPrefix(strings.ToLower(c.value), "multipart/")
}

// IsAttachment returns true when the value is the attachment disposition.
func (c *ContentType) IsAttachment() bool {
	return strings.EqualFold(c.value, "attachment")
}

// String returns the value and attributes without folding.
func (c *ContentType) String() string {
	var sb strings.Builder
	sb.WriteString(c.value)
	for _, name := range c.AttributeNames() {
		sb.WriteString("; ")
		sb.WriteString(formatAttribute(name, c.attrs[name]))
	}
	return sb.String()
}

// WriteHeader writes the value and then each attribute in name order, folding
// between attributes as needed.
func (c *ContentType) WriteHeader(w io.Writer, written int) (int, error) {
	lw := newLineWriter(w, written)
	lw.write(c.value)
	for _, name := range c.AttributeNames() {
		lw.writeToken("; ", formatAttribute(name, c.attrs[name]))
	}
	return lw.end()
}

// formatAttribute renders name="value". Values that aren't plain ASCII use the
// RFC 2231 extended form.
func formatAttribute(name, value string) string {
	if needsEncoding(value) {
		f := mime.FormatMediaType("x/x", map[string]string{name: value})
		if _, ext, ok := strings.Cut(f, "; "); ok {
			return ext
		}
	}

	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return name + `="` + r.Replace(value) + `"`
}
