package message

import (
	"io"
	"mime"
	"strings"

	"github.com/zostay/go-mailbuilder/message/header"
)

const (
	// DefaultMultipartContentType is the Content-type to use with a multipart
	// part when no explicit Content-type header has been set.
	DefaultMultipartContentType = "multipart/mixed"

	// DefaultCharset is the charset set on every text part.
	DefaultCharset = "utf-8"
)

// Body is the content of a Part. It is one of Text, Binary, or Multipart.
type Body interface {
	isBody()
}

// Text is textual content. When it is the body of a message (rather than an
// attachment) and goes out as 7bit, bare LF line breaks are turned into CRLF.
type Text string

// Binary is content of any kind. Unless the Content-type of the part is
// text/*, it is always written as base64.
type Binary []byte

// Multipart holds the sub-parts of a multipart/* part.
type Multipart []*Part

func (Text) isBody()      {}
func (Binary) isBody()    {}
func (Multipart) isBody() {}

// Part is a single MIME part. Each Part is either a leaf holding Text or
// Binary content or a branch holding sub-parts.
type Part struct {
	// Header holds the fields of the part. There is always a Content-type.
	Header header.Fields

	// Body is the content of the part.
	Body Body
}

// NewPart returns a part with the given Content-type and body.
func NewPart(contentType header.Value, body Body) *Part {
	return &Part{
		Header: header.Fields{header.FieldContentType: contentType},
		Body:   body,
	}
}

// NewMultipart returns a branch part of the given multipart/* type. The
// boundary is picked when the part is written.
func NewMultipart(contentType string, parts ...*Part) *Part {
	return NewPart(header.NewContentType(contentType), Multipart(parts))
}

// NewText returns a text/plain part.
func NewText(text string) *Part {
	return NewTextOther("text/plain", text)
}

// NewTextFlowed returns a text/plain part marked as format=flowed.
func NewTextFlowed(text string) *Part {
	ct := header.NewContentType("text/plain").
		SetAttribute("charset", DefaultCharset).
		SetAttribute("format", "flowed")
	return NewPart(ct, Text(text))
}

// NewTextOther returns a textual part of the given type, such as text/csv.
func NewTextOther(contentType, text string) *Part {
	ct := header.NewContentType(contentType).SetAttribute("charset", DefaultCharset)
	return NewPart(ct, Text(text))
}

// NewHTML returns a text/html part.
func NewHTML(html string) *Part {
	return NewTextOther("text/html", html)
}

// NewBinary returns a leaf part holding the given bytes.
func NewBinary(contentType string, data []byte) *Part {
	return NewPart(header.NewContentType(contentType), Binary(data))
}

// Attachment marks the part as an attachment with the given file name.
func (p *Part) Attachment(filename string) *Part {
	return p.SetHeader(header.FieldContentDisposition,
		header.NewContentType("attachment").SetAttribute("filename", filename))
}

// Inline marks the part for display within the message.
func (p *Part) Inline() *Part {
	return p.SetHeader(header.FieldContentDisposition, header.NewContentType("inline"))
}

// Language sets the Content-Language of the part.
func (p *Part) Language(lang string) *Part {
	return p.SetHeader(header.FieldContentLanguage, header.NewText(lang))
}

// ContentID sets the Content-ID of the part, which is how HTML refers to
// inline images. A "cid:" prefix is ignored.
func (p *Part) ContentID(cid string) *Part {
	return p.SetHeader(header.FieldContentID, header.NewMessageID(strings.TrimPrefix(cid, "cid:")))
}

// Location sets the Content-Location of the part.
func (p *Part) Location(loc string) *Part {
	return p.SetHeader(header.FieldContentLocation, header.NewRaw(loc))
}

// SetHeader sets any header field on the part.
func (p *Part) SetHeader(name string, v header.Value) *Part {
	if p.Header == nil {
		p.Header = header.Fields{}
	}
	p.Header.Set(name, v)
	return p
}

// AddPart appends sub-parts to a branch. It does nothing to a leaf.
func (p *Part) AddPart(parts ...*Part) *Part {
	if mp, ok := p.Body.(Multipart); ok {
		p.Body = append(mp, parts...)
	}
	return p
}

// Parts returns the sub-parts of a branch or nil for a leaf.
func (p *Part) Parts() []*Part {
	mp, _ := p.Body.(Multipart)
	return mp
}

// IsMultipart returns true for a branch part.
func (p *Part) IsMultipart() bool {
	_, ok := p.Body.(Multipart)
	return ok
}

// MediaType returns the media type from the Content-type header, in
// lowercase, or the empty string when it is missing or can't be read.
func (p *Part) MediaType() string {
	return mediaType(p.Header.Get(header.FieldContentType))
}

// WriteTo writes the part using a Writer with the default settings.
func (p *Part) WriteTo(w io.Writer) (int64, error) {
	return (&Writer{}).Write(w, p)
}

func mediaType(v header.Value) string {
	switch ct := v.(type) {
	case *header.ContentType:
		return strings.ToLower(ct.Value())
	case *header.Raw:
		if mt, _, err := mime.ParseMediaType(ct.String()); err == nil {
			return mt
		}
	}
	return ""
}
