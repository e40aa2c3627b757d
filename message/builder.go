package message

import (
	"io"
	"strings"
	"time"

	"github.com/zostay/go-mailbuilder/message/header"
)

// Now returns the time used for the Date field when none is set.
var Now = time.Now

// Builder assembles a complete message from simple inputs. The zero value is
// ready to use. Setters return the Builder so calls may be chained. Each call
// to a header setter adds one more value, written as its own line, so calling
// From twice gives two From fields.
//
// A Builder is used up by WriteTo or Assemble: the body inputs are moved into
// the tree that is returned or written, leaving none behind.
type Builder struct {
	// Writer is used to write the body and to generate the Message-ID when
	// none was set.
	Writer Writer

	header header.Header

	flowed      bool
	text, html  *string
	attachments []*Part
	body        *Part
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Headers returns the top-level header of the message.
func (b *Builder) Headers() *header.Header {
	return &b.header
}

// MessageID adds a value to the Message-ID field. When none is added, one is
// generated.
func (b *Builder) MessageID(id string) *Builder {
	b.header.Add(header.FieldMessageID, header.NewMessageID(id))
	return b
}

// InReplyTo adds a value to the In-Reply-To field.
func (b *Builder) InReplyTo(ids ...string) *Builder {
	b.header.Add(header.FieldInReplyTo, header.NewMessageID(ids...))
	return b
}

// References adds a value to the References field.
func (b *Builder) References(ids ...string) *Builder {
	b.header.Add(header.FieldReferences, header.NewMessageID(ids...))
	return b
}

// Sender adds a value to the Sender field.
func (b *Builder) Sender(a *header.Address) *Builder {
	b.header.Add(header.FieldSender, a)
	return b
}

// From adds a value to the From field.
func (b *Builder) From(a *header.Address) *Builder {
	b.header.Add(header.FieldFrom, a)
	return b
}

// To adds a value to the To field.
func (b *Builder) To(a *header.Address) *Builder {
	b.header.Add(header.FieldTo, a)
	return b
}

// Cc adds a value to the Cc field.
func (b *Builder) Cc(a *header.Address) *Builder {
	b.header.Add(header.FieldCc, a)
	return b
}

// Bcc adds a value to the Bcc field. It is written along with the other
// fields; removing it before delivery is up to the caller.
func (b *Builder) Bcc(a *header.Address) *Builder {
	b.header.Add(header.FieldBcc, a)
	return b
}

// ReplyTo adds a value to the Reply-To field.
func (b *Builder) ReplyTo(a *header.Address) *Builder {
	b.header.Add(header.FieldReplyTo, a)
	return b
}

// Subject adds a value to the Subject field.
func (b *Builder) Subject(subject string) *Builder {
	b.header.Add(header.FieldSubject, header.NewText(subject))
	return b
}

// Date adds a value to the Date field. When none is added, the current time is
// used.
func (b *Builder) Date(t time.Time) *Builder {
	b.header.Add(header.FieldDate, header.NewDate(t))
	return b
}

// Header adds a value to any field. Fields may hold more than one value.
func (b *Builder) Header(name string, v header.Value) *Builder {
	b.header.Add(name, v)
	return b
}

// FormatFlowed marks the text body as format=flowed.
func (b *Builder) FormatFlowed() *Builder {
	b.flowed = true
	return b
}

// TextBody sets the plain text body. Only one may be set; use Body to build
// something more complicated.
func (b *Builder) TextBody(text string) *Builder {
	b.text = &text
	return b
}

// HTMLBody sets the HTML body. Only one may be set; use Body to build
// something more complicated.
func (b *Builder) HTMLBody(html string) *Builder {
	b.html = &html
	return b
}

// BinaryAttachment adds an attachment.
func (b *Builder) BinaryAttachment(contentType, filename string, data []byte) *Builder {
	b.attachments = append(b.attachments, NewBinary(contentType, data).Attachment(filename))
	return b
}

// TextAttachment adds a textual attachment, which is given a utf-8 charset.
func (b *Builder) TextAttachment(contentType, filename, text string) *Builder {
	b.attachments = append(b.attachments, NewTextOther(contentType, text).Attachment(filename))
	return b
}

// BinaryInline adds an inline part, with the given Content-ID, so that the
// HTML body can refer to it.
func (b *Builder) BinaryInline(contentType, cid string, data []byte) *Builder {
	b.attachments = append(b.attachments, NewBinary(contentType, data).Inline().ContentID(cid))
	return b
}

// Body sets a custom MIME tree, which is used in place of all the other body
// inputs.
func (b *Builder) Body(p *Part) *Builder {
	b.body = p
	return b
}

// Assemble returns the MIME tree for the message and takes the body inputs
// out of the Builder. A custom Body always wins. Otherwise the text and HTML
// bodies are grouped as a multipart/alternative and any attachments follow
// them in a multipart/mixed. With no inputs at all, the result is a text part
// holding a single newline.
func (b *Builder) Assemble() *Part {
	body, text, html, attachments := b.body, b.textPart(), b.htmlPart(), b.attachments
	b.body, b.text, b.html, b.attachments = nil, nil, nil, nil

	if body != nil {
		return body
	}

	var content *Part
	switch {
	case text != nil && html != nil:
		content = NewMultipart("multipart/alternative", text, html)
	case text != nil:
		content = text
	case html != nil:
		content = html
	}

	switch {
	case len(attachments) == 0 && content == nil:
		return NewText("\n")
	case len(attachments) == 0:
		return content
	case content == nil:
		return NewMultipart("multipart/mixed", attachments...)
	}

	parts := make([]*Part, 0, len(attachments)+1)
	parts = append(parts, content)
	parts = append(parts, attachments...)
	return NewMultipart("multipart/mixed", parts...)
}

func (b *Builder) textPart() *Part {
	switch {
	case b.text == nil:
		return nil
	case b.flowed:
		return NewTextFlowed(*b.text)
	default:
		return NewText(*b.text)
	}
}

func (b *Builder) htmlPart() *Part {
	if b.html == nil {
		return nil
	}
	return NewHTML(*b.html)
}

// WriteTo writes the message to w. The explicit header fields are written
// first, in name order. Then, unless they were set, a generated Message-ID and
// the current Date follow, in that order. The assembled body comes last.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	hasDate, hasMessageID := false, false
	for _, name := range b.header.Names() {
		switch {
		case strings.EqualFold(name, header.FieldDate):
			hasDate = true
		case strings.EqualFold(name, header.FieldMessageID):
			hasMessageID = true
		}
	}

	if _, err := b.header.WriteTo(cw); err != nil {
		return cw.n, err
	}

	if !hasMessageID {
		id := header.NewMessageID(b.Writer.boundary())
		if err := header.WriteField(cw, header.FieldMessageID, id); err != nil {
			return cw.n, err
		}
	}

	if !hasDate {
		if err := header.WriteField(cw, header.FieldDate, header.NewDate(Now())); err != nil {
			return cw.n, err
		}
	}

	n, err := b.Writer.Write(w, b.Assemble())
	return cw.n + n, err
}
