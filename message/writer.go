package message

import (
	"errors"
	"io"
	"mime"
	"strings"

	"github.com/zostay/go-mailbuilder/message/header"
	"github.com/zostay/go-mailbuilder/message/transfer"
)

// ErrUnsupportedContentType is the panic value used when a multipart part has
// a Content-type header that is neither a *header.ContentType nor a
// *header.Raw, so no boundary can be attached to it.
var ErrUnsupportedContentType = errors.New("unsupported Content-type header value on multipart part")

// Writer serializes a tree of parts. The zero value is ready to use.
type Writer struct {
	// Classifier picks the transfer encoding for each leaf. When nil,
	// transfer.DefaultClassifier is used.
	Classifier transfer.Classifier

	// Boundary generates the boundary for each multipart part that does not
	// already have one. When nil, GenerateBoundary is used.
	Boundary func() string

	// SafeBoundary, when set, is used in place of Boundary. It is given the
	// content of every leaf in the tree being written and returns a boundary
	// that does not appear in it. GenerateSafeBoundary does this.
	SafeBoundary func(contents string) string
}

func (wr *Writer) classifier() transfer.Classifier {
	if wr.Classifier == nil {
		return transfer.DefaultClassifier
	}
	return wr.Classifier
}

func (wr *Writer) boundary() string {
	if wr.Boundary == nil {
		return GenerateBoundary()
	}
	return wr.Boundary()
}

// frame is a list of siblings still to be written and the boundary that
// separates them. The boundary is empty for the root.
type frame struct {
	parts    []*Part
	boundary string
}

// Write writes root and all of its sub-parts to w. It returns the number of
// bytes written and the first error returned by w.
//
// The tree is walked with an explicit stack, so the depth of the tree is not
// limited by the depth of the call stack. Each multipart part is given a
// boundary, reusing a boundary attribute already set on its Content-type. The
// boundary attribute is removed from the part once it has been written.
//
// This panics with ErrUnsupportedContentType if a multipart part has a
// Content-type value that cannot carry a boundary.
func (wr *Writer) Write(w io.Writer, root *Part) (int64, error) {
	cw := &countingWriter{w: w}

	next := wr.boundary
	if wr.SafeBoundary != nil {
		contents := leafContents(root)
		next = func() string { return wr.SafeBoundary(contents) }
	}

	var stack []frame
	cur := frame{parts: []*Part{root}}
	for {
		for len(cur.parts) > 0 {
			p := cur.parts[0]
			cur.parts = cur.parts[1:]

			if cur.boundary != "" {
				if _, err := io.WriteString(cw, "\r\n--"+cur.boundary+"\r\n"); err != nil {
					return cw.n, err
				}
			}

			var err error
			switch body := p.Body.(type) {
			case Text:
				err = wr.writeLeaf(cw, p, []byte(body), false)
			case Binary:
				err = wr.writeLeaf(cw, p, body, true)
			case Multipart:
				var boundary string
				boundary, err = wr.writeMultipartHeader(cw, p, next)
				if err != nil {
					break
				}

				if cur.boundary != "" {
					stack = append(stack, cur)
				}
				cur = frame{parts: body, boundary: boundary}
			default:
				err = wr.writeLeaf(cw, p, nil, false)
			}

			if err != nil {
				return cw.n, err
			}
		}

		if cur.boundary != "" {
			if _, err := io.WriteString(cw, "\r\n--"+cur.boundary+"--\r\n"); err != nil {
				return cw.n, err
			}
		}

		if len(stack) == 0 {
			return cw.n, nil
		}

		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}
}

// writeLeaf writes the header fields of a leaf part followed by its
// transfer-encoded content. An attachment disposition means the content is
// not body text. Binary content that is not text/* is always base64.
func (wr *Writer) writeLeaf(w io.Writer, p *Part, content []byte, binary bool) error {
	isText := !binary
	isAttachment := false
	for _, name := range p.Header.Names() {
		v := p.Header[name]
		switch {
		case binary && strings.EqualFold(name, header.FieldContentType):
			isText = strings.HasPrefix(mediaType(v), "text/")
		case strings.EqualFold(name, header.FieldContentDisposition):
			if ct, ok := v.(*header.ContentType); ok {
				isAttachment = ct.IsAttachment()
			}
		}

		if err := header.WriteField(w, name, v); err != nil {
			return err
		}
	}

	if !isText {
		_, err := transfer.WriteEncoded(w, transfer.Base64, content, false)
		return err
	}

	isBody := !isAttachment
	enc := wr.classifier().Classify(content, false, isBody)
	if enc == transfer.SevenBit && isBody {
		content = normalizeLineBreaks(content)
	}

	_, err := transfer.WriteEncoded(w, enc, content, isBody)
	return err
}

// writeMultipartHeader writes the Content-type with its boundary, the other
// header fields, and the blank line ending the header of a multipart part. It
// returns the boundary. New boundaries come from next.
func (wr *Writer) writeMultipartHeader(w io.Writer, p *Part, next func() string) (string, error) {
	ctName := ""
	for name := range p.Header {
		if strings.EqualFold(name, header.FieldContentType) {
			ctName = name
			break
		}
	}

	if _, err := io.WriteString(w, header.FieldContentType+": "); err != nil {
		return "", err
	}

	const written = len(header.FieldContentType) + 2

	var boundary string
	switch ct := p.Header[ctName].(type) {
	case nil:
		boundary = next()
		v := header.NewContentType(DefaultMultipartContentType).SetAttribute("boundary", boundary)
		if _, err := v.WriteHeader(w, written); err != nil {
			return "", err
		}
	case *header.ContentType:
		if b, ok := ct.Attribute("boundary"); ok && b != "" {
			boundary = b
		} else {
			boundary = next()
			ct.SetAttribute("boundary", boundary)
		}

		_, err := ct.WriteHeader(w, written)
		ct.RemoveAttribute("boundary")
		if err != nil {
			return "", err
		}
	case *header.Raw:
		raw := ct.String()
		if _, params, err := mime.ParseMediaType(raw); err == nil && params["boundary"] != "" {
			boundary = params["boundary"]
		} else {
			boundary = next()
			raw += `; boundary="` + boundary + `"`
		}

		if _, err := header.NewRaw(raw).WriteHeader(w, written); err != nil {
			return "", err
		}
	default:
		panic(ErrUnsupportedContentType)
	}

	for _, name := range p.Header.Names() {
		if name == ctName {
			continue
		}
		if err := header.WriteField(w, name, p.Header[name]); err != nil {
			return "", err
		}
	}

	_, err := io.WriteString(w, header.CRLF.String())
	return boundary, err
}

// leafContents returns the content of every leaf under root, run together.
func leafContents(root *Part) string {
	var sb strings.Builder
	stack := []*Part{root}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch body := p.Body.(type) {
		case Text:
			sb.WriteString(string(body))
		case Binary:
			sb.Write(body)
		case Multipart:
			stack = append(stack, body...)
		}
	}
	return sb.String()
}

// normalizeLineBreaks turns every LF not already preceded by CR into CRLF.
func normalizeLineBreaks(b []byte) []byte {
	out := make([]byte, 0, len(b)+len(b)/40)
	var prev byte
	for _, c := range b {
		if c == '\n' && prev != '\r' {
			out = append(out, '\r')
		}
		out = append(out, c)
		prev = c
	}
	return out
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
