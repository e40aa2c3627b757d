// Package recipe loads message recipes: YAML files that describe a message
// for the mkmsg tool to build.
package recipe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zostay/go-mailbuilder/message"
	"github.com/zostay/go-mailbuilder/message/header"
)

// DefaultAttachmentType is used for attachments with no content_type.
const DefaultAttachmentType = "application/octet-stream"

var (
	// ErrNoSuchFile is returned when an attachment path does not exist.
	ErrNoSuchFile = errors.New("no such file")

	// ErrNoContent is returned when an attachment has neither a path nor text.
	ErrNoContent = errors.New("attachment needs a path or text")
)

// FieldError reports a problem with one field of a recipe.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("recipe field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Attachment describes an attachment or inline part. The content comes from
// Path or, for textual attachments, Text. Setting CID makes the part inline.
type Attachment struct {
	ContentType string `yaml:"content_type"`
	Filename    string `yaml:"filename"`
	Path        string `yaml:"path"`
	Text        string `yaml:"text"`
	CID         string `yaml:"cid"`
}

// Recipe describes a message.
type Recipe struct {
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Cc      string `yaml:"cc"`
	Bcc     string `yaml:"bcc"`
	ReplyTo string `yaml:"reply_to"`
	Sender  string `yaml:"sender"`

	Subject    string   `yaml:"subject"`
	Date       string   `yaml:"date"`
	MessageID  string   `yaml:"message_id"`
	InReplyTo  string   `yaml:"in_reply_to"`
	References []string `yaml:"references"`

	// Headers are extra fields, written as given.
	Headers map[string][]string `yaml:"headers"`

	Flowed      bool         `yaml:"flowed"`
	Text        string       `yaml:"text"`
	HTML        string       `yaml:"html"`
	Attachments []Attachment `yaml:"attachments"`

	// Boundaries are used in order for the generated boundaries, which
	// makes the output reproducible. Once used up, random ones follow.
	Boundaries []string `yaml:"boundaries"`

	// Dir is the directory attachment paths are relative to.
	Dir string `yaml:"-"`
}

// Load reads the recipe at path. Environment variables override the file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	return Parse(data, filepath.Dir(path))
}

// Parse reads a recipe from YAML. Attachment paths are relative to dir.
// Environment variables override the YAML.
func Parse(data []byte, dir string) (*Recipe, error) {
	r := &Recipe{}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}

	r.Dir = dir
	r.applyEnvVars()
	return r, nil
}

// applyEnvVars overrides recipe values with environment variable values.
// Only non-empty environment variables override existing values.
func (r *Recipe) applyEnvVars() {
	if v := os.Getenv("MKMSG_FROM"); v != "" {
		r.From = v
	}
	if v := os.Getenv("MKMSG_TO"); v != "" {
		r.To = v
	}
}

// Builder returns a message.Builder set up from the recipe.
func (r *Recipe) Builder() (*message.Builder, error) {
	b := message.NewBuilder()

	addresses := []struct {
		value string
		set   func(*header.Address) *message.Builder
	}{
		{r.From, b.From},
		{r.To, b.To},
		{r.Cc, b.Cc},
		{r.Bcc, b.Bcc},
		{r.ReplyTo, b.ReplyTo},
		{r.Sender, b.Sender},
	}
	for _, a := range addresses {
		if a.value != "" {
			a.set(header.ParseAddressList(a.value))
		}
	}

	if r.Subject != "" {
		b.Subject(r.Subject)
	}

	if r.Date != "" {
		d, err := header.ParseDate(r.Date)
		if err != nil {
			return nil, &FieldError{"date", err}
		}
		b.Date(d.Time())
	}

	if r.MessageID != "" {
		b.MessageID(r.MessageID)
	}
	if r.InReplyTo != "" {
		b.InReplyTo(r.InReplyTo)
	}
	if len(r.References) > 0 {
		b.References(r.References...)
	}

	names := make([]string, 0, len(r.Headers))
	for name := range r.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range r.Headers[name] {
			b.Header(name, header.NewRaw(v))
		}
	}
	if !b.Headers().Has("MIME-Version") {
		b.Header("MIME-Version", header.NewRaw("1.0"))
	}

	if r.Flowed {
		b.FormatFlowed()
	}
	if r.Text != "" {
		b.TextBody(r.Text)
	}
	if r.HTML != "" {
		b.HTMLBody(r.HTML)
	}

	for i, a := range r.Attachments {
		if err := r.addAttachment(b, a); err != nil {
			return nil, &FieldError{fmt.Sprintf("attachments[%d]", i), err}
		}
	}

	if len(r.Boundaries) > 0 {
		b.Writer.Boundary = sequence(r.Boundaries)
	} else {
		b.Writer.SafeBoundary = message.GenerateSafeBoundary
	}

	return b, nil
}

func (r *Recipe) addAttachment(b *message.Builder, a Attachment) error {
	ct := a.ContentType
	if ct == "" {
		ct = DefaultAttachmentType
	}

	filename := a.Filename
	if filename == "" && a.Path != "" {
		filename = filepath.Base(a.Path)
	}

	if a.Path == "" {
		if a.Text == "" {
			return ErrNoContent
		}
		if a.CID != "" {
			b.BinaryInline(ct, a.CID, []byte(a.Text))
			return nil
		}
		b.TextAttachment(ct, filename, a.Text)
		return nil
	}

	path := a.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Dir, path)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoSuchFile, path)
	} else if err != nil {
		return err
	}

	if a.CID != "" {
		b.BinaryInline(ct, a.CID, data)
		return nil
	}
	b.BinaryAttachment(ct, filename, data)
	return nil
}

// sequence returns a generator that hands out the given boundaries in order
// and then random ones.
func sequence(boundaries []string) func() string {
	next := 0
	return func() string {
		if next >= len(boundaries) {
			return message.GenerateBoundary()
		}
		next++
		return boundaries[next-1]
	}
}
