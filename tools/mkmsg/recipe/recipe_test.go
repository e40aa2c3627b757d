package recipe_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailbuilder/message"
	"github.com/zostay/go-mailbuilder/tools/mkmsg/recipe"
)

const fullRecipe = `
from: John Doe <john@example.com>
to: jane@example.com, Bob <bob@example.com>
subject: Quarterly report
date: Wed, 03 Feb 2021 04:05:06 +0000
message_id: report-1@example.com
references:
  - root@example.com
headers:
  X-Mailer:
    - mkmsg
text: |
  See attached.
html: <p>See attached.</p>
attachments:
  - content_type: text/csv
    filename: numbers.csv
    text: "a,b\n1,2\n"
  - path: logo.gif
    content_type: image/gif
    cid: logo
boundaries:
  - outer
  - inner
`

func writeRecipe(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.gif"), []byte("GIF89a"), 0o644))

	path := filepath.Join(dir, "message.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	r, err := recipe.Load(writeRecipe(t, fullRecipe))
	require.NoError(t, err)

	assert.Equal(t, "John Doe <john@example.com>", r.From)
	assert.Equal(t, "Quarterly report", r.Subject)
	assert.Equal(t, []string{"mkmsg"}, r.Headers["X-Mailer"])
	assert.Equal(t, "See attached.\n", r.Text)
	require.Len(t, r.Attachments, 2)
	assert.Equal(t, "logo", r.Attachments[1].CID)
	assert.Equal(t, []string{"outer", "inner"}, r.Boundaries)
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := recipe.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Bad(t *testing.T) {
	t.Parallel()

	_, err := recipe.Parse([]byte("to: [unterminated"), ".")
	assert.Error(t, err)
}

func TestRecipe_Builder(t *testing.T) {
	t.Parallel()

	r, err := recipe.Load(writeRecipe(t, fullRecipe))
	require.NoError(t, err)

	b, err := r.Builder()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Date", "From", "MIME-Version", "Message-ID", "References", "Subject", "To", "X-Mailer",
	}, b.Headers().Names())

	buf := &bytes.Buffer{}
	_, err = b.WriteTo(buf)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Date: Wed, 03 Feb 2021 04:05:06 +0000\r\n"))
	assert.Contains(t, out, "\r\nFrom: John Doe <john@example.com>\r\n")
	assert.Contains(t, out, "\r\nTo: <jane@example.com>, Bob <bob@example.com>\r\n")
	assert.Contains(t, out, "\r\nContent-Type: multipart/mixed; boundary=\"outer\"\r\n")
	assert.Contains(t, out, "\r\nContent-Type: multipart/alternative; boundary=\"inner\"\r\n")
	assert.Contains(t, out, "Content-Disposition: attachment; filename=\"numbers.csv\"\r\n")
	assert.Contains(t, out, "Content-ID: <logo>\r\n")
	assert.Contains(t, out, "R0lGODlh")
	assert.True(t, strings.HasSuffix(out, "\r\n--outer--\r\n"))
}

func TestRecipe_BuilderGroup(t *testing.T) {
	t.Parallel()

	r, err := recipe.Parse([]byte("from: A B <a@b.com>\ncc: 'Team: x@example.com, C D <c@d.com>;'\ntext: hi\n"), ".")
	require.NoError(t, err)

	b, err := r.Builder()
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	_, err = b.WriteTo(buf)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Cc: Team: <x@example.com>, C D <c@d.com>;\r\n"))
	assert.Contains(t, out, "\r\nFrom: A B <a@b.com>\r\n")
}

func TestRecipe_GeneratedBoundaries(t *testing.T) {
	t.Parallel()

	r, err := recipe.Parse([]byte("from: a@example.com\ntext: plain\nhtml: <p>rich</p>\n"), ".")
	require.NoError(t, err)

	b, err := r.Builder()
	require.NoError(t, err)
	require.NotNil(t, b.Writer.SafeBoundary)
	assert.Nil(t, b.Writer.Boundary)

	buf := &bytes.Buffer{}
	_, err = b.WriteTo(buf)
	require.NoError(t, err)
	assert.Regexp(t, `Content-Type: multipart/alternative; boundary="[A-Za-z0-9]{30}"\r\n`, buf.String())
}

func TestRecipe_Reproducible(t *testing.T) {
	t.Parallel()

	path := writeRecipe(t, fullRecipe)
	render := func() string {
		r, err := recipe.Load(path)
		require.NoError(t, err)
		b, err := r.Builder()
		require.NoError(t, err)
		buf := &bytes.Buffer{}
		_, err = b.WriteTo(buf)
		require.NoError(t, err)
		return buf.String()
	}

	assert.Equal(t, render(), render())
}

func TestRecipe_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		recipe *recipe.Recipe
		field  string
		err    error
	}{
		{"bad-date", &recipe.Recipe{Date: "not a date"}, "date", nil},
		{"no-content", &recipe.Recipe{Attachments: []recipe.Attachment{{Filename: "x"}}}, "attachments[0]", recipe.ErrNoContent},
		{"no-file", &recipe.Recipe{Dir: t.TempDir(), Attachments: []recipe.Attachment{{Path: "missing.bin"}}}, "attachments[0]", recipe.ErrNoSuchFile},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.recipe.Builder()
			var fe *recipe.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestRecipe_Defaults(t *testing.T) {
	t.Parallel()

	r := &recipe.Recipe{
		Headers:     map[string][]string{"MIME-Version": {"1.0"}},
		Attachments: []recipe.Attachment{{Text: "plain"}},
	}

	b, err := r.Builder()
	require.NoError(t, err)
	assert.Len(t, b.Headers().Get("MIME-Version"), 1)

	p := b.Assemble()
	assert.Equal(t, "multipart/mixed", p.MediaType())
	require.Len(t, p.Parts(), 1)
	assert.Equal(t, recipe.DefaultAttachmentType, p.Parts()[0].MediaType())
	assert.Equal(t, message.Text("plain"), p.Parts()[0].Body)
}

func TestParse_Env(t *testing.T) {
	t.Setenv("MKMSG_FROM", "env@example.com")
	t.Setenv("MKMSG_TO", "")

	r, err := recipe.Parse([]byte("from: file@example.com\nto: to@example.com\n"), ".")
	require.NoError(t, err)
	assert.Equal(t, "env@example.com", r.From)
	assert.Equal(t, "to@example.com", r.To)
}
