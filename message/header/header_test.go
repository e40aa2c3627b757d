package header_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailbuilder/message/header"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.Has("To"))

	h.Add("To", header.NewAddress("", "a@example.com"))
	h.Add("to", header.NewAddress("", "b@example.com"))
	h.Add("Subject", header.NewText("Hi"))
	h.Add("Received", header.NewRaw("first"))
	h.Add("Received", header.NewRaw("second"))

	assert.True(t, h.Has("TO"))
	assert.Len(t, h.Get("To"), 2)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []string{"Received", "Subject", "To"}, h.Names())

	buf := &bytes.Buffer{}
	n, err := h.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, "Received: first\r\n"+
		"Received: second\r\n"+
		"Subject: Hi\r\n"+
		"To: <a@example.com>\r\n"+
		"To: <b@example.com>\r\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)

	h.Set("subject", header.NewText("Replaced"))
	assert.Equal(t, []string{"Received", "To", "subject"}, h.Names())

	h.Delete("RECEIVED")
	assert.False(t, h.Has("Received"))
	assert.Nil(t, h.Get("Received"))
}

func TestHeader_WriteToError(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.Add("Subject", header.NewText("Hi"))

	_, err := h.WriteTo(brokenWriter{})
	assert.ErrorIs(t, err, errBroken)
}

func TestFields(t *testing.T) {
	t.Parallel()

	f := header.Fields{}
	f.Set("Content-Type", header.NewContentType("text/plain"))
	f.Set("content-type", header.NewContentType("text/html"))
	f.Set("Content-Disposition", header.NewContentType("inline"))

	assert.Len(t, f, 2)
	ct, ok := f.Get("CONTENT-TYPE").(*header.ContentType)
	require.True(t, ok)
	assert.Equal(t, "text/html", ct.Value())
	assert.Nil(t, f.Get("X-Missing"))
	assert.Equal(t, []string{"Content-Disposition", "content-type"}, f.Names())

	buf := &bytes.Buffer{}
	n, err := f.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, "Content-Disposition: inline\r\ncontent-type: text/html\r\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)

	f.Delete("Content-Disposition")
	assert.Len(t, f, 1)
}
