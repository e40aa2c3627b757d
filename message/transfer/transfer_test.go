package transfer_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailbuilder/message/transfer"
)

const dec = `1 Timothy 6:10 - For the love of money is a root of all kinds of evils. It is through this craving that some have wandered away from the faith and pierced themselves with many pangs.`
const enc = `MSBUaW1vdGh5IDY6MTAgLSBGb3IgdGhlIGxvdmUgb2YgbW9uZXkgaXMgYSByb290IG9mIGFsbCBr
aW5kcyBvZiBldmlscy4gSXQgaXMgdGhyb3VnaCB0aGlzIGNyYXZpbmcgdGhhdCBzb21lIGhhdmUg
d2FuZGVyZWQgYXdheSBmcm9tIHRoZSBmYWl0aCBhbmQgcGllcmNlZCB0aGVtc2VsdmVzIHdpdGgg
bWFueSBwYW5ncy4=`

var encCRLF = strings.ReplaceAll(enc, "\n", "\r\n")

func TestNewBase64Encoder(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	ew := transfer.NewBase64Encoder(w)
	n, err := ew.Write([]byte(dec))
	assert.Equal(t, len(dec), n)
	assert.NoError(t, err)

	err = ew.Close()
	assert.NoError(t, err)

	assert.Equal(t, encCRLF, w.String())
}

func TestNewBase64Encoder_SmallWrites(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	ew := transfer.NewBase64Encoder(w)
	for i := 0; i < len(dec); i++ {
		_, err := ew.Write([]byte{dec[i]})
		require.NoError(t, err)
	}
	require.NoError(t, ew.Close())

	assert.Equal(t, encCRLF, w.String())
}

func TestNewBase64Encoder_ExactLine(t *testing.T) {
	t.Parallel()

	// 57 bytes of input encode to exactly 76 characters
	in := bytes.Repeat([]byte{'x'}, 57)

	w := &bytes.Buffer{}
	ew := transfer.NewBase64Encoder(w)
	_, err := ew.Write(in)
	require.NoError(t, err)
	require.NoError(t, ew.Close())

	assert.Len(t, w.String(), 76)
	assert.NotContains(t, w.String(), "\r\n")
}

// we only need to test that qp is being applied, not that the encoding is
// working correctly... we'll trust the golang core team to have done that
// already

var qpEnc = []byte("=3D>?")
var qpDec = []byte{0x3d, 0x3e, 0x3f}

func TestNewQuotedPrintableEncoder(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	qpewc := transfer.NewQuotedPrintableEncoder(w)
	n, err := qpewc.Write(qpDec)
	assert.Equal(t, len(qpDec), n)
	assert.NoError(t, err)

	err = qpewc.Close()
	assert.NoError(t, err)

	assert.Equal(t, qpEnc, w.Bytes())
}

func TestNewQuotedPrintableEncoder_LineBreaks(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	qpewc := transfer.NewQuotedPrintableEncoder(w)
	_, err := qpewc.Write([]byte("ol\xe1\nmundo"))
	require.NoError(t, err)
	require.NoError(t, qpewc.Close())
	assert.Equal(t, "ol=E1\r\nmundo", w.String())

	w.Reset()
	qpewc = transfer.NewBinaryQuotedPrintableEncoder(w)
	_, err = qpewc.Write([]byte("ol\xe1\nmundo"))
	require.NoError(t, err)
	require.NoError(t, qpewc.Close())
	assert.Equal(t, "ol=E1=0Amundo", w.String())
}

const asisString = `1234567890-=
~!@#$%^&*()_+
qwertyuiop[]\
` + "\x80\x90\xa0\xb0\xc0\xd0\xe0\xf0\xff\r\n\t\b"

func TestNewAsIsEncoder(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	ae := transfer.NewAsIsEncoder(w)
	n, err := ae.Write([]byte(asisString))
	assert.Equal(t, len(asisString), n)
	assert.NoError(t, err)
	assert.NoError(t, ae.Close())
	assert.Equal(t, []byte(asisString), w.Bytes())
}

func TestWriteEncoded(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	n, err := transfer.WriteEncoded(w, transfer.Base64, []byte(dec), false)
	assert.NoError(t, err)

	expect := "Content-Transfer-Encoding: base64\r\n\r\n" + encCRLF
	assert.Equal(t, expect, w.String())
	assert.Equal(t, int64(len(expect)), n)

	w.Reset()
	n, err = transfer.WriteEncoded(w, transfer.SevenBit, []byte("a\nb"), true)
	assert.NoError(t, err)
	assert.Equal(t, "Content-Transfer-Encoding: 7bit\r\n\r\na\nb", w.String())
	assert.Equal(t, int64(w.Len()), n)
}

type brokenWriter struct{}

var errBroken = errors.New("broken")

func (brokenWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestWriteEncoded_Error(t *testing.T) {
	t.Parallel()

	_, err := transfer.WriteEncoded(brokenWriter{}, transfer.QuotedPrintable, []byte("x"), true)
	assert.ErrorIs(t, err, errBroken)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         []byte
		singleLine bool
		expect     transfer.Encoding
	}{
		{"empty", []byte{}, false, transfer.SevenBit},
		{"ascii", []byte("Hello, world!\n"), false, transfer.SevenBit},
		{"tabs", []byte("a\tb\r\nc"), false, transfer.SevenBit},
		{"some-8bit", []byte("¡Hola Mundo! This is mostly plain text."), false, transfer.QuotedPrintable},
		{"mostly-8bit", []byte("안녕하세요 세계"), false, transfer.Base64},
		{"nul", []byte("abc\x00def"), false, transfer.Base64},
		{"control", []byte("bell\x07 rings here for a while"), false, transfer.QuotedPrintable},
		{"long-line", bytes.Repeat([]byte{'a'}, transfer.MaxLineLength+1), false, transfer.QuotedPrintable},
		{"max-line", bytes.Repeat([]byte{'a'}, transfer.MaxLineLength), false, transfer.SevenBit},
		{"header-ascii", []byte("Hello world"), true, transfer.SevenBit},
		{"header-newline", []byte("Hello\nthere world, and good day"), true, transfer.QuotedPrintable},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expect, transfer.Classify(tc.in, tc.singleLine, true))
			assert.Equal(t, tc.expect, transfer.DefaultClassifier.Classify(tc.in, tc.singleLine, false))
		})
	}
}

func TestTranscoding(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	ew := transfer.Transcoding(transfer.SevenBit, true)(w)
	_, err := ew.Write([]byte("as is\n"))
	require.NoError(t, err)
	require.NoError(t, ew.Close())
	assert.Equal(t, "as is\n", w.String())
}
