package message_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mailbuilder/message"
)

var nonAlphaNumericMatch = regexp.MustCompile(`[^a-zA-Z0-9]`)

func TestGenerateBoundary(t *testing.T) {
	t.Parallel()

	b := message.GenerateBoundary()
	assert.Len(t, b, 30)
	assert.False(t, nonAlphaNumericMatch.MatchString(b))
	assert.NotEqual(t, b, message.GenerateBoundary())
}

func TestGenerateSafeBoundary(t *testing.T) {
	t.Parallel()

	nb := message.GenerateSafeBoundary("some content")
	assert.Len(t, nb, 30)
	assert.False(t, nonAlphaNumericMatch.MatchString(nb))

	// the first two tries collide with the content
	tries := []string{"abc", "def", "xyz"}
	gen := func() string {
		b := tries[0]
		tries = tries[1:]
		return b
	}
	assert.Equal(t, "xyz", message.SafeBoundary(gen, "--abc--def--"))
}
