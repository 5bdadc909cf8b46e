package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncatePreview(t *testing.T) {
	assert.Equal(t, "short message", truncatePreview("short message", 80))
	assert.Equal(t, "", truncatePreview("", 80))

	exact := strings.Repeat("a", 80)
	assert.Equal(t, exact, truncatePreview(exact, 80))

	long := strings.Repeat("a", 100)
	got := truncatePreview(long, 80)
	assert.Equal(t, strings.Repeat("a", 80)+"…", got)

	// multi-byte characters must never be split mid-sequence
	accented := strings.Repeat("é", 100)
	got = truncatePreview(accented, 80)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 80)+"…", got)
}
