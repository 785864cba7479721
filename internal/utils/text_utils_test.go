package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "short", tp.TruncateText("short", 10))
	assert.Equal(t, "unbounded", tp.TruncateText("unbounded", 0))

	out := tp.TruncateText(strings.Repeat("a", 20), 5)
	assert.Equal(t, "aaaaa"+truncationNotice, out)
}

func TestTruncateTextKeepsRunesWhole(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	// "é" is two bytes; cutting at 3 would split the second one
	out := tp.TruncateText("éé", 3)
	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasPrefix(out, "é\n"))
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "valid ✓", tp.SanitizeUTF8("valid ✓"))
	assert.Equal(t, "ab", tp.SanitizeUTF8("a\xffb"))
}

func TestNormalize(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	decomposed := "e\u0301"
	assert.Equal(t, "\u00e9", tp.Normalize(decomposed))
	assert.Equal(t, "a\nb", tp.Normalize("a\r\nb"))
}

func TestProcessText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	out := tp.ProcessText("caf\x80é au lait", 0)
	assert.Equal(t, "café au lait", out)
}
