package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{"session_id", "s1", "GEMINI_API_KEY", "abc", "chapter", 2, "dangling"})

	assert.Equal(t, "session_id", out[0])
	hashed, ok := out[1].(string)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(hashed, "hash:"))
	assert.Len(t, hashed, len("hash:")+12)
	assert.Equal(t, "[REDACTED]", out[3])
	assert.Equal(t, 2, out[5])
	assert.Equal(t, "dangling", out[6])
}

func TestHashValue_Stable(t *testing.T) {
	assert.Equal(t, hashValue("s1"), hashValue("s1"))
	assert.NotEqual(t, hashValue("s1"), hashValue("s2"))
	assert.Equal(t, "", hashValue(""))
}

func TestNop(t *testing.T) {
	l := Nop().With("session_id", "s1")
	l.Info("ignored", "chapter", 1)
	l.Sync()
}
