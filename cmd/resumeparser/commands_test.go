package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// TestTruncateRunes 截断按字符计数，多字节字符不会被切成非法字节
func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 10))
	assert.Equal(t, "abc", truncateRunes("abc", 3))
	assert.Equal(t, "anything", truncateRunes("anything", -1))

	out := truncateRunes("张三的简历全文内容", 3)
	assert.True(t, strings.HasPrefix(out, "张三的"))
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "截断")
}
