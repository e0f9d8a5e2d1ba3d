package parser

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExtractor 测试用提取器桩，返回预设文本或错误
type stubExtractor struct {
	text string
	err  error
	// CallCount 用于测试的调用次数
	CallCount int
}

func (s *stubExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	s.CallCount++
	return s.text, map[string]interface{}{"stub": true}, s.err
}

func (s *stubExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	s.CallCount++
	return s.text, map[string]interface{}{"stub": true}, s.err
}

func (s *stubExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	return s.ExtractTextFromReader(ctx, bytes.NewReader(data), uri, extraMeta)
}

// writeDummyFile 生成一个存在的文件路径，桩提取器不会真正读它
func writeDummyFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dummy.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 dummy"), 0o644))
	return path
}

const usableText = "Jane Smith\nSkills\nGo, Python, SQL and more text here"

// TestFallbackPrimarySucceeds 主后端可用时不触发备用后端
func TestFallbackPrimarySucceeds(t *testing.T) {
	primary := &stubExtractor{text: usableText}
	secondary := &stubExtractor{text: "secondary"}
	f := NewFallbackExtractor(primary, secondary)

	text, _, err := f.ExtractFromFile(context.Background(), writeDummyFile(t))
	require.NoError(t, err)
	assert.Equal(t, usableText, text)
	assert.Zero(t, secondary.CallCount)
}

// TestFallbackOnPrimaryError 主后端报错时使用备用后端的产出
func TestFallbackOnPrimaryError(t *testing.T) {
	primary := &stubExtractor{err: errors.New("boom")}
	secondary := &stubExtractor{text: usableText}
	f := NewFallbackExtractor(primary, secondary)

	text, metadata, err := f.ExtractFromFile(context.Background(), writeDummyFile(t))
	require.NoError(t, err)
	assert.Equal(t, usableText, text)
	assert.Equal(t, true, metadata["fallback_used"])
}

// TestFallbackOnEmptyPrimaryOutput 主后端产出为空视为不可用
func TestFallbackOnEmptyPrimaryOutput(t *testing.T) {
	primary := &stubExtractor{text: ""}
	secondary := &stubExtractor{text: usableText}
	f := NewFallbackExtractor(primary, secondary)

	text, _, err := f.ExtractFromFile(context.Background(), writeDummyFile(t))
	require.NoError(t, err)
	assert.Equal(t, usableText, text)
	assert.Equal(t, 1, primary.CallCount)
}

// TestFallbackOnGarbledPrimaryOutput 主后端产出乱码时切换备用后端
func TestFallbackOnGarbledPrimaryOutput(t *testing.T) {
	primary := &stubExtractor{text: strings.Repeat("\x00\x01", 64)}
	secondary := &stubExtractor{text: usableText}
	f := NewFallbackExtractor(primary, secondary)

	text, _, err := f.ExtractFromFile(context.Background(), writeDummyFile(t))
	require.NoError(t, err)
	assert.Equal(t, usableText, text)
}

// TestFallbackBothFail 两个后端都失败时返回文档不可读错误
func TestFallbackBothFail(t *testing.T) {
	primary := &stubExtractor{err: errors.New("boom")}
	secondary := &stubExtractor{err: errors.New("also boom")}
	f := NewFallbackExtractor(primary, secondary)

	_, _, err := f.ExtractFromFile(context.Background(), writeDummyFile(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocumentUnreadable))
}

// TestFallbackMissingFile 路径不存在时直接失败，不尝试任何后端
func TestFallbackMissingFile(t *testing.T) {
	primary := &stubExtractor{text: usableText}
	secondary := &stubExtractor{text: usableText}
	f := NewFallbackExtractor(primary, secondary)

	_, _, err := f.ExtractFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocumentUnreadable))
	assert.Zero(t, primary.CallCount)
	assert.Zero(t, secondary.CallCount)
}

// TestFallbackBytesPath 字节数组入口同样按主备顺序尝试
func TestFallbackBytesPath(t *testing.T) {
	primary := &stubExtractor{err: errors.New("boom")}
	secondary := &stubExtractor{text: usableText}
	f := NewFallbackExtractor(primary, secondary)

	text, _, err := f.ExtractTextFromBytes(context.Background(), []byte("%PDF"), "mem.pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, usableText, text)
}

// TestPrintableRatio 可打印字符占比的边界行为
func TestPrintableRatio(t *testing.T) {
	assert.Equal(t, 0.0, printableRatio(""))
	assert.Equal(t, 1.0, printableRatio("hello world\n"))
	assert.Less(t, printableRatio("ab\x00\x00"), 0.8)
}
