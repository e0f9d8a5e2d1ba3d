package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/rs/zerolog"

	"resume-parser-go/internal/logger"
)

// FallbackExtractor 组合主/备两个解析后端
// 先尝试主后端；主后端报错、产出为空或产出疑似乱码时改用备用后端
// 两个后端都失败时返回 ErrDocumentUnreadable
type FallbackExtractor struct {
	primary   PDFExtractor
	secondary PDFExtractor

	// minTextLength 低于该字符数视为空结果
	minTextLength int
	// printableRatio 可打印字符占比低于该阈值视为乱码
	printableRatio float64

	log zerolog.Logger
}

// FallbackOption 组合提取器的配置选项
type FallbackOption func(*FallbackExtractor)

// WithMinTextLength 配置空结果判定的最小字符数
func WithMinTextLength(n int) FallbackOption {
	return func(f *FallbackExtractor) {
		f.minTextLength = n
	}
}

// WithPrintableRatio 配置乱码判定的可打印字符占比阈值
func WithPrintableRatio(ratio float64) FallbackOption {
	return func(f *FallbackExtractor) {
		f.printableRatio = ratio
	}
}

// WithFallbackLogger 配置自定义日志记录器
func WithFallbackLogger(log zerolog.Logger) FallbackOption {
	return func(f *FallbackExtractor) {
		f.log = log
	}
}

var _ PDFExtractor = (*FallbackExtractor)(nil)

// NewFallbackExtractor 创建主备组合提取器
func NewFallbackExtractor(primary, secondary PDFExtractor, options ...FallbackOption) *FallbackExtractor {
	f := &FallbackExtractor{
		primary:        primary,
		secondary:      secondary,
		minTextLength:  16,
		printableRatio: 0.8,
		log:            logger.Logger.With().Str("component", "fallback_extractor").Logger(),
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// ExtractFromFile 从PDF文件提取文本，按主备顺序尝试
func (f *FallbackExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	// 路径本身不可读时直接失败，不再逐个后端尝试
	if _, err := os.Stat(filePath); err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, filePath, err)
	}

	text, metadata, err := f.primary.ExtractFromFile(ctx, filePath)
	if ok, reason := f.usable(text, err); ok {
		return text, metadata, nil
	} else {
		f.log.Warn().Str("file", filePath).Str("reason", reason).Msg("主解析后端产出不可用，切换备用后端")
	}

	text, metadata, err = f.secondary.ExtractFromFile(ctx, filePath)
	if ok, reason := f.usable(text, err); ok {
		if metadata == nil {
			metadata = make(map[string]interface{})
		}
		metadata["fallback_used"] = true
		return text, metadata, nil
	} else {
		f.log.Error().Str("file", filePath).Str("reason", reason).Msg("备用解析后端同样失败")
	}

	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, filePath, err)
	}
	return "", nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, filePath, ErrEmptyText)
}

// ExtractTextFromReader 从io.Reader提取文本
// 需要重复消费输入，所以先读入内存再走字节数组路径
func (f *FallbackExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, uri, err)
	}
	return f.ExtractTextFromBytes(ctx, data, uri, extraMeta)
}

// ExtractTextFromBytes 从字节数组提取文本，按主备顺序尝试
func (f *FallbackExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	text, metadata, err := f.primary.ExtractTextFromReader(ctx, bytes.NewReader(data), uri, extraMeta)
	if ok, reason := f.usable(text, err); ok {
		return text, metadata, nil
	} else {
		f.log.Warn().Str("uri", uri).Str("reason", reason).Msg("主解析后端产出不可用，切换备用后端")
	}

	text, metadata, err = f.secondary.ExtractTextFromReader(ctx, bytes.NewReader(data), uri, extraMeta)
	if ok, reason := f.usable(text, err); ok {
		if metadata == nil {
			metadata = make(map[string]interface{})
		}
		metadata["fallback_used"] = true
		return text, metadata, nil
	} else {
		f.log.Error().Str("uri", uri).Str("reason", reason).Msg("备用解析后端同样失败")
	}

	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, uri, err)
	}
	return "", nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, uri, ErrEmptyText)
}

// usable 判断一次提取产出是否可用，reason用于日志
func (f *FallbackExtractor) usable(text string, err error) (bool, string) {
	if err != nil {
		return false, err.Error()
	}
	if len(text) < f.minTextLength {
		return false, "text too short"
	}
	if ratio := printableRatio(text); ratio < f.printableRatio {
		return false, fmt.Sprintf("printable ratio %.2f below threshold", ratio)
	}
	return true, ""
}

// printableRatio 统计文本中可打印字符（含空白）的占比
func printableRatio(text string) float64 {
	if text == "" {
		return 0
	}
	total, printable := 0, 0
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	return float64(printable) / float64(total)
}
