package parser

import (
	"context"
	"errors"
	"io"
)

// 提取失败相关的哨兵错误
var (
	// ErrDocumentUnreadable 文件无法作为PDF打开或所有解析后端均失败
	// 这是整条流水线中唯一的致命错误
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrEmptyText 解析成功但没有提取到有效文本（例如纯图片页）
	ErrEmptyText = errors.New("no text extracted")
)

// PDFExtractor PDF文本提取器接口
// 备用解析、章节切分和测试桩都通过该接口接入
type PDFExtractor interface {
	// ExtractFromFile 从PDF文件提取文本和元数据
	ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error)

	// ExtractTextFromReader 从io.Reader提取文本和元数据
	// uri 仅用于日志和元数据标识
	ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error)

	// ExtractTextFromBytes 从字节数组提取文本和元数据
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error)
}
