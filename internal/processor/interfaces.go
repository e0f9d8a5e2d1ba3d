package processor

import (
	"context"
	"io"

	"resume-parser-go/internal/types"
)

// PDFExtractor PDF提取器接口 - 与parser包中定义相同，组件按结构匹配接入
type PDFExtractor interface {
	// ExtractFromFile 从PDF文件提取文本和元数据
	ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error)

	// ExtractTextFromReader 从io.Reader提取文本和元数据
	ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error)

	// ExtractTextFromBytes 从字节数组提取文本和元数据
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error)
}

// SectionSplitter 章节切分器接口
type SectionSplitter interface {
	// Split 将全文切分为规范章节映射，并返回第一个标题前的前导文本
	Split(ctx context.Context, text string) (types.SectionMap, string)
}
