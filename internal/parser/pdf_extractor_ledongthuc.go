package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"resume-parser-go/internal/logger"
)

// LedongthucPDFExtractor 基于 ledongthuc/pdf 的纯Go解析后端
// 作为Eino解析器的备用：不依赖外部服务，逐页提取纯文本
type LedongthucPDFExtractor struct {
	log zerolog.Logger
}

// LedongthucOption 备用提取器的配置选项
type LedongthucOption func(*LedongthucPDFExtractor)

// WithLedongthucLogger 配置自定义日志记录器
func WithLedongthucLogger(log zerolog.Logger) LedongthucOption {
	return func(e *LedongthucPDFExtractor) {
		e.log = log
	}
}

var _ PDFExtractor = (*LedongthucPDFExtractor)(nil)

// NewLedongthucPDFExtractor 创建备用PDF提取器
func NewLedongthucPDFExtractor(options ...LedongthucOption) *LedongthucPDFExtractor {
	extractor := &LedongthucPDFExtractor{
		log: logger.Logger.With().Str("component", "ledongthuc_pdf_extractor").Logger(),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

// ExtractFromFile 从PDF文件提取文本和元数据
func (e *LedongthucPDFExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	startTime := time.Now()

	f, reader, err := pdflib.Open(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open PDF file %s: %w", filePath, err)
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// 单页失败不致命，纯图片页提取为空是可接受的
			e.log.Debug().Err(err).Int("page", i).Str("file", filePath).Msg("页面文本提取失败，跳过")
			continue
		}
		if i > 1 {
			buf.WriteString("\f") // 换页符作为页分隔
		}
		buf.WriteString(text)
	}

	fullContent := buf.String()
	metadata := map[string]interface{}{
		"extractor":              "ledongthuc",
		"source_file_path":       filePath,
		"page_count":             numPages,
		"text_length":            len(fullContent),
		"processing_duration_ms": time.Since(startTime).Milliseconds(),
	}

	e.log.Debug().
		Int("pages", numPages).
		Int("chars", len(fullContent)).
		Str("file", filePath).
		Msg("备用PDF提取完成")
	return fullContent, metadata, nil
}

// ExtractTextFromReader 从io.Reader提取文本
// ledongthuc/pdf 需要 ReadSeeker 和文件大小，因此先落到临时文件
func (e *LedongthucPDFExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	tmp, err := os.CreateTemp("", "resume-pdf-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, metadata, err := e.ExtractFromFile(ctx, tmpPath)
	if err != nil {
		return "", nil, err
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	metadata["source_file_path"] = uri
	for k, v := range extraMeta {
		metadata[k] = v
	}
	return text, metadata, nil
}

// ExtractTextFromBytes 从字节数组提取文本内容
func (e *LedongthucPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	return e.ExtractTextFromReader(ctx, bytes.NewReader(data), uri, extraMeta)
}
