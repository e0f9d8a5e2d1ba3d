package processor

import (
	"github.com/rs/zerolog"

	"resume-parser-go/internal/parser"
)

// Option 解析器选项函数类型
type Option func(*ResumeParser)

// WithPDFExtractor 替换PDF提取组件（例如测试桩或单后端提取器）
func WithPDFExtractor(extractor PDFExtractor) Option {
	return func(p *ResumeParser) {
		p.PDFExtractor = extractor
	}
}

// WithSplitter 替换章节切分组件
func WithSplitter(splitter SectionSplitter) Option {
	return func(p *ResumeParser) {
		p.Splitter = splitter
	}
}

// WithEntityRecognizer 替换NER组件；传nil则完全退化为正则启发式
func WithEntityRecognizer(recognizer parser.EntityRecognizer) Option {
	return func(p *ResumeParser) {
		p.recognizer = recognizer
		p.recognizerSet = true
	}
}

// WithFieldExtractor 替换字段提取组件
func WithFieldExtractor(fields *parser.FieldExtractor) Option {
	return func(p *ResumeParser) {
		p.Fields = fields
	}
}

// WithContactExtractor 替换联系方式提取组件
func WithContactExtractor(contact *parser.ContactExtractor) Option {
	return func(p *ResumeParser) {
		p.Contact = contact
	}
}

// WithLogger 设置日志记录器
func WithLogger(log zerolog.Logger) Option {
	return func(p *ResumeParser) {
		p.log = log
	}
}
