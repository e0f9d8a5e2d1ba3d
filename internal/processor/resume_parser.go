package processor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/parser"
	"resume-parser-go/internal/types"
)

// ParseResult 单次解析的结果
type ParseResult struct {
	// ParseID 本次解析的标识，仅用于日志和元数据关联
	ParseID string `json:"parse_id"`

	// Record 解析出的简历记录，文件可读时总是完整存在（字段可为空）
	Record *types.ResumeRecord `json:"record"`

	// Metadata 提取阶段产生的元数据（后端、页数、耗时等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ResumeParser 简历解析流水线
// 流程固定：提取文本 -> 章节切分 -> 字段提取 -> 汇总记录
// 不在两次调用之间保留任何状态，同一文件重复解析结果一致
type ResumeParser struct {
	PDFExtractor PDFExtractor
	Splitter     SectionSplitter
	Fields       *parser.FieldExtractor
	Contact      *parser.ContactExtractor

	recognizer    parser.EntityRecognizer
	recognizerSet bool

	log zerolog.Logger
}

// NewResumeParser 创建简历解析器
// 未被选项覆盖的组件按配置装配默认实现：
// Eino主后端+ledongthuc备用后端的组合提取器、同义词表切分器、prose NER
func NewResumeParser(ctx context.Context, cfg *config.Config, options ...Option) (*ResumeParser, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	p := &ResumeParser{
		log: logger.Logger.With().Str("component", "resume_parser").Logger(),
	}
	for _, option := range options {
		option(p)
	}

	// 调用方提供了切分器时不再构建默认实现，配置里的同义词表也不参与校验
	var splitter *parser.SectionSplitter
	if p.Splitter == nil {
		built, err := parser.NewSectionSplitter(cfg.Sections)
		if err != nil {
			return nil, fmt.Errorf("创建章节切分器失败: %w", err)
		}
		splitter = built
		p.Splitter = built
	} else if concrete, ok := p.Splitter.(*parser.SectionSplitter); ok {
		splitter = concrete
	}

	if p.Contact == nil {
		p.Contact = parser.NewContactExtractor(cfg.Contact.DefaultRegion)
	}

	if !p.recognizerSet {
		p.recognizer = parser.NewProseRecognizer()
	}

	if p.Fields == nil {
		p.Fields = parser.NewFieldExtractor(splitter, p.recognizer, p.Contact, cfg.Sections)
	}

	if p.PDFExtractor == nil {
		primary, err := parser.NewEinoPDFExtractor(ctx,
			parser.WithEinoTimeout(time.Duration(cfg.Extractor.TimeoutSeconds)*time.Second))
		if err != nil {
			return nil, fmt.Errorf("创建主PDF提取器失败: %w", err)
		}
		secondary := parser.NewLedongthucPDFExtractor()
		p.PDFExtractor = parser.NewFallbackExtractor(primary, secondary,
			parser.WithMinTextLength(cfg.Extractor.MinTextLength),
			parser.WithPrintableRatio(cfg.Extractor.PrintableRatio))
	}

	return p, nil
}

// ParseFile 解析单个PDF简历文件
// 只有文件不可读时返回错误；其余情况总是返回尽力而为的部分记录
func (p *ResumeParser) ParseFile(ctx context.Context, filePath string) (*ParseResult, error) {
	parseID := uuid.New().String()
	startTime := time.Now()

	text, metadata, err := p.PDFExtractor.ExtractFromFile(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("提取 %s 失败: %w", filePath, err)
	}

	record := p.assemble(ctx, text)
	p.logResult(parseID, filePath, record, time.Since(startTime))

	return &ParseResult{ParseID: parseID, Record: record, Metadata: metadata}, nil
}

// ParseReader 解析来自io.Reader的PDF内容，uri仅用于日志和元数据
func (p *ResumeParser) ParseReader(ctx context.Context, reader io.Reader, uri string) (*ParseResult, error) {
	parseID := uuid.New().String()
	startTime := time.Now()

	text, metadata, err := p.PDFExtractor.ExtractTextFromReader(ctx, reader, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("提取 %s 失败: %w", uri, err)
	}

	record := p.assemble(ctx, text)
	p.logResult(parseID, uri, record, time.Since(startTime))

	return &ParseResult{ParseID: parseID, Record: record, Metadata: metadata}, nil
}

// assemble 对已提取的全文执行章节切分和字段提取，汇总为记录
// 纯组装：任何章节或子字段缺失都只产生空值，不产生错误
func (p *ResumeParser) assemble(ctx context.Context, text string) *types.ResumeRecord {
	sections, preamble := p.Splitter.Split(ctx, text)

	record := types.NewResumeRecord()
	record.Name = p.Fields.ExtractName(ctx, preamble)
	record.Contact = p.Contact.Extract(text)
	record.Summary = p.Fields.ExtractSummary(sections, preamble, record.Name)

	if sectionText, ok := sections[types.SectionSkills]; ok {
		record.Skills = p.Fields.ExtractSkills(sectionText)
	}
	if sectionText, ok := sections[types.SectionWorkExperience]; ok {
		record.WorkExperience = p.Fields.ExtractWorkExperience(ctx, sectionText)
	}
	if sectionText, ok := sections[types.SectionEducation]; ok {
		record.Education = p.Fields.ExtractListItems(sectionText)
		record.EducationText = strings.TrimSpace(sectionText)
	}
	if sectionText, ok := sections[types.SectionCertifications]; ok {
		record.Certifications = p.Fields.ExtractListItems(sectionText)
	}
	if sectionText, ok := sections[types.SectionProjects]; ok {
		record.Projects = p.Fields.ExtractListItems(sectionText)
	}

	return record
}

// Sections 仅执行提取和章节切分，供CLI的sections命令使用
func (p *ResumeParser) Sections(ctx context.Context, filePath string) (types.SectionMap, error) {
	text, _, err := p.PDFExtractor.ExtractFromFile(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("提取 %s 失败: %w", filePath, err)
	}
	sections, _ := p.Splitter.Split(ctx, text)
	return sections, nil
}

// ExtractText 仅执行文本提取，供CLI的extract命令使用
func (p *ResumeParser) ExtractText(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	return p.PDFExtractor.ExtractFromFile(ctx, filePath)
}

// logResult 记录单次解析的摘要日志
func (p *ResumeParser) logResult(parseID, source string, record *types.ResumeRecord, duration time.Duration) {
	p.log.Info().
		Str("parse_id", parseID).
		Str("source", source).
		Str("name", record.Name).
		Int("skills", len(record.Skills)).
		Int("experience_entries", len(record.WorkExperience)).
		Int("education_items", len(record.Education)).
		Dur("duration", duration).
		Msg("简历解析完成")
}
