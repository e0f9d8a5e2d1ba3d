package processor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/parser"
	"resume-parser-go/internal/types"
)

// mockPDFExtractor 测试用PDF提取器，返回预设文本，绕过真实的PDF解析
type mockPDFExtractor struct {
	text string
	err  error
}

func (m *mockPDFExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	return m.text, map[string]interface{}{"extractor": "mock"}, m.err
}

func (m *mockPDFExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	return m.text, map[string]interface{}{"extractor": "mock"}, m.err
}

func (m *mockPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	return m.ExtractTextFromReader(ctx, bytes.NewReader(data), uri, extraMeta)
}

// newTestParser 用mock提取器和空NER装配解析器
func newTestParser(t *testing.T, text string, extractErr error) *ResumeParser {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Contact.DefaultRegion = "US"

	p, err := NewResumeParser(context.Background(), cfg,
		WithPDFExtractor(&mockPDFExtractor{text: text, err: extractErr}),
		WithEntityRecognizer(nil))
	require.NoError(t, err)
	return p
}

const sampleResumeText = `Jane Smith
jane.smith@example.com
(212) 867-5309
linkedin.com/in/janesmith

Summary
Data engineer with six years of experience building pipelines.

Skills
Python, SQL, Go

Work Experience
TechCorp Inc
Software Engineer
Jan 2020 - Dec 2021
Built data pipelines.
DataWorks LLC
Data Analyst
Feb 2022 - Present
Analyzed datasets.

Education
BSc Computer Science, University of Nowhere

Certifications
- AWS Certified Solutions Architect

Projects
- Resume parser for a hiring pipeline
`

// TestParseFileFullPipeline 端到端验证提取→切分→字段提取→汇总
func TestParseFileFullPipeline(t *testing.T) {
	p := newTestParser(t, sampleResumeText, nil)

	result, err := p.ParseFile(context.Background(), "sample.pdf")
	require.NoError(t, err)
	require.NotNil(t, result.Record)
	assert.NotEmpty(t, result.ParseID)

	record := result.Record
	assert.Equal(t, "Jane Smith", record.Name)
	assert.Equal(t, "jane.smith@example.com", record.Contact.Email)
	assert.Equal(t, "+12128675309", record.Contact.Phone)
	assert.Equal(t, "linkedin.com/in/janesmith", record.Contact.LinkedIn)
	assert.Equal(t, "Data engineer with six years of experience building pipelines.", record.Summary)
	assert.Equal(t, []string{"Python", "SQL", "Go"}, record.Skills)

	require.Len(t, record.WorkExperience, 2)
	assert.Equal(t, "TechCorp Inc", record.WorkExperience[0].Company)
	assert.Equal(t, "Jan 2020 - Dec 2021", record.WorkExperience[0].Dates)
	assert.Equal(t, "DataWorks LLC", record.WorkExperience[1].Company)
	assert.Equal(t, "Feb 2022 - Present", record.WorkExperience[1].Dates)

	assert.Equal(t, []string{"BSc Computer Science, University of Nowhere"}, record.Education)
	assert.Equal(t, []string{"AWS Certified Solutions Architect"}, record.Certifications)
	assert.Equal(t, []string{"Resume parser for a hiring pipeline"}, record.Projects)
}

// TestParseIdempotent 同一输入解析两次得到相同记录
func TestParseIdempotent(t *testing.T) {
	p := newTestParser(t, sampleResumeText, nil)

	first, err := p.ParseFile(context.Background(), "sample.pdf")
	require.NoError(t, err)
	second, err := p.ParseFile(context.Background(), "sample.pdf")
	require.NoError(t, err)

	assert.Equal(t, first.Record, second.Record)
}

// TestParseNoHeaders 没有任何章节标题时，章节字段为空但联系方式仍然可用
func TestParseNoHeaders(t *testing.T) {
	text := "some unstructured resume text\nreach me at jane@example.com any time\nthanks for reading this far"
	p := newTestParser(t, text, nil)

	result, err := p.ParseFile(context.Background(), "sample.pdf")
	require.NoError(t, err)

	record := result.Record
	assert.Equal(t, "jane@example.com", record.Contact.Email)
	assert.NotNil(t, record.Skills)
	assert.Empty(t, record.Skills)
	assert.Empty(t, record.WorkExperience)
	assert.Empty(t, record.Education)
	assert.Empty(t, record.Certifications)
	assert.Empty(t, record.Projects)
}

// TestParseUnreadableFile 提取失败时不产生部分记录
func TestParseUnreadableFile(t *testing.T) {
	p := newTestParser(t, "", parser.ErrDocumentUnreadable)

	result, err := p.ParseFile(context.Background(), "missing.pdf")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrDocumentUnreadable))
}

// TestParseReader Reader入口与文件入口产出一致的记录
func TestParseReader(t *testing.T) {
	p := newTestParser(t, sampleResumeText, nil)

	fromFile, err := p.ParseFile(context.Background(), "sample.pdf")
	require.NoError(t, err)
	fromReader, err := p.ParseReader(context.Background(), bytes.NewReader([]byte("%PDF")), "sample.pdf")
	require.NoError(t, err)

	assert.Equal(t, fromFile.Record, fromReader.Record)
}

// TestSectionsCommandPath 仅切分入口返回规范章节映射
func TestSectionsCommandPath(t *testing.T) {
	p := newTestParser(t, sampleResumeText, nil)

	sections, err := p.Sections(context.Background(), "sample.pdf")
	require.NoError(t, err)
	assert.Contains(t, sections, types.SectionSkills)
	assert.Contains(t, sections, types.SectionWorkExperience)
	assert.Equal(t, "Python, SQL, Go", sections[types.SectionSkills])
}

// TestParseAllCapsName 首行全大写的姓名完整保留到解析结果
func TestParseAllCapsName(t *testing.T) {
	p := newTestParser(t, "JOHN DOE\njohn@example.com\n\nSkills\nGo, Python", nil)

	result, err := p.ParseFile(context.Background(), "resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "JOHN DOE", result.Record.Name)
	assert.Equal(t, []string{"Go", "Python"}, result.Record.Skills)
}

// TestCustomSplitterOverride 调用方提供的切分器生效，不再构建默认切分器
func TestCustomSplitterOverride(t *testing.T) {
	custom, err := parser.NewSectionSplitter(config.SectionsConfig{
		Synonyms: map[string][]string{"SKILLS": {"Toolbox"}},
	})
	require.NoError(t, err)

	// 配置中的同义词表有问题时，外部提供的切分器仍应让装配成功
	cfg := config.DefaultConfig()
	cfg.Sections.Synonyms = map[string][]string{"NOT_A_SECTION": {"x"}}

	p, err := NewResumeParser(context.Background(), cfg,
		WithPDFExtractor(&mockPDFExtractor{text: "Toolbox\nGo, SQL"}),
		WithSplitter(custom),
		WithEntityRecognizer(nil))
	require.NoError(t, err)

	result, err := p.ParseFile(context.Background(), "resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, result.Record.Skills)
}

// TestNewResumeParserNilConfig 配置缺失直接报错
func TestNewResumeParserNilConfig(t *testing.T) {
	_, err := NewResumeParser(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilConfig)
}
