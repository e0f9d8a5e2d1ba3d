package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/types"
)

// 字段级识别模式
var (
	// nameRegexp 姓名行：2-4个汉字，或2-4个首字母大写的英文单词
	nameRegexp = regexp.MustCompile(`^[\p{Han}]{2,4}$|^[A-Z][a-zA-Z'.-]*(?:\s+[A-Z][a-zA-Z'.-]*){1,3}$`)

	// dateRangeRegexp 日期区间，作为工作经历条目的边界信号
	// 接受 "Jan 2020 - Dec 2021"、"01/2020 - 12/2021"、"2020-2023"、"2020年3月至今"、"2022 - Present" 等写法
	dateRangeRegexp = regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4}年(?:\d{1,2}月)?|\d{4})\s*(?:[-–—~]|to|至)\s*((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4}年(?:\d{1,2}月)?|\d{4}|Present|Current|Now|至今)`)

	// skillDelimRegexp 技能分隔符：逗号、分号、顿号、竖线、项目符号、换行
	skillDelimRegexp = regexp.MustCompile(`[,;，；、|•·▪◦‣⁃]+|\n`)

	// bulletPrefixRegexp 列表项的前导符号
	bulletPrefixRegexp = regexp.MustCompile(`^(?:[-*•·▪◦‣⁃○>]+|\d+[.)、])\s*`)

	// 带标签的公司/职位行
	companyLabelRegexp = regexp.MustCompile(`(?i)^(?:company|employer|organization|公司|单位)\s*[:：]\s*(.+)$`)
	titleLabelRegexp   = regexp.MustCompile(`(?i)^(?:title|position|role|job title|职位|岗位)\s*[:：]\s*(.+)$`)
)

// FieldExtractor 按章节提取结构化子字段
// 所有方法都不报错：启发式未命中时返回空值，流水线整体降级为部分结果
type FieldExtractor struct {
	splitter   *SectionSplitter
	recognizer EntityRecognizer // 可为nil，此时退化为纯正则启发式
	contact    *ContactExtractor

	maxNameLines int
	log          zerolog.Logger
}

// NewFieldExtractor 创建字段提取器
func NewFieldExtractor(splitter *SectionSplitter, recognizer EntityRecognizer, contact *ContactExtractor, cfg config.SectionsConfig) *FieldExtractor {
	maxNameLines := cfg.MaxNameLines
	if maxNameLines <= 0 {
		maxNameLines = 5
	}
	return &FieldExtractor{
		splitter:     splitter,
		recognizer:   recognizer,
		contact:      contact,
		maxNameLines: maxNameLines,
		log:          logger.Logger.With().Str("component", "field_extractor").Logger(),
	}
}

// ExtractName 从文档前导文本中提取姓名
// 只看最前面的几行：先用姓名正则，再用NER的PERSON实体兜底
func (f *FieldExtractor) ExtractName(ctx context.Context, preamble string) string {
	lines := headLines(preamble, f.maxNameLines)

	for _, line := range lines {
		if f.looksLikeNoise(line) {
			continue
		}
		if nameRegexp.MatchString(line) {
			return line
		}
	}

	if f.recognizer != nil && len(lines) > 0 {
		entities, err := f.recognizer.Recognize(ctx, strings.Join(lines, "\n"))
		if err != nil {
			f.log.Debug().Err(err).Msg("姓名NER失败，忽略")
			return ""
		}
		for _, ent := range entities {
			if ent.Label == "PERSON" {
				return ent.Text
			}
		}
	}
	return ""
}

// ExtractSummary 提取个人总结
// 优先取SUMMARY章节；没有该章节时，从前导文本中取姓名之后第一个句子形态的行
func (f *FieldExtractor) ExtractSummary(sections types.SectionMap, preamble string, name string) string {
	if text, ok := sections[types.SectionSummary]; ok {
		return strings.TrimSpace(text)
	}

	pastName := name == ""
	for _, line := range splitNonEmptyLines(preamble) {
		if !pastName {
			if strings.Contains(line, name) {
				pastName = true
			}
			continue
		}
		if f.looksLikeNoise(line) {
			continue
		}
		if len(strings.Fields(line)) >= 4 || strings.HasSuffix(line, ".") || strings.HasSuffix(line, "。") {
			return line
		}
	}
	return ""
}

// ExtractSkills 从技能章节提取技能列表
// 按常见分隔符切分，去空白，按不区分大小写去重，保留首见写法
func (f *FieldExtractor) ExtractSkills(sectionText string) []string {
	skills := []string{}
	seen := make(map[string]bool)

	for _, token := range skillDelimRegexp.Split(sectionText, -1) {
		token = strings.TrimSpace(bulletPrefixRegexp.ReplaceAllString(strings.TrimSpace(token), ""))
		if token == "" {
			continue
		}
		key := strings.ToLower(token)
		if seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, token)
	}
	return skills
}

// ExtractListItems 按换行和项目符号把章节文本拆成条目
// 教育/证书/项目三个章节共用，不做进一步结构化
func (f *FieldExtractor) ExtractListItems(sectionText string) []string {
	items := []string{}
	for _, line := range splitNonEmptyLines(sectionText) {
		line = strings.TrimSpace(bulletPrefixRegexp.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}

// ExtractWorkExperience 把工作经历章节切分为条目序列
// 日期区间行是主要的条目边界信号；完全没有日期时退化为按空行分块
// 条目顺序与文档顺序一致，每个日期区间只归属一个条目
func (f *FieldExtractor) ExtractWorkExperience(ctx context.Context, sectionText string) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}
	lines := strings.Split(normalizeNewlines(sectionText), "\n")

	var dateIdx []int
	for i, line := range lines {
		if dateRangeRegexp.MatchString(line) {
			dateIdx = append(dateIdx, i)
		}
	}

	if len(dateIdx) == 0 {
		for _, block := range splitBlocks(lines) {
			if entry, ok := f.buildEntry(ctx, block, ""); ok {
				entries = append(entries, entry)
			}
		}
		return entries
	}

	// 每个日期行锚定一个条目；日期行之前紧邻的标题形态行（至多两行）是该条目的公司/职位
	headerStarts := make([]int, len(dateIdx))
	for k, di := range dateIdx {
		lower := 0
		if k > 0 {
			lower = dateIdx[k-1] + 1
		}
		start := di
		for start > lower && di-start < 2 {
			prev := strings.TrimSpace(lines[start-1])
			if prev == "" || !f.headerish(prev) {
				break
			}
			start--
		}
		headerStarts[k] = start
	}

	for k, di := range dateIdx {
		var entryLines []string

		// 条目起点：本条目的标题行；第一条目额外吸收区段开头的残余行
		begin := headerStarts[k]
		if k == 0 {
			begin = 0
		}
		entryLines = append(entryLines, lines[begin:di]...)
		entryLines = append(entryLines, lines[di])

		// 条目终点：下一条目的标题行之前
		end := len(lines)
		if k+1 < len(dateIdx) {
			end = headerStarts[k+1]
		}
		entryLines = append(entryLines, lines[di+1:end]...)

		dates := dateRangeRegexp.FindString(lines[di])
		if entry, ok := f.buildEntry(ctx, entryLines, dates); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// buildEntry 从一组行构建单个工作经历条目
func (f *FieldExtractor) buildEntry(ctx context.Context, entryLines []string, dates string) (types.ExperienceEntry, bool) {
	entry := types.ExperienceEntry{Dates: dates}
	var headerLines []string
	var respLines []string

	for _, raw := range entryLines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := companyLabelRegexp.FindStringSubmatch(line); m != nil {
			entry.Company = strings.TrimSpace(m[1])
			continue
		}
		if m := titleLabelRegexp.FindStringSubmatch(line); m != nil {
			entry.Title = strings.TrimSpace(m[1])
			continue
		}
		if entry.Dates == "" {
			if r := dateRangeRegexp.FindString(line); r != "" {
				entry.Dates = r
				continue
			}
		} else if dateRangeRegexp.FindString(line) == entry.Dates && strings.TrimSpace(dateRangeRegexp.ReplaceAllString(line, "")) == "" {
			// 纯日期行本身不进入职责文本
			continue
		}
		if len(headerLines) < 2 && len(respLines) == 0 && f.headerish(line) {
			headerLines = append(headerLines, line)
			continue
		}
		respLines = append(respLines, line)
	}

	f.assignCompanyTitle(ctx, &entry, headerLines)
	entry.Responsibilities = strings.Join(respLines, "\n")

	if entry.Company == "" && entry.Title == "" && entry.Dates == "" && entry.Responsibilities == "" {
		return entry, false
	}
	return entry, true
}

// assignCompanyTitle 把标题行分配为公司和职位
// 有识别器时用ORG实体判断哪一行是公司；否则默认第一行公司、第二行职位
func (f *FieldExtractor) assignCompanyTitle(ctx context.Context, entry *types.ExperienceEntry, headerLines []string) {
	if len(headerLines) == 0 {
		return
	}

	company, title := "", ""
	switch len(headerLines) {
	case 1:
		company = headerLines[0]
	default:
		company, title = headerLines[0], headerLines[1]
		if f.recognizer != nil {
			entities, err := f.recognizer.Recognize(ctx, strings.Join(headerLines, "\n"))
			if err == nil {
				if f.containsOrg(entities, headerLines[1]) && !f.containsOrg(entities, headerLines[0]) {
					company, title = headerLines[1], headerLines[0]
				}
			}
		}
	}

	if entry.Company == "" {
		entry.Company = company
	}
	if entry.Title == "" {
		entry.Title = title
	}
}

// containsOrg 判断一行文本中是否出现ORG实体
func (f *FieldExtractor) containsOrg(entities []Entity, line string) bool {
	for _, ent := range entities {
		if ent.Label == "ORG" && strings.Contains(line, ent.Text) {
			return true
		}
	}
	return false
}

// headerish 判断一行是否为条目标题形态（公司名/职位名）
func (f *FieldExtractor) headerish(line string) bool {
	if line == "" || bulletPrefixRegexp.MatchString(line) {
		return false
	}
	if dateRangeRegexp.MatchString(line) {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, "。") {
		return false
	}
	return len(strings.Fields(line)) <= 8
}

// looksLikeNoise 判断一行是否为标题或联系方式，姓名/摘要启发式会跳过这些行
func (f *FieldExtractor) looksLikeNoise(line string) bool {
	if f.splitter != nil && f.splitter.HeaderLine(line) {
		return true
	}
	return emailRegexp.MatchString(line) ||
		linkedinRegexp.MatchString(line) ||
		githubRegexp.MatchString(line) ||
		(f.contact != nil && f.contact.findPhone(line) != "")
}

// headLines 取文本最前面的若干个非空行
func headLines(text string, n int) []string {
	lines := splitNonEmptyLines(text)
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

// splitNonEmptyLines 拆分为去掉空白的非空行
func splitNonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// splitBlocks 按空行把行序列切分成块
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}
