package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/types"
)

// defaultSynonyms 内置的章节标题同义词表
// 声明式表格，规范章节名 -> 可接受的标题写法，可由配置逐项覆盖
var defaultSynonyms = map[types.SectionType][]string{
	types.SectionSummary: {
		"Summary", "Professional Summary", "Career Summary", "Executive Summary",
		"Summary of Qualifications", "Profile", "Professional Profile", "Personal Profile",
		"Career Profile", "Overview", "Objective", "Career Objective", "About Me",
		"自我评价", "个人简介", "自我介绍", "个人总结",
	},
	types.SectionSkills: {
		"Skills", "Technical Skills", "Core Competencies", "Key Skills",
		"Skills & Abilities", "Technical Proficiencies",
		"专业技能", "技能", "技术栈", "核心能力",
	},
	types.SectionWorkExperience: {
		"Work Experience", "Professional Experience", "Employment History",
		"Experience", "Work History", "Career History",
		"工作经历", "工作经验", "实习经历", "工作履历",
	},
	types.SectionEducation: {
		"Education", "Academic Background", "Educational Background", "Academic History",
		"教育经历", "教育背景", "学历", "学历背景",
	},
	types.SectionCertifications: {
		"Certifications", "Certification", "Licenses", "Licenses & Certifications",
		"Certificates", "证书", "资格证书", "职业资格",
	},
	types.SectionProjects: {
		"Projects", "Project Experience", "Personal Projects", "Key Projects",
		"项目经历", "项目经验", "项目描述",
	},
}

// uppercaseHeadingRegexp 全大写标题行，例如 "HOBBIES"
// 即使不在同义词表中，也会关闭当前章节（其后内容按未匹配文本丢弃）
var uppercaseHeadingRegexp = regexp.MustCompile(`^[A-Z]{4,}[A-Z\s&/]*$`)

// SectionSplitter 基于标题同义词表的章节切分器
// 逐行扫描：命中标题则关闭上一章节、打开新章节，标题之间的文本归属前一个标题
type SectionSplitter struct {
	headerRegexps map[types.SectionType]*regexp.Regexp

	// maxHeaderLen 标题行长度上限，段落内出现的同义词不会被误判为标题
	maxHeaderLen int
}

// NewSectionSplitter 创建章节切分器
// cfg.Synonyms 中出现的规范章节名整体覆盖内置同义词
func NewSectionSplitter(cfg config.SectionsConfig) (*SectionSplitter, error) {
	synonyms := make(map[types.SectionType][]string, len(defaultSynonyms))
	for section, list := range defaultSynonyms {
		synonyms[section] = list
	}
	for name, list := range cfg.Synonyms {
		section := types.SectionType(name)
		if _, ok := defaultSynonyms[section]; !ok {
			return nil, fmt.Errorf("未知的规范章节名: %s", name)
		}
		synonyms[section] = list
	}

	maxHeaderLen := cfg.MaxHeaderLen
	if maxHeaderLen <= 0 {
		maxHeaderLen = 48
	}

	splitter := &SectionSplitter{
		headerRegexps: make(map[types.SectionType]*regexp.Regexp, len(synonyms)),
		maxHeaderLen:  maxHeaderLen,
	}

	for section, list := range synonyms {
		quoted := make([]string, 0, len(list))
		for _, syn := range list {
			quoted = append(quoted, regexp.QuoteMeta(syn))
		}
		pattern := `(?i)^(?:` + strings.Join(quoted, "|") + `)\s*[:：]?\s*$`
		regex, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("编译章节标题正则表达式错误 %s: %w", section, err)
		}
		splitter.headerRegexps[section] = regex
	}

	return splitter, nil
}

// Split 将全文切分为章节
// 返回章节映射和第一个标题之前的前导文本（用于姓名/摘要启发式）
// 找不到任何标题时返回空映射，整篇文本作为前导文本
func (s *SectionSplitter) Split(ctx context.Context, text string) (types.SectionMap, string) {
	text = normalizeNewlines(text)
	lines := strings.Split(text, "\n")

	sections := make(types.SectionMap)
	var preamble strings.Builder
	var content strings.Builder

	current := types.SectionUnknown
	seenHeader := false

	flush := func() {
		if current == types.SectionUnknown {
			return
		}
		block := strings.TrimSpace(content.String())
		if block == "" {
			return
		}
		// 同一规范章节重复出现时合并，保持"至多一个片段"的约定
		if existing, ok := sections[current]; ok {
			sections[current] = existing + "\n" + block
		} else {
			sections[current] = block
		}
	}

	for _, line := range lines {
		if section, ok := s.classifyHeader(line); ok {
			flush()
			content.Reset()
			current = section
			seenHeader = true
			continue
		}

		// 未知的全大写标题行：关闭当前章节，后续文本不归属任何规范章节
		// 第一个已知标题之前不适用：全大写的姓名行（"JOHN DOE"）要留在前导文本里
		if seenHeader && s.isUppercaseHeading(line) {
			flush()
			content.Reset()
			current = types.SectionUnknown
			continue
		}

		if !seenHeader {
			preamble.WriteString(line)
			preamble.WriteString("\n")
			continue
		}
		if current != types.SectionUnknown {
			content.WriteString(line)
			content.WriteString("\n")
		}
	}
	flush()

	return sections, strings.TrimSpace(preamble.String())
}

// HeaderLine 判断一行是否为已知章节标题
// 姓名/摘要启发式用它跳过标题行；不含未知的全大写行，那可能正是全大写的姓名
func (s *SectionSplitter) HeaderLine(line string) bool {
	_, ok := s.classifyHeader(line)
	return ok
}

// classifyHeader 判断一行是否为已知章节标题
// 只接受标题形态的行：非空、足够短、同义词匹配整行
func (s *SectionSplitter) classifyHeader(line string) (types.SectionType, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len([]rune(trimmed)) > s.maxHeaderLen {
		return types.SectionUnknown, false
	}

	// 固定顺序遍历，保证同一行的归类是确定的
	for _, section := range types.AllSections() {
		if regex, ok := s.headerRegexps[section]; ok && regex.MatchString(trimmed) {
			return section, true
		}
	}
	return types.SectionUnknown, false
}

// isUppercaseHeading 判断一行是否为未知的全大写标题
func (s *SectionSplitter) isUppercaseHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len([]rune(trimmed)) > s.maxHeaderLen {
		return false
	}
	return uppercaseHeadingRegexp.MatchString(trimmed)
}

// normalizeNewlines 统一换行符并压缩多余空行
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return text
}
