package parser

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"resume-parser-go/internal/types"
)

// 联系方式识别模式，全文搜索，不限定章节
var (
	emailRegexp = regexp.MustCompile(`(?i)[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// 覆盖常见写法：+86 138...、(415) 555-2671、010-12345678、138-0013-8000
	phoneRegexp = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?(?:\(\d{2,4}\)[-.\s]?)?\d{3,4}[-.\s]?\d{3,4}(?:[-.\s]?\d{2,4})?`)

	linkedinRegexp = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w%.-]+`)
	githubRegexp   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w.-]+`)

	digitRegexp     = regexp.MustCompile(`\d`)
	yearRangeRegexp = regexp.MustCompile(`^\d{4}\s*[-–—~]\s*\d{4}$`)
)

// ContactExtractor 联系方式提取器
type ContactExtractor struct {
	// defaultRegion 电话号码解析的默认地区码，例如 "CN"
	defaultRegion string
}

// NewContactExtractor 创建联系方式提取器
func NewContactExtractor(defaultRegion string) *ContactExtractor {
	if defaultRegion == "" {
		defaultRegion = "CN"
	}
	return &ContactExtractor{defaultRegion: defaultRegion}
}

// Extract 在全文中搜索邮箱、电话、LinkedIn和GitHub
// 每类取第一个命中；未命中保持为空，不报错
func (c *ContactExtractor) Extract(text string) types.ContactInfo {
	info := types.ContactInfo{}

	info.Email = emailRegexp.FindString(text)
	info.Phone = c.findPhone(text)
	info.LinkedIn = linkedinRegexp.FindString(text)

	// GitHub模式会命中linkedin之外的任意github路径，包括仓库链接，取第一个即可
	info.GitHub = githubRegexp.FindString(text)

	return info
}

// findPhone 提取并归一化电话号码
// 候选串先过位数和年份过滤，再用phonenumbers校验；有效号码输出E.164格式
// 没有任何有效号码时，保留第一个位数足够的原始候选作为兜底
func (c *ContactExtractor) findPhone(text string) string {
	candidates := phoneRegexp.FindAllString(text, -1)
	rawFallback := ""

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		digits := len(digitRegexp.FindAllString(candidate, -1))
		if digits < 7 {
			continue
		}
		if looksLikeDateRange(candidate) {
			continue
		}

		num, err := phonenumbers.Parse(candidate, c.defaultRegion)
		if err == nil && phonenumbers.IsValidNumber(num) {
			return phonenumbers.Format(num, phonenumbers.E164)
		}
		if rawFallback == "" && digits >= 10 {
			rawFallback = candidate
		}
	}
	return rawFallback
}

// looksLikeDateRange 过滤形如 "2020 - 2023" 的年份区间，避免误当电话
func looksLikeDateRange(candidate string) bool {
	return yearRangeRegexp.MatchString(candidate)
}
