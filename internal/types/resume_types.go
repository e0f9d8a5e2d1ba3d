package types

// SectionType 表示简历章节的规范名称
// 固定闭集：所有章节标题同义词最终都归一化到这些值
type SectionType string

const (
	// SectionSummary 个人总结/求职意向章节
	SectionSummary SectionType = "SUMMARY"
	// SectionSkills 技能章节
	SectionSkills SectionType = "SKILLS"
	// SectionWorkExperience 工作经历章节
	SectionWorkExperience SectionType = "WORK_EXPERIENCE"
	// SectionEducation 教育经历章节
	SectionEducation SectionType = "EDUCATION"
	// SectionCertifications 证书章节
	SectionCertifications SectionType = "CERTIFICATIONS"
	// SectionProjects 项目经历章节
	SectionProjects SectionType = "PROJECTS"
	// SectionUnknown 未识别内容
	SectionUnknown SectionType = "UNKNOWN"
)

// AllSections 返回全部规范章节名，顺序固定，便于遍历和测试
func AllSections() []SectionType {
	return []SectionType{
		SectionSummary,
		SectionSkills,
		SectionWorkExperience,
		SectionEducation,
		SectionCertifications,
		SectionProjects,
	}
}

// SectionMap 规范章节名到章节正文的映射
// 每个规范章节至多一个文本片段，未匹配到任何标题的文本不会出现在这里
type SectionMap map[SectionType]string

// ContactInfo 联系方式
// 各字段均为全文正则搜索的首个匹配，未命中保持为空
type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// ExperienceEntry 一段工作经历
type ExperienceEntry struct {
	Company          string `json:"company"`
	Title            string `json:"title"`
	Dates            string `json:"dates"`
	Responsibilities string `json:"responsibilities"`
}

// ResumeRecord 解析后的简历记录
// 所有字段都是可选的：缺失用空字符串/空切片表示，不使用额外的"未解析"标记
type ResumeRecord struct {
	Name           string            `json:"name"`
	Contact        ContactInfo       `json:"contact"`
	Summary        string            `json:"summary"`
	Skills         []string          `json:"skills"`
	WorkExperience []ExperienceEntry `json:"work_experience"`
	Education      []string          `json:"education"`
	// EducationText 教育章节的原始文本，条目拆分不可靠时的兜底描述
	EducationText  string   `json:"education_text,omitempty"`
	Certifications []string `json:"certifications"`
	Projects       []string `json:"projects"`
}

// NewResumeRecord 创建一个所有序列字段均已初始化的空记录
// 保证JSON输出中的列表始终是[]而不是null
func NewResumeRecord() *ResumeRecord {
	return &ResumeRecord{
		Skills:         []string{},
		WorkExperience: []ExperienceEntry{},
		Education:      []string{},
		Certifications: []string{},
		Projects:       []string{},
	}
}
