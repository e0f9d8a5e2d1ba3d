package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/processor"
	"resume-parser-go/internal/types"
)

// newParser 加载配置、初始化日志并装配解析器
func newParser(ctx context.Context) (*processor.ResumeParser, error) {
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Logger)

	return processor.NewResumeParser(ctx, cfg)
}

// runExtract 仅提取并打印原始文本
func runExtract() int {
	ctx := context.Background()
	p, err := newParser(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		return 1
	}

	text, metadata, err := p.ExtractText(ctx, *pdfFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "提取失败: %v\n", err)
		return 1
	}

	fmt.Println(truncateRunes(text, *maxLen))

	if extractor, ok := metadata["extractor"]; ok {
		fmt.Fprintf(os.Stderr, "提取后端: %v, 文本长度: %v\n", extractor, metadata["text_length"])
	}
	return 0
}

// truncateRunes 按字符数截断文本，保证不会把多字节字符切成两半
// n 为负数时不截断
func truncateRunes(text string, n int) string {
	if n < 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "\n...(截断)"
}

// runSections 打印章节切分结果
func runSections() int {
	ctx := context.Background()
	p, err := newParser(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		return 1
	}

	sections, err := p.Sections(ctx, *pdfFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "解析失败: %v\n", err)
		return 1
	}

	out, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "序列化失败: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

// runParse 解析为结构化记录并打印
func runParse() int {
	ctx := context.Background()
	p, err := newParser(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		return 1
	}

	result, err := p.ParseFile(ctx, *pdfFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "解析失败: %v\n", err)
		return 1
	}

	switch *format {
	case "pretty":
		printPretty(result.Record)
	default:
		out, err := json.MarshalIndent(result.Record, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "序列化失败: %v\n", err)
			return 1
		}
		fmt.Println(string(out))
	}
	return 0
}

// printPretty 人类可读的记录输出
func printPretty(record *types.ResumeRecord) {
	fmt.Printf("姓名: %s\n", record.Name)
	fmt.Printf("邮箱: %s\n", record.Contact.Email)
	fmt.Printf("电话: %s\n", record.Contact.Phone)
	if record.Contact.LinkedIn != "" {
		fmt.Printf("LinkedIn: %s\n", record.Contact.LinkedIn)
	}
	if record.Contact.GitHub != "" {
		fmt.Printf("GitHub: %s\n", record.Contact.GitHub)
	}
	if record.Summary != "" {
		fmt.Printf("总结: %s\n", record.Summary)
	}
	if len(record.Skills) > 0 {
		fmt.Printf("技能: %s\n", strings.Join(record.Skills, ", "))
	}
	for i, entry := range record.WorkExperience {
		fmt.Printf("工作经历 %d: %s | %s | %s\n", i+1, entry.Company, entry.Title, entry.Dates)
		if entry.Responsibilities != "" {
			fmt.Printf("  %s\n", strings.ReplaceAll(entry.Responsibilities, "\n", "\n  "))
		}
	}
	for _, item := range record.Education {
		fmt.Printf("教育: %s\n", item)
	}
	for _, item := range record.Certifications {
		fmt.Printf("证书: %s\n", item)
	}
	for _, item := range record.Projects {
		fmt.Printf("项目: %s\n", item)
	}
}
