package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// 命令行参数定义
var (
	pdfFilePath = pflag.String("pdf", "", "PDF简历文件路径 (必填)")
	configPath  = pflag.StringP("config", "c", "", "配置文件路径，缺省时在常见位置查找")
	format      = pflag.String("format", "json", "parse命令的输出格式: json 或 pretty")
	maxLen      = pflag.Int("maxlen", 2000, "extract命令显示的文本最大长度，设为-1显示全部")
	command     = pflag.String("cmd", "parse", "执行的命令: extract=仅提取文本, sections=章节切分, parse=解析为结构化记录")
)

func main() {
	pflag.Parse()

	if *pdfFilePath == "" {
		fmt.Fprintln(os.Stderr, "错误: 必须通过 --pdf 指定简历文件")
		pflag.Usage()
		os.Exit(1)
	}

	switch *command {
	case "extract":
		os.Exit(runExtract())
	case "sections":
		os.Exit(runSections())
	case "parse":
		os.Exit(runParse())
	default:
		fmt.Fprintf(os.Stderr, "错误: 未知命令 '%s'。支持的命令: extract, sections, parse\n", *command)
		pflag.Usage()
		os.Exit(1)
	}
}
