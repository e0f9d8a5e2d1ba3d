package processor

import (
	"errors"

	"resume-parser-go/internal/parser"
)

var (
	// ErrDocumentUnreadable 文件无法作为PDF读取，整条流水线中唯一的致命错误
	// 与parser包的哨兵是同一个值，调用方在任一层errors.Is都成立
	ErrDocumentUnreadable = parser.ErrDocumentUnreadable

	// ErrNilConfig 创建解析器时未提供配置
	ErrNilConfig = errors.New("nil config")
)
