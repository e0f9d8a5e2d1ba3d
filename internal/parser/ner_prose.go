package parser

import (
	"context"
	"fmt"

	prose "github.com/jdkato/prose/v2"
)

// Entity 命名实体
type Entity struct {
	Text  string // 实体文本
	Label string // 实体类别，例如 PERSON、ORG、GPE
}

// EntityRecognizer 命名实体识别能力的窄接口
// 字段提取器只通过它使用NLP；传入nil时各启发式退化为纯正则
type EntityRecognizer interface {
	// Recognize 对一段文本做命名实体识别，返回按出现顺序排列的实体
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// ProseRecognizer 基于 jdkato/prose 的本地NER实现
type ProseRecognizer struct{}

var _ EntityRecognizer = (*ProseRecognizer)(nil)

// NewProseRecognizer 创建prose识别器
func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

// Recognize 实现EntityRecognizer接口
// 只做分词和实体抽取，关闭不需要的句子切分以减小开销
func (p *ProseRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose document creation failed: %w", err)
	}

	proseEntities := doc.Entities()
	entities := make([]Entity, 0, len(proseEntities))
	for _, ent := range proseEntities {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return entities, nil
}
