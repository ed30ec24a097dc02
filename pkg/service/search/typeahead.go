package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hollowpress/hollow-press/internal/pkg/parser"
	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

const (
	// MinTypeaheadLength 输入联想需要的最少字符数
	MinTypeaheadLength = 2
	// DefaultTypeaheadLimit 输入联想默认返回条数
	DefaultTypeaheadLimit = 5
	// MaxTypeaheadLimit 输入联想最多返回条数
	MaxTypeaheadLimit = 20
)

// Typeahead 只在文章中做标题优先的子串联想，不提取上下文
type Typeahead struct {
	source Source
}

func NewTypeahead(source Source) *Typeahead {
	return &Typeahead{source: source}
}

// ClampTypeaheadLimit 把 limit 限制在 [1, 20]，0 表示默认值
func ClampTypeaheadLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultTypeaheadLimit
	case limit < 1:
		return 1
	case limit > MaxTypeaheadLimit:
		return MaxTypeaheadLimit
	default:
		return limit
	}
}

// Suggest 先取标题包含输入的文章，不足 limit 时再用正文包含输入的文章补齐
func (t *Typeahead) Suggest(ctx context.Context, partial string, limit int) ([]model.Suggestion, error) {
	needle := strings.ToLower(strings.TrimSpace(partial))
	if utf8.RuneCountInString(needle) < MinTypeaheadLength || t.source == nil {
		return []model.Suggestion{}, nil
	}
	limit = ClampTypeaheadLimit(limit)

	docs, err := t.source.FetchCandidates(ctx, SourceQuery{})
	if err != nil {
		return []model.Suggestion{}, fmt.Errorf("获取联想候选失败: %w", err)
	}

	result := make([]model.Suggestion, 0, limit)
	chosen := make(map[string]struct{}, limit)
	for _, d := range docs {
		if len(result) >= limit {
			return result, nil
		}
		if strings.Contains(strings.ToLower(d.Title), needle) {
			result = append(result, toSuggestion(d))
			chosen[d.SourceID] = struct{}{}
		}
	}
	for _, d := range docs {
		if len(result) >= limit {
			break
		}
		if _, ok := chosen[d.SourceID]; ok {
			continue
		}
		if strings.Contains(strings.ToLower(parser.StripHTML(d.Body)), needle) {
			result = append(result, toSuggestion(d))
		}
	}
	return result, nil
}

func toSuggestion(d *model.SearchableDocument) model.Suggestion {
	return model.Suggestion{
		ID:    d.SourceID,
		Title: d.Title,
		Type:  model.CategoryDocument,
		URL:   d.LinkTarget,
	}
}
