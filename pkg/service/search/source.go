/*
 * @Description: 内容源接口与固定注册表
 * @Author: 安知鱼
 * @Date: 2026-10-15 13:02:11
 * @LastEditTime: 2026-10-15 13:02:11
 * @LastEditors: 安知鱼
 */
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

// SourceQuery 是传给内容源的过滤条件。
// Category 只有文章源会使用。
type SourceQuery struct {
	DateFrom *time.Time
	Category string
}

// Source 把一个存储中的记录翻译为统一的 SearchableDocument。
// 实现不能做关键词匹配，匹配统一由 Matcher 完成。
type Source interface {
	Category() model.Category
	FetchCandidates(ctx context.Context, q SourceQuery) ([]*model.SearchableDocument, error)
}

// Registry 是按分类索引的内容源表，构造后不再修改
type Registry struct {
	sources map[model.Category]Source
}

// NewRegistry 注册内容源，同一分类只能注册一次
func NewRegistry(sources ...Source) (*Registry, error) {
	r := &Registry{sources: make(map[model.Category]Source, len(sources))}
	for _, src := range sources {
		if src == nil {
			continue
		}
		c := src.Category()
		if c.Rank() == len(model.AllCategories) {
			return nil, fmt.Errorf("未知的内容源分类 '%s'", c)
		}
		if _, exists := r.sources[c]; exists {
			return nil, fmt.Errorf("内容源分类 '%s' 重复注册", c)
		}
		r.sources[c] = src
	}
	return r, nil
}

// Lookup 返回分类对应的内容源
func (r *Registry) Lookup(c model.Category) (Source, bool) {
	src, ok := r.sources[c]
	return src, ok
}

// Categories 按规范顺序返回已注册的分类
func (r *Registry) Categories() []model.Category {
	result := make([]model.Category, 0, len(r.sources))
	for _, c := range model.AllCategories {
		if _, ok := r.sources[c]; ok {
			result = append(result, c)
		}
	}
	return result
}

// EffectiveTypes 计算请求分类与调用者权限的交集。
// 未指定分类时表示全部分类；非管理员调用时特权分类被移除。
func EffectiveTypes(requested []model.Category, privileged bool) []model.Category {
	wanted := make(map[model.Category]struct{}, len(requested))
	for _, c := range requested {
		wanted[c] = struct{}{}
	}

	result := make([]model.Category, 0, len(model.AllCategories))
	for _, c := range model.AllCategories {
		if len(wanted) > 0 {
			if _, ok := wanted[c]; !ok {
				continue
			}
		}
		if c.IsPrivileged() && !privileged {
			continue
		}
		result = append(result, c)
	}
	return result
}

// afterDate 判断 t 是否满足起始日期过滤
func afterDate(t time.Time, from *time.Time) bool {
	return from == nil || !t.Before(*from)
}
