package search

import (
	"sort"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

// Rank 原地排序：命中关键词数多的在前，相同时较新的在前。
// 最后按分类顺序和 ID 兜底，保证结果与内容源返回顺序无关。
func Rank(hits []*model.SearchHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if len(a.Matches) != len(b.Matches) {
			return len(a.Matches) > len(b.Matches)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.Type != b.Type {
			return a.Type.Rank() < b.Type.Rank()
		}
		return a.ID < b.ID
	})
}

// Paginate 返回第 page 页（从 1 开始）的结果，超出范围时返回空切片
func Paginate(hits []*model.SearchHit, page, limit int) []*model.SearchHit {
	start := (page - 1) * limit
	if start < 0 || start >= len(hits) {
		return []*model.SearchHit{}
	}
	end := start + limit
	if end > len(hits) {
		end = len(hits)
	}
	return hits[start:end]
}

// TotalPages 计算总页数，至少为 1
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}
