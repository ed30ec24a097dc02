/*
 * @Description: 热门搜索词统计，容量有限并定期衰减
 * @Author: 安知鱼
 * @Date: 2026-10-15 14:05:37
 * @LastEditTime: 2026-10-15 14:05:37
 * @LastEditors: 安知鱼
 */
package search

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

const (
	// DefaultTrendingCapacity 是默认最多跟踪的查询数
	DefaultTrendingCapacity = 10000
	// maxTrackedQueryLength 归一化后查询的最大长度
	maxTrackedQueryLength = 80
)

// NormalizeQuery 转小写、去首尾空白并折叠中间空白
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// normalizeTracked 在 NormalizeQuery 的基础上截断到最大长度
func normalizeTracked(query string) string {
	q := NormalizeQuery(query)
	if utf8.RuneCountInString(q) > maxTrackedQueryLength {
		q = strings.TrimSpace(string([]rune(q)[:maxTrackedQueryLength]))
	}
	return q
}

// TrendingTracker 统计查询次数。
// 超出容量时淘汰最久未出现的查询，Decay 周期性地把计数减半。
type TrendingTracker struct {
	mu     sync.Mutex
	counts *lru.Cache[string, int64]
}

// NewTrendingTracker 创建统计器，capacity 非正数时使用默认容量
func NewTrendingTracker(capacity int) *TrendingTracker {
	if capacity <= 0 {
		capacity = DefaultTrendingCapacity
	}
	counts, err := lru.New[string, int64](capacity)
	if err != nil {
		// 只有 capacity <= 0 时才会出错，上面已经处理
		panic(err)
	}
	return &TrendingTracker{counts: counts}
}

// Record 记录一次查询，返回记录后的计数。空查询不记录。
func (t *TrendingTracker) Record(query string) int64 {
	q := normalizeTracked(query)
	if q == "" {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	count, _ := t.counts.Get(q)
	count++
	t.counts.Add(q, count)
	return count
}

// Count 返回查询当前的计数，不影响淘汰顺序
func (t *TrendingTracker) Count(query string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	count, _ := t.counts.Peek(normalizeTracked(query))
	return count
}

// Len 返回当前跟踪的查询数
func (t *TrendingTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts.Len()
}

// Decay 把所有计数减半，减到 0 的查询被移除。返回移除的数量。
func (t *TrendingTracker) Decay() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for _, q := range t.counts.Keys() {
		count, ok := t.counts.Peek(q)
		if !ok {
			continue
		}
		count /= 2
		if count <= 0 {
			t.counts.Remove(q)
			removed++
			continue
		}
		// Keys 从旧到新排列，按这个顺序重新 Add，相对淘汰顺序不变
		t.counts.Add(q, count)
	}
	return removed
}

// Snapshot 返回当前所有查询及计数，顺序不保证
func (t *TrendingTracker) Snapshot() []model.TrendingTerm {
	t.mu.Lock()
	defer t.mu.Unlock()

	terms := make([]model.TrendingTerm, 0, t.counts.Len())
	for _, q := range t.counts.Keys() {
		if count, ok := t.counts.Peek(q); ok {
			terms = append(terms, model.TrendingTerm{Term: q, Count: count})
		}
	}
	return terms
}

// Top 返回计数最高的 n 个查询，计数相同时按字典序
func (t *TrendingTracker) Top(n int) []model.TrendingTerm {
	terms := t.Snapshot()
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if n >= 0 && n < len(terms) {
		terms = terms[:n]
	}
	return terms
}

// Reset 清空所有统计
func (t *TrendingTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts.Purge()
}
