package search

import (
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// maxSuggestDistance 是“你是不是要找”允许的最大编辑距离
const maxSuggestDistance = 2

// Suggester 在零结果时根据历史查询给出拼写建议
type Suggester struct {
	tracker *TrendingTracker
}

func NewSuggester(tracker *TrendingTracker) *Suggester {
	return &Suggester{tracker: tracker}
}

// Suggest 返回与 query 编辑距离最小且不超过 2 的历史查询。
// 查询本身不参与比较；距离相同时取计数较高的，再相同取字典序最小的。
func (s *Suggester) Suggest(query string) (string, bool) {
	q := normalizeTracked(query)
	if q == "" {
		return "", false
	}

	var (
		best      string
		bestDist  = maxSuggestDistance + 1
		bestCount int64
	)
	for _, candidate := range s.tracker.Snapshot() {
		term := candidate.Term
		if term == "" || term == q || !utf8.ValidString(term) {
			continue
		}
		d := levenshtein.Distance(q, term, nil)
		if d > maxSuggestDistance {
			continue
		}
		better := d < bestDist ||
			(d == bestDist && candidate.Count > bestCount) ||
			(d == bestDist && candidate.Count == bestCount && term < best)
		if better {
			best, bestDist, bestCount = term, d, candidate.Count
		}
	}
	return best, best != ""
}
