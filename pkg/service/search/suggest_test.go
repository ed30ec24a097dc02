package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tr := NewTrendingTracker(100)
	tr.Record("vampire")
	tr.Record("ghost story")
	tr.Record("ghost story")
	tr.Record("ghoul")
	s := NewSuggester(tr)

	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
	}{
		{name: "编辑距离为二", query: "vampier", want: "vampire", wantOK: true},
		{name: "大小写归一化", query: "VAMPIER", want: "vampire", wantOK: true},
		{name: "距离过大", query: "zzzzzzz", wantOK: false},
		{name: "空查询", query: "  ", wantOK: false},
		{name: "自身不算建议", query: "ghoul", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Suggest(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestExcludesSelfEvenWhenTracked(t *testing.T) {
	tr := NewTrendingTracker(100)
	tr.Record("vampire")
	tr.Record("vampier")

	got, ok := NewSuggester(tr).Suggest("vampier")
	assert.True(t, ok)
	assert.Equal(t, "vampire", got)
}

func TestSuggestTieBreak(t *testing.T) {
	t.Run("距离相同时取计数高的", func(t *testing.T) {
		tr := NewTrendingTracker(100)
		tr.Record("cat")
		tr.Record("bat")
		tr.Record("bat")
		got, _ := NewSuggester(tr).Suggest("hat")
		assert.Equal(t, "bat", got)
	})

	t.Run("计数也相同时取字典序最小的", func(t *testing.T) {
		tr := NewTrendingTracker(100)
		tr.Record("rat")
		tr.Record("cat")
		tr.Record("bat")
		got, _ := NewSuggester(tr).Suggest("hat")
		assert.Equal(t, "bat", got)
	})

	t.Run("距离更小优先于计数", func(t *testing.T) {
		tr := NewTrendingTracker(100)
		for i := 0; i < 10; i++ {
			tr.Record("hxx")
		}
		tr.Record("hax")
		got, _ := NewSuggester(tr).Suggest("hat")
		assert.Equal(t, "hax", got)
	})
}
