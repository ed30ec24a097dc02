package search

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

func TestTrendingRecord(t *testing.T) {
	tr := NewTrendingTracker(10)

	assert.Equal(t, int64(1), tr.Record("  Ghost   Story "))
	assert.Equal(t, int64(2), tr.Record("ghost story"))
	assert.Equal(t, int64(2), tr.Count("GHOST STORY"))
	assert.Equal(t, int64(0), tr.Record("   "))
	assert.Equal(t, 1, tr.Len())
}

func TestTrendingLengthCap(t *testing.T) {
	tr := NewTrendingTracker(10)
	long := strings.Repeat("a", 100)
	tr.Record(long)

	terms := tr.Snapshot()
	require.Len(t, terms, 1)
	assert.Len(t, []rune(terms[0].Term), maxTrackedQueryLength)
	assert.Equal(t, int64(1), tr.Count(strings.Repeat("a", 120)))
}

func TestTrendingCapacityEvictsOldest(t *testing.T) {
	tr := NewTrendingTracker(3)
	tr.Record("one")
	tr.Record("two")
	tr.Record("three")
	tr.Record("one") // one 变为最近使用
	tr.Record("four")

	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, int64(0), tr.Count("two"))
	assert.Equal(t, int64(2), tr.Count("one"))
}

func TestTrendingDecay(t *testing.T) {
	tr := NewTrendingTracker(10)
	for i := 0; i < 5; i++ {
		tr.Record("banshee")
	}
	tr.Record("ghoul")

	removed := tr.Decay()
	assert.Equal(t, 1, removed)
	assert.Equal(t, int64(2), tr.Count("banshee"))
	assert.Equal(t, int64(0), tr.Count("ghoul"))

	tr.Decay()
	tr.Decay()
	assert.Equal(t, 0, tr.Len())
}

func TestTrendingTop(t *testing.T) {
	tr := NewTrendingTracker(10)
	for term, n := range map[string]int{"wraith": 3, "banshee": 3, "ghoul": 1, "vampire": 5} {
		for i := 0; i < n; i++ {
			tr.Record(term)
		}
	}

	assert.Equal(t, []model.TrendingTerm{
		{Term: "vampire", Count: 5},
		{Term: "banshee", Count: 3},
		{Term: "wraith", Count: 3},
	}, tr.Top(3))
	assert.Len(t, tr.Top(100), 4)
}

func TestTrendingConcurrentRecord(t *testing.T) {
	tr := NewTrendingTracker(100)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Record("shared")
			tr.Record(fmt.Sprintf("q%d", i%5))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(50), tr.Count("shared"))
	assert.Equal(t, int64(10), tr.Count("q0"))
}
