package task

import (
	"log/slog"

	"github.com/hollowpress/hollow-press/internal/pkg/metrics"
	"github.com/hollowpress/hollow-press/pkg/service/search"
)

// TrendingDecayJob 把热门搜索词的计数减半，计数归零的词被移除
type TrendingDecayJob struct {
	tracker *search.TrendingTracker
	logger  *slog.Logger
}

func NewTrendingDecayJob(tracker *search.TrendingTracker, logger *slog.Logger) *TrendingDecayJob {
	return &TrendingDecayJob{tracker: tracker, logger: logger}
}

func (j *TrendingDecayJob) Name() string {
	return "TrendingDecayJob"
}

func (j *TrendingDecayJob) Run() {
	if j.tracker == nil {
		return
	}
	removed := j.tracker.Decay()
	remaining := j.tracker.Len()
	metrics.TrendingTerms.Set(float64(remaining))
	j.logger.Info("Trending counters decayed", slog.Int("removed", removed), slog.Int("remaining", remaining))
}
