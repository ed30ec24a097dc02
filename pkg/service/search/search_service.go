/*
 * @Description: 搜索服务 - 聚合多个内容源的查询编排
 * @Author: 安知鱼
 * @Date: 2025-01-27 10:00:00
 * @LastEditTime: 2026-10-15 14:40:52
 * @LastEditors: 安知鱼
 */
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hollowpress/hollow-press/internal/pkg/metrics"
	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/service/utility"
)

var (
	// ErrInvalidQuery 表示查询为空或没有长度不少于 3 的关键词
	ErrInvalidQuery = errors.New("搜索关键词无效：至少需要一个长度不少于 3 的词")
	// ErrSourceUnavailable 表示内容源查询失败
	ErrSourceUnavailable = errors.New("内容源不可用")
)

const (
	DefaultLimit         = 10
	MaxLimit             = 50
	DefaultSourceTimeout = 5 * time.Second
	// fromDateLayout 是 meta.from 与缓存键中的日期格式
	fromDateLayout = "2006-01-02"
)

// Options 是搜索服务的可调参数，零值表示使用默认值
type Options struct {
	CacheTTL         time.Duration
	SourceTimeout    time.Duration
	TrendingCapacity int
}

// SearchService 持有结果缓存和热门词统计，生命周期与进程一致
type SearchService struct {
	registry      *Registry
	cache         *ResultCache
	tracker       *TrendingTracker
	suggester     *Suggester
	typeahead     *Typeahead
	sourceTimeout time.Duration
}

// NewSearchService 创建搜索服务。store 为 nil 时使用内存缓存。
func NewSearchService(registry *Registry, store utility.CacheService, opts Options) *SearchService {
	if store == nil {
		store = utility.NewMemoryCacheService()
	}
	if opts.SourceTimeout <= 0 {
		opts.SourceTimeout = DefaultSourceTimeout
	}

	tracker := NewTrendingTracker(opts.TrendingCapacity)
	docSource, _ := registry.Lookup(model.CategoryDocument)

	return &SearchService{
		registry:      registry,
		cache:         NewResultCache(store, opts.CacheTTL),
		tracker:       tracker,
		suggester:     NewSuggester(tracker),
		typeahead:     NewTypeahead(docSource),
		sourceTimeout: opts.SourceTimeout,
	}
}

// ClampLimit 把每页数量限制在 [1, 50]，0 表示默认值
func ClampLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit < 1:
		return 1
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// ClampPage 页码最小为 1
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Search 执行聚合搜索
func (s *SearchService) Search(ctx context.Context, req model.SearchRequest) (*model.SearchEnvelope, error) {
	start := time.Now()
	defer func() { metrics.SearchDuration.Observe(time.Since(start).Seconds()) }()

	terms := ParseTerms(req.Query)
	if len(terms) == 0 {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, ErrInvalidQuery
	}

	query := NormalizeQuery(req.Query)
	limit := ClampLimit(req.Limit)
	page := ClampPage(req.Page)
	types := EffectiveTypes(req.Types, req.Privileged)

	params := CacheKeyParams{
		Query:    query,
		Types:    types,
		Limit:    limit,
		Page:     page,
		Category: req.Category,
	}
	if req.DateFrom != nil {
		params.From = req.DateFrom.Format(fromDateLayout)
	}
	key := params.Key()

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("⚠️  %v", err)
	}
	if ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeOK).Inc()
		return cached, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	hits, degraded, err := s.collect(ctx, types, terms, req)
	if err != nil {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	Rank(hits)
	total := len(hits)

	env := &model.SearchEnvelope{
		Results: Paginate(hits, page, limit),
		Meta: model.SearchMeta{
			Query:    query,
			Total:    total,
			Page:     page,
			Pages:    TotalPages(total, limit),
			Limit:    limit,
			Types:    types,
			Degraded: degraded,
		},
	}
	if params.From != "" {
		from := params.From
		env.Meta.From = &from
	}
	if req.Category != "" {
		category := req.Category
		env.Meta.Category = &category
	}

	s.tracker.Record(query)
	metrics.TrendingTerms.Set(float64(s.tracker.Len()))

	// 建议在写缓存之前计算，缓存命中时返回的内容与首次计算完全一致
	if total == 0 {
		if suggestion, ok := s.suggester.Suggest(query); ok {
			env.Meta.DidYouMean = &suggestion
		}
	}

	if degraded {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeDegraded).Inc()
		return env, nil
	}
	if err := s.cache.Put(ctx, key, env); err != nil {
		log.Printf("⚠️  %v", err)
	}
	metrics.SearchRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	return env, nil
}

// collect 并发调用内容源并完成匹配。
// 部分内容源失败时返回 degraded=true；全部失败时返回 ErrSourceUnavailable。
func (s *SearchService) collect(ctx context.Context, types []model.Category, terms []string, req model.SearchRequest) ([]*model.SearchHit, bool, error) {
	sources := make([]Source, 0, len(types))
	for _, c := range types {
		src, ok := s.registry.Lookup(c)
		if !ok {
			continue
		}
		sources = append(sources, src)
	}

	q := SourceQuery{DateFrom: req.DateFrom, Category: req.Category}
	results := make([][]*model.SearchableDocument, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			category := src.Category()
			fetchCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
			defer cancel()

			started := time.Now()
			docs, err := src.FetchCandidates(fetchCtx, q)
			metrics.SourceDuration.WithLabelValues(string(category)).Observe(time.Since(started).Seconds())
			if err != nil {
				metrics.SourceFailures.WithLabelValues(string(category)).Inc()
				log.Printf("⚠️  内容源 %s 查询失败，已跳过: %v", category, err)
				errs[i] = fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, category, err)
				return nil
			}
			results[i] = docs
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if len(sources) > 0 && failed == len(sources) {
		return nil, false, errors.Join(errs...)
	}

	matcher := NewMatcher(terms)
	hits := make([]*model.SearchHit, 0)
	for _, docs := range results {
		for _, doc := range docs {
			// 内容源的分类决定可见性，这里再拦一次，避免实现错误泄露特权数据
			if doc.Visibility == model.VisibilityPrivileged && !req.Privileged {
				continue
			}
			matches := matcher.Match(doc)
			if matches == nil {
				continue
			}
			hits = append(hits, toHit(doc, matches))
		}
	}
	return hits, failed > 0, nil
}

func toHit(doc *model.SearchableDocument, matches []model.MatchRecord) *model.SearchHit {
	return &model.SearchHit{
		ID:         doc.SourceID,
		Type:       doc.Category,
		Title:      doc.Title,
		URL:        doc.LinkTarget,
		CreatedAt:  doc.CreatedAt,
		Visibility: doc.Visibility,
		Extra:      doc.Extra,
		Excerpt:    Excerpt(doc, matches),
		Matches:    matches,
	}
}

// Suggest 输入联想
func (s *SearchService) Suggest(ctx context.Context, partial string, limit int) ([]model.Suggestion, error) {
	return s.typeahead.Suggest(ctx, partial, limit)
}

// Trending 返回计数最高的 n 个查询
func (s *SearchService) Trending(n int) []model.TrendingTerm {
	return s.tracker.Top(n)
}

// Tracker 返回热门词统计器，供衰减任务使用
func (s *SearchService) Tracker() *TrendingTracker {
	return s.tracker
}

// Close 丢弃进程内的统计状态
func (s *SearchService) Close() {
	s.tracker.Reset()
	metrics.TrendingTerms.Set(0)
}
