package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

var errStorageDown = errors.New("storage down")

type fakeArticleRepo struct {
	articles []*model.Article
	err      error
	calls    atomic.Int32
}

func (r *fakeArticleRepo) ListPublished(_ context.Context, from *time.Time) ([]*model.Article, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	var out []*model.Article
	for _, a := range r.articles {
		if from != nil && a.CreatedAt.Before(*from) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakePageRepo struct {
	pages []*model.Page
	err   error
}

func (r *fakePageRepo) ListPublished(context.Context) ([]*model.Page, error) {
	return r.pages, r.err
}

type fakeCommentRepo struct {
	comments []*model.Comment
	err      error
}

func (r *fakeCommentRepo) ListPublished(context.Context) ([]*model.Comment, error) {
	return r.comments, r.err
}

type fakeUserRepo struct {
	users []*model.User
	calls atomic.Int32
}

func (r *fakeUserRepo) ListAll(context.Context) ([]*model.User, error) {
	r.calls.Add(1)
	return r.users, nil
}

type fakeReportRepo struct {
	reports []*model.Report
	calls   atomic.Int32
}

func (r *fakeReportRepo) ListAll(context.Context) ([]*model.Report, error) {
	r.calls.Add(1)
	return r.reports, nil
}

// stubSource 直接返回固定文档，可以注入错误或阻塞
type stubSource struct {
	category model.Category
	docs     []*model.SearchableDocument
	err      error
	block    bool

	mu    sync.Mutex
	calls int
}

func (s *stubSource) Category() model.Category { return s.category }

func (s *stubSource) FetchCandidates(ctx context.Context, _ SourceQuery) ([]*model.SearchableDocument, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

func (s *stubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var baseTime = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return baseTime.AddDate(0, 0, n)
}

func article(id uint, title, html string, created time.Time, categories ...string) *model.Article {
	a := &model.Article{
		ID:          id,
		Title:       title,
		ContentHTML: html,
		Status:      model.ArticleStatusPublished,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for i, name := range categories {
		a.PostCategories = append(a.PostCategories, &model.PostCategory{ID: uint(i + 1), Name: name})
	}
	return a
}

func doc(category model.Category, id, title, body string, created time.Time) *model.SearchableDocument {
	return &model.SearchableDocument{
		SourceID:   id,
		Category:   category,
		Title:      title,
		Body:       body,
		CreatedAt:  created,
		Visibility: category.Visibility(),
		LinkTarget: "/" + string(category) + "/" + id,
	}
}

func newTestReport(reason, details string, created time.Time) *model.Report {
	return &model.Report{
		ID:         uuid.New(),
		TargetPath: "/posts/cursed",
		Reason:     reason,
		Details:    details,
		Status:     model.ReportStatusOpen,
		CreatedAt:  created,
	}
}
