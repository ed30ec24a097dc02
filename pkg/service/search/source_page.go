package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/domain/repository"
)

// PageSource 提供已发布的自定义页面
type PageSource struct {
	repo repository.PageRepository
}

func NewPageSource(repo repository.PageRepository) *PageSource {
	return &PageSource{repo: repo}
}

func (s *PageSource) Category() model.Category { return model.CategoryPage }

func (s *PageSource) FetchCandidates(ctx context.Context, q SourceQuery) ([]*model.SearchableDocument, error) {
	pages, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取页面失败: %w", err)
	}

	docs := make([]*model.SearchableDocument, 0, len(pages))
	for _, p := range pages {
		if !p.IsPublished || !afterDate(p.CreatedAt, q.DateFrom) {
			continue
		}
		body := p.Content
		if body == "" {
			body = p.Description
		}
		id := p.Path
		if id == "" {
			id = strconv.FormatUint(uint64(p.ID), 10)
		}
		docs = append(docs, &model.SearchableDocument{
			SourceID:   id,
			Category:   model.CategoryPage,
			Title:      p.Title,
			Body:       body,
			CreatedAt:  p.CreatedAt,
			Visibility: model.CategoryPage.Visibility(),
			LinkTarget: p.Path,
		})
	}
	return docs, nil
}
