package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/hollowpress/hollow-press/internal/pkg/parser"
	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/domain/repository"
	"github.com/hollowpress/hollow-press/pkg/idgen"
)

// DocumentSource 提供已发布文章
type DocumentSource struct {
	repo repository.ArticleRepository
}

func NewDocumentSource(repo repository.ArticleRepository) *DocumentSource {
	return &DocumentSource{repo: repo}
}

func (s *DocumentSource) Category() model.Category { return model.CategoryDocument }

func (s *DocumentSource) FetchCandidates(ctx context.Context, q SourceQuery) ([]*model.SearchableDocument, error) {
	articles, err := s.repo.ListPublished(ctx, q.DateFrom)
	if err != nil {
		return nil, fmt.Errorf("获取文章失败: %w", err)
	}

	category := strings.TrimSpace(q.Category)
	docs := make([]*model.SearchableDocument, 0, len(articles))
	for _, a := range articles {
		if category != "" && !a.HasCategory(category) {
			continue
		}
		// 仓库已按日期过滤，这里再校验一次，假实现或旧数据也能得到一致结果
		if !afterDate(a.CreatedAt, q.DateFrom) {
			continue
		}
		docs = append(docs, s.toDocument(a))
	}
	return docs, nil
}

func (s *DocumentSource) toDocument(a *model.Article) *model.SearchableDocument {
	publicID := idgen.PublicIDOrRaw(a.ID, idgen.EntityTypeArticle)

	body := a.ContentHTML
	if body == "" && a.ContentMd != "" {
		rendered, err := parser.MarkdownToHTML(a.ContentMd)
		if err != nil {
			log.Printf("⚠️  渲染文章 %s 的 Markdown 失败: %v", publicID, err)
			rendered = a.ContentMd
		}
		body = rendered
	}

	slug := a.Abbrlink
	if slug == "" {
		slug = publicID
	}

	doc := &model.SearchableDocument{
		SourceID:   publicID,
		Category:   model.CategoryDocument,
		Title:      a.Title,
		Body:       body,
		CreatedAt:  a.CreatedAt,
		Visibility: model.CategoryDocument.Visibility(),
		LinkTarget: "/posts/" + slug,
	}
	if names := a.CategoryNames(); len(names) > 0 {
		doc.Extra = map[string]string{"categories": strings.Join(names, ", ")}
	}
	return doc
}
