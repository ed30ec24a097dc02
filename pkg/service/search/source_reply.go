package search

import (
	"context"
	"fmt"
	"log"

	"github.com/hollowpress/hollow-press/internal/pkg/parser"
	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/domain/repository"
	"github.com/hollowpress/hollow-press/pkg/idgen"
)

// ReplySource 提供已审核通过的评论
type ReplySource struct {
	repo repository.CommentRepository
}

func NewReplySource(repo repository.CommentRepository) *ReplySource {
	return &ReplySource{repo: repo}
}

func (s *ReplySource) Category() model.Category { return model.CategoryReply }

func (s *ReplySource) FetchCandidates(ctx context.Context, q SourceQuery) ([]*model.SearchableDocument, error) {
	comments, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取评论失败: %w", err)
	}

	docs := make([]*model.SearchableDocument, 0, len(comments))
	for _, c := range comments {
		if !c.IsPublished() || !afterDate(c.CreatedAt, q.DateFrom) {
			continue
		}
		docs = append(docs, s.toDocument(c))
	}
	return docs, nil
}

func (s *ReplySource) toDocument(c *model.Comment) *model.SearchableDocument {
	publicID := idgen.PublicIDOrRaw(c.ID, idgen.EntityTypeComment)

	body := c.ContentHTML
	if body == "" {
		rendered, err := parser.MarkdownToHTML(c.Content)
		if err != nil {
			log.Printf("⚠️  渲染评论 %s 失败: %v", publicID, err)
			rendered = c.Content
		}
		body = rendered
	}

	extra := map[string]string{"author": c.Nickname}
	if c.TargetTitle != nil && *c.TargetTitle != "" {
		extra["target_title"] = *c.TargetTitle
	}

	return &model.SearchableDocument{
		SourceID:   publicID,
		Category:   model.CategoryReply,
		Title:      "Comment by " + c.Nickname,
		Body:       body,
		CreatedAt:  c.CreatedAt,
		Visibility: model.CategoryReply.Visibility(),
		LinkTarget: c.TargetPath + "#comment-" + publicID,
		Extra:      extra,
	}
}
