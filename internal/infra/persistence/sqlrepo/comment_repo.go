package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/domain/repository"
)

type commentRepo struct {
	base
}

// NewCommentRepo 创建评论仓库
func NewCommentRepo(db Querier, dialect string) repository.CommentRepository {
	return &commentRepo{base{db: db, dialect: dialect}}
}

func (r *commentRepo) listPublishedQuery() *entsql.Selector {
	b := r.builder()
	t := b.Table("comments")
	return b.Select(
		t.C("id"), t.C("target_path"), t.C("target_title"), t.C("nickname"),
		t.C("content"), t.C("content_html"), t.C("status"), t.C("created_at"),
	).
		From(t).
		Where(entsql.And(
			entsql.EQ(t.C("status"), int(model.StatusPublished)),
			entsql.IsNull(t.C("deleted_at")),
		))
}

func (r *commentRepo) ListPublished(ctx context.Context) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.query(ctx, r.listPublishedQuery(), func(rows *sql.Rows) error {
		var (
			c           model.Comment
			targetTitle sql.NullString
			html        sql.NullString
			status      int
			createdAt   dbTime
		)
		if err := rows.Scan(&c.ID, &c.TargetPath, &targetTitle, &c.Nickname, &c.Content, &html, &status, &createdAt); err != nil {
			return err
		}
		if targetTitle.Valid {
			title := targetTitle.String
			c.TargetTitle = &title
		}
		c.ContentHTML = html.String
		c.Status = model.Status(status)
		c.CreatedAt = createdAt.Time
		comments = append(comments, &c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("查询评论失败: %w", err)
	}
	return comments, nil
}
