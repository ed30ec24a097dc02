package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/domain/repository"
)

type pageRepo struct {
	base
}

// NewPageRepo 创建页面仓库
func NewPageRepo(db Querier, dialect string) repository.PageRepository {
	return &pageRepo{base{db: db, dialect: dialect}}
}

func (r *pageRepo) listPublishedQuery() *entsql.Selector {
	b := r.builder()
	t := b.Table("pages")
	return b.Select(
		t.C("id"), t.C("title"), t.C("path"), t.C("content"), t.C("description"),
		t.C("is_published"), t.C("created_at"), t.C("updated_at"),
	).
		From(t).
		Where(entsql.And(
			entsql.EQ(t.C("is_published"), true),
			entsql.IsNull(t.C("deleted_at")),
		))
}

func (r *pageRepo) ListPublished(ctx context.Context) ([]*model.Page, error) {
	var pages []*model.Page
	err := r.query(ctx, r.listPublishedQuery(), func(rows *sql.Rows) error {
		var (
			p                  model.Page
			content, desc      sql.NullString
			createdAt, updated dbTime
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Path, &content, &desc, &p.IsPublished, &createdAt, &updated); err != nil {
			return err
		}
		p.Content = content.String
		p.Description = desc.String
		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updated.Time
		pages = append(pages, &p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("查询页面失败: %w", err)
	}
	return pages, nil
}
