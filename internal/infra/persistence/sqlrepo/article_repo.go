/*
 * @Description: 文章只读仓库
 * @Author: 安知鱼
 * @Date: 2026-10-15 11:48:30
 * @LastEditTime: 2026-10-15 11:48:30
 * @LastEditors: 安知鱼
 */
package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/domain/repository"
)

type articleRepo struct {
	base
}

// NewArticleRepo 创建文章仓库
func NewArticleRepo(db Querier, dialect string) repository.ArticleRepository {
	return &articleRepo{base{db: db, dialect: dialect}}
}

// listPublishedQuery 构建已发布文章的查询
func (r *articleRepo) listPublishedQuery(from *time.Time) *entsql.Selector {
	b := r.builder()
	t := b.Table("articles")
	preds := []*entsql.Predicate{
		entsql.EQ(t.C("status"), model.ArticleStatusPublished),
		entsql.IsNull(t.C("deleted_at")),
	}
	if from != nil {
		preds = append(preds, entsql.GTE(t.C("created_at"), *from))
	}
	return b.Select(
		t.C("id"), t.C("title"), t.C("content_md"), t.C("content_html"),
		t.C("status"), t.C("abbrlink"), t.C("created_at"), t.C("updated_at"),
	).
		From(t).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc(t.C("created_at")))
}

// categoriesQuery 构建文章与分类的关联查询
func (r *articleRepo) categoriesQuery() *entsql.Selector {
	b := r.builder()
	apc := b.Table("article_post_categories")
	pc := b.Table("post_categories")
	return b.Select(apc.C("article_id"), pc.C("id"), pc.C("name")).
		From(apc).
		Join(pc).
		On(apc.C("post_category_id"), pc.C("id"))
}

func (r *articleRepo) ListPublished(ctx context.Context, from *time.Time) ([]*model.Article, error) {
	var articles []*model.Article
	byID := make(map[uint]*model.Article)

	err := r.query(ctx, r.listPublishedQuery(from), func(rows *sql.Rows) error {
		var (
			a                  model.Article
			contentMd, html    sql.NullString
			abbrlink           sql.NullString
			createdAt, updated dbTime
		)
		if err := rows.Scan(&a.ID, &a.Title, &contentMd, &html, &a.Status, &abbrlink, &createdAt, &updated); err != nil {
			return err
		}
		a.ContentMd = contentMd.String
		a.ContentHTML = html.String
		a.Abbrlink = abbrlink.String
		a.CreatedAt = createdAt.Time
		a.UpdatedAt = updated.Time
		articles = append(articles, &a)
		byID[a.ID] = &a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("查询已发布文章失败: %w", err)
	}
	if len(articles) == 0 {
		return articles, nil
	}

	err = r.query(ctx, r.categoriesQuery(), func(rows *sql.Rows) error {
		var (
			articleID uint
			category  model.PostCategory
		)
		if err := rows.Scan(&articleID, &category.ID, &category.Name); err != nil {
			return err
		}
		if a, ok := byID[articleID]; ok {
			a.PostCategories = append(a.PostCategories, &category)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("查询文章分类失败: %w", err)
	}

	return articles, nil
}
