/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-07-25 10:48:12
 * @LastEditTime: 2026-10-15 10:41:50
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"
	"time"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

// ArticleRepository 定义了搜索所需的文章只读查询
type ArticleRepository interface {
	// ListPublished 返回所有已发布文章；from 不为空时只返回该时间之后创建的文章
	ListPublished(ctx context.Context, from *time.Time) ([]*model.Article, error)
}
