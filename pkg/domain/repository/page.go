package repository

import (
	"context"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

// PageRepository 页面仓库接口
type PageRepository interface {
	// ListPublished 列出所有已发布页面
	ListPublished(ctx context.Context) ([]*model.Page, error)
}
