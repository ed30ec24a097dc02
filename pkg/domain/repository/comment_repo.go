/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-08-11 17:58:48
 * @LastEditTime: 2026-10-15 10:42:16
 * @LastEditors: 安知鱼
 */
// internal/domain/repository/comment_repo.go
package repository

import (
	"context"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

type CommentRepository interface {
	// ListPublished 返回所有已发布的评论
	ListPublished(ctx context.Context) ([]*model.Comment, error)
}
