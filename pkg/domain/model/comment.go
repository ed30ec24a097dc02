/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-08-11 17:58:40
 * @LastEditTime: 2026-10-15 10:24:31
 * @LastEditors: 安知鱼
 */
package model

import "time"

// Status 定义了评论的状态，使用自定义类型代替魔法数字(int)，更类型安全。
type Status int

const (
	StatusPublished Status = 1 // 已发布
	StatusPending   Status = 2 // 待审核
)

// Comment 是评论的核心领域模型，通过路径关联到文章或页面。
type Comment struct {
	ID          uint
	TargetPath  string  // 评论所属的目标路径, 例如 "/posts/the-midnight-hour"
	TargetTitle *string // 目标页面的标题
	Nickname    string
	Content     string // Markdown 原文
	ContentHTML string // 渲染后的 HTML，可能为空（例如从 WordPress 导入的评论）
	Status      Status
	CreatedAt   time.Time
}

// IsPublished 判断评论是否已公开
func (c *Comment) IsPublished() bool {
	return c.Status == StatusPublished
}
