/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-07-25 10:47:59
 * @LastEditTime: 2026-10-15 10:20:11
 * @LastEditors: 安知鱼
 */
package model

import "time"

// 文章状态
const (
	ArticleStatusDraft     = "DRAFT"
	ArticleStatusPublished = "PUBLISHED"
	ArticleStatusArchived  = "ARCHIVED"
)

// Article 是文章的核心领域模型（搜索只关心其中的只读字段）
type Article struct {
	ID             uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Title          string
	ContentMd      string
	ContentHTML    string
	Status         string
	Abbrlink       string
	PostCategories []*PostCategory
}

// PostCategory 是文章分类
type PostCategory struct {
	ID   uint
	Name string
}

// HasCategory 判断文章是否属于某个分类（大小写不敏感）
func (a *Article) HasCategory(name string) bool {
	for _, c := range a.PostCategories {
		if c != nil && equalFold(c.Name, name) {
			return true
		}
	}
	return false
}

// CategoryNames 返回文章所有分类的名称
func (a *Article) CategoryNames() []string {
	names := make([]string, 0, len(a.PostCategories))
	for _, c := range a.PostCategories {
		if c != nil {
			names = append(names, c.Name)
		}
	}
	return names
}
