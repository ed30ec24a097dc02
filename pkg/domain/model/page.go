package model

import (
	"time"
)

// Page 自定义页面模型
type Page struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`        // 页面标题
	Path        string    `json:"path"`         // 页面路径，如 /about
	Content     string    `json:"content"`      // HTML内容
	Description string    `json:"description"`  // 页面描述
	IsPublished bool      `json:"is_published"` // 是否发布
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
