/*
 * @Description: 搜索相关的数据模型
 * @Author: 安知鱼
 * @Date: 2025-01-27 10:00:00
 * @LastEditTime: 2026-10-15 10:12:40
 * @LastEditors: 安知鱼
 */
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownCategory 表示 types 参数里没有任何可识别的分类
var ErrUnknownCategory = errors.New("无法识别的内容类型")

// Category 是搜索内容来源的分类，取值是一个封闭集合
type Category string

const (
	CategoryDocument  Category = "document"  // 文章
	CategoryPage      Category = "page"      // 自定义页面
	CategoryReply     Category = "reply"     // 评论
	CategoryReference Category = "reference" // 静态说明页（法律条款、设置帮助）
	CategoryAccount   Category = "account"   // 用户账号（仅管理员）
	CategoryReport    Category = "report"    // 举报记录（仅管理员）
)

// AllCategories 按规范顺序列出所有分类，meta.types 与缓存键都使用这个顺序
var AllCategories = []Category{
	CategoryDocument,
	CategoryPage,
	CategoryReply,
	CategoryReference,
	CategoryAccount,
	CategoryReport,
}

// Visibility 描述内容的可见范围
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityPrivileged Visibility = "privileged"
)

// Visibility 返回该分类的可见范围。账号和举报只对管理员开放。
func (c Category) Visibility() Visibility {
	switch c {
	case CategoryAccount, CategoryReport:
		return VisibilityPrivileged
	default:
		return VisibilityPublic
	}
}

// IsPrivileged 判断分类是否只对管理员开放
func (c Category) IsPrivileged() bool {
	return c.Visibility() == VisibilityPrivileged
}

// Rank 返回分类在规范顺序中的位置，未知分类排在最后
func (c Category) Rank() int {
	for i, item := range AllCategories {
		if item == c {
			return i
		}
	}
	return len(AllCategories)
}

// categoryAliases 把查询参数中的各种写法映射为分类
var categoryAliases = map[string]Category{
	"document":   CategoryDocument,
	"documents":  CategoryDocument,
	"post":       CategoryDocument,
	"posts":      CategoryDocument,
	"article":    CategoryDocument,
	"articles":   CategoryDocument,
	"page":       CategoryPage,
	"pages":      CategoryPage,
	"reply":      CategoryReply,
	"replies":    CategoryReply,
	"comment":    CategoryReply,
	"comments":   CategoryReply,
	"reference":  CategoryReference,
	"references": CategoryReference,
	"static":     CategoryReference,
	"legal":      CategoryReference,
	"settings":   CategoryReference,
	"account":    CategoryAccount,
	"accounts":   CategoryAccount,
	"user":       CategoryAccount,
	"users":      CategoryAccount,
	"report":     CategoryReport,
	"reports":    CategoryReport,
}

// ParseCategory 解析分类名称（大小写不敏感，支持单复数别名）
func ParseCategory(name string) (Category, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ParseCategoryList 解析逗号分隔的分类列表，未知项会被忽略，结果去重且按规范顺序排列
func ParseCategoryList(csv string) []Category {
	seen := make(map[Category]struct{})
	for _, part := range strings.Split(csv, ",") {
		if c, ok := ParseCategory(part); ok {
			seen[c] = struct{}{}
		}
	}
	result := make([]Category, 0, len(seen))
	for _, c := range AllCategories {
		if _, ok := seen[c]; ok {
			result = append(result, c)
		}
	}
	return result
}

// ParseCategoryFilter 解析请求中的 types 参数。空参数返回 nil，表示不限分类；
// 非空但没有一个可识别的分类时返回 ErrUnknownCategory，避免被当作不限分类。
func ParseCategoryFilter(csv string) ([]Category, error) {
	if strings.Trim(csv, ", \t") == "" {
		return nil, nil
	}
	types := ParseCategoryList(csv)
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, strings.TrimSpace(csv))
	}
	return types, nil
}

// SearchableDocument 是每次请求临时构造的统一可搜索文档，不会持久化
type SearchableDocument struct {
	SourceID   string
	Category   Category
	Title      string
	Body       string // 可能包含 HTML，匹配前会被清理
	CreatedAt  time.Time
	Visibility Visibility
	LinkTarget string
	// Extra 保存分类特有的附加信息，例如文章分类名
	Extra map[string]string
}

// MatchRecord 记录一个查询词的命中及其上下文
type MatchRecord struct {
	Term    string `json:"term"`
	Context string `json:"context"`
}

// SearchHit 是聚合搜索结果中的一条
type SearchHit struct {
	ID         string            `json:"id"`
	Type       Category          `json:"type"`
	Title      string            `json:"title"`
	URL        string            `json:"url"`
	CreatedAt  time.Time         `json:"created_at"`
	Visibility Visibility        `json:"visibility"`
	Extra      map[string]string `json:"extra,omitempty"`
	Excerpt    string            `json:"excerpt"`
	Matches    []MatchRecord     `json:"matches"`
}

// SearchMeta 是搜索响应中的元信息
type SearchMeta struct {
	Query      string     `json:"query"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Pages      int        `json:"pages"`
	Limit      int        `json:"limit"`
	Types      []Category `json:"types"`
	From       *string    `json:"from"`
	Category   *string    `json:"category"`
	DidYouMean *string    `json:"didYouMean"`
	// Degraded 表示部分内容源不可用，结果不完整
	Degraded bool `json:"degraded,omitempty"`
}

// SearchEnvelope 是搜索接口的完整响应
type SearchEnvelope struct {
	Results []*SearchHit `json:"results"`
	Meta    SearchMeta   `json:"meta"`
}

// SearchRequest 是聚合搜索的输入参数
type SearchRequest struct {
	Query      string
	Types      []Category
	Limit      int
	Page       int
	DateFrom   *time.Time
	Category   string
	Privileged bool
}

// Suggestion 是输入联想返回的一条候选
type Suggestion struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Type  Category `json:"type"`
	URL   string   `json:"url"`
}

// TrendingTerm 是一条热门搜索词
type TrendingTerm struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}
