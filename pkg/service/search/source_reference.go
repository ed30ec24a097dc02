package search

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"time"

	"github.com/hollowpress/hollow-press/internal/pkg/parser"
	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

//go:embed reference/*.md
var referenceFS embed.FS

// referenceMeta 是静态说明页的 front matter
type referenceMeta struct {
	Title   string `yaml:"title"`
	Slug    string `yaml:"slug"`
	Path    string `yaml:"path"`
	Updated string `yaml:"updated"`
}

// ReferenceSource 提供固定的静态说明页（隐私政策、服务条款、退款政策、设置帮助）。
// 文档在构造时渲染一次，之后只读。
type ReferenceSource struct {
	docs []*model.SearchableDocument
}

// NewReferenceSource 加载内置的说明页
func NewReferenceSource() (*ReferenceSource, error) {
	return newReferenceSourceFS(referenceFS, "reference")
}

func newReferenceSourceFS(fsys fs.FS, dir string) (*ReferenceSource, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("读取说明页目录失败: %w", err)
	}

	docs := make([]*model.SearchableDocument, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		doc, err := loadReferenceDoc(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].SourceID < docs[j].SourceID })
	return &ReferenceSource{docs: docs}, nil
}

func loadReferenceDoc(fsys fs.FS, name string) (*model.SearchableDocument, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("读取说明页 %s 失败: %w", name, err)
	}

	var meta referenceMeta
	body, err := parser.SplitFrontMatter(raw, &meta)
	if err != nil {
		return nil, fmt.Errorf("说明页 %s: %w", name, err)
	}
	if meta.Slug == "" || meta.Path == "" {
		return nil, fmt.Errorf("说明页 %s 缺少 slug 或 path", name)
	}

	html, err := parser.MarkdownToHTML(string(body))
	if err != nil {
		return nil, fmt.Errorf("渲染说明页 %s 失败: %w", name, err)
	}

	var updated time.Time
	if meta.Updated != "" {
		updated, err = time.Parse(time.DateOnly, meta.Updated)
		if err != nil {
			return nil, fmt.Errorf("说明页 %s 的 updated 格式无效: %w", name, err)
		}
	}

	return &model.SearchableDocument{
		SourceID:   meta.Slug,
		Category:   model.CategoryReference,
		Title:      meta.Title,
		Body:       html,
		CreatedAt:  updated,
		Visibility: model.CategoryReference.Visibility(),
		LinkTarget: meta.Path,
	}, nil
}

func (s *ReferenceSource) Category() model.Category { return model.CategoryReference }

// FetchCandidates 返回说明页的副本，调用方修改结果不会影响内置数据
func (s *ReferenceSource) FetchCandidates(_ context.Context, q SourceQuery) ([]*model.SearchableDocument, error) {
	docs := make([]*model.SearchableDocument, 0, len(s.docs))
	for _, d := range s.docs {
		if !afterDate(d.CreatedAt, q.DateFrom) {
			continue
		}
		cp := *d
		docs = append(docs, &cp)
	}
	return docs, nil
}
