package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/domain/repository"
	"github.com/hollowpress/hollow-press/pkg/idgen"
)

// AccountSource 提供用户账号，仅管理员可见
type AccountSource struct {
	repo repository.UserRepository
}

func NewAccountSource(repo repository.UserRepository) *AccountSource {
	return &AccountSource{repo: repo}
}

func (s *AccountSource) Category() model.Category { return model.CategoryAccount }

func (s *AccountSource) FetchCandidates(ctx context.Context, q SourceQuery) ([]*model.SearchableDocument, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取用户失败: %w", err)
	}

	docs := make([]*model.SearchableDocument, 0, len(users))
	for _, u := range users {
		if !afterDate(u.CreatedAt, q.DateFrom) {
			continue
		}
		publicID := idgen.PublicIDOrRaw(u.ID, idgen.EntityTypeUser)
		title := u.Nickname
		if title == "" {
			title = u.Username
		}
		docs = append(docs, &model.SearchableDocument{
			SourceID:   publicID,
			Category:   model.CategoryAccount,
			Title:      title,
			Body:       joinNonEmpty(" ", u.Username, u.Email, u.Website),
			CreatedAt:  u.CreatedAt,
			Visibility: model.CategoryAccount.Visibility(),
			LinkTarget: "/admin/users/" + publicID,
			Extra:      map[string]string{"username": u.Username},
		})
	}
	return docs, nil
}

// ReportSource 提供内容举报记录，仅管理员可见
type ReportSource struct {
	repo repository.ReportRepository
}

func NewReportSource(repo repository.ReportRepository) *ReportSource {
	return &ReportSource{repo: repo}
}

func (s *ReportSource) Category() model.Category { return model.CategoryReport }

func (s *ReportSource) FetchCandidates(ctx context.Context, q SourceQuery) ([]*model.SearchableDocument, error) {
	reports, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取举报失败: %w", err)
	}

	docs := make([]*model.SearchableDocument, 0, len(reports))
	for _, r := range reports {
		if !afterDate(r.CreatedAt, q.DateFrom) {
			continue
		}
		id := r.ID.String()
		docs = append(docs, &model.SearchableDocument{
			SourceID:   id,
			Category:   model.CategoryReport,
			Title:      r.Reason,
			Body:       joinNonEmpty(". ", r.Details, r.TargetPath),
			CreatedAt:  r.CreatedAt,
			Visibility: model.CategoryReport.Visibility(),
			LinkTarget: "/admin/reports/" + id,
			Extra: map[string]string{
				"status":   r.Status,
				"target":   r.TargetPath,
				"reporter": r.ReporterNickname,
			},
		})
	}
	return docs, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
