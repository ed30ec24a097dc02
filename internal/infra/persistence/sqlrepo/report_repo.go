package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/domain/repository"
)

type reportRepo struct {
	base
}

// NewReportRepo 创建举报仓库
func NewReportRepo(db Querier, dialect string) repository.ReportRepository {
	return &reportRepo{base{db: db, dialect: dialect}}
}

func (r *reportRepo) listAllQuery() *entsql.Selector {
	b := r.builder()
	t := b.Table("content_reports")
	return b.Select(
		t.C("id"), t.C("target_path"), t.C("reason"), t.C("details"),
		t.C("reporter_nickname"), t.C("status"), t.C("created_at"),
	).
		From(t)
}

func (r *reportRepo) ListAll(ctx context.Context) ([]*model.Report, error) {
	var reports []*model.Report
	err := r.query(ctx, r.listAllQuery(), func(rows *sql.Rows) error {
		var (
			rep           model.Report
			rawID         string
			details, nick sql.NullString
			createdAt     dbTime
		)
		if err := rows.Scan(&rawID, &rep.TargetPath, &rep.Reason, &details, &nick, &rep.Status, &createdAt); err != nil {
			return err
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return fmt.Errorf("举报ID '%s' 格式无效: %w", rawID, err)
		}
		rep.ID = id
		rep.Details = details.String
		rep.ReporterNickname = nick.String
		rep.CreatedAt = createdAt.Time
		reports = append(reports, &rep)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("查询举报失败: %w", err)
	}
	return reports, nil
}
