package repository

import (
	"context"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

// ReportRepository 举报仓库接口，调用方必须已经确认管理员权限
type ReportRepository interface {
	ListAll(ctx context.Context) ([]*model.Report, error)
}
