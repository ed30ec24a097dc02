package repository

import (
	"context"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

// UserRepository 用户仓库接口，调用方必须已经确认管理员权限
type UserRepository interface {
	ListAll(ctx context.Context) ([]*model.User, error)
}
