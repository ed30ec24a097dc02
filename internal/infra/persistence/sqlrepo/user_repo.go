package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/hollowpress/hollow-press/pkg/domain/model"
	"github.com/hollowpress/hollow-press/pkg/domain/repository"
)

type userRepo struct {
	base
}

// NewUserRepo 创建用户仓库
func NewUserRepo(db Querier, dialect string) repository.UserRepository {
	return &userRepo{base{db: db, dialect: dialect}}
}

func (r *userRepo) listAllQuery() *entsql.Selector {
	b := r.builder()
	t := b.Table("users")
	return b.Select(
		t.C("id"), t.C("username"), t.C("nickname"), t.C("email"), t.C("website"),
		t.C("user_group_id"), t.C("status"), t.C("created_at"),
	).
		From(t).
		Where(entsql.IsNull(t.C("deleted_at")))
}

func (r *userRepo) ListAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := r.query(ctx, r.listAllQuery(), func(rows *sql.Rows) error {
		var (
			u                        model.User
			nickname, email, website sql.NullString
			createdAt                dbTime
		)
		if err := rows.Scan(&u.ID, &u.Username, &nickname, &email, &website, &u.UserGroupID, &u.Status, &createdAt); err != nil {
			return err
		}
		u.Nickname = nickname.String
		u.Email = email.String
		u.Website = website.String
		u.CreatedAt = createdAt.Time
		users = append(users, &u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return users, nil
}
