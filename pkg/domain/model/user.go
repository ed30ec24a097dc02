// in internal/domain/model/user.go
package model

import "time"

// 用户状态常量定义了用户的几种不同状态
const (
	UserStatusActive   = 1
	UserStatusInactive = 2
	UserStatusBanned   = 3
)

// AdminUserGroupID 约定管理员的用户组ID为 1
const AdminUserGroupID uint = 1

type User struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Username    string    `json:"username"`
	Nickname    string    `json:"nickname"`
	Email       string    `json:"email"`
	Website     string    `json:"website"`
	UserGroupID uint      `json:"userGroupID"`
	Status      int       `json:"status"`
}
