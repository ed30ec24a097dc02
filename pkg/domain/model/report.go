/*
 * @Description: 内容举报模型
 * @Author: 安知鱼
 * @Date: 2026-10-15 10:30:02
 * @LastEditTime: 2026-10-15 10:30:02
 * @LastEditors: 安知鱼
 */
package model

import (
	"time"

	"github.com/google/uuid"
)

// 举报处理状态
const (
	ReportStatusOpen     = "OPEN"
	ReportStatusResolved = "RESOLVED"
	ReportStatusRejected = "REJECTED"
)

// Report 是读者对文章或评论提交的举报，由管理员审核
type Report struct {
	ID               uuid.UUID
	TargetPath       string
	Reason           string
	Details          string
	ReporterNickname string
	Status           string
	CreatedAt        time.Time
}
