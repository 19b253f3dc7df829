// Package domain 定义审计日志实体，记录所有人工审核动作
package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// VerificationLog 审核动作日志，仅追加不修改
type VerificationLog struct {
	gorm.Model
	LogID       string    `gorm:"column:log_id;type:varchar(32);uniqueIndex;not null"`
	SubjectID   string    `gorm:"column:subject_id;type:varchar(32);index;not null"`
	SubjectType string    `gorm:"column:subject_type;type:varchar(30);index;not null"`
	Action      string    `gorm:"column:action;type:varchar(30);not null"`
	ActorID     string    `gorm:"column:actor_id;type:varchar(32);index;not null"`
	Reason      string    `gorm:"column:reason;type:varchar(500)"`
	OccurredAt  time.Time `gorm:"column:occurred_at;not null"`
}

// TableName 指定表名
func (VerificationLog) TableName() string { return "verification_logs" }

// Recorder 审计记录器接口
type Recorder interface {
	Record(ctx context.Context, log *VerificationLog) error
	ListBySubject(ctx context.Context, subjectID string) ([]*VerificationLog, error)
}
