package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/wyfcoding/creatorlaunch/internal/audit/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/db"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

type VerificationLogRepo struct {
	db *gorm.DB
}

func NewVerificationLogRepo(gdb *gorm.DB) domain.Recorder {
	return &VerificationLogRepo{db: gdb}
}

func (r *VerificationLogRepo) Record(ctx context.Context, log *domain.VerificationLog) error {
	if err := db.TxFrom(ctx, r.db).WithContext(ctx).Create(log).Error; err != nil {
		return errs.Internal(err)
	}
	return nil
}

func (r *VerificationLogRepo) ListBySubject(ctx context.Context, subjectID string) ([]*domain.VerificationLog, error) {
	var logs []*domain.VerificationLog
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("occurred_at ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return logs, nil
}
