package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wyfcoding/creatorlaunch/internal/offering/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/db"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

func translate(err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.Conflict(conflict)
	default:
		return errs.Internal(err)
	}
}

type OfferingRepo struct {
	db *gorm.DB
}

func NewOfferingRepo(gdb *gorm.DB) domain.OfferingRepository {
	return &OfferingRepo{db: gdb}
}

func (r *OfferingRepo) Save(ctx context.Context, offering *domain.Offering) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).Create(offering).Error
	return translate(err, "offering not found", "creator already has an offering")
}

func (r *OfferingRepo) Update(ctx context.Context, offering *domain.Offering) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).Save(offering).Error
	return translate(err, "offering not found", "creator already has an offering")
}

func (r *OfferingRepo) GetByOfferingID(ctx context.Context, offeringID string) (*domain.Offering, error) {
	var offering domain.Offering
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("offering_id = ?", offeringID).
		First(&offering).Error
	if err != nil {
		return nil, translate(err, "offering not found", "")
	}
	return &offering, nil
}

// GetByOfferingIDWithLock SELECT ... FOR UPDATE，串行化对同一发行的状态迁移
func (r *OfferingRepo) GetByOfferingIDWithLock(ctx context.Context, offeringID string) (*domain.Offering, error) {
	var offering domain.Offering
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("offering_id = ?", offeringID).
		First(&offering).Error
	if err != nil {
		return nil, translate(err, "offering not found", "")
	}
	return &offering, nil
}

func (r *OfferingRepo) GetByUserID(ctx context.Context, userID string) (*domain.Offering, error) {
	var offering domain.Offering
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&offering).Error
	if err != nil {
		return nil, translate(err, "offering not found", "")
	}
	return &offering, nil
}

func (r *OfferingRepo) Delete(ctx context.Context, offeringID string) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("offering_id = ?", offeringID).
		Unscoped().Delete(&domain.Offering{}).Error
	return translate(err, "offering not found", "")
}

func (r *OfferingRepo) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Offering, int64, error) {
	var (
		offerings []*domain.Offering
		total     int64
	)
	tx := db.TxFrom(ctx, r.db).WithContext(ctx).Model(&domain.Offering{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errs.Internal(err)
	}
	err := tx.Order("created_at DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&offerings).Error
	if err != nil {
		return nil, 0, errs.Internal(err)
	}
	return offerings, total, nil
}

type UpdateRepo struct {
	db *gorm.DB
}

func NewUpdateRepo(gdb *gorm.DB) domain.UpdateRepository {
	return &UpdateRepo{db: gdb}
}

func (r *UpdateRepo) Save(ctx context.Context, update *domain.OfferingUpdate) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).Create(update).Error
	return translate(err, "update not found", "duplicate update")
}

func (r *UpdateRepo) ListByOfferingID(ctx context.Context, offeringID string) ([]*domain.OfferingUpdate, error) {
	var updates []*domain.OfferingUpdate
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("offering_id = ?", offeringID).
		Order("created_at DESC").
		Find(&updates).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return updates, nil
}
