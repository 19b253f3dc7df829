package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wyfcoding/creatorlaunch/internal/onboarding/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/db"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

// translate 将存储层错误映射为领域错误，唯一键冲突是并发提交的最终仲裁
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

type ApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(gdb *gorm.DB) domain.ApplicationRepository {
	return &ApplicationRepo{db: gdb}
}

func (r *ApplicationRepo) Save(ctx context.Context, app *domain.CreatorApplication) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).Create(app).Error
	return translate(err, "application not found", "user already has an application")
}

func (r *ApplicationRepo) Update(ctx context.Context, app *domain.CreatorApplication) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).Save(app).Error
	return translate(err, "application not found", "user already has an application")
}

func (r *ApplicationRepo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.CreatorApplication, error) {
	var app domain.CreatorApplication
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("application_id = ?", applicationID).
		First(&app).Error
	if err != nil {
		return nil, translate(err, "application not found", "")
	}
	return &app, nil
}

func (r *ApplicationRepo) GetByUserID(ctx context.Context, userID string) (*domain.CreatorApplication, error) {
	var app domain.CreatorApplication
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&app).Error
	if err != nil {
		return nil, translate(err, "application not found", "")
	}
	return &app, nil
}

// GetByApplicationIDWithLock SELECT ... FOR UPDATE，串行化对同一申请的状态迁移
func (r *ApplicationRepo) GetByApplicationIDWithLock(ctx context.Context, applicationID string) (*domain.CreatorApplication, error) {
	var app domain.CreatorApplication
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ?", applicationID).
		First(&app).Error
	if err != nil {
		return nil, translate(err, "application not found", "")
	}
	return &app, nil
}

// GetByUserIDWithLock SELECT ... FOR UPDATE，按用户维度串行化申请的读改写
func (r *ApplicationRepo) GetByUserIDWithLock(ctx context.Context, userID string) (*domain.CreatorApplication, error) {
	var app domain.CreatorApplication
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&app).Error
	if err != nil {
		return nil, translate(err, "application not found", "")
	}
	return &app, nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, applicationID string) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("application_id = ?", applicationID).
		Unscoped().Delete(&domain.CreatorApplication{}).Error
	return translate(err, "application not found", "")
}

func (r *ApplicationRepo) ListByState(ctx context.Context, state domain.ApplicationState, offset, limit int) ([]*domain.CreatorApplication, int64, error) {
	var (
		apps  []*domain.CreatorApplication
		total int64
	)
	tx := db.TxFrom(ctx, r.db).WithContext(ctx).Model(&domain.CreatorApplication{})
	if state != "" {
		tx = tx.Where("state = ?", state)
	}
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errs.Internal(err)
	}
	err := tx.Order("submitted_at ASC").Offset(offset).Limit(limit).Find(&apps).Error
	if err != nil {
		return nil, 0, errs.Internal(err)
	}
	return apps, total, nil
}

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(gdb *gorm.DB) domain.ProfileRepository {
	return &ProfileRepo{db: gdb}
}

func (r *ProfileRepo) Save(ctx context.Context, profile *domain.CreatorProfile) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).Create(profile).Error
	return translate(err, "profile not found", "profile handle or token symbol already taken")
}

func (r *ProfileRepo) Update(ctx context.Context, profile *domain.CreatorProfile) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).Save(profile).Error
	return translate(err, "profile not found", "profile handle or token symbol already taken")
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.CreatorProfile, error) {
	var profile domain.CreatorProfile
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, translate(err, "profile not found", "")
	}
	return &profile, nil
}

func (r *ProfileRepo) GetByHandle(ctx context.Context, handle string) (*domain.CreatorProfile, error) {
	var profile domain.CreatorProfile
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("handle = ?", handle).
		First(&profile).Error
	if err != nil {
		return nil, translate(err, "profile not found", "")
	}
	return &profile, nil
}

func (r *ProfileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Unscoped().Delete(&domain.CreatorProfile{}).Error
	return translate(err, "profile not found", "")
}

type DocumentRepo struct {
	db *gorm.DB
}

func NewDocumentRepo(gdb *gorm.DB) domain.DocumentRepository {
	return &DocumentRepo{db: gdb}
}

func (r *DocumentRepo) Save(ctx context.Context, doc *domain.Document) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).Create(doc).Error
	return translate(err, "document not found", "duplicate document")
}

func (r *DocumentRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Document, error) {
	var docs []*domain.Document
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return docs, nil
}

func (r *DocumentRepo) Delete(ctx context.Context, documentID string) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("document_id = ?", documentID).
		Unscoped().Delete(&domain.Document{}).Error
	return translate(err, "document not found", "")
}

func (r *DocumentRepo) DeleteByUserID(ctx context.Context, userID string) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Unscoped().Delete(&domain.Document{}).Error
	return translate(err, "document not found", "")
}

type SocialLinkRepo struct {
	db *gorm.DB
}

func NewSocialLinkRepo(gdb *gorm.DB) domain.SocialLinkRepository {
	return &SocialLinkRepo{db: gdb}
}

func (r *SocialLinkRepo) Save(ctx context.Context, link *domain.SocialLink) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).Create(link).Error
	return translate(err, "social link not found", "platform already linked")
}

func (r *SocialLinkRepo) Update(ctx context.Context, link *domain.SocialLink) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).Save(link).Error
	return translate(err, "social link not found", "platform already linked")
}

func (r *SocialLinkRepo) GetByID(ctx context.Context, linkID string) (*domain.SocialLink, error) {
	var link domain.SocialLink
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("link_id = ?", linkID).
		First(&link).Error
	if err != nil {
		return nil, translate(err, "social link not found", "")
	}
	return &link, nil
}

func (r *SocialLinkRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.SocialLink, error) {
	var links []*domain.SocialLink
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return links, nil
}

func (r *SocialLinkRepo) Delete(ctx context.Context, linkID string) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("link_id = ?", linkID).
		Unscoped().Delete(&domain.SocialLink{}).Error
	return translate(err, "social link not found", "")
}

func (r *SocialLinkRepo) DeleteByUserID(ctx context.Context, userID string) error {
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Unscoped().Delete(&domain.SocialLink{}).Error
	return translate(err, "social link not found", "")
}
