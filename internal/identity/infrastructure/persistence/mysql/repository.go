package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wyfcoding/creatorlaunch/internal/identity/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/db"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

type AccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(gdb *gorm.DB) domain.AccountRepository {
	return &AccountRepo{db: gdb}
}

func (r *AccountRepo) GetByUserID(ctx context.Context, userID string) (*domain.UserAccount, error) {
	var account domain.UserAccount
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("account %s not found", userID)
		}
		return nil, errs.Internal(err)
	}
	return &account, nil
}

func (r *AccountRepo) UpsertRole(ctx context.Context, userID string, role domain.Role) error {
	account := domain.UserAccount{UserID: userID, Role: role}
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(&account).Error
	if err != nil {
		return errs.Internal(err)
	}
	return nil
}
