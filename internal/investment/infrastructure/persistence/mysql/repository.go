package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wyfcoding/creatorlaunch/internal/investment/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/db"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

type InvestmentRepo struct {
	db *gorm.DB
}

func NewInvestmentRepo(gdb *gorm.DB) domain.InvestmentRepository {
	return &InvestmentRepo{db: gdb}
}

func (r *InvestmentRepo) Save(ctx context.Context, investment *domain.Investment) error {
	if err := db.TxFrom(ctx, r.db).WithContext(ctx).Create(investment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Conflict("duplicate investment")
		}
		return errs.Internal(err)
	}
	return nil
}

func (r *InvestmentRepo) Update(ctx context.Context, investment *domain.Investment) error {
	if err := db.TxFrom(ctx, r.db).WithContext(ctx).Save(investment).Error; err != nil {
		return errs.Internal(err)
	}
	return nil
}

func (r *InvestmentRepo) GetByInvestmentID(ctx context.Context, investmentID string) (*domain.Investment, error) {
	var investment domain.Investment
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("investment_id = ?", investmentID).
		First(&investment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("investment not found")
		}
		return nil, errs.Internal(err)
	}
	return &investment, nil
}

// GetByInvestmentIDWithLock SELECT ... FOR UPDATE，串行化对同一笔投资的领取与清算
func (r *InvestmentRepo) GetByInvestmentIDWithLock(ctx context.Context, investmentID string) (*domain.Investment, error) {
	var investment domain.Investment
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("investment_id = ?", investmentID).
		First(&investment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("investment not found")
		}
		return nil, errs.Internal(err)
	}
	return &investment, nil
}

func (r *InvestmentRepo) ListByInvestorID(ctx context.Context, investorID string) ([]*domain.Investment, error) {
	var investments []*domain.Investment
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("investor_id = ?", investorID).
		Order("invested_at DESC").
		Find(&investments).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return investments, nil
}

func (r *InvestmentRepo) ListByOfferingID(ctx context.Context, offeringID string) ([]*domain.Investment, error) {
	var investments []*domain.Investment
	err := db.TxFrom(ctx, r.db).WithContext(ctx).
		Where("offering_id = ?", offeringID).
		Order("invested_at DESC").
		Find(&investments).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return investments, nil
}
