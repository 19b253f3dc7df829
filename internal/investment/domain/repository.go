package domain

import "context"

// InvestmentRepository 投资仓储接口
type InvestmentRepository interface {
	Save(ctx context.Context, investment *Investment) error
	Update(ctx context.Context, investment *Investment) error
	GetByInvestmentID(ctx context.Context, investmentID string) (*Investment, error)
	// GetByInvestmentIDWithLock 悲观锁读取，事务内的读改写路径必须使用
	GetByInvestmentIDWithLock(ctx context.Context, investmentID string) (*Investment, error)
	ListByInvestorID(ctx context.Context, investorID string) ([]*Investment, error)
	ListByOfferingID(ctx context.Context, offeringID string) ([]*Investment, error)
}
