package domain

import "context"

// ListFilter 公开列表过滤条件
type ListFilter struct {
	Status OfferingStatus
	Search string
	Offset int
	Limit  int
}

// OfferingRepository 发行仓储接口
type OfferingRepository interface {
	Save(ctx context.Context, offering *Offering) error
	Update(ctx context.Context, offering *Offering) error
	GetByOfferingID(ctx context.Context, offeringID string) (*Offering, error)
	// GetByOfferingIDWithLock 悲观锁读取，事务内的状态迁移必须使用
	GetByOfferingIDWithLock(ctx context.Context, offeringID string) (*Offering, error)
	GetByUserID(ctx context.Context, userID string) (*Offering, error)
	Delete(ctx context.Context, offeringID string) error
	List(ctx context.Context, filter ListFilter) ([]*Offering, int64, error)
}

// UpdateRepository 公告仓储接口
type UpdateRepository interface {
	Save(ctx context.Context, update *OfferingUpdate) error
	ListByOfferingID(ctx context.Context, offeringID string) ([]*OfferingUpdate, error)
}
