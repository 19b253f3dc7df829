package domain

import "context"

// ApplicationRepository 申请仓储接口
type ApplicationRepository interface {
	Save(ctx context.Context, app *CreatorApplication) error
	Update(ctx context.Context, app *CreatorApplication) error
	GetByApplicationID(ctx context.Context, applicationID string) (*CreatorApplication, error)
	GetByUserID(ctx context.Context, userID string) (*CreatorApplication, error)
	// 悲观锁变体，事务内的状态迁移与级联删除必须使用
	GetByApplicationIDWithLock(ctx context.Context, applicationID string) (*CreatorApplication, error)
	GetByUserIDWithLock(ctx context.Context, userID string) (*CreatorApplication, error)
	Delete(ctx context.Context, applicationID string) error
	ListByState(ctx context.Context, state ApplicationState, offset, limit int) ([]*CreatorApplication, int64, error)
}

// ProfileRepository 档案仓储接口
type ProfileRepository interface {
	Save(ctx context.Context, profile *CreatorProfile) error
	Update(ctx context.Context, profile *CreatorProfile) error
	GetByUserID(ctx context.Context, userID string) (*CreatorProfile, error)
	GetByHandle(ctx context.Context, handle string) (*CreatorProfile, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// DocumentRepository 证明文档仓储接口
type DocumentRepository interface {
	Save(ctx context.Context, doc *Document) error
	ListByUserID(ctx context.Context, userID string) ([]*Document, error)
	Delete(ctx context.Context, documentID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// SocialLinkRepository 社交链接仓储接口
type SocialLinkRepository interface {
	Save(ctx context.Context, link *SocialLink) error
	Update(ctx context.Context, link *SocialLink) error
	GetByID(ctx context.Context, linkID string) (*SocialLink, error)
	ListByUserID(ctx context.Context, userID string) ([]*SocialLink, error)
	Delete(ctx context.Context, linkID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
