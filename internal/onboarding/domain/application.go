package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

// ApplicationState 创作者申请状态
type ApplicationState string

const (
	// StateSubmitted 分步提交的初始状态
	StateSubmitted ApplicationState = "submitted"
	// StatePendingReview 一次性完整提交后的初始状态
	StatePendingReview ApplicationState = "pending_review"
	// StateUnderReview 管理员已开始审核
	StateUnderReview ApplicationState = "under_review"
	// StateApproved 审核通过（终态，不可撤回）
	StateApproved ApplicationState = "approved"
	// StateRejected 审核拒绝（审核终态，仍可撤回）
	StateRejected ApplicationState = "rejected"
)

// CreatorApplication 创作者入驻申请，一个用户最多一条
type CreatorApplication struct {
	gorm.Model
	ApplicationID string `gorm:"column:application_id;type:varchar(32);uniqueIndex;not null"`
	UserID        string `gorm:"column:user_id;type:varchar(32);uniqueIndex;not null"`
	// ContentOwnershipDeclared 内容所有权声明，提交时必须为 true
	ContentOwnershipDeclared bool             `gorm:"column:content_ownership_declared;not null"`
	State                    ApplicationState `gorm:"column:state;type:varchar(20);index;not null;default:'submitted'"`
	SubmittedAt              time.Time        `gorm:"column:submitted_at;not null"`
	ReviewedAt               *time.Time       `gorm:"column:reviewed_at"`
	ApprovedAt               *time.Time       `gorm:"column:approved_at"`
	ReviewedBy               string           `gorm:"column:reviewed_by;type:varchar(32)"`
	RejectionReason          string           `gorm:"column:rejection_reason;type:varchar(500)"`
}

// TableName 指定表名
func (CreatorApplication) TableName() string { return "creator_applications" }

// NewApplication 创建分步提交的申请
func NewApplication(id, userID string, declared bool, now time.Time) (*CreatorApplication, error) {
	if !declared {
		return nil, errs.Validation("content ownership must be declared")
	}
	return &CreatorApplication{
		ApplicationID:            id,
		UserID:                   userID,
		ContentOwnershipDeclared: true,
		State:                    StateSubmitted,
		SubmittedAt:              now,
	}, nil
}

// NewCompleteApplication 创建一次性完整提交的申请，直接进入 pending_review
func NewCompleteApplication(id, userID string, declared bool, now time.Time) (*CreatorApplication, error) {
	app, err := NewApplication(id, userID, declared, now)
	if err != nil {
		return nil, err
	}
	app.State = StatePendingReview
	return app, nil
}

// StartReview 进入审核中，仅允许从 submitted/pending_review 进入
func (a *CreatorApplication) StartReview(reviewerID string, now time.Time) error {
	if a.State != StateSubmitted && a.State != StatePendingReview {
		return errs.InvalidStatef("application in state %q cannot enter review", a.State)
	}
	a.State = StateUnderReview
	a.ReviewedBy = reviewerID
	a.ReviewedAt = &now
	return nil
}

// Approve 审核通过，仅允许从 under_review 进入
func (a *CreatorApplication) Approve(reviewerID string, now time.Time) error {
	if a.State != StateUnderReview {
		return errs.InvalidStatef("application in state %q cannot be approved", a.State)
	}
	a.State = StateApproved
	a.ReviewedBy = reviewerID
	a.ReviewedAt = &now
	a.ApprovedAt = &now
	return nil
}

// Reject 审核拒绝，必须给出理由
func (a *CreatorApplication) Reject(reviewerID, reason string, now time.Time) error {
	if a.State != StateUnderReview {
		return errs.InvalidStatef("application in state %q cannot be rejected", a.State)
	}
	if reason == "" {
		return errs.Validation("rejection reason is required")
	}
	a.State = StateRejected
	a.ReviewedBy = reviewerID
	a.ReviewedAt = &now
	a.RejectionReason = reason
	return nil
}

// CanWithdraw 除 approved 外任何状态都可撤回
func (a *CreatorApplication) CanWithdraw() bool {
	return a.State != StateApproved
}

// Editable 只有 under_review 状态允许整体更新提交内容
func (a *CreatorApplication) Editable() bool {
	return a.State == StateUnderReview
}

// AcceptsEvidence 附加材料（文档/社交链接）在批准前都允许
func (a *CreatorApplication) AcceptsEvidence() bool {
	return a.State != StateApproved
}

// DocumentType 证明文档类型
type DocumentType string

const (
	DocumentIdentity        DocumentType = "identity"
	DocumentProofOfAddress  DocumentType = "proof_of_address"
	DocumentBusinessLicense DocumentType = "business_license"
	DocumentTaxDocument     DocumentType = "tax_document"
	DocumentOther           DocumentType = "other"
)

// ValidDocumentType 校验文档类型
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentIdentity, DocumentProofOfAddress, DocumentBusinessLicense, DocumentTaxDocument, DocumentOther:
		return true
	}
	return false
}

// Document 身份/资质证明文档
type Document struct {
	gorm.Model
	DocumentID string       `gorm:"column:document_id;type:varchar(32);uniqueIndex;not null"`
	UserID     string       `gorm:"column:user_id;type:varchar(32);index;not null"`
	Type       DocumentType `gorm:"column:type;type:varchar(30);not null"`
	FileURL    string       `gorm:"column:file_url;type:varchar(500);not null"`
	Notes      string       `gorm:"column:notes;type:varchar(500)"`
	Status     string       `gorm:"column:status;type:varchar(20);not null;default:'pending'"`
}

// TableName 指定表名
func (Document) TableName() string { return "creator_documents" }

// SocialPlatform 社交平台
type SocialPlatform string

const (
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformInstagram SocialPlatform = "instagram"
	PlatformYouTube   SocialPlatform = "youtube"
	PlatformTikTok    SocialPlatform = "tiktok"
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformFacebook  SocialPlatform = "facebook"
	PlatformOther     SocialPlatform = "other"
)

// ValidSocialPlatform 校验平台取值
func ValidSocialPlatform(p SocialPlatform) bool {
	switch p {
	case PlatformTwitter, PlatformInstagram, PlatformYouTube, PlatformTikTok,
		PlatformLinkedIn, PlatformFacebook, PlatformOther:
		return true
	}
	return false
}

// SocialLink 社交媒体证据，(user_id, platform) 唯一
type SocialLink struct {
	gorm.Model
	LinkID        string         `gorm:"column:link_id;type:varchar(32);uniqueIndex;not null"`
	UserID        string         `gorm:"column:user_id;type:varchar(32);not null;uniqueIndex:idx_user_platform"`
	Platform      SocialPlatform `gorm:"column:platform;type:varchar(20);not null;uniqueIndex:idx_user_platform"`
	Handle        string         `gorm:"column:handle;type:varchar(100);not null"`
	URL           string         `gorm:"column:url;type:varchar(500);not null"`
	FollowerCount int64          `gorm:"column:follower_count;not null;default:0"`
	Verified      bool           `gorm:"column:verified;not null;default:false"`
}

// TableName 指定表名
func (SocialLink) TableName() string { return "creator_social_links" }
