package domain

import (
	"context"
	"time"
)

// ApplicationSubmittedEvent 申请提交事件
type ApplicationSubmittedEvent struct {
	ApplicationID string    `json:"application_id"`
	UserID        string    `json:"user_id"`
	State         string    `json:"state"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// ApplicationReviewedEvent 申请审核事件
type ApplicationReviewedEvent struct {
	ApplicationID   string    `json:"application_id"`
	UserID          string    `json:"user_id"`
	Decision        string    `json:"decision"`
	ReviewedBy      string    `json:"reviewed_by"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	ReviewedAt      time.Time `json:"reviewed_at"`
}

// ApplicationWithdrawnEvent 申请撤回事件
type ApplicationWithdrawnEvent struct {
	ApplicationID string    `json:"application_id"`
	UserID        string    `json:"user_id"`
	WithdrawnAt   time.Time `json:"withdrawn_at"`
}

// CreatorApprovedEvent 创作者批准事件，档案激活后发布
type CreatorApprovedEvent struct {
	ApplicationID string    `json:"application_id"`
	UserID        string    `json:"user_id"`
	ProfileID     string    `json:"profile_id"`
	Handle        string    `json:"handle"`
	ApprovedAt    time.Time `json:"approved_at"`
}

// ApplicationEventPublisher 申请事件发布者接口
type ApplicationEventPublisher interface {
	// PublishApplicationSubmitted 发布申请提交事件
	PublishApplicationSubmitted(ctx context.Context, event ApplicationSubmittedEvent) error

	// PublishApplicationReviewed 发布申请审核事件
	PublishApplicationReviewed(ctx context.Context, event ApplicationReviewedEvent) error

	// PublishApplicationWithdrawn 发布申请撤回事件
	PublishApplicationWithdrawn(ctx context.Context, event ApplicationWithdrawnEvent) error

	// PublishCreatorApproved 发布创作者批准事件
	PublishCreatorApproved(ctx context.Context, event CreatorApprovedEvent) error
}
