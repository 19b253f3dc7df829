package messaging

import (
	"context"

	"github.com/wyfcoding/creatorlaunch/internal/onboarding/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/outbox"
)

// TopicOnboarding 入驻事件主题
const TopicOnboarding = "creatorlaunch.onboarding"

// OutboxPublisher 实现 ApplicationEventPublisher，事件与业务变更同事务落库
type OutboxPublisher struct {
	store *outbox.Store
}

// NewOutboxPublisher 创建发布者
func NewOutboxPublisher(store *outbox.Store) *OutboxPublisher {
	return &OutboxPublisher{store: store}
}

// PublishApplicationSubmitted 发布申请提交事件
func (p *OutboxPublisher) PublishApplicationSubmitted(ctx context.Context, event domain.ApplicationSubmittedEvent) error {
	return p.store.Append(ctx, TopicOnboarding, "ApplicationSubmittedEvent", event.UserID, event)
}

// PublishApplicationReviewed 发布申请审核事件
func (p *OutboxPublisher) PublishApplicationReviewed(ctx context.Context, event domain.ApplicationReviewedEvent) error {
	return p.store.Append(ctx, TopicOnboarding, "ApplicationReviewedEvent", event.UserID, event)
}

// PublishApplicationWithdrawn 发布申请撤回事件
func (p *OutboxPublisher) PublishApplicationWithdrawn(ctx context.Context, event domain.ApplicationWithdrawnEvent) error {
	return p.store.Append(ctx, TopicOnboarding, "ApplicationWithdrawnEvent", event.UserID, event)
}

// PublishCreatorApproved 发布创作者批准事件
func (p *OutboxPublisher) PublishCreatorApproved(ctx context.Context, event domain.CreatorApprovedEvent) error {
	return p.store.Append(ctx, TopicOnboarding, "CreatorApprovedEvent", event.UserID, event)
}
