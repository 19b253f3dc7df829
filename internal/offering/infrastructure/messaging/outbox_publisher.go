package messaging

import (
	"context"

	"github.com/wyfcoding/creatorlaunch/internal/offering/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/outbox"
)

// TopicOffering 发行事件主题
const TopicOffering = "creatorlaunch.offering"

// OutboxPublisher 实现 OfferingEventPublisher，事件与业务变更同事务落库
type OutboxPublisher struct {
	store *outbox.Store
}

// NewOutboxPublisher 创建发布者
func NewOutboxPublisher(store *outbox.Store) *OutboxPublisher {
	return &OutboxPublisher{store: store}
}

// PublishOfferingCreated 发布发行创建事件
func (p *OutboxPublisher) PublishOfferingCreated(ctx context.Context, event domain.OfferingCreatedEvent) error {
	return p.store.Append(ctx, TopicOffering, "OfferingCreatedEvent", event.OfferingID, event)
}

// PublishOfferingStatusChanged 发布状态变更事件
func (p *OutboxPublisher) PublishOfferingStatusChanged(ctx context.Context, event domain.OfferingStatusChangedEvent) error {
	return p.store.Append(ctx, TopicOffering, "OfferingStatusChangedEvent", event.OfferingID, event)
}

// PublishOfferingLaunched 发布上线事件
func (p *OutboxPublisher) PublishOfferingLaunched(ctx context.Context, event domain.OfferingLaunchedEvent) error {
	return p.store.Append(ctx, TopicOffering, "OfferingLaunchedEvent", event.OfferingID, event)
}
