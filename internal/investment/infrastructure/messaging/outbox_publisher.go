package messaging

import (
	"context"

	"github.com/wyfcoding/creatorlaunch/internal/investment/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/outbox"
)

// TopicInvestment 投资事件主题
const TopicInvestment = "creatorlaunch.investment"

// OutboxPublisher 实现 InvestmentEventPublisher，事件与业务变更同事务落库
type OutboxPublisher struct {
	store *outbox.Store
}

// NewOutboxPublisher 创建发布者
func NewOutboxPublisher(store *outbox.Store) *OutboxPublisher {
	return &OutboxPublisher{store: store}
}

// PublishInvestmentPlaced 发布投资创建事件
func (p *OutboxPublisher) PublishInvestmentPlaced(ctx context.Context, event domain.InvestmentPlacedEvent) error {
	return p.store.Append(ctx, TopicInvestment, "InvestmentPlacedEvent", event.OfferingID, event)
}

// PublishInvestmentSettled 发布投资清算事件
func (p *OutboxPublisher) PublishInvestmentSettled(ctx context.Context, event domain.InvestmentSettledEvent) error {
	return p.store.Append(ctx, TopicInvestment, "InvestmentSettledEvent", event.OfferingID, event)
}

// PublishTokensClaimed 发布代币领取事件
func (p *OutboxPublisher) PublishTokensClaimed(ctx context.Context, event domain.TokensClaimedEvent) error {
	return p.store.Append(ctx, TopicInvestment, "TokensClaimedEvent", event.OfferingID, event)
}
