package domain

import (
	"context"
	"time"
)

// OfferingCreatedEvent 发行创建事件
type OfferingCreatedEvent struct {
	OfferingID string    `json:"offering_id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
}

// OfferingStatusChangedEvent 发行状态变更事件
type OfferingStatusChangedEvent struct {
	OfferingID string    `json:"offering_id"`
	UserID     string    `json:"user_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ChangedBy  string    `json:"changed_by"`
	Reason     string    `json:"reason,omitempty"`
	ChangedAt  time.Time `json:"changed_at"`
}

// OfferingLaunchedEvent 发行上线事件
type OfferingLaunchedEvent struct {
	OfferingID    string    `json:"offering_id"`
	UserID        string    `json:"user_id"`
	TokensForSale string    `json:"tokens_for_sale"`
	PricePerToken string    `json:"price_per_token"`
	LaunchedAt    time.Time `json:"launched_at"`
}

// OfferingEventPublisher 发行事件发布者接口
type OfferingEventPublisher interface {
	// PublishOfferingCreated 发布发行创建事件
	PublishOfferingCreated(ctx context.Context, event OfferingCreatedEvent) error

	// PublishOfferingStatusChanged 发布状态变更事件
	PublishOfferingStatusChanged(ctx context.Context, event OfferingStatusChangedEvent) error

	// PublishOfferingLaunched 发布上线事件
	PublishOfferingLaunched(ctx context.Context, event OfferingLaunchedEvent) error
}
