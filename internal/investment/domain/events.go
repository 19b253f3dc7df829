package domain

import (
	"context"
	"time"
)

// InvestmentPlacedEvent 投资创建事件
type InvestmentPlacedEvent struct {
	InvestmentID    string    `json:"investment_id"`
	OfferingID      string    `json:"offering_id"`
	InvestorID      string    `json:"investor_id"`
	Amount          string    `json:"amount"`
	Currency        string    `json:"currency"`
	TokensAllocated string    `json:"tokens_allocated"`
	InvestedAt      time.Time `json:"invested_at"`
}

// InvestmentSettledEvent 投资清算事件
type InvestmentSettledEvent struct {
	InvestmentID string    `json:"investment_id"`
	OfferingID   string    `json:"offering_id"`
	InvestorID   string    `json:"investor_id"`
	Outcome      string    `json:"outcome"`
	SettledBy    string    `json:"settled_by"`
	SettledAt    time.Time `json:"settled_at"`
}

// TokensClaimedEvent 代币领取事件
type TokensClaimedEvent struct {
	InvestmentID  string     `json:"investment_id"`
	OfferingID    string     `json:"offering_id"`
	InvestorID    string     `json:"investor_id"`
	TokensClaimed string     `json:"tokens_claimed"`
	TotalClaimed  string     `json:"total_claimed"`
	NextClaimDate *time.Time `json:"next_claim_date,omitempty"`
	ClaimedAt     time.Time  `json:"claimed_at"`
}

// InvestmentEventPublisher 投资事件发布者接口
type InvestmentEventPublisher interface {
	// PublishInvestmentPlaced 发布投资创建事件
	PublishInvestmentPlaced(ctx context.Context, event InvestmentPlacedEvent) error

	// PublishInvestmentSettled 发布投资清算事件
	PublishInvestmentSettled(ctx context.Context, event InvestmentSettledEvent) error

	// PublishTokensClaimed 发布代币领取事件
	PublishTokensClaimed(ctx context.Context, event TokensClaimedEvent) error
}
