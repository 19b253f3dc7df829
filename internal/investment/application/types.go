package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/creatorlaunch/internal/investment/domain"
)

// InvestCommand 认购命令
type InvestCommand struct {
	OfferingID string          `json:"offering_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
}

// SettleOutcome 清算结果
type SettleOutcome string

const (
	OutcomeConfirmed SettleOutcome = "confirmed"
	OutcomeFailed    SettleOutcome = "failed"
)

// SettleCommand 清算命令
type SettleCommand struct {
	InvestmentID string        `json:"investment_id"`
	Outcome      SettleOutcome `json:"outcome"`
}

// InvestmentDTO 投资视图
type InvestmentDTO struct {
	InvestmentID    string          `json:"investment_id"`
	OfferingID      string          `json:"offering_id"`
	InvestorID      string          `json:"investor_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	PricePerToken   decimal.Decimal `json:"price_per_token"`
	TokensAllocated decimal.Decimal `json:"tokens_allocated"`
	TokensClaimed   decimal.Decimal `json:"tokens_claimed"`
	CliffDays       int             `json:"cliff_days"`
	DurationDays    int             `json:"duration_days"`
	Intervals       int             `json:"intervals"`
	Status          string          `json:"status"`
	InvestedAt      time.Time       `json:"invested_at"`
	SettledAt       *time.Time      `json:"settled_at,omitempty"`
	NextClaimDate   *time.Time      `json:"next_claim_date,omitempty"`
	LastClaimDate   *time.Time      `json:"last_claim_date,omitempty"`
}

// ClaimResultDTO 领取结果视图
type ClaimResultDTO struct {
	InvestmentID  string          `json:"investment_id"`
	TokensClaimed decimal.Decimal `json:"tokens_claimed"`
	TotalClaimed  decimal.Decimal `json:"total_claimed"`
	Remaining     decimal.Decimal `json:"remaining"`
	NextClaimDate *time.Time      `json:"next_claim_date,omitempty"`
}

func toInvestmentDTO(i *domain.Investment) *InvestmentDTO {
	return &InvestmentDTO{
		InvestmentID:    i.InvestmentID,
		OfferingID:      i.OfferingID,
		InvestorID:      i.InvestorID,
		Amount:          i.Amount,
		Currency:        i.Currency,
		PricePerToken:   i.PricePerToken,
		TokensAllocated: i.TokensAllocated,
		TokensClaimed:   i.TokensClaimed,
		CliffDays:       i.CliffDays,
		DurationDays:    i.DurationDays,
		Intervals:       i.Intervals,
		Status:          string(i.Status),
		InvestedAt:      i.InvestedAt,
		SettledAt:       i.SettledAt,
		NextClaimDate:   i.NextClaimDate,
		LastClaimDate:   i.LastClaimDate,
	}
}

func toInvestmentDTOs(investments []*domain.Investment) []InvestmentDTO {
	out := make([]InvestmentDTO, 0, len(investments))
	for _, i := range investments {
		out = append(out, *toInvestmentDTO(i))
	}
	return out
}
