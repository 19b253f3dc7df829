package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/creatorlaunch/internal/offering/domain"
)

// VestingPayload 归属计划参数
type VestingPayload struct {
	CliffDays    int `json:"cliff_days"`
	DurationDays int `json:"duration_days"`
	Intervals    int `json:"intervals"`
}

// AllocationPayload 募资用途项
type AllocationPayload struct {
	Purpose string          `json:"purpose"`
	Percent decimal.Decimal `json:"percent"`
}

// MilestonePayload 里程碑项
type MilestonePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
}

// OfferingCommand 创建/更新发行命令
type OfferingCommand struct {
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	TotalTokens        decimal.Decimal     `json:"total_tokens"`
	TokensForSale      decimal.Decimal     `json:"tokens_for_sale"`
	PricePerToken      decimal.Decimal     `json:"price_per_token"`
	MinPurchase        decimal.Decimal     `json:"min_purchase"`
	MaxPurchase        decimal.Decimal     `json:"max_purchase"`
	AcceptedCurrencies []string            `json:"accepted_currencies"`
	SoftCap            decimal.Decimal     `json:"soft_cap"`
	HardCap            decimal.Decimal     `json:"hard_cap"`
	StartDate          time.Time           `json:"start_date"`
	EndDate            time.Time           `json:"end_date"`
	Vesting            VestingPayload      `json:"vesting"`
	UseOfFunds         []AllocationPayload `json:"use_of_funds"`
	Milestones         []MilestonePayload  `json:"milestones"`
	Roadmap            string              `json:"roadmap"`
	TermsText          string              `json:"terms_text"`
	RiskText           string              `json:"risk_text"`
	WhitepaperURL      string              `json:"whitepaper_url"`
	PitchDeckURL       string              `json:"pitch_deck_url"`
}

// ReviewDecision 审核决定
type ReviewDecision string

const (
	DecisionUnderReview ReviewDecision = "under_review"
	DecisionApproved    ReviewDecision = "approved"
	DecisionRejected    ReviewDecision = "rejected"
)

// ReviewCommand 审核命令
type ReviewCommand struct {
	OfferingID string         `json:"offering_id"`
	Decision   ReviewDecision `json:"decision"`
	Reason     string         `json:"reason"`
}

// CloseCommand 终态化命令
type CloseCommand struct {
	OfferingID string `json:"offering_id"`
	Outcome    string `json:"outcome"`
}

// UpdatePostCommand 发布公告命令
type UpdatePostCommand struct {
	OfferingID string `json:"offering_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Type       string `json:"type"`
}

// ListQuery 公开列表查询
type ListQuery struct {
	Status string `form:"status"`
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

// OfferingDTO 发行视图
type OfferingDTO struct {
	OfferingID         string              `json:"offering_id"`
	UserID             string              `json:"user_id"`
	ProfileID          string              `json:"profile_id"`
	Title              string              `json:"title"`
	Description        string              `json:"description,omitempty"`
	TotalTokens        decimal.Decimal     `json:"total_tokens"`
	TokensForSale      decimal.Decimal     `json:"tokens_for_sale"`
	PricePerToken      decimal.Decimal     `json:"price_per_token"`
	MinPurchase        decimal.Decimal     `json:"min_purchase"`
	MaxPurchase        decimal.Decimal     `json:"max_purchase"`
	AcceptedCurrencies []string            `json:"accepted_currencies"`
	SoftCap            decimal.Decimal     `json:"soft_cap"`
	HardCap            decimal.Decimal     `json:"hard_cap"`
	StartDate          time.Time           `json:"start_date"`
	EndDate            time.Time           `json:"end_date"`
	Vesting            VestingPayload      `json:"vesting"`
	UseOfFunds         []AllocationPayload `json:"use_of_funds,omitempty"`
	Milestones         []MilestonePayload  `json:"milestones,omitempty"`
	Roadmap            string              `json:"roadmap,omitempty"`
	TermsText          string              `json:"terms_text,omitempty"`
	RiskText           string              `json:"risk_text,omitempty"`
	WhitepaperURL      string              `json:"whitepaper_url,omitempty"`
	PitchDeckURL       string              `json:"pitch_deck_url,omitempty"`
	Status             string              `json:"status"`
	SubmittedAt        *time.Time          `json:"submitted_at,omitempty"`
	ApprovedAt         *time.Time          `json:"approved_at,omitempty"`
	LaunchedAt         *time.Time          `json:"launched_at,omitempty"`
	ClosedAt           *time.Time          `json:"closed_at,omitempty"`
	RejectionReason    string              `json:"rejection_reason,omitempty"`
}

// UpdateDTO 公告视图
type UpdateDTO struct {
	UpdateID   string    `json:"update_id"`
	OfferingID string    `json:"offering_id"`
	AuthorID   string    `json:"author_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}

func toTerms(cmd OfferingCommand) domain.Terms {
	currencies := make(domain.CurrencyList, 0, len(cmd.AcceptedCurrencies))
	for _, c := range cmd.AcceptedCurrencies {
		currencies = append(currencies, domain.Currency(c))
	}
	allocations := make(domain.FundAllocationList, 0, len(cmd.UseOfFunds))
	for _, a := range cmd.UseOfFunds {
		allocations = append(allocations, domain.FundAllocation{Purpose: a.Purpose, Percent: a.Percent})
	}
	return domain.Terms{
		TotalTokens:        cmd.TotalTokens,
		TokensForSale:      cmd.TokensForSale,
		PricePerToken:      cmd.PricePerToken,
		MinPurchase:        cmd.MinPurchase,
		MaxPurchase:        cmd.MaxPurchase,
		AcceptedCurrencies: currencies,
		SoftCap:            cmd.SoftCap,
		HardCap:            cmd.HardCap,
		StartDate:          cmd.StartDate,
		EndDate:            cmd.EndDate,
		Vesting: domain.VestingSchedule{
			CliffDays:    cmd.Vesting.CliffDays,
			DurationDays: cmd.Vesting.DurationDays,
			Intervals:    cmd.Vesting.Intervals,
		},
		UseOfFunds: allocations,
	}
}

func toOfferingDTO(o *domain.Offering) *OfferingDTO {
	currencies := make([]string, 0, len(o.AcceptedCurrencies))
	for _, c := range o.AcceptedCurrencies {
		currencies = append(currencies, string(c))
	}
	allocations := make([]AllocationPayload, 0, len(o.UseOfFunds))
	for _, a := range o.UseOfFunds {
		allocations = append(allocations, AllocationPayload{Purpose: a.Purpose, Percent: a.Percent})
	}
	milestones := make([]MilestonePayload, 0, len(o.Milestones))
	for _, m := range o.Milestones {
		milestones = append(milestones, MilestonePayload{Title: m.Title, Description: m.Description, TargetDate: m.TargetDate})
	}
	return &OfferingDTO{
		OfferingID:         o.OfferingID,
		UserID:             o.UserID,
		ProfileID:          o.ProfileID,
		Title:              o.Title,
		Description:        o.Description,
		TotalTokens:        o.TotalTokens,
		TokensForSale:      o.TokensForSale,
		PricePerToken:      o.PricePerToken,
		MinPurchase:        o.MinPurchase,
		MaxPurchase:        o.MaxPurchase,
		AcceptedCurrencies: currencies,
		SoftCap:            o.SoftCap,
		HardCap:            o.HardCap,
		StartDate:          o.StartDate,
		EndDate:            o.EndDate,
		Vesting: VestingPayload{
			CliffDays:    o.Vesting.CliffDays,
			DurationDays: o.Vesting.DurationDays,
			Intervals:    o.Vesting.Intervals,
		},
		UseOfFunds:      allocations,
		Milestones:      milestones,
		Roadmap:         o.Roadmap,
		TermsText:       o.TermsText,
		RiskText:        o.RiskText,
		WhitepaperURL:   o.WhitepaperURL,
		PitchDeckURL:    o.PitchDeckURL,
		Status:          string(o.Status),
		SubmittedAt:     o.SubmittedAt,
		ApprovedAt:      o.ApprovedAt,
		LaunchedAt:      o.LaunchedAt,
		ClosedAt:        o.ClosedAt,
		RejectionReason: o.RejectionReason,
	}
}

func toUpdateDTOs(updates []*domain.OfferingUpdate) []UpdateDTO {
	out := make([]UpdateDTO, 0, len(updates))
	for _, u := range updates {
		out = append(out, UpdateDTO{
			UpdateID:   u.UpdateID,
			OfferingID: u.OfferingID,
			AuthorID:   u.AuthorID,
			Title:      u.Title,
			Content:    u.Content,
			Type:       string(u.Type),
			CreatedAt:  u.CreatedAt,
		})
	}
	return out
}
