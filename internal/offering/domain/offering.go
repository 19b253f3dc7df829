// Package domain 定义代币发行（IPO）的聚合、状态机与条款校验
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

// OfferingStatus 发行状态
type OfferingStatus string

const (
	StatusDraft         OfferingStatus = "draft"
	StatusPendingReview OfferingStatus = "pending_review"
	StatusUnderReview   OfferingStatus = "under_review"
	StatusApproved      OfferingStatus = "approved"
	StatusLive          OfferingStatus = "live"
	StatusClosed        OfferingStatus = "closed"
	StatusSuccessful    OfferingStatus = "successful"
	StatusFailed        OfferingStatus = "failed"
	StatusCancelled     OfferingStatus = "cancelled"
	StatusRejected      OfferingStatus = "rejected"
)

// terminal 终态不允许任何迁移
func (s OfferingStatus) terminal() bool {
	switch s {
	case StatusClosed, StatusSuccessful, StatusFailed, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Currency 募资接受的币种
type Currency string

const (
	CurrencyUSDC Currency = "USDC"
	CurrencySOL  Currency = "SOL"
	CurrencyETH  Currency = "ETH"
	CurrencyBTC  Currency = "BTC"
)

// ValidCurrency 校验币种取值
func ValidCurrency(c Currency) bool {
	switch c {
	case CurrencyUSDC, CurrencySOL, CurrencyETH, CurrencyBTC:
		return true
	}
	return false
}

// CurrencyList JSON 序列化存储的币种集合
type CurrencyList []Currency

// Value 实现 driver.Valuer
func (l CurrencyList) Value() (driver.Value, error) {
	data, err := json.Marshal(l)
	return string(data), err
}

// Scan 实现 sql.Scanner
func (l *CurrencyList) Scan(src any) error {
	return scanJSON(src, l)
}

// Contains 判断币种是否被接受
func (l CurrencyList) Contains(c Currency) bool {
	for _, cur := range l {
		if cur == c {
			return true
		}
	}
	return false
}

// VestingSchedule 归属计划，单位为天
type VestingSchedule struct {
	CliffDays    int `json:"cliff_days"`
	DurationDays int `json:"duration_days"`
	Intervals    int `json:"intervals"`
}

// Value 实现 driver.Valuer
func (v VestingSchedule) Value() (driver.Value, error) {
	data, err := json.Marshal(v)
	return string(data), err
}

// Scan 实现 sql.Scanner
func (v *VestingSchedule) Scan(src any) error {
	return scanJSON(src, v)
}

// Empty 未配置归属计划
func (v VestingSchedule) Empty() bool {
	return v.CliffDays == 0 && v.DurationDays == 0 && v.Intervals == 0
}

// FundAllocation 募资用途分配项
type FundAllocation struct {
	Purpose string          `json:"purpose"`
	Percent decimal.Decimal `json:"percent"`
}

// FundAllocationList JSON 序列化存储的用途分配
type FundAllocationList []FundAllocation

// Value 实现 driver.Valuer
func (l FundAllocationList) Value() (driver.Value, error) {
	data, err := json.Marshal(l)
	return string(data), err
}

// Scan 实现 sql.Scanner
func (l *FundAllocationList) Scan(src any) error {
	return scanJSON(src, l)
}

// Milestone 路线图里程碑
type Milestone struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TargetDate  string `json:"target_date,omitempty"`
}

// MilestoneList JSON 序列化存储的里程碑
type MilestoneList []Milestone

// Value 实现 driver.Valuer
func (l MilestoneList) Value() (driver.Value, error) {
	data, err := json.Marshal(l)
	return string(data), err
}

// Scan 实现 sql.Scanner
func (l *MilestoneList) Scan(src any) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
}

// Terms 发行条款，创建时冻结
type Terms struct {
	TotalTokens        decimal.Decimal
	TokensForSale      decimal.Decimal
	PricePerToken      decimal.Decimal
	MinPurchase        decimal.Decimal
	MaxPurchase        decimal.Decimal
	AcceptedCurrencies CurrencyList
	SoftCap            decimal.Decimal
	HardCap            decimal.Decimal
	StartDate          time.Time
	EndDate            time.Time
	Vesting            VestingSchedule
	UseOfFunds         FundAllocationList
}

// Validate 校验条款不变式
func (t Terms) Validate() error {
	if !t.TotalTokens.IsPositive() || !t.TokensForSale.IsPositive() {
		return errs.Validation("total tokens and tokens for sale must be positive")
	}
	if t.TokensForSale.GreaterThan(t.TotalTokens) {
		return errs.Validation("tokens for sale cannot exceed total tokens")
	}
	if !t.PricePerToken.IsPositive() {
		return errs.Validation("price per token must be positive")
	}
	if !t.MinPurchase.IsPositive() {
		return errs.Validation("minimum purchase must be positive")
	}
	if !t.MaxPurchase.IsZero() && t.MaxPurchase.LessThan(t.MinPurchase) {
		return errs.Validation("maximum purchase must be at least the minimum purchase")
	}
	if len(t.AcceptedCurrencies) == 0 {
		return errs.Validation("at least one accepted currency is required")
	}
	seen := make(map[Currency]bool, len(t.AcceptedCurrencies))
	for _, c := range t.AcceptedCurrencies {
		if !ValidCurrency(c) {
			return errs.Validationf("unsupported currency %q", c)
		}
		if seen[c] {
			return errs.Validationf("currency %s listed twice", c)
		}
		seen[c] = true
	}
	if !t.SoftCap.IsPositive() || !t.HardCap.IsPositive() {
		return errs.Validation("soft cap and hard cap must be positive")
	}
	if t.SoftCap.GreaterThan(t.HardCap) {
		return errs.Validation("soft cap cannot exceed hard cap")
	}
	if !t.StartDate.Before(t.EndDate) {
		return errs.Validation("start date must be before end date")
	}
	if v := t.Vesting; !v.Empty() {
		if v.CliffDays < 0 || v.DurationDays < 0 || v.Intervals < 0 {
			return errs.Validation("vesting values must not be negative")
		}
		if v.DurationDays > 0 && v.Intervals <= 0 {
			return errs.Validation("vesting intervals are required when a duration is set")
		}
		if v.Intervals > 0 && v.DurationDays <= 0 {
			return errs.Validation("vesting duration is required when intervals are set")
		}
	}
	return nil
}

// Offering 代币发行聚合，一个创作者仅一个
type Offering struct {
	gorm.Model
	OfferingID string `gorm:"column:offering_id;type:varchar(32);uniqueIndex;not null"`
	UserID     string `gorm:"column:user_id;type:varchar(32);uniqueIndex;not null"`
	ProfileID  string `gorm:"column:profile_id;type:varchar(32);index;not null"`

	Title       string `gorm:"column:title;type:varchar(200);not null"`
	Description string `gorm:"column:description;type:text"`

	TotalTokens        decimal.Decimal    `gorm:"column:total_tokens;type:decimal(32,8);not null"`
	TokensForSale      decimal.Decimal    `gorm:"column:tokens_for_sale;type:decimal(32,8);not null"`
	PricePerToken      decimal.Decimal    `gorm:"column:price_per_token;type:decimal(32,8);not null"`
	MinPurchase        decimal.Decimal    `gorm:"column:min_purchase;type:decimal(32,8);not null"`
	MaxPurchase        decimal.Decimal    `gorm:"column:max_purchase;type:decimal(32,8);not null;default:0"`
	AcceptedCurrencies CurrencyList       `gorm:"column:accepted_currencies;type:json;not null"`
	SoftCap            decimal.Decimal    `gorm:"column:soft_cap;type:decimal(32,8);not null"`
	HardCap            decimal.Decimal    `gorm:"column:hard_cap;type:decimal(32,8);not null"`
	StartDate          time.Time          `gorm:"column:start_date;not null"`
	EndDate            time.Time          `gorm:"column:end_date;not null"`
	Vesting            VestingSchedule    `gorm:"column:vesting;type:json"`
	UseOfFunds         FundAllocationList `gorm:"column:use_of_funds;type:json"`
	Milestones         MilestoneList      `gorm:"column:milestones;type:json"`

	Roadmap       string `gorm:"column:roadmap;type:text"`
	TermsText     string `gorm:"column:terms_text;type:text"`
	RiskText      string `gorm:"column:risk_text;type:text"`
	WhitepaperURL string `gorm:"column:whitepaper_url;type:varchar(500)"`
	PitchDeckURL  string `gorm:"column:pitch_deck_url;type:varchar(500)"`

	Status          OfferingStatus `gorm:"column:status;type:varchar(20);index;not null;default:'draft'"`
	SubmittedAt     *time.Time     `gorm:"column:submitted_at"`
	ReviewedAt      *time.Time     `gorm:"column:reviewed_at"`
	ApprovedAt      *time.Time     `gorm:"column:approved_at"`
	LaunchedAt      *time.Time     `gorm:"column:launched_at"`
	ClosedAt        *time.Time     `gorm:"column:closed_at"`
	ReviewedBy      string         `gorm:"column:reviewed_by;type:varchar(32)"`
	RejectionReason string         `gorm:"column:rejection_reason;type:varchar(500)"`
}

// TableName 指定表名
func (Offering) TableName() string { return "offerings" }

// NewOffering 创建 draft 状态的发行
func NewOffering(id, userID, profileID, title, description string, terms Terms) (*Offering, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errs.Validation("title is required")
	}
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	return &Offering{
		OfferingID:         id,
		UserID:             userID,
		ProfileID:          profileID,
		Title:              title,
		Description:        description,
		TotalTokens:        terms.TotalTokens,
		TokensForSale:      terms.TokensForSale,
		PricePerToken:      terms.PricePerToken,
		MinPurchase:        terms.MinPurchase,
		MaxPurchase:        terms.MaxPurchase,
		AcceptedCurrencies: terms.AcceptedCurrencies,
		SoftCap:            terms.SoftCap,
		HardCap:            terms.HardCap,
		StartDate:          terms.StartDate,
		EndDate:            terms.EndDate,
		Vesting:            terms.Vesting,
		UseOfFunds:         terms.UseOfFunds,
		Status:             StatusDraft,
	}, nil
}

// ApplyTerms 草稿阶段整体替换条款
func (o *Offering) ApplyTerms(title, description string, terms Terms) error {
	if o.Status != StatusDraft {
		return errs.InvalidStatef("offering in status %q cannot be edited", o.Status)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.Validation("title is required")
	}
	if err := terms.Validate(); err != nil {
		return err
	}
	o.Title = title
	o.Description = description
	o.TotalTokens = terms.TotalTokens
	o.TokensForSale = terms.TokensForSale
	o.PricePerToken = terms.PricePerToken
	o.MinPurchase = terms.MinPurchase
	o.MaxPurchase = terms.MaxPurchase
	o.AcceptedCurrencies = terms.AcceptedCurrencies
	o.SoftCap = terms.SoftCap
	o.HardCap = terms.HardCap
	o.StartDate = terms.StartDate
	o.EndDate = terms.EndDate
	o.Vesting = terms.Vesting
	o.UseOfFunds = terms.UseOfFunds
	return nil
}

// SubmitForReview draft → pending_review
func (o *Offering) SubmitForReview(now time.Time) error {
	if o.Status != StatusDraft {
		return errs.InvalidStatef("offering in status %q cannot be submitted for review", o.Status)
	}
	o.Status = StatusPendingReview
	o.SubmittedAt = &now
	return nil
}

// StartReview pending_review → under_review
func (o *Offering) StartReview(reviewerID string, now time.Time) error {
	if o.Status != StatusPendingReview {
		return errs.InvalidStatef("offering in status %q cannot enter review", o.Status)
	}
	o.Status = StatusUnderReview
	o.ReviewedBy = reviewerID
	o.ReviewedAt = &now
	return nil
}

// Approve pending_review|under_review → approved
func (o *Offering) Approve(reviewerID string, now time.Time) error {
	if o.Status != StatusPendingReview && o.Status != StatusUnderReview {
		return errs.InvalidStatef("offering in status %q cannot be approved", o.Status)
	}
	o.Status = StatusApproved
	o.ReviewedBy = reviewerID
	o.ReviewedAt = &now
	o.ApprovedAt = &now
	return nil
}

// Reject pending_review|under_review → rejected，必须给出理由
func (o *Offering) Reject(reviewerID, reason string, now time.Time) error {
	if o.Status != StatusPendingReview && o.Status != StatusUnderReview {
		return errs.InvalidStatef("offering in status %q cannot be rejected", o.Status)
	}
	if reason == "" {
		return errs.Validation("rejection reason is required")
	}
	o.Status = StatusRejected
	o.ReviewedBy = reviewerID
	o.ReviewedAt = &now
	o.RejectionReason = reason
	return nil
}

// Launch approved → live，开售时间未到不允许上线
func (o *Offering) Launch(now time.Time) error {
	if o.Status != StatusApproved {
		return errs.InvalidStatef("offering in status %q cannot be launched", o.Status)
	}
	if now.Before(o.StartDate) {
		return errs.Validationf("offering cannot launch before its start date %s", o.StartDate.Format(time.RFC3339))
	}
	o.Status = StatusLive
	o.LaunchedAt = &now
	return nil
}

// Cancel 任意非终态 → cancelled
func (o *Offering) Cancel(now time.Time) error {
	if o.Status.terminal() {
		return errs.InvalidStatef("offering in status %q cannot be cancelled", o.Status)
	}
	o.Status = StatusCancelled
	o.ClosedAt = &now
	return nil
}

// Close live → closed|successful|failed
func (o *Offering) Close(outcome OfferingStatus, now time.Time) error {
	if o.Status != StatusLive {
		return errs.InvalidStatef("offering in status %q cannot be closed", o.Status)
	}
	switch outcome {
	case StatusClosed, StatusSuccessful, StatusFailed:
	default:
		return errs.Validationf("unknown close outcome %q", outcome)
	}
	o.Status = outcome
	o.ClosedAt = &now
	return nil
}

// Deletable 仅草稿可删除
func (o *Offering) Deletable() bool { return o.Status == StatusDraft }

// IsLive 是否开放认购
func (o *Offering) IsLive() bool { return o.Status == StatusLive }
