// Package domain 定义投资台账与代币归属释放的核心规则
package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	offeringdomain "github.com/wyfcoding/creatorlaunch/internal/offering/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

// TransactionStatus 投资交易状态
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusConfirmed TransactionStatus = "confirmed"
	StatusFailed    TransactionStatus = "failed"
)

// Investment 投资记录。分配与归属条款在创建时从发行冻结，
// 此后发行的任何修改都不影响已有投资。
type Investment struct {
	gorm.Model
	InvestmentID string `gorm:"column:investment_id;type:varchar(32);uniqueIndex;not null"`
	OfferingID   string `gorm:"column:offering_id;type:varchar(32);index;not null"`
	InvestorID   string `gorm:"column:investor_id;type:varchar(32);index;not null"`

	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(32,8);not null"`
	Currency        string          `gorm:"column:currency;type:varchar(10);not null"`
	PricePerToken   decimal.Decimal `gorm:"column:price_per_token;type:decimal(32,8);not null"`
	TokensAllocated decimal.Decimal `gorm:"column:tokens_allocated;type:decimal(32,8);not null"`
	TokensClaimed   decimal.Decimal `gorm:"column:tokens_claimed;type:decimal(32,8);not null;default:0"`

	// 归属条款，创建时拷贝自发行
	CliffDays    int `gorm:"column:cliff_days;not null;default:0"`
	DurationDays int `gorm:"column:duration_days;not null;default:0"`
	Intervals    int `gorm:"column:intervals;not null;default:0"`

	Status        TransactionStatus `gorm:"column:status;type:varchar(20);index;not null;default:'pending'"`
	InvestedAt    time.Time         `gorm:"column:invested_at;not null"`
	SettledAt     *time.Time        `gorm:"column:settled_at"`
	NextClaimDate *time.Time        `gorm:"column:next_claim_date"`
	LastClaimDate *time.Time        `gorm:"column:last_claim_date"`
}

// TableName 指定表名
func (Investment) TableName() string { return "investments" }

// NewInvestment 校验认购前置条件并冻结分配。
// 校验顺序固定：状态、所有权、币种、最小额、最大额，第一个失败即返回。
func NewInvestment(
	id string,
	offering *offeringdomain.Offering,
	investorID string,
	amount decimal.Decimal,
	currency string,
	now time.Time,
) (*Investment, error) {
	if !offering.IsLive() {
		return nil, errs.InvalidStatef("offering in status %q is not open for investment", offering.Status)
	}
	if investorID == offering.UserID {
		return nil, errs.Forbidden("creators cannot invest in their own offering")
	}
	if !offering.AcceptedCurrencies.Contains(offeringdomain.Currency(currency)) {
		return nil, errs.Validationf("currency %q is not accepted by this offering", currency)
	}
	if amount.LessThan(offering.MinPurchase) {
		return nil, errs.Validationf("amount is below the minimum purchase of %s", offering.MinPurchase)
	}
	if !offering.MaxPurchase.IsZero() && amount.GreaterThan(offering.MaxPurchase) {
		return nil, errs.Validationf("amount exceeds the maximum purchase of %s", offering.MaxPurchase)
	}

	inv := &Investment{
		InvestmentID:    id,
		OfferingID:      offering.OfferingID,
		InvestorID:      investorID,
		Amount:          amount,
		Currency:        currency,
		PricePerToken:   offering.PricePerToken,
		TokensAllocated: amount.Div(offering.PricePerToken).Floor(),
		TokensClaimed:   decimal.Zero,
		CliffDays:       offering.Vesting.CliffDays,
		DurationDays:    offering.Vesting.DurationDays,
		Intervals:       offering.Vesting.Intervals,
		Status:          StatusPending,
		InvestedAt:      now,
	}
	if inv.CliffDays > 0 {
		next := now.AddDate(0, 0, inv.CliffDays)
		inv.NextClaimDate = &next
	}
	return inv, nil
}

// Confirm pending → confirmed
func (i *Investment) Confirm(now time.Time) error {
	if i.Status != StatusPending {
		return errs.InvalidStatef("investment in status %q cannot be confirmed", i.Status)
	}
	i.Status = StatusConfirmed
	i.SettledAt = &now
	return nil
}

// Fail pending → failed
func (i *Investment) Fail(now time.Time) error {
	if i.Status != StatusPending {
		return errs.InvalidStatef("investment in status %q cannot be failed", i.Status)
	}
	i.Status = StatusFailed
	i.SettledAt = &now
	return nil
}

// cliffEnd 锁定期结束时刻，无锁定期时即投资时刻
func (i *Investment) cliffEnd() time.Time {
	return i.InvestedAt.AddDate(0, 0, i.CliffDays)
}

// scheduled 是否配置了分期释放
func (i *Investment) scheduled() bool {
	return i.DurationDays > 0 && i.Intervals > 0
}

// trancheTime 第 k 期（1 起）的解锁时刻：锁定期结束后每 duration/intervals 天一期，
// 第一期在锁定期结束时解锁
func (i *Investment) trancheTime(k int) time.Time {
	step := i.DurationDays / i.Intervals
	return i.cliffEnd().AddDate(0, 0, (k-1)*step)
}

// vestedTranches 截至 now 已解锁的期数
func (i *Investment) vestedTranches(now time.Time) int {
	n := 0
	for k := 1; k <= i.Intervals; k++ {
		if now.Before(i.trancheTime(k)) {
			break
		}
		n++
	}
	return n
}

// vestedTokens 截至 now 已解锁的代币总数；整除余数归入最后一期
func (i *Investment) vestedTokens(now time.Time) decimal.Decimal {
	if !i.scheduled() {
		if now.Before(i.cliffEnd()) {
			return decimal.Zero
		}
		return i.TokensAllocated
	}
	vested := i.vestedTranches(now)
	if vested == 0 {
		return decimal.Zero
	}
	if vested >= i.Intervals {
		return i.TokensAllocated
	}
	perTranche := i.TokensAllocated.Div(decimal.NewFromInt(int64(i.Intervals))).Floor()
	return perTranche.Mul(decimal.NewFromInt(int64(vested)))
}

// Claimable 当前可领取的代币数
func (i *Investment) Claimable(now time.Time) decimal.Decimal {
	if i.Status != StatusConfirmed {
		return decimal.Zero
	}
	return i.vestedTokens(now).Sub(i.TokensClaimed)
}

// FullyClaimed 分配是否已全部领取
func (i *Investment) FullyClaimed() bool {
	return i.TokensClaimed.GreaterThanOrEqual(i.TokensAllocated)
}

// Claim 领取所有已解锁未领取的代币并推进下一次可领取时间。
// tokens_claimed 单调递增且永不超过 tokens_allocated。
func (i *Investment) Claim(now time.Time) (decimal.Decimal, error) {
	if i.Status != StatusConfirmed {
		return decimal.Zero, errs.InvalidStatef("investment in status %q has no claimable tokens", i.Status)
	}
	if i.FullyClaimed() {
		return decimal.Zero, errs.InvalidState("all allocated tokens have been claimed")
	}
	if i.NextClaimDate != nil && now.Before(*i.NextClaimDate) {
		return decimal.Zero, errs.Validationf("tokens are locked until %s", i.NextClaimDate.Format(time.RFC3339))
	}

	claimable := i.Claimable(now)
	if !claimable.IsPositive() {
		return decimal.Zero, errs.Validation("no tokens have vested yet")
	}

	i.TokensClaimed = i.TokensClaimed.Add(claimable)
	i.LastClaimDate = &now

	if i.FullyClaimed() {
		i.NextClaimDate = nil
		return claimable, nil
	}
	// 下一期解锁时刻
	next := i.trancheTime(i.vestedTranches(now) + 1)
	i.NextClaimDate = &next
	return claimable, nil
}
