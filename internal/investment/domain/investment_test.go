package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	offeringdomain "github.com/wyfcoding/creatorlaunch/internal/offering/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

var investedAt = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

func liveOffering() *offeringdomain.Offering {
	return &offeringdomain.Offering{
		OfferingID:         "IPO-1",
		UserID:             "creator",
		PricePerToken:      decimal.NewFromInt(2),
		MinPurchase:        decimal.NewFromInt(10),
		MaxPurchase:        decimal.NewFromInt(10_000),
		AcceptedCurrencies: offeringdomain.CurrencyList{offeringdomain.CurrencyUSDC},
		Status:             offeringdomain.StatusLive,
	}
}

func days(n int) time.Time { return investedAt.AddDate(0, 0, n) }

func TestNewInvestmentPreconditionOrder(t *testing.T) {
	amount := decimal.NewFromInt(50)

	// 不在 live 状态
	o := liveOffering()
	o.Status = offeringdomain.StatusApproved
	if _, err := NewInvestment("INV-1", o, "inv", amount, "USDC", investedAt); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}

	// 所有者自购：即使币种也不合法，先报 Forbidden
	o = liveOffering()
	if _, err := NewInvestment("INV-1", o, "creator", amount, "DOGE", investedAt); !errs.IsKind(err, errs.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// 币种不被接受：即使金额过小，先报币种
	if _, err := NewInvestment("INV-1", liveOffering(), "inv", decimal.NewFromInt(1), "ETH", investedAt); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// 低于最小认购额
	if _, err := NewInvestment("INV-1", liveOffering(), "inv", decimal.NewFromInt(9), "USDC", investedAt); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error for amount below min, got %v", err)
	}

	// 恰好等于最小认购额合法
	if _, err := NewInvestment("INV-1", liveOffering(), "inv", decimal.NewFromInt(10), "USDC", investedAt); err != nil {
		t.Fatalf("min boundary should be accepted: %v", err)
	}

	// 超过最大认购额
	if _, err := NewInvestment("INV-1", liveOffering(), "inv", decimal.NewFromInt(10_001), "USDC", investedAt); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error for amount above max, got %v", err)
	}
}

func TestAllocationFloors(t *testing.T) {
	inv, err := NewInvestment("INV-1", liveOffering(), "inv", decimal.NewFromInt(51), "USDC", investedAt)
	if err != nil {
		t.Fatalf("new investment: %v", err)
	}
	// 51 / 2 = 25.5 → 25
	if !inv.TokensAllocated.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected 25 tokens, got %s", inv.TokensAllocated)
	}
	if inv.Status != StatusPending {
		t.Fatalf("expected pending, got %s", inv.Status)
	}
}

func TestVestingTermsFrozenAtCreation(t *testing.T) {
	o := liveOffering()
	o.Vesting = offeringdomain.VestingSchedule{CliffDays: 30, DurationDays: 90, Intervals: 3}
	inv, err := NewInvestment("INV-1", o, "inv", decimal.NewFromInt(60), "USDC", investedAt)
	if err != nil {
		t.Fatalf("new investment: %v", err)
	}
	// 发行后续修改不影响已冻结的条款
	o.Vesting = offeringdomain.VestingSchedule{}
	o.PricePerToken = decimal.NewFromInt(100)

	if inv.CliffDays != 30 || inv.DurationDays != 90 || inv.Intervals != 3 {
		t.Fatalf("vesting terms not frozen: %+v", inv)
	}
	if !inv.PricePerToken.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("price not frozen: %s", inv.PricePerToken)
	}
	if inv.NextClaimDate == nil || !inv.NextClaimDate.Equal(days(30)) {
		t.Fatalf("next claim date should be cliff end, got %v", inv.NextClaimDate)
	}
}

func TestSettleTransitions(t *testing.T) {
	inv, _ := NewInvestment("INV-1", liveOffering(), "inv", decimal.NewFromInt(50), "USDC", investedAt)
	if err := inv.Confirm(investedAt); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := inv.Confirm(investedAt); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("double confirm must fail, got %v", err)
	}

	inv2, _ := NewInvestment("INV-2", liveOffering(), "inv", decimal.NewFromInt(50), "USDC", investedAt)
	if err := inv2.Fail(investedAt); err != nil {
		t.Fatalf("fail: %v", err)
	}
	if err := inv2.Confirm(investedAt); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("failed investment cannot be confirmed, got %v", err)
	}
}

func TestClaimWithoutVesting(t *testing.T) {
	inv, _ := NewInvestment("INV-1", liveOffering(), "inv", decimal.NewFromInt(50), "USDC", investedAt)

	// pending 不可领取
	if _, err := inv.Claim(investedAt); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state for pending, got %v", err)
	}

	_ = inv.Confirm(investedAt)
	claimed, err := inv.Claim(investedAt)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if !claimed.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected 25 tokens, got %s", claimed)
	}
	// 领完后再次领取
	if _, err := inv.Claim(investedAt); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state when fully claimed, got %v", err)
	}
	if inv.NextClaimDate != nil {
		t.Fatalf("next claim date must be nil when fully claimed")
	}
}

func TestClaimCliffOnly(t *testing.T) {
	o := liveOffering()
	o.Vesting = offeringdomain.VestingSchedule{CliffDays: 30}
	inv, _ := NewInvestment("INV-1", o, "inv", decimal.NewFromInt(50), "USDC", investedAt)
	_ = inv.Confirm(investedAt)

	// 锁定期内领取
	if _, err := inv.Claim(days(10)); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error inside cliff, got %v", err)
	}

	// 锁定期结束整体释放
	claimed, err := inv.Claim(days(30))
	if err != nil {
		t.Fatalf("claim at cliff end: %v", err)
	}
	if !claimed.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected full 25 tokens, got %s", claimed)
	}
}

func TestClaimIntervalSchedule(t *testing.T) {
	o := liveOffering()
	o.Vesting = offeringdomain.VestingSchedule{CliffDays: 30, DurationDays: 90, Intervals: 3}
	// 100 USDC / 2 = 50 tokens，每期 floor(50/3)=16，最后一期 18
	inv, _ := NewInvestment("INV-1", o, "inv", decimal.NewFromInt(100), "USDC", investedAt)
	_ = inv.Confirm(investedAt)

	// 第一期在锁定期结束解锁
	claimed, err := inv.Claim(days(30))
	if err != nil {
		t.Fatalf("claim tranche 1: %v", err)
	}
	if !claimed.Equal(decimal.NewFromInt(16)) {
		t.Fatalf("tranche 1: expected 16, got %s", claimed)
	}
	if inv.NextClaimDate == nil || !inv.NextClaimDate.Equal(days(60)) {
		t.Fatalf("next claim should be day 60, got %v", inv.NextClaimDate)
	}

	// 下一期未到
	if _, err := inv.Claim(days(45)); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error before next tranche, got %v", err)
	}

	// 跳过一次领取，第 90 天一次领到两期
	claimed, err = inv.Claim(days(90))
	if err != nil {
		t.Fatalf("claim tranches 2+3: %v", err)
	}
	// 第 90 天即最后一期：50 - 16 = 34（含余数 2）
	if !claimed.Equal(decimal.NewFromInt(34)) {
		t.Fatalf("expected 34 tokens with remainder, got %s", claimed)
	}
	if !inv.FullyClaimed() {
		t.Fatalf("investment should be fully claimed")
	}
	if inv.NextClaimDate != nil {
		t.Fatalf("next claim date must be nil")
	}
	if !inv.TokensClaimed.Equal(inv.TokensAllocated) {
		t.Fatalf("claimed %s != allocated %s", inv.TokensClaimed, inv.TokensAllocated)
	}
}

func TestClaimMonotoneNeverExceedsAllocation(t *testing.T) {
	o := liveOffering()
	o.Vesting = offeringdomain.VestingSchedule{CliffDays: 0, DurationDays: 100, Intervals: 4}
	inv, _ := NewInvestment("INV-1", o, "inv", decimal.NewFromInt(42), "USDC", investedAt)
	_ = inv.Confirm(investedAt)

	total := decimal.Zero
	checkpoints := []int{0, 25, 50, 75, 200}
	for _, d := range checkpoints {
		claimed, err := inv.Claim(days(d))
		if err != nil {
			continue
		}
		if claimed.IsNegative() {
			t.Fatalf("claim at day %d returned negative amount", d)
		}
		total = total.Add(claimed)
		if total.GreaterThan(inv.TokensAllocated) {
			t.Fatalf("claims exceed allocation at day %d: %s > %s", d, total, inv.TokensAllocated)
		}
	}
	if !total.Equal(inv.TokensAllocated) {
		t.Fatalf("total claimed %s != allocated %s", total, inv.TokensAllocated)
	}
}

func TestClaimableIsZeroForUnsettled(t *testing.T) {
	inv, _ := NewInvestment("INV-1", liveOffering(), "inv", decimal.NewFromInt(50), "USDC", investedAt)
	if !inv.Claimable(days(100)).IsZero() {
		t.Fatalf("pending investment must have zero claimable")
	}
	_ = inv.Fail(investedAt)
	if !inv.Claimable(days(100)).IsZero() {
		t.Fatalf("failed investment must have zero claimable")
	}
}
