package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

var (
	now   = time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	start = time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
)

func validTerms() Terms {
	return Terms{
		TotalTokens:        decimal.NewFromInt(1_000_000),
		TokensForSale:      decimal.NewFromInt(400_000),
		PricePerToken:      decimal.NewFromInt(2),
		MinPurchase:        decimal.NewFromInt(10),
		MaxPurchase:        decimal.NewFromInt(10_000),
		AcceptedCurrencies: CurrencyList{CurrencyUSDC, CurrencySOL},
		SoftCap:            decimal.NewFromInt(100_000),
		HardCap:            decimal.NewFromInt(800_000),
		StartDate:          start,
		EndDate:            end,
	}
}

func newTestOffering(t *testing.T) *Offering {
	t.Helper()
	o, err := NewOffering("IPO-1", "u1", "PRF-1", "Creator Token Sale", "desc", validTerms())
	if err != nil {
		t.Fatalf("new offering: %v", err)
	}
	return o
}

func TestTermsValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Terms)
	}{
		{"sale exceeds total", func(tm *Terms) { tm.TokensForSale = tm.TotalTokens.Add(decimal.NewFromInt(1)) }},
		{"zero price", func(tm *Terms) { tm.PricePerToken = decimal.Zero }},
		{"soft cap above hard cap", func(tm *Terms) { tm.SoftCap = tm.HardCap.Add(decimal.NewFromInt(1)) }},
		{"start after end", func(tm *Terms) { tm.StartDate = tm.EndDate.Add(time.Hour) }},
		{"start equals end", func(tm *Terms) { tm.StartDate = tm.EndDate }},
		{"no currencies", func(tm *Terms) { tm.AcceptedCurrencies = nil }},
		{"unknown currency", func(tm *Terms) { tm.AcceptedCurrencies = CurrencyList{"DOGE"} }},
		{"duplicate currency", func(tm *Terms) { tm.AcceptedCurrencies = CurrencyList{CurrencyUSDC, CurrencyUSDC} }},
		{"max below min", func(tm *Terms) { tm.MaxPurchase = tm.MinPurchase.Sub(decimal.NewFromInt(1)) }},
		{"duration without intervals", func(tm *Terms) { tm.Vesting = VestingSchedule{CliffDays: 30, DurationDays: 90} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			terms := validTerms()
			tc.mutate(&terms)
			if err := terms.Validate(); !errs.IsKind(err, errs.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if err := validTerms().Validate(); err != nil {
		t.Fatalf("valid terms rejected: %v", err)
	}
}

func TestLifecycleHappyPath(t *testing.T) {
	o := newTestOffering(t)
	if err := o.SubmitForReview(now); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := o.StartReview("adm", now); err != nil {
		t.Fatalf("start review: %v", err)
	}
	if err := o.Approve("adm", now); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := o.Launch(start.Add(time.Hour)); err != nil {
		t.Fatalf("launch: %v", err)
	}
	if !o.IsLive() {
		t.Fatalf("expected live, got %s", o.Status)
	}
	if err := o.Close(StatusSuccessful, end); err != nil {
		t.Fatalf("close: %v", err)
	}
	if o.Status != StatusSuccessful {
		t.Fatalf("expected successful, got %s", o.Status)
	}
}

func TestLaunchGuards(t *testing.T) {
	o := newTestOffering(t)

	// draft 不能直接上线
	if err := o.Launch(start.Add(time.Hour)); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}

	_ = o.SubmitForReview(now)
	_ = o.StartReview("adm", now)
	_ = o.Approve("adm", now)

	// 开售时间未到
	if err := o.Launch(start.Add(-time.Hour)); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error before start date, got %v", err)
	}
	if err := o.Launch(start); err != nil {
		t.Fatalf("launch at start date: %v", err)
	}
	launchedAt := *o.LaunchedAt

	// 二次上线不改变时间戳
	if err := o.Launch(start.Add(time.Hour)); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state on double launch, got %v", err)
	}
	if !o.LaunchedAt.Equal(launchedAt) {
		t.Fatalf("launched_at must not change on failed relaunch")
	}
}

func TestCancelFromTerminalStates(t *testing.T) {
	o := newTestOffering(t)
	if err := o.Cancel(now); err != nil {
		t.Fatalf("cancel draft: %v", err)
	}
	if err := o.Cancel(now); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}

	o2 := newTestOffering(t)
	_ = o2.SubmitForReview(now)
	_ = o2.StartReview("adm", now)
	if err := o2.Reject("adm", "terms are inconsistent with the profile", now); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := o2.Cancel(now); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("rejected offering must not be cancellable, got %v", err)
	}
}

func TestApplyTermsOnlyDraft(t *testing.T) {
	o := newTestOffering(t)
	terms := validTerms()
	terms.PricePerToken = decimal.NewFromInt(3)
	if err := o.ApplyTerms("New Title", "d", terms); err != nil {
		t.Fatalf("edit draft: %v", err)
	}
	if !o.PricePerToken.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("terms not applied")
	}

	_ = o.SubmitForReview(now)
	if err := o.ApplyTerms("Another", "d", validTerms()); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestCloseOutcomes(t *testing.T) {
	o := newTestOffering(t)
	_ = o.SubmitForReview(now)
	_ = o.StartReview("adm", now)
	_ = o.Approve("adm", now)
	_ = o.Launch(start)

	if err := o.Close("exploded", end); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error for unknown outcome, got %v", err)
	}
	if err := o.Close(StatusFailed, end); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestNewUpdateValidation(t *testing.T) {
	if _, err := NewUpdate("UPD-1", "IPO-1", "u1", "", "content", UpdateGeneral); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error for empty title, got %v", err)
	}
	if _, err := NewUpdate("UPD-1", "IPO-1", "u1", "t", "c", "gossip"); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
	u, err := NewUpdate("UPD-1", "IPO-1", "u1", "Milestone reached", "We shipped.", "")
	if err != nil {
		t.Fatalf("new update: %v", err)
	}
	if u.Type != UpdateGeneral {
		t.Fatalf("empty type must default to general, got %s", u.Type)
	}
}
