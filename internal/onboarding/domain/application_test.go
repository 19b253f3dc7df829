package domain

import (
	"testing"
	"time"

	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewApplicationRequiresDeclaration(t *testing.T) {
	if _, err := NewApplication("APP-1", "u1", false, now); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	app, err := NewApplication("APP-1", "u1", true, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.State != StateSubmitted {
		t.Fatalf("expected state submitted, got %s", app.State)
	}
}

func TestCompleteApplicationStartsPendingReview(t *testing.T) {
	app, err := NewCompleteApplication("APP-1", "u1", true, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.State != StatePendingReview {
		t.Fatalf("expected state pending_review, got %s", app.State)
	}
}

func TestReviewTransitions(t *testing.T) {
	app, _ := NewCompleteApplication("APP-1", "u1", true, now)

	// approve 必须先进入 under_review
	if err := app.Approve("admin", now); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if err := app.StartReview("admin", now); err != nil {
		t.Fatalf("start review: %v", err)
	}
	if app.State != StateUnderReview {
		t.Fatalf("expected under_review, got %s", app.State)
	}
	if err := app.Approve("admin", now); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if app.ApprovedAt == nil || !app.ApprovedAt.Equal(now) {
		t.Fatalf("approved_at not stamped")
	}

	// 终态后不允许再次审核
	if err := app.StartReview("admin", now); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state after approval, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	app, _ := NewCompleteApplication("APP-1", "u1", true, now)
	if err := app.StartReview("admin", now); err != nil {
		t.Fatalf("start review: %v", err)
	}
	if err := app.Reject("admin", "", now); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := app.Reject("admin", "insufficient evidence of ownership", now); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if app.State != StateRejected {
		t.Fatalf("expected rejected, got %s", app.State)
	}
	// 拒绝后仍可撤回
	if !app.CanWithdraw() {
		t.Fatalf("rejected application should be withdrawable")
	}
}

func TestWithdrawForbiddenAfterApproval(t *testing.T) {
	app, _ := NewCompleteApplication("APP-1", "u1", true, now)
	_ = app.StartReview("admin", now)
	_ = app.Approve("admin", now)
	if app.CanWithdraw() {
		t.Fatalf("approved application must not be withdrawable")
	}
	if app.AcceptsEvidence() {
		t.Fatalf("approved application must not accept new evidence")
	}
}

func TestEditableOnlyUnderReview(t *testing.T) {
	app, _ := NewCompleteApplication("APP-1", "u1", true, now)
	if app.Editable() {
		t.Fatalf("pending_review must not be editable")
	}
	_ = app.StartReview("admin", now)
	if !app.Editable() {
		t.Fatalf("under_review must be editable")
	}
}

func TestNormalizeHandle(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Creator_One", "creator_one", false},
		{"  abc  ", "abc", false},
		{"ab", "", true},
		{"has space", "", true},
		{"way_too_long_handle_over_thirty_chars", "", true},
		{"emoji🚀", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeHandle(tc.in)
		if tc.wantErr {
			if !errs.IsKind(err, errs.KindValidation) {
				t.Errorf("NormalizeHandle(%q): expected validation error, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("NormalizeHandle(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestNormalizeTokenSymbol(t *testing.T) {
	got, err := NormalizeTokenSymbol("abc9")
	if err != nil || got != "ABC9" {
		t.Fatalf("NormalizeTokenSymbol = %q, %v", got, err)
	}
	if _, err := NormalizeTokenSymbol("a"); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error for short symbol, got %v", err)
	}
	if _, err := NormalizeTokenSymbol("TOOLONGSYMBOL"); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error for long symbol, got %v", err)
	}
}

func TestSocialPlatformValidation(t *testing.T) {
	if !ValidSocialPlatform(PlatformYouTube) {
		t.Fatalf("youtube must be valid")
	}
	if ValidSocialPlatform("myspace") {
		t.Fatalf("unknown platform must be invalid")
	}
	if !ValidDocumentType(DocumentTaxDocument) {
		t.Fatalf("tax_document must be valid")
	}
	if ValidDocumentType("passport") {
		t.Fatalf("unknown document type must be invalid")
	}
}
