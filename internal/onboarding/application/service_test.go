package application

import (
	"context"
	"testing"

	auditdomain "github.com/wyfcoding/creatorlaunch/internal/audit/domain"
	identitydomain "github.com/wyfcoding/creatorlaunch/internal/identity/domain"
	"github.com/wyfcoding/creatorlaunch/internal/onboarding/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
	"github.com/wyfcoding/creatorlaunch/pkg/metrics"
	"github.com/wyfcoding/creatorlaunch/pkg/middleware"
	"github.com/wyfcoding/creatorlaunch/pkg/utils"
)

// fakeTx 直接执行函数，不开真实事务
type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type appRepoStub struct {
	byUser map[string]*domain.CreatorApplication
}

func newAppRepoStub() *appRepoStub {
	return &appRepoStub{byUser: make(map[string]*domain.CreatorApplication)}
}

func (s *appRepoStub) Save(_ context.Context, app *domain.CreatorApplication) error {
	if _, ok := s.byUser[app.UserID]; ok {
		return errs.Conflict("user already has an application")
	}
	s.byUser[app.UserID] = app
	return nil
}

func (s *appRepoStub) Update(_ context.Context, app *domain.CreatorApplication) error {
	s.byUser[app.UserID] = app
	return nil
}

func (s *appRepoStub) GetByApplicationID(_ context.Context, id string) (*domain.CreatorApplication, error) {
	for _, app := range s.byUser {
		if app.ApplicationID == id {
			return app, nil
		}
	}
	return nil, errs.NotFound("application not found")
}

func (s *appRepoStub) GetByUserID(_ context.Context, userID string) (*domain.CreatorApplication, error) {
	if app, ok := s.byUser[userID]; ok {
		return app, nil
	}
	return nil, errs.NotFound("application not found")
}

func (s *appRepoStub) GetByApplicationIDWithLock(ctx context.Context, id string) (*domain.CreatorApplication, error) {
	return s.GetByApplicationID(ctx, id)
}

func (s *appRepoStub) GetByUserIDWithLock(ctx context.Context, userID string) (*domain.CreatorApplication, error) {
	return s.GetByUserID(ctx, userID)
}

func (s *appRepoStub) Delete(_ context.Context, id string) error {
	for userID, app := range s.byUser {
		if app.ApplicationID == id {
			delete(s.byUser, userID)
			return nil
		}
	}
	return errs.NotFound("application not found")
}

func (s *appRepoStub) ListByState(_ context.Context, state domain.ApplicationState, offset, limit int) ([]*domain.CreatorApplication, int64, error) {
	var out []*domain.CreatorApplication
	for _, app := range s.byUser {
		if state == "" || app.State == state {
			out = append(out, app)
		}
	}
	return out, int64(len(out)), nil
}

type profileRepoStub struct {
	byUser map[string]*domain.CreatorProfile
}

func newProfileRepoStub() *profileRepoStub {
	return &profileRepoStub{byUser: make(map[string]*domain.CreatorProfile)}
}

func (s *profileRepoStub) conflicts(p *domain.CreatorProfile) bool {
	for _, other := range s.byUser {
		if other.UserID == p.UserID {
			continue
		}
		if other.Handle == p.Handle || other.TokenSymbol == p.TokenSymbol {
			return true
		}
	}
	return false
}

func (s *profileRepoStub) Save(_ context.Context, p *domain.CreatorProfile) error {
	if _, ok := s.byUser[p.UserID]; ok {
		return errs.Conflict("profile handle or token symbol already taken")
	}
	if s.conflicts(p) {
		return errs.Conflict("profile handle or token symbol already taken")
	}
	s.byUser[p.UserID] = p
	return nil
}

func (s *profileRepoStub) Update(_ context.Context, p *domain.CreatorProfile) error {
	if s.conflicts(p) {
		return errs.Conflict("profile handle or token symbol already taken")
	}
	s.byUser[p.UserID] = p
	return nil
}

func (s *profileRepoStub) GetByUserID(_ context.Context, userID string) (*domain.CreatorProfile, error) {
	if p, ok := s.byUser[userID]; ok {
		return p, nil
	}
	return nil, errs.NotFound("profile not found")
}

func (s *profileRepoStub) GetByHandle(_ context.Context, handle string) (*domain.CreatorProfile, error) {
	for _, p := range s.byUser {
		if p.Handle == handle {
			return p, nil
		}
	}
	return nil, errs.NotFound("profile not found")
}

func (s *profileRepoStub) DeleteByUserID(_ context.Context, userID string) error {
	delete(s.byUser, userID)
	return nil
}

type docRepoStub struct {
	docs []*domain.Document
}

func (s *docRepoStub) Save(_ context.Context, d *domain.Document) error {
	s.docs = append(s.docs, d)
	return nil
}

func (s *docRepoStub) ListByUserID(_ context.Context, userID string) ([]*domain.Document, error) {
	var out []*domain.Document
	for _, d := range s.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *docRepoStub) Delete(_ context.Context, documentID string) error {
	for i, d := range s.docs {
		if d.DocumentID == documentID {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *docRepoStub) DeleteByUserID(_ context.Context, userID string) error {
	kept := s.docs[:0]
	for _, d := range s.docs {
		if d.UserID != userID {
			kept = append(kept, d)
		}
	}
	s.docs = kept
	return nil
}

type linkRepoStub struct {
	links []*domain.SocialLink
}

func (s *linkRepoStub) Save(_ context.Context, l *domain.SocialLink) error {
	for _, other := range s.links {
		if other.UserID == l.UserID && other.Platform == l.Platform {
			return errs.Conflict("platform already linked")
		}
	}
	s.links = append(s.links, l)
	return nil
}

func (s *linkRepoStub) Update(_ context.Context, l *domain.SocialLink) error {
	for i, other := range s.links {
		if other.LinkID == l.LinkID {
			s.links[i] = l
			return nil
		}
	}
	return errs.NotFound("social link not found")
}

func (s *linkRepoStub) GetByID(_ context.Context, linkID string) (*domain.SocialLink, error) {
	for _, l := range s.links {
		if l.LinkID == linkID {
			return l, nil
		}
	}
	return nil, errs.NotFound("social link not found")
}

func (s *linkRepoStub) ListByUserID(_ context.Context, userID string) ([]*domain.SocialLink, error) {
	var out []*domain.SocialLink
	for _, l := range s.links {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *linkRepoStub) Delete(_ context.Context, linkID string) error {
	for i, l := range s.links {
		if l.LinkID == linkID {
			s.links = append(s.links[:i], s.links[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("social link not found")
}

func (s *linkRepoStub) DeleteByUserID(_ context.Context, userID string) error {
	kept := s.links[:0]
	for _, l := range s.links {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	s.links = kept
	return nil
}

type accountRepoStub struct {
	roles map[string]identitydomain.Role
}

func (s *accountRepoStub) GetByUserID(_ context.Context, userID string) (*identitydomain.UserAccount, error) {
	if role, ok := s.roles[userID]; ok {
		return &identitydomain.UserAccount{UserID: userID, Role: role}, nil
	}
	return nil, errs.NotFound("account not found")
}

func (s *accountRepoStub) UpsertRole(_ context.Context, userID string, role identitydomain.Role) error {
	s.roles[userID] = role
	return nil
}

type auditStub struct {
	logs []*auditdomain.VerificationLog
}

func (s *auditStub) Record(_ context.Context, log *auditdomain.VerificationLog) error {
	s.logs = append(s.logs, log)
	return nil
}

func (s *auditStub) ListBySubject(_ context.Context, subjectID string) ([]*auditdomain.VerificationLog, error) {
	var out []*auditdomain.VerificationLog
	for _, l := range s.logs {
		if l.SubjectID == subjectID {
			out = append(out, l)
		}
	}
	return out, nil
}

type eventStub struct {
	submitted []domain.ApplicationSubmittedEvent
	reviewed  []domain.ApplicationReviewedEvent
	withdrawn []domain.ApplicationWithdrawnEvent
	approved  []domain.CreatorApprovedEvent
}

func (s *eventStub) PublishApplicationSubmitted(_ context.Context, e domain.ApplicationSubmittedEvent) error {
	s.submitted = append(s.submitted, e)
	return nil
}

func (s *eventStub) PublishApplicationReviewed(_ context.Context, e domain.ApplicationReviewedEvent) error {
	s.reviewed = append(s.reviewed, e)
	return nil
}

func (s *eventStub) PublishApplicationWithdrawn(_ context.Context, e domain.ApplicationWithdrawnEvent) error {
	s.withdrawn = append(s.withdrawn, e)
	return nil
}

func (s *eventStub) PublishCreatorApproved(_ context.Context, e domain.CreatorApprovedEvent) error {
	s.approved = append(s.approved, e)
	return nil
}

type fixture struct {
	service  *OnboardingService
	apps     *appRepoStub
	profiles *profileRepoStub
	docs     *docRepoStub
	links    *linkRepoStub
	accounts *accountRepoStub
	audit    *auditStub
	events   *eventStub
}

func newFixture() *fixture {
	f := &fixture{
		apps:     newAppRepoStub(),
		profiles: newProfileRepoStub(),
		docs:     &docRepoStub{},
		links:    &linkRepoStub{},
		accounts: &accountRepoStub{roles: make(map[string]identitydomain.Role)},
		audit:    &auditStub{},
		events:   &eventStub{},
	}
	f.service = NewOnboardingService(
		f.apps, f.profiles, f.docs, f.links, f.accounts, f.audit, f.events,
		metrics.New("test"), utils.NewSnowflakeID(1), fakeTx{},
	)
	return f
}

var (
	user  = middleware.Principal{UserID: "u1", Role: middleware.RoleUser}
	other = middleware.Principal{UserID: "u2", Role: middleware.RoleUser}
	admin = middleware.Principal{UserID: "adm", Role: middleware.RoleAdmin}
)

func completeCommand() SubmitCompleteCommand {
	return SubmitCompleteCommand{
		ContentOwnership: true,
		Profile: ProfilePayload{
			Handle:      "creator_one",
			FullName:    "Creator One",
			Category:    "music",
			TokenSymbol: "cro",
			TokenName:   "Creator One Token",
		},
		Documents: []DocumentPayload{
			{Type: "identity", FileURL: "https://files.example.com/id.pdf"},
		},
		SocialLinks: []SocialLinkPayload{
			{Platform: "youtube", Handle: "creatorone", URL: "https://youtube.com/@creatorone", FollowerCount: 1200},
		},
	}
}

func TestSubmitConflictOnSecondApplication(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.Submit(ctx, user, SubmitCommand{ContentOwnership: true}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := f.service.Submit(ctx, user, SubmitCommand{ContentOwnership: true}); !errs.IsKind(err, errs.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(f.audit.logs) != 1 {
		t.Fatalf("expected 1 audit log, got %d", len(f.audit.logs))
	}
}

func TestSubmitRequiresDeclaration(t *testing.T) {
	f := newFixture()
	if _, err := f.service.Submit(context.Background(), user, SubmitCommand{}); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitCompleteNormalizesProfile(t *testing.T) {
	f := newFixture()
	detail, err := f.service.SubmitComplete(context.Background(), user, completeCommand())
	if err != nil {
		t.Fatalf("submit complete: %v", err)
	}
	if detail.Application.State != string(domain.StatePendingReview) {
		t.Fatalf("expected pending_review, got %s", detail.Application.State)
	}
	if detail.Profile.Handle != "creator_one" || detail.Profile.TokenSymbol != "CRO" {
		t.Fatalf("normalization failed: %+v", detail.Profile)
	}
	if len(f.events.submitted) != 1 {
		t.Fatalf("expected submitted event")
	}
}

func TestSubmitCompleteRejectsDuplicatePlatform(t *testing.T) {
	f := newFixture()
	cmd := completeCommand()
	cmd.SocialLinks = append(cmd.SocialLinks, cmd.SocialLinks[0])
	if _, err := f.service.SubmitComplete(context.Background(), user, cmd); !errs.IsKind(err, errs.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSubmitCompleteConflictOnTakenHandle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.service.SubmitComplete(ctx, user, completeCommand()); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if _, err := f.service.SubmitComplete(ctx, other, completeCommand()); !errs.IsKind(err, errs.KindConflict) {
		t.Fatalf("expected conflict for duplicate handle, got %v", err)
	}
}

func TestReviewApprovalPromotesRoleAndActivatesProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	detail, err := f.service.SubmitComplete(ctx, user, completeCommand())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	appID := detail.Application.ApplicationID

	if _, err := f.service.Review(ctx, admin, ReviewCommand{ApplicationID: appID, Decision: DecisionUnderReview}); err != nil {
		t.Fatalf("start review: %v", err)
	}
	if _, err := f.service.Review(ctx, admin, ReviewCommand{ApplicationID: appID, Decision: DecisionApproved}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if f.accounts.roles["u1"] != identitydomain.RoleCreator {
		t.Fatalf("role not promoted: %v", f.accounts.roles["u1"])
	}
	profile, _ := f.profiles.GetByUserID(ctx, "u1")
	if !profile.IsActive() {
		t.Fatalf("profile not activated")
	}
	if len(f.events.approved) != 1 {
		t.Fatalf("expected creator approved event")
	}
}

func TestReviewRequiresAdmin(t *testing.T) {
	f := newFixture()
	if _, err := f.service.Review(context.Background(), user, ReviewCommand{ApplicationID: "x", Decision: DecisionApproved}); !errs.IsKind(err, errs.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestReviewRejectionNeedsLongReason(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	detail, _ := f.service.SubmitComplete(ctx, user, completeCommand())
	appID := detail.Application.ApplicationID
	_, _ = f.service.Review(ctx, admin, ReviewCommand{ApplicationID: appID, Decision: DecisionUnderReview})

	if _, err := f.service.Review(ctx, admin, ReviewCommand{ApplicationID: appID, Decision: DecisionRejected, Reason: "too short"}); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.service.Review(ctx, admin, ReviewCommand{ApplicationID: appID, Decision: DecisionRejected, Reason: "insufficient proof of content ownership"}); err != nil {
		t.Fatalf("reject: %v", err)
	}
}

func TestWithdrawCascades(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.service.SubmitComplete(ctx, user, completeCommand()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := f.service.Withdraw(ctx, user); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := f.apps.GetByUserID(ctx, "u1"); !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("application should be gone")
	}
	if _, err := f.profiles.GetByUserID(ctx, "u1"); !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("profile should be gone")
	}
	if docs, _ := f.docs.ListByUserID(ctx, "u1"); len(docs) != 0 {
		t.Fatalf("documents should be gone")
	}
	if links, _ := f.links.ListByUserID(ctx, "u1"); len(links) != 0 {
		t.Fatalf("social links should be gone")
	}

	// 撤回后可以重新提交
	if _, err := f.service.SubmitComplete(ctx, user, completeCommand()); err != nil {
		t.Fatalf("resubmit after withdraw: %v", err)
	}
}

func TestWithdrawForbiddenAfterApproval(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	detail, _ := f.service.SubmitComplete(ctx, user, completeCommand())
	appID := detail.Application.ApplicationID
	_, _ = f.service.Review(ctx, admin, ReviewCommand{ApplicationID: appID, Decision: DecisionUnderReview})
	_, _ = f.service.Review(ctx, admin, ReviewCommand{ApplicationID: appID, Decision: DecisionApproved})

	if err := f.service.Withdraw(ctx, user); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestUpdateOnlyUnderReview(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	detail, _ := f.service.SubmitComplete(ctx, user, completeCommand())

	cmd := UpdateCommand{
		Profile:     completeCommand().Profile,
		Documents:   completeCommand().Documents,
		SocialLinks: completeCommand().SocialLinks,
	}
	if _, err := f.service.Update(ctx, user, cmd); !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state before review, got %v", err)
	}

	_, _ = f.service.Review(ctx, admin, ReviewCommand{ApplicationID: detail.Application.ApplicationID, Decision: DecisionUnderReview})
	if _, err := f.service.Update(ctx, user, cmd); err != nil {
		t.Fatalf("update under review: %v", err)
	}
}

func TestUpdatePreservesUnchangedSocialLinkIDs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	detail, _ := f.service.SubmitComplete(ctx, user, completeCommand())
	_, _ = f.service.Review(ctx, admin, ReviewCommand{ApplicationID: detail.Application.ApplicationID, Decision: DecisionUnderReview})
	originalLinkID := detail.SocialLinks[0].LinkID

	cmd := UpdateCommand{
		Profile:   completeCommand().Profile,
		Documents: completeCommand().Documents,
		SocialLinks: []SocialLinkPayload{
			{Platform: "youtube", Handle: "renamed", URL: "https://youtube.com/@renamed", FollowerCount: 5000},
			{Platform: "twitter", Handle: "creatorone", URL: "https://twitter.com/creatorone"},
		},
	}
	updated, err := f.service.Update(ctx, user, cmd)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var youtube *SocialLinkDTO
	for i := range updated.SocialLinks {
		if updated.SocialLinks[i].Platform == "youtube" {
			youtube = &updated.SocialLinks[i]
		}
	}
	if youtube == nil {
		t.Fatalf("youtube link missing")
	}
	if youtube.LinkID != originalLinkID {
		t.Fatalf("unchanged platform should keep its id: got %s want %s", youtube.LinkID, originalLinkID)
	}
	if youtube.Handle != "renamed" || youtube.FollowerCount != 5000 {
		t.Fatalf("link content not updated: %+v", youtube)
	}
	if len(updated.SocialLinks) != 2 {
		t.Fatalf("expected 2 links, got %d", len(updated.SocialLinks))
	}
}

func TestAttachRejectedAfterApproval(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	detail, _ := f.service.SubmitComplete(ctx, user, completeCommand())
	appID := detail.Application.ApplicationID
	_, _ = f.service.Review(ctx, admin, ReviewCommand{ApplicationID: appID, Decision: DecisionUnderReview})
	_, _ = f.service.Review(ctx, admin, ReviewCommand{ApplicationID: appID, Decision: DecisionApproved})

	_, err := f.service.AttachDocument(ctx, user, DocumentPayload{Type: "other", FileURL: "https://files.example.com/x.pdf"})
	if !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	_, err = f.service.AttachSocialLink(ctx, user, SocialLinkPayload{Platform: "twitter", Handle: "h", URL: "https://twitter.com/h"})
	if !errs.IsKind(err, errs.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestAttachSocialLinkDuplicatePlatform(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, _ = f.service.SubmitComplete(ctx, user, completeCommand())

	_, err := f.service.AttachSocialLink(ctx, user, SocialLinkPayload{Platform: "youtube", Handle: "again", URL: "https://youtube.com/@again"})
	if !errs.IsKind(err, errs.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRemoveSocialLinkOwnership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	detail, _ := f.service.SubmitComplete(ctx, user, completeCommand())
	linkID := detail.SocialLinks[0].LinkID

	if err := f.service.RemoveSocialLink(ctx, other, linkID); !errs.IsKind(err, errs.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := f.service.RemoveSocialLink(ctx, user, linkID); err != nil {
		t.Fatalf("remove: %v", err)
	}
}

func TestGetProfileOnlyActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	detail, _ := f.service.SubmitComplete(ctx, user, completeCommand())

	if _, err := f.service.GetProfile(ctx, "creator_one"); !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("pending profile must not be public, got %v", err)
	}

	appID := detail.Application.ApplicationID
	_, _ = f.service.Review(ctx, admin, ReviewCommand{ApplicationID: appID, Decision: DecisionUnderReview})
	_, _ = f.service.Review(ctx, admin, ReviewCommand{ApplicationID: appID, Decision: DecisionApproved})

	profile, err := f.service.GetProfile(ctx, "Creator_One")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Handle != "creator_one" {
		t.Fatalf("unexpected handle %s", profile.Handle)
	}
}

func TestGetProgress(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.service.Submit(ctx, user, SubmitCommand{ContentOwnership: true}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	progress, err := f.service.GetProgress(ctx, user)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.ProfileComplete || progress.CompletedPercent != 25 {
		t.Fatalf("unexpected progress: %+v", progress)
	}

	f2 := newFixture()
	_, _ = f2.service.SubmitComplete(ctx, user, completeCommand())
	progress, err = f2.service.GetProgress(ctx, user)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if !progress.ReadyForReview || progress.CompletedPercent != 100 {
		t.Fatalf("unexpected progress: %+v", progress)
	}
}
