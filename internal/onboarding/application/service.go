// Package application 编排入驻申请的用例：提交、更新、审核、撤回与进度查询
package application

import (
	"context"
	"fmt"
	"time"

	auditdomain "github.com/wyfcoding/creatorlaunch/internal/audit/domain"
	identitydomain "github.com/wyfcoding/creatorlaunch/internal/identity/domain"
	"github.com/wyfcoding/creatorlaunch/internal/onboarding/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/db"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
	"github.com/wyfcoding/creatorlaunch/pkg/logger"
	"github.com/wyfcoding/creatorlaunch/pkg/metrics"
	"github.com/wyfcoding/creatorlaunch/pkg/middleware"
	"github.com/wyfcoding/creatorlaunch/pkg/utils"
)

const (
	maxDocuments   = 10
	maxSocialLinks = 10
)

// OnboardingService 应用层服务，协调申请、档案与附件的事务边界
type OnboardingService struct {
	apps     domain.ApplicationRepository
	profiles domain.ProfileRepository
	docs     domain.DocumentRepository
	links    domain.SocialLinkRepository
	accounts identitydomain.AccountRepository
	audit    auditdomain.Recorder
	events   domain.ApplicationEventPublisher
	metrics  *metrics.Metrics
	idgen    *utils.SnowflakeID
	db       db.TxRunner
}

func NewOnboardingService(
	apps domain.ApplicationRepository,
	profiles domain.ProfileRepository,
	docs domain.DocumentRepository,
	links domain.SocialLinkRepository,
	accounts identitydomain.AccountRepository,
	audit auditdomain.Recorder,
	events domain.ApplicationEventPublisher,
	m *metrics.Metrics,
	idgen *utils.SnowflakeID,
	database db.TxRunner,
) *OnboardingService {
	return &OnboardingService{
		apps:     apps,
		profiles: profiles,
		docs:     docs,
		links:    links,
		accounts: accounts,
		audit:    audit,
		events:   events,
		metrics:  m,
		idgen:    idgen,
		db:       database,
	}
}

func (s *OnboardingService) newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, s.idgen.Generate())
}

func (s *OnboardingService) record(ctx context.Context, subjectID, subjectType, action, actorID, reason string, now time.Time) error {
	return s.audit.Record(ctx, &auditdomain.VerificationLog{
		LogID:       s.newID("LOG"),
		SubjectID:   subjectID,
		SubjectType: subjectType,
		Action:      action,
		ActorID:     actorID,
		Reason:      reason,
		OccurredAt:  now,
	})
}

// Submit 分步提交，只创建申请记录
func (s *OnboardingService) Submit(ctx context.Context, principal middleware.Principal, cmd SubmitCommand) (*ApplicationDTO, error) {
	now := time.Now()
	app, err := domain.NewApplication(s.newID("APP"), principal.UserID, cmd.ContentOwnership, now)
	if err != nil {
		return nil, err
	}

	err = s.db.WithTx(ctx, func(txCtx context.Context) error {
		// 唯一索引 user_id 是并发提交的最终仲裁，重复插入返回 Conflict
		if err := s.apps.Save(txCtx, app); err != nil {
			return err
		}
		if err := s.record(txCtx, app.ApplicationID, "application", "submitted", principal.UserID, "", now); err != nil {
			return err
		}
		return s.events.PublishApplicationSubmitted(txCtx, domain.ApplicationSubmittedEvent{
			ApplicationID: app.ApplicationID,
			UserID:        app.UserID,
			State:         string(app.State),
			SubmittedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ApplicationsSubmittedTotal.Inc()
	logger.Info(ctx, "application submitted", "application_id", app.ApplicationID, "user_id", principal.UserID)
	dto := toApplicationDTO(app)
	return &dto, nil
}

// validateChildren 校验附件数量与平台唯一性
func validateChildren(documents []DocumentPayload, socialLinks []SocialLinkPayload) error {
	if len(documents) == 0 || len(documents) > maxDocuments {
		return errs.Validationf("documents must contain 1 to %d entries", maxDocuments)
	}
	if len(socialLinks) == 0 || len(socialLinks) > maxSocialLinks {
		return errs.Validationf("social links must contain 1 to %d entries", maxSocialLinks)
	}
	for _, d := range documents {
		if !domain.ValidDocumentType(domain.DocumentType(d.Type)) {
			return errs.Validationf("unknown document type %q", d.Type)
		}
		if d.FileURL == "" {
			return errs.Validation("document file url is required")
		}
	}
	seen := make(map[domain.SocialPlatform]bool, len(socialLinks))
	for _, l := range socialLinks {
		platform := domain.SocialPlatform(l.Platform)
		if !domain.ValidSocialPlatform(platform) {
			return errs.Validationf("unknown social platform %q", l.Platform)
		}
		if seen[platform] {
			return errs.Conflictf("platform %s appears more than once", platform)
		}
		seen[platform] = true
		if l.Handle == "" || l.URL == "" {
			return errs.Validation("social link handle and url are required")
		}
	}
	return nil
}

func (s *OnboardingService) buildDocuments(userID string, payloads []DocumentPayload) []*domain.Document {
	docs := make([]*domain.Document, 0, len(payloads))
	for _, p := range payloads {
		docs = append(docs, &domain.Document{
			DocumentID: s.newID("DOC"),
			UserID:     userID,
			Type:       domain.DocumentType(p.Type),
			FileURL:    p.FileURL,
			Notes:      p.Notes,
			Status:     "pending",
		})
	}
	return docs
}

func (s *OnboardingService) buildSocialLinks(userID string, payloads []SocialLinkPayload) []*domain.SocialLink {
	links := make([]*domain.SocialLink, 0, len(payloads))
	for _, p := range payloads {
		links = append(links, &domain.SocialLink{
			LinkID:        s.newID("SL"),
			UserID:        userID,
			Platform:      domain.SocialPlatform(p.Platform),
			Handle:        p.Handle,
			URL:           p.URL,
			FollowerCount: p.FollowerCount,
		})
	}
	return links
}

// SubmitComplete 一次性完整提交：申请、档案、附件与审计在一个事务内落库
func (s *OnboardingService) SubmitComplete(ctx context.Context, principal middleware.Principal, cmd SubmitCompleteCommand) (*ApplicationDetailDTO, error) {
	now := time.Now()
	app, err := domain.NewCompleteApplication(s.newID("APP"), principal.UserID, cmd.ContentOwnership, now)
	if err != nil {
		return nil, err
	}
	profile, err := domain.NewProfile(s.newID("PRF"), principal.UserID, toProfileDraft(cmd.Profile))
	if err != nil {
		return nil, err
	}
	if err := validateChildren(cmd.Documents, cmd.SocialLinks); err != nil {
		return nil, err
	}

	docs := s.buildDocuments(principal.UserID, cmd.Documents)
	links := s.buildSocialLinks(principal.UserID, cmd.SocialLinks)

	err = s.db.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.apps.Save(txCtx, app); err != nil {
			return err
		}
		// handle / token symbol 的全局唯一由唯一索引裁决，冲突时整个事务回滚
		if err := s.profiles.Save(txCtx, profile); err != nil {
			return err
		}
		for _, doc := range docs {
			if err := s.docs.Save(txCtx, doc); err != nil {
				return err
			}
		}
		for _, link := range links {
			if err := s.links.Save(txCtx, link); err != nil {
				return err
			}
		}
		if err := s.record(txCtx, app.ApplicationID, "application", "submitted_complete", principal.UserID, "", now); err != nil {
			return err
		}
		return s.events.PublishApplicationSubmitted(txCtx, domain.ApplicationSubmittedEvent{
			ApplicationID: app.ApplicationID,
			UserID:        app.UserID,
			State:         string(app.State),
			SubmittedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ApplicationsSubmittedTotal.Inc()
	logger.Info(ctx, "complete application submitted",
		"application_id", app.ApplicationID, "user_id", principal.UserID, "handle", profile.Handle)
	return &ApplicationDetailDTO{
		Application: toApplicationDTO(app),
		Profile:     toProfileDTO(profile),
		Documents:   toDocumentDTOs(docs),
		SocialLinks: toSocialLinkDTOs(links),
	}, nil
}

// Update 审核中整体更新提交内容，子集合按差集替换
func (s *OnboardingService) Update(ctx context.Context, principal middleware.Principal, cmd UpdateCommand) (*ApplicationDetailDTO, error) {
	now := time.Now()
	if err := validateChildren(cmd.Documents, cmd.SocialLinks); err != nil {
		return nil, err
	}

	var detail *ApplicationDetailDTO
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		app, err := s.apps.GetByUserIDWithLock(txCtx, principal.UserID)
		if err != nil {
			return err
		}
		if !app.Editable() {
			return errs.InvalidStatef("application in state %q cannot be updated", app.State)
		}

		profile, err := s.profiles.GetByUserID(txCtx, principal.UserID)
		if err != nil {
			return err
		}
		updated, err := domain.NewProfile(profile.ProfileID, principal.UserID, toProfileDraft(cmd.Profile))
		if err != nil {
			return err
		}
		updated.Model = profile.Model
		updated.Status = profile.Status
		if err := s.profiles.Update(txCtx, updated); err != nil {
			return err
		}
		profile = updated

		docs, err := s.replaceDocuments(txCtx, principal.UserID, cmd.Documents)
		if err != nil {
			return err
		}
		links, err := s.replaceSocialLinks(txCtx, principal.UserID, cmd.SocialLinks)
		if err != nil {
			return err
		}

		if err := s.record(txCtx, app.ApplicationID, "application", "updated", principal.UserID, "", now); err != nil {
			return err
		}

		detail = &ApplicationDetailDTO{
			Application: toApplicationDTO(app),
			Profile:     toProfileDTO(profile),
			Documents:   toDocumentDTOs(docs),
			SocialLinks: toSocialLinkDTOs(links),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "application updated", "user_id", principal.UserID)
	return detail, nil
}

// replaceDocuments 按 (type, file_url) 差集替换文档：未变保留原记录，缺失删除，新增插入
func (s *OnboardingService) replaceDocuments(ctx context.Context, userID string, payloads []DocumentPayload) ([]*domain.Document, error) {
	existing, err := s.docs.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*domain.Document, len(existing))
	for _, d := range existing {
		byKey[string(d.Type)+"|"+d.FileURL] = d
	}

	result := make([]*domain.Document, 0, len(payloads))
	wanted := make(map[string]bool, len(payloads))
	for _, p := range payloads {
		key := p.Type + "|" + p.FileURL
		wanted[key] = true
		if d, ok := byKey[key]; ok {
			result = append(result, d)
			continue
		}
		d := s.buildDocuments(userID, []DocumentPayload{p})[0]
		if err := s.docs.Save(ctx, d); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	for key, d := range byKey {
		if !wanted[key] {
			if err := s.docs.Delete(ctx, d.DocumentID); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// replaceSocialLinks 按平台差集替换：同平台更新原记录，缺失平台删除，新平台插入
func (s *OnboardingService) replaceSocialLinks(ctx context.Context, userID string, payloads []SocialLinkPayload) ([]*domain.SocialLink, error) {
	existing, err := s.links.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	byPlatform := make(map[domain.SocialPlatform]*domain.SocialLink, len(existing))
	for _, l := range existing {
		byPlatform[l.Platform] = l
	}

	result := make([]*domain.SocialLink, 0, len(payloads))
	wanted := make(map[domain.SocialPlatform]bool, len(payloads))
	for _, p := range payloads {
		platform := domain.SocialPlatform(p.Platform)
		wanted[platform] = true
		if l, ok := byPlatform[platform]; ok {
			// 同平台保留 link_id，只更新内容
			l.Handle = p.Handle
			l.URL = p.URL
			l.FollowerCount = p.FollowerCount
			if err := s.links.Update(ctx, l); err != nil {
				return nil, err
			}
			result = append(result, l)
			continue
		}
		nl := s.buildSocialLinks(userID, []SocialLinkPayload{p})[0]
		if err := s.links.Save(ctx, nl); err != nil {
			return nil, err
		}
		result = append(result, nl)
	}
	for platform, l := range byPlatform {
		if !wanted[platform] {
			if err := s.links.Delete(ctx, l.LinkID); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// AttachDocument 批准前附加文档
func (s *OnboardingService) AttachDocument(ctx context.Context, principal middleware.Principal, payload DocumentPayload) (*DocumentDTO, error) {
	now := time.Now()
	if !domain.ValidDocumentType(domain.DocumentType(payload.Type)) {
		return nil, errs.Validationf("unknown document type %q", payload.Type)
	}
	if payload.FileURL == "" {
		return nil, errs.Validation("document file url is required")
	}

	doc := s.buildDocuments(principal.UserID, []DocumentPayload{payload})[0]
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		app, err := s.apps.GetByUserIDWithLock(txCtx, principal.UserID)
		if err != nil {
			return err
		}
		if !app.AcceptsEvidence() {
			return errs.InvalidState("approved application no longer accepts documents")
		}
		if err := s.docs.Save(txCtx, doc); err != nil {
			return err
		}
		return s.record(txCtx, app.ApplicationID, "application", "document_attached", principal.UserID, "", now)
	})
	if err != nil {
		return nil, err
	}

	dto := toDocumentDTOs([]*domain.Document{doc})[0]
	return &dto, nil
}

// AttachSocialLink 批准前附加社交链接，平台重复返回 Conflict
func (s *OnboardingService) AttachSocialLink(ctx context.Context, principal middleware.Principal, payload SocialLinkPayload) (*SocialLinkDTO, error) {
	now := time.Now()
	if !domain.ValidSocialPlatform(domain.SocialPlatform(payload.Platform)) {
		return nil, errs.Validationf("unknown social platform %q", payload.Platform)
	}
	if payload.Handle == "" || payload.URL == "" {
		return nil, errs.Validation("social link handle and url are required")
	}

	link := s.buildSocialLinks(principal.UserID, []SocialLinkPayload{payload})[0]
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		app, err := s.apps.GetByUserIDWithLock(txCtx, principal.UserID)
		if err != nil {
			return err
		}
		if !app.AcceptsEvidence() {
			return errs.InvalidState("approved application no longer accepts social links")
		}
		if err := s.links.Save(txCtx, link); err != nil {
			return err
		}
		return s.record(txCtx, app.ApplicationID, "application", "social_link_attached", principal.UserID, "", now)
	})
	if err != nil {
		return nil, err
	}

	dto := toSocialLinkDTOs([]*domain.SocialLink{link})[0]
	return &dto, nil
}

// RemoveSocialLink 移除本人社交链接，批准后不允许
func (s *OnboardingService) RemoveSocialLink(ctx context.Context, principal middleware.Principal, linkID string) error {
	now := time.Now()
	return s.db.WithTx(ctx, func(txCtx context.Context) error {
		link, err := s.links.GetByID(txCtx, linkID)
		if err != nil {
			return err
		}
		if !principal.Owns(link.UserID) {
			return errs.Forbidden("social link belongs to another user")
		}
		app, err := s.apps.GetByUserIDWithLock(txCtx, principal.UserID)
		if err != nil {
			return err
		}
		if !app.AcceptsEvidence() {
			return errs.InvalidState("approved application no longer accepts changes")
		}
		if err := s.links.Delete(txCtx, linkID); err != nil {
			return err
		}
		return s.record(txCtx, app.ApplicationID, "application", "social_link_removed", principal.UserID, "", now)
	})
}

// Review 管理员审核：进入审核、批准或拒绝
func (s *OnboardingService) Review(ctx context.Context, principal middleware.Principal, cmd ReviewCommand) (*ApplicationDTO, error) {
	if !principal.IsAdmin() {
		return nil, errs.Forbidden("review requires admin capability")
	}
	now := time.Now()

	var result *ApplicationDTO
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		app, err := s.apps.GetByApplicationIDWithLock(txCtx, cmd.ApplicationID)
		if err != nil {
			return err
		}

		switch cmd.Decision {
		case DecisionUnderReview:
			if err := app.StartReview(principal.UserID, now); err != nil {
				return err
			}
		case DecisionApproved:
			if err := app.Approve(principal.UserID, now); err != nil {
				return err
			}
		case DecisionRejected:
			if len(cmd.Reason) < 10 {
				return errs.Validation("rejection reason must be at least 10 characters")
			}
			if err := app.Reject(principal.UserID, cmd.Reason, now); err != nil {
				return err
			}
		default:
			return errs.Validationf("unknown review decision %q", cmd.Decision)
		}

		if err := s.apps.Update(txCtx, app); err != nil {
			return err
		}

		if cmd.Decision == DecisionApproved {
			profile, err := s.profiles.GetByUserID(txCtx, app.UserID)
			if err != nil {
				return err
			}
			profile.Activate()
			if err := s.profiles.Update(txCtx, profile); err != nil {
				return err
			}
			// 角色提升与批准同事务，失败整体回滚
			if err := s.accounts.UpsertRole(txCtx, app.UserID, identitydomain.RoleCreator); err != nil {
				return err
			}
			if err := s.events.PublishCreatorApproved(txCtx, domain.CreatorApprovedEvent{
				ApplicationID: app.ApplicationID,
				UserID:        app.UserID,
				ProfileID:     profile.ProfileID,
				Handle:        profile.Handle,
				ApprovedAt:    now,
			}); err != nil {
				return err
			}
		}

		if err := s.record(txCtx, app.ApplicationID, "application", string(cmd.Decision), principal.UserID, cmd.Reason, now); err != nil {
			return err
		}
		if err := s.events.PublishApplicationReviewed(txCtx, domain.ApplicationReviewedEvent{
			ApplicationID:   app.ApplicationID,
			UserID:          app.UserID,
			Decision:        string(cmd.Decision),
			ReviewedBy:      principal.UserID,
			RejectionReason: cmd.Reason,
			ReviewedAt:      now,
		}); err != nil {
			return err
		}

		dto := toApplicationDTO(app)
		result = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cmd.Decision == DecisionApproved {
		s.metrics.ApplicationsApprovedTotal.Inc()
	}
	logger.Info(ctx, "application reviewed",
		"application_id", cmd.ApplicationID, "decision", cmd.Decision, "reviewed_by", principal.UserID)
	return result, nil
}

// Withdraw 撤回申请并级联删除档案与附件，approved 状态不可撤回
func (s *OnboardingService) Withdraw(ctx context.Context, principal middleware.Principal) error {
	now := time.Now()
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		app, err := s.apps.GetByUserIDWithLock(txCtx, principal.UserID)
		if err != nil {
			return err
		}
		if !app.CanWithdraw() {
			return errs.InvalidState("approved application cannot be withdrawn")
		}
		if err := s.links.DeleteByUserID(txCtx, principal.UserID); err != nil {
			return err
		}
		if err := s.docs.DeleteByUserID(txCtx, principal.UserID); err != nil {
			return err
		}
		if err := s.profiles.DeleteByUserID(txCtx, principal.UserID); err != nil && !errs.IsKind(err, errs.KindNotFound) {
			return err
		}
		if err := s.apps.Delete(txCtx, app.ApplicationID); err != nil {
			return err
		}
		if err := s.record(txCtx, app.ApplicationID, "application", "withdrawn", principal.UserID, "", now); err != nil {
			return err
		}
		return s.events.PublishApplicationWithdrawn(txCtx, domain.ApplicationWithdrawnEvent{
			ApplicationID: app.ApplicationID,
			UserID:        principal.UserID,
			WithdrawnAt:   now,
		})
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "application withdrawn", "user_id", principal.UserID)
	return nil
}

// GetApplication 查询本人申请详情
func (s *OnboardingService) GetApplication(ctx context.Context, principal middleware.Principal) (*ApplicationDetailDTO, error) {
	app, err := s.apps.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByUserID(ctx, principal.UserID)
	if err != nil && !errs.IsKind(err, errs.KindNotFound) {
		return nil, err
	}
	docs, err := s.docs.ListByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	links, err := s.links.ListByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return &ApplicationDetailDTO{
		Application: toApplicationDTO(app),
		Profile:     toProfileDTO(profile),
		Documents:   toDocumentDTOs(docs),
		SocialLinks: toSocialLinkDTOs(links),
	}, nil
}

// GetProfile 按 handle 查询对外档案，仅 active 档案可见
func (s *OnboardingService) GetProfile(ctx context.Context, handle string) (*ProfileDTO, error) {
	normalized, err := domain.NormalizeHandle(handle)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByHandle(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive() {
		return nil, errs.NotFound("profile not found")
	}
	return toProfileDTO(profile), nil
}

// GetMyProfile 查询本人档案，任意状态
func (s *OnboardingService) GetMyProfile(ctx context.Context, principal middleware.Principal) (*ProfileDTO, error) {
	profile, err := s.profiles.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return toProfileDTO(profile), nil
}

// GetProgress 查询入驻进度
func (s *OnboardingService) GetProgress(ctx context.Context, principal middleware.Principal) (*ProgressDTO, error) {
	app, err := s.apps.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByUserID(ctx, principal.UserID)
	if err != nil && !errs.IsKind(err, errs.KindNotFound) {
		return nil, err
	}
	docs, err := s.docs.ListByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	links, err := s.links.ListByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	progress := &ProgressDTO{
		State:           string(app.State),
		ProfileComplete: profile != nil,
		DocumentCount:   len(docs),
		SocialLinkCount: len(links),
	}
	steps := 1 // 申请已提交
	if progress.ProfileComplete {
		steps++
	}
	if progress.DocumentCount > 0 {
		steps++
	}
	if progress.SocialLinkCount > 0 {
		steps++
	}
	progress.CompletedPercent = steps * 100 / 4
	progress.ReadyForReview = steps == 4
	return progress, nil
}

// ListPending 管理员查询待审核申请
func (s *OnboardingService) ListPending(ctx context.Context, principal middleware.Principal, state string, page, limit int) ([]ApplicationDTO, int64, error) {
	if !principal.IsAdmin() {
		return nil, 0, errs.Forbidden("listing applications requires admin capability")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	apps, total, err := s.apps.ListByState(ctx, domain.ApplicationState(state), (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationDTO(app))
	}
	return out, total, nil
}

func toProfileDraft(p ProfilePayload) domain.ProfileDraft {
	return domain.ProfileDraft{
		Handle:            p.Handle,
		FullName:          p.FullName,
		Bio:               p.Bio,
		Category:          p.Category,
		CustomCategory:    p.CustomCategory,
		TokenSymbol:       p.TokenSymbol,
		TokenName:         p.TokenName,
		TokenPitch:        p.TokenPitch,
		FundingGoal:       p.FundingGoal,
		ICOSupply:         p.ICOSupply,
		WalletAddress:     p.WalletAddress,
		Phone:             p.Phone,
		ProfilePictureURL: p.ProfilePictureURL,
	}
}
