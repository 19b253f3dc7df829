// Package application 编排代币发行的用例：创建、审核、上线、终态化与公告
package application

import (
	"context"
	"fmt"
	"time"

	auditdomain "github.com/wyfcoding/creatorlaunch/internal/audit/domain"
	"github.com/wyfcoding/creatorlaunch/internal/offering/domain"
	onboardingdomain "github.com/wyfcoding/creatorlaunch/internal/onboarding/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/db"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
	"github.com/wyfcoding/creatorlaunch/pkg/logger"
	"github.com/wyfcoding/creatorlaunch/pkg/metrics"
	"github.com/wyfcoding/creatorlaunch/pkg/middleware"
	"github.com/wyfcoding/creatorlaunch/pkg/utils"
)

// OfferingService 应用层服务，协调发行聚合与审计、事件的事务边界
type OfferingService struct {
	offerings domain.OfferingRepository
	updates   domain.UpdateRepository
	profiles  onboardingdomain.ProfileRepository
	audit     auditdomain.Recorder
	events    domain.OfferingEventPublisher
	metrics   *metrics.Metrics
	idgen     *utils.SnowflakeID
	db        db.TxRunner
}

func NewOfferingService(
	offerings domain.OfferingRepository,
	updates domain.UpdateRepository,
	profiles onboardingdomain.ProfileRepository,
	audit auditdomain.Recorder,
	events domain.OfferingEventPublisher,
	m *metrics.Metrics,
	idgen *utils.SnowflakeID,
	database db.TxRunner,
) *OfferingService {
	return &OfferingService{
		offerings: offerings,
		updates:   updates,
		profiles:  profiles,
		audit:     audit,
		events:    events,
		metrics:   m,
		idgen:     idgen,
		db:        database,
	}
}

func (s *OfferingService) newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, s.idgen.Generate())
}

func (s *OfferingService) record(ctx context.Context, offeringID, action, actorID, reason string, now time.Time) error {
	return s.audit.Record(ctx, &auditdomain.VerificationLog{
		LogID:       s.newID("LOG"),
		SubjectID:   offeringID,
		SubjectType: "offering",
		Action:      action,
		ActorID:     actorID,
		Reason:      reason,
		OccurredAt:  now,
	})
}

func applyAuxiliary(o *domain.Offering, cmd OfferingCommand) {
	milestones := make(domain.MilestoneList, 0, len(cmd.Milestones))
	for _, m := range cmd.Milestones {
		milestones = append(milestones, domain.Milestone{
			Title:       m.Title,
			Description: m.Description,
			TargetDate:  m.TargetDate,
		})
	}
	o.Milestones = milestones
	o.Roadmap = cmd.Roadmap
	o.TermsText = cmd.TermsText
	o.RiskText = cmd.RiskText
	o.WhitepaperURL = cmd.WhitepaperURL
	o.PitchDeckURL = cmd.PitchDeckURL
}

// Create 创建草稿发行，要求激活的创作者档案且尚无发行
func (s *OfferingService) Create(ctx context.Context, principal middleware.Principal, cmd OfferingCommand) (*OfferingDTO, error) {
	now := time.Now()
	profile, err := s.profiles.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.Forbidden("an active creator profile is required to create an offering")
		}
		return nil, err
	}
	if !profile.IsActive() {
		return nil, errs.Forbidden("an active creator profile is required to create an offering")
	}

	offering, err := domain.NewOffering(s.newID("IPO"), principal.UserID, profile.ProfileID, cmd.Title, cmd.Description, toTerms(cmd))
	if err != nil {
		return nil, err
	}
	applyAuxiliary(offering, cmd)

	err = s.db.WithTx(ctx, func(txCtx context.Context) error {
		// user_id 唯一索引裁决「一个创作者一个发行」
		if err := s.offerings.Save(txCtx, offering); err != nil {
			return err
		}
		if err := s.record(txCtx, offering.OfferingID, "created", principal.UserID, "", now); err != nil {
			return err
		}
		return s.events.PublishOfferingCreated(txCtx, domain.OfferingCreatedEvent{
			OfferingID: offering.OfferingID,
			UserID:     principal.UserID,
			Title:      offering.Title,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "offering created", "offering_id", offering.OfferingID, "user_id", principal.UserID)
	return toOfferingDTO(offering), nil
}

// getOwned 取出发行并校验所有权
func (s *OfferingService) getOwned(ctx context.Context, principal middleware.Principal, offeringID string) (*domain.Offering, error) {
	offering, err := s.offerings.GetByOfferingID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if !principal.Owns(offering.UserID) {
		return nil, errs.Forbidden("offering belongs to another creator")
	}
	return offering, nil
}

// getOwnedLocked 悲观锁变体，事务内的读改写路径使用
func (s *OfferingService) getOwnedLocked(ctx context.Context, principal middleware.Principal, offeringID string) (*domain.Offering, error) {
	offering, err := s.offerings.GetByOfferingIDWithLock(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if !principal.Owns(offering.UserID) {
		return nil, errs.Forbidden("offering belongs to another creator")
	}
	return offering, nil
}

// Update 草稿阶段整体替换条款
func (s *OfferingService) Update(ctx context.Context, principal middleware.Principal, offeringID string, cmd OfferingCommand) (*OfferingDTO, error) {
	now := time.Now()
	var dto *OfferingDTO
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		offering, err := s.getOwnedLocked(txCtx, principal, offeringID)
		if err != nil {
			return err
		}
		if err := offering.ApplyTerms(cmd.Title, cmd.Description, toTerms(cmd)); err != nil {
			return err
		}
		applyAuxiliary(offering, cmd)
		if err := s.offerings.Update(txCtx, offering); err != nil {
			return err
		}
		if err := s.record(txCtx, offering.OfferingID, "updated", principal.UserID, "", now); err != nil {
			return err
		}
		dto = toOfferingDTO(offering)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// transition 在一个事务内执行状态迁移、审计与事件发布
func (s *OfferingService) transition(
	ctx context.Context,
	principal middleware.Principal,
	offeringID, action, reason string,
	requireOwner bool,
	mutate func(o *domain.Offering) error,
) (*OfferingDTO, error) {
	now := time.Now()
	var dto *OfferingDTO
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		offering, err := s.offerings.GetByOfferingIDWithLock(txCtx, offeringID)
		if err != nil {
			return err
		}
		if requireOwner && !principal.Owns(offering.UserID) {
			return errs.Forbidden("offering belongs to another creator")
		}
		oldStatus := offering.Status
		if err := mutate(offering); err != nil {
			return err
		}
		if err := s.offerings.Update(txCtx, offering); err != nil {
			return err
		}
		if err := s.record(txCtx, offering.OfferingID, action, principal.UserID, reason, now); err != nil {
			return err
		}
		if err := s.events.PublishOfferingStatusChanged(txCtx, domain.OfferingStatusChangedEvent{
			OfferingID: offering.OfferingID,
			UserID:     offering.UserID,
			OldStatus:  string(oldStatus),
			NewStatus:  string(offering.Status),
			ChangedBy:  principal.UserID,
			Reason:     reason,
			ChangedAt:  now,
		}); err != nil {
			return err
		}
		dto = toOfferingDTO(offering)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// SubmitForReview 提交审核
func (s *OfferingService) SubmitForReview(ctx context.Context, principal middleware.Principal, offeringID string) (*OfferingDTO, error) {
	now := time.Now()
	return s.transition(ctx, principal, offeringID, "submitted_for_review", "", true, func(o *domain.Offering) error {
		return o.SubmitForReview(now)
	})
}

// Review 管理员审核发行
func (s *OfferingService) Review(ctx context.Context, principal middleware.Principal, cmd ReviewCommand) (*OfferingDTO, error) {
	if !principal.IsAdmin() {
		return nil, errs.Forbidden("offering review requires admin capability")
	}
	now := time.Now()
	return s.transition(ctx, principal, cmd.OfferingID, string(cmd.Decision), cmd.Reason, false, func(o *domain.Offering) error {
		switch cmd.Decision {
		case DecisionUnderReview:
			return o.StartReview(principal.UserID, now)
		case DecisionApproved:
			return o.Approve(principal.UserID, now)
		case DecisionRejected:
			if len(cmd.Reason) < 10 {
				return errs.Validation("rejection reason must be at least 10 characters")
			}
			return o.Reject(principal.UserID, cmd.Reason, now)
		default:
			return errs.Validationf("unknown review decision %q", cmd.Decision)
		}
	})
}

// Launch 创作者上线已批准的发行
func (s *OfferingService) Launch(ctx context.Context, principal middleware.Principal, offeringID string) (*OfferingDTO, error) {
	now := time.Now()
	var dto *OfferingDTO
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		offering, err := s.getOwnedLocked(txCtx, principal, offeringID)
		if err != nil {
			return err
		}
		oldStatus := offering.Status
		if err := offering.Launch(now); err != nil {
			return err
		}
		if err := s.offerings.Update(txCtx, offering); err != nil {
			return err
		}
		if err := s.record(txCtx, offering.OfferingID, "launched", principal.UserID, "", now); err != nil {
			return err
		}
		if err := s.events.PublishOfferingStatusChanged(txCtx, domain.OfferingStatusChangedEvent{
			OfferingID: offering.OfferingID,
			UserID:     offering.UserID,
			OldStatus:  string(oldStatus),
			NewStatus:  string(offering.Status),
			ChangedBy:  principal.UserID,
			ChangedAt:  now,
		}); err != nil {
			return err
		}
		if err := s.events.PublishOfferingLaunched(txCtx, domain.OfferingLaunchedEvent{
			OfferingID:    offering.OfferingID,
			UserID:        offering.UserID,
			TokensForSale: offering.TokensForSale.String(),
			PricePerToken: offering.PricePerToken.String(),
			LaunchedAt:    now,
		}); err != nil {
			return err
		}
		dto = toOfferingDTO(offering)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.OfferingsLaunchedTotal.Inc()
	s.metrics.OfferingsLive.Inc()
	logger.Info(ctx, "offering launched", "offering_id", offeringID, "user_id", principal.UserID)
	return dto, nil
}

// Cancel 创作者取消非终态的发行
func (s *OfferingService) Cancel(ctx context.Context, principal middleware.Principal, offeringID string) (*OfferingDTO, error) {
	now := time.Now()
	wasLive := false
	dto, err := s.transition(ctx, principal, offeringID, "cancelled", "", true, func(o *domain.Offering) error {
		wasLive = o.IsLive()
		return o.Cancel(now)
	})
	if err != nil {
		return nil, err
	}
	if wasLive {
		s.metrics.OfferingsLive.Dec()
	}
	return dto, nil
}

// Close 管理员终态化 live 发行
func (s *OfferingService) Close(ctx context.Context, principal middleware.Principal, cmd CloseCommand) (*OfferingDTO, error) {
	if !principal.IsAdmin() {
		return nil, errs.Forbidden("closing an offering requires admin capability")
	}
	now := time.Now()
	dto, err := s.transition(ctx, principal, cmd.OfferingID, "closed", cmd.Outcome, false, func(o *domain.Offering) error {
		return o.Close(domain.OfferingStatus(cmd.Outcome), now)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.OfferingsLive.Dec()
	return dto, nil
}

// Delete 删除草稿发行
func (s *OfferingService) Delete(ctx context.Context, principal middleware.Principal, offeringID string) error {
	now := time.Now()
	return s.db.WithTx(ctx, func(txCtx context.Context) error {
		offering, err := s.getOwnedLocked(txCtx, principal, offeringID)
		if err != nil {
			return err
		}
		if !offering.Deletable() {
			return errs.InvalidStatef("offering in status %q cannot be deleted", offering.Status)
		}
		if err := s.offerings.Delete(txCtx, offeringID); err != nil {
			return err
		}
		return s.record(txCtx, offeringID, "deleted", principal.UserID, "", now)
	})
}

// CreateUpdate 发行所有者发布公告
func (s *OfferingService) CreateUpdate(ctx context.Context, principal middleware.Principal, cmd UpdatePostCommand) (*UpdateDTO, error) {
	offering, err := s.getOwned(ctx, principal, cmd.OfferingID)
	if err != nil {
		return nil, err
	}
	update, err := domain.NewUpdate(s.newID("UPD"), offering.OfferingID, principal.UserID, cmd.Title, cmd.Content, domain.UpdateType(cmd.Type))
	if err != nil {
		return nil, err
	}
	if err := s.updates.Save(ctx, update); err != nil {
		return nil, err
	}
	dto := toUpdateDTOs([]*domain.OfferingUpdate{update})[0]
	return &dto, nil
}

// Get 公开查询发行
func (s *OfferingService) Get(ctx context.Context, offeringID string) (*OfferingDTO, error) {
	offering, err := s.offerings.GetByOfferingID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	return toOfferingDTO(offering), nil
}

// GetMine 查询本人发行
func (s *OfferingService) GetMine(ctx context.Context, principal middleware.Principal) (*OfferingDTO, error) {
	offering, err := s.offerings.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return toOfferingDTO(offering), nil
}

// List 公开分页列表，支持状态过滤与标题/描述搜索
func (s *OfferingService) List(ctx context.Context, query ListQuery) ([]OfferingDTO, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}
	offerings, total, err := s.offerings.List(ctx, domain.ListFilter{
		Status: domain.OfferingStatus(query.Status),
		Search: query.Search,
		Offset: (query.Page - 1) * query.Limit,
		Limit:  query.Limit,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]OfferingDTO, 0, len(offerings))
	for _, o := range offerings {
		out = append(out, *toOfferingDTO(o))
	}
	return out, total, nil
}

// ListUpdates 公开查询发行公告
func (s *OfferingService) ListUpdates(ctx context.Context, offeringID string) ([]UpdateDTO, error) {
	if _, err := s.offerings.GetByOfferingID(ctx, offeringID); err != nil {
		return nil, err
	}
	updates, err := s.updates.ListByOfferingID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	return toUpdateDTOs(updates), nil
}
