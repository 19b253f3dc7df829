// Package application 编排投资台账的用例：认购、清算与代币领取
package application

import (
	"context"
	"fmt"
	"time"

	auditdomain "github.com/wyfcoding/creatorlaunch/internal/audit/domain"
	"github.com/wyfcoding/creatorlaunch/internal/investment/domain"
	offeringdomain "github.com/wyfcoding/creatorlaunch/internal/offering/domain"
	"github.com/wyfcoding/creatorlaunch/pkg/db"
	"github.com/wyfcoding/creatorlaunch/pkg/errs"
	"github.com/wyfcoding/creatorlaunch/pkg/logger"
	"github.com/wyfcoding/creatorlaunch/pkg/metrics"
	"github.com/wyfcoding/creatorlaunch/pkg/middleware"
	"github.com/wyfcoding/creatorlaunch/pkg/utils"
)

// InvestmentService 应用层服务，协调投资台账与发行的事务边界
type InvestmentService struct {
	investments domain.InvestmentRepository
	offerings   offeringdomain.OfferingRepository
	audit       auditdomain.Recorder
	events      domain.InvestmentEventPublisher
	metrics     *metrics.Metrics
	idgen       *utils.SnowflakeID
	db          db.TxRunner
}

func NewInvestmentService(
	investments domain.InvestmentRepository,
	offerings offeringdomain.OfferingRepository,
	audit auditdomain.Recorder,
	events domain.InvestmentEventPublisher,
	m *metrics.Metrics,
	idgen *utils.SnowflakeID,
	database db.TxRunner,
) *InvestmentService {
	return &InvestmentService{
		investments: investments,
		offerings:   offerings,
		audit:       audit,
		events:      events,
		metrics:     m,
		idgen:       idgen,
		db:          database,
	}
}

func (s *InvestmentService) newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, s.idgen.Generate())
}

func (s *InvestmentService) record(ctx context.Context, investmentID, action, actorID, reason string, now time.Time) error {
	return s.audit.Record(ctx, &auditdomain.VerificationLog{
		LogID:       s.newID("LOG"),
		SubjectID:   investmentID,
		SubjectType: "investment",
		Action:      action,
		ActorID:     actorID,
		Reason:      reason,
		OccurredAt:  now,
	})
}

// Invest 认购 live 发行，分配与归属条款在本次调用中冻结
func (s *InvestmentService) Invest(ctx context.Context, principal middleware.Principal, cmd InvestCommand) (*InvestmentDTO, error) {
	now := time.Now()
	var dto *InvestmentDTO
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		offering, err := s.offerings.GetByOfferingID(txCtx, cmd.OfferingID)
		if err != nil {
			return err
		}
		investment, err := domain.NewInvestment(s.newID("INV"), offering, principal.UserID, cmd.Amount, cmd.Currency, now)
		if err != nil {
			return err
		}
		if err := s.investments.Save(txCtx, investment); err != nil {
			return err
		}
		if err := s.record(txCtx, investment.InvestmentID, "placed", principal.UserID, "", now); err != nil {
			return err
		}
		if err := s.events.PublishInvestmentPlaced(txCtx, domain.InvestmentPlacedEvent{
			InvestmentID:    investment.InvestmentID,
			OfferingID:      investment.OfferingID,
			InvestorID:      investment.InvestorID,
			Amount:          investment.Amount.String(),
			Currency:        investment.Currency,
			TokensAllocated: investment.TokensAllocated.String(),
			InvestedAt:      now,
		}); err != nil {
			return err
		}
		dto = toInvestmentDTO(investment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.InvestmentsTotal.Inc()
	logger.Info(ctx, "investment placed",
		"investment_id", dto.InvestmentID, "offering_id", cmd.OfferingID, "investor_id", principal.UserID)
	return dto, nil
}

// Settle 管理员清算 pending 投资
func (s *InvestmentService) Settle(ctx context.Context, principal middleware.Principal, cmd SettleCommand) (*InvestmentDTO, error) {
	if !principal.IsAdmin() {
		return nil, errs.Forbidden("settling an investment requires admin capability")
	}
	now := time.Now()
	var dto *InvestmentDTO
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		investment, err := s.investments.GetByInvestmentIDWithLock(txCtx, cmd.InvestmentID)
		if err != nil {
			return err
		}
		switch cmd.Outcome {
		case OutcomeConfirmed:
			if err := investment.Confirm(now); err != nil {
				return err
			}
		case OutcomeFailed:
			if err := investment.Fail(now); err != nil {
				return err
			}
		default:
			return errs.Validationf("unknown settle outcome %q", cmd.Outcome)
		}
		if err := s.investments.Update(txCtx, investment); err != nil {
			return err
		}
		if err := s.record(txCtx, investment.InvestmentID, "settled_"+string(cmd.Outcome), principal.UserID, "", now); err != nil {
			return err
		}
		if err := s.events.PublishInvestmentSettled(txCtx, domain.InvestmentSettledEvent{
			InvestmentID: investment.InvestmentID,
			OfferingID:   investment.OfferingID,
			InvestorID:   investment.InvestorID,
			Outcome:      string(cmd.Outcome),
			SettledBy:    principal.UserID,
			SettledAt:    now,
		}); err != nil {
			return err
		}
		dto = toInvestmentDTO(investment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "investment settled",
		"investment_id", cmd.InvestmentID, "outcome", cmd.Outcome, "settled_by", principal.UserID)
	return dto, nil
}

// Claim 领取已解锁的代币
func (s *InvestmentService) Claim(ctx context.Context, principal middleware.Principal, investmentID string) (*ClaimResultDTO, error) {
	now := time.Now()
	var result *ClaimResultDTO
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		investment, err := s.investments.GetByInvestmentIDWithLock(txCtx, investmentID)
		if err != nil {
			return err
		}
		// 非本人投资按不存在处理
		if !principal.Owns(investment.InvestorID) {
			return errs.NotFound("investment not found")
		}
		claimed, err := investment.Claim(now)
		if err != nil {
			return err
		}
		if err := s.investments.Update(txCtx, investment); err != nil {
			return err
		}
		if err := s.record(txCtx, investment.InvestmentID, "claimed", principal.UserID, claimed.String(), now); err != nil {
			return err
		}
		if err := s.events.PublishTokensClaimed(txCtx, domain.TokensClaimedEvent{
			InvestmentID:  investment.InvestmentID,
			OfferingID:    investment.OfferingID,
			InvestorID:    investment.InvestorID,
			TokensClaimed: claimed.String(),
			TotalClaimed:  investment.TokensClaimed.String(),
			NextClaimDate: investment.NextClaimDate,
			ClaimedAt:     now,
		}); err != nil {
			return err
		}
		result = &ClaimResultDTO{
			InvestmentID:  investment.InvestmentID,
			TokensClaimed: claimed,
			TotalClaimed:  investment.TokensClaimed,
			Remaining:     investment.TokensAllocated.Sub(investment.TokensClaimed),
			NextClaimDate: investment.NextClaimDate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.TokensClaimedTotal.Inc()
	logger.Info(ctx, "tokens claimed",
		"investment_id", investmentID, "tokens", result.TokensClaimed.String(), "investor_id", principal.UserID)
	return result, nil
}

// MyInvestments 查询本人投资
func (s *InvestmentService) MyInvestments(ctx context.Context, principal middleware.Principal) ([]InvestmentDTO, error) {
	investments, err := s.investments.ListByInvestorID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return toInvestmentDTOs(investments), nil
}

// OfferingInvestments 发行所有者或管理员查询某发行下的投资
func (s *InvestmentService) OfferingInvestments(ctx context.Context, principal middleware.Principal, offeringID string) ([]InvestmentDTO, error) {
	offering, err := s.offerings.GetByOfferingID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() && !principal.Owns(offering.UserID) {
		return nil, errs.Forbidden("only the offering owner can list its investments")
	}
	investments, err := s.investments.ListByOfferingID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	return toInvestmentDTOs(investments), nil
}

// GetInvestment 查询单笔投资，非本人按不存在处理
func (s *InvestmentService) GetInvestment(ctx context.Context, principal middleware.Principal, investmentID string) (*InvestmentDTO, error) {
	investment, err := s.investments.GetByInvestmentID(ctx, investmentID)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() && !principal.Owns(investment.InvestorID) {
		return nil, errs.NotFound("investment not found")
	}
	return toInvestmentDTO(investment), nil
}
