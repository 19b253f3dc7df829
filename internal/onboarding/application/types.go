package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/creatorlaunch/internal/onboarding/domain"
)

// SubmitCommand 分步提交命令
type SubmitCommand struct {
	ContentOwnership bool `json:"content_ownership"`
}

// ProfilePayload 档案提交内容
type ProfilePayload struct {
	Handle            string          `json:"handle"`
	FullName          string          `json:"full_name"`
	Bio               string          `json:"bio"`
	Category          string          `json:"category"`
	CustomCategory    string          `json:"custom_category"`
	TokenSymbol       string          `json:"token_symbol"`
	TokenName         string          `json:"token_name"`
	TokenPitch        string          `json:"token_pitch"`
	FundingGoal       decimal.Decimal `json:"funding_goal"`
	ICOSupply         decimal.Decimal `json:"ico_supply"`
	WalletAddress     string          `json:"wallet_address"`
	Phone             string          `json:"phone"`
	ProfilePictureURL string          `json:"profile_picture_url"`
}

// DocumentPayload 文档提交内容
type DocumentPayload struct {
	Type    string `json:"type"`
	FileURL string `json:"file_url"`
	Notes   string `json:"notes"`
}

// SocialLinkPayload 社交链接提交内容
type SocialLinkPayload struct {
	Platform      string `json:"platform"`
	Handle        string `json:"handle"`
	URL           string `json:"url"`
	FollowerCount int64  `json:"follower_count"`
}

// SubmitCompleteCommand 一次性完整提交命令
type SubmitCompleteCommand struct {
	ContentOwnership bool                `json:"content_ownership"`
	Profile          ProfilePayload      `json:"profile"`
	Documents        []DocumentPayload   `json:"documents"`
	SocialLinks      []SocialLinkPayload `json:"social_links"`
}

// UpdateCommand 审核中更新命令，整体替换提交内容
type UpdateCommand struct {
	Profile     ProfilePayload      `json:"profile"`
	Documents   []DocumentPayload   `json:"documents"`
	SocialLinks []SocialLinkPayload `json:"social_links"`
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
	ApplicationID string         `json:"application_id"`
	Decision      ReviewDecision `json:"decision"`
	Reason        string         `json:"reason"`
}

// ApplicationDTO 申请视图
type ApplicationDTO struct {
	ApplicationID   string     `json:"application_id"`
	UserID          string     `json:"user_id"`
	State           string     `json:"state"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ReviewedBy      string     `json:"reviewed_by,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

// ProfileDTO 档案视图
type ProfileDTO struct {
	ProfileID         string          `json:"profile_id"`
	UserID            string          `json:"user_id"`
	Handle            string          `json:"handle"`
	FullName          string          `json:"full_name"`
	Bio               string          `json:"bio,omitempty"`
	Category          string          `json:"category"`
	CustomCategory    string          `json:"custom_category,omitempty"`
	TokenSymbol       string          `json:"token_symbol"`
	TokenName         string          `json:"token_name"`
	TokenPitch        string          `json:"token_pitch,omitempty"`
	FundingGoal       decimal.Decimal `json:"funding_goal"`
	ICOSupply         decimal.Decimal `json:"ico_supply"`
	WalletAddress     string          `json:"wallet_address,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	ProfilePictureURL string          `json:"profile_picture_url,omitempty"`
	Status            string          `json:"status"`
}

// DocumentDTO 文档视图
type DocumentDTO struct {
	DocumentID string `json:"document_id"`
	Type       string `json:"type"`
	FileURL    string `json:"file_url"`
	Notes      string `json:"notes,omitempty"`
	Status     string `json:"status"`
}

// SocialLinkDTO 社交链接视图
type SocialLinkDTO struct {
	LinkID        string `json:"link_id"`
	Platform      string `json:"platform"`
	Handle        string `json:"handle"`
	URL           string `json:"url"`
	FollowerCount int64  `json:"follower_count"`
	Verified      bool   `json:"verified"`
}

// ApplicationDetailDTO 申请详情（含档案与附件）
type ApplicationDetailDTO struct {
	Application ApplicationDTO  `json:"application"`
	Profile     *ProfileDTO     `json:"profile,omitempty"`
	Documents   []DocumentDTO   `json:"documents"`
	SocialLinks []SocialLinkDTO `json:"social_links"`
}

// ProgressDTO 入驻进度视图
type ProgressDTO struct {
	State            string `json:"state"`
	ProfileComplete  bool   `json:"profile_complete"`
	DocumentCount    int    `json:"document_count"`
	SocialLinkCount  int    `json:"social_link_count"`
	ReadyForReview   bool   `json:"ready_for_review"`
	CompletedPercent int    `json:"completed_percent"`
}

func toApplicationDTO(app *domain.CreatorApplication) ApplicationDTO {
	return ApplicationDTO{
		ApplicationID:   app.ApplicationID,
		UserID:          app.UserID,
		State:           string(app.State),
		SubmittedAt:     app.SubmittedAt,
		ReviewedAt:      app.ReviewedAt,
		ApprovedAt:      app.ApprovedAt,
		ReviewedBy:      app.ReviewedBy,
		RejectionReason: app.RejectionReason,
	}
}

func toProfileDTO(p *domain.CreatorProfile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		ProfileID:         p.ProfileID,
		UserID:            p.UserID,
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
		Status:            string(p.Status),
	}
}

func toDocumentDTOs(docs []*domain.Document) []DocumentDTO {
	out := make([]DocumentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocumentDTO{
			DocumentID: d.DocumentID,
			Type:       string(d.Type),
			FileURL:    d.FileURL,
			Notes:      d.Notes,
			Status:     d.Status,
		})
	}
	return out
}

func toSocialLinkDTOs(links []*domain.SocialLink) []SocialLinkDTO {
	out := make([]SocialLinkDTO, 0, len(links))
	for _, l := range links {
		out = append(out, SocialLinkDTO{
			LinkID:        l.LinkID,
			Platform:      string(l.Platform),
			Handle:        l.Handle,
			URL:           l.URL,
			FollowerCount: l.FollowerCount,
			Verified:      l.Verified,
		})
	}
	return out
}
