package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

var (
	handlePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	symbolPattern = regexp.MustCompile(`^[a-zA-Z0-9]{2,10}$`)
)

// ProfileStatus 档案状态
type ProfileStatus string

const (
	ProfilePending   ProfileStatus = "pending"
	ProfileActive    ProfileStatus = "active"
	ProfileSuspended ProfileStatus = "suspended"
)

// CreatorProfile 创作者档案，申请批准后转为 active
type CreatorProfile struct {
	gorm.Model
	ProfileID string `gorm:"column:profile_id;type:varchar(32);uniqueIndex;not null"`
	UserID    string `gorm:"column:user_id;type:varchar(32);uniqueIndex;not null"`
	// Handle 平台内唯一，小写存储
	Handle   string `gorm:"column:handle;type:varchar(30);uniqueIndex;not null"`
	FullName string `gorm:"column:full_name;type:varchar(100);not null"`
	Bio      string `gorm:"column:bio;type:varchar(1000)"`
	Category string `gorm:"column:category;type:varchar(50);not null"`
	// CustomCategory category 为 other 时的自定义类目
	CustomCategory string `gorm:"column:custom_category;type:varchar(50)"`
	// TokenSymbol 平台内唯一，大写存储
	TokenSymbol       string          `gorm:"column:token_symbol;type:varchar(10);uniqueIndex;not null"`
	TokenName         string          `gorm:"column:token_name;type:varchar(100);not null"`
	TokenPitch        string          `gorm:"column:token_pitch;type:varchar(2000)"`
	FundingGoal       decimal.Decimal `gorm:"column:funding_goal;type:decimal(32,8);not null;default:0"`
	ICOSupply         decimal.Decimal `gorm:"column:ico_supply;type:decimal(32,8);not null;default:0"`
	WalletAddress     string          `gorm:"column:wallet_address;type:varchar(100)"`
	Phone             string          `gorm:"column:phone;type:varchar(30)"`
	ProfilePictureURL string          `gorm:"column:profile_picture_url;type:varchar(500)"`
	Status            ProfileStatus   `gorm:"column:status;type:varchar(20);index;not null;default:'pending'"`
}

// TableName 指定表名
func (CreatorProfile) TableName() string { return "creator_profiles" }

// NormalizeHandle 校验并归一化 handle（小写、3-30 位字母数字下划线）
func NormalizeHandle(handle string) (string, error) {
	handle = strings.TrimSpace(handle)
	if !handlePattern.MatchString(handle) {
		return "", errs.Validation("handle must be 3-30 characters of letters, digits or underscore")
	}
	return strings.ToLower(handle), nil
}

// NormalizeTokenSymbol 校验并归一化代币符号（大写、2-10 位字母数字）
func NormalizeTokenSymbol(symbol string) (string, error) {
	symbol = strings.TrimSpace(symbol)
	if !symbolPattern.MatchString(symbol) {
		return "", errs.Validation("token symbol must be 2-10 alphanumeric characters")
	}
	return strings.ToUpper(symbol), nil
}

// ProfileDraft 档案创建参数
type ProfileDraft struct {
	Handle            string
	FullName          string
	Bio               string
	Category          string
	CustomCategory    string
	TokenSymbol       string
	TokenName         string
	TokenPitch        string
	FundingGoal       decimal.Decimal
	ICOSupply         decimal.Decimal
	WalletAddress     string
	Phone             string
	ProfilePictureURL string
}

// NewProfile 创建 pending 状态的创作者档案
func NewProfile(id, userID string, draft ProfileDraft) (*CreatorProfile, error) {
	handle, err := NormalizeHandle(draft.Handle)
	if err != nil {
		return nil, err
	}
	symbol, err := NormalizeTokenSymbol(draft.TokenSymbol)
	if err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(draft.FullName)
	if fullName == "" {
		return nil, errs.Validation("full name is required")
	}
	if len(fullName) > 100 {
		return nil, errs.Validation("full name must be at most 100 characters")
	}
	if strings.TrimSpace(draft.Category) == "" {
		return nil, errs.Validation("category is required")
	}
	if strings.TrimSpace(draft.TokenName) == "" {
		return nil, errs.Validation("token name is required")
	}
	if draft.FundingGoal.IsNegative() || draft.ICOSupply.IsNegative() {
		return nil, errs.Validation("funding goal and ico supply must not be negative")
	}
	return &CreatorProfile{
		ProfileID:         id,
		UserID:            userID,
		Handle:            handle,
		FullName:          fullName,
		Bio:               draft.Bio,
		Category:          draft.Category,
		CustomCategory:    draft.CustomCategory,
		TokenSymbol:       symbol,
		TokenName:         strings.TrimSpace(draft.TokenName),
		TokenPitch:        draft.TokenPitch,
		FundingGoal:       draft.FundingGoal,
		ICOSupply:         draft.ICOSupply,
		WalletAddress:     draft.WalletAddress,
		Phone:             draft.Phone,
		ProfilePictureURL: draft.ProfilePictureURL,
		Status:            ProfilePending,
	}, nil
}

// Activate 批准时激活档案
func (p *CreatorProfile) Activate() { p.Status = ProfileActive }

// IsActive 仅 active 状态的档案可发起募资
func (p *CreatorProfile) IsActive() bool { return p.Status == ProfileActive }
