package domain

import (
	"strings"

	"gorm.io/gorm"

	"github.com/wyfcoding/creatorlaunch/pkg/errs"
)

// UpdateType 公告类型
type UpdateType string

const (
	UpdateGeneral      UpdateType = "general"
	UpdateMilestone    UpdateType = "milestone"
	UpdateFinancial    UpdateType = "financial"
	UpdateTechnical    UpdateType = "technical"
	UpdateAnnouncement UpdateType = "announcement"
)

// ValidUpdateType 校验公告类型
func ValidUpdateType(t UpdateType) bool {
	switch t {
	case UpdateGeneral, UpdateMilestone, UpdateFinancial, UpdateTechnical, UpdateAnnouncement:
		return true
	}
	return false
}

// OfferingUpdate 发行公告，仅追加
type OfferingUpdate struct {
	gorm.Model
	UpdateID   string     `gorm:"column:update_id;type:varchar(32);uniqueIndex;not null"`
	OfferingID string     `gorm:"column:offering_id;type:varchar(32);index;not null"`
	AuthorID   string     `gorm:"column:author_id;type:varchar(32);not null"`
	Title      string     `gorm:"column:title;type:varchar(200);not null"`
	Content    string     `gorm:"column:content;type:text;not null"`
	Type       UpdateType `gorm:"column:type;type:varchar(20);not null;default:'general'"`
}

// TableName 指定表名
func (OfferingUpdate) TableName() string { return "offering_updates" }

// NewUpdate 创建公告
func NewUpdate(id, offeringID, authorID, title, content string, updateType UpdateType) (*OfferingUpdate, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errs.Validation("update title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errs.Validation("update content is required")
	}
	if updateType == "" {
		updateType = UpdateGeneral
	}
	if !ValidUpdateType(updateType) {
		return nil, errs.Validationf("unknown update type %q", updateType)
	}
	return &OfferingUpdate{
		UpdateID:   id,
		OfferingID: offeringID,
		AuthorID:   authorID,
		Title:      title,
		Content:    content,
		Type:       updateType,
	}, nil
}
