// Package domain 维护平台账户的角色记录，创作者批准时由入驻流程提升角色
package domain

import (
	"context"

	"gorm.io/gorm"
)

// Role 账户角色
type Role string

const (
	RoleUser    Role = "user"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

// UserAccount 平台账户记录
type UserAccount struct {
	gorm.Model
	UserID string `gorm:"column:user_id;type:varchar(32);uniqueIndex;not null"`
	Role   Role   `gorm:"column:role;type:varchar(20);not null;default:'user'"`
}

// TableName 指定表名
func (UserAccount) TableName() string { return "user_accounts" }

// AccountRepository 账户仓储接口
type AccountRepository interface {
	GetByUserID(ctx context.Context, userID string) (*UserAccount, error)
	// UpsertRole 更新账户角色，账户不存在时创建
	UpsertRole(ctx context.Context, userID string, role Role) error
}
