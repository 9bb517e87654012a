package domain

import (
	"context"

	"gorm.io/gorm"
)

// UserRole 用户角色
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleSeller UserRole = "seller"
)

// User 可登录用户。数据库仅存储口令哈希。
type User struct {
	gorm.Model
	Login        string   `gorm:"column:login;type:varchar(100);uniqueIndex;not null" json:"login"`
	PasswordHash string   `gorm:"column:password_hash;type:varchar(128);not null" json:"-"`
	Role         UserRole `gorm:"column:role;type:varchar(32);not null" json:"role"`
}

func (User) TableName() string { return "users" }

// Identity 认证通过后暴露给上层的身份，不携带任何凭证材料。
type Identity struct {
	Login string   `json:"login"`
	Role  UserRole `json:"role"`
}

// UserRepository 凭证存储端口。登录名不区分大小写，未知用户返回 (nil, nil)。
type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (*User, error)
	Save(ctx context.Context, user *User) error
}
