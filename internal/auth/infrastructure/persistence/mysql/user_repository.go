package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/marketledger/internal/auth/domain"
	"gorm.io/gorm"
)

type userRepository struct{ db *gorm.DB }

// NewUserRepository 创建 MySQL 用户存储。
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("LOWER(login) = LOWER(?)", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
