package application

import (
	"context"

	"github.com/wyfcoding/marketledger/internal/auth/domain"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 凭证校验服务。哈希比对发生在存储边界之内，
// 上层只见到"匹配/不匹配"。
type AuthService struct {
	repo domain.UserRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(repo domain.UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Authenticate 校验登录凭证。凭证错误（用户不存在或口令不符）返回
// (nil, nil)，仅基础设施失败返回非 nil error。
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*domain.Identity, error) {
	user, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return &domain.Identity{Login: user.Login, Role: user.Role}, nil
}

// CreateUser 以明文口令创建用户，入库前完成哈希。
func (s *AuthService) CreateUser(ctx context.Context, login, password string, role domain.UserRole) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, &domain.User{
		Login:        login,
		PasswordHash: string(hash),
		Role:         role,
	})
}
