package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/wyfcoding/marketledger/internal/auth/domain"
)

// userRepository 非持久化模式的用户存储，启动时播种。
type userRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User // key: login 小写
}

// NewUserRepository 创建内存用户存储。
func NewUserRepository() domain.UserRepository {
	return &userRepository{users: make(map[string]*domain.User)}
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[strings.ToLower(login)]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *user
	r.users[strings.ToLower(user.Login)] = &cp
	return nil
}
