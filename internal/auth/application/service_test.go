package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/marketledger/internal/auth/application"
	"github.com/wyfcoding/marketledger/internal/auth/domain"
	"github.com/wyfcoding/marketledger/internal/auth/infrastructure/persistence/memory"
)

func TestAuthenticate_Roundtrip(t *testing.T) {
	svc := application.NewAuthService(memory.NewUserRepository())
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "admin", "secret", domain.RoleAdmin))

	identity, err := svc.Authenticate(ctx, "admin", "secret")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "admin", identity.Login)
	assert.Equal(t, domain.RoleAdmin, identity.Role)

	// 登录名不区分大小写。
	identity, err = svc.Authenticate(ctx, "ADMIN", "secret")
	require.NoError(t, err)
	assert.NotNil(t, identity)
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	svc := application.NewAuthService(memory.NewUserRepository())
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "seller", "secret", domain.RoleSeller))

	// 用户不存在与口令错误对外不可区分，均返回 (nil, nil)。
	identity, err := svc.Authenticate(ctx, "nobody", "secret")
	require.NoError(t, err)
	assert.Nil(t, identity)

	identity, err = svc.Authenticate(ctx, "seller", "wrong")
	require.NoError(t, err)
	assert.Nil(t, identity)
}
