package service

import (
	"context"
	"testing"
	"time"

	"tasknotes-be/internal/dto"
	"tasknotes-be/internal/pkg/logger"
	"tasknotes-be/internal/pkg/tokenstore"
	"tasknotes-be/internal/repository/memory"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func newAuthHarness(t *testing.T) (IAuthService, *tokenstore.MemoryStore) {
	t.Helper()
	factory := memory.NewFactory()
	store := tokenstore.NewMemoryStore()
	return NewAuthService(factory, store, testSecret, logger.NewNop()), store
}

func registerReq() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FullName: "Alice Owner",
		Email:    "alice@example.com",
		Password: "supersecret",
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, _ := newAuthHarness(t)

	res, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.Equal(t, "Alice Owner", res.User.FullName)
	assert.Equal(t, "alice@example.com", res.User.Email)
	require.NotEmpty(t, res.AccessToken)

	token, err := jwt.Parse(res.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, res.User.Id.String(), claims["user_id"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	remaining := time.Until(exp.Time)
	assert.Greater(t, remaining, 9*time.Hour)
	assert.LessOrEqual(t, remaining, 10*time.Hour)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthHarness(t)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq())
	require.Error(t, err)
	assert.Equal(t, 400, appStatus(t, err))
	assert.Equal(t, "User already exists", err.Error())
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthHarness(t)
	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "alice@example.com", res.User.Email)
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newAuthHarness(t)
	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{name: "wrong password", req: dto.LoginRequest{Email: "alice@example.com", Password: "wrong-password"}},
		{name: "unknown email", req: dto.LoginRequest{Email: "nobody@example.com", Password: "supersecret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.req)
			require.Error(t, err)
			assert.Equal(t, 400, appStatus(t, err))
			assert.Equal(t, "Invalid Credentials", err.Error())
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, store := newAuthHarness(t)

	res, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	revoked, err := store.IsRevoked(context.Background(), res.AccessToken)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.Logout(context.Background(), res.AccessToken))

	revoked, err = store.IsRevoked(context.Background(), res.AccessToken)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogoutGarbageTokenIsSwallowed(t *testing.T) {
	svc, _ := newAuthHarness(t)
	assert.NoError(t, svc.Logout(context.Background(), "not-a-jwt"))
}
