package service

import (
	"context"
	"testing"
	"time"

	"studio_cms/internal/app/limiter"
	"studio_cms/internal/common"
	"studio_cms/internal/common/security"
	"studio_cms/internal/domain/model"
	"studio_cms/internal/platform/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*model.User // keyed by email
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, ok := f.users[user.Email]; ok {
		return common.ErrConflict
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func setupAuthTest(t *testing.T) *fakeUserRepo {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:     []byte("auth-service-test-secret"),
		SessionTTL: 7 * 24 * time.Hour,
	}
	security.InitJWT()

	hash, err := security.HashPassword("hunter2secret")
	require.NoError(t, err)
	return &fakeUserRepo{users: map[string]*model.User{
		"admin@example.com": {
			ID:           "user-1",
			Email:        "admin@example.com",
			PasswordHash: hash,
			Role:         model.RoleAdmin,
		},
	}}
}

func TestLoginSuccess(t *testing.T) {
	repo := setupAuthTest(t)
	svc := NewAuthService(repo, nil)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Admin@Example.COM",
		Password: "hunter2secret",
	}, "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", result.User.ID)
	assert.Equal(t, "admin@example.com", result.User.Email)
	assert.Equal(t, model.RoleAdmin, result.User.Role)
	assert.Empty(t, result.User.PasswordHash)

	claims := security.VerifyToken(result.Token)
	require.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestLoginUnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	repo := setupAuthTest(t)
	svc := NewAuthService(repo, nil)

	_, errUnknown := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@x.com",
		Password: "whatever123",
	}, "10.0.0.1")
	_, errWrongPass := svc.Login(context.Background(), LoginRequest{
		Email:    "admin@example.com",
		Password: "wrongpassword",
	}, "10.0.0.1")

	require.ErrorIs(t, errUnknown, common.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPass, common.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginValidation(t *testing.T) {
	repo := setupAuthTest(t)
	svc := NewAuthService(repo, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: "hunter2secret"}, "10.0.0.1")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "short"}, "10.0.0.1")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestLoginRateLimited(t *testing.T) {
	repo := setupAuthTest(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	svc := NewAuthService(repo, limiter.NewLoginLimiter(rdb, 2, time.Minute))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "wrongpassword"}, "10.0.0.9")
		require.ErrorIs(t, err, common.ErrInvalidCredentials)
	}

	// Budget exhausted: even the correct password is refused now.
	_, err := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "hunter2secret"}, "10.0.0.9")
	assert.ErrorIs(t, err, common.ErrTooManyAttempts)

	// A different client IP is unaffected.
	_, err = svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "hunter2secret"}, "10.0.0.10")
	assert.NoError(t, err)
}

func TestStatus(t *testing.T) {
	repo := setupAuthTest(t)
	svc := NewAuthService(repo, nil)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "admin@example.com",
		Password: "hunter2secret",
	}, "10.0.0.1")
	require.NoError(t, err)

	claims, err := svc.Status(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = svc.Status(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = svc.Status(context.Background(), "garbage")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}
