package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentabook/dentist-booking-api/internal/models"
	"github.com/dentabook/dentist-booking-api/internal/utils"
)

func newAuthFixture() (*AuthService, *fakeUserStore, *utils.TokenManager) {
	users := newFakeUserStore()
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(users, tokens, testLogger()), users, tokens
}

func registerReq() models.RegisterRequest {
	return models.RegisterRequest{
		Name:      "Alice",
		Telephone: "0123456789",
		Email:     "alice@example.com",
		Password:  "s3cret-pass",
	}
}

func TestRegister(t *testing.T) {
	svc, users, tokens := newAuthFixture()

	user, token, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, user.Role, "role defaults to user")
	assert.NotEqual(t, "s3cret-pass", user.Password, "password must be stored hashed")
	assert.True(t, utils.CheckPasswordHash("s3cret-pass", user.Password))
	assert.Len(t, users.users, 1)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterAdminRole(t *testing.T) {
	svc, _, tokens := newAuthFixture()

	req := registerReq()
	req.Role = models.RoleAdmin
	user, token, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registered, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email fails the same way, so callers cannot probe for accounts.
	_, _, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc, _, _ := newAuthFixture()
	user, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	got, err := svc.Me(context.Background(), models.Identity{ID: user.ID, Role: user.Role})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = svc.Me(context.Background(), userIdentity())
	assert.ErrorIs(t, err, ErrNotFound)
}
