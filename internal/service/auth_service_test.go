package service_test

import (
	"context"
	"testing"

	"sareepos/internal/config"
	"sareepos/internal/dto"
	"sareepos/internal/model"
	"sareepos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (service.AuthService, *stubProfileRepo) {
	t.Helper()
	repo := newStubProfileRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func seedFounder(t *testing.T, svc service.AuthService) dto.ProfileResponse {
	t.Helper()
	resp, err := svc.CreateProfile(context.Background(), dto.CreateProfileRequest{
		Email:    "founder@example.com",
		Name:     "Meera",
		Password: "correct-horse",
		Role:     model.RoleFounder,
	})
	require.NoError(t, err)
	return *resp
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedFounder(t, svc)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "founder@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, model.RoleFounder, resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedFounder(t, svc)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "founder@example.com",
		Password: "wrong",
	})
	assert.Error(t, err)
}

func TestLoginDeactivatedProfile(t *testing.T) {
	svc, _ := newAuthFixture(t)
	created := seedFounder(t, svc)

	require.NoError(t, svc.DeactivateProfile(context.Background(), mustUUID(t, created.ID)))

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "founder@example.com",
		Password: "correct-horse",
	})
	assert.Error(t, err)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedFounder(t, svc)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "founder@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}
