package service

import (
	"context"
	"os"
	"testing"
	"time"

	"docvault-rag-be/internal/apperror"
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, env *testEnv, email, password string, role entity.Role, dept string, status entity.UserStatus) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     "Test User",
		Role:         role,
		Department:   dept,
		Status:       status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, env.factory.Users.Create(context.Background(), user))
	return user
}

func TestLoginIssuesTokenWithIdentityClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	env := newTestEnv()
	svc := NewAuthService(env.factory, env.audit)

	seedUser(t, env, "mgr@docvault.local", "s3cret123", entity.RoleManager, "engineering", entity.UserStatusActive)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "mgr@docvault.local", Password: "s3cret123"})
	require.NoError(t, err)
	assert.Equal(t, "Manager", res.User.Role)
	assert.Equal(t, "engineering", res.User.Department)

	token, err := jwt.Parse(res.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, res.User.Id.String(), claims["sub"])
	assert.Equal(t, "Manager", claims["role"])
	assert.Equal(t, "engineering", claims["department"])
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.factory, env.audit)

	seedUser(t, env, "mgr@docvault.local", "s3cret123", entity.RoleManager, "engineering", entity.UserStatusActive)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "mgr@docvault.local", Password: "wrong"})
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeAuthenticationFailed, appErr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.factory, env.audit)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@docvault.local", Password: "whatever"})
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeAuthenticationFailed, appErr.Code)
}

func TestLoginBlockedUser(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.factory, env.audit)

	seedUser(t, env, "blocked@docvault.local", "s3cret123", entity.RoleEmployee, "engineering", entity.UserStatusBlocked)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "blocked@docvault.local", Password: "s3cret123"})
	appErr := apperror.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeAuthenticationFailed, appErr.Code)
}
