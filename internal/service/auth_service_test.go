package service

import (
	"testing"
	"time"

	"fun2learn_backend/internal/config"
	"fun2learn_backend/internal/model"
	"fun2learn_backend/internal/repository"
	"fun2learn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-not-for-production"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
		Role:     model.Student,
	}
	require.NoError(t, svc.Register(user))
	// 入库的是散列，不是明文
	assert.NotEqual(t, "correct-horse", user.Password)

	token, loggedIn, err := svc.Login("ada@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := util.ParseJWT(token, "test-secret-not-for-production")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	first := &model.User{FullName: "A", Email: "dup@example.com", Password: "password1", Role: model.Student}
	require.NoError(t, svc.Register(first))

	second := &model.User{FullName: "B", Email: "dup@example.com", Password: "password2", Role: model.Tutor}
	err := svc.Register(second)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{FullName: "A", Email: "a@example.com", Password: "password1", Role: model.Student}
	require.NoError(t, svc.Register(user))

	_, _, err := svc.Login("a@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "password1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
