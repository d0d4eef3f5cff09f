package route

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"preschool_backend/internals/configs"
	authHelper "preschool_backend/internals/features/users/auth/helper"
	authModel "preschool_backend/internals/features/users/auth/model"
	"preschool_backend/internals/features/users/auth/service"
	userModel "preschool_backend/internals/features/users/user/model"
	"preschool_backend/internals/testutil"
)

func setupAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"

	db := testutil.NewSQLiteDB(t, &userModel.UserModel{}, &authModel.TokenBlacklist{})
	app := fiber.New()
	AuthRoutes(app, db)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, active bool) *userModel.UserModel {
	t.Helper()
	hash, err := authHelper.HashPassword(password)
	require.NoError(t, err)
	u := &userModel.UserModel{UserName: "teacher_" + email[:3], Email: email, Password: &hash, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	if !active {
		require.NoError(t, db.Model(u).Update("is_active", false).Error)
	}
	return u
}

func TestLoginMeLogout(t *testing.T) {
	app, db := setupAuthApp(t)
	seedUser(t, db, "hoa@kids.vn", "secret123", true)

	status, env := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login",
		map[string]string{"identifier": "hoa@kids.vn", "password": "secret123"}, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	var login service.LoginResponse
	env.DecodeData(t, &login)
	require.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "teacher", login.User.Role)

	status, env = testutil.DoJSON(t, app, http.MethodGet, "/api/auth/me", nil, testutil.Bearer(login.AccessToken))
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var me service.LoginResponseUser
	env.DecodeData(t, &me)
	assert.Equal(t, "hoa@kids.vn", me.Email)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/logout", nil, testutil.Bearer(login.AccessToken))
	require.Equal(t, fiber.StatusOK, status)

	var n int64
	db.Model(&authModel.TokenBlacklist{}).Count(&n)
	assert.Equal(t, int64(1), n)

	status, env = testutil.DoJSON(t, app, http.MethodGet, "/api/auth/me", nil, testutil.Bearer(login.AccessToken))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", env.ErrorCode)
}

func TestLoginRejections(t *testing.T) {
	app, db := setupAuthApp(t)
	seedUser(t, db, "lan@kids.vn", "secret123", true)
	seedUser(t, db, "mai@kids.vn", "secret123", false)

	status, _ := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login",
		map[string]string{"identifier": "lan@kids.vn", "password": "wrong-pass1"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login",
		map[string]string{"identifier": "mai@kids.vn", "password": "secret123"}, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginGoogleLinksExistingAccount(t *testing.T) {
	app, db := setupAuthApp(t)
	u := seedUser(t, db, "tuan@kids.vn", "secret123", true)

	configs.GoogleClientID = "client-id"
	orig := service.VerifyGoogleIDToken
	t.Cleanup(func() { service.VerifyGoogleIDToken = orig; configs.GoogleClientID = "" })

	service.VerifyGoogleIDToken = func(idToken, clientID string) (*service.GoogleIdentity, error) {
		switch idToken {
		case "known":
			return &service.GoogleIdentity{Sub: "g-123", Email: "TUAN@kids.vn", Name: "Tuan"}, nil
		case "stranger":
			return &service.GoogleIdentity{Sub: "g-999", Email: "nobody@example.com"}, nil
		}
		return nil, errors.New("bad token")
	}

	status, env := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login-google", map[string]string{"id_token": "known"}, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	var reloaded userModel.UserModel
	require.NoError(t, db.First(&reloaded, "id = ?", u.ID).Error)
	require.NotNil(t, reloaded.GoogleID)
	assert.Equal(t, "g-123", *reloaded.GoogleID)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login-google", map[string]string{"id_token": "stranger"}, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login-google", map[string]string{"id_token": "garbage"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
