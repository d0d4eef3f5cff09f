package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"preschool_backend/internals/configs"
	authModel "preschool_backend/internals/features/users/auth/model"
	userModel "preschool_backend/internals/features/users/user/model"
	helper "preschool_backend/internals/helpers"
	"preschool_backend/internals/testutil"
)

func signToken(t *testing.T, id uuid.UUID, role string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   id.String(),
		"role": role,
		"exp":  exp.Unix(),
	})
	s, err := tok.SignedString([]byte(configs.JWTSecret))
	require.NoError(t, err)
	return s
}

func setup(t *testing.T) (*fiber.App, *gorm.DB, *userModel.UserModel) {
	t.Helper()
	configs.JWTSecret = "mw-secret"
	db := testutil.NewSQLiteDB(t, &userModel.UserModel{}, &authModel.TokenBlacklist{})

	admin := &userModel.UserModel{UserName: "admin", Email: "admin@kids.vn", Role: "admin", IsActive: true}
	require.NoError(t, db.Create(admin).Error)

	app := fiber.New()
	whoami := func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "ok", fiber.Map{
			"user_id": c.Locals(helper.LocUserID),
			"role":    helper.GetUserRole(c),
		})
	}
	app.Get("/admin", AuthMiddleware(db), OnlyRoles("admins only", "admin"), whoami)
	app.Get("/teacher-only", AuthMiddleware(db), OnlyRoles("", "teacher"), whoami)
	app.Get("/kiosk", IdentityMiddleware(db), whoami)
	return app, db, admin
}

type who struct {
	UserID *string `json:"user_id"`
	Role   string  `json:"role"`
}

func TestAuthMiddleware(t *testing.T) {
	app, db, admin := setup(t)

	good := signToken(t, admin.ID, "admin", time.Now().Add(time.Hour))
	status, env := testutil.DoJSON(t, app, http.MethodGet, "/admin", nil, testutil.Bearer(good))
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var w who
	env.DecodeData(t, &w)
	require.NotNil(t, w.UserID)
	assert.Equal(t, admin.ID.String(), *w.UserID)

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/teacher-only", nil, testutil.Bearer(good))
	assert.Equal(t, fiber.StatusForbidden, status)

	expired := signToken(t, admin.ID, "admin", time.Now().Add(-time.Hour))
	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/admin", nil, testutil.Bearer(expired))
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/admin", nil, map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	unknown := signToken(t, uuid.New(), "admin", time.Now().Add(time.Hour))
	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/admin", nil, testutil.Bearer(unknown))
	assert.Equal(t, fiber.StatusUnauthorized, status)

	require.NoError(t, db.Create(&authModel.TokenBlacklist{Token: good, ExpiredAt: time.Now().Add(time.Hour)}).Error)
	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/admin", nil, testutil.Bearer(good))
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestIdentityMiddleware(t *testing.T) {
	app, _, admin := setup(t)

	// anonymous
	status, env := testutil.DoJSON(t, app, http.MethodGet, "/kiosk", nil, nil)
	require.Equal(t, fiber.StatusOK, status)
	var w who
	env.DecodeData(t, &w)
	assert.Nil(t, w.UserID)

	// header eksplisit
	owner := uuid.New()
	status, env = testutil.DoJSON(t, app, http.MethodGet, "/kiosk", nil, map[string]string{HeaderUserID: owner.String()})
	require.Equal(t, fiber.StatusOK, status)
	w = who{}
	env.DecodeData(t, &w)
	require.NotNil(t, w.UserID)
	assert.Equal(t, owner.String(), *w.UserID)

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/kiosk", nil, map[string]string{HeaderUserID: "not-a-uuid"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	// bearer valid menang atas header
	tok := signToken(t, admin.ID, "admin", time.Now().Add(time.Hour))
	headers := testutil.Bearer(tok)
	headers[HeaderUserID] = owner.String()
	status, env = testutil.DoJSON(t, app, http.MethodGet, "/kiosk", nil, headers)
	require.Equal(t, fiber.StatusOK, status)
	w = who{}
	env.DecodeData(t, &w)
	assert.Equal(t, admin.ID.String(), *w.UserID)
	assert.Equal(t, "admin", w.Role)
}
