package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"preschool_backend/internals/configs"
	authModel "preschool_backend/internals/features/users/auth/model"
	helper "preschool_backend/internals/helpers"
)

var (
	errNoToken     = errors.New("unauthorized - No token provided")
	errBlacklisted = errors.New("unauthorized - Token is blacklisted")
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", errNoToken
	}

	// toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	var expUnix int64
	switch t := claims["exp"].(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case nil:
		return fmt.Errorf("token has no exp")
	default:
		return fmt.Errorf("invalid exp type")
	}

	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	v, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("no user id")
	}
	return uuid.Parse(strings.TrimSpace(v))
}

func isBlacklisted(db *gorm.DB, token string) (bool, error) {
	var n int64
	if err := db.Model(&authModel.TokenBlacklist{}).Where("token = ?", token).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var user struct {
		IsActive bool
	}
	if err := db.Table("users").Select("is_active").Where("id = ?", userID).Take(&user).Error; err != nil {
		return err
	}
	if !user.IsActive {
		return errors.New("user inactive")
	}
	return nil
}

// verifyAccessToken: blacklist → signature → exp → user_id
func verifyAccessToken(db *gorm.DB, tokenString string) (jwt.MapClaims, uuid.UUID, error) {
	blacklisted, err := isBlacklisted(db, tokenString)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if blacklisted {
		return nil, uuid.Nil, errBlacklisted
	}

	secretKey := configs.JWTSecret
	if secretKey == "" {
		return nil, uuid.Nil, fmt.Errorf("missing JWT secret")
	}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}); err != nil {
		return nil, uuid.Nil, fmt.Errorf("token parse error: %w", err)
	}
	if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
		return nil, uuid.Nil, err
	}
	userID, err := extractUserID(claims)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return claims, userID, nil
}

/* ======== Store claims to Locals ======== */

func storeClaimsToLocals(c *fiber.Ctx, userID uuid.UUID, claims jwt.MapClaims, raw string) {
	c.Locals(helper.LocUserID, userID.String())
	if role, ok := claims["role"].(string); ok {
		c.Locals(helper.LocUserRole, role)
	}
	if userName, ok := claims["user_name"].(string); ok {
		c.Locals("user_name", userName)
	}
	helper.SetRawAccessToken(c, raw)
}
