package service

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"preschool_backend/internals/configs"
	userModel "preschool_backend/internals/features/users/user/model"
)

const accessTTLDefault = 24 * time.Hour

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func accessTTL() time.Duration {
	if v := os.Getenv("ACCESS_TOKEN_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Hour
		}
	}
	return accessTTLDefault
}

func buildAccessClaims(user userModel.UserModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
}

// IssueAccessToken menandatangani access token HS256 untuk user.
func IssueAccessToken(user userModel.UserModel, now time.Time) (string, time.Time, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", time.Time{}, err
	}
	ttl := accessTTL()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now, ttl))
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, now.Add(ttl), nil
}

// resolveBlacklistTTL: sisa umur token + 1 menit (minimal 2 menit kalau tidak bisa dibaca)
func resolveBlacklistTTL(accessToken string) time.Duration {
	ttl := 2 * time.Minute
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" || accessToken == "" {
		return ttl
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return ttl
	}
	if exp, ok := claims["exp"].(float64); ok {
		if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
			return until + time.Minute
		}
		return time.Minute
	}
	return ttl
}
