package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "preschool_backend/internals/helpers"
)

// AuthMiddleware: bearer JWT wajib (panel admin/guru)
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		claims, userID, err := verifyAccessToken(db, tokenString)
		if err != nil {
			if errors.Is(err, errBlacklisted) {
				log.Println("[WARN] Token found in blacklist")
				return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
			}
			log.Println("[ERROR] Token verification:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or expired token")
		}

		if err := ensureUserActive(db, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
		}

		storeClaimsToLocals(c, userID, claims, tokenString)
		return c.Next()
	}
}
