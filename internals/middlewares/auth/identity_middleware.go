package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "preschool_backend/internals/helpers"
)

const HeaderUserID = "X-User-ID"

// IdentityMiddleware untuk alur kiosk/anak: identitas pemanggil diambil dari
// bearer token (kalau valid) atau header X-User-ID. Tanpa keduanya request
// tetap lanjut sebagai anonymous.
func IdentityMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, err := extractBearerToken(c); err == nil {
			claims, userID, err := verifyAccessToken(db, tokenString)
			if err == nil {
				storeClaimsToLocals(c, userID, claims, tokenString)
				return c.Next()
			}
			log.Printf("[INFO] Kiosk bearer ignored: %v", err)
		}

		if raw := strings.TrimSpace(c.Get(HeaderUserID)); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "Invalid X-User-ID header")
			}
			c.Locals(helper.LocUserID, id.String())
		}
		return c.Next()
	}
}
