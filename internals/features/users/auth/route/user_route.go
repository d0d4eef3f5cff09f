package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "preschool_backend/internals/features/users/auth/controller"
	rateLimiter "preschool_backend/internals/middlewares"
	authMiddleware "preschool_backend/internals/middlewares/auth"
)

// AuthRoutes: /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)

	// 🔐 Protected
	protected := baseAuth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", authController.Logout)
	protected.Get("/me", authController.Me)
	protected.Post("/change-password", authController.ChangePassword)
}
