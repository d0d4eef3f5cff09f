package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/constants"
	"preschool_backend/internals/features/users/user/controller"
	authMiddleware "preschool_backend/internals/middlewares/auth"
)

// UserAdminRoutes: /api/a/users (khusus admin)
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	g := admin.Group("/users", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.AdminOnly...))
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", ctrl.Create)
	g.Put("/:id", ctrl.Update)
}
