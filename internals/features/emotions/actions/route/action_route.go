package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/constants"
	"preschool_backend/internals/features/emotions/actions/controller"
	authMiddleware "preschool_backend/internals/middlewares/auth"
)

func ActionPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := controller.NewActionController(db)
	public.Get("/actions", ctrl.List)
}

func ActionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewActionController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("actions"), constants.AdminOnly...)

	g := admin.Group("/actions")
	g.Get("/", ctrl.List)
	g.Post("/", adminOnly, ctrl.Create)
	g.Put("/:id", adminOnly, ctrl.Update)
	g.Delete("/:id", adminOnly, ctrl.Delete)
}
