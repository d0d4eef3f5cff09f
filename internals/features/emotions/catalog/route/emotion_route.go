package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/constants"
	"preschool_backend/internals/features/emotions/catalog/controller"
	"preschool_backend/internals/features/emotions/catalog/service"
	helperOSS "preschool_backend/internals/helpers/oss"
	authMiddleware "preschool_backend/internals/middlewares/auth"
)

// EmotionPublicRoutes: /api/n/emotions
func EmotionPublicRoutes(public fiber.Router, db *gorm.DB, files *helperOSS.LocalBlobService) {
	ctrl := controller.NewEmotionController(service.NewCatalogService(db, files))
	public.Get("/emotions", ctrl.List)
	public.Get("/emotions/:id", ctrl.Get)
}

// EmotionAdminRoutes: /api/a/emotions (tulis khusus admin)
func EmotionAdminRoutes(admin fiber.Router, db *gorm.DB, files *helperOSS.LocalBlobService) {
	ctrl := controller.NewEmotionController(service.NewCatalogService(db, files))

	g := admin.Group("/emotions")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)

	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("emotion catalog"), constants.AdminOnly...)
	g.Post("/", adminOnly, ctrl.Create)
	g.Put("/:id", adminOnly, ctrl.Update)
	g.Delete("/:id", adminOnly, ctrl.Delete)
}
