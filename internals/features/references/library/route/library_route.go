package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/references/library/controller"
)

func LibraryPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := controller.NewLibraryController(db)
	public.Get("/tiers", ctrl.ListTiers)
	public.Get("/books", ctrl.ListBooks)
}
