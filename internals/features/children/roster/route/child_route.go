package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/children/roster/controller"
	helperOSS "preschool_backend/internals/helpers/oss"
)

// ChildAdminRoutes: /api/a/children
func ChildAdminRoutes(admin fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewChildController(db, blob)

	g := admin.Group("/children")
	g.Get("/", ctrl.List)
	g.Get("/classes", ctrl.Classes)
	g.Get("/qr/export", ctrl.ExportQR)
	g.Post("/bulk", ctrl.BulkUpsert)
	g.Post("/import", ctrl.ImportExcel)
	g.Get("/:id", ctrl.Get)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Post("/:id/qr", ctrl.RegenerateQR)
	g.Post("/:id/avatar", ctrl.UploadAvatar)
}

// ChildKioskRoutes: /api/k/children
func ChildKioskRoutes(kiosk fiber.Router, db *gorm.DB) {
	ctrl := controller.NewKioskChildController(db)
	kiosk.Get("/children/lookup", ctrl.Lookup)
}
