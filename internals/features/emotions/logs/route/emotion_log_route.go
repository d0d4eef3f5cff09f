package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/emotions/logs/controller"
)

// EmotionLogKioskRoutes: /api/k/emotion-logs
func EmotionLogKioskRoutes(kiosk fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEmotionLogController(db)
	kiosk.Post("/emotion-logs", ctrl.Submit)
	kiosk.Get("/emotion-logs/today", ctrl.Today)
}

// EmotionLogAdminRoutes: /api/a/emotion-logs
func EmotionLogAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEmotionLogController(db)

	g := admin.Group("/emotion-logs")
	g.Get("/", ctrl.List)
	g.Get("/summary", ctrl.Summary)
	g.Delete("/:id", ctrl.Delete)
}
