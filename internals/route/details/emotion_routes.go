package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	actionRoute "preschool_backend/internals/features/emotions/actions/route"
	emotionRoute "preschool_backend/internals/features/emotions/catalog/route"
	logRoute "preschool_backend/internals/features/emotions/logs/route"
	helperOSS "preschool_backend/internals/helpers/oss"
)

// /api/n → katalog emosi + aksi (tanpa auth)
func EmotionPublicRoutes(public fiber.Router, db *gorm.DB, files *helperOSS.LocalBlobService) {
	emotionRoute.EmotionPublicRoutes(public, db, files)
	actionRoute.ActionPublicRoutes(public, db)
}

func EmotionAdminRoutes(admin fiber.Router, db *gorm.DB, files *helperOSS.LocalBlobService) {
	emotionRoute.EmotionAdminRoutes(admin, db, files)
	actionRoute.ActionAdminRoutes(admin, db)
	logRoute.EmotionLogAdminRoutes(admin, db)
}

func EmotionKioskRoutes(kiosk fiber.Router, db *gorm.DB) {
	logRoute.EmotionLogKioskRoutes(kiosk, db)
}
