package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rosterRoute "preschool_backend/internals/features/children/roster/route"
	helperOSS "preschool_backend/internals/helpers/oss"
)

func ChildrenAdminRoutes(admin fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	rosterRoute.ChildAdminRoutes(admin, db, blob)
}

func ChildrenKioskRoutes(kiosk fiber.Router, db *gorm.DB) {
	rosterRoute.ChildKioskRoutes(kiosk, db)
}
