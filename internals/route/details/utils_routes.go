package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	libraryRoute "preschool_backend/internals/features/references/library/route"
	pageRoute "preschool_backend/internals/features/ui/pages/route"
	uploadRoute "preschool_backend/internals/features/utils/uploads/route"
	helperOSS "preschool_backend/internals/helpers/oss"
)

func ReferencePublicRoutes(public fiber.Router, db *gorm.DB) {
	libraryRoute.LibraryPublicRoutes(public, db)
}

func UploadAdminRoutes(admin fiber.Router, blob helperOSS.BlobService) {
	uploadRoute.UploadRoutes(admin, blob)
}

// halaman HTML (/greeting, /emotions, /quiz)
func PageRoutes(app *fiber.App) {
	pageRoute.PageRoutes(app)
}
