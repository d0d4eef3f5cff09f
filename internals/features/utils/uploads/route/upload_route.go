package route

import (
	"github.com/gofiber/fiber/v2"

	"preschool_backend/internals/features/utils/uploads/controller"
	helperOSS "preschool_backend/internals/helpers/oss"
)

func UploadRoutes(admin fiber.Router, blob helperOSS.BlobService) {
	ctrl := controller.NewUploadController(blob)
	admin.Post("/uploads/image", ctrl.UploadImage)
}
