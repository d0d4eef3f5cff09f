package controller

import (
	"github.com/gofiber/fiber/v2"

	helper "preschool_backend/internals/helpers"
	helperOSS "preschool_backend/internals/helpers/oss"
)

type UploadController struct {
	Blob helperOSS.BlobService
}

func NewUploadController(blob helperOSS.BlobService) *UploadController {
	return &UploadController{Blob: blob}
}

// POST /api/a/uploads/image (multipart: image|file|photo|avatar, opsional slot)
// OSS aktif → WebP di bucket; selain itu disimpan di UPLOAD_DIR.
func (ctl *UploadController) UploadImage(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	fh, err := helperOSS.GetImageFile(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Image file is required")
	}

	slot := helper.Slugify(c.FormValue("slot", "misc"), 40)
	url, err := ctl.Blob.UploadImage(c.UserContext(), userID, slot, fh)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Image uploaded", fiber.Map{"url": url})
}
