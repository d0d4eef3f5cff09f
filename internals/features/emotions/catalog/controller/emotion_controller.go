package controller

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"preschool_backend/internals/features/emotions/catalog/dto"
	"preschool_backend/internals/features/emotions/catalog/service"
	helper "preschool_backend/internals/helpers"
	helperOSS "preschool_backend/internals/helpers/oss"
)

type EmotionController struct {
	Svc *service.CatalogService
}

func NewEmotionController(svc *service.CatalogService) *EmotionController {
	return &EmotionController{Svc: svc}
}

func formFile(c *fiber.Ctx, field string) *multipart.FileHeader {
	if !helperOSS.IsMultipart(c) {
		return nil
	}
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}

func uploadsFrom(c *fiber.Ctx) service.Uploads {
	return service.Uploads{Image: formFile(c, "image"), Audio: formFile(c, "audio")}
}

// GET /api/n/emotions
func (ctl *EmotionController) List(c *fiber.Ctx) error {
	rows, err := ctl.Svc.List()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Emotions fetched", dto.FromModels(rows))
}

// GET /api/n/emotions/:id
func (ctl *EmotionController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctl.Svc.Get(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Emotion fetched", dto.FromModel(*m))
}

// POST /api/a/emotions (JSON atau multipart)
func (ctl *EmotionController) Create(c *fiber.Ctx) error {
	var req dto.CreateEmotionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	m, err := ctl.Svc.Create(c.UserContext(), req, uploadsFrom(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Emotion created", dto.FromModel(*m))
}

// PUT /api/a/emotions/:id (JSON atau multipart)
func (ctl *EmotionController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateEmotionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	m, err := ctl.Svc.Update(c.UserContext(), id, req, uploadsFrom(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Emotion updated", dto.FromModel(*m))
}

// DELETE /api/a/emotions/:id
func (ctl *EmotionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Emotion deleted", fiber.Map{"id": id})
}
