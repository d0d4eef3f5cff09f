package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/emotions/actions/dto"
	"preschool_backend/internals/features/emotions/actions/service"
	helper "preschool_backend/internals/helpers"
)

type ActionController struct {
	DB *gorm.DB
}

func NewActionController(db *gorm.DB) *ActionController {
	return &ActionController{DB: db}
}

// GET /actions?emotion_id=
func (ctl *ActionController) List(c *fiber.Ctx) error {
	var emotionID uint
	if raw := strings.TrimSpace(c.Query("emotion_id")); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid emotion_id")
		}
		emotionID = uint(v)
	}
	rows, err := service.List(ctl.DB, emotionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Actions fetched", rows)
}

func (ctl *ActionController) Create(c *fiber.Ctx) error {
	var req dto.CreateActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	m, err := service.Create(ctl.DB, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Action created", m)
}

func (ctl *ActionController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	m, err := service.Update(ctl.DB, id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Action updated", m)
}

func (ctl *ActionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Delete(ctl.DB, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Action deleted", fiber.Map{"id": id})
}
