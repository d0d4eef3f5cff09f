package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/emotions/logs/dto"
	"preschool_backend/internals/features/emotions/logs/service"
	helper "preschool_backend/internals/helpers"
	"preschool_backend/internals/helpers/dbtime"
)

type EmotionLogController struct {
	DB *gorm.DB
}

func NewEmotionLogController(db *gorm.DB) *EmotionLogController {
	return &EmotionLogController{DB: db}
}

// queryDate: ?date=YYYY-MM-DD (kosong = hari ini)
func queryDate(c *fiber.Ctx) (time.Time, error) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		return dbtime.Today(), nil
	}
	d, err := dbtime.ParseDate(raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return d, nil
}

func queryChildID(c *fiber.Ctx, required bool) (uint, error) {
	raw := strings.TrimSpace(c.Query("child_id"))
	if raw == "" {
		if required {
			return 0, fiber.NewError(fiber.StatusBadRequest, "child_id is required")
		}
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid child_id")
	}
	return uint(id), nil
}

// POST /api/k/emotion-logs
// Body: {"logs":[...]} | [...] | {...}
func (ctl *EmotionLogController) Submit(c *fiber.Ctx) error {
	req, err := dto.ParseSubmitBody(c.Body(), c.App().Config().JSONDecoder)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	rows, labels, err := service.Submit(ctl.DB, req, helper.GetOptionalUserID(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Emotion logged", dto.FromModels(rows, labels))
}

// GET /api/k/emotion-logs/today?child_id=&date=
func (ctl *EmotionLogController) Today(c *fiber.Ctx) error {
	childID, err := queryChildID(c, true)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	date, err := queryDate(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resp, err := service.DayState(ctl.DB, childID, date)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Emotion state fetched", resp)
}

// GET /api/a/emotion-logs?date=&class=&child_id=&page=&per_page=
func (ctl *EmotionLogController) List(c *fiber.Ctx) error {
	f := service.ListFilter{ClassName: c.Query("class")}
	if strings.TrimSpace(c.Query("date")) != "" {
		d, err := queryDate(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		f.Date = &d
	}
	childID, err := queryChildID(c, false)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	f.ChildID = childID

	p := helper.ResolvePaging(c, 50, 500)
	f.Offset, f.Limit = p.Offset, p.Limit

	rows, total, labels, err := service.List(ctl.DB, f)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows))
	return helper.JsonList(c, "Emotion logs fetched", dto.FromModels(rows, labels), &pg)
}

// GET /api/a/emotion-logs/summary?date=&class=
func (ctl *EmotionLogController) Summary(c *fiber.Ctx) error {
	date, err := queryDate(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resp, err := service.Summary(ctl.DB, date, c.Query("class"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Emotion summary fetched", resp)
}

// DELETE /api/a/emotion-logs/:id
func (ctl *EmotionLogController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Delete(ctl.DB, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Emotion log deleted", fiber.Map{"id": id})
}
