package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/quizzes/questions/dto"
	"preschool_backend/internals/features/quizzes/questions/service"
	helper "preschool_backend/internals/helpers"
)

type QuestionController struct {
	DB *gorm.DB
}

func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{DB: db}
}

func queryUint(c *fiber.Ctx, key string) (uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key)
	}
	return uint(v), nil
}

func parseQuestionRequest(c *fiber.Ctx) (dto.QuestionRequest, error) {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	return req, helper.Validate.Struct(req)
}

// GET /api/a/questions?type_id=&q=&page=&per_page=
func (ctl *QuestionController) List(c *fiber.Ctx) error {
	typeID, err := queryUint(c, "type_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := service.ListQuestions(ctl.DB, service.ListFilter{
		TypeID: typeID, Q: c.Query("q"), Offset: p.Offset, Limit: p.Limit,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows))
	return helper.JsonList(c, "Questions fetched", dto.FromModels(rows), &pg)
}

// GET /api/a/questions/:id
func (ctl *QuestionController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	q, err := service.GetQuestion(ctl.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Question fetched", dto.FromModel(*q))
}

// POST /api/a/questions
func (ctl *QuestionController) Create(c *fiber.Ctx) error {
	req, err := parseQuestionRequest(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	q, err := service.CreateQuestion(ctl.DB, req, helper.GetOptionalUserID(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Question created", dto.FromModel(*q))
}

// PUT /api/a/questions/:id
func (ctl *QuestionController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	req, err := parseQuestionRequest(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	q, err := service.UpdateQuestion(ctl.DB, id, req, helper.OwnerScope(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Question updated", dto.FromModel(*q))
}

// DELETE /api/a/questions/:id
func (ctl *QuestionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.DeleteQuestion(ctl.DB, id, helper.OwnerScope(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Question deleted", fiber.Map{"id": id})
}

// GET /api/a/question-types
func (ctl *QuestionController) ListTypes(c *fiber.Ctx) error {
	rows, err := service.ListTypes(ctl.DB)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Question types fetched", rows)
}

// POST /api/a/question-types
func (ctl *QuestionController) CreateType(c *fiber.Ctx) error {
	var req dto.CreateTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	m, err := service.CreateType(ctl.DB, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Question type created", m)
}

/* =========================================================
   Kiosk
========================================================= */

// GET /api/k/quiz?type_id=&limit=
func (ctl *QuestionController) Quiz(c *fiber.Ctx) error {
	typeID, err := queryUint(c, "type_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := service.RandomQuiz(ctl.DB, typeID, c.QueryInt("limit", 5))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Quiz fetched", dto.ToQuiz(rows))
}

// POST /api/k/quiz/check
func (ctl *QuestionController) Check(c *fiber.Ctx) error {
	var req dto.CheckAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	resp, err := service.CheckAnswer(ctl.DB, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Answer checked", resp)
}
