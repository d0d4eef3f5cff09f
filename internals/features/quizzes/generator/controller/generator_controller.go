package controller

import (
	"github.com/gofiber/fiber/v2"

	"preschool_backend/internals/features/quizzes/generator/dto"
	"preschool_backend/internals/features/quizzes/generator/service"
	helper "preschool_backend/internals/helpers"
)

type GeneratorController struct {
	Gen *service.Generator
}

func NewGeneratorController(gen *service.Generator) *GeneratorController {
	return &GeneratorController{Gen: gen}
}

// POST /api/a/questions/classify
func (ctl *GeneratorController) Classify(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	res, err := ctl.Gen.Classify(c.UserContext(), req.Topic)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Topic classified", res)
}

// POST /api/a/questions/generate
func (ctl *GeneratorController) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	res, err := ctl.Gen.Generate(c.UserContext(), req, helper.GetOptionalUserID(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Questions generated", res)
}

// GET /api/a/question-generations?page=&per_page=
func (ctl *GeneratorController) History(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := service.ListGenerations(ctl.Gen.DB, helper.OwnerScope(c), p.Offset, p.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows))
	return helper.JsonList(c, "Generations fetched", rows, &pg)
}
