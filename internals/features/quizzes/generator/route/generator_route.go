package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tmc/langchaingo/llms"
	"gorm.io/gorm"

	"preschool_backend/internals/features/quizzes/generator/controller"
	"preschool_backend/internals/features/quizzes/generator/service"
	"preschool_backend/internals/middlewares"
)

// GeneratorRoutes: /api/a/questions/{classify,generate}, /api/a/question-generations
// llm nil → endpoint AI menjawab 503
func GeneratorRoutes(admin fiber.Router, db *gorm.DB, llm llms.Model) {
	ctrl := controller.NewGeneratorController(service.NewGenerator(db, llm))
	limit := middlewares.GeneratorRateLimiter()

	admin.Post("/questions/classify", limit, ctrl.Classify)
	admin.Post("/questions/generate", limit, ctrl.Generate)
	admin.Get("/question-generations", ctrl.History)
}
