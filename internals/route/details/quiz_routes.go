package details

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tmc/langchaingo/llms"
	"gorm.io/gorm"

	generatorRoute "preschool_backend/internals/features/quizzes/generator/route"
	questionRoute "preschool_backend/internals/features/quizzes/questions/route"
)

// llm boleh nil: endpoint generate akan menjawab 503
func QuizAdminRoutes(admin fiber.Router, db *gorm.DB, llm llms.Model) {
	generatorRoute.GeneratorRoutes(admin, db, llm)
	questionRoute.QuestionAdminRoutes(admin, db)
}

func QuizKioskRoutes(kiosk fiber.Router, db *gorm.DB) {
	questionRoute.QuestionKioskRoutes(kiosk, db)
}
