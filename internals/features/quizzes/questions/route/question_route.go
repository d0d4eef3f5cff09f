package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/quizzes/questions/controller"
)

// QuestionAdminRoutes: /api/a/questions, /api/a/question-types
func QuestionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewQuestionController(db)

	g := admin.Group("/questions")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Get)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)

	admin.Get("/question-types", ctrl.ListTypes)
	admin.Post("/question-types", ctrl.CreateType)
}

// QuestionKioskRoutes: /api/k/quiz
func QuestionKioskRoutes(kiosk fiber.Router, db *gorm.DB) {
	ctrl := controller.NewQuestionController(db)
	kiosk.Get("/quiz", ctrl.Quiz)
	kiosk.Post("/quiz/check", ctrl.Check)
}
