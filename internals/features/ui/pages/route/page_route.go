package route

import (
	"github.com/gofiber/fiber/v2"

	"preschool_backend/internals/features/ui/pages/controller"
)

// PageRoutes butuh app dengan Views = pages.NewEngine()
func PageRoutes(app fiber.Router) {
	ctrl := controller.NewPageController()

	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/greeting") })
	app.Get("/greeting", ctrl.Greeting)
	app.Get("/emotions", ctrl.Emotions)
	app.Get("/quiz", ctrl.Quiz)
}
