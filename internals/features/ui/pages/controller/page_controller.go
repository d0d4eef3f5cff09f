package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type PageController struct{}

func NewPageController() *PageController { return &PageController{} }

// query id opsional; nilai tidak valid dianggap 0 (halaman tetap tampil)
func queryID(c *fiber.Ctx, key string) uint64 {
	v, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func (pc *PageController) render(c *fiber.Ctx, view, title string) error {
	return c.Render(view, fiber.Map{
		"Title":   title,
		"ChildID": queryID(c, "child_id"),
		"TypeID":  queryID(c, "type_id"),
	}, "layout")
}

// GET /greeting
func (pc *PageController) Greeting(c *fiber.Ctx) error {
	return pc.render(c, "greeting", "Halo")
}

// GET /emotions?child_id=
func (pc *PageController) Emotions(c *fiber.Ctx) error {
	return pc.render(c, "emotions", "Perasaan")
}

// GET /quiz?child_id=&type_id=
func (pc *PageController) Quiz(c *fiber.Ctx) error {
	return pc.render(c, "quiz", "Kuis")
}
