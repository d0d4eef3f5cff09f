package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/children/roster/dto"
	"preschool_backend/internals/features/children/roster/service"
	helper "preschool_backend/internals/helpers"
)

type KioskChildController struct {
	DB *gorm.DB
}

func NewKioskChildController(db *gorm.DB) *KioskChildController {
	return &KioskChildController{DB: db}
}

// GET /api/k/children/lookup?code=<teks QR>
func (ctl *KioskChildController) Lookup(c *fiber.Ctx) error {
	m, err := service.FindByCode(ctl.DB, c.Query("code"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Child found", dto.ToKiosk(*m))
}
