package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/references/library/model"
	helper "preschool_backend/internals/helpers"
)

type LibraryController struct {
	DB *gorm.DB
}

func NewLibraryController(db *gorm.DB) *LibraryController {
	return &LibraryController{DB: db}
}

// GET /api/n/tiers?with_books=1
func (ctl *LibraryController) ListTiers(c *fiber.Ctx) error {
	q := ctl.DB.Order("min_points ASC, id ASC")
	if c.QueryBool("with_books") {
		q = q.Preload("Books", func(db *gorm.DB) *gorm.DB { return db.Order("title ASC") })
	}
	var rows []model.TierModel
	if err := q.Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Tiers fetched", rows)
}

// GET /api/n/books?tier_id=
func (ctl *LibraryController) ListBooks(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.BookModel{})
	if raw := strings.TrimSpace(c.Query("tier_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid tier_id")
		}
		q = q.Where("tier_id = ?", id)
	}
	var rows []model.BookModel
	if err := q.Order("tier_id ASC, title ASC").Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Books fetched", rows)
}
