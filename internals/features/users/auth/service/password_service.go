package service

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authHelper "preschool_backend/internals/features/users/auth/helper"
	authRepo "preschool_backend/internals/features/users/auth/repository"
	helper "preschool_backend/internals/helpers"
)

// ========================== CHANGE PASSWORD ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := authHelper.ValidatePassword(input.NewPassword); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if user.Password == nil || authHelper.CheckPasswordHash(*user.Password, input.OldPassword) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Old password is incorrect")
	}

	hash, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := authRepo.UpdateUserPassword(db, userID, hash); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Password updated", nil)
}
