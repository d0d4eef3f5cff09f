package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys yang diisi middleware auth / identity.
const (
	LocUserID   = "user_id"
	LocUserRole = "role"
	LocRawToken = "raw_token"
)

// GetUserIDFromToken ambil user_id dari c.Locals("user_id").
// 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user is not logged in")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user is not logged in")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user is not logged in")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid user id")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}
}

// GetOptionalUserID: versi longgar untuk filter owner (nil = tanpa filter).
func GetOptionalUserID(c *fiber.Ctx) *uuid.UUID {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	return &id
}

// GetUserRole role dari klaim JWT ("" kalau tidak ada).
func GetUserRole(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocUserRole).(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// OwnerScope: admin melihat semua data (nil), role lain dibatasi ke user_id sendiri.
func OwnerScope(c *fiber.Ctx) *uuid.UUID {
	if GetUserRole(c) == "admin" {
		return nil
	}
	return GetOptionalUserID(c)
}
