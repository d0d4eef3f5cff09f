package user

import (
	"log"
	"strings"

	"gorm.io/gorm"

	"preschool_backend/internals/configs"
	"preschool_backend/internals/constants"
	authHelper "preschool_backend/internals/features/users/auth/helper"
	"preschool_backend/internals/features/users/user/model"
)

// SeedAdminFromEnv membuat akun admin pertama dari SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
// Tidak melakukan apa pun kalau ENV kosong atau email sudah terdaftar.
func SeedAdminFromEnv(db *gorm.DB) error {
	email := strings.ToLower(strings.TrimSpace(configs.GetEnv("SEED_ADMIN_EMAIL")))
	password := configs.GetEnv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("[SEED] SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set, admin seed skipped")
		return nil
	}
	if !authHelper.IsValidEmail(email) {
		log.Printf("[WARN] SEED_ADMIN_EMAIL %q is not a valid email, admin seed skipped", email)
		return nil
	}
	if err := authHelper.ValidatePassword(password); err != nil {
		log.Printf("[WARN] SEED_ADMIN_PASSWORD rejected: %v", err)
		return nil
	}

	var count int64
	if err := db.Model(&model.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("[SEED] admin %s already exists, skipped", email)
		return nil
	}

	hashed, err := authHelper.HashPassword(password)
	if err != nil {
		return err
	}
	admin := model.UserModel{
		UserName: configs.GetEnv("SEED_ADMIN_NAME", "admin"),
		Email:    email,
		Password: &hashed,
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("[SEED] admin %s created", email)
	return nil
}
