package seeds

import (
	"log"

	"gorm.io/gorm"

	"preschool_backend/internals/seeds/emotions"
	"preschool_backend/internals/seeds/quizzes"
	"preschool_backend/internals/seeds/references"
	users "preschool_backend/internals/seeds/users/auth"
)

// RunAllSeeds: idempotent, aman dipanggil setiap startup.
func RunAllSeeds(db *gorm.DB) {
	//* User
	if err := users.SeedAdminFromEnv(db); err != nil {
		log.Printf("[SEED ERROR] admin: %v", err)
	}

	//* Emotions + actions
	if err := emotions.SeedEmotionsFromJSON(db, emotions.DefaultData); err != nil {
		log.Printf("[SEED ERROR] emotions: %v", err)
	}

	//* Quizzes
	if err := quizzes.SeedQuestionTypesFromJSON(db, quizzes.DefaultData); err != nil {
		log.Printf("[SEED ERROR] question types: %v", err)
	}

	//* Reference tables
	if err := references.SeedLibraryFromJSON(db, references.DefaultData); err != nil {
		log.Printf("[SEED ERROR] library: %v", err)
	}
}
