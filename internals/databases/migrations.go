package database

import (
	"log"

	"gorm.io/gorm"

	rosterModel "preschool_backend/internals/features/children/roster/model"
	actionModel "preschool_backend/internals/features/emotions/actions/model"
	catalogModel "preschool_backend/internals/features/emotions/catalog/model"
	logModel "preschool_backend/internals/features/emotions/logs/model"
	generatorModel "preschool_backend/internals/features/quizzes/generator/model"
	questionModel "preschool_backend/internals/features/quizzes/questions/model"
	libraryModel "preschool_backend/internals/features/references/library/model"
	authModel "preschool_backend/internals/features/users/auth/model"
	userModel "preschool_backend/internals/features/users/user/model"
)

// AllModels urutan penting: tabel parent sebelum child (FK).
func AllModels() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&rosterModel.ChildModel{},
		&catalogModel.EmotionModel{},
		&logModel.EmotionLogModel{},
		&actionModel.ActionModel{},
		&questionModel.QuestionTypeModel{},
		&questionModel.QuestionModel{},
		&questionModel.AnswerModel{},
		&generatorModel.QuestionGenerationModel{},
		&libraryModel.TierModel{},
		&libraryModel.BookModel{},
	}
}

// RunMigrations membuat/menyesuaikan tabel + unique index
// (termasuk uq_emotion_logs_child_date_session yang menjaga aturan 2x per hari).
func RunMigrations(db *gorm.DB) error {
	log.Println("[INFO] Running AutoMigrate...")
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return err
	}
	log.Println("[INFO] AutoMigrate done.")
	return nil
}
