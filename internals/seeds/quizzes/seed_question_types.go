package quizzes

import (
	_ "embed"
	"log"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	questionModel "preschool_backend/internals/features/quizzes/questions/model"
)

//go:embed data_question_types.json
var DefaultData []byte

type QuestionTypeSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func SeedQuestionTypesFromJSON(db *gorm.DB, content []byte) error {
	var data []QuestionTypeSeed
	if err := sonic.Unmarshal(content, &data); err != nil {
		return err
	}

	rows := make([]questionModel.QuestionTypeModel, 0, len(data))
	for _, item := range data {
		rows = append(rows, questionModel.QuestionTypeModel{Name: item.Name, Description: item.Description})
	}
	if len(rows) == 0 {
		return nil
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows)
	if res.Error != nil {
		return res.Error
	}
	log.Printf("[SEED] question types: %d inserted", res.RowsAffected)
	return nil
}
