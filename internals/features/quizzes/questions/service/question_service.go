package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"preschool_backend/internals/features/quizzes/questions/dto"
	"preschool_backend/internals/features/quizzes/questions/model"
	helper "preschool_backend/internals/helpers"
)

var errOneCorrect = fiber.NewError(fiber.StatusBadRequest, "Exactly one answer must be marked correct")

func preloadAnswers(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

/* =========================================================
   Types
========================================================= */

func ListTypes(db *gorm.DB) ([]dto.QuestionTypeResponse, error) {
	var out []dto.QuestionTypeResponse
	err := db.Model(&model.QuestionTypeModel{}).
		Select("question_types.id, question_types.name, question_types.description, COUNT(questions.id) AS question_count").
		Joins("LEFT JOIN questions ON questions.type_id = question_types.id").
		Group("question_types.id, question_types.name, question_types.description").
		Order("question_types.name ASC").
		Scan(&out).Error
	return out, err
}

func CreateType(db *gorm.DB, req dto.CreateTypeRequest) (*model.QuestionTypeModel, error) {
	m := model.QuestionTypeModel{Name: strings.TrimSpace(req.Name), Description: strings.TrimSpace(req.Description)}
	if err := db.Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "Question type already exists")
		}
		return nil, err
	}
	return &m, nil
}

func ensureType(tx *gorm.DB, typeID uint) error {
	var n int64
	if err := tx.Model(&model.QuestionTypeModel{}).Where("id = ?", typeID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "type_id does not exist")
	}
	return nil
}

/* =========================================================
   Questions
========================================================= */

type ListFilter struct {
	TypeID uint
	Q      string
	Offset int
	Limit  int
}

func ListQuestions(db *gorm.DB, f ListFilter) ([]model.QuestionModel, int64, error) {
	q := db.Model(&model.QuestionModel{})
	if f.TypeID > 0 {
		q = q.Where("type_id = ?", f.TypeID)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		q = q.Where("LOWER(question_text) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	var rows []model.QuestionModel
	if err := q.Preload("Answers", preloadAnswers).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func GetQuestion(db *gorm.DB, id uint) (*model.QuestionModel, error) {
	var m model.QuestionModel
	if err := db.Preload("Answers", preloadAnswers).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Question not found")
		}
		return nil, err
	}
	return &m, nil
}

// writeAnswers insert jawaban lalu set correct_answer_id (masih di tx yang sama)
func writeAnswers(tx *gorm.DB, q *model.QuestionModel, answers []dto.AnswerInput) error {
	rows := make([]model.AnswerModel, 0, len(answers))
	for i, a := range answers {
		rows = append(rows, model.AnswerModel{QuestionID: q.ID, AnswerText: a.AnswerText, IsCorrect: a.IsCorrect, SortOrder: i})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return err
	}
	var correct *uint
	for i := range rows {
		if rows[i].IsCorrect {
			id := rows[i].ID
			correct = &id
			break
		}
	}
	if err := tx.Model(&model.QuestionModel{}).Where("id = ?", q.ID).Update("correct_answer_id", correct).Error; err != nil {
		return err
	}
	q.Answers = rows
	q.CorrectAnswerID = correct
	return nil
}

// CreateQuestionTx: dipakai juga oleh generator AI (source = "ai")
func CreateQuestionTx(tx *gorm.DB, req dto.QuestionRequest, userID *uuid.UUID, source string) (*model.QuestionModel, error) {
	if req.CorrectCount() != 1 {
		return nil, errOneCorrect
	}
	if err := ensureType(tx, req.TypeID); err != nil {
		return nil, err
	}
	q := model.QuestionModel{
		QuestionText: req.QuestionText,
		Emoji:        req.Emoji,
		Explanation:  req.Explanation,
		Difficulty:   req.Difficulty,
		Source:       source,
		UserID:       userID,
		TypeID:       req.TypeID,
	}
	if err := tx.Omit("Answers").Create(&q).Error; err != nil {
		return nil, err
	}
	if err := writeAnswers(tx, &q, req.Answers); err != nil {
		return nil, err
	}
	return &q, nil
}

func CreateQuestion(db *gorm.DB, req dto.QuestionRequest, userID *uuid.UUID) (*model.QuestionModel, error) {
	var out *model.QuestionModel
	err := db.Transaction(func(tx *gorm.DB) error {
		q, err := CreateQuestionTx(tx, req, userID, model.SourceManual)
		out = q
		return err
	})
	return out, err
}

// canEdit: admin (owner nil) bebas, guru hanya soal miliknya / soal tanpa pemilik
func canEdit(q *model.QuestionModel, owner *uuid.UUID) bool {
	return owner == nil || q.UserID == nil || *q.UserID == *owner
}

// UpdateQuestion mengganti isi soal + seluruh jawaban dalam satu transaksi
func UpdateQuestion(db *gorm.DB, id uint, req dto.QuestionRequest, owner *uuid.UUID) (*model.QuestionModel, error) {
	if req.CorrectCount() != 1 {
		return nil, errOneCorrect
	}
	var out *model.QuestionModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var q model.QuestionModel
		if err := tx.First(&q, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Question not found")
			}
			return err
		}
		if !canEdit(&q, owner) {
			return fiber.NewError(fiber.StatusForbidden, "You can only edit your own questions")
		}
		if err := ensureType(tx, req.TypeID); err != nil {
			return err
		}

		if err := tx.Model(&q).Updates(map[string]any{
			"question_text":     req.QuestionText,
			"emoji":             req.Emoji,
			"explanation":       req.Explanation,
			"difficulty":        req.Difficulty,
			"type_id":           req.TypeID,
			"correct_answer_id": nil,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", q.ID).Delete(&model.AnswerModel{}).Error; err != nil {
			return err
		}
		if err := writeAnswers(tx, &q, req.Answers); err != nil {
			return err
		}
		fresh, err := GetQuestion(tx, q.ID)
		out = fresh
		return err
	})
	return out, err
}

func DeleteQuestion(db *gorm.DB, id uint, owner *uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var q model.QuestionModel
		if err := tx.First(&q, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Question not found")
			}
			return err
		}
		if !canEdit(&q, owner) {
			return fiber.NewError(fiber.StatusForbidden, "You can only delete your own questions")
		}
		if err := tx.Where("question_id = ?", q.ID).Delete(&model.AnswerModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&q).Error
	})
}

/* =========================================================
   Kiosk quiz
========================================================= */

// RandomQuiz: soal acak (RANDOM() jalan di Postgres & SQLite)
func RandomQuiz(db *gorm.DB, typeID uint, limit int) ([]model.QuestionModel, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	q := db.Model(&model.QuestionModel{}).Where("correct_answer_id IS NOT NULL")
	if typeID > 0 {
		q = q.Where("type_id = ?", typeID)
	}
	var rows []model.QuestionModel
	err := q.Preload("Answers", preloadAnswers).Order("RANDOM()").Limit(limit).Find(&rows).Error
	return rows, err
}

func CheckAnswer(db *gorm.DB, req dto.CheckAnswerRequest) (dto.CheckAnswerResponse, error) {
	var q model.QuestionModel
	if err := db.First(&q, req.QuestionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CheckAnswerResponse{}, fiber.NewError(fiber.StatusNotFound, "Question not found")
		}
		return dto.CheckAnswerResponse{}, err
	}

	var n int64
	if err := db.Model(&model.AnswerModel{}).
		Where("id = ? AND question_id = ?", req.AnswerID, q.ID).
		Count(&n).Error; err != nil {
		return dto.CheckAnswerResponse{}, err
	}
	if n == 0 {
		return dto.CheckAnswerResponse{}, fiber.NewError(fiber.StatusBadRequest, "Answer does not belong to this question")
	}
	if q.CorrectAnswerID == nil {
		return dto.CheckAnswerResponse{}, fiber.NewError(fiber.StatusConflict, "Question has no correct answer")
	}
	return dto.CheckAnswerResponse{
		Correct:         *q.CorrectAnswerID == req.AnswerID,
		CorrectAnswerID: *q.CorrectAnswerID,
		Explanation:     q.Explanation,
	}, nil
}
