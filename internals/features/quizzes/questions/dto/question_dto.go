package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"preschool_backend/internals/features/quizzes/questions/model"
)

/* =========================================================
   REQUEST
========================================================= */

type AnswerInput struct {
	AnswerText string `json:"answer_text" validate:"required,min=1,max=500"`
	IsCorrect  bool   `json:"is_correct"`
}

// QuestionRequest: satu skema untuk create & update (2–6 jawaban, tepat satu benar)
type QuestionRequest struct {
	QuestionText string        `json:"question_text" validate:"required,min=3,max=1000"`
	Emoji        string        `json:"emoji" validate:"omitempty,max=16"`
	Explanation  string        `json:"explanation" validate:"omitempty,max=2000"`
	Difficulty   string        `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	TypeID       uint          `json:"type_id" validate:"required,gt=0"`
	Answers      []AnswerInput `json:"answers" validate:"required,min=2,max=6,dive"`
}

func (r *QuestionRequest) Normalize() {
	r.QuestionText = strings.TrimSpace(r.QuestionText)
	r.Emoji = strings.TrimSpace(r.Emoji)
	r.Explanation = strings.TrimSpace(r.Explanation)
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	for i := range r.Answers {
		r.Answers[i].AnswerText = strings.TrimSpace(r.Answers[i].AnswerText)
	}
}

// CorrectCount dipakai validasi "tepat satu jawaban benar"
func (r *QuestionRequest) CorrectCount() int {
	n := 0
	for _, a := range r.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

type CreateTypeRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

type CheckAnswerRequest struct {
	QuestionID uint `json:"question_id" validate:"required,gt=0"`
	AnswerID   uint `json:"answer_id" validate:"required,gt=0"`
}

/* =========================================================
   RESPONSE
========================================================= */

type AnswerResponse struct {
	ID         uint   `json:"id"`
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
}

type QuestionResponse struct {
	ID              uint             `json:"id"`
	QuestionText    string           `json:"question_text"`
	Emoji           string           `json:"emoji"`
	Explanation     string           `json:"explanation"`
	Difficulty      string           `json:"difficulty,omitempty"`
	Source          string           `json:"source"`
	UserID          *uuid.UUID       `json:"user_id,omitempty"`
	TypeID          uint             `json:"type_id"`
	CorrectAnswerID *uint            `json:"correct_answer_id,omitempty"`
	Answers         []AnswerResponse `json:"answers"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func FromModel(m model.QuestionModel) QuestionResponse {
	out := QuestionResponse{
		ID:              m.ID,
		QuestionText:    m.QuestionText,
		Emoji:           m.Emoji,
		Explanation:     m.Explanation,
		Difficulty:      m.Difficulty,
		Source:          m.Source,
		UserID:          m.UserID,
		TypeID:          m.TypeID,
		CorrectAnswerID: m.CorrectAnswerID,
		Answers:         make([]AnswerResponse, 0, len(m.Answers)),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, a := range m.Answers {
		out.Answers = append(out.Answers, AnswerResponse{ID: a.ID, AnswerText: a.AnswerText, IsCorrect: a.IsCorrect})
	}
	return out
}

func FromModels(list []model.QuestionModel) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// Kiosk: jawaban tanpa flag benar/salah
type QuizAnswer struct {
	ID         uint   `json:"id"`
	AnswerText string `json:"answer_text"`
}

type QuizQuestion struct {
	ID           uint         `json:"id"`
	QuestionText string       `json:"question_text"`
	Emoji        string       `json:"emoji"`
	TypeID       uint         `json:"type_id"`
	Answers      []QuizAnswer `json:"answers"`
}

func ToQuiz(list []model.QuestionModel) []QuizQuestion {
	out := make([]QuizQuestion, 0, len(list))
	for _, m := range list {
		q := QuizQuestion{ID: m.ID, QuestionText: m.QuestionText, Emoji: m.Emoji, TypeID: m.TypeID}
		for _, a := range m.Answers {
			q.Answers = append(q.Answers, QuizAnswer{ID: a.ID, AnswerText: a.AnswerText})
		}
		out = append(out, q)
	}
	return out
}

type CheckAnswerResponse struct {
	Correct         bool   `json:"correct"`
	CorrectAnswerID uint   `json:"correct_answer_id"`
	Explanation     string `json:"explanation"`
}

type QuestionTypeResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	QuestionCount int64  `json:"question_count"`
}
