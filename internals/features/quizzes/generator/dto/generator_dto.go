package dto

import (
	"strings"

	questionDto "preschool_backend/internals/features/quizzes/questions/dto"
)

type ClassifyRequest struct {
	Topic string `json:"topic" validate:"required,min=3,max=500"`
}

type ClassifyResult struct {
	TypeID   *uint  `json:"type_id,omitempty"`
	TypeName string `json:"type_name"`
	IsNew    bool   `json:"is_new"`
	Reason   string `json:"reason"`
}

// GenerateRequest; type_id diisi = lewati fase klasifikasi
type GenerateRequest struct {
	Topic       string `json:"topic" validate:"required,min=3,max=500"`
	Count       int    `json:"count" validate:"min=1,max=10"`
	Difficulty  string `json:"difficulty" validate:"oneof=easy medium hard"`
	AnswerCount int    `json:"answer_count" validate:"min=2,max=6"`
	TypeID      *uint  `json:"type_id" validate:"omitempty,gt=0"`
}

func (r *GenerateRequest) Normalize() {
	r.Topic = strings.TrimSpace(r.Topic)
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	if r.Count == 0 {
		r.Count = 5
	}
	if r.Difficulty == "" {
		r.Difficulty = "easy"
	}
	if r.AnswerCount == 0 {
		r.AnswerCount = 3
	}
}

type GenerateResponse struct {
	GenerationID   uint                           `json:"generation_id"`
	Classification ClassifyResult                 `json:"classification"`
	Questions      []questionDto.QuestionResponse `json:"questions"`
}

/* =========================================================
   Bentuk JSON yang diminta dari model AI
========================================================= */

type AIClassification struct {
	TypeName string `json:"type_name"`
	IsNew    bool   `json:"is_new"`
	Reason   string `json:"reason"`
}

type AIAnswer struct {
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
}

type AIQuestion struct {
	QuestionText string     `json:"question_text"`
	Emoji        string     `json:"emoji"`
	Explanation  string     `json:"explanation"`
	Answers      []AIAnswer `json:"answers"`
}

type AIQuestionSet struct {
	Questions []AIQuestion `json:"questions"`
}
