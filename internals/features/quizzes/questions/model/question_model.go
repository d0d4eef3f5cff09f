package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceManual = "manual"
	SourceAI     = "ai"
)

// QuestionTypeModel: kategori soal (dipakai juga oleh classifier AI)
type QuestionTypeModel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:name;size:100;not null;uniqueIndex:uq_question_types_name" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (QuestionTypeModel) TableName() string { return "question_types" }

// QuestionModel; correct_answer_id menunjuk salah satu answers milik soal ini
type QuestionModel struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	QuestionText    string        `gorm:"column:question_text;type:text;not null" json:"question_text"`
	Emoji           string        `gorm:"column:emoji;size:16" json:"emoji"`
	Explanation     string        `gorm:"column:explanation;type:text" json:"explanation"`
	Difficulty      string        `gorm:"column:difficulty;size:10" json:"difficulty,omitempty"`
	Source          string        `gorm:"column:source;size:10;not null;default:'manual'" json:"source"`
	UserID          *uuid.UUID    `gorm:"column:user_id;type:uuid;index:idx_questions_user_id" json:"user_id,omitempty"`
	TypeID          uint          `gorm:"column:type_id;not null;index:idx_questions_type_id" json:"type_id"`
	CorrectAnswerID *uint         `gorm:"column:correct_answer_id" json:"correct_answer_id,omitempty"`
	Answers         []AnswerModel `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
	CreatedAt       time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (QuestionModel) TableName() string { return "questions" }

type AnswerModel struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"column:question_id;not null;index:idx_answers_question_id" json:"question_id"`
	AnswerText string `gorm:"column:answer_text;type:text;not null" json:"answer_text"`
	IsCorrect  bool   `gorm:"column:is_correct;not null;default:false" json:"is_correct"`
	SortOrder  int    `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
}

func (AnswerModel) TableName() string { return "answers" }
