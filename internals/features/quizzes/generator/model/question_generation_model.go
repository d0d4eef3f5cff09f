package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuestionGenerationModel: jejak audit tiap pemanggilan generator AI
type QuestionGenerationModel struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        *uuid.UUID     `gorm:"column:user_id;type:uuid;index:idx_question_generations_user_id" json:"user_id,omitempty"`
	Topic         string         `gorm:"column:topic;type:text;not null" json:"topic"`
	TypeID        *uint          `gorm:"column:type_id" json:"type_id,omitempty"`
	Model         string         `gorm:"column:model;size:100" json:"model"`
	Request       datatypes.JSON `gorm:"column:request" json:"request"`
	Response      datatypes.JSON `gorm:"column:response" json:"response"`
	QuestionCount int            `gorm:"column:question_count;not null;default:0" json:"question_count"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (QuestionGenerationModel) TableName() string { return "question_generations" }
