package model

import "time"

// EmotionModel: katalog emosi (label unik, gambar wajib, audio opsional)
type EmotionModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"column:label;size:50;not null;uniqueIndex:uq_emotions_label" json:"label"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	ImageURL  string    `gorm:"column:image_url;type:text;not null" json:"image_url"`
	AudioURL  *string   `gorm:"column:audio_url;type:text" json:"audio_url,omitempty"`
	Color     string    `gorm:"column:color;size:20" json:"color"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (EmotionModel) TableName() string { return "emotions" }
