package model

import "time"

// ActionModel: saran aktivitas setelah anak memilih emosi
type ActionModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EmotionID uint      `gorm:"column:emotion_id;not null;index:idx_actions_emotion_id" json:"emotion_id"`
	Name      string    `gorm:"column:name;size:120;not null" json:"name"`
	Icon      string    `gorm:"column:icon;size:60" json:"icon"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ActionModel) TableName() string { return "actions" }
