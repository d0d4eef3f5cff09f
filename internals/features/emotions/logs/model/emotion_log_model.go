package model

import (
	"time"

	"github.com/google/uuid"
)

// EmotionLogModel: satu check-in emosi anak per sesi.
// uq_emotion_logs_child_date_session menjamin maksimal 1 baris per (anak, tanggal, sesi);
// nama & kelas disimpan sebagai snapshot saat log dibuat.
type EmotionLogModel struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ChildID    uint       `gorm:"column:child_id;not null;uniqueIndex:uq_emotion_logs_child_date_session,priority:1" json:"child_id"`
	ChildName  string     `gorm:"column:child_name;size:120;not null" json:"child_name"`
	ClassName  string     `gorm:"column:class_name;size:60;index:idx_emotion_logs_class_name" json:"class_name"`
	EmotionID  uint       `gorm:"column:emotion_id;not null;index:idx_emotion_logs_emotion_id" json:"emotion_id"`
	LogDate    time.Time  `gorm:"column:log_date;type:date;not null;uniqueIndex:uq_emotion_logs_child_date_session,priority:2;index:idx_emotion_logs_log_date" json:"log_date"`
	Session    string     `gorm:"column:session;size:10;not null;uniqueIndex:uq_emotion_logs_child_date_session,priority:3" json:"session"`
	RecordedBy *uuid.UUID `gorm:"column:recorded_by;type:uuid" json:"recorded_by,omitempty"`
	LoggedAt   time.Time  `gorm:"column:logged_at;autoCreateTime" json:"logged_at"`
}

func (EmotionLogModel) TableName() string { return "emotion_logs" }
