package dto

import (
	"bytes"
	"strings"
	"time"

	"github.com/google/uuid"

	"preschool_backend/internals/features/emotions/logs/model"
	"preschool_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST
========================================================= */

// LogItem: satu submission. "emotion" diterima sebagai alias emotion_label.
type LogItem struct {
	ChildID      uint   `json:"child_id" validate:"required,gt=0"`
	ChildName    string `json:"child_name" validate:"omitempty,max=120"`
	ClassName    string `json:"class_name" validate:"omitempty,max=60"`
	EmotionLabel string `json:"emotion_label" validate:"required,max=50"`
	Emotion      string `json:"emotion,omitempty" validate:"-"`
	Date         string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (it *LogItem) Normalize() {
	it.EmotionLabel = strings.TrimSpace(it.EmotionLabel)
	if it.EmotionLabel == "" {
		it.EmotionLabel = strings.TrimSpace(it.Emotion)
	}
	it.Emotion = ""
	it.ChildName = strings.TrimSpace(it.ChildName)
	it.ClassName = strings.TrimSpace(it.ClassName)
	it.Date = strings.TrimSpace(it.Date)
}

// LogDate: tanggal submission; kosong = hari ini (timezone sekolah)
func (it *LogItem) LogDate() time.Time {
	if it.Date == "" {
		return dbtime.Today()
	}
	d, err := dbtime.ParseDate(it.Date)
	if err != nil {
		return dbtime.Today()
	}
	return d
}

type SubmitRequest struct {
	Logs []LogItem `json:"logs" validate:"required,min=1,max=100,dive"`
}

func (r *SubmitRequest) Normalize() {
	for i := range r.Logs {
		r.Logs[i].Normalize()
	}
}

// ParseSubmitBody menerima {"logs":[...]}, array polos, atau satu objek.
func ParseSubmitBody(body []byte, decode func([]byte, any) error) (SubmitRequest, error) {
	var req SubmitRequest
	body = bytes.TrimSpace(body)

	if len(body) > 0 && body[0] == '[' {
		err := decode(body, &req.Logs)
		return req, err
	}
	if err := decode(body, &req); err != nil {
		return req, err
	}
	if len(req.Logs) == 0 {
		var one LogItem
		if err := decode(body, &one); err != nil {
			return req, err
		}
		if one.ChildID != 0 || one.EmotionLabel != "" || one.Emotion != "" {
			req.Logs = []LogItem{one}
		}
	}
	return req, nil
}

/* =========================================================
   RESPONSE
========================================================= */

type EmotionLogResponse struct {
	ID           uint       `json:"id"`
	ChildID      uint       `json:"child_id"`
	ChildName    string     `json:"child_name"`
	ClassName    string     `json:"class_name"`
	EmotionID    uint       `json:"emotion_id"`
	EmotionLabel string     `json:"emotion_label,omitempty"`
	Date         string     `json:"date"`
	Session      string     `json:"session"`
	RecordedBy   *uuid.UUID `json:"recorded_by,omitempty"`
	LoggedAt     time.Time  `json:"logged_at"`
}

// FromModel; labels opsional (emotion_id → label)
func FromModel(m model.EmotionLogModel, labels map[uint]string) EmotionLogResponse {
	return EmotionLogResponse{
		ID:           m.ID,
		ChildID:      m.ChildID,
		ChildName:    m.ChildName,
		ClassName:    m.ClassName,
		EmotionID:    m.EmotionID,
		EmotionLabel: labels[m.EmotionID],
		Date:         dbtime.FormatDate(m.LogDate),
		Session:      m.Session,
		RecordedBy:   m.RecordedBy,
		LoggedAt:     m.LoggedAt,
	}
}

func FromModels(list []model.EmotionLogModel, labels map[uint]string) []EmotionLogResponse {
	out := make([]EmotionLogResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m, labels))
	}
	return out
}

// DayStateResponse: posisi anak di state machine harian
// none → morning → afternoon (terminal)
type DayStateResponse struct {
	ChildID     uint                 `json:"child_id"`
	Date        string               `json:"date"`
	Count       int                  `json:"count"`
	State       string               `json:"state"`
	NextSession *string              `json:"next_session"`
	Logs        []EmotionLogResponse `json:"logs"`
}

// SummaryRow: rekap per emosi untuk satu tanggal
type SummaryRow struct {
	EmotionID uint   `json:"emotion_id"`
	Label     string `json:"label"`
	Color     string `json:"color"`
	Morning   int64  `json:"morning"`
	Afternoon int64  `json:"afternoon"`
	Total     int64  `json:"total"`
}

type SummaryResponse struct {
	Date      string       `json:"date"`
	ClassName string       `json:"class_name,omitempty"`
	Children  int64        `json:"children"`
	Emotions  []SummaryRow `json:"emotions"`
}
