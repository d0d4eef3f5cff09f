package dto

import (
	"strings"
	"time"

	"preschool_backend/internals/features/emotions/catalog/model"
)

// CreateEmotionRequest: JSON atau multipart (field file: image, audio)
type CreateEmotionRequest struct {
	Label    string `json:"label" form:"label" validate:"required,min=1,max=50"`
	Message  string `json:"message" form:"message" validate:"omitempty,max=1000"`
	ImageURL string `json:"image_url" form:"image_url" validate:"omitempty,max=2000"`
	AudioURL string `json:"audio_url" form:"audio_url" validate:"omitempty,max=2000"`
	Color    string `json:"color" form:"color" validate:"omitempty,iscolor"`
}

func (r *CreateEmotionRequest) Normalize() {
	r.Label = strings.TrimSpace(r.Label)
	r.Message = strings.TrimSpace(r.Message)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.AudioURL = strings.TrimSpace(r.AudioURL)
	r.Color = strings.TrimSpace(r.Color)
}

func (r *CreateEmotionRequest) ToModel() model.EmotionModel {
	m := model.EmotionModel{
		Label:    r.Label,
		Message:  r.Message,
		ImageURL: r.ImageURL,
		Color:    r.Color,
	}
	if r.AudioURL != "" {
		a := r.AudioURL
		m.AudioURL = &a
	}
	return m
}

// UpdateEmotionRequest: partial; remove_audio=true mengosongkan audio
type UpdateEmotionRequest struct {
	Label       *string `json:"label" form:"label" validate:"omitempty,min=1,max=50"`
	Message     *string `json:"message" form:"message" validate:"omitempty,max=1000"`
	ImageURL    *string `json:"image_url" form:"image_url" validate:"omitempty,max=2000"`
	AudioURL    *string `json:"audio_url" form:"audio_url" validate:"omitempty,max=2000"`
	Color       *string `json:"color" form:"color" validate:"omitempty,iscolor"`
	RemoveAudio bool    `json:"remove_audio" form:"remove_audio"`
}

type EmotionResponse struct {
	ID        uint      `json:"id"`
	Label     string    `json:"label"`
	Message   string    `json:"message"`
	ImageURL  string    `json:"image_url"`
	AudioURL  *string   `json:"audio_url,omitempty"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m model.EmotionModel) EmotionResponse {
	return EmotionResponse{
		ID:        m.ID,
		Label:     m.Label,
		Message:   m.Message,
		ImageURL:  m.ImageURL,
		AudioURL:  m.AudioURL,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(list []model.EmotionModel) []EmotionResponse {
	out := make([]EmotionResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
