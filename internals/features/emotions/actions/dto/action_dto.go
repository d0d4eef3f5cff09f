package dto

import (
	"strings"

	"preschool_backend/internals/features/emotions/actions/model"
)

type CreateActionRequest struct {
	EmotionID uint   `json:"emotion_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,min=1,max=120"`
	Icon      string `json:"icon" validate:"omitempty,max=60"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

func (r *CreateActionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Icon = strings.TrimSpace(r.Icon)
}

func (r *CreateActionRequest) ToModel() model.ActionModel {
	return model.ActionModel{EmotionID: r.EmotionID, Name: r.Name, Icon: r.Icon, SortOrder: r.SortOrder}
}

type UpdateActionRequest struct {
	EmotionID *uint   `json:"emotion_id" validate:"omitempty,gt=0"`
	Name      *string `json:"name" validate:"omitempty,min=1,max=120"`
	Icon      *string `json:"icon" validate:"omitempty,max=60"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

func (r *UpdateActionRequest) ApplyTo(m *model.ActionModel) {
	if r.EmotionID != nil {
		m.EmotionID = *r.EmotionID
	}
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Icon != nil {
		m.Icon = strings.TrimSpace(*r.Icon)
	}
	if r.SortOrder != nil {
		m.SortOrder = *r.SortOrder
	}
}
