package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	uModel "preschool_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateUserRequest: akun admin/guru dibuat oleh admin
type CreateUserRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin teacher"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (r *CreateUserRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Role = strings.TrimSpace(strings.ToLower(r.Role))
}

// ToModel: password sudah di-hash oleh caller
func (r *CreateUserRequest) ToModel(passwordHash string) *uModel.UserModel {
	m := &uModel.UserModel{
		UserName: r.UserName,
		Email:    r.Email,
		Password: &passwordHash,
		Role:     r.Role,
		IsActive: true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

// UpdateUserRequest: partial update
type UpdateUserRequest struct {
	UserName *string `json:"user_name,omitempty" validate:"omitempty,min=3,max=50"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin teacher"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) ToUpdates() map[string]any {
	updates := map[string]any{}
	if r.UserName != nil {
		updates["user_name"] = strings.TrimSpace(*r.UserName)
	}
	if r.Role != nil {
		updates["role"] = strings.TrimSpace(*r.Role)
	}
	if r.IsActive != nil {
		updates["is_active"] = *r.IsActive
	}
	return updates
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	HasGoogle bool      `json:"has_google"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModel(m uModel.UserModel) UserResponse {
	return UserResponse{
		ID:        m.ID,
		UserName:  m.UserName,
		Email:     m.Email,
		Role:      m.Role,
		IsActive:  m.IsActive,
		HasGoogle: m.GoogleID != nil && *m.GoogleID != "",
		CreatedAt: m.CreatedAt,
	}
}

func FromModels(list []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
