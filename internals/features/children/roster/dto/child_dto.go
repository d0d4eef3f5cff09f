package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"preschool_backend/internals/features/children/roster/model"
	"preschool_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST
========================================================= */

// ChildUpsertRequest: satu baris roster (JSON bulk atau hasil parse Excel)
type ChildUpsertRequest struct {
	ChildSeq    int    `json:"child_seq" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,max=120"`
	Gender      string `json:"gender" validate:"omitempty,max=10"`
	Age         *int   `json:"age" validate:"omitempty,gte=0,lte=12"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	ClassName   string `json:"class_name" validate:"omitempty,max=60"`
	ParentName  string `json:"parent_name" validate:"omitempty,max=120"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Address     string `json:"address" validate:"omitempty,max=500"`
}

func (r *ChildUpsertRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = NormalizeGender(r.Gender)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.ClassName = strings.TrimSpace(r.ClassName)
	r.ParentName = strings.TrimSpace(r.ParentName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
}

// ToModel: DOB sudah tervalidasi format YYYY-MM-DD
func (r *ChildUpsertRequest) ToModel(owner *uuid.UUID) model.ChildModel {
	m := model.ChildModel{
		ChildSeq:   r.ChildSeq,
		Name:       r.Name,
		Gender:     r.Gender,
		Age:        r.Age,
		ClassName:  r.ClassName,
		ParentName: r.ParentName,
		Phone:      r.Phone,
		Address:    r.Address,
		UserID:     owner,
	}
	if r.DateOfBirth != "" {
		if dob, err := dbtime.ParseDate(r.DateOfBirth); err == nil {
			m.DateOfBirth = &dob
			if m.Age == nil {
				age := AgeOn(dob, dbtime.Today())
				m.Age = &age
			}
		}
	}
	return m
}

// BulkUpsertRequest: {"children":[...]} (array polos juga diterima controller)
type BulkUpsertRequest struct {
	Children []ChildUpsertRequest `json:"children" validate:"required,min=1,max=1000,dive"`
}

// UpdateChildRequest: partial update (PUT /children/:id)
type UpdateChildRequest struct {
	ChildSeq    *int    `json:"child_seq" validate:"omitempty,gt=0"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Gender      *string `json:"gender" validate:"omitempty,max=10"`
	Age         *int    `json:"age" validate:"omitempty,gte=0,lte=12"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	ClassName   *string `json:"class_name" validate:"omitempty,max=60"`
	ParentName  *string `json:"parent_name" validate:"omitempty,max=120"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

func (r *UpdateChildRequest) ApplyTo(m *model.ChildModel) {
	if r.ChildSeq != nil {
		m.ChildSeq = *r.ChildSeq
	}
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Gender != nil {
		m.Gender = NormalizeGender(*r.Gender)
	}
	if r.Age != nil {
		m.Age = r.Age
	}
	if r.DateOfBirth != nil {
		if dob, err := dbtime.ParseDate(*r.DateOfBirth); err == nil {
			m.DateOfBirth = &dob
		}
	}
	if r.ClassName != nil {
		m.ClassName = strings.TrimSpace(*r.ClassName)
	}
	if r.ParentName != nil {
		m.ParentName = strings.TrimSpace(*r.ParentName)
	}
	if r.Phone != nil {
		m.Phone = strings.TrimSpace(*r.Phone)
	}
	if r.Address != nil {
		m.Address = strings.TrimSpace(*r.Address)
	}
}

/* =========================================================
   RESPONSE
========================================================= */

type ChildResponse struct {
	ID          uint       `json:"id"`
	ChildSeq    int        `json:"child_seq"`
	Name        string     `json:"name"`
	Gender      string     `json:"gender"`
	Age         *int       `json:"age,omitempty"`
	DateOfBirth string     `json:"date_of_birth,omitempty"`
	ClassName   string     `json:"class_name"`
	ParentName  string     `json:"parent_name"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	QRCode      *string    `json:"qr_code,omitempty"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromModel(m model.ChildModel) ChildResponse {
	out := ChildResponse{
		ID:         m.ID,
		ChildSeq:   m.ChildSeq,
		Name:       m.Name,
		Gender:     m.Gender,
		Age:        m.Age,
		ClassName:  m.ClassName,
		ParentName: m.ParentName,
		Phone:      m.Phone,
		Address:    m.Address,
		AvatarURL:  m.AvatarURL,
		QRCode:     m.QRCode,
		UserID:     m.UserID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.DateOfBirth != nil {
		out.DateOfBirth = dbtime.FormatDate(*m.DateOfBirth)
	}
	return out
}

func FromModels(list []model.ChildModel) []ChildResponse {
	out := make([]ChildResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// KioskChildResponse: profil ringkas untuk halaman sapaan (tanpa kontak orang tua)
type KioskChildResponse struct {
	ID        uint    `json:"id"`
	ChildSeq  int     `json:"child_seq"`
	Name      string  `json:"name"`
	Gender    string  `json:"gender"`
	Age       *int    `json:"age,omitempty"`
	ClassName string  `json:"class_name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func ToKiosk(m model.ChildModel) KioskChildResponse {
	return KioskChildResponse{
		ID:        m.ID,
		ChildSeq:  m.ChildSeq,
		Name:      m.Name,
		Gender:    m.Gender,
		Age:       m.Age,
		ClassName: m.ClassName,
		AvatarURL: m.AvatarURL,
	}
}

/* =========================================================
   Helpers
========================================================= */

// NormalizeGender: "Nam"/"M"/"boy" → male, "Nữ"/"F"/"girl" → female, lainnya apa adanya
func NormalizeGender(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "m", "male", "boy", "nam", "l", "laki-laki":
		return "male"
	case "f", "female", "girl", "nữ", "nu", "p", "perempuan":
		return "female"
	}
	return v
}

// AgeOn: umur dalam tahun penuh pada tanggal ref
func AgeOn(dob, ref time.Time) int {
	age := ref.Year() - dob.Year()
	if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
