package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChildModel: satu baris roster anak. child_seq diisi admin (nomor urut) dan unik.
type ChildModel struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ChildSeq    int        `gorm:"column:child_seq;not null;uniqueIndex:uq_children_child_seq" json:"child_seq"`
	Name        string     `gorm:"column:name;size:120;not null" json:"name"`
	Gender      string     `gorm:"column:gender;size:10" json:"gender"`
	Age         *int       `gorm:"column:age" json:"age,omitempty"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth;type:date" json:"date_of_birth,omitempty"`
	ClassName   string     `gorm:"column:class_name;size:60;index:idx_children_class_name" json:"class_name"`
	ParentName  string     `gorm:"column:parent_name;size:120" json:"parent_name"`
	Phone       string     `gorm:"column:phone;size:30" json:"phone"`
	Address     string     `gorm:"column:address;type:text" json:"address"`
	AvatarURL   *string    `gorm:"column:avatar_url;type:text" json:"avatar_url,omitempty"`
	QRCode      *string    `gorm:"column:qr_code;type:text" json:"qr_code,omitempty"`
	UserID      *uuid.UUID `gorm:"column:user_id;type:uuid;index:idx_children_user_id" json:"user_id,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (ChildModel) TableName() string { return "children" }
