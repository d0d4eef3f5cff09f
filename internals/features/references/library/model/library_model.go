package model

import "time"

// TierModel: level bacaan berdasarkan poin
type TierModel struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"column:name;size:60;not null;uniqueIndex:uq_tiers_name" json:"name"`
	MinPoints   int         `gorm:"column:min_points;not null;default:0" json:"min_points"`
	Description string      `gorm:"column:description;type:text" json:"description"`
	Books       []BookModel `gorm:"foreignKey:TierID" json:"books,omitempty"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TierModel) TableName() string { return "tiers" }

type BookModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"column:title;size:200;not null" json:"title"`
	Author    string    `gorm:"column:author;size:120" json:"author"`
	CoverURL  string    `gorm:"column:cover_url;type:text" json:"cover_url"`
	TierID    uint      `gorm:"column:tier_id;not null;index:idx_books_tier_id" json:"tier_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BookModel) TableName() string { return "books" }
