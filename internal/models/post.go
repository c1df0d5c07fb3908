// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog post. The slug is fixed at creation and is
// the stable lookup key for the post; Date is the human-facing
// publication date string ("January 02, 2006").
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"author"`
	Title     string         `gorm:"unique;not null" json:"title"`
	Subtitle  string         `gorm:"not null" json:"subtitle"`
	Date      string         `gorm:"not null" json:"date"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
