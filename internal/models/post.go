// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a blog post. Content holds either a serialized rich-text
// document tree or legacy plain text/markdown; richtext.IsDocument decides
// which at the boundary.
type Post struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Slug          string     `gorm:"size:220;not null;uniqueIndex" json:"slug"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Excerpt       string     `gorm:"type:text" json:"excerpt,omitempty"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Published     bool       `gorm:"not null;default:false;index" json:"published"`
	OwnerID       string     `gorm:"size:36;not null;index" json:"owner_id"`
	Categories    []Category `gorm:"many2many:posts_to_categories;constraint:OnDelete:CASCADE" json:"categories"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// WordCount and ReadingTime are not persisted; computed from Content on reads.
	WordCount   int    `gorm:"-" json:"word_count,omitempty"`
	ReadingTime string `gorm:"-" json:"reading_time,omitempty"`
}

// Pagination describes the page window of a list result.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PostPage is a page of posts plus its pagination metadata.
type PostPage struct {
	Posts      []*Post    `json:"posts"`
	Pagination Pagination `json:"pagination"`
}
