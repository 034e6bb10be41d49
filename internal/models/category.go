package models

import "time"

// Category represents a post category with an independent lifecycle.
// Deleting a category cascades to its post associations only.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"size:120;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// PostCount is not persisted; computed at query time.
	PostCount int `gorm:"->;-:migration" json:"post_count"`

	// Posts is populated on single-category reads only.
	Posts []*Post `gorm:"many2many:posts_to_categories" json:"posts,omitempty"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}
