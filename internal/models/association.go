package models

// PostToCategory is the many-to-many association row between posts and
// categories. Rows are replaced wholesale when a post's category list
// changes; they have no independent lifecycle.
type PostToCategory struct {
	PostID     uint `gorm:"primaryKey" json:"post_id"`
	CategoryID uint `gorm:"primaryKey" json:"category_id"`
}

// TableName specifies the table name for GORM.
func (PostToCategory) TableName() string {
	return "posts_to_categories"
}
