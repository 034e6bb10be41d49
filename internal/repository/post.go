// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"

	"coblog/internal/models"
	"coblog/internal/slug"

	"gorm.io/gorm"
)

// PostFilter narrows a post listing. Nil members are ignored; Search is a
// case-insensitive substring match across title, content and excerpt.
type PostFilter struct {
	CategoryID *uint
	Published  *bool
	Search     string
	Page       int
	Limit      int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, categoryIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetByOwner(ctx context.Context, ownerID string, page, limit int) ([]*models.Post, int64, error)
	List(ctx context.Context, filter PostFilter) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post, categoryIDs []uint, regenSlug bool) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and its category associations in one transaction.
// The slug is derived from the title against a snapshot of existing slugs read
// inside the same transaction, closing the check-then-insert race the naive
// approach has under concurrent creation; a unique violation is retried once
// with a fresh snapshot.
func (r *postRepository) Create(ctx context.Context, post *models.Post, categoryIDs []uint) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			taken, err := takenSlugs(tx, &models.Post{}, 0)
			if err != nil {
				return err
			}
			post.Slug = slug.MakeUnique(post.Title, taken)

			if err := tx.Create(post).Error; err != nil {
				return err
			}
			return replaceCategories(tx, post.ID, categoryIDs)
		})
		if err == nil || !isUniqueViolation(err) {
			return err
		}
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Categories").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, s string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Where("slug = ?", s).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByOwner(ctx context.Context, ownerID string, page, limit int) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := base.Session(&gorm.Session{}).
		Preload("Categories").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// List returns one page of posts matching the filter plus the total match
// count. The category filter joins the association table so the total
// reflects the filtered set, keeping pagination consistent.
func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{})

	if filter.Published != nil {
		base = base.Where("published = ?", *filter.Published)
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where(
			"(LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(COALESCE(excerpt, '')) LIKE ?)",
			like, like, like,
		)
	}
	if filter.CategoryID != nil {
		base = base.
			Joins("JOIN posts_to_categories ptc ON ptc.post_id = posts.id").
			Where("ptc.category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("posts.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := base.Session(&gorm.Session{}).
		Preload("Categories").
		Order("posts.created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Update saves the post and, when categoryIDs is non-nil, replaces its
// associations in the same transaction so readers never observe a post with
// the association rows half-written. With regenSlug the slug is rebuilt from
// the (changed) title against all other posts' slugs.
func (r *postRepository) Update(ctx context.Context, post *models.Post, categoryIDs []uint, regenSlug bool) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if regenSlug {
				taken, err := takenSlugs(tx, &models.Post{}, post.ID)
				if err != nil {
					return err
				}
				post.Slug = slug.MakeUnique(post.Title, taken)
			}
			if err := tx.Omit("Categories").Save(post).Error; err != nil {
				return err
			}
			if categoryIDs != nil {
				return replaceCategories(tx, post.ID, categoryIDs)
			}
			return nil
		})
		if err == nil || !regenSlug || !isUniqueViolation(err) {
			return err
		}
	}
	return err
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The FK cascade covers PostgreSQL; the explicit delete keeps the
		// sqlite test databases consistent too.
		if err := tx.Where("post_id = ?", id).Delete(&models.PostToCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// replaceCategories swaps the association rows for postID wholesale.
func replaceCategories(tx *gorm.DB, postID uint, categoryIDs []uint) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.PostToCategory{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]models.PostToCategory, 0, len(categoryIDs))
	for _, cid := range categoryIDs {
		rows = append(rows, models.PostToCategory{PostID: postID, CategoryID: cid})
	}
	return tx.Create(&rows).Error
}

// takenSlugs reads every slug of the model's table, excluding one id.
func takenSlugs(tx *gorm.DB, model any, excludeID uint) (map[string]struct{}, error) {
	var slugs []string
	q := tx.Model(model)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slug.Set(slugs), nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}
