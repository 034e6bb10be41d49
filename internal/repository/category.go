package repository

import (
	"context"

	"coblog/internal/models"
	"coblog/internal/slug"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category, regenSlug bool) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts the category with a slug derived from its name, unique-slug
// check and insert sharing one transaction.
func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			taken, err := takenSlugs(tx, &models.Category{}, 0)
			if err != nil {
				return err
			}
			category.Slug = slug.MakeUnique(category.Name, taken)
			return tx.Create(category).Error
		})
		if err == nil || !isUniqueViolation(err) {
			return err
		}
	}
	return err
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Select(categoryWithCount).
		Preload("Posts", postsNewestFirst).
		First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, s string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Select(categoryWithCount).
		Preload("Posts", postsNewestFirst).
		Where("slug = ?", s).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns all categories ordered by name with their live post counts.
func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).
		Select(categoryWithCount).
		Order("name").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category, regenSlug bool) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if regenSlug {
				taken, err := takenSlugs(tx, &models.Category{}, category.ID)
				if err != nil {
					return err
				}
				category.Slug = slug.MakeUnique(category.Name, taken)
			}
			return tx.Save(category).Error
		})
		if err == nil || !regenSlug || !isUniqueViolation(err) {
			return err
		}
	}
	return err
}

// Delete removes the category and its post associations; the posts themselves
// are untouched.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.PostToCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}

// categoryWithCount adds the live association count as a SELECT alias.
const categoryWithCount = "categories.*, " +
	"(SELECT COUNT(*) FROM posts_to_categories ptc WHERE ptc.category_id = categories.id) AS post_count"

func postsNewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("posts.created_at DESC")
}
