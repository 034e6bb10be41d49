package service

import (
	"context"
	"errors"
	"strings"

	"coblog/internal/cache"
	"coblog/internal/models"
	"coblog/internal/repository"

	"gorm.io/gorm"
)

const maxCategoryNameLen = 100

// CategoryService implements the category.* procedures.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput carries the category.create payload.
type CreateCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateCategoryInput carries the category.update payload; nil fields are untouched.
type UpdateCategoryInput struct {
	ID          uint    `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListCategories returns all categories ordered by name with live post counts.
func (s *CategoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := cache.Aside(ctx, cache.CategoriesKey(), &categories, cache.CategoriesTTL, func() error {
		var fetchErr error
		categories, fetchErr = s.categoryRepo.List(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return categories, nil
}

// GetCategoryByID returns the category with its posts, newest first.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, err
	}
	return category, nil
}

// GetCategoryBySlug returns the category with its posts, newest first.
func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slugValue string) (*models.Category, error) {
	if strings.TrimSpace(slugValue) == "" {
		return nil, models.NewValidationError("Slug is required")
	}
	category, err := s.categoryRepo.GetBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", slugValue)
		}
		return nil, err
	}
	return category, nil
}

// CreateCategory validates the name and stores the category with a unique slug.
func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxCategoryNameLen {
		return nil, models.NewValidationError("Name too long (max 100 characters)")
	}

	category := &models.Category{
		Name:        name,
		Description: in.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	cache.InvalidateCategories(ctx)
	return category, nil
}

// UpdateCategory applies the provided fields; the slug is regenerated only
// when the name actually changes.
func (s *CategoryService) UpdateCategory(ctx context.Context, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", in.ID)
		}
		return nil, err
	}
	category.Posts = nil

	regenSlug := false
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Name must not be empty")
		}
		if len(name) > maxCategoryNameLen {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		if name != category.Name {
			category.Name = name
			regenSlug = true
		}
	}
	if in.Description != nil {
		category.Description = *in.Description
	}

	if err := s.categoryRepo.Update(ctx, category, regenSlug); err != nil {
		return nil, err
	}

	cache.InvalidateCategories(ctx)
	return category, nil
}

// DeleteCategory removes the category; its post associations cascade, the
// posts themselves stay.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Category", id)
		}
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCategories(ctx)
	return nil
}
