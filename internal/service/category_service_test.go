package service

import (
	"context"
	"strings"
	"testing"

	"coblog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	createFn    func(context.Context, *models.Category) error
	getByIDFn   func(context.Context, uint) (*models.Category, error)
	getBySlugFn func(context.Context, string) (*models.Category, error)
	listFn      func(context.Context) ([]*models.Category, error)
	updateFn    func(context.Context, *models.Category, bool) error
	deleteFn    func(context.Context, uint) error
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) List(ctx context.Context) ([]*models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category, regenSlug bool) error {
	return s.updateFn(ctx, category, regenSlug)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn: func(_ context.Context, _ *models.Category) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Category, error) {
			return &models.Category{}, nil
		},
		getBySlugFn: func(_ context.Context, _ string) (*models.Category, error) {
			return &models.Category{}, nil
		},
		listFn:   func(_ context.Context) ([]*models.Category, error) { return nil, nil },
		updateFn: func(_ context.Context, _ *models.Category, _ bool) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func TestListCategoriesEmptyIsNotNil(t *testing.T) {
	svc := NewCategoryService(noopCategoryRepo())

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}

func TestCreateCategoryValidation(t *testing.T) {
	svc := NewCategoryService(noopCategoryRepo())
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "   "})
	assertAppError(t, err, "VALIDATION_ERROR")

	_, err = svc.CreateCategory(ctx, CreateCategoryInput{Name: strings.Repeat("a", 101)})
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestCreateCategoryTrimsName(t *testing.T) {
	repo := noopCategoryRepo()
	repo.createFn = func(_ context.Context, category *models.Category) error {
		assert.Equal(t, "Technology", category.Name)
		category.ID = 1
		return nil
	}
	svc := NewCategoryService(repo)

	category, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "  Technology  "})
	require.NoError(t, err)
	assert.EqualValues(t, 1, category.ID)
}

func TestGetCategoryNotFound(t *testing.T) {
	repo := noopCategoryRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Category, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.getBySlugFn = func(_ context.Context, _ string) (*models.Category, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewCategoryService(repo)
	ctx := context.Background()

	_, err := svc.GetCategoryByID(ctx, 42)
	assertAppError(t, err, "NOT_FOUND")

	_, err = svc.GetCategoryBySlug(ctx, "missing")
	assertAppError(t, err, "NOT_FOUND")
}

func TestUpdateCategoryRegeneratesSlugOnlyOnRename(t *testing.T) {
	repo := noopCategoryRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Category, error) {
		return &models.Category{ID: 1, Name: "Books", Slug: "books"}, nil
	}
	var gotRegen bool
	repo.updateFn = func(_ context.Context, _ *models.Category, regenSlug bool) error {
		gotRegen = regenSlug
		return nil
	}
	svc := NewCategoryService(repo)
	ctx := context.Background()

	desc := "reading notes"
	_, err := svc.UpdateCategory(ctx, UpdateCategoryInput{ID: 1, Description: &desc})
	require.NoError(t, err)
	assert.False(t, gotRegen)

	same := "Books"
	_, err = svc.UpdateCategory(ctx, UpdateCategoryInput{ID: 1, Name: &same})
	require.NoError(t, err)
	assert.False(t, gotRegen)

	renamed := "Literature"
	_, err = svc.UpdateCategory(ctx, UpdateCategoryInput{ID: 1, Name: &renamed})
	require.NoError(t, err)
	assert.True(t, gotRegen)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	repo := noopCategoryRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Category, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewCategoryService(repo)

	err := svc.DeleteCategory(context.Background(), 42)
	assertAppError(t, err, "NOT_FOUND")
}

func TestDeleteCategory(t *testing.T) {
	repo := noopCategoryRepo()
	deleted := uint(0)
	repo.deleteFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}
	svc := NewCategoryService(repo)

	require.NoError(t, svc.DeleteCategory(context.Background(), 9))
	assert.EqualValues(t, 9, deleted)
}
