package repository

import (
	"context"
	"fmt"
	"testing"

	"coblog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Post{},
		&models.Category{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

const testOwner = "6f1b2a3c-4d5e-4f60-8a9b-0c1d2e3f4a5b"
const otherOwner = "0a1b2c3d-4e5f-4a6b-8c9d-0e1f2a3b4c5d"

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	repo := NewCategoryRepository(db)
	category := &models.Category{Name: name}
	require.NoError(t, repo.Create(context.Background(), category))
	return category
}

func TestPostRepositoryCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	category := createTestCategory(t, db, "Technology")

	post := &models.Post{
		Title:   "My First Post",
		Content: "Hello world",
		OwnerID: testOwner,
	}
	require.NoError(t, repo.Create(ctx, post, []uint{category.ID}))

	assert.NotZero(t, post.ID)
	assert.Equal(t, "my-first-post", post.Slug)

	found, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "My First Post", found.Title)
	require.Len(t, found.Categories, 1)
	assert.Equal(t, "Technology", found.Categories[0].Name)
}

func TestPostRepositoryCreateSlugCollision(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	first := &models.Post{Title: "Same Title", Content: "a", OwnerID: testOwner}
	require.NoError(t, repo.Create(ctx, first, nil))
	second := &models.Post{Title: "Same Title", Content: "b", OwnerID: testOwner}
	require.NoError(t, repo.Create(ctx, second, nil))
	third := &models.Post{Title: "Same Title!", Content: "c", OwnerID: otherOwner}
	require.NoError(t, repo.Create(ctx, third, nil))

	assert.Equal(t, "same-title", first.Slug)
	assert.Equal(t, "same-title-1", second.Slug)
	assert.Equal(t, "same-title-2", third.Slug)
}

func TestPostRepositoryGetBySlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "Find Me", Content: "x", OwnerID: testOwner}
	require.NoError(t, repo.Create(ctx, post, nil))

	found, err := repo.GetBySlug(ctx, "find-me")
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)

	_, err = repo.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepositoryList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		post := &models.Post{
			Title:     fmt.Sprintf("Post %d", i),
			Content:   "content",
			Published: i%2 == 0,
			OwnerID:   testOwner,
		}
		require.NoError(t, repo.Create(ctx, post, nil))
	}

	posts, total, err := repo.List(ctx, PostFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	assert.Len(t, posts, 10)

	posts, total, err = repo.List(ctx, PostFilter{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	assert.Len(t, posts, 5)

	published := true
	posts, total, err = repo.List(ctx, PostFilter{Published: &published, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 8, total)
	assert.Len(t, posts, 8)
	for _, p := range posts {
		assert.True(t, p.Published)
	}
}

func TestPostRepositoryListSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Post{
		Title: "Gardening Tips", Content: "soil and water", OwnerID: testOwner,
	}, nil))
	require.NoError(t, repo.Create(ctx, &models.Post{
		Title: "Cooking Basics", Content: "GARDEN vegetables", OwnerID: testOwner,
	}, nil))
	require.NoError(t, repo.Create(ctx, &models.Post{
		Title: "Unrelated", Content: "nothing here", Excerpt: "a garden story", OwnerID: testOwner,
	}, nil))
	require.NoError(t, repo.Create(ctx, &models.Post{
		Title: "Also Unrelated", Content: "nope", OwnerID: testOwner,
	}, nil))

	// case-insensitive across title, content and excerpt
	posts, total, err := repo.List(ctx, PostFilter{Search: "garden", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, posts, 3)
}

func TestPostRepositoryListByCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tech := createTestCategory(t, db, "Technology")
	food := createTestCategory(t, db, "Food")

	for i := 0; i < 5; i++ {
		post := &models.Post{Title: fmt.Sprintf("Tech %d", i), Content: "x", OwnerID: testOwner}
		require.NoError(t, repo.Create(ctx, post, []uint{tech.ID}))
	}
	for i := 0; i < 3; i++ {
		post := &models.Post{Title: fmt.Sprintf("Food %d", i), Content: "x", OwnerID: testOwner}
		require.NoError(t, repo.Create(ctx, post, []uint{food.ID}))
	}
	both := &models.Post{Title: "Tech Food Crossover", Content: "x", OwnerID: testOwner}
	require.NoError(t, repo.Create(ctx, both, []uint{tech.ID, food.ID}))

	// total reflects the filtered set, not the whole table
	posts, total, err := repo.List(ctx, PostFilter{CategoryID: &tech.ID, Page: 1, Limit: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	assert.Len(t, posts, 4)

	posts, total, err = repo.List(ctx, PostFilter{CategoryID: &food.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, posts, 4)
}

func TestPostRepositoryGetByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.Post{
			Title: fmt.Sprintf("Mine %d", i), Content: "x", Published: i == 0, OwnerID: testOwner,
		}, nil))
	}
	require.NoError(t, repo.Create(ctx, &models.Post{
		Title: "Not Mine", Content: "x", OwnerID: otherOwner,
	}, nil))

	// drafts included
	posts, total, err := repo.GetByOwner(ctx, testOwner, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, posts, 3)
}

func TestPostRepositoryUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tech := createTestCategory(t, db, "Technology")
	food := createTestCategory(t, db, "Food")

	post := &models.Post{Title: "Original", Content: "x", OwnerID: testOwner}
	require.NoError(t, repo.Create(ctx, post, []uint{tech.ID}))
	originalSlug := post.Slug

	// content-only update keeps the slug
	post.Content = "updated content"
	require.NoError(t, repo.Update(ctx, post, nil, false))
	found, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, originalSlug, found.Slug)
	assert.Equal(t, "updated content", found.Content)
	require.Len(t, found.Categories, 1)

	// title change regenerates the slug
	post.Title = "Renamed Post"
	require.NoError(t, repo.Update(ctx, post, nil, true))
	found, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed-post", found.Slug)

	// non-nil categoryIDs replaces associations wholesale
	require.NoError(t, repo.Update(ctx, post, []uint{food.ID}, false))
	found, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, found.Categories, 1)
	assert.Equal(t, "Food", found.Categories[0].Name)

	// empty non-nil slice clears them
	require.NoError(t, repo.Update(ctx, post, []uint{}, false))
	found, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Categories)
}

func TestPostRepositoryUpdateSlugKeepsOwnSlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "Stable Title", Content: "x", OwnerID: testOwner}
	require.NoError(t, repo.Create(ctx, post, nil))

	// regenerating against an unchanged title must not append a suffix;
	// the post's own slug is excluded from the taken set
	require.NoError(t, repo.Update(ctx, post, nil, true))
	assert.Equal(t, "stable-title", post.Slug)
}

func TestPostRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tech := createTestCategory(t, db, "Technology")
	post := &models.Post{Title: "Doomed", Content: "x", OwnerID: testOwner}
	require.NoError(t, repo.Create(ctx, post, []uint{tech.ID}))

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// association rows go with the post
	var count int64
	require.NoError(t, db.Model(&models.PostToCategory{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)

	// the category itself survives
	_, err = NewCategoryRepository(db).GetByID(ctx, tech.ID)
	assert.NoError(t, err)
}
