package seed

import (
	"testing"

	"coblog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Post{}, &models.Category{}))
	return db
}

func TestSeedPersistsCategoriesAndPosts(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Seed(db, Options{NumOwners: 2, NumPosts: 5}))

	var posts, categories, links int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.PostToCategory{}).Count(&links).Error)

	assert.EqualValues(t, 5, posts)
	assert.NotZero(t, categories)
	// every post is linked to at least one category
	assert.GreaterOrEqual(t, links, posts)
}

func TestSeedDefaultsToOneOwner(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Seed(db, Options{NumOwners: 0, NumPosts: 3}))

	var owners []string
	require.NoError(t, db.Model(&models.Post{}).Distinct("owner_id").Pluck("owner_id", &owners).Error)
	require.Len(t, owners, 1)
	assert.NotEmpty(t, owners[0])
}

func TestSeedDryRunWritesNothing(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Seed(db, Options{NumOwners: 0, NumPosts: 2, DryRun: true}))

	var posts, categories int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	assert.Zero(t, posts)
	assert.Zero(t, categories)
}
