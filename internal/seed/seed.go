package seed

import (
	"fmt"
	"log"

	"coblog/internal/models"

	"gorm.io/gorm"
)

// Seed populates the database with demo categories and posts.
func Seed(db *gorm.DB, opts Options) error {
	// every post needs an author
	if opts.NumOwners < 1 {
		opts.NumOwners = 1
	}

	log.Printf("Starting database seeding with %d owners and %d posts...", opts.NumOwners, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	fixtures, err := LoadCategoryFixtures()
	if err != nil {
		return fmt.Errorf("load category fixtures: %w", err)
	}

	categories := make([]*models.Category, 0, len(fixtures))
	for _, fixture := range fixtures {
		category, err := factory.CreateCategory(fixture)
		if err != nil {
			return fmt.Errorf("create category %q: %w", fixture.Name, err)
		}
		categories = append(categories, category)
	}
	log.Printf("%d categories created", len(categories))

	owners := factory.CreateOwners(opts.NumOwners)
	log.Printf("%d owner ids generated", len(owners))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		posts = append(posts, factory.BuildPost(owners[i%len(owners)]))
	}
	if err := factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	for _, post := range posts {
		if err := factory.AssignCategories(post, categories); err != nil {
			return fmt.Errorf("assign categories to post %d: %w", post.ID, err)
		}
	}

	log.Println("Seeding complete")
	return nil
}

// clearData removes previously seeded rows, association rows first.
func clearData(db *gorm.DB) error {
	if err := db.Where("1 = 1").Delete(&models.PostToCategory{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
		return err
	}
	return db.Where("1 = 1").Delete(&models.Category{}).Error
}
