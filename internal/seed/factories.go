// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"coblog/internal/models"
	"coblog/internal/richtext"
	"coblog/internal/slug"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumOwners   int
	NumPosts    int
	ShouldClean bool
	// DryRun builds entities without persisting them.
	DryRun bool
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
	taken  map[string]struct{}
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000, taken: map[string]struct{}{}}
}

// CreateOwners generates owner UUIDs for pseudo-ownership. Owners are not
// stored anywhere; they exist only as the owner_id value on posts.
func (f *Factory) CreateOwners(n int) []string {
	owners := make([]string, 0, n)
	for i := 0; i < n; i++ {
		owners = append(owners, uuid.NewString())
	}
	return owners
}

// CreateCategory persists a category built from a fixture definition.
// Optional override functions may modify the category before saving.
func (f *Factory) CreateCategory(fixture CategoryFixture, overrides ...func(*models.Category)) (*models.Category, error) {
	category := &models.Category{
		Name:        fixture.Name,
		Description: fixture.Description,
	}
	category.Slug = f.claimSlug(category.Name)

	for _, override := range overrides {
		override(category)
	}

	if f.opts.DryRun {
		f.nextID++
		category.ID = f.nextID
		log.Printf("[dry-run] CreateCategory: %q", category.Name)
		return category, nil
	}

	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// BuildPost constructs a post for the given owner without persisting it.
// Useful for batching. Content is a rich-text document built from generated
// paragraphs; roughly a third of posts stay drafts.
func (f *Factory) BuildPost(ownerID string, overrides ...func(*models.Post)) *models.Post {
	paragraphs := make([]string, 0, 4)
	for i := 0; i < 2+rand.Intn(3); i++ {
		paragraphs = append(paragraphs, gofakeit.Paragraph(1, 3, 12, " "))
	}
	plain := strings.Join(paragraphs, "\n\n")

	post := &models.Post{
		Title:     strings.TrimSuffix(gofakeit.Sentence(5), "."),
		Content:   richtext.FromPlainText(plain),
		Excerpt:   richtext.Excerpt(plain, 160),
		Published: rand.Intn(3) > 0,
		OwnerID:   ownerID,
	}
	post.Slug = f.claimSlug(post.Title)

	if rand.Intn(2) == 0 {
		post.FeaturedImage = fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID())
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := rand.Intn(maxDays)
	hoursBack := rand.Intn(24)
	minsBack := rand.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample post for the given owner.
func (f *Factory) CreatePost(ownerID string, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(ownerID, overrides...)

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: owner=%s title=%q", post.OwnerID, post.Title)
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.db.Create(&posts).Error
}

// AssignCategories links a post to a random subset of the given categories.
func (f *Factory) AssignCategories(post *models.Post, categories []*models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	maxPick := len(categories)
	if maxPick > 3 {
		maxPick = 3
	}
	n := 1 + rand.Intn(maxPick)
	picked := rand.Perm(len(categories))[:n]

	rows := make([]models.PostToCategory, 0, n)
	for _, idx := range picked {
		rows = append(rows, models.PostToCategory{
			PostID:     post.ID,
			CategoryID: categories[idx].ID,
		})
	}

	if f.opts.DryRun {
		log.Printf("[dry-run] AssignCategories: post=%d categories=%d", post.ID, n)
		return nil
	}
	return f.db.Create(&rows).Error
}

// claimSlug reserves a unique slug within this factory's run.
func (f *Factory) claimSlug(text string) string {
	s := slug.MakeUnique(text, f.taken)
	f.taken[s] = struct{}{}
	return s
}
