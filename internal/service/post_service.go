// Package service holds the business rules behind the RPC procedures.
package service

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strings"

	"coblog/internal/cache"
	"coblog/internal/models"
	"coblog/internal/repository"
	"coblog/internal/richtext"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxTitleLen   = 200
	defaultLimit  = 10
	maxLimit      = 100
	excerptMaxLen = 160
)

// PostService implements the post.* procedures.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPostsInput carries the post.getAll filters.
type ListPostsInput struct {
	CategoryID *uint  `json:"categoryId,omitempty"`
	Published  *bool  `json:"published,omitempty"`
	Search     string `json:"search,omitempty"`
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// CreatePostInput carries the post.create payload. The owner id is an
// untrusted client-generated UUID, not an authenticated account.
type CreatePostInput struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt,omitempty"`
	FeaturedImage string `json:"featuredImage,omitempty"`
	Published     bool   `json:"published"`
	CategoryIDs   []uint `json:"categoryIds"`
	OwnerID       string `json:"ownerId"`
}

// UpdatePostInput carries the post.update payload; nil fields are untouched.
type UpdatePostInput struct {
	ID            uint    `json:"id"`
	OwnerID       string  `json:"ownerId"`
	Title         *string `json:"title,omitempty"`
	Content       *string `json:"content,omitempty"`
	Excerpt       *string `json:"excerpt,omitempty"`
	FeaturedImage *string `json:"featuredImage,omitempty"`
	Published     *bool   `json:"published,omitempty"`
	CategoryIDs   []uint  `json:"categoryIds,omitempty"`
}

// DeletePostInput carries the post.delete payload.
type DeletePostInput struct {
	ID      uint   `json:"id"`
	OwnerID string `json:"ownerId"`
}

// ListPosts returns one page of posts with pagination metadata. The page is
// clamped to >= 1 and the limit to 1..100; no match yields an empty page, not
// an error.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*models.PostPage, error) {
	page, limit := clampPage(in.Page, in.Limit)

	filter := repository.PostFilter{
		CategoryID: in.CategoryID,
		Published:  in.Published,
		Search:     in.Search,
		Page:       page,
		Limit:      limit,
	}

	unfiltered := in.CategoryID == nil && in.Published == nil && strings.TrimSpace(in.Search) == ""

	var result models.PostPage
	if unfiltered && page == 1 && limit == defaultLimit {
		err := cache.Aside(ctx, cache.PostsListKey(), &result, cache.ListTTL, func() error {
			return s.fetchPage(ctx, filter, &result)
		})
		if err != nil {
			return nil, err
		}
		return &result, nil
	}

	if err := s.fetchPage(ctx, filter, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *PostService) fetchPage(ctx context.Context, filter repository.PostFilter, out *models.PostPage) error {
	posts, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	out.Posts = posts
	out.Pagination = paginate(filter.Page, filter.Limit, total)
	return nil
}

// GetPostBySlug returns the post with its categories and reading stats.
func (s *PostService) GetPostBySlug(ctx context.Context, slugValue string) (*models.Post, error) {
	if strings.TrimSpace(slugValue) == "" {
		return nil, models.NewValidationError("Slug is required")
	}

	var post models.Post
	err := cache.Aside(ctx, cache.PostSlugKey(slugValue), &post, cache.PostTTL, func() error {
		found, err := s.postRepo.GetBySlug(ctx, slugValue)
		if err != nil {
			return err
		}
		post = *found
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", slugValue)
		}
		return nil, err
	}

	attachStats(&post)
	return &post, nil
}

// GetPostByID returns the post with its categories and reading stats.
func (s *PostService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	attachStats(post)
	return post, nil
}

// GetPostsByOwner lists an owner's posts, drafts included.
func (s *PostService) GetPostsByOwner(ctx context.Context, ownerID string, pageNum, limitNum int) (*models.PostPage, error) {
	if err := validateOwnerID(ownerID); err != nil {
		return nil, err
	}
	page, limit := clampPage(pageNum, limitNum)

	posts, total, err := s.postRepo.GetByOwner(ctx, ownerID, page, limit)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return &models.PostPage{
		Posts:      posts,
		Pagination: paginate(page, limit, total),
	}, nil
}

// CreatePost validates the input, derives a missing excerpt from the content
// and stores the post with its category associations.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if err := validateOwnerID(in.OwnerID); err != nil {
		return nil, err
	}
	if err := validateImageURL(in.FeaturedImage); err != nil {
		return nil, err
	}

	excerpt := strings.TrimSpace(in.Excerpt)
	if excerpt == "" {
		excerpt = richtext.Excerpt(in.Content, excerptMaxLen)
	}

	post := &models.Post{
		Title:         title,
		Content:       in.Content,
		Excerpt:       excerpt,
		FeaturedImage: in.FeaturedImage,
		Published:     in.Published,
		OwnerID:       in.OwnerID,
	}
	if err := s.postRepo.Create(ctx, post, in.CategoryIDs); err != nil {
		return nil, err
	}

	cache.InvalidatePost(ctx, post.ID, post.Slug)
	return s.GetPostByID(ctx, post.ID)
}

// UpdatePost applies the provided fields after the ownership check. The slug
// is regenerated only when the title actually changes.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := validateOwnerID(in.OwnerID); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.ID)
		}
		return nil, err
	}

	// Equality check against an untrusted claim, not authentication: anyone
	// holding the owner UUID can mutate the post.
	if post.OwnerID != in.OwnerID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	oldSlug := post.Slug
	regenSlug := false
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title must not be empty")
		}
		if len(title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		if title != post.Title {
			post.Title = title
			regenSlug = true
		}
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content must not be empty")
		}
		post.Content = *in.Content
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.FeaturedImage != nil {
		if err := validateImageURL(*in.FeaturedImage); err != nil {
			return nil, err
		}
		post.FeaturedImage = *in.FeaturedImage
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	if err := s.postRepo.Update(ctx, post, in.CategoryIDs, regenSlug); err != nil {
		return nil, err
	}

	cache.InvalidatePost(ctx, post.ID, oldSlug)
	if post.Slug != oldSlug {
		cache.Invalidate(ctx, cache.PostSlugKey(post.Slug))
	}
	return s.GetPostByID(ctx, post.ID)
}

// DeletePost removes the post after the ownership check; associations go with it.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if err := validateOwnerID(in.OwnerID); err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", in.ID)
		}
		return err
	}

	if post.OwnerID != in.OwnerID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, in.ID); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID, post.Slug)
	return nil
}

func attachStats(post *models.Post) {
	stats := richtext.Stats(post.Content)
	post.WordCount = stats.WordCount
	post.ReadingTime = stats.ReadingTime
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func paginate(page, limit int, total int64) models.Pagination {
	return models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

func validateOwnerID(ownerID string) error {
	if _, err := uuid.Parse(ownerID); err != nil {
		return models.NewValidationError("Owner id must be a UUID")
	}
	return nil
}

func validateImageURL(raw string) error {
	if raw == "" {
		return nil
	}
	parsed, err := url.ParseRequestURI(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return models.NewValidationError("Featured image must be an http(s) URL")
	}
	return nil
}
