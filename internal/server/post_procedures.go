package server

import (
	"coblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles post.getAll: a paginated, filterable post listing.
func (s *Server) GetPosts(c *fiber.Ctx) (any, error) {
	var in service.ListPostsInput
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	return s.postService.ListPosts(c.UserContext(), in)
}

// GetPostBySlug handles post.getBySlug.
func (s *Server) GetPostBySlug(c *fiber.Ctx) (any, error) {
	var in struct {
		Slug string `json:"slug"`
	}
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	return s.postService.GetPostBySlug(c.UserContext(), in.Slug)
}

// GetPostByID handles post.getById.
func (s *Server) GetPostByID(c *fiber.Ctx) (any, error) {
	var in struct {
		ID uint `json:"id"`
	}
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	if err := requireID(in.ID, "post id"); err != nil {
		return nil, err
	}
	return s.postService.GetPostByID(c.UserContext(), in.ID)
}

// GetPostsByOwner handles post.getByOwner: an owner's posts, drafts included.
func (s *Server) GetPostsByOwner(c *fiber.Ctx) (any, error) {
	var in struct {
		OwnerID string `json:"ownerId"`
		Page    int    `json:"page,omitempty"`
		Limit   int    `json:"limit,omitempty"`
	}
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	return s.postService.GetPostsByOwner(c.UserContext(), in.OwnerID, in.Page, in.Limit)
}

// CreatePost handles post.create.
func (s *Server) CreatePost(c *fiber.Ctx) (any, error) {
	var in service.CreatePostInput
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	return s.postService.CreatePost(c.UserContext(), in)
}

// UpdatePost handles post.update.
func (s *Server) UpdatePost(c *fiber.Ctx) (any, error) {
	var in service.UpdatePostInput
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	if err := requireID(in.ID, "post id"); err != nil {
		return nil, err
	}
	return s.postService.UpdatePost(c.UserContext(), in)
}

// DeletePost handles post.delete.
func (s *Server) DeletePost(c *fiber.Ctx) (any, error) {
	var in service.DeletePostInput
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	if err := requireID(in.ID, "post id"); err != nil {
		return nil, err
	}
	if err := s.postService.DeletePost(c.UserContext(), in); err != nil {
		return nil, err
	}
	return fiber.Map{"deleted": true, "id": in.ID}, nil
}
