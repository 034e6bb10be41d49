package server

import (
	"coblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles category.getAll.
func (s *Server) GetCategories(c *fiber.Ctx) (any, error) {
	return s.categoryService.ListCategories(c.UserContext())
}

// GetCategoryByID handles category.getById.
func (s *Server) GetCategoryByID(c *fiber.Ctx) (any, error) {
	var in struct {
		ID uint `json:"id"`
	}
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	if err := requireID(in.ID, "category id"); err != nil {
		return nil, err
	}
	return s.categoryService.GetCategoryByID(c.UserContext(), in.ID)
}

// GetCategoryBySlug handles category.getBySlug.
func (s *Server) GetCategoryBySlug(c *fiber.Ctx) (any, error) {
	var in struct {
		Slug string `json:"slug"`
	}
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	return s.categoryService.GetCategoryBySlug(c.UserContext(), in.Slug)
}

// CreateCategory handles category.create.
func (s *Server) CreateCategory(c *fiber.Ctx) (any, error) {
	var in service.CreateCategoryInput
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	return s.categoryService.CreateCategory(c.UserContext(), in)
}

// UpdateCategory handles category.update.
func (s *Server) UpdateCategory(c *fiber.Ctx) (any, error) {
	var in service.UpdateCategoryInput
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	if err := requireID(in.ID, "category id"); err != nil {
		return nil, err
	}
	return s.categoryService.UpdateCategory(c.UserContext(), in)
}

// DeleteCategory handles category.delete.
func (s *Server) DeleteCategory(c *fiber.Ctx) (any, error) {
	var in struct {
		ID uint `json:"id"`
	}
	if err := decodeInput(c, &in); err != nil {
		return nil, err
	}
	if err := requireID(in.ID, "category id"); err != nil {
		return nil, err
	}
	if err := s.categoryService.DeleteCategory(c.UserContext(), in.ID); err != nil {
		return nil, err
	}
	return fiber.Map{"deleted": true, "id": in.ID}, nil
}
