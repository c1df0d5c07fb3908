package server

import (
	"log/slog"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

// GetPosts lists every post, alphabetically by title.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetPost returns a single post by its slug, comments included. The
// authenticated flag tells clients whether to offer the comment form.
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondAppError(c, err)
	}

	_, authenticated := currentUserID(c)
	return c.JSON(fiber.Map{
		"post":          post,
		"authenticated": authenticated,
	})
}

// CreatePost publishes a new post under the authenticated admin.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID: userID,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post created",
		slog.String("slug", post.Slug))

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost edits an existing post. The slug and publication date are
// fixed at creation and never change here.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	post, err := s.postService.EditPost(c.UserContext(), c.Params("slug"), service.EditPostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(post)
}

// DeletePost removes a post and its comments.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postSlug := c.Params("slug")
	if err := s.postService.DeletePost(c.UserContext(), postSlug); err != nil {
		return respondAppError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post deleted",
		slog.String("slug", postSlug))

	return c.JSON(fiber.Map{"message": "post deleted"})
}
