package server

import (
	"hearth/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GetPosts returns the newest posts (public)
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// SearchPosts matches posts by title or content (public)
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	posts, err := s.postService.SearchPosts(c.UserContext(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost returns a single post with its author (public)
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.requireParam(c, "id", "post ID")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetUserPosts returns a user's posts, newest first (public)
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.requireParam(c, "id", "user ID")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	posts, err := s.postService.ListPostsByAuthor(c.UserContext(), userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost creates a post (protected)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return respondServiceError(c, invalidBody())
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID: currentUserID(c),
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost replaces a post's title and content (owner only)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.requireParam(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req postRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return respondServiceError(c, invalidBody())
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		AuthorID: currentUserID(c),
		PostID:   id,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost removes a post (owner only)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.requireParam(c, "id", "post ID")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		AuthorID: currentUserID(c),
		PostID:   id,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
