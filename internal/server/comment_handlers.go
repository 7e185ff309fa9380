package server

import (
	"hearth/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments returns a post's top-level comments, newest first (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.requireParam(c, "id", "post ID")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListRoots(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// GetComment returns a single comment with its author (public)
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.requireParam(c, "id", "comment ID")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// GetReplies returns a comment's direct replies, oldest first (public)
func (s *Server) GetReplies(c *fiber.Ctx) error {
	id, err := s.requireParam(c, "id", "comment ID")
	if err != nil {
		return nil
	}

	replies, err := s.commentService.ListReplies(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(replies)
}

// SearchComments matches comments by content (public)
func (s *Server) SearchComments(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	comments, err := s.commentService.SearchComments(c.UserContext(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// GetUserComments returns a user's comments, newest first (public)
func (s *Server) GetUserComments(c *fiber.Ctx) error {
	userID, err := s.requireParam(c, "id", "user ID")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	comments, err := s.commentService.ListCommentsByAuthor(c.UserContext(), userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment creates a comment on a post, optionally as a reply (protected)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.requireParam(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req struct {
		Content         string  `json:"content"`
		ParentCommentID *string `json:"parent_comment_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return respondServiceError(c, invalidBody())
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		AuthorID:        currentUserID(c),
		PostID:          postID,
		ParentCommentID: req.ParentCommentID,
		Content:         req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment replaces a comment's content (owner only)
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.requireParam(c, "id", "comment ID")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return respondServiceError(c, invalidBody())
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		AuthorID:  currentUserID(c),
		CommentID: id,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment removes a comment (owner only)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.requireParam(c, "id", "comment ID")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		AuthorID:  currentUserID(c),
		CommentID: id,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
