package server

import (
	"hearth/internal/service"

	"github.com/gofiber/fiber/v2"
)

type voteRequest struct {
	Up bool `json:"up"`
}

// CastPostVote records or flips the caller's vote on a post (protected)
func (s *Server) CastPostVote(c *fiber.Ctx) error {
	postID, err := s.requireParam(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req voteRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return respondServiceError(c, invalidBody())
	}

	counts, err := s.voteService.CastPostVote(c.UserContext(), service.CastVoteInput{
		AuthorID: currentUserID(c),
		TargetID: postID,
		Up:       req.Up,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(counts)
}

// CastCommentVote records or flips the caller's vote on a comment (protected)
func (s *Server) CastCommentVote(c *fiber.Ctx) error {
	commentID, err := s.requireParam(c, "id", "comment ID")
	if err != nil {
		return nil
	}

	var req voteRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return respondServiceError(c, invalidBody())
	}

	counts, err := s.voteService.CastCommentVote(c.UserContext(), service.CastVoteInput{
		AuthorID: currentUserID(c),
		TargetID: commentID,
		Up:       req.Up,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(counts)
}

// GetPostVotes returns a post's vote tallies (public)
func (s *Server) GetPostVotes(c *fiber.Ctx) error {
	postID, err := s.requireParam(c, "id", "post ID")
	if err != nil {
		return nil
	}

	counts, err := s.voteService.CountPostVotes(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(counts)
}

// GetCommentVotes returns a comment's vote tallies (public)
func (s *Server) GetCommentVotes(c *fiber.Ctx) error {
	commentID, err := s.requireParam(c, "id", "comment ID")
	if err != nil {
		return nil
	}

	counts, err := s.voteService.CountCommentVotes(c.UserContext(), commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(counts)
}

// GetMyPostStance returns the caller's own vote on a post (protected)
func (s *Server) GetMyPostStance(c *fiber.Ctx) error {
	postID, err := s.requireParam(c, "id", "post ID")
	if err != nil {
		return nil
	}

	stance, err := s.voteService.GetPostStance(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stance)
}

// GetMyCommentStance returns the caller's own vote on a comment (protected)
func (s *Server) GetMyCommentStance(c *fiber.Ctx) error {
	commentID, err := s.requireParam(c, "id", "comment ID")
	if err != nil {
		return nil
	}

	stance, err := s.voteService.GetCommentStance(c.UserContext(), currentUserID(c), commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stance)
}
