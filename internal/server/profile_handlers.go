package server

import (
	"hearth/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns a user's profile with their identity (public)
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID, err := s.requireParam(c, "id", "user ID")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile creates or replaces the caller's profile description (protected)
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Description string `json:"description"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return respondServiceError(c, invalidBody())
	}

	profile, err := s.profileService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:      currentUserID(c),
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}
