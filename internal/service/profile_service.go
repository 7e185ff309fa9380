package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"hearth/internal/identity"
	"hearth/internal/models"
	"hearth/internal/ratelimit"
	"hearth/internal/repository"
)

// ProfileService manages the locally stored profile overlay on top of
// externally owned identities.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	governor    ratelimit.Governor
	resolver    identity.Resolver
}

type UpdateProfileInput struct {
	UserID      string
	Description string
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	governor ratelimit.Governor,
	resolver identity.Resolver,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		governor:    governor,
		resolver:    resolver,
	}
}

// GetProfile returns the user's profile. A user who exists at the identity
// provider but has never saved a description gets an empty one.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*ProfileView, error) {
	idents, err := resolveAuthors(ctx, s.resolver, []string{userID})
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{Author: authorView(idents[userID])}
	if profile != nil {
		view.Description = profile.Description
	}
	return view, nil
}

// UpdateProfile creates or replaces the user's description.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*ProfileView, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if utf8.RuneCountInString(description) > MaxContentLen {
		return nil, models.NewValidationError("Description too long (max 255 characters)")
	}
	if err := admit(ctx, s.governor, in.UserID, "update_profile"); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Upsert(ctx, &models.Profile{ID: in.UserID, Description: description}); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, in.UserID)
}
