package repository

import (
	"context"
	"errors"

	"hearth/internal/cache"
	"hearth/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
}

// profileRepository implements ProfileRepository
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Get returns the profile for the user, or nil if none has been saved yet.
func (r *profileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := cache.CacheAside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		ctx, finish := instrument(ctx, "profiles.get", "profiles")
		defer finish()
		return r.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the profile row or replaces its description.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	ctx, finish := instrument(ctx, "profiles.upsert", "profiles")
	defer finish()

	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO profiles (id, description, created_at, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT (id)
		 DO UPDATE SET description = EXCLUDED.description, updated_at = CURRENT_TIMESTAMP`,
		profile.ID, profile.Description,
	).Error
	if err == nil {
		cache.InvalidateProfile(ctx, profile.ID)
	}
	return err
}
