package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"hearth/internal/models"
	"hearth/internal/observability"
	"hearth/internal/ratelimit"

	"gorm.io/gorm"
)

// Content length bounds shared by posts, comments, and profiles.
const (
	MaxTitleLen   = 100
	MaxContentLen = 255
)

// admit runs the write through the governor. Denials surface as a rate-limit
// error before any validation of ownership or state, so throttled users learn
// nothing about the target.
func admit(ctx context.Context, g ratelimit.Governor, userID, operation string) error {
	ok, err := g.Admit(ctx, userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !ok {
		observability.RecordWriteRejection(operation)
		return models.NewRateLimitedError()
	}
	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return models.NewValidationError("Title too long (max 100 characters)")
	}
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > MaxContentLen {
		return models.NewValidationError("Content too long (max 255 characters)")
	}
	return nil
}

// notFound converts gorm's sentinel into the resource-level error the
// transport layer maps to 404.
func notFound(err error, resource, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}
