package server

import (
	"net/http/httptest"
	"testing"

	"hearth/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		query          string
		expectedLimit  int
		expectedOffset int
	}{
		{"defaults", "", 20, 0},
		{"explicit values", "limit=50&offset=10", 50, 10},
		{"zero limit falls back", "limit=0", 20, 0},
		{"negative offset clamped", "offset=-5", 20, 0},
		{"limit capped", "limit=500", 100, 0},
		{"garbage ignored", "limit=abc&offset=xyz", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New()
			var page Pagination
			app.Get("/", func(c *fiber.Ctx) error {
				page = parsePagination(c, 20)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/?"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			assert.Equal(t, tt.expectedLimit, page.Limit)
			assert.Equal(t, tt.expectedOffset, page.Offset)
		})
	}
}

func TestStatusForCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code   string
		status int
	}{
		{models.CodeValidation, fiber.StatusBadRequest},
		{models.CodeRateLimited, fiber.StatusTooManyRequests},
		{models.CodeNotFound, fiber.StatusNotFound},
		{models.CodeUnauthenticated, fiber.StatusUnauthorized},
		{models.CodeForbidden, fiber.StatusForbidden},
		{models.CodeLookupFailed, fiber.StatusInternalServerError},
		{models.CodeInternal, fiber.StatusInternalServerError},
		{"SOMETHING_ELSE", fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, statusForCode(tt.code), tt.code)
	}
}

func TestRequireParam(t *testing.T) {
	t.Parallel()

	s := &Server{}
	app := fiber.New()
	app.Get("/posts/:id", func(c *fiber.Ctx) error {
		id, err := s.requireParam(c, "id", "post ID")
		if err != nil {
			return nil
		}
		return c.SendString(id)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/posts/abc-123", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
