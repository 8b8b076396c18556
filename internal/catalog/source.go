package catalog

import (
	"context"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
)

// StaticSource serves the seed catalog to the mentor cache.
// A database-backed source can replace it without touching handlers.
type StaticSource struct{}

// NewStaticSource creates the seed catalog source
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

// GetAllMentors returns every seed mentor in listing order
func (s *StaticSource) GetAllMentors(ctx context.Context) ([]*models.Mentor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Mentors(), nil
}
