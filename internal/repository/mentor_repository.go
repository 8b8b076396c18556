package repository

import (
	"context"

	"github.com/mentorsetu/mentorsetu-api/internal/catalog"
	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/pkg/errors"
)

// MentorRepositoryInterface defines mentor catalog access
type MentorRepositoryInterface interface {
	GetAll(ctx context.Context) ([]*models.Mentor, error)
	GetByID(ctx context.Context, id string) (*models.Mentor, error)
	Categories(ctx context.Context) ([]string, error)
	Reviews(ctx context.Context, mentorID string) ([]models.Review, error)
}

// MentorRepository reads mentors through the cache
type MentorRepository struct {
	mentorCache MentorCacheInterface
}

// NewMentorRepository creates a new mentor repository
func NewMentorRepository(mentorCache MentorCacheInterface) *MentorRepository {
	return &MentorRepository{mentorCache: mentorCache}
}

// GetAll returns the catalog in listing order
func (r *MentorRepository) GetAll(ctx context.Context) ([]*models.Mentor, error) {
	return r.mentorCache.Get()
}

// GetByID returns one mentor or ErrNotFound
func (r *MentorRepository) GetByID(ctx context.Context, id string) (*models.Mentor, error) {
	mentor, err := r.mentorCache.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mentor == nil {
		return nil, errors.NotFoundError("mentor " + id)
	}
	return mentor, nil
}

// Categories returns catalog categories in first-seen order
func (r *MentorRepository) Categories(ctx context.Context) ([]string, error) {
	return r.mentorCache.Categories()
}

// Reviews returns the reviews shown on a profile.
// The review list is global and not linked to mentorID.
func (r *MentorRepository) Reviews(ctx context.Context, mentorID string) ([]models.Review, error) {
	return catalog.Reviews(), nil
}
