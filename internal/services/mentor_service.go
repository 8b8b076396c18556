package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/mentorsetu/mentorsetu-api/internal/catalog"
	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/internal/repository"
	"github.com/mentorsetu/mentorsetu-api/pkg/errors"
	"github.com/mentorsetu/mentorsetu-api/pkg/metrics"
	"github.com/mentorsetu/mentorsetu-api/pkg/money"
)

// CatalogPath is where a missing profile links back to
const CatalogPath = "/mentors"

type MentorService struct {
	repo repository.MentorRepositoryInterface
}

func NewMentorService(repo repository.MentorRepositoryInterface) *MentorService {
	return &MentorService{repo: repo}
}

// ParseMentorFilter builds a filter from raw query values.
// "all" and empty disable a predicate; bad rating or price values are invalid input.
func ParseMentorFilter(text, category, rating, price string) (models.MentorFilter, error) {
	filter := models.MentorFilter{
		Text:     strings.TrimSpace(text),
		Category: strings.TrimSpace(category),
	}

	rating = strings.TrimSpace(rating)
	if rating != "" && !strings.EqualFold(rating, models.FilterAll) {
		v, err := strconv.ParseFloat(rating, 64)
		if err != nil {
			return models.MentorFilter{}, errors.InvalidInputError("rating", "must be a number or 'all'")
		}
		filter.MinRating = &v
	}

	bucket, ok := models.ParsePriceBucket(price)
	if !ok {
		return models.MentorFilter{}, errors.InvalidInputError("price", "must be one of all, low, medium, high")
	}
	filter.PriceBucket = bucket

	return filter, nil
}

// List returns the mentors matching filter in catalog order
func (s *MentorService) List(ctx context.Context, filter models.MentorFilter) (*models.MentorListResponse, error) {
	mentors, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := catalog.Filter(mentors, filter)
	if len(matched) == 0 {
		metrics.MentorSearches.WithLabelValues("empty").Inc()
	} else {
		metrics.MentorSearches.WithLabelValues("found").Inc()
	}

	views := make([]models.MentorView, 0, len(matched))
	for _, m := range matched {
		views = append(views, mentorView(m))
	}
	return &models.MentorListResponse{Mentors: views, Count: len(views)}, nil
}

func (s *MentorService) Categories(ctx context.Context) (*models.CategoriesResponse, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &models.CategoriesResponse{Categories: categories}, nil
}

// Profile returns a mentor with the reviews shown on the profile page
func (s *MentorService) Profile(ctx context.Context, id string) (*models.MentorProfileResponse, error) {
	mentor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Reviews(ctx, mentor.ID)
	if err != nil {
		return nil, err
	}

	metrics.MentorProfileViews.WithLabelValues(mentor.ID).Inc()

	return &models.MentorProfileResponse{
		Mentor:  mentorView(mentor),
		Reviews: reviews,
		Booking: mentor.Ref(),
	}, nil
}

func mentorView(m *models.Mentor) models.MentorView {
	return models.MentorView{Mentor: m, PriceDisplay: money.FormatINR(m.Price)}
}

func bookingView(b models.Booking) models.BookingView {
	return models.BookingView{Booking: b, AmountDisplay: money.FormatINR(b.Amount)}
}
