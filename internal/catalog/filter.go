package catalog

import (
	"strings"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
)

// Predicate decides whether a mentor stays in the result
type Predicate func(*models.Mentor) bool

// TextPredicate matches name, title or any expertise tag, case-insensitively
func TextPredicate(text string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(text))
	return func(m *models.Mentor) bool {
		if needle == "" {
			return true
		}
		if strings.Contains(strings.ToLower(m.Name), needle) ||
			strings.Contains(strings.ToLower(m.Title), needle) {
			return true
		}
		for _, tag := range m.Expertise {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
		return false
	}
}

// CategoryPredicate matches one category exactly; "" and "all" match everything
func CategoryPredicate(category string) Predicate {
	return func(m *models.Mentor) bool {
		return category == "" || category == models.FilterAll || m.Category == category
	}
}

// RatingPredicate keeps mentors rated at least min; nil matches everything
func RatingPredicate(min *float64) Predicate {
	return func(m *models.Mentor) bool {
		return min == nil || m.Rating >= *min
	}
}

// PricePredicate keeps mentors whose price is inside bucket
func PricePredicate(bucket models.PriceBucket) Predicate {
	return func(m *models.Mentor) bool {
		return bucket.Contains(m.Price)
	}
}

// Predicates expands a filter into its four independent predicates
func Predicates(f models.MentorFilter) []Predicate {
	return []Predicate{
		TextPredicate(f.Text),
		CategoryPredicate(f.Category),
		RatingPredicate(f.MinRating),
		PricePredicate(f.PriceBucket),
	}
}

// Apply keeps the mentors that satisfy every predicate, preserving order
func Apply(mentors []*models.Mentor, predicates ...Predicate) []*models.Mentor {
	out := make([]*models.Mentor, 0, len(mentors))
next:
	for _, m := range mentors {
		for _, p := range predicates {
			if !p(m) {
				continue next
			}
		}
		out = append(out, m)
	}
	return out
}

// Filter applies the directory filter to mentors
func Filter(mentors []*models.Mentor, f models.MentorFilter) []*models.Mentor {
	return Apply(mentors, Predicates(f)...)
}

// Categories returns the distinct categories in first-seen order
func Categories(mentors []*models.Mentor) []string {
	seen := make(map[string]struct{}, len(mentors))
	out := make([]string, 0, len(mentors))
	for _, m := range mentors {
		if _, ok := seen[m.Category]; ok {
			continue
		}
		seen[m.Category] = struct{}{}
		out = append(out, m.Category)
	}
	return out
}
