package catalog

import (
	"testing"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(mentors []*models.Mentor) []string {
	out := make([]string, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, m.ID)
	}
	return out
}

func rating(v float64) *float64 { return &v }

func TestFilter_AllSentinelsReturnCatalogInOrder(t *testing.T) {
	got := Filter(Mentors(), models.MentorFilter{
		Category:    models.FilterAll,
		PriceBucket: models.PriceBucketAll,
	})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(got))
}

func TestFilter_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		filter   models.MentorFilter
		expected []string
	}{
		{name: "design category", filter: models.MentorFilter{Category: "Design"}, expected: []string{"3"}},
		{name: "low price", filter: models.MentorFilter{PriceBucket: models.PriceBucketLow}, expected: []string{"5"}},
		{name: "medium price", filter: models.MentorFilter{PriceBucket: models.PriceBucketMedium}, expected: []string{"1", "2", "3", "4"}},
		{name: "high price", filter: models.MentorFilter{PriceBucket: models.PriceBucketHigh}, expected: []string{"6"}},
		{name: "rating 4.9", filter: models.MentorFilter{MinRating: rating(4.9)}, expected: []string{"1", "3", "6"}},
		{name: "rating 4.7 inclusive", filter: models.MentorFilter{MinRating: rating(4.7)}, expected: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "text on expertise", filter: models.MentorFilter{Text: "user research"}, expected: []string{"2", "3"}},
		{name: "text on title", filter: models.MentorFilter{Text: "DIRECTOR"}, expected: []string{"3", "5"}},
		{name: "text on name", filter: models.MentorFilter{Text: "kim"}, expected: []string{"4"}},
		{name: "text ignores company", filter: models.MentorFilter{Text: "netflix"}, expected: []string{}},
		{name: "combined", filter: models.MentorFilter{Text: "leadership", PriceBucket: models.PriceBucketHigh}, expected: []string{"6"}},
		{name: "empty result", filter: models.MentorFilter{Category: "Design", PriceBucket: models.PriceBucketLow}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Filter(Mentors(), tt.filter)))
		})
	}
}

func TestFilter_PredicatesCommute(t *testing.T) {
	filters := []models.MentorFilter{
		{Text: "a", Category: "Technology", MinRating: rating(4.8), PriceBucket: models.PriceBucketMedium},
		{Text: "strategy", MinRating: rating(4.8)},
		{Text: "", Category: "Marketing", PriceBucket: models.PriceBucketLow},
		{Text: "leadership", MinRating: rating(4.5), PriceBucket: models.PriceBucketHigh},
	}

	for _, f := range filters {
		preds := Predicates(f)
		together := ids(Apply(Mentors(), preds...))

		permute(len(preds), func(order []int) {
			result := Mentors()
			for _, i := range order {
				result = Apply(result, preds[i])
			}
			assert.Equal(t, together, ids(result), "order %v", order)
		})
	}
}

// permute calls fn with every permutation of 0..n-1 (Heap's algorithm)
func permute(n int, fn func([]int)) {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			fn(append([]int(nil), order...))
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				order[i], order[k-1] = order[k-1], order[i]
			} else {
				order[0], order[k-1] = order[k-1], order[0]
			}
		}
	}
	generate(n)
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"Technology", "Product", "Design", "Data Science", "Marketing", "Business"},
		Categories(Mentors()))
}

func TestMentors_ReturnsIndependentCopies(t *testing.T) {
	first := Mentors()
	first[0].Name = "changed"
	first[0].Expertise[0] = "changed"

	second := Mentors()
	require.Len(t, second, 6)
	assert.Equal(t, "Sarah Johnson", second[0].Name)
	assert.Equal(t, "React", second[0].Expertise[0])
}

func TestReviews(t *testing.T) {
	reviews := Reviews()
	require.Len(t, reviews, 3)
	assert.Equal(t, "Alex Chen", reviews[0].StudentName)
	assert.Equal(t, 4, reviews[2].Rating)
}
