package models

import "strings"

// Mentor is a catalog entry. Seed data, never mutated at runtime.
type Mentor struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Avatar       string   `json:"avatar"`
	Category     string   `json:"category"`
	Expertise    []string `json:"expertise"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"reviewCount"`
	Price        int      `json:"price"`
	Experience   string   `json:"experience"`
	Bio          string   `json:"bio"`
	FullBio      string   `json:"fullBio,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	SessionTypes []string `json:"sessionTypes,omitempty"`
	Availability string   `json:"availability,omitempty"`
}

// Ref is the slice of a mentor the booking flow is allowed to see
func (m *Mentor) Ref() MentorRef {
	return MentorRef{ID: m.ID, Name: m.Name, Price: m.Price}
}

// MentorRef identifies the mentor a booking is made with
type MentorRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Review is a student review shown on profile pages
type Review struct {
	ID          string `json:"id"`
	StudentName string `json:"studentName"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	Date        string `json:"date"`
	Avatar      string `json:"avatar"`
}

// FilterAll disables a category, rating or price predicate
const FilterAll = "all"

// PriceBucket is a named price range
type PriceBucket string

const (
	PriceBucketAll    PriceBucket = FilterAll
	PriceBucketLow    PriceBucket = "low"    // < 2500
	PriceBucketMedium PriceBucket = "medium" // [2500, 3500)
	PriceBucketHigh   PriceBucket = "high"   // >= 3500
)

const (
	priceMediumFloor = 2500
	priceHighFloor   = 3500
)

// ParsePriceBucket accepts "", "all", "low", "medium" and "high"
func ParsePriceBucket(raw string) (PriceBucket, bool) {
	switch PriceBucket(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PriceBucketAll:
		return PriceBucketAll, true
	case PriceBucketLow:
		return PriceBucketLow, true
	case PriceBucketMedium:
		return PriceBucketMedium, true
	case PriceBucketHigh:
		return PriceBucketHigh, true
	default:
		return "", false
	}
}

// Contains reports whether price falls in the bucket
func (b PriceBucket) Contains(price int) bool {
	switch b {
	case PriceBucketLow:
		return price < priceMediumFloor
	case PriceBucketMedium:
		return price >= priceMediumFloor && price < priceHighFloor
	case PriceBucketHigh:
		return price >= priceHighFloor
	default:
		return true
	}
}

// MentorFilter holds the directory predicates. Zero values match everything.
type MentorFilter struct {
	Text        string
	Category    string
	MinRating   *float64
	PriceBucket PriceBucket
}

// MentorView is a mentor as returned by the API
type MentorView struct {
	*Mentor
	PriceDisplay string `json:"priceDisplay"`
}

// MentorListResponse is the directory listing payload
type MentorListResponse struct {
	Mentors []MentorView `json:"mentors"`
	Count   int          `json:"count"`
}

// MentorProfileResponse is the profile page payload
type MentorProfileResponse struct {
	Mentor  MentorView `json:"mentor"`
	Reviews []Review   `json:"reviews"`
	Booking MentorRef  `json:"booking"`
}

// CategoriesResponse lists catalog categories in first-seen order
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
