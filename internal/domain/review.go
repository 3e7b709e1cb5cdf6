package domain

import (
	"fmt"
	"time"
)

// Review field constraints, enforced on submission.
const (
	MinRating        = 1
	MaxRating        = 5
	MaxTitleLength   = 100
	MinBodyLength    = 10
	MaxBodyLength    = 1000
	MaxAuthorNameLen = 50
)

// Review represents a customer-submitted rating-plus-text record for a
// product page.
type Review struct {
	ID           int64     `json:"id"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	AuthorName   string    `json:"author_name"`
	AuthorEmail  string    `json:"author_email,omitempty"`
	Recommends   bool      `json:"recommends"`
	CreatedAt    time.Time `json:"created_at"`
	HelpfulCount int       `json:"helpful_count"`
	ImageRefs    []string  `json:"image_refs,omitempty"`
}

// HasImages reports whether the review carries any image references.
// No submission path produces image-bearing reviews yet, so this is
// currently always false; the with_images filter below relies on it anyway
// so that behavior is already correct once uploads exist.
func (r *Review) HasImages() bool {
	return len(r.ImageRefs) > 0
}

// RatingSummary is the derived aggregate over a review collection. It is
// recomputed on every read and never stored.
type RatingSummary struct {
	Count     int         `json:"count"`
	Mean      float64     `json:"mean"`
	Histogram map[int]int `json:"histogram"`
}

// Summarize computes the rating summary for a collection of reviews. It is a
// total function: any finite input, including empty, yields a summary with
// all histogram keys 1..5 present.
func Summarize(reviews []Review) RatingSummary {
	summary := RatingSummary{
		Count:     len(reviews),
		Histogram: make(map[int]int, MaxRating),
	}
	for star := MinRating; star <= MaxRating; star++ {
		summary.Histogram[star] = 0
	}

	if summary.Count == 0 {
		return summary
	}

	var sum int
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating >= MinRating && r.Rating <= MaxRating {
			summary.Histogram[r.Rating]++
		}
	}
	summary.Mean = float64(sum) / float64(summary.Count)

	return summary
}

// ReviewFilter selects a subsequence of a review collection. The zero value
// matches everything.
type ReviewFilter struct {
	// Star restricts to reviews with this rating when in 1..5; 0 means all.
	Star int
	// WithImages restricts to image-bearing reviews.
	WithImages bool
}

// ParseReviewFilter parses the wire form of a filter: "all" (or empty),
// "1".."5", or "with_images".
func ParseReviewFilter(s string) (ReviewFilter, error) {
	switch s {
	case "", "all":
		return ReviewFilter{}, nil
	case "1", "2", "3", "4", "5":
		return ReviewFilter{Star: int(s[0] - '0')}, nil
	case "with_images":
		return ReviewFilter{WithImages: true}, nil
	default:
		return ReviewFilter{}, fmt.Errorf("unknown review filter %q", s)
	}
}

// Matches reports whether the review passes the filter.
func (f ReviewFilter) Matches(r Review) bool {
	if f.Star != 0 && r.Rating != f.Star {
		return false
	}
	if f.WithImages && !r.HasImages() {
		return false
	}
	return true
}

// FilterReviews returns the subsequence of reviews matching the filter, in
// stored order.
func FilterReviews(reviews []Review, f ReviewFilter) []Review {
	filtered := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		if f.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
