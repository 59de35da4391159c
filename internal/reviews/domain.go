// internal/reviews/domain.go
package reviews

import (
	"strconv"
	"strings"

	"bookshelf/internal/validator"
)

// Review is a single review record as the review service returns it.
// Reviews are never edited in place; they are created and deleted.
type Review struct {
	ID           int64  `json:"id"`
	BookID       int64  `json:"bookId"`
	ReviewerName string `json:"reviewerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// Rating bounds and the default preselected in the review form.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// ReviewInput is the payload for creating a review.
type ReviewInput struct {
	BookID       int64  `json:"bookId"`
	ReviewerName string `json:"reviewerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// ParseReviewInput normalizes raw form fields into a ReviewInput and
// reports any validation failures. A blank rating falls back to
// DefaultRating.
func ParseReviewInput(bookID int64, name, rating, comment string) (ReviewInput, *validator.Validator) {
	v := validator.New()

	input := ReviewInput{
		BookID:       bookID,
		ReviewerName: strings.TrimSpace(name),
		Rating:       DefaultRating,
		Comment:      strings.TrimSpace(comment),
	}

	v.Check(bookID > 0, "bookId", "must be provided")
	v.Check(validator.NotBlank(input.ReviewerName), "reviewerName", "must be provided")
	v.Check(validator.NotBlank(input.Comment), "comment", "must be provided")

	if s := strings.TrimSpace(rating); s != "" {
		n, err := strconv.Atoi(s)
		switch {
		case err != nil:
			v.AddError("rating", "must be a whole number")
		case !validator.Between(n, MinRating, MaxRating):
			v.AddError("rating", "must be between 1 and 5")
		default:
			input.Rating = n
		}
	}

	return input, v
}

// ParseBookID coerces a route-supplied book id to an integer. Route
// parameters arrive as strings while BookID is an integer; this is the one
// place that coercion happens, so every comparison downstream is exact.
func ParseBookID(routeID string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(routeID), 10, 64)
}

// ForBook selects the reviews whose BookID equals bookID. The review
// service has no reliable per-book query, so callers list everything and
// filter here.
func ForBook(all []Review, bookID int64) []Review {
	matched := make([]Review, 0, len(all))
	for _, r := range all {
		if r.BookID == bookID {
			matched = append(matched, r)
		}
	}
	return matched
}

// AverageRating returns the arithmetic mean of the ratings. An empty set
// yields exactly 0, which callers use to suppress the rating summary.
func AverageRating(set []Review) float64 {
	if len(set) == 0 {
		return 0
	}
	sum := 0
	for _, r := range set {
		sum += r.Rating
	}
	return float64(sum) / float64(len(set))
}

// FormatRating renders an average to one decimal place for display,
// e.g. 4.5 -> "4.5" and 4 -> "4.0".
func FormatRating(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 1, 64)
}
