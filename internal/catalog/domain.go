// internal/catalog/domain.go
package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"bookshelf/internal/validator"
)

// Book is a single catalog record as the book service returns it. ISBN and
// PublishedYear are optional and appear as null on the wire when absent,
// never as "" or 0.
type Book struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	ISBN          *string `json:"isbn"`
	PublishedYear *int    `json:"publishedYear"`
}

// Year range accepted for PublishedYear.
const (
	MinPublishedYear = 1000
	MaxPublishedYear = 2100
)

// BookInput is the payload for create and update. Update carries every
// field; the book service applies it as a full replacement.
type BookInput struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	ISBN          *string `json:"isbn"`
	PublishedYear *int    `json:"publishedYear"`
}

// ParseBookInput normalizes raw form fields into a BookInput and reports
// any validation failures. Title and author are required after trimming;
// blank optional fields become nil so they serialize as null rather than
// empty string or zero.
func ParseBookInput(title, author, isbn, year string) (BookInput, *validator.Validator) {
	v := validator.New()

	input := BookInput{
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
	}

	v.Check(validator.NotBlank(input.Title), "title", "must be provided")
	v.Check(validator.NotBlank(input.Author), "author", "must be provided")

	if s := strings.TrimSpace(isbn); s != "" {
		input.ISBN = &s
	}

	if s := strings.TrimSpace(year); s != "" {
		n, err := strconv.Atoi(s)
		switch {
		case err != nil:
			v.AddError("publishedYear", "must be a whole number")
		case !validator.Between(n, MinPublishedYear, MaxPublishedYear):
			v.AddError("publishedYear", "must be between 1000 and 2100")
		default:
			input.PublishedYear = &n
		}
	}

	return input, v
}

// SearchFilter holds the raw search form fields. Matching semantics belong
// to the book service; the client only decides which fields to send.
type SearchFilter struct {
	Title  string
	Author string
	Year   string
}

// IsZero reports whether every filter field is empty after trimming, in
// which case a search degrades to an unfiltered list.
func (f SearchFilter) IsZero() bool {
	return strings.TrimSpace(f.Title) == "" &&
		strings.TrimSpace(f.Author) == "" &&
		strings.TrimSpace(f.Year) == ""
}

// Values returns the query parameters for the search endpoint. Only
// non-empty fields are included.
func (f SearchFilter) Values() url.Values {
	params := url.Values{}
	if s := strings.TrimSpace(f.Title); s != "" {
		params.Set("title", s)
	}
	if s := strings.TrimSpace(f.Author); s != "" {
		params.Set("author", s)
	}
	if s := strings.TrimSpace(f.Year); s != "" {
		params.Set("year", s)
	}
	return params
}
