package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookInput(t *testing.T) {
	t.Run("valid with optionals", func(t *testing.T) {
		input, v := ParseBookInput("Dune", "Frank Herbert", "9780441172719", "1965")
		require.True(t, v.Valid())

		assert.Equal(t, "Dune", input.Title)
		assert.Equal(t, "Frank Herbert", input.Author)
		require.NotNil(t, input.ISBN)
		assert.Equal(t, "9780441172719", *input.ISBN)
		require.NotNil(t, input.PublishedYear)
		assert.Equal(t, 1965, *input.PublishedYear)
	})

	t.Run("blank optionals become nil", func(t *testing.T) {
		input, v := ParseBookInput("Dune", "Frank Herbert", "   ", "")
		require.True(t, v.Valid())

		assert.Nil(t, input.ISBN)
		assert.Nil(t, input.PublishedYear)
	})

	t.Run("whitespace-only title is rejected", func(t *testing.T) {
		_, v := ParseBookInput("   ", "Frank Herbert", "", "")
		assert.False(t, v.Valid())
		assert.Contains(t, v.Errors, "title")
	})

	t.Run("missing author is rejected", func(t *testing.T) {
		_, v := ParseBookInput("Dune", "", "", "")
		assert.False(t, v.Valid())
		assert.Contains(t, v.Errors, "author")
	})

	t.Run("non-numeric year is rejected", func(t *testing.T) {
		_, v := ParseBookInput("Dune", "Frank Herbert", "", "soon")
		assert.False(t, v.Valid())
		assert.Contains(t, v.Errors, "publishedYear")
	})

	t.Run("year outside range is rejected", func(t *testing.T) {
		_, v := ParseBookInput("Dune", "Frank Herbert", "", "999")
		assert.False(t, v.Valid())

		_, v = ParseBookInput("Dune", "Frank Herbert", "", "2101")
		assert.False(t, v.Valid())

		_, v = ParseBookInput("Dune", "Frank Herbert", "", "1000")
		assert.True(t, v.Valid())

		_, v = ParseBookInput("Dune", "Frank Herbert", "", "2100")
		assert.True(t, v.Valid())
	})

	t.Run("fields are trimmed", func(t *testing.T) {
		input, v := ParseBookInput("  Dune  ", "  Frank Herbert ", " 978 ", " 1965 ")
		require.True(t, v.Valid())

		assert.Equal(t, "Dune", input.Title)
		assert.Equal(t, "Frank Herbert", input.Author)
		assert.Equal(t, "978", *input.ISBN)
		assert.Equal(t, 1965, *input.PublishedYear)
	})
}

// Absent optionals must serialize as null, never as "" or 0.
func TestBookInputMarshalsAbsentFieldsAsNull(t *testing.T) {
	input, v := ParseBookInput("Dune", "Frank Herbert", "", "")
	require.True(t, v.Valid())

	data, err := json.Marshal(input)
	require.NoError(t, err)

	assert.JSONEq(t, `{"title":"Dune","author":"Frank Herbert","isbn":null,"publishedYear":null}`, string(data))
}

func TestSearchFilter(t *testing.T) {
	t.Run("zero when all fields blank", func(t *testing.T) {
		assert.True(t, SearchFilter{}.IsZero())
		assert.True(t, SearchFilter{Title: "  ", Author: "\t", Year: " "}.IsZero())
		assert.False(t, SearchFilter{Author: "Herbert"}.IsZero())
	})

	t.Run("values carries only non-empty fields", func(t *testing.T) {
		params := SearchFilter{Title: "Dune", Year: "1965"}.Values()

		assert.Equal(t, "Dune", params.Get("title"))
		assert.Equal(t, "1965", params.Get("year"))
		_, hasAuthor := params["author"]
		assert.False(t, hasAuthor)
	})
}
