package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	v.Check(true, "author", "must be provided")
	assert.False(t, v.Valid())
	assert.Equal(t, "must be provided", v.Errors["title"])
	assert.NotContains(t, v.Errors, "author")

	// First error per field wins.
	v.AddError("title", "something else")
	assert.Equal(t, "must be provided", v.Errors["title"])
}

func TestNotBlank(t *testing.T) {
	assert.True(t, NotBlank("x"))
	assert.True(t, NotBlank("  x  "))
	assert.False(t, NotBlank(""))
	assert.False(t, NotBlank("   "))
}

func TestBetween(t *testing.T) {
	assert.True(t, Between(1, 1, 5))
	assert.True(t, Between(5, 1, 5))
	assert.False(t, Between(0, 1, 5))
	assert.False(t, Between(6, 1, 5))
}
