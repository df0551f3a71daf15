package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	now := time.Now()
	r, err := NewReview("r1", "u1", " p1 ", "o1", 4, "  Solid  ", "Works as described", []string{"", " a.png "}, now)
	require.NoError(t, err)
	assert.Equal(t, "p1", r.ProductID)
	assert.Equal(t, "Solid", r.Title)
	assert.Equal(t, []string{"a.png"}, r.Images)

	_, err = NewReview("r1", "u1", "p1", "o1", 0, "t", "c", nil, now)
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = NewReview("r1", "u1", "p1", "", 3, "t", "c", nil, now)
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = NewReview("r1", "u1", "p1", "o1", 6, "t", "c", nil, now)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = NewReview("r1", "u1", "p1", "o1", -1, "t", "c", nil, now)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = NewReview("r1", "u1", "p1", "o1", 3, strings.Repeat("x", 101), "c", nil, now)
	assert.ErrorIs(t, err, ErrTitleTooLong)
	_, err = NewReview("r1", "u1", "p1", "o1", 3, "t", strings.Repeat("x", 1001), nil, now)
	assert.ErrorIs(t, err, ErrCommentTooLong)
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 5.0, AverageRating([]int{5}))
	assert.Equal(t, 4.3, AverageRating([]int{5, 4, 4}))
	assert.Equal(t, 3.5, AverageRating([]int{3, 4}))
	assert.Equal(t, 1.7, AverageRating([]int{1, 2, 2}))
}
