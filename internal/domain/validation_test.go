package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUserRatingInvariant(t *testing.T) {
	tests := []struct {
		name    string
		rating  float64
		total   int
		wantErr bool
	}{
		{"no ratings zero aggregate", 0, 0, false},
		{"no ratings nonzero aggregate", 5, 0, true},
		{"rated", 4.8, 24, false},
		{"above max", 5.5, 3, true},
		{"negative count", 0, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUser(User{ID: "u1", Name: "Ada", Rating: tt.rating, TotalRatings: tt.total})
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateUserChecksSkillsAndName(t *testing.T) {
	err := ValidateUser(User{
		ID:            "u1",
		Name:          "  ",
		SkillsOffered: []Skill{{ID: "s1", Name: "Go", Category: "Knitting", Level: LevelExpert}},
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "required", vErr.Fields["name"])
	assert.Equal(t, "unknown category", vErr.Fields["skills_offered[0].category"])
}

func TestValidateRatingBounds(t *testing.T) {
	r := Rating{ID: "x", SwapRequestID: "r", FromUserID: "a", ToUserID: "b"}
	for _, v := range []int{0, 6, -1} {
		r.Value = v
		assert.ErrorIs(t, ValidateRating(r), ErrValidation, "value %d", v)
	}
	for v := MinRating; v <= MaxRating; v++ {
		r.Value = v
		assert.NoError(t, ValidateRating(r), "value %d", v)
	}
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := NewValidationError(map[string]string{"b": "two", "a": "one"})
	assert.Equal(t, "validation failed: a: one, b: two", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestTypedErrorsUnwrap(t *testing.T) {
	assert.ErrorIs(t, NotFound("user", "42"), ErrNotFound)
	assert.Equal(t, `user "42" not found`, NotFound("user", "42").Error())

	err := &TransitionError{RequestID: "r1", From: SwapCompleted, To: SwapPending}
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.False(t, errors.Is(err, ErrNotFound))
}
