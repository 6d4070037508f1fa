package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to SwapStatus
		want     bool
	}{
		{SwapPending, SwapAccepted, true},
		{SwapPending, SwapRejected, true},
		{SwapAccepted, SwapCompleted, true},
		{SwapPending, SwapCompleted, false},
		{SwapPending, SwapPending, false},
		{SwapAccepted, SwapRejected, false},
		{SwapAccepted, SwapPending, false},
		{SwapRejected, SwapPending, false},
		{SwapRejected, SwapAccepted, false},
		{SwapCompleted, SwapPending, false},
		{SwapCompleted, SwapAccepted, false},
		{SwapCancelled, SwapPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, SwapPending.IsTerminal())
	assert.False(t, SwapAccepted.IsTerminal())
	assert.True(t, SwapRejected.IsTerminal())
	assert.True(t, SwapCompleted.IsTerminal())
	assert.True(t, SwapCancelled.IsTerminal())
}

func TestCounterparty(t *testing.T) {
	r := SwapRequest{FromUserID: "a", ToUserID: "b"}
	assert.Equal(t, "b", r.Counterparty("a"))
	assert.Equal(t, "a", r.Counterparty("b"))
	assert.Equal(t, "", r.Counterparty("c"))
	assert.True(t, r.Involves("a"))
	assert.False(t, r.Involves("c"))
}

func TestValidateSwapRequestCompletion(t *testing.T) {
	created := time.Date(2024, 12, 10, 14, 30, 0, 0, time.UTC)
	base := SwapRequest{
		ID:             "r1",
		FromUserID:     "a",
		ToUserID:       "b",
		SkillOffered:   Skill{ID: "1"},
		SkillRequested: Skill{ID: "2"},
		Status:         SwapCompleted,
		CreatedAt:      created,
	}

	err := ValidateSwapRequest(base)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "completed_at")

	same := created
	base.CompletedAt = &same
	require.ErrorIs(t, ValidateSwapRequest(base), ErrValidation)

	later := created.Add(time.Hour)
	base.CompletedAt = &later
	require.NoError(t, ValidateSwapRequest(base))

	base.CompletedBy = "z"
	require.ErrorIs(t, ValidateSwapRequest(base), ErrValidation)
}

func TestValidateSwapRequestRequiresSkills(t *testing.T) {
	err := ValidateSwapRequest(SwapRequest{
		ID:         "r1",
		FromUserID: "a",
		ToUserID:   "a",
		Status:     SwapPending,
		CreatedAt:  time.Now(),
	})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "required", vErr.Fields["skill_offered"])
	assert.Equal(t, "required", vErr.Fields["skill_requested"])
	assert.Equal(t, "cannot swap with yourself", vErr.Fields["to_user_id"])
}
