package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap/internal/domain"
)

func ids(users []domain.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func TestBrowseUsers(t *testing.T) {
	s := baseState(t)

	tests := []struct {
		name     string
		viewer   string
		term     string
		category domain.Category
		want     []string
	}{
		{"anonymous sees public non-admin", "", "", "", []string{"ana", "ben"}},
		{"excludes self", "ana", "", "", []string{"ben"}},
		{"term matches skill case-insensitively", "", "PIA", "", []string{"ben"}},
		{"term matches name", "", "ana", "", []string{"ana"}},
		{"category on offered skills", "", "", domain.CategoryTechnology, []string{"ana"}},
		{"term and category combine", "", "go", domain.CategoryMusic, []string{}},
		{"private never listed", "", "french", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(BrowseUsers(s, tt.viewer, tt.term, tt.category)))
		})
	}
}

func TestRequestsFor(t *testing.T) {
	reverse := pendingRequest("r2")
	reverse.FromUserID, reverse.ToUserID = "ben", "ana"
	other := pendingRequest("r3")
	other.FromUserID, other.ToUserID = "cy", "ben"

	s, err := Build(testUsers(), []domain.SwapRequest{pendingRequest("r1"), reverse, other}, nil)
	require.NoError(t, err)

	got := RequestsFor(s, "ana")
	require.Len(t, got.Sent, 1)
	require.Len(t, got.Received, 1)
	assert.Equal(t, "r1", got.Sent[0].ID)
	assert.Equal(t, "r2", got.Received[0].ID)

	none := RequestsFor(s, "root")
	assert.Empty(t, none.Sent)
	assert.Empty(t, none.Received)
}

func TestRatingsForAndSummary(t *testing.T) {
	r1 := completed(pendingRequest("r1"), "", created.Add(time.Hour))
	r2 := completed(pendingRequest("r2"), "", created.Add(time.Hour))
	s, err := Build(testUsers(), []domain.SwapRequest{r1, r2}, []domain.Rating{
		ratingFor("r1", "ana", "ben", 5),
		ratingFor("r2", "ana", "ben", 2),
	})
	require.NoError(t, err)

	assert.Len(t, RatingsFor(s, "ben"), 2)
	assert.Empty(t, RatingsFor(s, "ana"))

	sum := RatingSummaryFor(s, "ben")
	assert.Equal(t, 2, sum.Count)
	assert.InDelta(t, 3.5, sum.Average, 1e-9)

	empty := RatingSummaryFor(s, "ana")
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Average)

	got, ok := RatingForRequest(s, "r2")
	require.True(t, ok)
	assert.Equal(t, 2, got.Value)
}

func TestFindUserByEmail(t *testing.T) {
	s := baseState(t)

	u, err := FindUserByEmail(s, " BEN@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "ben", u.ID)

	_, err = FindUserByEmail(s, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
