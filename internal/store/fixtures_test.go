package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"skillswap/internal/domain"
)

var (
	goSkill     = domain.Skill{ID: "s-go", Name: "Go Programming", Category: domain.CategoryTechnology, Level: domain.LevelExpert}
	pianoSkill  = domain.Skill{ID: "s-piano", Name: "Piano", Category: domain.CategoryMusic, Level: domain.LevelIntermediate}
	frenchSkill = domain.Skill{ID: "s-fr", Name: "French", Category: domain.CategoryLanguages, Level: domain.LevelAdvanced}

	created = time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)
)

func testUsers() []domain.User {
	return []domain.User{
		{ID: "ana", Name: "Ana", Email: "ana@example.com", IsPublic: true, SkillsOffered: []domain.Skill{goSkill}, SkillsWanted: []domain.Skill{pianoSkill}},
		{ID: "ben", Name: "Ben", Email: "ben@example.com", IsPublic: true, SkillsOffered: []domain.Skill{pianoSkill}, SkillsWanted: []domain.Skill{goSkill}},
		{ID: "cy", Name: "Cy Private", Email: "cy@example.com", IsPublic: false, SkillsOffered: []domain.Skill{frenchSkill}},
		{ID: "root", Name: "Root", Email: "root@example.com", IsPublic: true, IsAdmin: true, SkillsOffered: []domain.Skill{goSkill}},
	}
}

func pendingRequest(id string) domain.SwapRequest {
	return domain.SwapRequest{
		ID:             id,
		FromUserID:     "ana",
		ToUserID:       "ben",
		SkillOffered:   goSkill,
		SkillRequested: pianoSkill,
		Status:         domain.SwapPending,
		CreatedAt:      created,
	}
}

func baseState(t *testing.T) State {
	t.Helper()
	s, err := Build(testUsers(), nil, nil)
	require.NoError(t, err)
	return s
}

func mustReduce(t *testing.T, s State, actions ...Action) State {
	t.Helper()
	for _, a := range actions {
		next, err := Reduce(s, a)
		require.NoError(t, err, a.Name())
		s = next
	}
	return s
}

func completed(r domain.SwapRequest, by string, at time.Time) domain.SwapRequest {
	r.Status = domain.SwapCompleted
	r.CompletedAt = &at
	r.CompletedBy = by
	return r
}

func withStatus(r domain.SwapRequest, st domain.SwapStatus) domain.SwapRequest {
	r.Status = st
	return r
}
