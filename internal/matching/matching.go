// Package matching scores how well two users complement each other and
// picks the best candidates for a seeker. Everything here is pure.
package matching

import (
	"math"
	"sort"
	"strings"

	"skillswap/internal/domain"
)

const (
	SkillPoints    = 30
	LocationPoints = 20
	SlotPoints     = 15
	RatingPoints   = 10
	StylePoints    = 15

	MaxScore  = 100
	Threshold = 30
	Limit     = 5
)

// Match is a scored candidate together with what produced the score.
type Match struct {
	User         domain.User `json:"user"`
	Score        int         `json:"score"`
	Tier         string      `json:"tier"`
	MatchedWants []string    `json:"matched_wants"`
	SharedSlots  []string    `json:"shared_slots"`
}

// Breakdown holds the raw terms of a score before clamping.
type Breakdown struct {
	MatchedWants []string
	SharedSlots  []string
	SameLocation bool
	CloseRating  bool
	SameStyle    bool
}

func (b Breakdown) Total() int {
	sum := len(b.MatchedWants)*SkillPoints + len(b.SharedSlots)*SlotPoints
	if b.SameLocation {
		sum += LocationPoints
	}
	if b.CloseRating {
		sum += RatingPoints
	}
	if b.SameStyle {
		sum += StylePoints
	}
	return min(sum, MaxScore)
}

// Score returns the compatibility of candidate for seeker in [0, 100].
func Score(seeker, candidate domain.User) int {
	return Explain(seeker, candidate).Total()
}

func Explain(seeker, candidate domain.User) Breakdown {
	return Breakdown{
		MatchedWants: matchedWants(seeker.SkillsWanted, candidate.SkillsOffered),
		SharedSlots:  sharedSlots(seeker.Availability, candidate.Availability),
		SameLocation: seeker.Location != "" && candidate.Location != "" && seeker.Location == candidate.Location,
		CloseRating:  math.Abs(seeker.Rating-candidate.Rating) < 1,
		SameStyle:    seeker.PreferredLearningStyle != "" && seeker.PreferredLearningStyle == candidate.PreferredLearningStyle,
	}
}

// matchedWants returns the wanted skill names that contain, or are contained
// in, some offered skill name. Comparison ignores case.
func matchedWants(wanted, offered []domain.Skill) []string {
	offeredNames := make([]string, 0, len(offered))
	for _, s := range offered {
		if n := strings.ToLower(s.Name); n != "" {
			offeredNames = append(offeredNames, n)
		}
	}

	out := []string{}
	for _, w := range wanted {
		name := strings.ToLower(w.Name)
		if name == "" {
			continue
		}
		for _, o := range offeredNames {
			if strings.Contains(o, name) || strings.Contains(name, o) {
				out = append(out, w.Name)
				break
			}
		}
	}
	return out
}

// sharedSlots returns the slots present in both lists, each once, in the
// order they appear in a.
func sharedSlots(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	out := []string{}
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		if inB[s] && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Eligible reports whether candidate may be suggested to seeker.
func Eligible(seeker, candidate domain.User) bool {
	return candidate.ID != seeker.ID && !candidate.IsAdmin && candidate.IsPublic
}

// FindMatches scores every eligible user, keeps those above Threshold and
// returns at most Limit of them, best first. Equal scores keep input order.
func FindMatches(seeker domain.User, users []domain.User) []Match {
	matches := make([]Match, 0, len(users))
	for _, u := range users {
		if !Eligible(seeker, u) {
			continue
		}
		b := Explain(seeker, u)
		score := b.Total()
		if score <= Threshold {
			continue
		}
		matches = append(matches, Match{
			User:         u,
			Score:        score,
			Tier:         Tier(score),
			MatchedWants: b.MatchedWants,
			SharedSlots:  b.SharedSlots,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > Limit {
		matches = matches[:Limit]
	}
	return matches
}

func Tier(score int) string {
	switch {
	case score >= 80:
		return "Perfect Match"
	case score >= 60:
		return "Good Match"
	default:
		return "Potential Match"
	}
}
