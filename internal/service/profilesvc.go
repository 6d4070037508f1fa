package service

import (
	"context"
	"strings"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

// ProfileUpdate changes only the fields that are non-nil.
type ProfileUpdate struct {
	Name                   *string
	Location               *string
	Bio                    *string
	ProfilePhoto           *string
	SkillsOffered          *[]domain.Skill
	SkillsWanted           *[]domain.Skill
	Availability           *[]string
	IsPublic               *bool
	PreferredLearningStyle *domain.LearningStyle
	Timezone               *string
	Languages              *[]string
}

type ProfileService struct {
	Store StateStore
	NewID func() string
}

func (s *ProfileService) Update(ctx context.Context, userID string, in ProfileUpdate) (domain.User, error) {
	u, err := store.FindUser(s.Store.Snapshot(), userID)
	if err != nil {
		return domain.User{}, err
	}
	u = u.Clone()

	fields := map[string]string{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		switch {
		case name == "":
			fields["name"] = "required"
		case len(name) > 80:
			fields["name"] = "must be 80 characters or less"
		}
		u.Name = name
	}
	if in.Location != nil {
		u.Location = strings.TrimSpace(*in.Location)
	}
	if in.Bio != nil {
		if len(*in.Bio) > 500 {
			fields["bio"] = "must be 500 characters or less"
		}
		u.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.ProfilePhoto != nil {
		u.ProfilePhoto = strings.TrimSpace(*in.ProfilePhoto)
	}
	if in.SkillsOffered != nil {
		u.SkillsOffered = s.normalizeSkills(*in.SkillsOffered)
	}
	if in.SkillsWanted != nil {
		u.SkillsWanted = s.normalizeSkills(*in.SkillsWanted)
	}
	if in.Availability != nil {
		slots, bad := normalizeSlots(*in.Availability)
		if bad != "" {
			fields["availability"] = "unknown slot " + bad
		}
		u.Availability = slots
	}
	if in.IsPublic != nil {
		u.IsPublic = *in.IsPublic
	}
	if in.PreferredLearningStyle != nil {
		u.PreferredLearningStyle = *in.PreferredLearningStyle
	}
	if in.Timezone != nil {
		u.Timezone = strings.TrimSpace(*in.Timezone)
	}
	if in.Languages != nil {
		u.Languages = dedupe(*in.Languages)
	}
	if len(fields) > 0 {
		return domain.User{}, domain.NewValidationError(fields)
	}

	state, err := s.Store.Dispatch(ctx, store.UpdateUser{User: u})
	if err != nil {
		return domain.User{}, err
	}
	return store.FindUser(state, userID)
}

// normalizeSkills assigns IDs to new skills and trims names.
func (s *ProfileService) normalizeSkills(in []domain.Skill) []domain.Skill {
	out := make([]domain.Skill, 0, len(in))
	for _, sk := range in {
		sk.Name = strings.TrimSpace(sk.Name)
		sk.Description = strings.TrimSpace(sk.Description)
		if strings.TrimSpace(sk.ID) == "" {
			if s.NewID != nil {
				sk.ID = s.NewID()
			} else {
				sk.ID = newID()
			}
		}
		out = append(out, sk)
	}
	return out
}

func normalizeSlots(in []string) ([]string, string) {
	out := dedupe(in)
	for _, slot := range out {
		if !domain.ValidSlot(slot) {
			return out, slot
		}
	}
	return out, ""
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
