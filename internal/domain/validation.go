package domain

import (
	"fmt"
	"strings"
)

func ValidateSkill(s Skill) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(s.ID) == "" {
		fields["id"] = "required"
	}
	if strings.TrimSpace(s.Name) == "" {
		fields["name"] = "required"
	}
	if !s.Category.Valid() {
		fields["category"] = "unknown category"
	}
	if !s.Level.Valid() {
		fields["level"] = "must be Beginner, Intermediate, Advanced or Expert"
	}
	return fields
}

func ValidateUser(u User) error {
	fields := map[string]string{}
	if strings.TrimSpace(u.ID) == "" {
		fields["id"] = "required"
	}
	if strings.TrimSpace(u.Name) == "" {
		fields["name"] = "required"
	}
	if u.TotalRatings < 0 {
		fields["total_ratings"] = "must be >= 0"
	}
	if u.Rating < 0 || u.Rating > MaxRating {
		fields["rating"] = fmt.Sprintf("must be between 0 and %d", MaxRating)
	} else if u.TotalRatings == 0 && u.Rating != 0 {
		fields["rating"] = "must be 0 when there are no ratings"
	}
	if !u.PreferredLearningStyle.Valid() {
		fields["preferred_learning_style"] = "unknown learning style"
	}
	if !u.VerificationStatus.Valid() {
		fields["verification_status"] = "unknown verification status"
	}
	addSkillErrors(fields, "skills_offered", u.SkillsOffered)
	addSkillErrors(fields, "skills_wanted", u.SkillsWanted)

	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func addSkillErrors(fields map[string]string, prefix string, skills []Skill) {
	for i, s := range skills {
		for k, v := range ValidateSkill(s) {
			fields[fmt.Sprintf("%s[%d].%s", prefix, i, k)] = v
		}
	}
}

// ValidateSwapRequest checks the fields of a request on their own.
// Whether the referenced users exist is checked by the store.
func ValidateSwapRequest(r SwapRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(r.ID) == "" {
		fields["id"] = "required"
	}
	if r.FromUserID == "" {
		fields["from_user_id"] = "required"
	}
	if r.ToUserID == "" {
		fields["to_user_id"] = "required"
	}
	if r.FromUserID != "" && r.FromUserID == r.ToUserID {
		fields["to_user_id"] = "cannot swap with yourself"
	}
	if r.SkillOffered.ID == "" {
		fields["skill_offered"] = "required"
	}
	if r.SkillRequested.ID == "" {
		fields["skill_requested"] = "required"
	}
	if !r.Status.Valid() {
		fields["status"] = "unknown status"
	}
	if r.CreatedAt.IsZero() {
		fields["created_at"] = "required"
	}
	if r.Status == SwapCompleted {
		switch {
		case r.CompletedAt == nil:
			fields["completed_at"] = "required when completed"
		case !r.CompletedAt.After(r.CreatedAt):
			fields["completed_at"] = "must be after created_at"
		}
		if r.CompletedBy != "" && !r.Involves(r.CompletedBy) {
			fields["completed_by"] = "must be a participant"
		}
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func ValidateRating(r Rating) error {
	fields := map[string]string{}
	if strings.TrimSpace(r.ID) == "" {
		fields["id"] = "required"
	}
	if r.SwapRequestID == "" {
		fields["swap_request_id"] = "required"
	}
	if r.FromUserID == "" {
		fields["from_user_id"] = "required"
	}
	if r.ToUserID == "" {
		fields["to_user_id"] = "required"
	}
	if r.Value < MinRating || r.Value > MaxRating {
		fields["rating"] = fmt.Sprintf("must be between %d and %d", MinRating, MaxRating)
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}
