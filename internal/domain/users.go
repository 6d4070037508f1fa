package domain

import "time"

type LearningStyle string

const (
	LearningStyleNone        LearningStyle = ""
	LearningStyleVisual      LearningStyle = "visual"
	LearningStyleAuditory    LearningStyle = "auditory"
	LearningStyleKinesthetic LearningStyle = "kinesthetic"
	LearningStyleReading     LearningStyle = "reading"
)

var LearningStyles = []LearningStyle{
	LearningStyleVisual,
	LearningStyleAuditory,
	LearningStyleKinesthetic,
	LearningStyleReading,
}

func (s LearningStyle) Valid() bool {
	switch s {
	case LearningStyleNone, LearningStyleVisual, LearningStyleAuditory, LearningStyleKinesthetic, LearningStyleReading:
		return true
	default:
		return false
	}
}

type VerificationStatus string

const (
	VerificationNone     VerificationStatus = ""
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationExpert   VerificationStatus = "expert"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationNone, VerificationPending, VerificationVerified, VerificationExpert:
		return true
	default:
		return false
	}
}

var AvailabilitySlots = []string{
	"Weekday Mornings",
	"Weekday Afternoons",
	"Weekday Evenings",
	"Weekend Mornings",
	"Weekend Afternoons",
	"Weekend Evenings",
	"Weekends",
	"Evenings",
}

func ValidSlot(slot string) bool {
	for _, s := range AvailabilitySlots {
		if s == slot {
			return true
		}
	}
	return false
}

type User struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Location      string   `json:"location,omitempty"`
	Bio           string   `json:"bio,omitempty"`
	ProfilePhoto  string   `json:"profile_photo,omitempty"`
	SkillsOffered []Skill  `json:"skills_offered"`
	SkillsWanted  []Skill  `json:"skills_wanted"`
	Availability  []string `json:"availability"`
	IsPublic      bool     `json:"is_public"`
	// Rating is the stored aggregate. It is zero while TotalRatings is zero
	// and is not recomputed when ratings are added.
	Rating       float64   `json:"rating"`
	TotalRatings int       `json:"total_ratings"`
	JoinedAt     time.Time `json:"joined_at"`
	IsAdmin      bool      `json:"is_admin"`

	PreferredLearningStyle LearningStyle      `json:"preferred_learning_style,omitempty"`
	Timezone               string             `json:"timezone,omitempty"`
	Languages              []string           `json:"languages,omitempty"`
	VerificationStatus     VerificationStatus `json:"verification_status,omitempty"`
}

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	u.SkillsOffered = append([]Skill(nil), u.SkillsOffered...)
	u.SkillsWanted = append([]Skill(nil), u.SkillsWanted...)
	u.Availability = append([]string(nil), u.Availability...)
	u.Languages = append([]string(nil), u.Languages...)
	return u
}

// UserSummary is the short form shown in lists.
type UserSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location,omitempty"`
	ProfilePhoto string  `json:"profile_photo,omitempty"`
	Rating       float64 `json:"rating"`
	TotalRatings int     `json:"total_ratings"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		Location:     u.Location,
		ProfilePhoto: u.ProfilePhoto,
		Rating:       u.Rating,
		TotalRatings: u.TotalRatings,
	}
}
