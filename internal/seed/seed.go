// Package seed provides the built-in demo data the server starts with when
// no database is configured.
package seed

import (
	"fmt"
	"time"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

var (
	skillReact         = domain.Skill{ID: "1", Name: "React Development", Category: domain.CategoryTechnology, Level: domain.LevelAdvanced}
	skillGraphicDesign = domain.Skill{ID: "2", Name: "Graphic Design", Category: domain.CategoryDesign, Level: domain.LevelExpert}
	skillSpanish       = domain.Skill{ID: "3", Name: "Spanish", Category: domain.CategoryLanguages, Level: domain.LevelIntermediate}
	skillGuitar        = domain.Skill{ID: "4", Name: "Guitar Playing", Category: domain.CategoryMusic, Level: domain.LevelAdvanced}
	skillPhotography   = domain.Skill{ID: "5", Name: "Photography", Category: domain.CategoryPhotography, Level: domain.LevelExpert}
	skillCooking       = domain.Skill{ID: "6", Name: "Cooking", Category: domain.CategoryCooking, Level: domain.LevelIntermediate}
	skillWriting       = domain.Skill{ID: "7", Name: "Writing", Category: domain.CategoryWriting, Level: domain.LevelAdvanced}
	skillPython        = domain.Skill{ID: "8", Name: "Python Programming", Category: domain.CategoryTechnology, Level: domain.LevelExpert}
	skillMarketing     = domain.Skill{ID: "9", Name: "Digital Marketing", Category: domain.CategoryBusiness, Level: domain.LevelAdvanced}
	skillYoga          = domain.Skill{ID: "10", Name: "Yoga", Category: domain.CategorySports, Level: domain.LevelIntermediate}
)

// Skills is the demo skill catalog.
func Skills() []domain.Skill {
	return []domain.Skill{
		skillReact, skillGraphicDesign, skillSpanish, skillGuitar, skillPhotography,
		skillCooking, skillWriting, skillPython, skillMarketing, skillYoga,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func photoURL(id int) string {
	return fmt.Sprintf("https://images.pexels.com/photos/%d/pexels-photo-%d.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop", id, id)
}

func Users() []domain.User {
	return []domain.User{
		{
			ID:            "1",
			Name:          "John Doe",
			Email:         "john@example.com",
			Location:      "New York, NY",
			ProfilePhoto:  photoURL(2379004),
			Bio:           "Passionate developer and photographer looking to learn new creative skills.",
			SkillsOffered: []domain.Skill{skillReact, skillPhotography},
			SkillsWanted:  []domain.Skill{skillGraphicDesign, skillGuitar},
			Availability:  []string{"Weekends", "Evenings"},
			IsPublic:      true,
			Rating:        4.8,
			TotalRatings:  24,
			JoinedAt:      day(2024, time.January, 15),
		},
		{
			ID:            "2",
			Name:          "Sarah Smith",
			Email:         "sarah@example.com",
			Location:      "Los Angeles, CA",
			ProfilePhoto:  photoURL(2853592),
			Bio:           "Creative designer passionate about visual storytelling and eager to learn programming.",
			SkillsOffered: []domain.Skill{skillGraphicDesign, skillWriting},
			SkillsWanted:  []domain.Skill{skillReact, skillPython},
			Availability:  []string{"Weekday Mornings", "Weekends"},
			IsPublic:      true,
			Rating:        4.9,
			TotalRatings:  31,
			JoinedAt:      day(2024, time.February, 20),
		},
		{
			ID:            "3",
			Name:          "Mike Johnson",
			Email:         "mike@example.com",
			Location:      "Chicago, IL",
			ProfilePhoto:  photoURL(2379005),
			Bio:           "Musician and cooking enthusiast looking to expand my language skills and business knowledge.",
			SkillsOffered: []domain.Skill{skillGuitar, skillCooking},
			SkillsWanted:  []domain.Skill{skillSpanish, skillYoga},
			Availability:  []string{"Evenings", "Weekends"},
			IsPublic:      true,
			Rating:        4.7,
			TotalRatings:  18,
			JoinedAt:      day(2024, time.March, 10),
		},
		{
			ID:            "admin",
			Name:          "Admin User",
			Email:         "admin@skillswap.com",
			Location:      "Platform",
			Bio:           "Platform administrator",
			SkillsOffered: []domain.Skill{},
			SkillsWanted:  []domain.Skill{},
			Availability:  []string{},
			IsPublic:      false,
			JoinedAt:      day(2024, time.January, 1),
			IsAdmin:       true,
		},
	}
}

func SwapRequests() []domain.SwapRequest {
	return []domain.SwapRequest{
		{
			ID:             "req1",
			FromUserID:     "1",
			ToUserID:       "2",
			SkillOffered:   skillReact,
			SkillRequested: skillGraphicDesign,
			Status:         domain.SwapPending,
			Message:        "Hi! I'd love to help you learn React in exchange for some graphic design lessons.",
			CreatedAt:      time.Date(2024, time.December, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:             "req2",
			FromUserID:     "2",
			ToUserID:       "3",
			SkillOffered:   skillGraphicDesign,
			SkillRequested: skillGuitar,
			Status:         domain.SwapAccepted,
			Message:        "I can teach you design fundamentals in exchange for guitar lessons!",
			CreatedAt:      time.Date(2024, time.December, 10, 14, 30, 0, 0, time.UTC),
		},
	}
}

// Demo builds the demo state. It fails only if the literals above break an
// invariant. The demo swap between Sarah and Mike is accepted but not yet
// completed, so the demo starts without ratings.
func Demo() (store.State, error) {
	return store.Build(Users(), SwapRequests(), nil)
}

func Empty() store.State {
	return store.State{}
}
