package domain

type Category string

const (
	CategoryTechnology  Category = "Technology"
	CategoryDesign      Category = "Design"
	CategoryBusiness    Category = "Business"
	CategoryLanguages   Category = "Languages"
	CategoryMusic       Category = "Music"
	CategorySports      Category = "Sports"
	CategoryCooking     Category = "Cooking"
	CategoryCrafts      Category = "Crafts"
	CategoryWriting     Category = "Writing"
	CategoryPhotography Category = "Photography"
)

var Categories = []Category{
	CategoryTechnology,
	CategoryDesign,
	CategoryBusiness,
	CategoryLanguages,
	CategoryMusic,
	CategorySports,
	CategoryCooking,
	CategoryCrafts,
	CategoryWriting,
	CategoryPhotography,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelExpert       Level = "Expert"
)

var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	default:
		return false
	}
}

// Skill is a value object. The same skill may appear on many users.
type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Level       Level    `json:"level"`
	Description string   `json:"description,omitempty"`
}

func FindSkill(skills []Skill, id string) (Skill, bool) {
	for _, s := range skills {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}
