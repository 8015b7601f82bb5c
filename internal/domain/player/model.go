package player

import (
	"errors"
	"strings"
)

// Skill levels offered by the player form.
var SkillLevels = []string{"beginner", "intermediate", "advanced", "competitive"}

// ErrFullNameRequired is returned when a player payload has no name.
var ErrFullNameRequired = errors.New("Full name is required")

// CoachRef is the coach summary embedded in a player.
type CoachRef struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
}

// Player is a student coached by one or more coaches.
type Player struct {
	ID         int        `json:"id"`
	FullName   string     `json:"full_name"`
	Email      *string    `json:"email"`
	Phone      *string    `json:"phone"`
	BirthDate  *string    `json:"birth_date"`
	SkillLevel *string    `json:"skill_level"`
	Notes      *string    `json:"notes"`
	Active     bool       `json:"active"`
	Coaches    []CoachRef `json:"coaches"`
}

// SkillKey returns the skill level used for badge styling, "unassigned" when missing.
func (p Player) SkillKey() string {
	if p.SkillLevel == nil || *p.SkillLevel == "" {
		return "unassigned"
	}
	return *p.SkillLevel
}

// CoachIDs returns the ids of the assigned coaches.
func (p Player) CoachIDs() []int {
	ids := make([]int, 0, len(p.Coaches))
	for _, c := range p.Coaches {
		ids = append(ids, c.ID)
	}
	return ids
}

// Ref is the minimal player summary embedded in lessons.
type Ref struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
}

// Names joins player names with ", ".
func Names(refs []Ref) string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.FullName)
	}
	return strings.Join(names, ", ")
}

// Input is the payload for creating or updating a player.
type Input struct {
	FullName   string  `json:"full_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	BirthDate  *string `json:"birth_date"`
	SkillLevel string  `json:"skill_level"`
	Notes      *string `json:"notes"`
	Active     bool    `json:"active"`
	CoachIDs   []int   `json:"coach_ids"`
}

// Validate checks the player payload.
// PRE: none
// POST: returns ErrFullNameRequired when the name is blank
func (in Input) Validate() error {
	if strings.TrimSpace(in.FullName) == "" {
		return ErrFullNameRequired
	}
	return nil
}
