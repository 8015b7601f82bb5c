package club

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrNameRequired      = errors.New("Name is required")
	ErrCourtNameRequired = errors.New("Court name is required")
)

// Court is a playing court belonging to a club.
type Court struct {
	ID     int    `json:"id"`
	ClubID int    `json:"club_id,omitempty"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Club is a venue where lessons take place.
type Club struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	Postcode     *string `json:"postcode"`
	Country      *string `json:"country"`
	Courts       []Court `json:"courts"`
}

// Location joins city and country, skipping missing parts.
func (c Club) Location() string {
	return joinPresent(", ", c.City, c.Country)
}

// Contacts returns the present contact details (email, phone) in order.
func (c Club) Contacts() []string {
	var out []string
	for _, v := range []*string{c.Email, c.Phone} {
		if v != nil && *v != "" {
			out = append(out, *v)
		}
	}
	return out
}

// CourtCount returns the number of courts.
func (c Club) CourtCount() int {
	return len(c.Courts)
}

// FindCourt looks up a court by id.
func (c Club) FindCourt(id int) (Court, bool) {
	for _, ct := range c.Courts {
		if ct.ID == id {
			return ct, true
		}
	}
	return Court{}, false
}

// MatchesSearch reports whether the club matches a free-text term on
// name, city, email or phone. Blank terms match everything.
// PRE: none
// POST: comparison is case-insensitive and the term is trimmed
func (c Club) MatchesSearch(term string) bool {
	normalized := strings.ToLower(strings.TrimSpace(term))
	if normalized == "" {
		return true
	}
	candidates := []string{c.Name}
	for _, v := range []*string{c.City, c.Email, c.Phone} {
		if v != nil {
			candidates = append(candidates, *v)
		}
	}
	for _, v := range candidates {
		if v != "" && strings.Contains(strings.ToLower(v), normalized) {
			return true
		}
	}
	return false
}

// Input is the payload for creating or updating a club.
type Input struct {
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	Postcode     *string `json:"postcode"`
	Country      *string `json:"country"`
}

// Validate checks the club payload.
// PRE: fields have been trimmed
// POST: returns ErrNameRequired if Name is empty
func (in Input) Validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// CourtInput is the payload for creating a court or patching one.
// Nil fields are omitted from PATCH requests.
type CourtInput struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// NewCourtInput builds a create payload.
// PRE: none
// POST: returns ErrCourtNameRequired if the trimmed name is empty
func NewCourtInput(name string, active bool) (CourtInput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CourtInput{}, ErrCourtNameRequired
	}
	return CourtInput{Name: &name, Active: &active}, nil
}

func joinPresent(sep string, parts ...*string) string {
	var present []string
	for _, p := range parts {
		if p != nil && *p != "" {
			present = append(present, *p)
		}
	}
	return strings.Join(present, sep)
}
