package coach

import (
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/money"
)

// Coach is a coach profile.
type Coach struct {
	ID            int           `json:"id"`
	FullName      string        `json:"full_name"`
	Email         string        `json:"email"`
	Phone         *string       `json:"phone"`
	HourlyRate    *money.Amount `json:"hourly_rate"`
	AddressLine1  *string       `json:"address_line1"`
	AddressLine2  *string       `json:"address_line2"`
	City          *string       `json:"city"`
	Postcode      *string       `json:"postcode"`
	Country       *string       `json:"country"`
	Clubs         []club.Club   `json:"clubs"`
	DefaultClubID *int          `json:"default_club_id"`
}

// ClubIDs returns the ids of the clubs the coach works at.
func (c Coach) ClubIDs() []int {
	ids := make([]int, 0, len(c.Clubs))
	for _, cl := range c.Clubs {
		ids = append(ids, cl.ID)
	}
	return ids
}

// SettingsInput is the PATCH payload for /coaches/me.
// Every field is nullable; empty form values are sent as null.
type SettingsInput struct {
	FullName      *string  `json:"full_name"`
	Email         *string  `json:"email"`
	Phone         *string  `json:"phone"`
	HourlyRate    *float64 `json:"hourly_rate"`
	AddressLine1  *string  `json:"address_line1"`
	AddressLine2  *string  `json:"address_line2"`
	City          *string  `json:"city"`
	Postcode      *string  `json:"postcode"`
	Country       *string  `json:"country"`
	ClubIDs       []int    `json:"club_ids"`
	DefaultClubID *int     `json:"default_club_id"`
}

// Normalize makes the default club one of the coach's clubs.
// PRE: none
// POST: ClubIDs is non-nil and contains DefaultClubID when it is set
func (in *SettingsInput) Normalize() {
	if in.ClubIDs == nil {
		in.ClubIDs = []int{}
	}
	if in.DefaultClubID == nil {
		return
	}
	for _, id := range in.ClubIDs {
		if id == *in.DefaultClubID {
			return
		}
	}
	in.ClubIDs = append(in.ClubIDs, *in.DefaultClubID)
}
