package projections

import (
	"context"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/coach"
)

// CoachProfileReader reads the signed-in coach's profile.
type CoachProfileReader interface {
	GetMyCoach(ctx context.Context, tokens api.Tokens) (coach.Coach, error)
}

// GetCoachSettingsResult carries the query result.
type GetCoachSettingsResult struct {
	Profile coach.Coach
	Clubs   []club.Club // clubs the coach can pick from
}

// Selected reports whether the coach works at the club.
func (r GetCoachSettingsResult) Selected(clubID int) bool {
	for _, id := range r.Profile.ClubIDs() {
		if id == clubID {
			return true
		}
	}
	return false
}

// IsDefault reports whether the club is the coach's default club.
func (r GetCoachSettingsResult) IsDefault(clubID int) bool {
	return r.Profile.DefaultClubID != nil && *r.Profile.DefaultClubID == clubID
}

// GetCoachSettingsDeps holds dependencies for GetCoachSettings.
type GetCoachSettingsDeps struct {
	API    CoachProfileReader
	Tokens api.Tokens
}

// QueryGetCoachSettings loads the profile shown on the settings page.
// PRE: the user has a coach profile
// POST: Clubs are the clubs already on the profile
func QueryGetCoachSettings(ctx context.Context, deps GetCoachSettingsDeps) (GetCoachSettingsResult, error) {
	profile, err := deps.API.GetMyCoach(ctx, deps.Tokens)
	if err != nil {
		return GetCoachSettingsResult{}, err
	}
	return GetCoachSettingsResult{Profile: profile, Clubs: profile.Clubs}, nil
}
