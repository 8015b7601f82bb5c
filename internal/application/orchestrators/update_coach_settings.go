package orchestrators

import (
	"context"
	"log/slog"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/coach"
)

// MsgProfileUpdated confirms a saved coach profile.
const MsgProfileUpdated = "Profile updated successfully."

// CoachSettingsAPI is the slice of the API client used by coach settings.
type CoachSettingsAPI interface {
	UpdateMyCoach(ctx context.Context, tokens api.Tokens, in coach.SettingsInput) (coach.Coach, error)
}

// CoachSettingsDeps holds dependencies for UpdateCoachSettings.
type CoachSettingsDeps struct {
	API    CoachSettingsAPI
	Tokens api.Tokens
}

// ExecuteUpdateCoachSettings patches the signed-in coach's profile.
// PRE: blank form values are already nil
// POST: the default club is part of the sent club_ids
func ExecuteUpdateCoachSettings(ctx context.Context, in coach.SettingsInput, deps CoachSettingsDeps) (coach.Coach, error) {
	in.Normalize()
	saved, err := deps.API.UpdateMyCoach(ctx, deps.Tokens, in)
	if err != nil {
		return coach.Coach{}, err
	}
	slog.Info("coach_event", "event", "settings_updated", "coach_id", saved.ID, "clubs", len(in.ClubIDs))
	return saved, nil
}
