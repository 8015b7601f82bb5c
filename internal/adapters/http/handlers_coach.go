package web

import (
	"net/http"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/orchestrators"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/projections"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/money"
)

// handleCoachSettings handles GET /coach/settings
func (s *Server) handleCoachSettings(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryGetCoachSettings(r.Context(), projections.GetCoachSettingsDeps{API: s.api, Tokens: s.tokens(w, r)})
	if err != nil {
		s.loadFailed(w, r, "coach_settings", err, "Unable to load your profile")
		return
	}
	s.render(w, r, http.StatusOK, "coach_settings.html", page{Title: "Coach settings", Nav: "settings", Data: res})
}

// handleSaveCoachSettings handles POST /coach/settings. The page is
// re-rendered in place with the saved profile.
func (s *Server) handleSaveCoachSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	tokens := s.tokens(w, r)
	current, err := projections.QueryGetCoachSettings(r.Context(), projections.GetCoachSettingsDeps{API: s.api, Tokens: tokens})
	if err != nil {
		s.loadFailed(w, r, "coach_settings", err, "Unable to load your profile")
		return
	}

	in, err := coachSettingsForm(r.PostForm)
	if err == nil {
		saved, saveErr := orchestrators.ExecuteUpdateCoachSettings(r.Context(), in, orchestrators.CoachSettingsDeps{API: s.api, Tokens: tokens})
		if saveErr == nil {
			p := page{Title: "Coach settings", Nav: "settings", Data: projections.GetCoachSettingsResult{Profile: saved, Clubs: current.Clubs}}
			s.render(w, r, http.StatusOK, "coach_settings.html", p.withAlert(alertSuccess, orchestrators.MsgProfileUpdated))
			return
		}
		err = saveErr
	}
	if s.failed(w, r, "coach_settings", err) {
		return
	}

	// Redisplay the submitted values over the stored profile.
	shown := current.Profile
	shown.FullName = deref(in.FullName)
	shown.Email = deref(in.Email)
	shown.Phone = in.Phone
	shown.AddressLine1 = in.AddressLine1
	shown.AddressLine2 = in.AddressLine2
	shown.City = in.City
	shown.Postcode = in.Postcode
	shown.Country = in.Country
	shown.DefaultClubID = in.DefaultClubID
	if in.HourlyRate != nil {
		rate := money.Amount(*in.HourlyRate)
		shown.HourlyRate = &rate
	}
	shown.Clubs = shown.Clubs[:0:0]
	for _, c := range current.Clubs {
		if hasInt(in.ClubIDs, c.ID) {
			shown.Clubs = append(shown.Clubs, c)
		}
	}
	p := page{Title: "Coach settings", Nav: "settings", Data: projections.GetCoachSettingsResult{Profile: shown, Clubs: current.Clubs}}
	s.render(w, r, http.StatusUnprocessableEntity, "coach_settings.html", p.withAlert(alertDanger, message(err, "Unable to update profile")))
}
