package web

import (
	"net/http"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/listutil"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/orchestrators"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/projections"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

// handlePlayers handles GET /players
func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryGetPlayerList(r.Context(),
		projections.GetPlayerListQuery{List: listutil.ParseListParams(r.URL.Query(), nil)},
		projections.GetPlayerListDeps{API: s.api, Tokens: s.tokens(w, r)},
	)
	if err != nil {
		s.loadFailed(w, r, "players", err, "Unable to load players")
		return
	}
	s.render(w, r, http.StatusOK, "players_list.html", page{Title: "Players", Nav: "players", Data: res})
}

// playerFormData is the data of the player form page.
type playerFormData struct {
	projections.GetPlayerFormResult
	SkillLevels []string
}

// handlePlayerForm handles GET /players/new and GET /players/{id}/edit
func (s *Server) handlePlayerForm(w http.ResponseWriter, r *http.Request) {
	id := 0
	if r.PathValue("id") != "" {
		var ok bool
		if id, ok = pathID(r, "id"); !ok {
			http.NotFound(w, r)
			return
		}
	}
	res, err := projections.QueryGetPlayerForm(r.Context(), projections.GetPlayerFormQuery{PlayerID: id}, projections.GetPlayerFormDeps{API: s.api, Tokens: s.tokens(w, r)})
	if err != nil {
		s.loadFailed(w, r, "player_form", err, "Unable to load form data")
		return
	}
	s.render(w, r, http.StatusOK, "players_form.html", page{Title: playerTitle(res.IsNew), Nav: "players", Data: playerFormData{res, player.SkillLevels}})
}

// handleSavePlayer handles POST /players and POST /players/{id}
func (s *Server) handleSavePlayer(w http.ResponseWriter, r *http.Request) {
	id := 0
	if r.PathValue("id") != "" {
		var ok bool
		if id, ok = pathID(r, "id"); !ok {
			http.NotFound(w, r)
			return
		}
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	tokens := s.tokens(w, r)
	in, err := playerForm(r.PostForm)
	if err == nil {
		_, err = orchestrators.ExecuteSavePlayer(r.Context(), orchestrators.SavePlayerInput{PlayerID: id, Player: in}, orchestrators.SavePlayerDeps{API: s.api, Tokens: tokens})
	}
	if err == nil {
		http.Redirect(w, r, "/players", http.StatusSeeOther)
		return
	}
	if s.failed(w, r, "save_player", err) {
		return
	}

	res, loadErr := projections.QueryGetPlayerForm(r.Context(), projections.GetPlayerFormQuery{}, projections.GetPlayerFormDeps{API: s.api, Tokens: tokens})
	if loadErr != nil {
		s.loadFailed(w, r, "player_form", loadErr, "Unable to load form data")
		return
	}
	res.Player = playerFromInput(id, in)
	res.IsNew = id == 0
	p := page{Title: playerTitle(res.IsNew), Nav: "players", Data: playerFormData{res, player.SkillLevels}}
	s.render(w, r, http.StatusUnprocessableEntity, "players_form.html", p.withAlert(alertDanger, message(err, "Unable to save player")))
}

func playerTitle(isNew bool) string {
	if isNew {
		return "New player"
	}
	return "Edit player"
}
