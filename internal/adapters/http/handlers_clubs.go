package web

import (
	"fmt"
	"net/http"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/formutil"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/orchestrators"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/projections"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
)

// clubFormData is the data of the club form page.
type clubFormData struct {
	Club  club.Club
	IsNew bool
}

// handleClubs handles GET /clubs
func (s *Server) handleClubs(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryGetClubList(r.Context(),
		projections.GetClubListQuery{Search: r.URL.Query().Get("q")},
		projections.GetClubListDeps{API: s.api, Tokens: s.tokens(w, r)},
	)
	if err != nil {
		s.loadFailed(w, r, "clubs", err, "Unable to load clubs")
		return
	}
	s.render(w, r, http.StatusOK, "clubs_list.html", page{Title: "Clubs", Nav: "clubs", Data: res})
}

// handleClubForm handles GET /clubs/new and GET /clubs/{id}/edit
func (s *Server) handleClubForm(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("id") == "" {
		s.render(w, r, http.StatusOK, "clubs_form.html", page{Title: "New club", Nav: "clubs", Data: clubFormData{IsNew: true}})
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	c, err := projections.QueryGetClub(r.Context(), projections.GetClubQuery{ClubID: id}, projections.GetClubListDeps{API: s.api, Tokens: s.tokens(w, r)})
	if err != nil {
		s.loadFailed(w, r, "club", err, "Unable to load club")
		return
	}
	s.render(w, r, http.StatusOK, "clubs_form.html", page{Title: "Edit club", Nav: "clubs", Data: clubFormData{Club: c}})
}

// handleSaveClub handles POST /clubs and POST /clubs/{id}
func (s *Server) handleSaveClub(w http.ResponseWriter, r *http.Request) {
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
	in := clubForm(r.PostForm)
	tokens := s.tokens(w, r)
	saved, err := orchestrators.ExecuteSaveClub(r.Context(), orchestrators.SaveClubInput{ClubID: id, Club: in}, orchestrators.ClubDeps{API: s.api, Tokens: tokens})
	if err != nil {
		if s.failed(w, r, "save_club", err) {
			return
		}
		var courts []club.Court
		if id != 0 {
			if current, err := s.api.GetClub(r.Context(), tokens, id); err == nil {
				courts = current.Courts
			}
		}
		data := clubFormData{Club: clubFromInput(id, in, courts), IsNew: id == 0}
		p := page{Title: "Club", Nav: "clubs", Data: data}
		s.render(w, r, http.StatusUnprocessableEntity, "clubs_form.html", p.withAlert(alertDanger, message(err, "Unable to save club")))
		return
	}
	if id == 0 {
		// New clubs continue to the edit page so courts can be added.
		http.Redirect(w, r, fmt.Sprintf("/clubs/%d/edit", saved.ID), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/clubs", http.StatusSeeOther)
}

// handleAddCourt handles POST /clubs/{id}/courts
func (s *Server) handleAddCourt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	s.manageCourt(w, r, orchestrators.ManageCourtInput{
		ClubID: id,
		Action: orchestrators.CourtAdd,
		Name:   formutil.String(r.PostForm, "court_name"),
		Active: formutil.Bool(r.PostForm, "court_active"),
	}, "Unable to add court")
}

// handleCourtAction handles POST /clubs/{id}/courts/{courtID}/{action}
// for rename, toggle and delete.
func (s *Server) handleCourtAction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	courtID, ok2 := pathID(r, "courtID")
	if !ok || !ok2 {
		http.NotFound(w, r)
		return
	}
	action := r.PathValue("action")
	switch action {
	case orchestrators.CourtRename, orchestrators.CourtToggle, orchestrators.CourtDelete:
	default:
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	s.manageCourt(w, r, orchestrators.ManageCourtInput{
		ClubID:  id,
		CourtID: courtID,
		Action:  action,
		Name:    formutil.String(r.PostForm, "court_name"),
	}, "Unable to update court")
}

// manageCourt runs a court action and returns to the club page, re-rendering
// it with an alert on failure.
func (s *Server) manageCourt(w http.ResponseWriter, r *http.Request, in orchestrators.ManageCourtInput, fallback string) {
	tokens := s.tokens(w, r)
	deps := orchestrators.ClubDeps{API: s.api, Tokens: tokens}
	err := orchestrators.ExecuteManageCourt(r.Context(), in, deps)
	if err == nil {
		http.Redirect(w, r, fmt.Sprintf("/clubs/%d/edit", in.ClubID), http.StatusSeeOther)
		return
	}
	if s.failed(w, r, "court_"+in.Action, err) {
		return
	}
	c, loadErr := projections.QueryGetClub(r.Context(), projections.GetClubQuery{ClubID: in.ClubID}, projections.GetClubListDeps{API: s.api, Tokens: tokens})
	if loadErr != nil {
		s.loadFailed(w, r, "club", loadErr, "Unable to load club")
		return
	}
	p := page{Title: "Edit club", Nav: "clubs", Data: clubFormData{Club: c}}
	s.render(w, r, http.StatusUnprocessableEntity, "clubs_form.html", p.withAlert(alertDanger, message(err, fallback)))
}
