package web

import (
	"net/http"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/listutil"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/orchestrators"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/projections"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
)

// lessonListData is the data of the lesson list page.
type lessonListData struct {
	projections.GetLessonListResult
	Statuses        []string
	PaymentStatuses []string
}

// handleLessons handles GET /lessons
func (s *Server) handleLessons(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryGetLessonList(r.Context(),
		projections.GetLessonListQuery{List: listutil.ParseListParams(r.URL.Query(), projections.LessonFilterKeys)},
		projections.GetLessonListDeps{API: s.api, Tokens: s.tokens(w, r)},
	)
	if err != nil {
		s.loadFailed(w, r, "lessons", err, "Unable to load lessons")
		return
	}
	data := lessonListData{res, lesson.Statuses, lesson.PaymentStatuses}
	s.render(w, r, http.StatusOK, "lessons_list.html", page{Title: "Lessons", Nav: "lessons", Data: data})
}

// lessonFormData is the data of the lesson form page.
type lessonFormData struct {
	projections.GetLessonFormResult
	Types           []string
	Statuses        []string
	PaymentStatuses []string
}

func newLessonFormData(res projections.GetLessonFormResult) lessonFormData {
	return lessonFormData{res, lesson.Types, lesson.Statuses, lesson.PaymentStatuses}
}

func lessonTitle(isNew bool) string {
	if isNew {
		return "New lesson"
	}
	return "Edit lesson"
}

// handleLessonForm handles GET /lessons/new and GET /lessons/{id}/edit
func (s *Server) handleLessonForm(w http.ResponseWriter, r *http.Request) {
	id := 0
	if r.PathValue("id") != "" {
		var ok bool
		if id, ok = pathID(r, "id"); !ok {
			http.NotFound(w, r)
			return
		}
	}
	res, err := projections.QueryGetLessonForm(r.Context(), projections.GetLessonFormQuery{LessonID: id}, projections.GetLessonFormDeps{API: s.api, Tokens: s.tokens(w, r)})
	if err != nil {
		s.loadFailed(w, r, "lesson_form", err, "Unable to load form data")
		return
	}
	s.render(w, r, http.StatusOK, "lessons_form.html", page{Title: lessonTitle(res.IsNew), Nav: "lessons", Data: newLessonFormData(res)})
}

// handleSaveLesson handles POST /lessons and POST /lessons/{id}
func (s *Server) handleSaveLesson(w http.ResponseWriter, r *http.Request) {
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
	in, err := lessonForm(r.PostForm)
	if err == nil {
		_, err = orchestrators.ExecuteSaveLesson(r.Context(), orchestrators.SaveLessonInput{LessonID: id, Lesson: in}, orchestrators.SaveLessonDeps{API: s.api, Tokens: tokens})
	}
	if err == nil {
		http.Redirect(w, r, "/lessons", http.StatusSeeOther)
		return
	}
	if s.failed(w, r, "save_lesson", err) {
		return
	}

	res, loadErr := projections.QueryGetLessonForm(r.Context(), projections.GetLessonFormQuery{}, projections.GetLessonFormDeps{API: s.api, Tokens: tokens})
	if loadErr != nil {
		s.loadFailed(w, r, "lesson_form", loadErr, "Unable to load form data")
		return
	}
	if in.CoachID == 0 {
		in.CoachID = res.Lesson.CoachID
	}
	res.Lesson = lessonFromInput(id, in)
	res.IsNew = id == 0
	res.SelectedClubID = 0
	if in.ClubID != nil {
		res.SelectedClubID = *in.ClubID
	}
	p := page{Title: lessonTitle(res.IsNew), Nav: "lessons", Data: newLessonFormData(res)}
	s.render(w, r, http.StatusUnprocessableEntity, "lessons_form.html", p.withAlert(alertDanger, message(err, "Unable to save lesson")))
}
