package orchestrators

import (
	"context"
	"log/slog"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
)

// LessonAPI is the slice of the API client used to save lessons.
type LessonAPI interface {
	IdentityAPI
	GetClub(ctx context.Context, tokens api.Tokens, id int) (club.Club, error)
	CreateLesson(ctx context.Context, tokens api.Tokens, in lesson.Input) (lesson.Lesson, error)
	UpdateLesson(ctx context.Context, tokens api.Tokens, id int, in lesson.Input) (lesson.Lesson, error)
}

// SaveLessonInput carries a create (LessonID 0) or update.
type SaveLessonInput struct {
	LessonID int
	Lesson   lesson.Input
}

// SaveLessonDeps holds dependencies for SaveLesson.
type SaveLessonDeps struct {
	API    LessonAPI
	Tokens api.Tokens
}

// ExecuteSaveLesson validates and persists a lesson.
// PRE: none
// POST: non-club lessons carry at least one player; CourtIDs only holds
// courts of the selected club (none without a club); a coach-role user is
// always the lesson's coach
func ExecuteSaveLesson(ctx context.Context, input SaveLessonInput, deps SaveLessonDeps) (lesson.Lesson, error) {
	in := input.Lesson
	if err := in.Validate(); err != nil {
		return lesson.Lesson{}, invalid(err)
	}

	coachID, forced, err := ownCoachID(ctx, deps.API, deps.Tokens)
	if err != nil {
		return lesson.Lesson{}, err
	}
	if forced {
		in.CoachID = coachID
	}

	courts, err := clubCourts(ctx, deps, in.ClubID, in.CourtIDs)
	if err != nil {
		return lesson.Lesson{}, err
	}
	in.CourtIDs = courts
	if in.PlayerIDs == nil {
		in.PlayerIDs = []int{}
	}
	if in.StrokeCodes == nil {
		in.StrokeCodes = []string{}
	}

	var saved lesson.Lesson
	if input.LessonID == 0 {
		saved, err = deps.API.CreateLesson(ctx, deps.Tokens, in)
	} else {
		saved, err = deps.API.UpdateLesson(ctx, deps.Tokens, input.LessonID, in)
	}
	if err != nil {
		return lesson.Lesson{}, err
	}
	slog.Info("lesson_event", "event", "saved", "lesson_id", saved.ID, "created", input.LessonID == 0)
	return saved, nil
}

// clubCourts keeps the selected court ids that belong to the club.
func clubCourts(ctx context.Context, deps SaveLessonDeps, clubID *int, selected []int) ([]int, error) {
	out := []int{}
	if clubID == nil || len(selected) == 0 {
		return out, nil
	}
	c, err := deps.API.GetClub(ctx, deps.Tokens, *clubID)
	if err != nil {
		return nil, err
	}
	for _, id := range selected {
		if _, ok := c.FindCourt(id); ok {
			out = append(out, id)
		}
	}
	return out, nil
}
