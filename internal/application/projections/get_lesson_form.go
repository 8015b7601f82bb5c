package projections

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/coach"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

// LessonFormAPI is the slice of the API client the lesson form reads.
type LessonFormAPI interface {
	IdentityReader
	CoachReader
	ListClubs(ctx context.Context, tokens api.Tokens, page, size int) (api.Page[club.Club], error)
	ListPlayers(ctx context.Context, tokens api.Tokens, pq api.PlayerQuery) (api.Page[player.Player], error)
	GetLesson(ctx context.Context, tokens api.Tokens, id int) (lesson.Lesson, error)
	ListStrokes(ctx context.Context, tokens api.Tokens, page, size int) (api.Page[lesson.Stroke], error)
}

// GetLessonFormQuery carries query parameters. LessonID 0 is a new lesson.
type GetLessonFormQuery struct {
	LessonID int
}

// GetLessonFormResult carries the query result.
type GetLessonFormResult struct {
	Lesson         lesson.Lesson
	Coaches        CoachOptions
	Clubs          []club.Club
	Players        []player.Player
	Strokes        []lesson.Stroke
	SelectedClubID int // 0 when no club is selected
	IsNew          bool
}

// SelectedClub returns the selected club, if it is one of the options.
func (r GetLessonFormResult) SelectedClub() (club.Club, bool) {
	for _, c := range r.Clubs {
		if c.ID == r.SelectedClubID {
			return c, true
		}
	}
	return club.Club{}, false
}

// GetLessonFormDeps holds dependencies for GetLessonForm.
type GetLessonFormDeps struct {
	API    LessonFormAPI
	Tokens api.Tokens
}

// QueryGetLessonForm loads the lesson (when editing) and every option list.
// Coach-role users see only themselves and the clubs on their profile, with
// their default club preselected for new lessons.
// PRE: none
// POST: any failed fetch fails the form
func QueryGetLessonForm(ctx context.Context, query GetLessonFormQuery, deps GetLessonFormDeps) (GetLessonFormResult, error) {
	user, err := deps.API.Me(ctx, deps.Tokens)
	if err != nil {
		return GetLessonFormResult{}, err
	}

	res := GetLessonFormResult{IsNew: query.LessonID == 0}
	var defaultClubID *int
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if user.IsCoach() {
			profile, err := deps.API.GetMyCoach(gctx, deps.Tokens)
			if err != nil {
				return err
			}
			res.Coaches = CoachOptions{Coaches: []coach.Coach{profile}, Locked: true}
			res.Clubs = profile.Clubs
			defaultClubID = profile.DefaultClubID
			return nil
		}
		coaches, err := deps.API.ListCoaches(gctx, deps.Tokens, 1, CoachOptionsSize)
		if err != nil {
			return err
		}
		clubs, err := deps.API.ListClubs(gctx, deps.Tokens, 1, ClubOptionsSize)
		if err != nil {
			return err
		}
		res.Coaches = CoachOptions{Coaches: coaches.Items}
		res.Clubs = clubs.Items
		return nil
	})
	g.Go(func() error {
		page, err := deps.API.ListPlayers(gctx, deps.Tokens, api.PlayerQuery{Page: 1, Size: PlayerOptionsSize})
		res.Players = page.Items
		return err
	})
	g.Go(func() error {
		page, err := deps.API.ListStrokes(gctx, deps.Tokens, 1, StrokeOptionsSize)
		res.Strokes = page.Items
		return err
	})
	if !res.IsNew {
		g.Go(func() error {
			l, err := deps.API.GetLesson(gctx, deps.Tokens, query.LessonID)
			res.Lesson = l
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return GetLessonFormResult{}, err
	}

	switch {
	case !res.IsNew && res.Lesson.ClubID != nil:
		res.SelectedClubID = *res.Lesson.ClubID
	case res.IsNew && defaultClubID != nil && hasClub(res.Clubs, *defaultClubID):
		res.SelectedClubID = *defaultClubID
	case res.IsNew && len(res.Clubs) > 0:
		res.SelectedClubID = res.Clubs[0].ID
	}
	if res.IsNew {
		res.Lesson = lesson.Lesson{Type: lesson.TypePrivate, Status: lesson.StatusDraft, PaymentStatus: lesson.PaymentPending}
		if len(res.Coaches.Coaches) > 0 && res.Coaches.Locked {
			res.Lesson.CoachID = res.Coaches.Coaches[0].ID
		}
	}
	return res, nil
}

func hasClub(clubs []club.Club, id int) bool {
	for _, c := range clubs {
		if c.ID == id {
			return true
		}
	}
	return false
}
