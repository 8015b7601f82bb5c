package projections

import (
	"context"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/account"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/coach"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

// IdentityReader resolves the signed-in user and their coach profile.
type IdentityReader interface {
	Me(ctx context.Context, tokens api.Tokens) (account.User, error)
	GetMyCoach(ctx context.Context, tokens api.Tokens) (coach.Coach, error)
}

// ClubReader reads clubs.
type ClubReader interface {
	ListClubs(ctx context.Context, tokens api.Tokens, page, size int) (api.Page[club.Club], error)
	GetClub(ctx context.Context, tokens api.Tokens, id int) (club.Club, error)
}

// PlayerReader reads players.
type PlayerReader interface {
	ListPlayers(ctx context.Context, tokens api.Tokens, pq api.PlayerQuery) (api.Page[player.Player], error)
	GetPlayer(ctx context.Context, tokens api.Tokens, id int) (player.Player, error)
}

// CoachReader lists coaches.
type CoachReader interface {
	ListCoaches(ctx context.Context, tokens api.Tokens, page, size int) (api.Page[coach.Coach], error)
}

// LessonReader reads lessons and the stroke catalogue.
type LessonReader interface {
	ListLessons(ctx context.Context, tokens api.Tokens, lq api.LessonQuery) (api.Page[lesson.Lesson], error)
	GetLesson(ctx context.Context, tokens api.Tokens, id int) (lesson.Lesson, error)
	ListStrokes(ctx context.Context, tokens api.Tokens, page, size int) (api.Page[lesson.Stroke], error)
}

// InvoiceReader reads invoices.
type InvoiceReader interface {
	ListInvoices(ctx context.Context, tokens api.Tokens, iq api.InvoiceQuery) (api.Page[invoice.Invoice], error)
	GetInvoice(ctx context.Context, tokens api.Tokens, id int) (invoice.Invoice, error)
}

// Option list sizes requested from the API.
const (
	ClubOptionsSize   = 200
	CoachOptionsSize  = 100
	PlayerOptionsSize = 200
	StrokeOptionsSize = 100
)

// CoachOptions are the coaches a form may assign.
type CoachOptions struct {
	Coaches []coach.Coach
	Locked  bool // the user is a coach and can only pick themselves
}

// coachOptions lists selectable coaches: coach-role users get only their own
// profile, everyone else the coach list.
func coachOptions(ctx context.Context, ids IdentityReader, coaches CoachReader, tokens api.Tokens, user account.User) (CoachOptions, error) {
	if user.IsCoach() {
		profile, err := ids.GetMyCoach(ctx, tokens)
		if err != nil {
			return CoachOptions{}, err
		}
		return CoachOptions{Coaches: []coach.Coach{profile}, Locked: true}, nil
	}
	page, err := coaches.ListCoaches(ctx, tokens, 1, CoachOptionsSize)
	if err != nil {
		return CoachOptions{}, err
	}
	return CoachOptions{Coaches: page.Items}, nil
}
