package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
)

// ClubAPI is the slice of the API client used for clubs and courts.
type ClubAPI interface {
	GetClub(ctx context.Context, tokens api.Tokens, id int) (club.Club, error)
	CreateClub(ctx context.Context, tokens api.Tokens, in club.Input) (club.Club, error)
	UpdateClub(ctx context.Context, tokens api.Tokens, id int, in club.Input) (club.Club, error)
	CreateCourt(ctx context.Context, tokens api.Tokens, clubID int, in club.CourtInput) (club.Court, error)
	UpdateCourt(ctx context.Context, tokens api.Tokens, clubID, courtID int, in club.CourtInput) (club.Court, error)
	DeleteCourt(ctx context.Context, tokens api.Tokens, clubID, courtID int) error
}

// ClubDeps holds dependencies for the club orchestrators.
type ClubDeps struct {
	API    ClubAPI
	Tokens api.Tokens
}

// SaveClubInput carries a create (ClubID 0) or update.
type SaveClubInput struct {
	ClubID int
	Club   club.Input
}

// ExecuteSaveClub validates and persists a club.
// PRE: none
// POST: returns the saved club; ValidationError when the name is blank
func ExecuteSaveClub(ctx context.Context, input SaveClubInput, deps ClubDeps) (club.Club, error) {
	in := input.Club
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return club.Club{}, invalid(err)
	}

	var (
		saved club.Club
		err   error
	)
	if input.ClubID == 0 {
		saved, err = deps.API.CreateClub(ctx, deps.Tokens, in)
	} else {
		saved, err = deps.API.UpdateClub(ctx, deps.Tokens, input.ClubID, in)
	}
	if err != nil {
		return club.Club{}, err
	}
	slog.Info("club_event", "event", "saved", "club_id", saved.ID, "created", input.ClubID == 0)
	return saved, nil
}

// Court errors
var (
	ErrCourtNotFound      = errors.New("Court not found")
	ErrUnknownCourtAction = errors.New("unknown court action")
)

// Court actions
const (
	CourtAdd    = "add"
	CourtRename = "rename"
	CourtToggle = "toggle"
	CourtDelete = "delete"
)

// ManageCourtInput carries one court action.
type ManageCourtInput struct {
	ClubID  int
	CourtID int // unused for CourtAdd
	Action  string
	Name    string // CourtAdd and CourtRename
	Active  bool   // CourtAdd
}

// ExecuteManageCourt applies a court action.
// Rename and toggle read the current court from the API first: a blank or
// unchanged name is a no-op, and toggle flips the stored active flag.
// PRE: input.ClubID > 0
// POST: returns ErrCourtNotFound for an unknown court, ValidationError for a blank new court name
func ExecuteManageCourt(ctx context.Context, input ManageCourtInput, deps ClubDeps) error {
	switch input.Action {
	case CourtAdd:
		in, err := club.NewCourtInput(input.Name, input.Active)
		if err != nil {
			return invalid(err)
		}
		if _, err := deps.API.CreateCourt(ctx, deps.Tokens, input.ClubID, in); err != nil {
			return err
		}
	case CourtRename, CourtToggle:
		c, err := deps.API.GetClub(ctx, deps.Tokens, input.ClubID)
		if err != nil {
			return err
		}
		court, ok := c.FindCourt(input.CourtID)
		if !ok {
			return ErrCourtNotFound
		}
		var patch club.CourtInput
		if input.Action == CourtRename {
			name := strings.TrimSpace(input.Name)
			if name == "" || name == court.Name {
				return nil
			}
			patch.Name = &name
		} else {
			active := !court.Active
			patch.Active = &active
		}
		if _, err := deps.API.UpdateCourt(ctx, deps.Tokens, input.ClubID, input.CourtID, patch); err != nil {
			return err
		}
	case CourtDelete:
		if err := deps.API.DeleteCourt(ctx, deps.Tokens, input.ClubID, input.CourtID); err != nil {
			return err
		}
	default:
		return ErrUnknownCourtAction
	}
	slog.Info("club_event", "event", "court_"+input.Action, "club_id", input.ClubID, "court_id", input.CourtID)
	return nil
}
