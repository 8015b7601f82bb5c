package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/account"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/coach"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

// IdentityAPI resolves the signed-in user and, for coaches, their profile.
type IdentityAPI interface {
	Me(ctx context.Context, tokens api.Tokens) (account.User, error)
	GetMyCoach(ctx context.Context, tokens api.Tokens) (coach.Coach, error)
}

// PlayerAPI is the slice of the API client used to save players.
type PlayerAPI interface {
	IdentityAPI
	CreatePlayer(ctx context.Context, tokens api.Tokens, in player.Input) (player.Player, error)
	UpdatePlayer(ctx context.Context, tokens api.Tokens, id int, in player.Input) (player.Player, error)
}

// SavePlayerInput carries a create (PlayerID 0) or update.
type SavePlayerInput struct {
	PlayerID int
	Player   player.Input
}

// SavePlayerDeps holds dependencies for SavePlayer.
type SavePlayerDeps struct {
	API    PlayerAPI
	Tokens api.Tokens
}

// ExecuteSavePlayer validates and persists a player.
// A user with the coach role can only assign the player to themselves.
// PRE: none
// POST: returns the saved player; CoachIDs is never sent as null
func ExecuteSavePlayer(ctx context.Context, input SavePlayerInput, deps SavePlayerDeps) (player.Player, error) {
	in := input.Player
	in.FullName = strings.TrimSpace(in.FullName)
	if err := in.Validate(); err != nil {
		return player.Player{}, invalid(err)
	}

	coachID, forced, err := ownCoachID(ctx, deps.API, deps.Tokens)
	if err != nil {
		return player.Player{}, err
	}
	if forced {
		in.CoachIDs = []int{coachID}
	}
	if in.CoachIDs == nil {
		in.CoachIDs = []int{}
	}

	var saved player.Player
	if input.PlayerID == 0 {
		saved, err = deps.API.CreatePlayer(ctx, deps.Tokens, in)
	} else {
		saved, err = deps.API.UpdatePlayer(ctx, deps.Tokens, input.PlayerID, in)
	}
	if err != nil {
		return player.Player{}, err
	}
	slog.Info("player_event", "event", "saved", "player_id", saved.ID, "created", input.PlayerID == 0)
	return saved, nil
}

// ownCoachID returns the caller's coach id when the caller has the coach role.
func ownCoachID(ctx context.Context, a IdentityAPI, tokens api.Tokens) (int, bool, error) {
	user, err := a.Me(ctx, tokens)
	if err != nil {
		return 0, false, err
	}
	if !user.IsCoach() {
		return 0, false, nil
	}
	profile, err := a.GetMyCoach(ctx, tokens)
	if err != nil {
		return 0, false, err
	}
	return profile.ID, true, nil
}
