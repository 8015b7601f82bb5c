package projections

import (
	"context"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

// PlayerFormAPI is the slice of the API client the player form reads.
type PlayerFormAPI interface {
	IdentityReader
	CoachReader
	GetPlayer(ctx context.Context, tokens api.Tokens, id int) (player.Player, error)
}

// GetPlayerFormQuery carries query parameters. PlayerID 0 is a new player.
type GetPlayerFormQuery struct {
	PlayerID int
}

// GetPlayerFormResult carries the query result.
type GetPlayerFormResult struct {
	Player  player.Player
	Coaches CoachOptions
	IsNew   bool
}

// GetPlayerFormDeps holds dependencies for GetPlayerForm.
type GetPlayerFormDeps struct {
	API    PlayerFormAPI
	Tokens api.Tokens
}

// QueryGetPlayerForm loads the player (when editing) and the coach options.
// PRE: none
// POST: new players default to active; a coach-role user gets only their
// own profile with Locked set
func QueryGetPlayerForm(ctx context.Context, query GetPlayerFormQuery, deps GetPlayerFormDeps) (GetPlayerFormResult, error) {
	user, err := deps.API.Me(ctx, deps.Tokens)
	if err != nil {
		return GetPlayerFormResult{}, err
	}
	opts, err := coachOptions(ctx, deps.API, deps.API, deps.Tokens, user)
	if err != nil {
		return GetPlayerFormResult{}, err
	}

	res := GetPlayerFormResult{Coaches: opts, IsNew: query.PlayerID == 0, Player: player.Player{Active: true}}
	if !res.IsNew {
		res.Player, err = deps.API.GetPlayer(ctx, deps.Tokens, query.PlayerID)
		if err != nil {
			return GetPlayerFormResult{}, err
		}
	}
	return res, nil
}
