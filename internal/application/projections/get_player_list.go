package projections

import (
	"context"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/listutil"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

// GetPlayerListQuery carries query parameters.
type GetPlayerListQuery struct {
	List listutil.ListParams
}

// GetPlayerListResult carries the query result.
type GetPlayerListResult struct {
	Players []player.Player
	Search  string
	Page    listutil.PageInfo
}

// GetPlayerListDeps holds dependencies for GetPlayerList.
type GetPlayerListDeps struct {
	API    PlayerReader
	Tokens api.Tokens
}

// QueryGetPlayerList loads one page of players, searched by the API.
// PRE: query.List comes from listutil.ParseListParams
// POST: Page links keep the search term
func QueryGetPlayerList(ctx context.Context, query GetPlayerListQuery, deps GetPlayerListDeps) (GetPlayerListResult, error) {
	lp := query.List
	page, err := deps.API.ListPlayers(ctx, deps.Tokens, api.PlayerQuery{Page: lp.Page, Size: lp.Size, Search: lp.Search})
	if err != nil {
		return GetPlayerListResult{}, err
	}
	return GetPlayerListResult{
		Players: page.Items,
		Search:  lp.Search,
		Page:    listutil.NewPageInfo(lp.Page, lp.Size, page.Count()).WithQuery(lp.Query()),
	}, nil
}
