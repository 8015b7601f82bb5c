package projections

import (
	"context"
	"strings"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
)

// GetClubListQuery carries query parameters.
type GetClubListQuery struct {
	Search string
}

// GetClubListResult carries the query result.
type GetClubListResult struct {
	Clubs  []club.Club // after the search filter
	Total  int         // clubs returned by the API
	Search string
}

// GetClubListDeps holds dependencies for GetClubList.
type GetClubListDeps struct {
	API    ClubReader
	Tokens api.Tokens
}

// QueryGetClubList loads all clubs and filters them locally.
// PRE: none
// POST: Clubs keeps API order; blank searches match everything
func QueryGetClubList(ctx context.Context, query GetClubListQuery, deps GetClubListDeps) (GetClubListResult, error) {
	page, err := deps.API.ListClubs(ctx, deps.Tokens, 1, ClubOptionsSize)
	if err != nil {
		return GetClubListResult{}, err
	}
	search := strings.TrimSpace(query.Search)
	clubs := make([]club.Club, 0, len(page.Items))
	for _, c := range page.Items {
		if c.MatchesSearch(search) {
			clubs = append(clubs, c)
		}
	}
	return GetClubListResult{Clubs: clubs, Total: len(page.Items), Search: search}, nil
}

// GetClubQuery carries query parameters.
type GetClubQuery struct {
	ClubID int
}

// QueryGetClub loads one club with its courts.
func QueryGetClub(ctx context.Context, query GetClubQuery, deps GetClubListDeps) (club.Club, error) {
	return deps.API.GetClub(ctx, deps.Tokens, query.ClubID)
}
