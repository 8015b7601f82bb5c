package api

import (
	"context"
	"net/http"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

// PlayerQuery filters the player list.
type PlayerQuery struct {
	Page   int
	Size   int
	Search string
}

func (c *Client) ListPlayers(ctx context.Context, tokens Tokens, pq PlayerQuery) (Page[player.Player], error) {
	q := pageQuery(pq.Page, pq.Size)
	setIf(q, "search", pq.Search)
	return get[Page[player.Player]](ctx, c, tokens, "/players", q)
}

func (c *Client) GetPlayer(ctx context.Context, tokens Tokens, id int) (player.Player, error) {
	return get[player.Player](ctx, c, tokens, idPath("/players", id), nil)
}

func (c *Client) CreatePlayer(ctx context.Context, tokens Tokens, in player.Input) (player.Player, error) {
	return send[player.Player](ctx, c, tokens, http.MethodPost, "/players", in)
}

func (c *Client) UpdatePlayer(ctx context.Context, tokens Tokens, id int, in player.Input) (player.Player, error) {
	return send[player.Player](ctx, c, tokens, http.MethodPatch, idPath("/players", id), in)
}
