package api

import (
	"context"
	"net/http"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
)

func (c *Client) ListClubs(ctx context.Context, tokens Tokens, page, size int) (Page[club.Club], error) {
	return get[Page[club.Club]](ctx, c, tokens, "/clubs", pageQuery(page, size))
}

func (c *Client) GetClub(ctx context.Context, tokens Tokens, id int) (club.Club, error) {
	return get[club.Club](ctx, c, tokens, idPath("/clubs", id), nil)
}

func (c *Client) CreateClub(ctx context.Context, tokens Tokens, in club.Input) (club.Club, error) {
	return send[club.Club](ctx, c, tokens, http.MethodPost, "/clubs", in)
}

func (c *Client) UpdateClub(ctx context.Context, tokens Tokens, id int, in club.Input) (club.Club, error) {
	return send[club.Club](ctx, c, tokens, http.MethodPatch, idPath("/clubs", id), in)
}

func (c *Client) CreateCourt(ctx context.Context, tokens Tokens, clubID int, in club.CourtInput) (club.Court, error) {
	return send[club.Court](ctx, c, tokens, http.MethodPost, idPath("/clubs", clubID)+"/courts", in)
}

func (c *Client) UpdateCourt(ctx context.Context, tokens Tokens, clubID, courtID int, in club.CourtInput) (club.Court, error) {
	return send[club.Court](ctx, c, tokens, http.MethodPatch, idPath(idPath("/clubs", clubID)+"/courts", courtID), in)
}

func (c *Client) DeleteCourt(ctx context.Context, tokens Tokens, clubID, courtID int) error {
	_, err := c.Request(ctx, tokens, http.MethodDelete, idPath(idPath("/clubs", clubID)+"/courts", courtID), nil, RequestOptions{})
	return err
}
