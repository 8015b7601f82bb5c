package api

import (
	"context"
	"net/http"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/coach"
)

func (c *Client) ListCoaches(ctx context.Context, tokens Tokens, page, size int) (Page[coach.Coach], error) {
	return get[Page[coach.Coach]](ctx, c, tokens, "/coaches", pageQuery(page, size))
}

// GetMyCoach returns the coach profile of the authenticated user.
func (c *Client) GetMyCoach(ctx context.Context, tokens Tokens) (coach.Coach, error) {
	return get[coach.Coach](ctx, c, tokens, "/coaches/me", nil)
}

func (c *Client) UpdateMyCoach(ctx context.Context, tokens Tokens, in coach.SettingsInput) (coach.Coach, error) {
	return send[coach.Coach](ctx, c, tokens, http.MethodPatch, "/coaches/me", in)
}
