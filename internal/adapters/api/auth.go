package api

import (
	"context"
	"net/http"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/account"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/session"
)

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges credentials for a token pair. It does not store the pair.
func (c *Client) Login(ctx context.Context, tokens Tokens, creds account.Credentials) (session.TokenPair, error) {
	var out loginResponse
	err := c.Do(ctx, tokens, http.MethodPost, "/auth/login", creds, &out, RequestOptions{SkipAuth: true})
	if err != nil {
		return session.TokenPair{}, err
	}
	return session.TokenPair{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}, nil
}

// Logout notifies the API; it is sent without credentials.
func (c *Client) Logout(ctx context.Context, tokens Tokens) error {
	_, err := c.Request(ctx, tokens, http.MethodPost, "/auth/logout", nil, RequestOptions{SkipAuth: true})
	return err
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context, tokens Tokens) (account.User, error) {
	return get[account.User](ctx, c, tokens, "/auth/me", nil)
}

// Register creates a coach account.
func (c *Client) Register(ctx context.Context, tokens Tokens, reg account.Registration) error {
	return c.Do(ctx, tokens, http.MethodPost, "/auth/register", reg, nil, RequestOptions{SkipAuth: true})
}

// ForgotPassword asks the API to email a reset link.
func (c *Client) ForgotPassword(ctx context.Context, tokens Tokens, email string) error {
	body := map[string]string{"email": email}
	return c.Do(ctx, tokens, http.MethodPost, "/auth/password/forgot", body, nil, RequestOptions{SkipAuth: true})
}

// ResetPassword completes a reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, tokens Tokens, reset account.PasswordReset) error {
	return c.Do(ctx, tokens, http.MethodPost, "/auth/password/reset", reset, nil, RequestOptions{SkipAuth: true})
}
