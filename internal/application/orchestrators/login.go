package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/account"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/session"
)

// AuthAPI is the slice of the API client used by login and logout.
type AuthAPI interface {
	Login(ctx context.Context, tokens api.Tokens, creds account.Credentials) (session.TokenPair, error)
	Logout(ctx context.Context, tokens api.Tokens) error
}

// SessionMarker sets and clears the browser's session marker cookie.
type SessionMarker interface {
	SetMarker()
	ClearMarker()
}

// WizardClearer drops per-session invoice wizard state.
type WizardClearer interface {
	Clear(ctx context.Context)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	API    AuthAPI
	Tokens api.Tokens
	Marker SessionMarker
}

// ErrCredentialsRequired is returned when email or password is blank.
var ErrCredentialsRequired = errors.New("Email and password are required")

// ExecuteLogin exchanges credentials for a token pair and opens the session.
// PRE: deps.Tokens is bound to the browser session
// POST: on success the pair is stored and the 7-day marker is set;
// on failure nothing is stored and the API error is returned
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) error {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return invalid(ErrCredentialsRequired)
	}

	pair, err := deps.API.Login(ctx, deps.Tokens, account.Credentials{Email: email, Password: input.Password})
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email, "status", api.StatusCode(err))
		return err
	}

	if err := deps.Tokens.Save(ctx, pair); err != nil {
		slog.Error("auth_event", "event", "login_store_failed", "email", email, "error", err)
		return err
	}
	deps.Marker.SetMarker()

	slog.Info("auth_event", "event", "login_success", "email", email)
	return nil
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	API    AuthAPI
	Tokens api.Tokens
	Wizard WizardClearer // optional
}

// ExecuteLogout ends the session. The API call is best effort.
// PRE: none
// POST: tokens and wizard state are cleared whatever the API answered
func ExecuteLogout(ctx context.Context, deps LogoutDeps) {
	if err := deps.API.Logout(ctx, deps.Tokens); err != nil {
		slog.Info("auth_event", "event", "logout_api_failed", "status", api.StatusCode(err))
	}
	deps.Tokens.Clear(ctx)
	if deps.Wizard != nil {
		deps.Wizard.Clear(ctx)
	}
	slog.Info("auth_event", "event", "logout")
}
