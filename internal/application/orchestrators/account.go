package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/account"
)

// User-facing outcomes of the self-service account flows.
const (
	MsgResetLinkSent   = "If the email exists we sent a reset link."
	MsgPasswordUpdated = "Password updated successfully. You can sign in now."
	MsgCoachRegistered = "Coach account created. You can now sign in."
)

// AccountAPI is the slice of the API client used by the unauthenticated account flows.
type AccountAPI interface {
	Register(ctx context.Context, tokens api.Tokens, reg account.Registration) error
	ForgotPassword(ctx context.Context, tokens api.Tokens, email string) error
	ResetPassword(ctx context.Context, tokens api.Tokens, reset account.PasswordReset) error
}

// AccountDeps holds dependencies for the account flows.
type AccountDeps struct {
	API    AccountAPI
	Tokens api.Tokens
}

// ExecuteRegisterCoach creates a coach account. Field rules are enforced by the API.
// PRE: reg fields are trimmed, blanks already nil
// POST: returns the API error unchanged on failure
func ExecuteRegisterCoach(ctx context.Context, reg account.Registration, deps AccountDeps) error {
	if err := deps.API.Register(ctx, deps.Tokens, reg); err != nil {
		slog.Info("auth_event", "event", "register_failed", "email", reg.Email, "status", api.StatusCode(err))
		return err
	}
	slog.Info("auth_event", "event", "register_success", "email", reg.Email)
	return nil
}

// ExecuteForgotPassword requests a reset link. The caller shows
// MsgResetLinkSent on success whether or not the address exists.
func ExecuteForgotPassword(ctx context.Context, email string, deps AccountDeps) error {
	email = strings.TrimSpace(email)
	if err := deps.API.ForgotPassword(ctx, deps.Tokens, email); err != nil {
		slog.Info("auth_event", "event", "password_forgot_failed", "status", api.StatusCode(err))
		return err
	}
	slog.Info("auth_event", "event", "password_forgot")
	return nil
}

// ExecuteResetPassword sets a new password using the emailed token.
// PRE: none
// POST: the token is trimmed; the password is sent as typed
func ExecuteResetPassword(ctx context.Context, reset account.PasswordReset, deps AccountDeps) error {
	reset.Token = strings.TrimSpace(reset.Token)
	if err := deps.API.ResetPassword(ctx, deps.Tokens, reset); err != nil {
		slog.Info("auth_event", "event", "password_reset_failed", "status", api.StatusCode(err))
		return err
	}
	slog.Info("auth_event", "event", "password_reset")
	return nil
}
