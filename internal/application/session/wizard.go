package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	model "github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/session"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/wizard"
)

// WizardStore holds the invoice wizard state between the period and select steps.
type WizardStore struct {
	backend   Backend
	sessionID string
}

// NewWizardStore binds a wizard store to a session id.
func NewWizardStore(backend Backend, sessionID string) *WizardStore {
	return &WizardStore{backend: backend, sessionID: sessionID}
}

func (w *WizardStore) key() string {
	return model.Key(model.WizardNamespace, w.sessionID)
}

// Load returns the saved state or wizard.ErrNoState.
func (w *WizardStore) Load(ctx context.Context) (wizard.State, error) {
	if w.sessionID == "" {
		return wizard.State{}, wizard.ErrNoState
	}
	raw, err := w.backend.Get(ctx, w.key())
	if err != nil {
		return wizard.State{}, wizard.ErrNoState
	}
	var st wizard.State
	if err := json.Unmarshal(raw, &st); err != nil {
		slog.Warn("invoice_wizard", "event", "malformed_state", "session", w.sessionID)
		return wizard.State{}, wizard.ErrNoState
	}
	return st, nil
}

// Save replaces the wizard state; it expires with the session marker.
func (w *WizardStore) Save(ctx context.Context, st wizard.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode wizard state: %w", err)
	}
	if err := w.backend.Put(ctx, w.key(), raw, model.MarkerMaxAge); err != nil {
		return fmt.Errorf("save wizard state: %w", err)
	}
	return nil
}

// Clear drops the wizard state.
func (w *WizardStore) Clear(ctx context.Context) {
	if err := w.backend.Delete(ctx, w.key()); err != nil {
		slog.Warn("invoice_wizard", "event", "clear_failed", "session", w.sessionID, "error", err)
	}
}
