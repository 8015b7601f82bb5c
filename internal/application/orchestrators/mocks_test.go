package orchestrators

import (
	"context"
	"time"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/account"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/coach"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/session"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/wizard"
)

// mockTokens is an in-memory api.Tokens.
type mockTokens struct {
	pair    session.TokenPair
	saveErr error
	cleared int
}

func (m *mockTokens) Load(context.Context) session.TokenPair { return m.pair }

func (m *mockTokens) Save(_ context.Context, p session.TokenPair) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.pair = p
	return nil
}

func (m *mockTokens) Clear(context.Context) {
	m.pair = session.TokenPair{}
	m.cleared++
}

type mockMarker struct {
	set, cleared int
}

func (m *mockMarker) SetMarker()   { m.set++ }
func (m *mockMarker) ClearMarker() { m.cleared++ }

// mockAPI implements every API slice the orchestrators depend on.
// Each call is appended to calls; the err field fails every call.
type mockAPI struct {
	calls []string
	err   error

	pair     session.TokenPair
	user     account.User
	profile  coach.Coach
	club     club.Club
	prep     invoice.Preparation
	invoice  invoice.Invoice
	created  int
	register account.Registration
	reset    account.PasswordReset
	forgot   string

	clubIn     club.Input
	courtIn    club.CourtInput
	playerIn   player.Input
	lessonIn   lesson.Input
	settingsIn coach.SettingsInput
	periodIn   invoice.Period
	confirmIn  invoice.Confirmation
}

var _ interface {
	AuthAPI
	AccountAPI
	ClubAPI
	PlayerAPI
	LessonAPI
	CoachSettingsAPI
	InvoiceAPI
} = (*mockAPI)(nil)

func (m *mockAPI) record(name string) error {
	m.calls = append(m.calls, name)
	return m.err
}

func (m *mockAPI) called(name string) bool {
	for _, c := range m.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (m *mockAPI) Login(_ context.Context, _ api.Tokens, _ account.Credentials) (session.TokenPair, error) {
	return m.pair, m.record("Login")
}

func (m *mockAPI) Logout(context.Context, api.Tokens) error { return m.record("Logout") }

func (m *mockAPI) Register(_ context.Context, _ api.Tokens, reg account.Registration) error {
	m.register = reg
	return m.record("Register")
}

func (m *mockAPI) ForgotPassword(_ context.Context, _ api.Tokens, email string) error {
	m.forgot = email
	return m.record("ForgotPassword")
}

func (m *mockAPI) ResetPassword(_ context.Context, _ api.Tokens, reset account.PasswordReset) error {
	m.reset = reset
	return m.record("ResetPassword")
}

func (m *mockAPI) Me(context.Context, api.Tokens) (account.User, error) {
	return m.user, m.record("Me")
}

func (m *mockAPI) GetMyCoach(context.Context, api.Tokens) (coach.Coach, error) {
	return m.profile, m.record("GetMyCoach")
}

func (m *mockAPI) GetClub(_ context.Context, _ api.Tokens, id int) (club.Club, error) {
	return m.club, m.record("GetClub")
}

func (m *mockAPI) CreateClub(_ context.Context, _ api.Tokens, in club.Input) (club.Club, error) {
	m.clubIn = in
	return club.Club{ID: m.created, Name: in.Name}, m.record("CreateClub")
}

func (m *mockAPI) UpdateClub(_ context.Context, _ api.Tokens, id int, in club.Input) (club.Club, error) {
	m.clubIn = in
	return club.Club{ID: id, Name: in.Name}, m.record("UpdateClub")
}

func (m *mockAPI) CreateCourt(_ context.Context, _ api.Tokens, _ int, in club.CourtInput) (club.Court, error) {
	m.courtIn = in
	return club.Court{}, m.record("CreateCourt")
}

func (m *mockAPI) UpdateCourt(_ context.Context, _ api.Tokens, _, _ int, in club.CourtInput) (club.Court, error) {
	m.courtIn = in
	return club.Court{}, m.record("UpdateCourt")
}

func (m *mockAPI) DeleteCourt(context.Context, api.Tokens, int, int) error {
	return m.record("DeleteCourt")
}

func (m *mockAPI) CreatePlayer(_ context.Context, _ api.Tokens, in player.Input) (player.Player, error) {
	m.playerIn = in
	return player.Player{ID: m.created}, m.record("CreatePlayer")
}

func (m *mockAPI) UpdatePlayer(_ context.Context, _ api.Tokens, id int, in player.Input) (player.Player, error) {
	m.playerIn = in
	return player.Player{ID: id}, m.record("UpdatePlayer")
}

func (m *mockAPI) CreateLesson(_ context.Context, _ api.Tokens, in lesson.Input) (lesson.Lesson, error) {
	m.lessonIn = in
	return lesson.Lesson{ID: m.created}, m.record("CreateLesson")
}

func (m *mockAPI) UpdateLesson(_ context.Context, _ api.Tokens, id int, in lesson.Input) (lesson.Lesson, error) {
	m.lessonIn = in
	return lesson.Lesson{ID: id}, m.record("UpdateLesson")
}

func (m *mockAPI) UpdateMyCoach(_ context.Context, _ api.Tokens, in coach.SettingsInput) (coach.Coach, error) {
	m.settingsIn = in
	return m.profile, m.record("UpdateMyCoach")
}

func (m *mockAPI) PrepareInvoice(_ context.Context, _ api.Tokens, p invoice.Period) (invoice.Preparation, error) {
	m.periodIn = p
	return m.prep, m.record("PrepareInvoice")
}

func (m *mockAPI) ConfirmInvoice(_ context.Context, _ api.Tokens, c invoice.Confirmation) (invoice.Invoice, error) {
	m.confirmIn = c
	return m.invoice, m.record("ConfirmInvoice")
}

// mockWizard is an in-memory WizardStateStore.
type mockWizard struct {
	state   *wizard.State
	saveErr error
	cleared int
}

func (w *mockWizard) Load(context.Context) (wizard.State, error) {
	if w.state == nil {
		return wizard.State{}, wizard.ErrNoState
	}
	return *w.state, nil
}

func (w *mockWizard) Save(_ context.Context, st wizard.State) error {
	if w.saveErr != nil {
		return w.saveErr
	}
	w.state = &st
	return nil
}

func (w *mockWizard) Clear(context.Context) {
	w.state = nil
	w.cleared++
}

type mockSweeper struct {
	n   int64
	err error
	at  time.Time
}

func (s *mockSweeper) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.at = now
	return s.n, s.err
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
