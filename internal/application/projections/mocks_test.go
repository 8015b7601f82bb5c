package projections

import (
	"context"
	"sync"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/account"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/coach"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/session"
)

type mockTokens struct{}

func (mockTokens) Load(context.Context) session.TokenPair        { return session.TokenPair{} }
func (mockTokens) Save(context.Context, session.TokenPair) error { return nil }
func (mockTokens) Clear(context.Context)                         {}

// mockAPI serves canned pages. errs fails the named method.
// Calls may arrive concurrently.
type mockAPI struct {
	mu    sync.Mutex
	calls []string
	errs  map[string]error

	user     account.User
	profile  coach.Coach
	coaches  []coach.Coach
	clubs    []club.Club
	players  []player.Player
	lessons  []lesson.Lesson
	strokes  []lesson.Stroke
	invoices []invoice.Invoice
	lesson   lesson.Lesson
	total    *int

	playerQuery  api.PlayerQuery
	lessonQuery  api.LessonQuery
	invoiceQuery api.InvoiceQuery
}

func (m *mockAPI) record(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
	return m.errs[name]
}

func (m *mockAPI) called(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c == name {
			return true
		}
	}
	return false
}

func page[T any](items []T, total *int) api.Page[T] {
	return api.Page[T]{Items: items, Total: total}
}

func (m *mockAPI) Me(context.Context, api.Tokens) (account.User, error) {
	return m.user, m.record("Me")
}

func (m *mockAPI) GetMyCoach(context.Context, api.Tokens) (coach.Coach, error) {
	return m.profile, m.record("GetMyCoach")
}

func (m *mockAPI) ListCoaches(context.Context, api.Tokens, int, int) (api.Page[coach.Coach], error) {
	return page(m.coaches, nil), m.record("ListCoaches")
}

func (m *mockAPI) ListClubs(context.Context, api.Tokens, int, int) (api.Page[club.Club], error) {
	return page(m.clubs, nil), m.record("ListClubs")
}

func (m *mockAPI) GetClub(_ context.Context, _ api.Tokens, id int) (club.Club, error) {
	return club.Club{ID: id}, m.record("GetClub")
}

func (m *mockAPI) ListPlayers(_ context.Context, _ api.Tokens, pq api.PlayerQuery) (api.Page[player.Player], error) {
	err := m.record("ListPlayers")
	m.mu.Lock()
	m.playerQuery = pq
	m.mu.Unlock()
	return page(m.players, m.total), err
}

func (m *mockAPI) GetPlayer(_ context.Context, _ api.Tokens, id int) (player.Player, error) {
	return player.Player{ID: id, FullName: "Maya"}, m.record("GetPlayer")
}

func (m *mockAPI) ListLessons(_ context.Context, _ api.Tokens, lq api.LessonQuery) (api.Page[lesson.Lesson], error) {
	err := m.record("ListLessons")
	m.mu.Lock()
	m.lessonQuery = lq
	m.mu.Unlock()
	return page(m.lessons, m.total), err
}

func (m *mockAPI) GetLesson(context.Context, api.Tokens, int) (lesson.Lesson, error) {
	return m.lesson, m.record("GetLesson")
}

func (m *mockAPI) ListStrokes(context.Context, api.Tokens, int, int) (api.Page[lesson.Stroke], error) {
	return page(m.strokes, nil), m.record("ListStrokes")
}

func (m *mockAPI) ListInvoices(_ context.Context, _ api.Tokens, iq api.InvoiceQuery) (api.Page[invoice.Invoice], error) {
	err := m.record("ListInvoices")
	m.mu.Lock()
	m.invoiceQuery = iq
	m.mu.Unlock()
	return page(m.invoices, m.total), err
}

func (m *mockAPI) GetInvoice(_ context.Context, _ api.Tokens, id int) (invoice.Invoice, error) {
	return invoice.Invoice{ID: id}, m.record("GetInvoice")
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
