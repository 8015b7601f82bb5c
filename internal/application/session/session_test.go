package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	model "github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/session"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/wizard"
)

var errMissing = errors.New("missing")

// fakeBackend is a map-backed Backend that remembers TTLs.
type fakeBackend struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	fail error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeBackend) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	v, ok := f.data[key]
	if !ok {
		return nil, errMissing
	}
	return v, nil
}

func (f *fakeBackend) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.data[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeBackend) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

type fakeMarker struct{ cleared int }

func (m *fakeMarker) ClearMarker() { m.cleared++ }

func TestTokenStore_LoadAbsent(t *testing.T) {
	s := NewTokenStore(newFakeBackend(), "sid", nil)
	if got := s.Load(context.Background()); !got.IsZero() {
		t.Errorf("Load = %+v, want empty pair", got)
	}
}

func TestTokenStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	s := NewTokenStore(b, "sid", nil)

	want := model.TokenPair{AccessToken: "a1", RefreshToken: "r1"}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := s.Load(ctx); got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
	raw := string(b.data["laganacoach.tokens:sid"])
	if raw != `{"accessToken":"a1","refreshToken":"r1"}` {
		t.Errorf("stored = %s", raw)
	}
	if b.ttls["laganacoach.tokens:sid"] != model.MarkerMaxAge {
		t.Errorf("ttl = %v, want marker lifetime for opaque tokens", b.ttls["laganacoach.tokens:sid"])
	}
}

func TestTokenStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore(newFakeBackend(), "sid", nil)
	s.Save(ctx, model.TokenPair{AccessToken: "old", RefreshToken: "r"})
	s.Save(ctx, model.TokenPair{AccessToken: "new", RefreshToken: "r2"})

	if got := s.Load(ctx); got.AccessToken != "new" || got.RefreshToken != "r2" {
		t.Errorf("Load = %+v, want the second pair", got)
	}
}

func TestTokenStore_MalformedLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.data["laganacoach.tokens:sid"] = []byte("{not json")
	s := NewTokenStore(b, "sid", nil)

	if got := s.Load(ctx); !got.IsZero() {
		t.Errorf("Load = %+v, want empty pair", got)
	}
}

func TestTokenStore_BackendErrorLoadsEmpty(t *testing.T) {
	b := newFakeBackend()
	b.fail = errors.New("db down")
	s := NewTokenStore(b, "sid", nil)

	if got := s.Load(context.Background()); !got.IsZero() {
		t.Errorf("Load = %+v, want empty pair", got)
	}
}

func TestTokenStore_ClearRemovesAndClearsMarker(t *testing.T) {
	ctx := context.Background()
	marker := &fakeMarker{}
	s := NewTokenStore(newFakeBackend(), "sid", marker)
	s.Save(ctx, model.TokenPair{AccessToken: "a", RefreshToken: "r"})

	s.Clear(ctx)

	if got := s.Load(ctx); !got.IsZero() {
		t.Errorf("Load after Clear = %+v, want empty", got)
	}
	if marker.cleared != 1 {
		t.Errorf("marker cleared %d times, want 1", marker.cleared)
	}
}

func TestTokenStore_NoSessionID(t *testing.T) {
	s := NewTokenStore(newFakeBackend(), "", nil)
	if err := s.Save(context.Background(), model.TokenPair{AccessToken: "a"}); err == nil {
		t.Error("Save without a session id should fail")
	}
	if got := s.Load(context.Background()); !got.IsZero() {
		t.Errorf("Load = %+v, want empty", got)
	}
}

func TestTokenStore_TTLFollowsRefreshExpiry(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewTokenStore(b, "sid", nil)
	s.now = func() time.Time { return now }

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Hour)),
	}).SignedString([]byte("api-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if err := s.Save(ctx, model.TokenPair{AccessToken: "a", RefreshToken: refresh}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := b.ttls["laganacoach.tokens:sid"]; got != 2*time.Hour {
		t.Errorf("ttl = %v, want 2h", got)
	}
}

func TestTokenStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	a := NewTokenStore(b, "one", nil)
	c := NewTokenStore(b, "two", nil)

	a.Save(ctx, model.TokenPair{AccessToken: "a"})
	if got := c.Load(ctx); !got.IsZero() {
		t.Errorf("other session sees %+v", got)
	}
}

func TestWizardStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	w := NewWizardStore(b, "sid")

	if _, err := w.Load(ctx); !errors.Is(err, wizard.ErrNoState) {
		t.Fatalf("Load on empty = %v, want ErrNoState", err)
	}

	st := wizard.State{
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
		Data:        invoice.Preparation{Lessons: []invoice.PreparedLesson{{Lesson: lesson.Lesson{ID: 4}}}},
	}
	if err := w.Save(ctx, st); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := b.data["laganacoach.invoiceWizard:sid"]; !ok {
		t.Error("wizard state not stored under its namespace")
	}

	got, err := w.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.PeriodStart != "2026-01-01" || len(got.Data.Lessons) != 1 || got.Data.Lessons[0].Lesson.ID != 4 {
		t.Errorf("Load = %+v", got)
	}

	w.Clear(ctx)
	if _, err := w.Load(ctx); !errors.Is(err, wizard.ErrNoState) {
		t.Errorf("Load after Clear = %v, want ErrNoState", err)
	}
}
