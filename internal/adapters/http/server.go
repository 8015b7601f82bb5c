// Package web serves the coach-facing pages. Every page is rendered on the
// server from data fetched through the coaching API on behalf of the
// browser session.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/email"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/http/middleware"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/http/perf"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/orchestrators"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/projections"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/session"
)

// API is the part of the coaching API the pages use. *api.Client implements it.
type API interface {
	orchestrators.AuthAPI
	orchestrators.AccountAPI
	orchestrators.ClubAPI
	orchestrators.LessonAPI
	orchestrators.PlayerAPI
	orchestrators.CoachSettingsAPI
	orchestrators.InvoiceAPI
	projections.DashboardAPI
	projections.ClubReader
	projections.PlayerFormAPI
	projections.LessonFormAPI
	projections.LessonReader
	projections.InvoiceReader

	APIPath(rawURL string) (string, bool)
	Download(ctx context.Context, tokens api.Tokens, path string) (api.Result, error)
}

var _ API = (*api.Client)(nil)

// Options configures a Server.
type Options struct {
	API      API
	Sessions session.Backend
	Mailer   email.Sender // optional

	Collector *perf.Collector // optional, feeds /debug/perf
	Metrics   http.Handler    // optional, served at /metrics

	// MetricsToken, when set, is the bearer token /metrics requires.
	MetricsToken string

	FrontendBaseURL string
	CSRFKey         []byte // 32 bytes
	TrustedOrigins  []string
	SecureCookies   bool

	// RateLimit is requests per minute per client on the sign-in forms; 0 disables.
	RateLimit   int
	SlowRequest time.Duration

	Now func() time.Time
}

// Server holds the page handlers and their dependencies.
type Server struct {
	api          API
	sessions     session.Backend
	mailer       email.Sender
	collector    *perf.Collector
	metrics      http.Handler
	metricsToken string
	baseURL      string
	csrfKey      []byte
	origins      []string
	secure       bool
	limiter      *middleware.RateLimiter
	slow         time.Duration
	now          func() time.Time
	pages        map[string]*template.Template
}

// NewServer validates opts and parses the page templates.
// PRE: opts.API and opts.Sessions are set; opts.CSRFKey is 32 bytes
// POST: returns a server ready to serve Handler()
func NewServer(opts Options) (*Server, error) {
	if opts.API == nil || opts.Sessions == nil {
		return nil, errors.New("web: API and Sessions are required")
	}
	if len(opts.CSRFKey) != 32 {
		return nil, fmt.Errorf("web: CSRF key must be 32 bytes, got %d", len(opts.CSRFKey))
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Server{
		api:          opts.API,
		sessions:     opts.Sessions,
		mailer:       opts.Mailer,
		collector:    opts.Collector,
		metrics:      opts.Metrics,
		metricsToken: opts.MetricsToken,
		baseURL:      opts.FrontendBaseURL,
		csrfKey:      opts.CSRFKey,
		origins:      opts.TrustedOrigins,
		secure:       opts.SecureCookies,
		limiter:      middleware.NewRateLimiter(opts.RateLimit, time.Minute),
		slow:         opts.SlowRequest,
		now:          now,
		pages:        pages,
	}, nil
}

// Handler returns the routes wrapped in the middleware chain:
// Timing -> SecurityHeaders -> CSRF -> Session -> RequireSession -> routes.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.routes(),
		middleware.RequireSession,
		middleware.SessionMiddleware(s.secure),
		middleware.CSRF(s.csrfKey, s.origins, s.secure),
		middleware.SecurityHeaders,
		middleware.Timing(s.collector, s.slow),
	)
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	limited := middleware.RateLimit(s.limiter)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	if s.metrics != nil {
		mux.Handle("GET /metrics", middleware.BearerToken(s.metricsToken)(s.metrics))
	}
	mux.HandleFunc("GET /debug/perf", s.handlePerf)

	// Session gate
	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.Handle("POST /login", limited(http.HandlerFunc(s.handleLogin)))
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /forgot-password", s.handleForgotForm)
	mux.Handle("POST /forgot-password", limited(http.HandlerFunc(s.handleForgot)))
	mux.HandleFunc("GET /reset-password", s.handleResetForm)
	mux.Handle("POST /reset-password", limited(http.HandlerFunc(s.handleReset)))
	mux.HandleFunc("GET /register", s.handleRegisterForm)
	mux.Handle("POST /register", limited(http.HandlerFunc(s.handleRegister)))

	mux.HandleFunc("GET /dashboard", s.handleDashboard)

	// Clubs
	mux.HandleFunc("GET /clubs", s.handleClubs)
	mux.HandleFunc("GET /clubs/new", s.handleClubForm)
	mux.HandleFunc("POST /clubs", s.handleSaveClub)
	mux.HandleFunc("GET /clubs/{id}/edit", s.handleClubForm)
	mux.HandleFunc("POST /clubs/{id}", s.handleSaveClub)
	mux.HandleFunc("POST /clubs/{id}/courts", s.handleAddCourt)
	mux.HandleFunc("POST /clubs/{id}/courts/{courtID}/{action}", s.handleCourtAction)

	// Players
	mux.HandleFunc("GET /players", s.handlePlayers)
	mux.HandleFunc("GET /players/new", s.handlePlayerForm)
	mux.HandleFunc("POST /players", s.handleSavePlayer)
	mux.HandleFunc("GET /players/{id}/edit", s.handlePlayerForm)
	mux.HandleFunc("POST /players/{id}", s.handleSavePlayer)

	// Lessons
	mux.HandleFunc("GET /lessons", s.handleLessons)
	mux.HandleFunc("GET /lessons/new", s.handleLessonForm)
	mux.HandleFunc("POST /lessons", s.handleSaveLesson)
	mux.HandleFunc("GET /lessons/{id}/edit", s.handleLessonForm)
	mux.HandleFunc("POST /lessons/{id}", s.handleSaveLesson)

	// Invoices
	mux.HandleFunc("GET /invoices", s.handleInvoices)
	mux.HandleFunc("GET /invoices/{id}", s.handleInvoice)
	mux.HandleFunc("GET /invoices/{id}/pdf", s.handleInvoicePDF)
	mux.HandleFunc("GET /invoices/wizard/period", s.handleWizardPeriodForm)
	mux.HandleFunc("POST /invoices/wizard/period", s.handleWizardPeriod)
	mux.HandleFunc("GET /invoices/wizard/select", s.handleWizardSelectForm)
	mux.HandleFunc("POST /invoices/wizard/select", s.handleWizardSelect)

	mux.HandleFunc("GET /coach/settings", s.handleCoachSettings)
	mux.HandleFunc("POST /coach/settings", s.handleSaveCoachSettings)

	return mux
}

// browserSession returns the request's session. Requests that bypassed the
// session middleware get an unbound session, whose token store is empty.
func (s *Server) browserSession(w http.ResponseWriter, r *http.Request) *middleware.Session {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		return sess
	}
	return middleware.NewSession("", w, s.secure)
}

// tokens returns the token store of the request's session.
func (s *Server) tokens(w http.ResponseWriter, r *http.Request) *session.TokenStore {
	sess := s.browserSession(w, r)
	return session.NewTokenStore(s.sessions, sess.ID, sess)
}

// wizardState returns the invoice wizard store of the request's session.
func (s *Server) wizardState(w http.ResponseWriter, r *http.Request) *session.WizardStore {
	return session.NewWizardStore(s.sessions, s.browserSession(w, r).ID)
}

// redirectToLogin clears the session's tokens and sends the browser to the
// login page.
// POST: the token store is empty and the marker cookie is expired
func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	s.tokens(w, r).Clear(r.Context())
	http.Redirect(w, r, s.baseURL+"/login", http.StatusSeeOther)
}
