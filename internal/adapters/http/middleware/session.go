package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	model "github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Session is the browser session of one request. ID keys the session state
// in the key/value store; the marker cookie carries it between requests.
type Session struct {
	ID string

	w      http.ResponseWriter
	secure bool
}

// SetMarker issues the marker cookie for the session id.
func (s *Session) SetMarker() {
	http.SetCookie(s.w, s.cookie(s.ID, int(model.MarkerMaxAge.Seconds())))
}

// Renew moves the session to a fresh random id and returns the previous one.
// Nothing is persisted under the new id until SetMarker.
func (s *Session) Renew() (previous string) {
	previous, s.ID = s.ID, uuid.NewString()
	return previous
}

// ClearMarker expires the marker cookie.
func (s *Session) ClearMarker() {
	http.SetCookie(s.w, s.cookie("", -1))
}

func (s *Session) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     model.MarkerCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionMiddleware binds a Session to every request: the id from a valid
// marker cookie, or a fresh random id that is only persisted by SetMarker.
func SessionMiddleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := markerID(r)
			if !ok {
				id = uuid.NewString()
			}
			sess := &Session{ID: id, w: w, secure: secure}
			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
		})
	}
}

// markerID returns the session id of a well-formed marker cookie.
func markerID(r *http.Request) (string, bool) {
	c, err := r.Cookie(model.MarkerCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

// publicPrefixes are reachable without a marker cookie.
var publicPrefixes = []string{"/static/", "/metrics", "/login", "/forgot-password", "/reset-password", "/register"}

// IsPublic reports whether path is served without a session.
func IsPublic(path string) bool {
	for _, p := range publicPrefixes {
		if path == p || strings.HasPrefix(path, p) && (strings.HasSuffix(p, "/") || path[len(p)] == '/') {
			return true
		}
	}
	return false
}

// RequireSession redirects requests without a marker cookie to /login,
// except for public paths.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := markerID(r); !ok && !IsPublic(r.URL.Path) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext returns the request's session.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*Session)
	return s, ok
}

// ContextWithSession returns a context carrying sess.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// NewSession builds a session bound to w, for callers outside the middleware.
func NewSession(id string, w http.ResponseWriter, secure bool) *Session {
	return &Session{ID: id, w: w, secure: secure}
}
