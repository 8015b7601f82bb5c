package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/formutil"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/orchestrators"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/money"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Alert kinds map to the alert-* CSS classes.
const (
	alertSuccess = "success"
	alertInfo    = "info"
	alertWarning = "warning"
	alertDanger  = "danger"
)

type alert struct {
	Kind    string
	Message string
}

// page is the data every template receives.
type page struct {
	Title string
	Nav   string // active navigation section; empty renders the signed-out frame
	Alert *alert
	Data  any
}

func (p page) withAlert(kind, message string) page {
	p.Alert = &alert{Kind: kind, Message: message}
	return p
}

// funcMap holds the helpers shared by every page. csrfField is rebound per
// request in render.
var funcMap = template.FuncMap{
	"csrfField": func() template.HTML { return "" },
	"markdown":  renderMarkdown,
	"gbp":       func(a money.Amount) string { return a.GBP() },
	"amount":    money.FormatOptional,
	"label":     label,
	"deref":     deref,
	"orDash": func(s *string) string {
		if s == nil || *s == "" {
			return "—"
		}
		return *s
	},
	"intVal": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
	"hasInt":    hasInt,
	"hasString": hasString,
	"plural": func(n int, word string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, word)
		}
		return fmt.Sprintf("%d %ss", n, word)
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

func renderMarkdown(s *string) template.HTML {
	if s == nil || *s == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(*s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(*s))
	}
	return template.HTML(buf.String())
}

// label turns an API enum into a display label: "beginner_plus" -> "Beginner Plus".
func label(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func hasInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func hasString(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// parsePages parses every page together with the layout.
// PRE: templates/layout.html defines the frame; pages define "content"
// POST: returns one template set per page file name
func parsePages() (map[string]*template.Template, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		name := path.Base(f)
		if name == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// render executes a page with the request's CSRF field bound.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data page) {
	base, ok := s.pages[name]
	if !ok {
		internalError(w, fmt.Errorf("unknown template %q", name))
		return
	}
	t, err := base.Clone()
	if err != nil {
		internalError(w, err)
		return
	}
	t.Funcs(template.FuncMap{"csrfField": func() template.HTML { return csrf.TemplateField(r) }})

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		internalError(w, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// message picks the text shown to the user for a failed action: the API's
// own message, a validation message, or fallback.
func message(err error, fallback string) string {
	var reqErr *api.RequestError
	var fieldErr *formutil.FieldError
	switch {
	case orchestrators.IsValidation(err), errors.Is(err, orchestrators.ErrCourtNotFound):
		return err.Error()
	case errors.As(err, &fieldErr):
		return fieldErr.Message
	case errors.As(err, &reqErr) && reqErr.Message != "":
		return reqErr.Message
	}
	return fallback
}

// failed handles an error from an orchestrator or projection. Expired
// sessions go to the login page; anything else is logged and reported as
// false so the caller can render its alert.
func (s *Server) failed(w http.ResponseWriter, r *http.Request, op string, err error) bool {
	if errors.Is(err, api.ErrAuthenticationRequired) {
		s.redirectToLogin(w, r)
		return true
	}
	if !orchestrators.IsValidation(err) {
		slog.Warn("page_error", "op", op, "path", r.URL.Path, "error", err)
	}
	return false
}

// loadFailed renders the error page for a GET whose data could not be fetched.
func (s *Server) loadFailed(w http.ResponseWriter, r *http.Request, op string, err error, fallback string) {
	if s.failed(w, r, op, err) {
		return
	}
	status := http.StatusBadGateway
	if api.StatusCode(err) == http.StatusNotFound {
		status = http.StatusNotFound
	}
	s.render(w, r, status, "error.html", page{Title: "Something went wrong", Nav: "error"}.withAlert(alertDanger, message(err, fallback)))
}
